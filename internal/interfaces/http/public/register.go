package public

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bodecoin/bodecoin-services/api/internal/interfaces/http/common"
	publicapp "github.com/bodecoin/bodecoin-services/api/internal/public/application"
	publicdomain "github.com/bodecoin/bodecoin-services/api/internal/public/domain"
)

func (h *Handler) registerSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "Sesión no válida")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, common.MaxRegistrationBody)
		if err := r.ParseMultipartForm(common.MaxRegistrationBody); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "No se pudo leer el formulario")
			return
		}

		cmd, err := h.buildRegistrationCommand(r, user.ID)
		if err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}

		result, err := h.registrations.Submit(ctx, *cmd)
		if err != nil {
			var validation *publicapp.ValidationError
			if errors.As(err, &validation) {
				common.WriteJSON(h.logger, w, http.StatusUnprocessableEntity, map[string]any{
					"error":         "Completá los campos obligatorios",
					"missingFields": validation.Fields,
				})
				return
			}
			if errors.Is(err, publicapp.ErrGalleryLimit) {
				common.WriteError(h.logger, w, http.StatusUnprocessableEntity,
					fmt.Sprintf("La galería admite hasta %d imágenes", publicapp.GalleryLimit))
				return
			}
			if errors.Is(err, publicapp.ErrNotOwner) {
				common.WriteError(h.logger, w, http.StatusForbidden, "El negocio no pertenece a tu cuenta")
				return
			}
			if errors.Is(err, publicapp.ErrNotFound) {
				common.WriteError(h.logger, w, http.StatusNotFound, "Negocio no encontrado")
				return
			}
			h.logger.WithError(err).Error("Fallo el registro del negocio")
			common.WriteError(h.logger, w, http.StatusInternalServerError, "No se pudo registrar el negocio")
			return
		}

		status := http.StatusCreated
		if cmd.BusinessID != "" {
			status = http.StatusOK
		}

		rejections := make([]imageRejectionPayload, 0, len(result.RejectedImages))
		for _, rejection := range result.RejectedImages {
			rejections = append(rejections, imageRejectionPayload{Name: rejection.Name, Reason: rejection.Reason})
		}

		common.WriteJSON(h.logger, w, status, registrationResponse{
			Business:       h.buildBusinessDetail(result.Business),
			RejectedImages: rejections,
			SkippedUploads: result.SkippedUploads,
			CoordinateHint: result.CoordinateHint,
			Degraded:       result.Degraded,
		})
	}
}

// buildRegistrationCommand maps the multipart form into the application
// command, reading staged image files into memory.
func (h *Handler) buildRegistrationCommand(r *http.Request, ownerID string) (*publicapp.RegistrationCommand, error) {
	form := r.MultipartForm

	category, err := common.NormalizeCategory(r.FormValue("category"))
	if err != nil {
		return nil, err
	}
	department, err := common.NormalizeDepartment(r.FormValue("department"))
	if err != nil {
		return nil, err
	}

	cmd := &publicapp.RegistrationCommand{
		OwnerID:     ownerID,
		BusinessID:  strings.TrimSpace(r.FormValue("businessId")),
		Name:        strings.TrimSpace(r.FormValue("name")),
		Category:    category,
		Description: strings.TrimSpace(r.FormValue("description")),
		Address:     strings.TrimSpace(r.FormValue("address")),
		Department:  department,
		City:        strings.TrimSpace(r.FormValue("city")),
		Phone:       strings.TrimSpace(r.FormValue("phone")),
		WhatsApp:    strings.TrimSpace(r.FormValue("whatsapp")),
		Email:       strings.TrimSpace(r.FormValue("email")),
		Website:     strings.TrimSpace(r.FormValue("website")),
	}

	if raw := strings.TrimSpace(r.FormValue("tags")); raw != "" {
		cmd.Tags = common.NormalizeTags(strings.Split(raw, ","))
	}

	if raw := r.FormValue("workingHours"); raw != "" {
		hours := publicdomain.WeeklyHours{}
		if err := json.Unmarshal([]byte(raw), &hours); err != nil {
			return nil, errors.New("El horario enviado no es válido")
		}
		cmd.Hours = hours
	} else {
		cmd.Hours = publicdomain.DefaultWeeklyHours()
	}

	if lat, ok := common.ParseFloat(r.FormValue("lat")); ok {
		if lng, ok := common.ParseFloat(r.FormValue("lng")); ok {
			cmd.Coordinates = &publicdomain.Coordinates{Lat: lat, Lng: lng}
		}
	}

	if form != nil {
		cmd.ExistingGallery = append([]string(nil), form.Value["existingGallery"]...)
		staged, err := readStagedImages(form.File["images"])
		if err != nil {
			return nil, err
		}
		cmd.StagedImages = staged
	}

	return cmd, nil
}

func readStagedImages(files []*multipart.FileHeader) ([]publicapp.StagedImage, error) {
	staged := make([]publicapp.StagedImage, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			return nil, errors.New("No se pudo leer la imagen " + header.Filename)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, errors.New("No se pudo leer la imagen " + header.Filename)
		}
		staged = append(staged, publicapp.StagedImage{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return staged, nil
}

func (h *Handler) geocodeHandler() http.HandlerFunc {
	type request struct {
		Street     string `json:"street"`
		City       string `json:"city"`
		Department string `json:"department"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		r.Body = http.MaxBytesReader(w, r.Body, common.MaxJSONRequestBody)
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "Solicitud inválida")
			return
		}

		coords, err := h.registrations.ResolveCoordinates(ctx, publicapp.ForwardQuery{
			Street:     req.Street,
			City:       req.City,
			Department: req.Department,
		})
		if err != nil {
			if errors.Is(err, publicapp.ErrNotFound) {
				common.WriteError(h.logger, w, http.StatusNotFound,
					"No se pudo ubicar la dirección. Usá la captura de ubicación del dispositivo.")
				return
			}
			h.logger.WithError(err).Warn("Fallo la geocodificación")
			common.WriteError(h.logger, w, http.StatusBadGateway, "El servicio de mapas no respondió")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, coordinatesPayload{Lat: coords.Lat, Lng: coords.Lng})
	}
}

func (h *Handler) galleryImageDeleteHandler() http.HandlerFunc {
	type request struct {
		URL string `json:"url"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "Sesión no válida")
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		ownedID, err := h.queries.OwnedBusinessID(ctx, user.ID)
		if err != nil || ownedID != id {
			common.WriteError(h.logger, w, http.StatusForbidden, "El negocio no pertenece a tu cuenta")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, common.MaxJSONRequestBody)
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.URL) == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "Solicitud inválida")
			return
		}

		business, err := h.registrations.RemoveGalleryImage(ctx, id, req.URL)
		if err != nil {
			if errors.Is(err, publicapp.ErrNotFound) {
				common.WriteError(h.logger, w, http.StatusNotFound, "Negocio no encontrado")
				return
			}
			h.logger.WithError(err).Error("No se pudo quitar la imagen de la galería")
			common.WriteError(h.logger, w, http.StatusInternalServerError, "No se pudo quitar la imagen")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, h.buildBusinessDetail(*business))
	}
}

func (h *Handler) ownedBusinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "Sesión no válida")
			return
		}

		id, err := h.queries.OwnedBusinessID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, publicapp.ErrNotFound) {
				common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"businessId": nil})
				return
			}
			h.logger.WithError(err).Error("No se pudo consultar el negocio del usuario")
			common.WriteError(h.logger, w, http.StatusInternalServerError, "No se pudo consultar tu negocio")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"businessId": id})
	}
}
