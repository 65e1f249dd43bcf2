package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bodecoin/bodecoin-services/api/internal/interfaces/http/common"
	publicapp "github.com/bodecoin/bodecoin-services/api/internal/public/application"
	"github.com/bodecoin/bodecoin-services/api/internal/public/domain"
)

type listingResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Department string `json:"department,omitempty"`
	City       string `json:"city,omitempty"`
	OwnerID    string `json:"ownerId,omitempty"`
	Status     string `json:"status"`
	Verified   bool   `json:"verified"`
}

func buildListingResponse(business domain.Business) listingResponse {
	return listingResponse{
		ID:         business.ID,
		Name:       business.Name,
		Category:   business.Category,
		Department: business.Department,
		City:       business.City,
		OwnerID:    business.OwnerID,
		Status:     business.Status,
		Verified:   business.Verified,
	}
}

func (h *Handler) pendingListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		pending, err := h.moderation.Pending(ctx)
		if err != nil {
			h.logger.WithError(err).Error("No se pudo listar los negocios pendientes")
			common.WriteError(h.logger, w, http.StatusInternalServerError, "No se pudo obtener la lista")
			return
		}

		items := make([]listingResponse, 0, len(pending))
		for _, business := range pending {
			items = append(items, buildListingResponse(business))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
	}
}

func (h *Handler) approveHandler() http.HandlerFunc {
	return h.statusChangeHandler(func(ctx context.Context, id string) (*domain.Business, error) {
		return h.moderation.Approve(ctx, id)
	})
}

func (h *Handler) suspendHandler() http.HandlerFunc {
	return h.statusChangeHandler(func(ctx context.Context, id string) (*domain.Business, error) {
		return h.moderation.Suspend(ctx, id)
	})
}

func (h *Handler) statusChangeHandler(change func(context.Context, string) (*domain.Business, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		business, err := change(ctx, id)
		if err != nil {
			if errors.Is(err, publicapp.ErrNotFound) {
				common.WriteError(h.logger, w, http.StatusNotFound, "Negocio no encontrado")
				return
			}
			h.logger.WithError(err).WithField("id", id).Error("No se pudo cambiar el estado del negocio")
			common.WriteError(h.logger, w, http.StatusInternalServerError, "No se pudo actualizar el negocio")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildListingResponse(*business))
	}
}

func (h *Handler) verifiedHandler() http.HandlerFunc {
	type request struct {
		Verified bool `json:"verified"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		r.Body = http.MaxBytesReader(w, r.Body, common.MaxJSONRequestBody)
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "Solicitud inválida")
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		business, err := h.moderation.SetVerified(ctx, id, req.Verified)
		if err != nil {
			if errors.Is(err, publicapp.ErrNotFound) {
				common.WriteError(h.logger, w, http.StatusNotFound, "Negocio no encontrado")
				return
			}
			h.logger.WithError(err).WithField("id", id).Error("No se pudo actualizar la verificación")
			common.WriteError(h.logger, w, http.StatusInternalServerError, "No se pudo actualizar el negocio")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildListingResponse(*business))
	}
}
