package public

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bodecoin/bodecoin-services/api/internal/auth"
	"github.com/bodecoin/bodecoin-services/api/internal/interfaces/http/common"
)

func (h *Handler) signUpHandler() http.HandlerFunc {
	type request struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, common.MaxJSONRequestBody)
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "Solicitud inválida")
			return
		}

		session, err := h.accounts.SignUp(r.Context(), req.Name, req.Email, req.Phone, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrPasswordTooShort):
				common.WriteError(h.logger, w, http.StatusUnprocessableEntity, err.Error())
			case errors.Is(err, auth.ErrEmailTaken):
				common.WriteError(h.logger, w, http.StatusConflict, err.Error())
			default:
				h.logger.WithError(err).Error("Fallo el registro de la cuenta")
				common.WriteError(h.logger, w, http.StatusInternalServerError, "No se pudo crear la cuenta")
			}
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, session)
	}
}

func (h *Handler) signInHandler() http.HandlerFunc {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, common.MaxJSONRequestBody)
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "Solicitud inválida")
			return
		}

		session, err := h.accounts.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				common.WriteError(h.logger, w, http.StatusUnauthorized, err.Error())
				return
			}
			h.logger.WithError(err).Error("Fallo el inicio de sesión")
			common.WriteError(h.logger, w, http.StatusInternalServerError, "No se pudo iniciar sesión")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, session)
	}
}

func (h *Handler) signOutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "Sesión no válida")
			return
		}

		h.accounts.SignOut(user.ID)
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (h *Handler) sessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "Sesión no válida")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{
			"status": "ok",
			"user":   user,
		})
	}
}
