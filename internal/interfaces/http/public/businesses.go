package public

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bodecoin/bodecoin-services/api/internal/interfaces/http/common"
	publicapp "github.com/bodecoin/bodecoin-services/api/internal/public/application"
)

func (h *Handler) businessListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		query := r.URL.Query()
		department, err := common.NormalizeDepartment(query.Get("department"))
		if err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}

		keyword := strings.TrimSpace(query.Get("q"))
		if slug := strings.TrimSpace(query.Get("category")); slug != "" {
			category, ok := common.CategoryBySlug(slug)
			if !ok {
				common.WriteError(h.logger, w, http.StatusBadRequest, "Categoría desconocida: "+slug)
				return
			}
			if keyword == "" {
				keyword = category.Name
			}
		}

		userID := ""
		if user, ok := common.UserFromContext(r.Context()); ok {
			userID = user.ID
		}

		result := h.queries.Search(ctx, userID, publicapp.SearchQuery{
			Query:      keyword,
			Department: department,
			UseAI:      query.Get("ai") == "true",
		})

		items := make([]businessSummaryResponse, 0, len(result.Businesses))
		for _, business := range result.Businesses {
			items = append(items, h.buildBusinessSummary(business))
		}

		common.WriteJSON(h.logger, w, http.StatusOK, businessListResponse{
			Items:     items,
			Total:     len(items),
			AISourced: result.AISourced,
		})
	}
}

func (h *Handler) businessDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		idParam := strings.TrimSpace(chi.URLParam(r, "id"))
		if idParam == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "No se indicó el negocio")
			return
		}

		business, err := h.queries.Detail(ctx, idParam)
		if err != nil {
			if errors.Is(err, publicapp.ErrNotFound) {
				common.WriteError(h.logger, w, http.StatusNotFound, "Negocio no encontrado")
				return
			}
			h.logger.WithError(err).WithField("id", idParam).Error("No se pudo obtener el negocio")
			common.WriteError(h.logger, w, http.StatusInternalServerError, "No se pudo obtener el negocio")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, h.buildBusinessDetail(*business))
	}
}

func (h *Handler) trendingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := common.ParsePositiveInt(r.URL.Query().Get("limit"), 0)

		top := h.trending.Top()
		if limit > 0 && limit < len(top) {
			top = top[:limit]
		}

		items := make([]businessSummaryResponse, 0, len(top))
		for _, business := range top {
			items = append(items, h.buildBusinessSummary(business))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, businessListResponse{Items: items, Total: len(items)})
	}
}

func (h *Handler) categoriesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": common.Categories})
	}
}

func (h *Handler) departmentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": common.Departments})
	}
}

func (h *Handler) historyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "Sesión no válida")
			return
		}

		entries := h.history.Entries(user.ID)
		items := make([]historyEntryResponse, 0, len(entries))
		for _, entry := range entries {
			items = append(items, historyEntryResponse{Query: entry.Query, Timestamp: entry.Timestamp})
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
	}
}
