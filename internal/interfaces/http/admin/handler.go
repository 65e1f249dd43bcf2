package admin

import (
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	adminapp "github.com/bodecoin/bodecoin-services/api/internal/admin/application"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger     *logrus.Logger
	moderation adminapp.ModerationService
}

// Config provides dependencies for Handler.
type Config struct {
	Logger     *logrus.Logger
	Moderation adminapp.ModerationService
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:     cfg.Logger,
		moderation: cfg.Moderation,
	}
}

// Register mounts admin routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/listings/pending", h.pendingListHandler())
	r.Post("/listings/{id}/approve", h.approveHandler())
	r.Post("/listings/{id}/suspend", h.suspendHandler())
	r.Patch("/listings/{id}/verified", h.verifiedHandler())
}
