package public

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/bodecoin/bodecoin-services/api/internal/auth"
	publicapp "github.com/bodecoin/bodecoin-services/api/internal/public/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger        *logrus.Logger
	queries       publicapp.BusinessQueryService
	registrations publicapp.RegistrationService
	trending      *publicapp.TrendingService
	history       *publicapp.HistoryStore
	accounts      *auth.Service
	location      *time.Location
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger        *logrus.Logger
	Queries       publicapp.BusinessQueryService
	Registrations publicapp.RegistrationService
	Trending      *publicapp.TrendingService
	History       *publicapp.HistoryStore
	Accounts      *auth.Service
	Location      *time.Location
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	location := cfg.Location
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		logger:        cfg.Logger,
		queries:       cfg.Queries,
		registrations: cfg.Registrations,
		trending:      cfg.Trending,
		history:       cfg.History,
		accounts:      cfg.Accounts,
		location:      location,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/businesses", h.businessListHandler())
	r.Get("/businesses/trending", h.trendingHandler())
	r.Get("/businesses/{id}", h.businessDetailHandler())
	r.Get("/categories", h.categoriesHandler())
	r.Get("/departments", h.departmentsHandler())

	r.Post("/auth/signup", h.signUpHandler())
	r.Post("/auth/signin", h.signInHandler())

	r.With(authMiddleware).Post("/auth/signout", h.signOutHandler())
	r.With(authMiddleware).Get("/auth/session", h.sessionHandler())
	r.With(authMiddleware).Get("/history", h.historyHandler())
	r.With(authMiddleware).Get("/my-business", h.ownedBusinessHandler())
	r.With(authMiddleware).Post("/businesses", h.registerSubmitHandler())
	r.With(authMiddleware).Post("/geocode", h.geocodeHandler())
	r.With(authMiddleware).Delete("/businesses/{id}/gallery", h.galleryImageDeleteHandler())
}
