package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jasonlvhit/gocron"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	adminapp "github.com/bodecoin/bodecoin-services/api/internal/admin/application"
	"github.com/bodecoin/bodecoin-services/api/internal/auth"
	"github.com/bodecoin/bodecoin-services/api/internal/config"
	"github.com/bodecoin/bodecoin-services/api/internal/infrastructure/geocode"
	mongodoc "github.com/bodecoin/bodecoin-services/api/internal/infrastructure/mongo"
	"github.com/bodecoin/bodecoin-services/api/internal/infrastructure/storage"
	"github.com/bodecoin/bodecoin-services/api/internal/infrastructure/suggest"
	adminhttp "github.com/bodecoin/bodecoin-services/api/internal/interfaces/http/admin"
	commonhttp "github.com/bodecoin/bodecoin-services/api/internal/interfaces/http/common"
	publichttp "github.com/bodecoin/bodecoin-services/api/internal/interfaces/http/public"
	publicapp "github.com/bodecoin/bodecoin-services/api/internal/public/application"
	"github.com/bodecoin/bodecoin-services/api/internal/public/domain"
	"github.com/bodecoin/bodecoin-services/api/internal/seed"
)

// Server manages the HTTP lifecycle and wires application services into
// the public handler set. It is the composition root: infrastructure is
// assembled here and nowhere else.
type Server struct {
	logger          *logrus.Logger
	client          *mongo.Client
	database        *mongo.Database
	location        *time.Location
	jwtSecret       []byte
	jwtIssuer       string
	jwtAudience     string
	addr            string
	allowedOrigins  []string
	refreshSeconds  int
	adminAPIKey     string
	queryService    publicapp.BusinessQueryService
	registrations   publicapp.RegistrationService
	trending        *publicapp.TrendingService
	history         *publicapp.HistoryStore
	accounts        *auth.Service
	moderation      adminapp.ModerationService
}

// Run starts the HTTP server, the trending refresh schedule and blocks
// until shutdown.
func (s *Server) Run() error {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))
	router.Use(s.optionalAuthMiddleware)

	router.Get("/healthz", s.healthHandler())

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:        s.logger,
		Queries:       s.queryService,
		Registrations: s.registrations,
		Trending:      s.trending,
		History:       s.history,
		Accounts:      s.accounts,
		Location:      s.location,
	})
	publicHandler.Register(router, s.authMiddleware)

	if s.adminAPIKey != "" {
		adminHandler := adminhttp.NewHandler(adminhttp.Config{
			Logger:     s.logger,
			Moderation: s.moderation,
		})
		router.Route("/admin", func(r chi.Router) {
			r.Use(s.adminKeyMiddleware)
			adminHandler.Register(r)
		})
	} else {
		s.logger.Warn("BODECOIN_ADMIN_API_KEY vacío: las rutas de moderación quedan deshabilitadas")
	}

	s.trending.Refresh(context.Background())
	refresh := uint64(s.refreshSeconds)
	if refresh == 0 {
		refresh = 300
	}
	_ = gocron.Every(refresh).Second().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.trending.Refresh(ctx)
	})
	gocron.Start()
	defer gocron.Clear()

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.addr).Info("Servidor HTTP iniciado")
		errChan <- httpServer.ListenAndServe()
	}()

	waitForShutdown(httpServer, errChan, s)
	return nil
}

// withCORS builds a middleware that applies the allowed-origin policy.
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && len(allowed) > 0 && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// healthHandler pings MongoDB and reports infrastructure status only.
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().In(s.location).Format(time.RFC3339),
		})
	}
}

// optionalAuthMiddleware resolves the bearer token when one is sent but
// never rejects the request. Search history needs the principal on routes
// that also serve anonymous visitors.
func (s *Server) optionalAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" {
			if user, err := s.parseAuthToken(token); err == nil {
				r = r.WithContext(commonhttp.ContextWithUser(r.Context(), user))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// authMiddleware validates the Authorization header and stores the
// authenticated user into context, rejecting the request otherwise.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			commonhttp.WriteError(s.logger, w, http.StatusUnauthorized, "Iniciá sesión para continuar")
			return
		}

		user, err := s.parseAuthToken(token)
		if err != nil {
			commonhttp.WriteError(s.logger, w, http.StatusUnauthorized, "La sesión expiró. Iniciá sesión de nuevo.")
			return
		}

		ctx := commonhttp.ContextWithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminKeyMiddleware guards moderation routes with a shared API key sent in
// the X-Admin-Key header.
func (s *Server) adminKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimSpace(r.Header.Get("X-Admin-Key"))
		if key == "" || key != s.adminAPIKey {
			commonhttp.WriteError(s.logger, w, http.StatusUnauthorized, "Clave de administración inválida")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
}

type authClaims struct {
	jwt.RegisteredClaims
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// parseAuthToken verifies signature, issuer and audience of a session token.
func (s *Server) parseAuthToken(tokenString string) (commonhttp.AuthenticatedUser, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return s.jwtSecret, nil
	}, jwt.WithLeeway(30*time.Second))
	if err != nil || !token.Valid {
		return commonhttp.AuthenticatedUser{}, errors.New("token inválido")
	}

	if s.jwtIssuer != "" && claims.Issuer != s.jwtIssuer {
		return commonhttp.AuthenticatedUser{}, errors.New("emisor inválido")
	}
	if s.jwtAudience != "" && !contains(claims.Audience, s.jwtAudience) {
		return commonhttp.AuthenticatedUser{}, errors.New("audiencia inválida")
	}
	if claims.Subject == "" {
		return commonhttp.AuthenticatedUser{}, errors.New("token sin sujeto")
	}

	return commonhttp.AuthenticatedUser{
		ID:    claims.Subject,
		Name:  claims.Name,
		Email: claims.Email,
	}, nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// shutdown disconnects the MongoDB client with a timeout.
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.WithError(err).Error("Error al desconectar MongoDB")
	}
}

// waitForShutdown watches ListenAndServe and OS signals for a graceful stop.
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.WithError(err).Fatal("El servidor terminó con error")
		}
	case sig := <-sigChan:
		srv.logger.WithField("signal", sig.String()).Info("Iniciando apagado del servidor")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.WithError(err).Error("Error al detener el servidor")
		}
	}

	srv.shutdown(context.Background())
}

// New assembles application services and handlers from Config and the Mongo
// client. It is the dependency-resolution entry point.
func New(ctx context.Context, cfg config.Config, client *mongo.Client) (*Server, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.FixedZone("PYT", -4*60*60)
		cfg.Logger.WithError(err).WithField("timezone", cfg.Timezone).Warn("No se pudo cargar la zona horaria, usando PYT")
	}

	srv := &Server{
		logger:         cfg.Logger,
		client:         client,
		database:       client.Database(cfg.MongoDatabase),
		location:       loc,
		jwtSecret:      cfg.JWTSecret,
		jwtIssuer:      cfg.JWTIssuer,
		jwtAudience:    cfg.JWTAudience,
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
		refreshSeconds: cfg.TrendingRefreshSeconds,
		adminAPIKey:    cfg.AdminAPIKey,
	}

	businessRepo := mongodoc.NewBusinessRepository(srv.database, cfg.BusinessCollection)
	userRepo := mongodoc.NewUserRepository(srv.database, cfg.UserCollection)

	suggestions, err := suggest.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.Logger)
	if err != nil {
		return nil, err
	}

	objectStorage, err := storage.NewS3Storage(ctx, cfg.S3Region, cfg.S3Bucket, cfg.S3BaseURL)
	if err != nil {
		return nil, err
	}

	geocoder := geocode.NewNominatim(cfg.NominatimEndpoint, cfg.NominatimUserAgent)

	var seeded []domain.Business
	if cfg.SeedOnEmpty {
		seeded = seed.SampleBusinesses()
	}

	srv.history = publicapp.NewHistoryStore()
	srv.queryService = publicapp.NewBusinessQueryService(businessRepo, suggestions, seeded, srv.history, cfg.Logger)
	srv.registrations = publicapp.NewRegistrationService(businessRepo, objectStorage, geocoder, cfg.Logger)
	srv.trending = publicapp.NewTrendingService(businessRepo, seeded, cfg.TrendingLimit, cfg.Logger)
	srv.moderation = adminapp.NewModerationService(mongodoc.NewAdminBusinessRepository(srv.database, cfg.BusinessCollection))
	srv.accounts = auth.NewService(userRepo, srv.history, auth.Config{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TokenTTL: cfg.JWTTokenTTL,
	}, cfg.Logger)

	return srv, nil
}
