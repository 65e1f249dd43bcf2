package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/bodecoin/bodecoin-services/api/internal/public/application"
)

// User is a directory account. Accounts own at most one business listing,
// looked up by owner reference rather than embedded here.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Session is the result of a successful sign-in or sign-up.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UserRepository abstracts account persistence.
type UserRepository interface {
	Create(ctx context.Context, user *User) (string, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// User-facing auth failures, pre-translated the way the interface shows them.
var (
	ErrInvalidCredentials = errors.New("E-mail o contraseña incorrectos")
	ErrEmailTaken         = errors.New("Este e-mail ya está registrado")
	ErrPasswordTooShort   = errors.New("La contraseña debe tener al menos 6 caracteres")
)

const minPasswordLength = 6

// Service signs users up and in, issuing HS256 session tokens.
type Service struct {
	users    UserRepository
	history  *application.HistoryStore
	logger   *logrus.Logger
	secret   []byte
	issuer   string
	audience string
	tokenTTL time.Duration
	now      func() time.Time
}

// Config defines the token parameters for a Service.
type Config struct {
	Secret   []byte
	Issuer   string
	Audience string
	TokenTTL time.Duration
}

// NewService constructs the auth service.
func NewService(users UserRepository, history *application.HistoryStore, cfg Config, logger *logrus.Logger) *Service {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		users:    users,
		history:  history,
		logger:   logger,
		secret:   cfg.Secret,
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		tokenTTL: ttl,
		now:      time.Now,
	}
}

// SignUp registers a new account and signs it in immediately, matching the
// no-email-confirmation flow of the interface.
func (s *Service) SignUp(ctx context.Context, name, email, phone, password string) (*Session, error) {
	email = normalizeEmail(email)
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		Phone:        strings.TrimSpace(phone),
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	id, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	return s.issueSession(user)
}

// SignIn validates credentials and issues a session token. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueSession(user)
}

// SignOut clears the user's session-scoped search history.
func (s *Service) SignOut(userID string) {
	if s.history != nil {
		s.history.Clear(userID)
	}
	s.logger.WithField("user", userID).Info("Sesión cerrada")
}

func (s *Service) issueSession(user *User) (*Session, error) {
	now := s.now()
	expiresAt := now.Add(s.tokenTTL)

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"name":  user.Name,
		"email": user.Email,
		"iss":   s.issuer,
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}
	if s.audience != "" {
		claims["aud"] = s.audience
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:     token,
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		ExpiresAt: expiresAt,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
