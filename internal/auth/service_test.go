package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodecoin/bodecoin-services/api/internal/public/application"
)

type memoryUsers struct {
	byEmail map[string]*User
	nextID  int
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byEmail: make(map[string]*User), nextID: 1}
}

func (m *memoryUsers) Create(_ context.Context, user *User) (string, error) {
	if _, exists := m.byEmail[user.Email]; exists {
		return "", ErrEmailTaken
	}
	user.ID = "u1"
	m.byEmail[user.Email] = user
	return user.ID, nil
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return nil, application.ErrNotFound
	}
	return user, nil
}

func newTestService(users UserRepository, history *application.HistoryStore) *Service {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewService(users, history, Config{
		Secret:   []byte("secreto-de-prueba"),
		Issuer:   "bodecoin-auth",
		Audience: "bodecoin-api",
	}, logger)
}

func TestSignUpAndSignIn(t *testing.T) {
	users := newMemoryUsers()
	service := newTestService(users, nil)

	session, err := service.SignUp(context.Background(), "Ana", "Ana@Example.com", "981111222", "secreta1")
	require.NoError(t, err)
	assert.Equal(t, "u1", session.UserID)
	assert.Equal(t, "ana@example.com", session.Email)
	assert.NotEmpty(t, session.Token)

	// Email lookup is case-insensitive on the stored normalized form.
	session, err = service.SignIn(context.Background(), "ana@example.com", "secreta1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", session.Name)
}

func TestSignUpRejectsShortPassword(t *testing.T) {
	service := newTestService(newMemoryUsers(), nil)

	_, err := service.SignUp(context.Background(), "Ana", "ana@example.com", "", "corta")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	users := newMemoryUsers()
	service := newTestService(users, nil)

	_, err := service.SignUp(context.Background(), "Ana", "ana@example.com", "", "secreta1")
	require.NoError(t, err)

	_, err = service.SignUp(context.Background(), "Otra", "ana@example.com", "", "secreta2")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignInWrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	users := newMemoryUsers()
	service := newTestService(users, nil)

	_, err := service.SignUp(context.Background(), "Ana", "ana@example.com", "", "secreta1")
	require.NoError(t, err)

	_, wrongPass := service.SignIn(context.Background(), "ana@example.com", "incorrecta")
	_, unknown := service.SignIn(context.Background(), "nadie@example.com", "secreta1")
	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, ErrInvalidCredentials)
}

func TestSessionTokenCarriesClaims(t *testing.T) {
	users := newMemoryUsers()
	service := newTestService(users, nil)

	session, err := service.SignUp(context.Background(), "Ana", "ana@example.com", "", "secreta1")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(session.Token, claims, func(*jwt.Token) (any, error) {
		return []byte("secreto-de-prueba"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	assert.Equal(t, "u1", claims["sub"])
	assert.Equal(t, "bodecoin-auth", claims["iss"])
	assert.Equal(t, "bodecoin-api", claims["aud"])
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), session.ExpiresAt, time.Minute)
}

func TestSignOutClearsHistory(t *testing.T) {
	history := application.NewHistoryStore()
	history.Record("u1", "farmacias")
	service := newTestService(newMemoryUsers(), history)

	service.SignOut("u1")
	assert.Empty(t, history.Entries("u1"))
}
