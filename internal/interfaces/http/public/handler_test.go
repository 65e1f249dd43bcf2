package public

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodecoin/bodecoin-services/api/internal/interfaces/http/common"
	publicapp "github.com/bodecoin/bodecoin-services/api/internal/public/application"
	publicdomain "github.com/bodecoin/bodecoin-services/api/internal/public/domain"
)

type fakeQueries struct {
	result    publicapp.SearchResult
	lastQuery publicapp.SearchQuery
	byID      map[string]publicdomain.Business
	ownerIDs  map[string]string
}

func (q *fakeQueries) Search(_ context.Context, _ string, query publicapp.SearchQuery) publicapp.SearchResult {
	q.lastQuery = query
	return q.result
}

func (q *fakeQueries) Detail(_ context.Context, id string) (*publicdomain.Business, error) {
	business, ok := q.byID[id]
	if !ok {
		return nil, publicapp.ErrNotFound
	}
	return &business, nil
}

func (q *fakeQueries) OwnedBusinessID(_ context.Context, ownerID string) (string, error) {
	id, ok := q.ownerIDs[ownerID]
	if !ok {
		return "", publicapp.ErrNotFound
	}
	return id, nil
}

type fakeRegistrations struct {
	result    *publicapp.RegistrationResult
	submitErr error
	lastCmd   publicapp.RegistrationCommand
}

func (r *fakeRegistrations) Submit(_ context.Context, cmd publicapp.RegistrationCommand) (*publicapp.RegistrationResult, error) {
	r.lastCmd = cmd
	if r.submitErr != nil {
		return nil, r.submitErr
	}
	return r.result, nil
}

func (r *fakeRegistrations) ResolveCoordinates(context.Context, publicapp.ForwardQuery) (*publicdomain.Coordinates, error) {
	return &publicdomain.Coordinates{Lat: -25.3, Lng: -57.6}, nil
}

func (r *fakeRegistrations) RemoveGalleryImage(context.Context, string, string) (*publicdomain.Business, error) {
	return &publicdomain.Business{ID: "b1"}, nil
}

type fakeTrendingRepo struct {
	active []publicdomain.Business
}

func (r *fakeTrendingRepo) FindActive(context.Context) ([]publicdomain.Business, error) {
	return r.active, nil
}
func (r *fakeTrendingRepo) FindByID(context.Context, string) (*publicdomain.Business, error) {
	return nil, publicapp.ErrNotFound
}
func (r *fakeTrendingRepo) FindIDByOwner(context.Context, string) (string, error) {
	return "", publicapp.ErrNotFound
}
func (r *fakeTrendingRepo) Insert(context.Context, *publicdomain.Business) (string, error) {
	return "", publicapp.ErrNotFound
}
func (r *fakeTrendingRepo) Update(context.Context, *publicdomain.Business) error {
	return nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// stubAuth injects a fixed user so protected routes can be exercised
// without minting tokens.
func stubAuth(user common.AuthenticatedUser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(common.ContextWithUser(r.Context(), user)))
		})
	}
}

func newTestRouter(t *testing.T, queries *fakeQueries, registrations *fakeRegistrations, trending *publicapp.TrendingService) chi.Router {
	t.Helper()
	if trending == nil {
		trending = publicapp.NewTrendingService(&fakeTrendingRepo{}, nil, 10, quietLogger())
	}
	handler := NewHandler(Config{
		Logger:        quietLogger(),
		Queries:       queries,
		Registrations: registrations,
		Trending:      trending,
		History:       publicapp.NewHistoryStore(),
	})

	router := chi.NewRouter()
	handler.Register(router, stubAuth(common.AuthenticatedUser{ID: "u1", Name: "Ana"}))
	return router
}

func TestBusinessListForwardsQuery(t *testing.T) {
	queries := &fakeQueries{result: publicapp.SearchResult{
		Businesses: []publicdomain.Business{{ID: "b1", Name: "Lido Bar", Rating: 4.6}},
		AISourced:  true,
	}}
	router := newTestRouter(t, queries, &fakeRegistrations{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/businesses?q=lomito&department=Central&ai=true", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "lomito", queries.lastQuery.Query)
	assert.Equal(t, "Central", queries.lastQuery.Department)
	assert.True(t, queries.lastQuery.UseAI)

	var payload businessListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Items, 1)
	assert.Equal(t, "Lido Bar", payload.Items[0].Name)
	assert.True(t, payload.AISourced)
}

func TestBusinessListRejectsUnknownDepartment(t *testing.T) {
	router := newTestRouter(t, &fakeQueries{}, &fakeRegistrations{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/businesses?department=Montevideo", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBusinessListCategorySlugBecomesKeyword(t *testing.T) {
	queries := &fakeQueries{}
	router := newTestRouter(t, queries, &fakeRegistrations{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/businesses?category=gastronomia", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Gastronomía", queries.lastQuery.Query)
}

func TestBusinessDetailNotFound(t *testing.T) {
	router := newTestRouter(t, &fakeQueries{}, &fakeRegistrations{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/businesses/desconocido", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTrendingEndpoint(t *testing.T) {
	trending := publicapp.NewTrendingService(&fakeTrendingRepo{active: []publicdomain.Business{
		{ID: "p1", Name: "Hotel Guaraní", Rating: 4.9},
		{ID: "p2", Name: "Lido Bar", Rating: 4.5},
	}}, nil, 10, quietLogger())
	trending.Refresh(context.Background())

	router := newTestRouter(t, &fakeQueries{}, &fakeRegistrations{}, trending)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/businesses/trending?limit=1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var payload businessListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Items, 1)
	assert.Equal(t, "Hotel Guaraní", payload.Items[0].Name)
}

func TestTaxonomyEndpoints(t *testing.T) {
	router := newTestRouter(t, &fakeQueries{}, &fakeRegistrations{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Gastronomía")
	assert.Contains(t, rec.Body.String(), "Utensils")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/departments", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Itapúa")
}

func TestOwnedBusinessAbsenceIsNull(t *testing.T) {
	router := newTestRouter(t, &fakeQueries{ownerIDs: map[string]string{}}, &fakeRegistrations{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/my-business", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"businessId": null}`, rec.Body.String())
}

func TestRegisterSubmitValidation(t *testing.T) {
	registrations := &fakeRegistrations{submitErr: &publicapp.ValidationError{Fields: []string{"name", "whatsapp"}}}
	router := newTestRouter(t, &fakeQueries{}, registrations, nil)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("category", "gastronomia"))
	require.NoError(t, writer.WriteField("department", "Central"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/businesses", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "whatsapp")
}

func TestRegisterSubmitMapsForm(t *testing.T) {
	registrations := &fakeRegistrations{result: &publicapp.RegistrationResult{
		Business: publicdomain.Business{ID: "nuevo-id", Name: "Lomitería El Guapo"},
	}}
	router := newTestRouter(t, &fakeQueries{}, registrations, nil)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("name", "Lomitería El Guapo"))
	require.NoError(t, writer.WriteField("category", "gastronomia"))
	require.NoError(t, writer.WriteField("department", "Central"))
	require.NoError(t, writer.WriteField("city", "San Lorenzo"))
	require.NoError(t, writer.WriteField("address", "Ruta 2 km 15"))
	require.NoError(t, writer.WriteField("whatsapp", "+595 981 555 123"))
	require.NoError(t, writer.WriteField("tags", "Lomito, lomito , 24h"))
	require.NoError(t, writer.WriteField("lat", "-25.34"))
	require.NoError(t, writer.WriteField("lng", "-57.51"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/businesses", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	cmd := registrations.lastCmd
	assert.Equal(t, "u1", cmd.OwnerID)
	assert.Equal(t, "Gastronomía", cmd.Category)
	require.NotNil(t, cmd.Coordinates)
	assert.InDelta(t, -25.34, cmd.Coordinates.Lat, 0.001)
	assert.Equal(t, []string{"Lomito", "24h"}, cmd.Tags)
	// No hours submitted, the default table applies.
	assert.True(t, cmd.Hours["dom"].Closed)
}

func TestRegisterSubmitForbiddenForNonOwner(t *testing.T) {
	registrations := &fakeRegistrations{submitErr: publicapp.ErrNotOwner}
	router := newTestRouter(t, &fakeQueries{}, registrations, nil)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("businessId", "biz-ajeno"))
	require.NoError(t, writer.WriteField("name", "Ferretería San Blas"))
	require.NoError(t, writer.WriteField("category", "gastronomia"))
	require.NoError(t, writer.WriteField("department", "Central"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/businesses", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "no pertenece a tu cuenta")
}

func TestGeocodeEndpoint(t *testing.T) {
	router := newTestRouter(t, &fakeQueries{}, &fakeRegistrations{}, nil)

	payload := bytes.NewBufferString(`{"street":"Palma 123","city":"Asunción","department":"Central"}`)
	req := httptest.NewRequest(http.MethodPost, "/geocode", payload)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var coords coordinatesPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &coords))
	assert.InDelta(t, -25.3, coords.Lat, 0.001)
}
