package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodecoin/bodecoin-services/api/internal/public/application"
)

func TestForwardParsesBestMatch(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"street":  r.URL.Query().Get("street"),
			"city":    r.URL.Query().Get("city"),
			"state":   r.URL.Query().Get("state"),
			"country": r.URL.Query().Get("country"),
			"limit":   r.URL.Query().Get("limit"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"-25.2637","lon":"-57.5759","display_name":"Asunción"}]`))
	}))
	defer server.Close()

	geocoder := NewNominatim(server.URL, "bodecoin-test")
	coords, err := geocoder.Forward(context.Background(), application.ForwardQuery{
		Street:     "Palma 123",
		City:       "Asunción",
		Department: "Central",
	})
	require.NoError(t, err)

	assert.InDelta(t, -25.2637, coords.Lat, 0.0001)
	assert.InDelta(t, -57.5759, coords.Lng, 0.0001)
	assert.Equal(t, "Palma 123", gotQuery["street"])
	assert.Equal(t, "Asunción", gotQuery["city"])
	assert.Equal(t, "Central", gotQuery["state"])
	assert.Equal(t, "Paraguay", gotQuery["country"])
	assert.Equal(t, "1", gotQuery["limit"])
}

func TestForwardNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	geocoder := NewNominatim(server.URL, "bodecoin-test")
	_, err := geocoder.Forward(context.Background(), application.ForwardQuery{City: "Ningunaparte"})
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestForwardOmitsEmptyFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("street"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"-25.3","lon":"-57.6"}]`))
	}))
	defer server.Close()

	geocoder := NewNominatim(server.URL, "bodecoin-test")
	_, err := geocoder.Forward(context.Background(), application.ForwardQuery{
		City:       "Luque",
		Department: "Central",
	})
	assert.NoError(t, err)
}
