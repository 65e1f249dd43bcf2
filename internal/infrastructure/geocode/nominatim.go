package geocode

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/bodecoin/bodecoin-services/api/internal/public/application"
	"github.com/bodecoin/bodecoin-services/api/internal/public/domain"
)

const defaultEndpoint = "https://nominatim.openstreetmap.org/search"

// Nominatim resolves Paraguayan addresses against the OpenStreetMap
// Nominatim search endpoint.
type Nominatim struct {
	client    *retryablehttp.Client
	endpoint  string
	userAgent string
}

// NewNominatim builds a geocoder with a retrying HTTP client. Nominatim's
// usage policy requires an identifying User-Agent.
func NewNominatim(endpoint, userAgent string) *Nominatim {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	client := retryablehttp.NewClient()
	client.Logger = log.New(io.Discard, "", 0)
	client.RetryMax = 2
	client.HTTPClient.Timeout = 10 * time.Second

	return &Nominatim{
		client:    client,
		endpoint:  endpoint,
		userAgent: userAgent,
	}
}

// Forward resolves a structured address to its best-match coordinate.
// An empty result set returns application.ErrNotFound.
func (n *Nominatim) Forward(ctx context.Context, query application.ForwardQuery) (*domain.Coordinates, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("country", "Paraguay")
	if street := strings.TrimSpace(query.Street); street != "" {
		params.Set("street", street)
	}
	if city := strings.TrimSpace(query.City); city != "" {
		params.Set("city", city)
	}
	if department := strings.TrimSpace(query.Department); department != "" {
		params.Set("state", department)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, n.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build nominatim request")
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "nominatim request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read nominatim response")
	}

	first := gjson.GetBytes(body, "0")
	if !first.Exists() {
		return nil, application.ErrNotFound
	}

	lat, err := strconv.ParseFloat(first.Get("lat").String(), 64)
	if err != nil {
		return nil, errors.Wrap(err, "parse latitude")
	}
	lng, err := strconv.ParseFloat(first.Get("lon").String(), 64)
	if err != nil {
		return nil, errors.Wrap(err, "parse longitude")
	}

	return &domain.Coordinates{Lat: lat, Lng: lng}, nil
}
