package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/bodecoin/bodecoin-services/api/internal/public/domain"
)

const defaultModel = "gemini-2.5-flash"

// GeminiClient synthesizes plausible Paraguayan listings when the local
// catalog has no match. It fails soft: any problem yields an empty slice.
type GeminiClient struct {
	client *genai.Client
	model  string
	logger *logrus.Logger
}

// NewGeminiClient builds the suggestion client. An empty API key is allowed
// and produces a client whose Suggest always returns nothing.
func NewGeminiClient(ctx context.Context, apiKey, model string, logger *logrus.Logger) (*GeminiClient, error) {
	if model == "" {
		model = defaultModel
	}
	if apiKey == "" {
		return &GeminiClient{model: model, logger: logger}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiClient{client: client, model: model, logger: logger}, nil
}

// suggestionSchema constrains the model to a JSON array of listing objects.
func suggestionSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":        {Type: genai.TypeString},
				"description": {Type: genai.TypeString},
				"address":     {Type: genai.TypeString},
				"city":        {Type: genai.TypeString},
				"category":    {Type: genai.TypeString},
				"rating":      {Type: genai.TypeNumber},
				"tags":        {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				"lat":         {Type: genai.TypeNumber},
				"lng":         {Type: genai.TypeNumber},
			},
			Required: []string{"name", "description", "city", "category"},
		},
	}
}

// Suggest asks Gemini for up to three real or plausible businesses matching
// the query. Errors are logged and swallowed so search can fall through.
func (c *GeminiClient) Suggest(ctx context.Context, query, department string) []domain.Business {
	if c.client == nil {
		return nil
	}

	prompt := buildPrompt(query, department)
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   suggestionSchema(),
	})
	if err != nil {
		c.logger.WithError(err).Warn("Fallo la sugerencia de Gemini")
		return nil
	}

	businesses, err := parseSuggestions(result.Text(), department)
	if err != nil {
		c.logger.WithError(err).Warn("No se pudo interpretar la respuesta de Gemini")
		return nil
	}
	return businesses
}

func buildPrompt(query, department string) string {
	var b strings.Builder
	b.WriteString("Listá hasta 3 negocios reales o plausibles de Paraguay que coincidan con la búsqueda \"")
	b.WriteString(query)
	b.WriteString("\".")
	if department != "" {
		b.WriteString(" Limitate al departamento de ")
		b.WriteString(department)
		b.WriteString(".")
	}
	b.WriteString(" Respondé con datos en español: nombre, descripción breve, dirección, ciudad y categoría.")
	return b.String()
}

type suggestionPayload struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Category    string   `json:"category"`
	Rating      float64  `json:"rating"`
	Tags        []string `json:"tags"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
}

// parseSuggestions decodes the structured response and fills in the fields
// the model does not produce with display defaults.
func parseSuggestions(raw, department string) ([]domain.Business, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var payloads []suggestionPayload
	if err := json.Unmarshal([]byte(raw), &payloads); err != nil {
		return nil, err
	}

	if department == "" {
		department = "Asunción"
	}

	businesses := make([]domain.Business, 0, len(payloads))
	for _, p := range payloads {
		if strings.TrimSpace(p.Name) == "" {
			continue
		}

		rating := p.Rating
		if rating <= 0 {
			rating = 4.5
		}

		var coords *domain.Coordinates
		if p.Lat != 0 || p.Lng != 0 {
			coords = &domain.Coordinates{Lat: p.Lat, Lng: p.Lng}
		}

		id := "ai-gen-" + uuid.New().String()
		businesses = append(businesses, domain.Business{
			ID:          id,
			Name:        p.Name,
			Category:    p.Category,
			Description: p.Description,
			Address:     p.Address,
			Department:  department,
			City:        p.City,
			Phone:       "Consultar",
			Rating:      rating,
			Reviews:     10 + rand.Intn(100),
			ImageURL:    "https://picsum.photos/seed/" + id + "/640/480",
			Tags:        append([]string{}, p.Tags...),
			Coordinates: coords,
			Status:      domain.StatusActive,
		})
	}
	return businesses, nil
}
