// Package gemini adapts the Google Gemini API to the advisor and
// price-comparison ports. All calls go through a circuit breaker and a
// bulkhead bounding concurrent LLM requests.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/mayordomia/mayordomia-go/internal/domain"
	"github.com/mayordomia/mayordomia-go/internal/infra/resilience"
)

var tracer = otel.Tracer("gemini")

// Client calls the Gemini generative API.
type Client struct {
	genai    *genai.Client
	model    string
	cb       *gobreaker.CircuitBreaker
	bulkhead *resilience.Bulkhead
	logger   *zap.Logger
}

// NewClient builds a Gemini client for the given model.
func NewClient(ctx context.Context, apiKey, model string, cb *gobreaker.CircuitBreaker, bulkhead *resilience.Bulkhead, logger *zap.Logger) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{
		genai:    gc,
		model:    model,
		cb:       cb,
		bulkhead: bulkhead,
		logger:   logger,
	}, nil
}

// Advise sends the prompt with the advisor persona and returns the
// model's free text.
func (c *Client) Advise(ctx context.Context, systemInstruction, prompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "Gemini.Advise")
	defer span.End()

	return c.generate(ctx, systemInstruction, prompt)
}

// Compare asks for store price suggestions for the shopping list. The
// raw model text is returned; the service layer parses the JSON and
// owns the malformed-response fallback.
func (c *Client) Compare(ctx context.Context, items []domain.PriceQueryItem, stores []domain.StoreConfig) (string, error) {
	ctx, span := tracer.Start(ctx, "Gemini.Compare")
	defer span.End()

	var sb strings.Builder
	sb.WriteString("Eres un asistente de compras. Busca precios actuales para esta lista:\n\n")
	for _, it := range items {
		fmt.Fprintf(&sb, "- %s (cantidad: %d)\n", it.Name, it.Quantity)
	}
	sb.WriteString("\nTiendas a consultar:\n")
	for _, s := range stores {
		fmt.Fprintf(&sb, "- %s (%s)\n", s.Name, s.URL)
	}
	sb.WriteString("\nResponde SOLO con JSON válido, sin markdown, con esta estructura exacta:\n")
	sb.WriteString(`{"items":[{"name":"...","suggestions":[{"store":"...","price":0,"url":"..."}]}],"totalEstimated":0,"biblicalTip":"..."}`)

	return c.generate(ctx, "", sb.String())
}

func (c *Client) generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	if err := c.bulkhead.Acquire(ctx); err != nil {
		return "", err
	}
	defer c.bulkhead.Release()

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	var cfg *genai.GenerateContentConfig
	if systemInstruction != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: systemInstruction}},
			},
		}
	}

	result, err := c.cb.Execute(func() (any, error) {
		resp, err := c.genai.Models.GenerateContent(ctx, c.model, contents, cfg)
		if err != nil {
			return nil, err
		}
		text := resp.Text()
		if text == "" {
			return nil, fmt.Errorf("empty response from model")
		}
		return text, nil
	})
	if err != nil {
		c.logger.Warn("gemini: generate failed", zap.String("model", c.model), zap.Error(err))
		return "", &domain.ErrCollaborator{Service: "gemini", Err: resilience.MapBreakerErr("gemini", err)}
	}
	return result.(string), nil
}
