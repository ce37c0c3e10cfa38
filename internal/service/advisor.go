package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mayordomia/mayordomia-go/internal/domain"
	"github.com/mayordomia/mayordomia-go/internal/infra/observability"
	"github.com/mayordomia/mayordomia-go/internal/port"
)

// advisorPersona frames the assistant for every advisor call.
const advisorPersona = "Eres un consejero financiero sabio y amable, basado en principios " +
	"bíblicos de mayordomía. Das consejos prácticos y breves sobre el manejo del dinero " +
	"del hogar, siempre con un tono alentador. Respondes en español."

// advisorUnavailable is returned to the user when the AI collaborator
// fails; advisor failures never surface as HTTP errors.
const advisorUnavailable = "Lo siento, no puedo darte un consejo en este momento. " +
	"Por favor intenta de nuevo más tarde."

// fallbackTip fills the placeholder comparison when the model response
// cannot be parsed.
const fallbackTip = "El que es fiel en lo poco, también en lo más es fiel. (Lucas 16:10)"

// AdvisorService layers the generative features over the ledger.
type AdvisorService struct {
	ledger   *LedgerService
	advisor  port.AdvisorCaller
	comparer port.PriceComparer
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewAdvisorService wires the advisor service.
func NewAdvisorService(ledger *LedgerService, advisor port.AdvisorCaller, comparer port.PriceComparer, metrics *observability.Metrics, logger *zap.Logger) *AdvisorService {
	return &AdvisorService{
		ledger:   ledger,
		advisor:  advisor,
		comparer: comparer,
		metrics:  metrics,
		logger:   logger,
	}
}

// Advise answers a free-text question with the user's aggregates as
// context. Collaborator failures degrade to a fixed apology text.
func (s *AdvisorService) Advise(ctx context.Context, userID, query string) (*domain.AdvisorResponse, error) {
	ctx, span := tracer.Start(ctx, "AdvisorService.Advise")
	defer span.End()

	if strings.TrimSpace(query) == "" {
		return nil, &domain.ErrValidation{Field: "query", Message: "required"}
	}

	summary, err := s.ledger.Summary(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.advisor == nil {
		return &domain.AdvisorResponse{Answer: advisorUnavailable}, nil
	}

	prompt := buildAdvisorPrompt(summary, query)
	answer, err := s.advisor.Advise(ctx, advisorPersona, prompt)
	if err != nil {
		s.metrics.IncrAdvisorRequest("error")
		s.metrics.IncrCollaboratorError("gemini")
		s.logger.Warn("advisor call failed, returning fallback text",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return &domain.AdvisorResponse{Answer: advisorUnavailable}, nil
	}

	s.metrics.IncrAdvisorRequest("success")
	return &domain.AdvisorResponse{Answer: answer}, nil
}

// CompareShopping prices the unchecked shopping list items across the
// configured stores. A malformed model response degrades to a
// zero-filled placeholder instead of failing the view.
func (s *AdvisorService) CompareShopping(ctx context.Context, userID string) (*domain.PriceComparison, error) {
	ctx, span := tracer.Start(ctx, "AdvisorService.CompareShopping")
	defer span.End()

	items, err := s.ledger.store.ListShoppingItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	stores, err := s.ledger.store.ListStores(ctx, userID)
	if err != nil {
		return nil, err
	}

	queries := make([]domain.PriceQueryItem, 0, len(items))
	for _, it := range items {
		if it.Checked {
			continue
		}
		queries = append(queries, domain.PriceQueryItem{Name: it.Name, Quantity: it.Quantity})
	}
	if len(queries) == 0 {
		return nil, &domain.ErrValidation{Field: "items", Message: "shopping list has no pending items"}
	}

	if s.comparer == nil {
		return placeholderComparison(queries), nil
	}

	raw, err := s.comparer.Compare(ctx, queries, stores)
	if err != nil {
		s.metrics.IncrAdvisorRequest("error")
		s.metrics.IncrCollaboratorError("gemini")
		s.logger.Warn("price comparison call failed, returning placeholder",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return placeholderComparison(queries), nil
	}

	result, perr := parseComparison(raw)
	if perr != nil {
		s.metrics.IncrAdvisorRequest("fallback")
		s.logger.Warn("price comparison response unparseable, returning placeholder",
			zap.String("user_id", userID),
			zap.Error(perr),
		)
		return placeholderComparison(queries), nil
	}

	s.metrics.IncrAdvisorRequest("success")
	return result, nil
}

func buildAdvisorPrompt(summary *domain.Summary, query string) string {
	var sb strings.Builder
	sb.WriteString("Situación financiera del usuario este mes:\n")
	fmt.Fprintf(&sb, "- Ingresos totales: %.2f\n", summary.TotalIncome)
	fmt.Fprintf(&sb, "- Gastos totales: %.2f\n", summary.TotalExpense)
	fmt.Fprintf(&sb, "- Balance: %.2f\n", summary.Balance)
	fmt.Fprintf(&sb, "- Gastos fijos pendientes: %.2f\n", summary.TotalPendingFixed)
	fmt.Fprintf(&sb, "- Deuda total: %.2f\n", summary.TotalDebt)
	if summary.Budget != nil {
		fmt.Fprintf(&sb, "- Presupuesto del mes (%s): ingreso estimado %.2f\n",
			summary.Budget.ID, summary.Budget.EstimatedIncome)
		cats := make([]string, 0, len(summary.Budget.Allocations))
		for cat := range summary.Budget.Allocations {
			cats = append(cats, cat)
		}
		sort.Strings(cats)
		for _, cat := range cats {
			fmt.Fprintf(&sb, "  - %s: %.2f\n", cat, summary.Budget.Allocations[cat])
		}
	}
	sb.WriteString("\nPregunta del usuario: ")
	sb.WriteString(query)
	return sb.String()
}

// parseComparison extracts the first {...} block from the model text
// and decodes it. Models often wrap JSON in fences or prose; taking
// the outermost braces tolerates both.
func parseComparison(raw string) (*domain.PriceComparison, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return nil, &domain.ErrParse{Source: "price_comparison", Err: fmt.Errorf("no JSON object in response")}
	}

	var result domain.PriceComparison
	if err := json.Unmarshal([]byte(raw[start:end+1]), &result); err != nil {
		return nil, &domain.ErrParse{Source: "price_comparison", Err: err}
	}
	return &result, nil
}

// placeholderComparison is the zero-filled structure: one entry per
// requested item with no suggestions, total 0 and the fallback tip.
func placeholderComparison(queries []domain.PriceQueryItem) *domain.PriceComparison {
	items := make([]domain.PriceComparisonItem, len(queries))
	for i, q := range queries {
		items[i] = domain.PriceComparisonItem{Name: q.Name, Suggestions: []domain.PriceSuggestion{}}
	}
	return &domain.PriceComparison{
		Items:          items,
		TotalEstimated: 0,
		BiblicalTip:    fallbackTip,
	}
}
