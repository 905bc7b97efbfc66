package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/investwise"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Generator is the part of the Gemini client used by this package.
//
// *genai.Models implements it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// NewClient creates a Gemini client. An empty apiKey lets the client read
// GEMINI_API_KEY or GOOGLE_API_KEY from the environment.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	cfg := &genai.ClientConfig{Backend: genai.BackendGeminiAPI}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not create gemini client: %w", err)
	}
	return client, nil
}

var (
	errNoModel        = errors.New("no model configured")
	errNoResponse     = errors.New("empty response from model")
	errNoSuggestions  = errors.New("no suggestions in model response")
	suggestionsPaths  = []string{"$", "$.suggestions", "$.recommendations", "$.investments"}
	suggestionsConfig = &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
)

// Advisor asks the model for concrete investment vehicles matching a plan.
type Advisor struct {
	gen   Generator
	model string
	log   zerolog.Logger
}

// NewAdvisor creates an Advisor using the given model.
func NewAdvisor(gen Generator, model string, log zerolog.Logger) *Advisor {
	if model == "" {
		model = DefaultModel
	}
	return &Advisor{
		gen:   gen,
		model: model,
		log:   log.With().Str("component", "advisor").Logger(),
	}
}

// Suggest returns suggestions for the request. It never fails: whatever goes
// wrong with the model, the rule based FallbackSuggestions are returned.
func (a *Advisor) Suggest(ctx context.Context, req investwise.SuggestionRequest) []investwise.Suggestion {
	suggestions, err := a.suggest(ctx, req)
	if err != nil {
		if isQuotaError(err) {
			a.log.Warn().Msg("Gemini API quota exceeded, using fallback recommendations")
		}
		a.log.Error().Err(err).Str("profile", req.RiskProfile.String()).Msg("could not generate investment suggestions")
		return FallbackSuggestions(req)
	}
	a.log.Debug().Int("categories", len(suggestions)).Msg("suggestions generated")
	return suggestions
}

func (a *Advisor) suggest(ctx context.Context, req investwise.SuggestionRequest) ([]investwise.Suggestion, error) {
	if a.gen == nil {
		return nil, errNoModel
	}
	contents := []*genai.Content{genai.NewContentFromText(SuggestionPrompt(req), genai.RoleUser)}
	resp, err := a.gen.GenerateContent(ctx, a.model, contents, suggestionsConfig)
	if err != nil {
		return nil, err
	}
	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}
	return ParseSuggestions(text)
}

// SuggestionPrompt is the prompt sent to the model for a request.
func SuggestionPrompt(req investwise.SuggestionRequest) string {
	return fmt.Sprintf(`As a financial advisor, please provide specific investment recommendations based on the following information:

Monthly Investment Amount: %s
Risk Profile: %s
Asset Allocation:
- Equity: %d%%
- Bonds: %d%%
- Gold: %d%%
- Cryptocurrency: %d%%
- Cash: %d%%

I need specific investment recommendations for each asset class that are available in India. For each asset class, provide 2-4 specific investment options including names of actual funds, ETFs, or investment vehicles that match this allocation.

Format your response as a JSON array with this structure:
[
  {"category": "Equity Mutual Funds", "options": ["Fund 1 - Description", "Fund 2 - Description"]},
  {"category": "Debt Instruments", "options": ["Bond 1 - Description", "Bond 2 - Description"]}
]

Only return the JSON array and nothing else.`,
		req.MonthlyAmount, req.RiskProfile,
		req.EquityAllocation, req.BondsAllocation, req.GoldAllocation, req.CryptoAllocation, req.CashAllocation)
}

// ParseSuggestions extracts suggestions from a model response.
//
// The response is either a JSON array of suggestions, an object wrapping
// that array, or free text around a JSON array.
func ParseSuggestions(text string) ([]investwise.Suggestion, error) {
	var doc any
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &doc); err == nil {
		for _, path := range suggestionsPaths {
			v, err := jsonpath.Get(path, doc)
			if err != nil {
				continue
			}
			if list, ok := v.([]any); ok {
				return decodeSuggestions(list)
			}
		}
	}

	start, end := strings.Index(text, "["), strings.LastIndex(text, "]")
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no JSON array found", errNoSuggestions)
	}
	var list []any
	if err := json.Unmarshal([]byte(text[start:end+1]), &list); err != nil {
		return nil, fmt.Errorf("invalid suggestions array: %w", err)
	}
	return decodeSuggestions(list)
}

// decodeSuggestions keeps the entries that have a category and at least one option.
func decodeSuggestions(list []any) ([]investwise.Suggestion, error) {
	b, err := json.Marshal(list)
	if err != nil {
		return nil, err
	}
	var all []investwise.Suggestion
	if err := json.Unmarshal(b, &all); err != nil {
		return nil, fmt.Errorf("invalid suggestion entry: %w", err)
	}
	result := make([]investwise.Suggestion, 0, len(all))
	for _, s := range all {
		if strings.TrimSpace(s.Category) == "" || len(s.Options) == 0 {
			continue
		}
		result = append(result, s)
	}
	if len(result) == 0 {
		return nil, errNoSuggestions
	}
	return result, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	content, err := firstContent(resp)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, p := range content.Parts {
		b.WriteString(p.Text)
	}
	if b.Len() == 0 {
		return "", errNoResponse
	}
	return b.String(), nil
}

func firstContent(resp *genai.GenerateContentResponse) (*genai.Content, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, errNoResponse
	}
	return resp.Candidates[0].Content, nil
}

// isQuotaError reports whether err signals an exhausted quota or rate limit.
func isQuotaError(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "quota") || strings.Contains(msg, "429")
}
