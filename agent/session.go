package agent

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// MaxHistory is the number of exchanges kept as conversation context.
const MaxHistory = 10

// maxToolRounds bounds the number of function call round trips in one reply.
const maxToolRounds = 5

// ErrSessionClosed is returned by Send once the session is closed.
var ErrSessionClosed = errors.New("chat session is closed")

const systemPrompt = `You are an expert investment advisor for InvestWise platform. Provide clear,
actionable investment advice. Focus on Indian markets, SEBI regulations, and tax implications.
Be concise but thorough. If unsure, say so. Format responses with proper spacing and bullet points when needed.

Use the available tools to read the user's current plan, to back-test an allocation on historical
returns, or to compare the plan with reference strategies, instead of guessing figures.`

// Reply is the answer to a chat message.
type Reply struct {
	Text string
	// FollowUps are questions the user may ask next.
	FollowUps []string
	// Fallback is set when Text is a canned answer because the model failed.
	Fallback bool
}

var (
	highDemandReply = Reply{
		Text: "I'm currently experiencing high demand. Here's what I can tell you based on general knowledge:" +
			"\n\n• Consider index funds for long-term growth\n" +
			"• Diversify across asset classes\n" +
			"• Review your risk tolerance regularly",
		FollowUps: []string{
			"Tell me about index funds",
			"How to diversify my portfolio?",
			"What is risk tolerance?",
		},
		Fallback: true,
	}
	connectionReply = Reply{
		Text: "I'm having trouble connecting to the AI service. Please try again later or check your internet connection.",
		FollowUps: []string{
			"Try again",
			"Contact support",
			"Check your connection",
		},
		Fallback: true,
	}
)

// Session is a chat conversation with the model.
//
// At most one request is in flight: Send cancels the pending one, if any.
// Session is safe for concurrent use.
type Session struct {
	ID uuid.UUID

	gen     Generator
	model   string
	config  *genai.GenerateContentConfig
	library Library
	log     zerolog.Logger

	mu      sync.Mutex
	history []*genai.Content // user and model turns, oldest first
	cancel  context.CancelFunc
	seq     uint64
	closed  bool
}

// NewSession creates a chat session. The model can call the given tools.
func NewSession(gen Generator, model string, log zerolog.Logger, tools ...Function) *Session {
	if model == "" {
		model = DefaultModel
	}
	id := uuid.New()
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.7),
		MaxOutputTokens:   1000,
	}
	if len(tools) > 0 {
		config.Tools = []*genai.Tool{{FunctionDeclarations: NewDeclaration(tools)}}
	}
	return &Session{
		ID:      id,
		gen:     gen,
		model:   model,
		config:  config,
		library: NewLibrary(tools),
		log:     log.With().Str("component", "chat").Str("session", id.String()).Logger(),
	}
}

// Send sends a message and waits for the reply.
//
// If the request is cancelled, either by ctx, by a newer Send or by Close,
// Send returns the context error and the history is left untouched. Model
// failures are not errors: a fallback Reply is returned instead.
func (s *Session) Send(ctx context.Context, message string) (Reply, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Reply{}, ErrSessionClosed
	}
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.seq++
	seq := s.seq
	s.cancel = cancel
	question := genai.NewContentFromText(message, genai.RoleUser)
	contents := append(slices.Clone(s.history), question)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if s.seq == seq {
			s.cancel = nil
		}
		s.mu.Unlock()
		cancel()
	}()

	text, err := s.exchange(ctx, contents)
	if ctx.Err() != nil {
		s.log.Debug().Msg("request aborted")
		return Reply{}, ctx.Err()
	}
	if err != nil {
		s.log.Error().Err(err).Msg("chat request failed")
		if isQuotaError(err) {
			return clone(highDemandReply), nil
		}
		return clone(connectionReply), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq != seq || s.closed {
		// superseded while the reply was on its way
		return Reply{}, context.Canceled
	}
	s.history = append(s.history, question, genai.NewContentFromText(text, genai.RoleModel))
	if n := len(s.history) - 2*MaxHistory; n > 0 {
		s.history = slices.Clone(s.history[n:])
	}
	return Reply{Text: text, FollowUps: FollowUps(text)}, nil
}

// exchange sends contents and resolves function calls until the model
// answers with text.
func (s *Session) exchange(ctx context.Context, contents []*genai.Content) (string, error) {
	if s.gen == nil {
		return "", errNoModel
	}
	for range maxToolRounds {
		resp, err := s.gen.GenerateContent(ctx, s.model, contents, s.config)
		if err != nil {
			return "", err
		}
		content, err := firstContent(resp)
		if err != nil {
			return "", err
		}

		var calls []*genai.Part
		for _, p := range content.Parts {
			if p.FunctionCall != nil {
				s.log.Debug().Str("function", p.FunctionCall.Name).Msg("tool call")
				calls = append(calls, &genai.Part{FunctionResponse: s.library(ctx, p.FunctionCall)})
			}
		}
		if len(calls) == 0 {
			return responseText(resp)
		}
		// Ask again with the responses it asked for until we have a real answer.
		contents = append(contents, content, genai.NewContentFromParts(calls, genai.RoleUser))
	}
	return "", fmt.Errorf("no answer after %d tool calls", maxToolRounds)
}

// Close cancels the pending request, if any. Subsequent Send fail.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// History returns a copy of the conversation kept as context.
func (s *Session) History() []*genai.Content {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history)
}

// FollowUps suggests questions to ask after a reply.
func FollowUps(text string) []string {
	lower := strings.ToLower(text)
	containsAny := func(words ...string) bool {
		return slices.ContainsFunc(words, func(w string) bool { return strings.Contains(lower, w) })
	}
	switch {
	case containsAny("market", "nifty", "sensex"):
		return []string{
			"What should I invest in today?",
			"Show me sector performance",
			"Market outlook for next month?",
		}
	case containsAny("portfolio", "allocation"):
		return []string{
			"How to rebalance my portfolio?",
			"Best allocation for my age?",
			"How often to review allocation?",
		}
	case containsAny("sip", "systematic"):
		return []string{
			"Best SIP funds to invest in",
			"Lump sum vs SIP",
			"How to increase my SIP amount?",
		}
	}
	return []string{
		"Tell me more",
		"What about other options?",
		"How does this compare?",
	}
}

func clone(r Reply) Reply {
	r.FollowUps = slices.Clone(r.FollowUps)
	return r
}
