package agent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/etnz/investwise"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestSession_Send(t *testing.T) {
	gen := replying("The market looks volatile this month.")
	s := NewSession(gen, "", zerolog.Nop())

	reply, err := s.Send(context.Background(), "How is the market?")
	require.NoError(t, err)

	assert.Equal(t, "The market looks volatile this month.", reply.Text)
	assert.False(t, reply.Fallback)
	assert.Equal(t, FollowUps(reply.Text), reply.FollowUps)

	h := s.History()
	require.Len(t, h, 2)
	assert.Equal(t, genai.RoleUser, h[0].Role)
	assert.Equal(t, "How is the market?", h[0].Parts[0].Text)
	assert.Equal(t, genai.RoleModel, h[1].Role)
}

func TestSession_HistoryIsBounded(t *testing.T) {
	gen := &fakeGenerator{respond: func(_ context.Context, contents []*genai.Content) (*genai.GenerateContentResponse, error) {
		return textResponse("re: " + lastText(contents)), nil
	}}
	s := NewSession(gen, "", zerolog.Nop())

	for i := range MaxHistory + 2 {
		_, err := s.Send(context.Background(), fmt.Sprintf("message %d", i))
		require.NoError(t, err)
	}

	h := s.History()
	require.Len(t, h, 2*MaxHistory)
	assert.Equal(t, "message 2", h[0].Parts[0].Text)
	assert.Equal(t, "re: message 11", h[len(h)-1].Parts[0].Text)

	// the model is sent the kept history plus the new message
	calls := gen.Calls()
	assert.Len(t, calls[len(calls)-1], 2*MaxHistory+1)
}

func TestSession_Fallbacks(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want string
	}{
		{"quota", genai.APIError{Code: 429, Message: "quota exceeded"}, "I'm currently experiencing high demand."},
		{"quota message", errors.New("You exceeded your current quota"), "I'm currently experiencing high demand."},
		{"other", errors.New("dial tcp: no route to host"), "I'm having trouble connecting to the AI service."},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSession(failing(tc.err), "", zerolog.Nop())

			reply, err := s.Send(context.Background(), "hello")

			require.NoError(t, err)
			assert.True(t, reply.Fallback)
			assert.True(t, strings.HasPrefix(reply.Text, tc.want), reply.Text)
			assert.Len(t, reply.FollowUps, 3)
			assert.Empty(t, s.History(), "a failed exchange is not kept")
		})
	}
}

func TestSession_NoModel(t *testing.T) {
	s := NewSession(nil, "", zerolog.Nop())

	reply, err := s.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.True(t, reply.Fallback)
	assert.True(t, strings.HasPrefix(reply.Text, "I'm having trouble connecting"), reply.Text)
}

// blockingGenerator blocks on messages named "slow" until the request is cancelled.
func blockingGenerator(started chan<- struct{}) *fakeGenerator {
	return &fakeGenerator{respond: func(ctx context.Context, contents []*genai.Content) (*genai.GenerateContentResponse, error) {
		if lastText(contents) == "slow" {
			started <- struct{}{}
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return textResponse("fast answer"), nil
	}}
}

func TestSession_SendCancelsPending(t *testing.T) {
	started := make(chan struct{}, 1)
	s := NewSession(blockingGenerator(started), "", zerolog.Nop())

	errc := make(chan error, 1)
	go func() {
		_, err := s.Send(context.Background(), "slow")
		errc <- err
	}()
	<-started

	reply, err := s.Send(context.Background(), "quick")
	require.NoError(t, err)
	assert.Equal(t, "fast answer", reply.Text)

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("pending request was not cancelled")
	}

	h := s.History()
	require.Len(t, h, 2)
	assert.Equal(t, "quick", h[0].Parts[0].Text)
}

func TestSession_Close(t *testing.T) {
	started := make(chan struct{}, 1)
	s := NewSession(blockingGenerator(started), "", zerolog.Nop())

	errc := make(chan error, 1)
	go func() {
		_, err := s.Send(context.Background(), "slow")
		errc <- err
	}()
	<-started
	s.Close()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("pending request was not cancelled")
	}
	assert.Empty(t, s.History())

	_, err := s.Send(context.Background(), "quick")
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestSession_ToolCall(t *testing.T) {
	state := investwise.InitialState()
	gen := &fakeGenerator{}
	gen.respond = func(_ context.Context, contents []*genai.Content) (*genai.GenerateContentResponse, error) {
		last := contents[len(contents)-1]
		if r := last.Parts[0].FunctionResponse; r != nil {
			return textResponse(fmt.Sprint("simulated: ", r.Response["output"])), nil
		}
		return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: &genai.Content{
			Role: genai.RoleModel,
			Parts: []*genai.Part{{FunctionCall: &genai.FunctionCall{
				ID:   "call-1",
				Name: "simulate_allocation",
				Args: map[string]any{"equity": 50.0, "bonds": 30.0, "gold": 10.0, "crypto": 5.0, "cash": 5.0},
			}}},
		}}}}, nil
	}
	s := NewSession(gen, "", zerolog.Nop(), NewTools(state, investwise.DefaultHistory())...)

	reply, err := s.Send(context.Background(), "How would 50/30/10/5/5 have done?")
	require.NoError(t, err)

	assert.Contains(t, reply.Text, "CAGR: 9.31%")
	require.Len(t, gen.Calls(), 2)
	// only the question and the final answer are kept
	assert.Len(t, s.History(), 2)
}

func TestTools(t *testing.T) {
	state := investwise.InitialState()
	lib := NewLibrary(NewTools(state, investwise.DefaultHistory()))
	ctx := context.Background()

	plan := lib(ctx, &genai.FunctionCall{ID: "1", Name: "current_plan"})
	assert.Contains(t, plan.Response["output"], "# Investment Plan")

	cmp := lib(ctx, &genai.FunctionCall{ID: "2", Name: "compare_strategies"})
	assert.Contains(t, cmp.Response["output"], "AI Recommended")

	bad := lib(ctx, &genai.FunctionCall{ID: "3", Name: "simulate_allocation", Args: map[string]any{"equity": 50.0}})
	assert.Contains(t, bad.Response["error"], "missing")

	invalid := lib(ctx, &genai.FunctionCall{ID: "4", Name: "simulate_allocation", Args: map[string]any{"equity": 50.0, "bonds": 30.0, "gold": 10.0, "crypto": 5.0, "cash": 6.0}})
	assert.Contains(t, invalid.Response["error"], investwise.ErrAllocation.Error())

	unknown := lib(ctx, &genai.FunctionCall{ID: "5", Name: "buy_bitcoin"})
	assert.Equal(t, "5", unknown.ID)
	assert.Contains(t, unknown.Response["error"], "unknown function")
}

func TestFollowUps(t *testing.T) {
	testCases := []struct {
		text string
		want string
	}{
		{"The Nifty closed higher.", "What should I invest in today?"},
		{"Your allocation is fine.", "How to rebalance my portfolio?"},
		{"Start a SIP of 5000.", "Best SIP funds to invest in"},
		{"Hello!", "Tell me more"},
	}
	for _, tc := range testCases {
		got := FollowUps(tc.text)
		assert.Len(t, got, 3)
		assert.Equal(t, tc.want, got[0], tc.text)
	}
}

func TestAgent_Run(t *testing.T) {
	gen := replying("Diversify across asset classes.")
	var out bytes.Buffer
	a := New(&out, strings.NewReader("thanks\nbye\nignored\n"), NewSession(gen, "", zerolog.Nop()))

	require.NoError(t, a.Run(context.Background(), "What should I do?"))

	assert.Contains(t, out.String(), "assist> What should I do?")
	assert.Equal(t, 2, strings.Count(out.String(), "Diversify across asset classes."))
	assert.Len(t, gen.Calls(), 2)
}
