package supervisor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concierge/internal/adapters/ai"
	"concierge/internal/tools"
	"concierge/internal/tools/assistant"
	"concierge/pkg/errors"
)

// scriptedProvider replays a fixed sequence of responses across Chat calls,
// regardless of which agent is asking.
type scriptedProvider struct {
	responses []*ChatResponseOrError
	requests  []ai.ChatRequest
}

type ChatResponseOrError struct {
	Response *ai.ChatResponse
	Err      error
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) GetModel(_ context.Context, model string) (ai.ModelInfo, error) {
	return ai.ModelInfo{Name: model, MaxTokens: 4096, InputCostPer1K: 0.001, OutputCostPer1K: 0.002}, nil
}

func (p *scriptedProvider) ListModels(_ context.Context) ([]ai.ModelInfo, error) { return nil, nil }
func (p *scriptedProvider) SupportsStreaming() bool                              { return false }
func (p *scriptedProvider) SupportsTools() bool                                  { return true }

func (p *scriptedProvider) Chat(_ context.Context, req ai.ChatRequest) (*ai.ChatResponse, error) {
	p.requests = append(p.requests, req)

	if len(p.responses) == 0 {
		return nil, errors.New("scripted provider exhausted")
	}

	next := p.responses[0]
	p.responses = p.responses[1:]
	return next.Response, next.Err
}

func textResponse(text string) *ChatResponseOrError {
	return &ChatResponseOrError{Response: &ai.ChatResponse{
		Choices: []ai.Choice{{
			Message:      ai.Message{Role: ai.RoleAssistant, Content: text},
			FinishReason: ai.FinishReasonStop,
		}},
		Usage: ai.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}}
}

func toolCallResponse(id, name, arguments string) *ChatResponseOrError {
	return &ChatResponseOrError{Response: &ai.ChatResponse{
		Choices: []ai.Choice{{
			Message: ai.Message{
				Role:      ai.RoleAssistant,
				ToolCalls: []ai.ToolCall{{ID: id, Name: name, Arguments: arguments}},
			},
			FinishReason: ai.FinishReasonToolCalls,
		}},
		Usage: ai.Usage{PromptTokens: 20, CompletionTokens: 10, TotalTokens: 30},
	}}
}

func newTestRegistry() *tools.Registry {
	reg := tools.NewRegistry()
	assistant.Register(reg)
	return reg
}

func TestChatAgent_DirectAnswer(t *testing.T) {
	provider := &scriptedProvider{responses: []*ChatResponseOrError{
		textResponse("Hello! How can I help?"),
	}}

	agent, err := NewChatAgent(provider, ChatAgentConfig{
		Name:         "test_agent",
		Model:        "test-model",
		SystemPrompt: "You are helpful.",
	})
	require.NoError(t, err)

	result, err := agent.Invoke(context.Background(), "Hi")
	require.NoError(t, err)

	assert.Equal(t, "Hello! How can I help?", result.Content)
	assert.Equal(t, 1, result.Turns)
	assert.Empty(t, result.ToolCalls)
	assert.Equal(t, 15, result.Usage.TotalTokens)

	// System prompt goes first, then the user message
	require.Len(t, provider.requests, 1)
	messages := provider.requests[0].Messages
	require.Len(t, messages, 2)
	assert.Equal(t, ai.RoleSystem, messages[0].Role)
	assert.Equal(t, ai.RoleUser, messages[1].Role)
}

func TestChatAgent_ToolLoop(t *testing.T) {
	provider := &scriptedProvider{responses: []*ChatResponseOrError{
		toolCallResponse("call_1", "get_weather_info", `{"city":"San Francisco"}`),
		textResponse("It's 72°F and sunny in San Francisco."),
	}}

	reg := newTestRegistry()
	weatherTool, ok := reg.Get("get_weather_info")
	require.True(t, ok)

	agent, err := NewChatAgent(provider, ChatAgentConfig{
		Name:  "weather_agent",
		Model: "test-model",
		Tools: []tools.Tool{weatherTool},
	})
	require.NoError(t, err)

	result, err := agent.Invoke(context.Background(), "What's the weather in San Francisco?")
	require.NoError(t, err)

	assert.Equal(t, "It's 72°F and sunny in San Francisco.", result.Content)
	assert.Equal(t, 2, result.Turns)
	assert.Equal(t, []string{"get_weather_info"}, result.ToolCalls)
	assert.Equal(t, 45, result.Usage.TotalTokens)

	// Second request must include the assistant tool call and the tool result
	require.Len(t, provider.requests, 2)
	second := provider.requests[1].Messages
	require.Len(t, second, 3)
	assert.Equal(t, ai.RoleAssistant, second[1].Role)
	assert.Equal(t, ai.RoleTool, second[2].Role)
	assert.Equal(t, "call_1", second[2].ToolCallID)
	assert.Contains(t, second[2].Content, "Weather in San Francisco")
}

func TestChatAgent_UnknownToolFedBackToModel(t *testing.T) {
	provider := &scriptedProvider{responses: []*ChatResponseOrError{
		toolCallResponse("call_1", "nonexistent_tool", `{}`),
		textResponse("I could not use that tool."),
	}}

	agent, err := NewChatAgent(provider, ChatAgentConfig{Name: "test_agent", Model: "test-model"})
	require.NoError(t, err)

	result, err := agent.Invoke(context.Background(), "Do something")
	require.NoError(t, err)

	assert.Equal(t, "I could not use that tool.", result.Content)

	second := provider.requests[1].Messages
	assert.Contains(t, second[len(second)-1].Content, "Error:")
}

func TestChatAgent_MaxTurnsExceeded(t *testing.T) {
	provider := &scriptedProvider{responses: []*ChatResponseOrError{
		toolCallResponse("call_1", "get_weather_info", `{"city":"SF"}`),
		toolCallResponse("call_2", "get_weather_info", `{"city":"SF"}`),
	}}

	reg := newTestRegistry()
	weatherTool, _ := reg.Get("get_weather_info")

	agent, err := NewChatAgent(provider, ChatAgentConfig{
		Name:     "weather_agent",
		Model:    "test-model",
		Tools:    []tools.Tool{weatherTool},
		MaxTurns: 2,
	})
	require.NoError(t, err)

	_, err = agent.Invoke(context.Background(), "Weather?")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMaxTurns))
}

func TestChatAgent_ProviderError(t *testing.T) {
	provider := &scriptedProvider{responses: []*ChatResponseOrError{
		{Err: &ai.RateLimitError{Provider: ai.ProviderNameOpenAI, Err: errors.New("429")}},
	}}

	agent, err := NewChatAgent(provider, ChatAgentConfig{Name: "test_agent", Model: "test-model"})
	require.NoError(t, err)

	_, err = agent.Invoke(context.Background(), "Hi")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrRateLimited))
}
