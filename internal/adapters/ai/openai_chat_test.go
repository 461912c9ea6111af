package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concierge/pkg/errors"
)

func TestToOpenAIMessages(t *testing.T) {
	messages := toOpenAIMessages([]Message{
		{Role: RoleSystem, Content: "You are a supervisor."},
		{Role: RoleUser, Content: "What should I eat for breakfast?"},
		{Role: RoleAssistant, ToolCalls: []ToolCall{
			{ID: "call_1", Name: "get_nutrition_help", Arguments: `{"request":"breakfast ideas"}`},
		}},
		{Role: RoleTool, Content: "Suggested breakfast: Greek yogurt", ToolCallID: "call_1"},
		{Role: RoleAssistant, Content: "Try Greek yogurt with berries."},
	})

	require.Len(t, messages, 5)

	assert.NotNil(t, messages[0].OfSystem)
	assert.NotNil(t, messages[1].OfUser)

	require.NotNil(t, messages[2].OfAssistant)
	require.Len(t, messages[2].OfAssistant.ToolCalls, 1)
	call := messages[2].OfAssistant.ToolCalls[0].OfFunction
	require.NotNil(t, call)
	assert.Equal(t, "call_1", call.ID)
	assert.Equal(t, "get_nutrition_help", call.Function.Name)

	assert.NotNil(t, messages[3].OfTool)
	assert.NotNil(t, messages[4].OfAssistant)
}

func TestToFinishReason(t *testing.T) {
	assert.Equal(t, FinishReasonStop, toFinishReason("stop"))
	assert.Equal(t, FinishReasonLength, toFinishReason("length"))
	assert.Equal(t, FinishReasonToolCalls, toFinishReason("tool_calls"))
	assert.Equal(t, FinishReasonStop, toFinishReason("weird"))
}

func TestModelCatalogs(t *testing.T) {
	for _, m := range geminiModels() {
		assert.Equal(t, ProviderNameGemini, m.Provider)
		assert.NotEmpty(t, m.Name)
		assert.Greater(t, m.MaxTokens, 0)
	}

	for _, m := range openAIModels() {
		assert.Equal(t, ProviderNameOpenAI, m.Provider)
		assert.NotEmpty(t, m.Name)
		assert.Greater(t, m.MaxTokens, 0)
	}
}

func TestOpenAIChat_CancelledContextIsNotRateLimited(t *testing.T) {
	provider, err := NewOpenAIProvider("test-key", 60, time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = provider.Chat(ctx, ChatRequest{
		Model:    "gpt-4o-mini",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	})
	require.Error(t, err)
	assert.False(t, errors.Is(err, errors.ErrRateLimited))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestOpenAIChat_ExpiredDeadlineIsTimeout(t *testing.T) {
	provider, err := NewOpenAIProvider("test-key", 60, time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), -time.Second)
	defer cancel()

	_, err = provider.Chat(ctx, ChatRequest{
		Model:    "gpt-4o-mini",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTimeout))
	assert.False(t, errors.Is(err, errors.ErrRateLimited))
}
