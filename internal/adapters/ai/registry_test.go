package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concierge/pkg/errors"
)

type metadataProvider struct{}

func (p *metadataProvider) Name() string { return "meta" }

func (p *metadataProvider) GetModel(_ context.Context, model string) (ModelInfo, error) {
	return ModelInfo{Name: model, MaxTokens: 4096}, nil
}

func (p *metadataProvider) ListModels(_ context.Context) ([]ModelInfo, error) {
	return nil, nil
}

func (p *metadataProvider) SupportsStreaming() bool { return false }
func (p *metadataProvider) SupportsTools() bool     { return false }

type chatProvider struct {
	metadataProvider
	response *ChatResponse
	lastReq  ChatRequest
}

func (p *chatProvider) Name() string { return "chatty" }

func (p *chatProvider) Chat(_ context.Context, req ChatRequest) (*ChatResponse, error) {
	p.lastReq = req
	return p.response, nil
}

func TestProviderRegistry_Register(t *testing.T) {
	reg := NewProviderRegistry()

	require.NoError(t, reg.Register(&metadataProvider{}))
	assert.Error(t, reg.Register(&metadataProvider{}), "duplicate registration should fail")
	assert.Error(t, reg.Register(nil))

	provider, err := reg.Get("meta")
	require.NoError(t, err)
	assert.Equal(t, "meta", provider.Name())

	_, err = reg.Get("unknown")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestProviderRegistry_GetChat(t *testing.T) {
	reg := NewProviderRegistry()
	require.NoError(t, reg.Register(&metadataProvider{}))
	require.NoError(t, reg.Register(&chatProvider{}))

	_, err := reg.GetChat("meta")
	require.Error(t, err, "metadata-only provider should not satisfy chat")
	assert.True(t, errors.Is(err, errors.ErrNotImplemented))

	chat, err := reg.GetChat("chatty")
	require.NoError(t, err)
	assert.Equal(t, "chatty", chat.Name())
}

func TestProviderRegistry_ResolveModel(t *testing.T) {
	reg := NewProviderRegistry()
	require.NoError(t, reg.Register(&metadataProvider{}))

	info, err := reg.ResolveModel(context.Background(), "meta", "some-model")
	require.NoError(t, err)
	assert.Equal(t, "some-model", info.Name)
	assert.Equal(t, 4096, info.MaxTokens)
}

func TestUsage_Add(t *testing.T) {
	total := Usage{}
	total.Add(Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15})
	total.Add(Usage{PromptTokens: 2, CompletionTokens: 3, TotalTokens: 5})

	assert.Equal(t, 12, total.PromptTokens)
	assert.Equal(t, 8, total.CompletionTokens)
	assert.Equal(t, 20, total.TotalTokens)
}
