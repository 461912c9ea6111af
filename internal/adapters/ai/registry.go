package ai

import (
	"context"
	"sync"

	"concierge/pkg/errors"
)

// ProviderRegistry stores all available AI providers.
type ProviderRegistry struct {
	providers map[string]Provider
	mu        sync.RWMutex
}

// NewProviderRegistry creates an empty registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]Provider),
	}
}

// Register adds a provider to the registry.
func (r *ProviderRegistry) Register(provider Provider) error {
	if provider == nil {
		return errors.Wrap(errors.ErrInvalidInput, "provider is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := provider.Name()
	if _, exists := r.providers[name]; exists {
		return errors.Newf("provider %s already registered", name)
	}

	r.providers[name] = provider
	return nil
}

// Get returns the provider by name.
func (r *ProviderRegistry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, ok := r.providers[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "provider %s", name)
	}

	return provider, nil
}

// GetChat returns the provider by name if it supports chat completions.
func (r *ProviderRegistry) GetChat(name string) (ChatProvider, error) {
	provider, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	chat, ok := provider.(ChatProvider)
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotImplemented, "provider %s does not support chat", name)
	}

	return chat, nil
}

// List returns all registered providers.
func (r *ProviderRegistry) List() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]Provider, 0, len(r.providers))
	for _, p := range r.providers {
		providers = append(providers, p)
	}

	return providers
}

// ResolveModel fetches model metadata for provider+model combination.
func (r *ProviderRegistry) ResolveModel(ctx context.Context, providerName string, model string) (ModelInfo, error) {
	provider, err := r.Get(providerName)
	if err != nil {
		return ModelInfo{}, err
	}

	return provider.GetModel(ctx, model)
}
