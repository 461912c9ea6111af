package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	adkmodel "google.golang.org/adk/model"
	adksession "google.golang.org/adk/session"

	"concierge/internal/adapters/ai"
	"concierge/internal/tools"
	"concierge/internal/tools/assistant"
	"concierge/pkg/errors"
	"concierge/pkg/templates"
)

type testProvider struct{}

func (p *testProvider) Name() string { return "test_provider" }

func (p *testProvider) GetModel(_ context.Context, model string) (ai.ModelInfo, error) {
	return ai.ModelInfo{
		Name:              model,
		Family:            "test",
		MaxTokens:         4096,
		InputCostPer1K:    0.001,
		OutputCostPer1K:   0.002,
		SupportsTools:     true,
		SupportsStreaming: true,
	}, nil
}

func (p *testProvider) ListModels(_ context.Context) ([]ai.ModelInfo, error) {
	return nil, nil
}

func (p *testProvider) SupportsStreaming() bool { return true }
func (p *testProvider) SupportsTools() bool     { return true }

func newTestFactory(t *testing.T, models ...*scriptedLLM) *Factory {
	t.Helper()

	aiRegistry := ai.NewProviderRegistry()
	require.NoError(t, aiRegistry.Register(&testProvider{}))

	toolRegistry := tools.NewRegistry()
	assistant.Register(toolRegistry)

	queue := models
	factory, err := NewFactory(FactoryDeps{
		AIRegistry:   aiRegistry,
		ToolRegistry: toolRegistry,
		Templates:    templates.Get(),
		NewModel: func(_ context.Context, modelName string) (adkmodel.LLM, error) {
			if len(queue) == 0 {
				return &scriptedLLM{name: modelName}, nil
			}
			next := queue[0]
			queue = queue[1:]
			next.name = modelName
			return next, nil
		},
	})
	require.NoError(t, err)

	return factory
}

func TestNewFactory_RequiresRegistries(t *testing.T) {
	_, err := NewFactory(FactoryDeps{})
	assert.Error(t, err)

	_, err = NewFactory(FactoryDeps{ToolRegistry: tools.NewRegistry()})
	assert.Error(t, err)
}

func TestNewFactory_RequiresModelCredentials(t *testing.T) {
	aiRegistry := ai.NewProviderRegistry()
	require.NoError(t, aiRegistry.Register(&testProvider{}))

	toolRegistry := tools.NewRegistry()
	assistant.Register(toolRegistry)

	_, err := NewFactory(FactoryDeps{
		AIRegistry:   aiRegistry,
		ToolRegistry: toolRegistry,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNoAPIKey))

	_, err = NewFactory(FactoryDeps{
		AIRegistry:   aiRegistry,
		ToolRegistry: toolRegistry,
		GeminiAPIKey: "test-key",
	})
	assert.NoError(t, err)
}

func TestFactory_CreateAgent(t *testing.T) {
	factory := newTestFactory(t)

	ag, err := factory.CreateAgent(context.Background(), DefaultAgentConfigs[AgentWeather], "test_provider", "test-model")
	require.NoError(t, err)

	assert.Equal(t, "weather_agent", ag.Name())
}

func TestFactory_CreateAgent_UnknownProvider(t *testing.T) {
	factory := newTestFactory(t)

	_, err := factory.CreateAgent(context.Background(), DefaultAgentConfigs[AgentWeather], "missing", "test-model")
	assert.Error(t, err)
}

func TestFactory_CreateWorkers(t *testing.T) {
	factory := newTestFactory(t)

	workers, err := factory.CreateWorkers(context.Background(), "test_provider", "test-model")
	require.NoError(t, err)

	assert.ElementsMatch(t, WorkerAgentTypes(), workers.List())

	for _, agentType := range WorkerAgentTypes() {
		ag, ok := workers.Get(agentType)
		require.True(t, ok)
		assert.Equal(t, DefaultAgentConfigs[agentType].Name, ag.Name())
	}
}

func TestFactory_CreateRouter(t *testing.T) {
	factory := newTestFactory(t)

	workers, err := factory.CreateWorkers(context.Background(), "test_provider", "test-model")
	require.NoError(t, err)

	router, err := factory.CreateRouter(context.Background(), workers, adksession.InMemoryService(), "test_provider", "test-model")
	require.NoError(t, err)

	assert.Equal(t, "router_agent", router.Name())
}

func TestFactory_CreateRouter_MissingWorker(t *testing.T) {
	factory := newTestFactory(t)

	_, err := factory.CreateRouter(context.Background(), NewRegistry(), adksession.InMemoryService(), "test_provider", "test-model")
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	factory := newTestFactory(t)

	reg := NewRegistry()
	assert.Empty(t, reg.List())

	ag, err := factory.CreateAgent(context.Background(), DefaultAgentConfigs[AgentFitness], "test_provider", "test-model")
	require.NoError(t, err)

	reg.Register(AgentFitness, ag)

	got, ok := reg.Get(AgentFitness)
	require.True(t, ok)
	assert.Equal(t, "fitness_agent", got.Name())

	_, ok = reg.Get(AgentWeather)
	assert.False(t, ok)
}

func TestExecutionOutput_RoutedAgents(t *testing.T) {
	factory := newTestFactory(t)

	workers, err := factory.CreateWorkers(context.Background(), "test_provider", "test-model")
	require.NoError(t, err)

	out := &ExecutionOutput{
		ToolCalls: []ToolCallRecord{
			{Name: "weather_agent"},
			{Name: "get_weather_info"},
			{Name: "nutrition_agent"},
		},
	}

	routed := out.RoutedAgents(workers)
	assert.Equal(t, []string{"weather_agent", "nutrition_agent"}, routed)
}
