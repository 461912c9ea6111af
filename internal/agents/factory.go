package agents

import (
	"context"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	adkmodel "google.golang.org/adk/model"
	adkgemini "google.golang.org/adk/model/gemini"
	adksession "google.golang.org/adk/session"
	adktool "google.golang.org/adk/tool"
	"google.golang.org/genai"

	"concierge/internal/adapters/ai"
	"concierge/internal/tools"
	"concierge/internal/tools/assistant"
	"concierge/pkg/errors"
	"concierge/pkg/templates"
)

// ModelFunc constructs the LLM backing an agent.
type ModelFunc func(ctx context.Context, modelName string) (adkmodel.LLM, error)

// FactoryDeps gathers external dependencies needed to instantiate agents.
type FactoryDeps struct {
	AIRegistry   *ai.ProviderRegistry
	ToolRegistry *tools.Registry
	Templates    *templates.Registry

	// GeminiAPIKey authenticates the default Gemini model backend.
	GeminiAPIKey string
	// NewModel overrides model construction. When nil, models are built
	// against the Gemini API using GeminiAPIKey.
	NewModel ModelFunc
}

// Factory creates configured agents and registries.
type Factory struct {
	aiRegistry   *ai.ProviderRegistry
	toolRegistry *tools.Registry
	templates    *templates.Registry
	newModel     ModelFunc
}

// NewFactory builds an agent factory with required dependencies.
func NewFactory(deps FactoryDeps) (*Factory, error) {
	if deps.ToolRegistry == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "tool registry is required")
	}

	if deps.AIRegistry == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "AI provider registry is required")
	}

	if deps.Templates == nil {
		deps.Templates = templates.Get()
	}

	if deps.NewModel == nil {
		if deps.GeminiAPIKey == "" {
			return nil, errors.Wrap(errors.ErrNoAPIKey, "gemini api key is required for agent models")
		}

		apiKey := deps.GeminiAPIKey
		deps.NewModel = func(ctx context.Context, modelName string) (adkmodel.LLM, error) {
			return adkgemini.NewModel(ctx, modelName, &genai.ClientConfig{
				APIKey:  apiKey,
				Backend: genai.BackendGeminiAPI,
			})
		}
	}

	return &Factory{
		aiRegistry:   deps.AIRegistry,
		toolRegistry: deps.ToolRegistry,
		templates:    deps.Templates,
		newModel:     deps.NewModel,
	}, nil
}

// CreateAgent constructs a single ADK agent instance from a config.
func (f *Factory) CreateAgent(ctx context.Context, cfg AgentConfig, provider, model string) (agent.Agent, error) {
	modelInfo, err := f.aiRegistry.ResolveModel(ctx, provider, model)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve model %s/%s", provider, model)
	}

	llmModel, err := f.newModel(ctx, modelInfo.Name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create model %s", modelInfo.Name)
	}

	agentTools, err := assistant.ADKTools(f.toolRegistry, cfg.Tools)
	if err != nil {
		return nil, err
	}

	instruction, err := f.renderInstruction(cfg, nil)
	if err != nil {
		return nil, err
	}

	return llmagent.New(llmagent.Config{
		Name:        cfg.Name,
		Description: cfg.Description,
		Model:       llmModel,
		Tools:       agentTools,
		Instruction: instruction,
		OutputKey:   cfg.OutputKey,
	})
}

// CreateWorkers builds all specialist agents and registers them by type.
func (f *Factory) CreateWorkers(ctx context.Context, provider, model string) (*Registry, error) {
	reg := NewRegistry()

	for _, agentType := range WorkerAgentTypes() {
		cfg := DefaultAgentConfigs[agentType]
		ag, err := f.CreateAgent(ctx, cfg, provider, model)
		if err != nil {
			return nil, err
		}
		reg.Register(agentType, ag)
	}

	return reg, nil
}

// CreateRouter builds the router agent with every registered worker wrapped
// as a callable tool. Wrapping is uniform: one NewAgentTool call per worker,
// no per-worker glue code.
func (f *Factory) CreateRouter(ctx context.Context, workers *Registry, sessions adksession.Service, provider, model string) (agent.Agent, error) {
	cfg := DefaultAgentConfigs[AgentRouter]

	modelInfo, err := f.aiRegistry.ResolveModel(ctx, provider, model)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve model %s/%s", provider, model)
	}

	llmModel, err := f.newModel(ctx, modelInfo.Name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create model %s", modelInfo.Name)
	}

	workerInfo := make([]WorkerInfo, 0, len(WorkerAgentTypes()))
	agentTools := make([]adktool.Tool, 0, len(WorkerAgentTypes()))

	for _, agentType := range WorkerAgentTypes() {
		worker, ok := workers.Get(agentType)
		if !ok {
			return nil, errors.Wrapf(errors.ErrNotFound, "worker agent %s is not registered", agentType)
		}

		wrapped, err := NewAgentTool(worker, sessions)
		if err != nil {
			return nil, err
		}

		agentTools = append(agentTools, wrapped)

		workerCfg := DefaultAgentConfigs[agentType]
		workerInfo = append(workerInfo, WorkerInfo{Name: workerCfg.Name, Description: workerCfg.Description})
	}

	instruction, err := f.renderInstruction(cfg, map[string]interface{}{"Workers": workerInfo})
	if err != nil {
		return nil, err
	}

	return llmagent.New(llmagent.Config{
		Name:        cfg.Name,
		Description: cfg.Description,
		Model:       llmModel,
		Tools:       agentTools,
		Instruction: instruction,
	})
}

func (f *Factory) renderInstruction(cfg AgentConfig, extra map[string]interface{}) (string, error) {
	if cfg.SystemPromptTemplate == "" {
		return "", nil
	}

	data := map[string]interface{}{
		"AgentName": cfg.Name,
		"AgentType": cfg.Type,
		"Tools":     cfg.Tools,
	}
	for key, value := range extra {
		data[key] = value
	}

	instruction, err := f.templates.Render(cfg.SystemPromptTemplate, data)
	if err != nil {
		return "", errors.Wrapf(err, "render prompt for %s", cfg.Name)
	}

	return instruction, nil
}
