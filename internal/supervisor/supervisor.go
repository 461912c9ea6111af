package supervisor

import (
	"concierge/internal/adapters/ai"
	"concierge/internal/agents"
	"concierge/internal/tools"
	"concierge/pkg/errors"
	"concierge/pkg/templates"
)

// Deps gathers dependencies for assembling the assistant team.
type Deps struct {
	Provider     ai.ChatProvider
	ToolRegistry *tools.Registry
	Templates    *templates.Registry
	Model        string
	MaxTurns     int
}

// Team is the assembled supervisor hierarchy: one supervisor agent plus the
// three specialists it delegates to.
type Team struct {
	Supervisor *ChatAgent
	Weather    *ChatAgent
	Fitness    *ChatAgent
	Nutrition  *ChatAgent
}

// New builds the full team. Worker agents get their stub tools from the
// registry; the supervisor gets the three hand-written wrapper tools.
func New(deps Deps) (*Team, error) {
	if deps.Provider == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "chat provider is required")
	}
	if deps.ToolRegistry == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "tool registry is required")
	}
	if deps.Templates == nil {
		deps.Templates = templates.Get()
	}

	weather, err := newWorker(deps, agents.AgentWeather)
	if err != nil {
		return nil, err
	}

	fitness, err := newWorker(deps, agents.AgentFitness)
	if err != nil {
		return nil, err
	}

	nutrition, err := newWorker(deps, agents.AgentNutrition)
	if err != nil {
		return nil, err
	}

	// Each worker is wrapped by hand. Compare CreateRouter, where a single
	// generic adapter covers all of them.
	workerInfo := []agents.WorkerInfo{
		{Name: "get_weather_help", Description: weather.Description()},
		{Name: "get_fitness_advice", Description: fitness.Description()},
		{Name: "get_nutrition_help", Description: nutrition.Description()},
	}

	prompt, err := deps.Templates.Render("agents/supervisor", map[string]interface{}{
		"Workers": workerInfo,
	})
	if err != nil {
		return nil, errors.Wrap(err, "render supervisor prompt")
	}

	sup, err := NewChatAgent(deps.Provider, ChatAgentConfig{
		Name:         "supervisor_agent",
		Description:  "Routes user requests to the appropriate specialist agent",
		Model:        deps.Model,
		SystemPrompt: prompt,
		Tools: []tools.Tool{
			WeatherHelpTool(weather),
			FitnessAdviceTool(fitness),
			NutritionHelpTool(nutrition),
		},
		ToolDefs: []ai.ToolDefinition{
			WeatherHelpDefinition(),
			FitnessAdviceDefinition(),
			NutritionHelpDefinition(),
		},
		MaxTurns: deps.MaxTurns,
	})
	if err != nil {
		return nil, err
	}

	return &Team{
		Supervisor: sup,
		Weather:    weather,
		Fitness:    fitness,
		Nutrition:  nutrition,
	}, nil
}

func newWorker(deps Deps, agentType agents.AgentType) (*ChatAgent, error) {
	cfg, ok := agents.DefaultAgentConfigs[agentType]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no config for agent type %s", agentType)
	}

	prompt, err := deps.Templates.Render(cfg.SystemPromptTemplate, map[string]interface{}{
		"AgentName": cfg.Name,
		"AgentType": cfg.Type,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "render prompt for %s", cfg.Name)
	}

	agentTools := make([]tools.Tool, 0, len(cfg.Tools))
	toolDefs := make([]ai.ToolDefinition, 0, len(cfg.Tools))

	for _, name := range cfg.Tools {
		t, ok := deps.ToolRegistry.Get(name)
		if !ok {
			return nil, errors.Wrapf(errors.ErrNotFound, "tool %s is not registered", name)
		}
		agentTools = append(agentTools, t)

		def, ok := tools.DefinitionByName(name)
		if !ok {
			return nil, errors.Wrapf(errors.ErrNotFound, "tool %s has no catalog definition", name)
		}
		toolDefs = append(toolDefs, ai.ToolDefinition{
			Name:        def.Name,
			Description: def.Description,
			Parameters:  def.Parameters,
		})
	}

	return NewChatAgent(deps.Provider, ChatAgentConfig{
		Name:         cfg.Name,
		Description:  cfg.Description,
		Model:        deps.Model,
		SystemPrompt: prompt,
		Tools:        agentTools,
		ToolDefs:     toolDefs,
		MaxTurns:     deps.MaxTurns,
	})
}
