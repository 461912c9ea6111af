package agents

import "time"

// AgentConfig captures runtime settings for an agent instance.
type AgentConfig struct {
	Type                 AgentType
	Name                 string
	Description          string
	Tools                []string
	SystemPromptTemplate string
	OutputKey            string

	MaxToolCalls int
	TotalTimeout time.Duration
}

// DefaultAgentConfigs defines the assistant team: three specialists plus the
// router that delegates to them.
var DefaultAgentConfigs = map[AgentType]AgentConfig{
	AgentWeather: {
		Type:                 AgentWeather,
		Name:                 "weather_agent",
		Description:          "Handles weather-related queries and forecasts",
		Tools:                []string{"get_weather_info"},
		SystemPromptTemplate: "agents/weather",
		OutputKey:            "weather_report",
		MaxToolCalls:         5,
		TotalTimeout:         time.Minute,
	},
	AgentFitness: {
		Type:                 AgentFitness,
		Name:                 "fitness_agent",
		Description:          "Provides workout plans and fitness advice",
		Tools:                []string{"create_workout_plan"},
		SystemPromptTemplate: "agents/fitness",
		OutputKey:            "fitness_plan",
		MaxToolCalls:         5,
		TotalTimeout:         time.Minute,
	},
	AgentNutrition: {
		Type:                 AgentNutrition,
		Name:                 "nutrition_agent",
		Description:          "Offers meal suggestions and nutrition guidance",
		Tools:                []string{"suggest_meal"},
		SystemPromptTemplate: "agents/nutrition",
		OutputKey:            "meal_suggestion",
		MaxToolCalls:         5,
		TotalTimeout:         time.Minute,
	},
	AgentRouter: {
		Type:                 AgentRouter,
		Name:                 "router_agent",
		Description:          "Routes user requests to the appropriate specialist agent",
		SystemPromptTemplate: "agents/router",
		MaxToolCalls:         5,
		TotalTimeout:         2 * time.Minute,
	},
}
