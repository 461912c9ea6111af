package supervisor

import (
	"context"

	"concierge/internal/adapters/ai"
	"concierge/internal/tools"
)

// Worker wrappers, written out one per agent. Unlike the generic agent tool
// adapter, each worker needs its own function here: a name, a description,
// a schema, and a forwarding body. Adding a fourth worker means writing a
// fourth wrapper.

// WeatherHelpTool exposes the weather agent as a supervisor tool.
func WeatherHelpTool(worker *ChatAgent) tools.Tool {
	return tools.New(
		"get_weather_help",
		"Get weather information and forecasts. Use for any question about weather conditions.",
		func(ctx context.Context, args map[string]interface{}) (string, error) {
			request, _ := args["request"].(string)
			result, err := worker.Invoke(ctx, request)
			if err != nil {
				return "", err
			}
			return result.Content, nil
		},
	)
}

// WeatherHelpDefinition is the schema advertised to the supervisor model.
func WeatherHelpDefinition() ai.ToolDefinition {
	return ai.ToolDefinition{
		Name:        "get_weather_help",
		Description: "Get weather information and forecasts. Use for any question about weather conditions.",
		Parameters:  requestSchema("The user's weather-related question"),
	}
}

// FitnessAdviceTool exposes the fitness agent as a supervisor tool.
func FitnessAdviceTool(worker *ChatAgent) tools.Tool {
	return tools.New(
		"get_fitness_advice",
		"Get workout plans and fitness advice. Use for any question about exercise or training.",
		func(ctx context.Context, args map[string]interface{}) (string, error) {
			request, _ := args["request"].(string)
			result, err := worker.Invoke(ctx, request)
			if err != nil {
				return "", err
			}
			return result.Content, nil
		},
	)
}

// FitnessAdviceDefinition is the schema advertised to the supervisor model.
func FitnessAdviceDefinition() ai.ToolDefinition {
	return ai.ToolDefinition{
		Name:        "get_fitness_advice",
		Description: "Get workout plans and fitness advice. Use for any question about exercise or training.",
		Parameters:  requestSchema("The user's fitness-related question"),
	}
}

// NutritionHelpTool exposes the nutrition agent as a supervisor tool.
func NutritionHelpTool(worker *ChatAgent) tools.Tool {
	return tools.New(
		"get_nutrition_help",
		"Get meal suggestions and nutrition guidance. Use for any question about food or diet.",
		func(ctx context.Context, args map[string]interface{}) (string, error) {
			request, _ := args["request"].(string)
			result, err := worker.Invoke(ctx, request)
			if err != nil {
				return "", err
			}
			return result.Content, nil
		},
	)
}

// NutritionHelpDefinition is the schema advertised to the supervisor model.
func NutritionHelpDefinition() ai.ToolDefinition {
	return ai.ToolDefinition{
		Name:        "get_nutrition_help",
		Description: "Get meal suggestions and nutrition guidance. Use for any question about food or diet.",
		Parameters:  requestSchema("The user's nutrition-related question"),
	}
}

func requestSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"request": map[string]interface{}{
				"type":        "string",
				"description": description,
			},
		},
		"required": []string{"request"},
	}
}
