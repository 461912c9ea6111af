package tools

// Definition describes a tool's metadata for registration and prompt rendering.
// Parameters holds a JSON schema used by providers that require explicit
// function signatures.
type Definition struct {
	Name        string
	Description string
	Category    string
	Parameters  map[string]interface{}
}

// toolDefinitions enumerates the assistant's stub tools.
var toolDefinitions = []Definition{
	{
		Name:        "get_weather_info",
		Description: "Get weather information for a city",
		Category:    "weather",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"city": map[string]interface{}{
					"type":        "string",
					"description": "City to look up",
				},
			},
			"required": []string{"city"},
		},
	},
	{
		Name:        "create_workout_plan",
		Description: "Create a personalized workout plan",
		Category:    "fitness",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"fitness_level": map[string]interface{}{
					"type":        "string",
					"description": "beginner, intermediate, or advanced",
				},
				"goal": map[string]interface{}{
					"type":        "string",
					"description": "Training goal, e.g. general fitness or weight loss",
				},
			},
			"required": []string{"fitness_level", "goal"},
		},
	},
	{
		Name:        "suggest_meal",
		Description: "Suggest a healthy meal based on type and preferences",
		Category:    "nutrition",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"meal_type": map[string]interface{}{
					"type":        "string",
					"description": "breakfast, lunch, or dinner",
				},
				"dietary_preferences": map[string]interface{}{
					"type":        "string",
					"description": "Optional dietary preferences, defaults to none",
				},
			},
			"required": []string{"meal_type"},
		},
	},
}

// Definitions returns the full tool catalog.
func Definitions() []Definition {
	defs := make([]Definition, len(toolDefinitions))
	copy(defs, toolDefinitions)
	return defs
}

// DefinitionByName resolves a single catalog entry.
func DefinitionByName(name string) (Definition, bool) {
	for _, def := range toolDefinitions {
		if def.Name == name {
			return def, true
		}
	}
	return Definition{}, false
}
