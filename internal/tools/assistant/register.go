package assistant

import (
	"concierge/internal/tools"
)

// handlers maps catalog names to their implementations.
var handlers = map[string]tools.HandlerFunc{
	"get_weather_info":    WeatherInfo,
	"create_workout_plan": WorkoutPlan,
	"suggest_meal":        SuggestMeal,
}

// Register adds all assistant stub tools to the registry.
func Register(reg *tools.Registry) {
	for _, def := range tools.Definitions() {
		handler, ok := handlers[def.Name]
		if !ok {
			continue
		}
		reg.Register(def.Name, tools.New(def.Name, def.Description, handler))
	}
}
