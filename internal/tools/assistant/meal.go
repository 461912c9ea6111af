package assistant

import (
	"context"
	"fmt"
	"strings"
)

var mealSuggestions = map[string]string{
	"breakfast": "Greek yogurt with berries and granola",
	"lunch":     "Grilled chicken salad with mixed vegetables",
	"dinner":    "Salmon with quinoa and steamed broccoli",
}

// SuggestMeal returns a canned meal suggestion for a meal type.
// Unknown types fall back to the lunch suggestion.
func SuggestMeal(_ context.Context, args map[string]interface{}) (string, error) {
	mealType := stringArg(args, "meal_type")
	prefs := stringArg(args, "dietary_preferences")
	if prefs == "" {
		prefs = "none"
	}

	meal, ok := mealSuggestions[strings.ToLower(mealType)]
	if !ok {
		meal = mealSuggestions["lunch"]
	}

	return fmt.Sprintf("Suggested %s: %s (Dietary preferences: %s)", mealType, meal, prefs), nil
}
