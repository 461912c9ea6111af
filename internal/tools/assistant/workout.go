package assistant

import (
	"context"
	"fmt"
	"strings"
)

var workoutPlans = map[string]string{
	"beginner":     "Start with 3 days/week: 20 min cardio + 10 min strength training",
	"intermediate": "4-5 days/week: Mix of cardio, strength, and flexibility exercises",
	"advanced":     "5-6 days/week: Periodized training with focused recovery days",
}

// WorkoutPlan builds a canned workout plan for a fitness level and goal.
// Unknown levels keep their name in the output but get the beginner plan.
func WorkoutPlan(_ context.Context, args map[string]interface{}) (string, error) {
	level := strings.ToLower(stringArg(args, "fitness_level"))
	goal := stringArg(args, "goal")

	plan, ok := workoutPlans[level]
	if !ok {
		plan = workoutPlans["beginner"]
	}

	return fmt.Sprintf("Workout plan for %s level (%s): %s", level, goal, plan), nil
}

func stringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}
