package supervisor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTeam(t *testing.T, provider *scriptedProvider) *Team {
	t.Helper()

	team, err := New(Deps{
		Provider:     provider,
		ToolRegistry: newTestRegistry(),
		Model:        "test-model",
		MaxTurns:     5,
	})
	require.NoError(t, err)

	return team
}

func TestNew_AssemblesTeam(t *testing.T) {
	team := newTestTeam(t, &scriptedProvider{})

	assert.Equal(t, "supervisor_agent", team.Supervisor.Name())
	assert.Equal(t, "weather_agent", team.Weather.Name())
	assert.Equal(t, "fitness_agent", team.Fitness.Name())
	assert.Equal(t, "nutrition_agent", team.Nutrition.Name())
}

func TestNew_RequiresDeps(t *testing.T) {
	_, err := New(Deps{})
	assert.Error(t, err)

	_, err = New(Deps{Provider: &scriptedProvider{}})
	assert.Error(t, err)
}

// End-to-end delegation: the supervisor calls the weather wrapper, the
// wrapper drives the worker through its own tool loop, and the final answer
// flows back up whole.
func TestTeam_Delegation(t *testing.T) {
	provider := &scriptedProvider{responses: []*ChatResponseOrError{
		// Supervisor decides to delegate
		toolCallResponse("call_1", "get_weather_help", `{"request":"What's the weather like in San Francisco?"}`),
		// Worker calls its stub tool
		toolCallResponse("call_2", "get_weather_info", `{"city":"San Francisco"}`),
		// Worker final answer
		textResponse("It's 72°F and sunny in San Francisco."),
		// Supervisor final answer
		textResponse("The weather agent reports 72°F and sunny in San Francisco."),
	}}

	team := newTestTeam(t, provider)

	result, err := team.Supervisor.Invoke(context.Background(), "What's the weather like in San Francisco?")
	require.NoError(t, err)

	assert.Equal(t, "The weather agent reports 72°F and sunny in San Francisco.", result.Content)
	assert.Equal(t, []string{"get_weather_help"}, result.ToolCalls)

	// 4 chat calls total: 2 supervisor turns + 2 worker turns
	assert.Len(t, provider.requests, 4)

	// The supervisor advertises exactly the three wrapper tools
	supervisorTools := provider.requests[0].Tools
	names := make([]string, 0, len(supervisorTools))
	for _, def := range supervisorTools {
		names = append(names, def.Name)
	}
	assert.ElementsMatch(t, []string{"get_weather_help", "get_fitness_advice", "get_nutrition_help"}, names)

	// The worker advertises only its own stub tool
	workerTools := provider.requests[1].Tools
	require.Len(t, workerTools, 1)
	assert.Equal(t, "get_weather_info", workerTools[0].Name)
}

func TestWrapperDefinitions(t *testing.T) {
	for _, def := range []struct {
		name   string
		schema map[string]interface{}
	}{
		{"get_weather_help", WeatherHelpDefinition().Parameters},
		{"get_fitness_advice", FitnessAdviceDefinition().Parameters},
		{"get_nutrition_help", NutritionHelpDefinition().Parameters},
	} {
		props, ok := def.schema["properties"].(map[string]interface{})
		require.True(t, ok, "%s should declare properties", def.name)
		assert.Contains(t, props, "request")
		assert.Equal(t, []string{"request"}, def.schema["required"])
	}
}
