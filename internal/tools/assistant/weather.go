package assistant

import (
	"context"
	"fmt"

	"concierge/pkg/errors"
)

// WeatherInfo returns canned weather data for a city.
// Stub implementation: a production build would call a weather API here.
func WeatherInfo(_ context.Context, args map[string]interface{}) (string, error) {
	city, ok := args["city"].(string)
	if !ok || city == "" {
		return "", errors.Wrap(errors.ErrInvalidInput, "city is required")
	}

	return fmt.Sprintf("Weather in %s: 72°F, sunny with light breeze. Perfect for outdoor activities!", city), nil
}
