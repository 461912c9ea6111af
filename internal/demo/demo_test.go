package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concierge/internal/adapters/ai"
	"concierge/pkg/errors"
)

func TestCases(t *testing.T) {
	cases := Cases()
	require.Len(t, cases, 3)

	assert.Equal(t, "What's the weather like in San Francisco?", cases[0].Prompt)
	assert.Equal(t, "I want a workout plan for beginners", cases[1].Prompt)
	assert.Equal(t, "What should I eat for breakfast?", cases[2].Prompt)
}

func TestCaseStatus(t *testing.T) {
	assert.Equal(t, "success", caseStatus(nil))
	assert.Equal(t, "error", caseStatus(errors.New("boom")))

	rateLimited := &ai.RateLimitError{Provider: ai.ProviderNameGemini, Err: errors.New("429")}
	assert.Equal(t, "rate_limited", caseStatus(rateLimited))
	assert.Equal(t, "rate_limited", caseStatus(errors.Wrap(rateLimited, "case failed")))
}
