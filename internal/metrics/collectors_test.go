package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCostSource struct {
	costs  map[string]float64
	tokens map[string]int
}

func (s *fakeCostSource) CostByAgent() map[string]float64 { return s.costs }
func (s *fakeCostSource) TokensByAgent() map[string]int   { return s.tokens }

func TestCostCollector(t *testing.T) {
	collector := NewCostCollector(&fakeCostSource{
		costs:  map[string]float64{"router": 0.0123, "weather": 0.004},
		tokens: map[string]int{"router": 1500, "weather": 400},
	})

	assert.Equal(t, 4, testutil.CollectAndCount(collector))

	expected := `
		# HELP concierge_session_cost_usd Accumulated AI cost for the current session by agent
		# TYPE concierge_session_cost_usd gauge
		concierge_session_cost_usd{agent="router"} 0.0123
		concierge_session_cost_usd{agent="weather"} 0.004
	`
	require.NoError(t, testutil.CollectAndCompare(collector, strings.NewReader(expected), "concierge_session_cost_usd"))
}

func TestCostCollector_Empty(t *testing.T) {
	collector := NewCostCollector(&fakeCostSource{})
	assert.Equal(t, 0, testutil.CollectAndCount(collector))
}
