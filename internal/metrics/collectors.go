package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CostSource provides per-agent cost and token totals for the current run.
// Implemented by the cost tracker so the collector stays decoupled from it.
type CostSource interface {
	CostByAgent() map[string]float64
	TokensByAgent() map[string]int
}

// CostCollector exposes accumulated session cost as gauges.
type CostCollector struct {
	source CostSource

	sessionCost   *prometheus.Desc
	sessionTokens *prometheus.Desc
}

// NewCostCollector creates a collector backed by the given source.
func NewCostCollector(source CostSource) *CostCollector {
	return &CostCollector{
		source: source,

		sessionCost: prometheus.NewDesc(
			"concierge_session_cost_usd",
			"Accumulated AI cost for the current session by agent",
			[]string{"agent"}, nil,
		),
		sessionTokens: prometheus.NewDesc(
			"concierge_session_tokens",
			"Accumulated token usage for the current session by agent",
			[]string{"agent"}, nil,
		),
	}
}

// Describe implements prometheus.Collector
func (c *CostCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.sessionCost
	ch <- c.sessionTokens
}

// Collect implements prometheus.Collector
func (c *CostCollector) Collect(ch chan<- prometheus.Metric) {
	for agent, cost := range c.source.CostByAgent() {
		ch <- prometheus.MustNewConstMetric(
			c.sessionCost,
			prometheus.GaugeValue,
			cost,
			agent,
		)
	}

	for agent, tokens := range c.source.TokensByAgent() {
		ch <- prometheus.MustNewConstMetric(
			c.sessionTokens,
			prometheus.GaugeValue,
			float64(tokens),
			agent,
		)
	}
}

// RegisterCostCollector registers the collector
func RegisterCostCollector(collector *CostCollector) {
	prometheus.MustRegister(collector)
}
