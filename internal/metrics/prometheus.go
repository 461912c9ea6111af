package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"concierge/pkg/logger"
)

var (
	// Agent metrics
	AgentCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concierge_agent_calls_total",
			Help: "Total number of agent calls",
		},
		[]string{"agent", "model", "status"}, // status: success|error|rate_limited
	)

	AgentLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "concierge_agent_latency_seconds",
			Help:    "Agent execution latency in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"agent", "model"},
	)

	AgentTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concierge_agent_tokens_total",
			Help: "Total tokens used by agents",
		},
		[]string{"agent", "model", "type"}, // type: input|output
	)

	AgentCost = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concierge_agent_cost_usd",
			Help: "Total AI cost in USD",
		},
		[]string{"agent", "model"},
	)

	// Tool metrics
	ToolExecutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concierge_tool_executions_total",
			Help: "Total number of tool executions",
		},
		[]string{"tool", "status"}, // status: success|error
	)

	ToolLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "concierge_tool_latency_seconds",
			Help:    "Tool execution latency in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"tool"},
	)

	// Demo metrics
	DemoCases = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concierge_demo_cases_total",
			Help: "Total number of demo cases executed",
		},
		[]string{"demo", "status"}, // status: success|error|rate_limited
	)

	DemoCaseDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "concierge_demo_case_duration_seconds",
			Help:    "Demo case duration in seconds",
			Buckets: []float64{1, 2, 5, 10, 20, 30, 60, 120},
		},
		[]string{"demo"},
	)
)

// Init registers all metrics with Prometheus
func Init() {
	prometheus.MustRegister(AgentCalls)
	prometheus.MustRegister(AgentLatency)
	prometheus.MustRegister(AgentTokens)
	prometheus.MustRegister(AgentCost)

	prometheus.MustRegister(ToolExecutions)
	prometheus.MustRegister(ToolLatency)

	prometheus.MustRegister(DemoCases)
	prometheus.MustRegister(DemoCaseDuration)
}

// Handler returns Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve exposes the /metrics endpoint on addr until ctx is cancelled.
// Intended for demo runs where a scrape target is wanted; addr may be empty
// to disable.
func Serve(ctx context.Context, addr string) {
	if addr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	go func() {
		logger.Info("Metrics endpoint listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Metrics server failed", "error", err)
		}
	}()
}

// RecordAgentCall records an agent invocation
func RecordAgentCall(agent, model string, latency time.Duration, inputTokens, outputTokens int, cost float64, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	AgentCalls.WithLabelValues(agent, model, status).Inc()
	AgentLatency.WithLabelValues(agent, model).Observe(latency.Seconds())

	if inputTokens > 0 {
		AgentTokens.WithLabelValues(agent, model, "input").Add(float64(inputTokens))
	}
	if outputTokens > 0 {
		AgentTokens.WithLabelValues(agent, model, "output").Add(float64(outputTokens))
	}
	if cost > 0 {
		AgentCost.WithLabelValues(agent, model).Add(cost)
	}
}

// RecordToolExecution records a tool execution
func RecordToolExecution(tool string, latency time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	ToolExecutions.WithLabelValues(tool, status).Inc()
	ToolLatency.WithLabelValues(tool).Observe(latency.Seconds())
}

// RecordDemoCase records a single demo case run
func RecordDemoCase(demo string, duration time.Duration, status string) {
	DemoCases.WithLabelValues(demo, status).Inc()
	DemoCaseDuration.WithLabelValues(demo).Observe(duration.Seconds())
}
