package agents

import (
	"sync"

	"concierge/internal/adapters/ai"
)

// CostTracker accumulates AI usage cost per agent for a demo run.
type CostTracker struct {
	mu    sync.RWMutex
	costs map[string]*AgentUsage // agent name -> usage
}

// AgentUsage tracks usage for a single agent.
type AgentUsage struct {
	Agent        string
	Model        string
	InputTokens  int64
	OutputTokens int64
	TotalCostUSD float64
	CallCount    int64
}

// NewCostTracker creates a new cost tracker
func NewCostTracker() *CostTracker {
	return &CostTracker{
		costs: make(map[string]*AgentUsage),
	}
}

// RecordUsage records token usage for an agent and returns the call cost.
func (ct *CostTracker) RecordUsage(agent string, modelInfo *ai.ModelInfo, inputTokens, outputTokens int) float64 {
	cost := CalculateCost(modelInfo, inputTokens, outputTokens)

	ct.mu.Lock()
	defer ct.mu.Unlock()

	usage, exists := ct.costs[agent]
	if !exists {
		usage = &AgentUsage{Agent: agent, Model: modelInfo.Name}
		ct.costs[agent] = usage
	}

	usage.InputTokens += int64(inputTokens)
	usage.OutputTokens += int64(outputTokens)
	usage.TotalCostUSD += cost
	usage.CallCount++

	return cost
}

// GetUsage returns usage data for a specific agent
func (ct *CostTracker) GetUsage(agent string) (*AgentUsage, bool) {
	ct.mu.RLock()
	defer ct.mu.RUnlock()

	usage, ok := ct.costs[agent]
	return usage, ok
}

// GetAllUsage returns usage data for every agent seen so far
func (ct *CostTracker) GetAllUsage() map[string]AgentUsage {
	ct.mu.RLock()
	defer ct.mu.RUnlock()

	usage := make(map[string]AgentUsage, len(ct.costs))
	for agent, u := range ct.costs {
		usage[agent] = *u
	}

	return usage
}

// TotalCost returns the total cost across all agents
func (ct *CostTracker) TotalCost() float64 {
	ct.mu.RLock()
	defer ct.mu.RUnlock()

	var total float64
	for _, usage := range ct.costs {
		total += usage.TotalCostUSD
	}

	return total
}

// TotalTokens returns the total token usage across all agents
func (ct *CostTracker) TotalTokens() int {
	ct.mu.RLock()
	defer ct.mu.RUnlock()

	var total int64
	for _, usage := range ct.costs {
		total += usage.InputTokens + usage.OutputTokens
	}

	return int(total)
}

// CostByAgent implements metrics.CostSource
func (ct *CostTracker) CostByAgent() map[string]float64 {
	ct.mu.RLock()
	defer ct.mu.RUnlock()

	out := make(map[string]float64, len(ct.costs))
	for agent, usage := range ct.costs {
		out[agent] = usage.TotalCostUSD
	}

	return out
}

// TokensByAgent implements metrics.CostSource
func (ct *CostTracker) TokensByAgent() map[string]int {
	ct.mu.RLock()
	defer ct.mu.RUnlock()

	out := make(map[string]int, len(ct.costs))
	for agent, usage := range ct.costs {
		out[agent] = int(usage.InputTokens + usage.OutputTokens)
	}

	return out
}

// Reset clears all usage data
func (ct *CostTracker) Reset() {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	ct.costs = make(map[string]*AgentUsage)
}

// CalculateCost calculates the cost for a given token usage
func CalculateCost(modelInfo *ai.ModelInfo, inputTokens, outputTokens int) float64 {
	if modelInfo == nil {
		return 0
	}

	inputCost := float64(inputTokens) / 1_000.0 * modelInfo.InputCostPer1K
	outputCost := float64(outputTokens) / 1_000.0 * modelInfo.OutputCostPer1K
	return inputCost + outputCost
}
