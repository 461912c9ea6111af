package agents

// AgentType enumerates supported agent specializations.
type AgentType string

const (
	AgentWeather   AgentType = "weather"
	AgentFitness   AgentType = "fitness"
	AgentNutrition AgentType = "nutrition"
	AgentRouter    AgentType = "router"
)

// WorkerAgentTypes lists the specialist agents a router delegates to,
// in the order they are presented to the model.
func WorkerAgentTypes() []AgentType {
	return []AgentType{AgentWeather, AgentFitness, AgentNutrition}
}

// WorkerInfo describes a worker for router prompt rendering.
type WorkerInfo struct {
	Name        string
	Description string
}
