package agents

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/runner"
	adksession "google.golang.org/adk/session"
	"google.golang.org/genai"

	"concierge/internal/adapters/ai"
	"concierge/internal/metrics"
	"concierge/pkg/errors"
	"concierge/pkg/logger"
)

// StreamFunc receives partial text chunks as the model produces them.
type StreamFunc func(chunk string)

// ExecutionInput contains input parameters for agent execution
type ExecutionInput struct {
	Prompt  string
	UserID  string        // Defaults to "system"
	Timeout time.Duration // Execution timeout (0 = use agent config default)
	Stream  StreamFunc    // Optional streaming callback
}

// ToolCallRecord captures a single function call observed during a run.
type ToolCallRecord struct {
	Name string
	Args map[string]interface{}
}

// ExecutionOutput contains the result of agent execution
type ExecutionOutput struct {
	AgentType     AgentType
	FinalResponse string
	ToolCalls     []ToolCallRecord

	// Metrics
	TokensUsed   int
	InputTokens  int
	OutputTokens int
	CostUSD      float64
	Duration     time.Duration

	SessionID string
}

// RoutedAgents returns the names of wrapped agents that were invoked as
// tools during the run, in call order.
func (o *ExecutionOutput) RoutedAgents(workers *Registry) []string {
	workerNames := map[string]bool{}
	for _, agentType := range workers.List() {
		workerNames[DefaultAgentConfigs[agentType].Name] = true
	}

	var routed []string
	for _, call := range o.ToolCalls {
		if workerNames[call.Name] {
			routed = append(routed, call.Name)
		}
	}

	return routed
}

// AgentRunner executes a single agent with streaming, token accounting, and
// cost tracking.
type AgentRunner struct {
	agent          agent.Agent
	runner         *runner.Runner
	agentType      AgentType
	agentConfig    AgentConfig
	modelInfo      *ai.ModelInfo
	sessionService adksession.Service
	costTracker    *CostTracker

	log *logger.Logger
}

// NewAgentRunner creates a new agent runner
func NewAgentRunner(
	ag agent.Agent,
	agentType AgentType,
	agentConfig AgentConfig,
	modelInfo *ai.ModelInfo,
	sessionService adksession.Service,
	costTracker *CostTracker,
) (*AgentRunner, error) {
	if sessionService == nil {
		sessionService = adksession.InMemoryService()
	}

	runnerInstance, err := runner.New(runner.Config{
		AppName:        fmt.Sprintf("concierge_%s", agentType),
		Agent:          ag,
		SessionService: sessionService,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create ADK runner")
	}

	return &AgentRunner{
		agent:          ag,
		runner:         runnerInstance,
		agentType:      agentType,
		agentConfig:    agentConfig,
		modelInfo:      modelInfo,
		sessionService: sessionService,
		costTracker:    costTracker,
		log:            logger.Get().With("component", "agent_runner", "agent", agentType),
	}, nil
}

// Execute runs the agent once for the given prompt and collects the final
// response along with usage metrics.
func (e *AgentRunner) Execute(ctx context.Context, input ExecutionInput) (*ExecutionOutput, error) {
	startTime := time.Now()

	userID := input.UserID
	if userID == "" {
		userID = "system"
	}

	timeout := input.Timeout
	if timeout == 0 {
		timeout = e.agentConfig.TotalTimeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	createResp, err := e.sessionService.Create(ctx, &adksession.CreateRequest{
		AppName: fmt.Sprintf("concierge_%s", e.agentType),
		UserID:  userID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}
	sessionID := createResp.Session.ID()

	e.log.Infof("Starting agent execution: session=%s user=%s", sessionID, userID)

	output, err := e.runLoop(ctx, userID, sessionID, input)
	if err != nil {
		metrics.RecordAgentCall(string(e.agentType), e.modelName(), time.Since(startTime), 0, 0, 0, err)
		return nil, errors.Wrap(err, "agent execution failed")
	}

	output.Duration = time.Since(startTime)
	output.SessionID = sessionID
	output.AgentType = e.agentType

	if e.costTracker != nil && e.modelInfo != nil {
		output.CostUSD = e.costTracker.RecordUsage(
			string(e.agentType),
			e.modelInfo,
			output.InputTokens,
			output.OutputTokens,
		)
	}

	metrics.RecordAgentCall(
		string(e.agentType), e.modelName(), output.Duration,
		output.InputTokens, output.OutputTokens, output.CostUSD, nil,
	)

	e.log.Infof("Agent execution complete: session=%s duration=%v tokens=%d cost=$%.4f tools=%d",
		sessionID, output.Duration, output.TokensUsed, output.CostUSD, len(output.ToolCalls))

	return output, nil
}

func (e *AgentRunner) runLoop(ctx context.Context, userID, sessionID string, input ExecutionInput) (*ExecutionOutput, error) {
	userContent := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: input.Prompt},
		},
	}

	runConfig := agent.RunConfig{
		StreamingMode: agent.StreamingModeSSE,
	}

	output := &ExecutionOutput{}
	var finalResponse *adksession.Event

	for event, err := range e.runner.Run(ctx, userID, sessionID, userContent, runConfig) {
		if err != nil {
			return nil, err
		}

		if event == nil {
			continue
		}

		// Partial events carry streaming chunks
		if event.LLMResponse.Partial {
			if input.Stream != nil && event.LLMResponse.Content != nil {
				for _, part := range event.LLMResponse.Content.Parts {
					if part.Text != "" {
						input.Stream(part.Text)
					}
				}
			}
			continue
		}

		e.log.Debugf("Agent event: author=%s turn_complete=%v", event.Author, event.TurnComplete)

		if event.UsageMetadata != nil {
			output.InputTokens += int(event.UsageMetadata.PromptTokenCount)
			output.OutputTokens += int(event.UsageMetadata.CandidatesTokenCount)
		}

		if event.LLMResponse.Content != nil {
			for _, part := range event.LLMResponse.Content.Parts {
				if part.FunctionCall != nil {
					output.ToolCalls = append(output.ToolCalls, ToolCallRecord{
						Name: part.FunctionCall.Name,
						Args: part.FunctionCall.Args,
					})
					e.log.Debugf("Tool call: %s(%v)", part.FunctionCall.Name, part.FunctionCall.Args)
				}
				if part.FunctionResponse != nil {
					e.log.Debugf("Tool result: %s", part.FunctionResponse.Name)
				}
			}
		}

		if event.TurnComplete && event.IsFinalResponse() {
			finalResponse = event
			break
		}
	}

	output.TokensUsed = output.InputTokens + output.OutputTokens

	if finalResponse == nil || finalResponse.LLMResponse.Content == nil {
		return nil, errors.Wrap(errors.ErrNoResponse, "agent did not provide final response")
	}

	for _, part := range finalResponse.LLMResponse.Content.Parts {
		if part.Text != "" {
			output.FinalResponse += part.Text
		}
	}

	return output, nil
}

func (e *AgentRunner) modelName() string {
	if e.modelInfo == nil {
		return ""
	}
	return e.modelInfo.Name
}
