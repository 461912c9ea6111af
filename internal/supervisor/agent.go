// Package supervisor implements a hand-rolled delegation hierarchy: worker
// agents are exposed to the supervisor through individually written wrapper
// tools rather than a generic adapter, and every tool loop is driven
// explicitly over the chat completion API.
package supervisor

import (
	"context"
	"encoding/json"
	"time"

	"concierge/internal/adapters/ai"
	"concierge/internal/metrics"
	"concierge/internal/tools"
	"concierge/pkg/errors"
	"concierge/pkg/logger"
)

// ChatAgentConfig describes a single chat-loop agent.
type ChatAgentConfig struct {
	Name         string
	Description  string
	Model        string
	SystemPrompt string
	Tools        []tools.Tool
	ToolDefs     []ai.ToolDefinition
	MaxTurns     int
	Temperature  float64
}

// Result is the outcome of one agent invocation.
type Result struct {
	Content   string
	Usage     ai.Usage
	ToolCalls []string // Tool names in call order
	Turns     int
	Duration  time.Duration
}

// ChatAgent drives a model through an explicit tool-calling loop. Each call
// to Invoke is a fresh conversation.
type ChatAgent struct {
	cfg      ChatAgentConfig
	provider ai.ChatProvider
	toolsBy  map[string]tools.Tool

	log *logger.Logger
}

// NewChatAgent builds an agent over the given chat provider.
func NewChatAgent(provider ai.ChatProvider, cfg ChatAgentConfig) (*ChatAgent, error) {
	if provider == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "chat provider is required")
	}
	if cfg.Name == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "agent name is required")
	}
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = 5
	}

	toolsBy := make(map[string]tools.Tool, len(cfg.Tools))
	for _, t := range cfg.Tools {
		toolsBy[t.Name()] = t
	}

	return &ChatAgent{
		cfg:      cfg,
		provider: provider,
		toolsBy:  toolsBy,
		log:      logger.Get().With("component", "chat_agent", "agent", cfg.Name),
	}, nil
}

// Name returns the agent identifier.
func (a *ChatAgent) Name() string { return a.cfg.Name }

// Description returns the agent summary used in wrapper tools.
func (a *ChatAgent) Description() string { return a.cfg.Description }

// Invoke runs the full tool loop for a single user message and returns the
// final whole response. Nothing is streamed; callers get the complete text.
func (a *ChatAgent) Invoke(ctx context.Context, input string) (*Result, error) {
	start := time.Now()

	messages := []ai.Message{
		{Role: ai.RoleUser, Content: input},
	}
	if a.cfg.SystemPrompt != "" {
		messages = append([]ai.Message{{Role: ai.RoleSystem, Content: a.cfg.SystemPrompt}}, messages...)
	}

	result := &Result{}

	for turn := 0; turn < a.cfg.MaxTurns; turn++ {
		result.Turns = turn + 1

		resp, err := a.provider.Chat(ctx, ai.ChatRequest{
			Model:       a.cfg.Model,
			Messages:    messages,
			Tools:       a.cfg.ToolDefs,
			Temperature: a.cfg.Temperature,
		})
		if err != nil {
			return nil, err
		}

		result.Usage.Add(resp.Usage)

		if len(resp.Choices) == 0 {
			return nil, errors.Wrap(errors.ErrNoResponse, a.cfg.Name)
		}

		assistant := resp.Choices[0].Message
		messages = append(messages, assistant)

		if len(assistant.ToolCalls) == 0 {
			result.Content = assistant.Content
			result.Duration = time.Since(start)
			return result, nil
		}

		for _, call := range assistant.ToolCalls {
			result.ToolCalls = append(result.ToolCalls, call.Name)

			output, err := a.executeTool(ctx, call)
			if err != nil {
				// Feed the error back so the model can recover or report it
				a.log.Warnf("Tool %s failed: %v", call.Name, err)
				output = "Error: " + err.Error()
			}

			messages = append(messages, ai.Message{
				Role:       ai.RoleTool,
				Content:    output,
				ToolCallID: call.ID,
			})
		}
	}

	return nil, errors.Wrapf(errors.ErrMaxTurns, "%s exceeded %d turns", a.cfg.Name, a.cfg.MaxTurns)
}

func (a *ChatAgent) executeTool(ctx context.Context, call ai.ToolCall) (string, error) {
	t, ok := a.toolsBy[call.Name]
	if !ok {
		return "", errors.Wrapf(errors.ErrNotFound, "unknown tool %s", call.Name)
	}

	args := map[string]interface{}{}
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return "", errors.Wrapf(errors.ErrInvalidInput, "tool %s arguments: %v", call.Name, err)
		}
	}

	a.log.Debugf("Tool call: %s(%v)", call.Name, args)

	start := time.Now()
	output, err := t.Execute(ctx, args)
	metrics.RecordToolExecution(call.Name, time.Since(start), err)

	return output, err
}
