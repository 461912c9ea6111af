package agents

import (
	"fmt"
	"strings"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/runner"
	adksession "google.golang.org/adk/session"
	adktool "google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"
	"google.golang.org/genai"

	"concierge/pkg/errors"
	"concierge/pkg/logger"
)

// NewAgentTool wraps an agent as a callable tool. The wrapper is generic:
// any agent becomes a tool through the same single call, the calling model
// sees the agent's own name and description, and each invocation runs in a
// fresh isolated session.
func NewAgentTool(ag agent.Agent, sessions adksession.Service) (adktool.Tool, error) {
	if sessions == nil {
		sessions = adksession.InMemoryService()
	}

	appName := fmt.Sprintf("concierge_%s", ag.Name())

	runnerInstance, err := runner.New(runner.Config{
		AppName:        appName,
		Agent:          ag,
		SessionService: sessions,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "create runner for agent tool %s", ag.Name())
	}

	log := logger.Get().With("component", "agent_tool", "agent", ag.Name())

	return functiontool.New(
		functiontool.Config{
			Name:        ag.Name(),
			Description: fmt.Sprintf("%s. Pass the user's request as the 'request' argument.", ag.Description()),
		},
		func(ctx adktool.Context, args map[string]interface{}) (map[string]interface{}, error) {
			request, _ := args["request"].(string)
			if request == "" {
				return nil, errors.Wrap(errors.ErrInvalidInput, "request argument is required")
			}

			createResp, err := sessions.Create(ctx, &adksession.CreateRequest{
				AppName: appName,
				UserID:  "system",
			})
			if err != nil {
				return nil, errors.Wrapf(err, "create session for agent tool %s", ag.Name())
			}
			sessionID := createResp.Session.ID()

			log.Debugf("Delegating request to %s: session=%s", ag.Name(), sessionID)

			content := &genai.Content{
				Role:  "user",
				Parts: []*genai.Part{{Text: request}},
			}

			var response strings.Builder
			for event, err := range runnerInstance.Run(ctx, "system", sessionID, content, agent.RunConfig{}) {
				if err != nil {
					return nil, errors.Wrapf(err, "agent tool %s execution failed", ag.Name())
				}

				if event == nil || event.LLMResponse.Partial {
					continue
				}

				if event.LLMResponse.Content == nil || !event.IsFinalResponse() {
					continue
				}

				for _, part := range event.LLMResponse.Content.Parts {
					if part.Text != "" {
						response.WriteString(part.Text)
					}
				}
			}

			if response.Len() == 0 {
				return nil, errors.Wrapf(errors.ErrNoResponse, "agent tool %s produced no output", ag.Name())
			}

			return map[string]interface{}{"result": response.String()}, nil
		},
	)
}
