package demo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	adksession "google.golang.org/adk/session"

	"concierge/internal/adapters/ai"
	"concierge/internal/adapters/config"
	"concierge/internal/agents"
	"concierge/internal/metrics"
	"concierge/internal/tools"
	"concierge/internal/tools/assistant"
	"concierge/pkg/errors"
)

// RunAgentTool executes the auto-wrapping demo: a router agent whose workers
// are attached through the generic agent tool adapter, with responses
// streamed as they are generated.
func RunAgentTool(ctx context.Context, cfg *config.Config) error {
	if cfg.AI.GeminiKey == "" {
		return errors.Wrap(errors.ErrNoAPIKey, "set GEMINI_API_KEY to run this demo")
	}

	metrics.Init()
	metrics.Serve(ctx, cfg.Demo.MetricsAddr)

	toolRegistry := tools.NewRegistry()
	assistant.Register(toolRegistry)

	aiRegistry := ai.NewProviderRegistry()
	gemini, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, cfg.AI.RequestsPerMin, cfg.AI.RequestTimeout)
	if err != nil {
		return err
	}
	if err := aiRegistry.Register(gemini); err != nil {
		return err
	}

	factory, err := agents.NewFactory(agents.FactoryDeps{
		AIRegistry:   aiRegistry,
		ToolRegistry: toolRegistry,
		GeminiAPIKey: cfg.AI.GeminiKey,
	})
	if err != nil {
		return err
	}

	provider := ai.ProviderNameGemini.String()
	sessions := adksession.InMemoryService()

	workers, err := factory.CreateWorkers(ctx, provider, cfg.AI.GeminiModel)
	if err != nil {
		return err
	}

	router, err := factory.CreateRouter(ctx, workers, sessions, provider, cfg.AI.GeminiModel)
	if err != nil {
		return err
	}

	tracker := agents.NewCostTracker()
	metrics.RegisterCostCollector(metrics.NewCostCollector(tracker))

	modelInfo, err := aiRegistry.ResolveModel(ctx, provider, cfg.AI.GeminiModel)
	if err != nil {
		return err
	}

	runner, err := agents.NewAgentRunner(
		router,
		agents.AgentRouter,
		agents.DefaultAgentConfigs[agents.AgentRouter],
		&modelInfo,
		sessions,
		tracker,
	)
	if err != nil {
		return err
	}

	printBanner("AgentTool demo: auto-wrapped delegation")
	fmt.Printf("Model: %s | Workers wrapped via one generic adapter call each\n", cfg.AI.GeminiModel)

	// Each demo run gets its own user identity so sessions never collide
	runUserID := uuid.New().String()

	var results []CaseResult

	for i, c := range Cases() {
		printCaseHeader(i, c)
		start := time.Now()

		var stream agents.StreamFunc
		if cfg.Demo.Streaming {
			stream = func(chunk string) { fmt.Print(chunk) }
		}

		out, err := runner.Execute(ctx, agents.ExecutionInput{
			Prompt:  c.Prompt,
			UserID:  runUserID,
			Timeout: cfg.Demo.CaseTimeout,
			Stream:  stream,
		})

		duration := time.Since(start)
		metrics.RecordDemoCase("agenttool", duration, caseStatus(err))

		if err != nil {
			if stream != nil {
				// Streamed chunks may already be on screen.
				fmt.Println()
			}
			printCaseError(err)
			results = append(results, CaseResult{Case: c, Err: err, Duration: duration})
			continue
		}

		if stream != nil {
			fmt.Println()
		} else {
			fmt.Println(out.FinalResponse)
		}

		if routed := out.RoutedAgents(workers); len(routed) > 0 {
			fmt.Printf("\n[delegated to: %s]\n", strings.Join(routed, ", "))
		}

		results = append(results, CaseResult{
			Case:     c,
			Response: out.FinalResponse,
			Routed:   out.RoutedAgents(workers),
			Usage: ai.Usage{
				PromptTokens:     out.InputTokens,
				CompletionTokens: out.OutputTokens,
				TotalTokens:      out.TokensUsed,
			},
			CostUSD:  out.CostUSD,
			Duration: duration,
		})
	}

	printSummary(results)
	return nil
}

func caseStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, errors.ErrRateLimited):
		return "rate_limited"
	default:
		return "error"
	}
}
