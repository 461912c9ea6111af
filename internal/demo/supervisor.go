package demo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"concierge/internal/adapters/ai"
	"concierge/internal/adapters/config"
	"concierge/internal/agents"
	"concierge/internal/metrics"
	"concierge/internal/supervisor"
	"concierge/internal/tools"
	"concierge/internal/tools/assistant"
	"concierge/pkg/errors"
	"concierge/pkg/logger"
)

// RunSupervisor executes the manual-wrapping demo: a supervisor agent whose
// workers sit behind individually written wrapper tools, with each response
// returned whole rather than streamed.
func RunSupervisor(ctx context.Context, cfg *config.Config) error {
	metrics.Init()
	metrics.Serve(ctx, cfg.Demo.MetricsAddr)

	provider, model, err := selectChatProvider(ctx, cfg)
	if err != nil {
		return err
	}

	toolRegistry := tools.NewRegistry()
	assistant.Register(toolRegistry)

	team, err := supervisor.New(supervisor.Deps{
		Provider:     provider,
		ToolRegistry: toolRegistry,
		Model:        model,
		MaxTurns:     5,
	})
	if err != nil {
		return err
	}

	modelInfo, err := provider.GetModel(ctx, model)
	if err != nil {
		return err
	}

	printBanner("Supervisor demo: hand-written wrapper tools")
	fmt.Printf("Provider: %s | Model: %s | One wrapper function per worker\n", provider.Name(), model)

	var results []CaseResult

	for i, c := range Cases() {
		printCaseHeader(i, c)
		start := time.Now()

		caseCtx, cancel := context.WithTimeout(ctx, cfg.Demo.CaseTimeout)
		result, err := team.Supervisor.Invoke(caseCtx, c.Prompt)
		cancel()

		duration := time.Since(start)
		metrics.RecordDemoCase("supervisor", duration, caseStatus(err))

		if err != nil {
			printCaseError(err)
			results = append(results, CaseResult{Case: c, Err: err, Duration: duration})
			continue
		}

		fmt.Println(result.Content)

		if len(result.ToolCalls) > 0 {
			fmt.Printf("\n[delegated to: %s]\n", strings.Join(result.ToolCalls, ", "))
		}

		cost := agents.CalculateCost(&modelInfo, result.Usage.PromptTokens, result.Usage.CompletionTokens)

		results = append(results, CaseResult{
			Case:     c,
			Response: result.Content,
			Routed:   result.ToolCalls,
			Usage:    result.Usage,
			CostUSD:  cost,
			Duration: duration,
		})
	}

	printSummary(results)
	return nil
}

// selectChatProvider picks the configured provider, falling back to whichever
// one has an API key available.
func selectChatProvider(ctx context.Context, cfg *config.Config) (ai.ChatProvider, string, error) {
	registry := ai.NewProviderRegistry()

	if cfg.AI.OpenAIKey != "" {
		openai, err := ai.NewOpenAIProvider(cfg.AI.OpenAIKey, cfg.AI.RequestsPerMin, cfg.AI.RequestTimeout)
		if err != nil {
			return nil, "", err
		}
		if err := registry.Register(openai); err != nil {
			return nil, "", err
		}
	}

	if cfg.AI.GeminiKey != "" {
		gemini, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, cfg.AI.RequestsPerMin, cfg.AI.RequestTimeout)
		if err != nil {
			return nil, "", err
		}
		if err := registry.Register(gemini); err != nil {
			return nil, "", err
		}
	}

	candidates := []string{cfg.AI.DefaultProvider, ai.ProviderNameOpenAI.String(), ai.ProviderNameGemini.String()}
	for _, name := range candidates {
		chat, err := registry.GetChat(name)
		if err != nil {
			continue
		}

		if name != cfg.AI.DefaultProvider {
			logger.Warnf("Provider %s unavailable, using %s", cfg.AI.DefaultProvider, name)
		}

		model := cfg.AI.OpenAIModel
		if name == ai.ProviderNameGemini.String() {
			model = cfg.AI.GeminiModel
		}

		return chat, model, nil
	}

	return nil, "", errors.Wrap(errors.ErrNoAPIKey, "set OPENAI_API_KEY or GEMINI_API_KEY to run this demo")
}
