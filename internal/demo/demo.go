// Package demo runs the showcase scenarios for both delegation styles: the
// auto-wrapped router and the hand-wired supervisor. Each demo walks the
// same three test prompts so the two approaches can be compared directly.
package demo

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"concierge/internal/adapters/ai"
	"concierge/pkg/errors"
)

// Case is one scripted user request.
type Case struct {
	Title  string
	Prompt string
}

// Cases returns the scripted prompts, one per specialist.
func Cases() []Case {
	return []Case{
		{Title: "Weather query", Prompt: "What's the weather like in San Francisco?"},
		{Title: "Fitness query", Prompt: "I want a workout plan for beginners"},
		{Title: "Nutrition query", Prompt: "What should I eat for breakfast?"},
	}
}

// CaseResult summarizes a single executed case.
type CaseResult struct {
	Case     Case
	Response string
	Routed   []string
	Usage    ai.Usage
	CostUSD  float64
	Duration time.Duration
	Err      error
}

func printBanner(title string) {
	line := strings.Repeat("=", 60)
	fmt.Println(line)
	fmt.Printf("  %s\n", title)
	fmt.Println(line)
}

func printCaseHeader(index int, c Case) {
	fmt.Printf("\n--- Case %d: %s ---\n", index+1, c.Title)
	fmt.Printf("User: %s\n\n", c.Prompt)
}

// printCaseError reports a failed case. Rate limit errors get remediation
// hints since free-tier keys hit them quickly; everything else is reported
// as-is so the run can continue with the next case.
func printCaseError(err error) {
	var rateLimited *ai.RateLimitError
	if errors.As(err, &rateLimited) || errors.Is(err, errors.ErrRateLimited) {
		fmt.Println("Rate limit reached. Options:")
		fmt.Println("  - Wait a minute and re-run the demo")
		fmt.Println("  - Use an API key with a higher quota")
		fmt.Println("  - Lower AI_REQUESTS_PER_MINUTE to pace requests")
		return
	}

	fmt.Printf("Case failed: %v\n", err)
}

func printSummary(results []CaseResult) {
	var (
		totalTokens int
		totalCost   float64
		totalTime   time.Duration
		failed      int
	)

	for _, r := range results {
		totalTokens += r.Usage.TotalTokens
		totalCost += r.CostUSD
		totalTime += r.Duration
		if r.Err != nil {
			failed++
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("-", 60))
	fmt.Printf("Cases: %d (%d failed)\n", len(results), failed)
	fmt.Printf("Tokens: %s\n", humanize.Comma(int64(totalTokens)))
	fmt.Printf("Cost: $%.4f\n", totalCost)
	fmt.Printf("Total time: %s\n", totalTime.Round(100*time.Millisecond))
}
