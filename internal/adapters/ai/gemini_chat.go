package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"concierge/pkg/errors"
	"concierge/pkg/logger"
)

// Ensure GeminiProvider implements ChatProvider
var _ ChatProvider = (*GeminiProvider)(nil)

// GeminiProvider implements chat completions using the Gemini API.
type GeminiProvider struct {
	client      *genai.Client
	rateLimiter *RateLimiter
	timeout     time.Duration
	models      []ModelInfo
	log         *logger.Logger
}

// NewGeminiProvider creates a new Gemini chat provider.
func NewGeminiProvider(ctx context.Context, apiKey string, reqPerMinute float64, timeout time.Duration) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, errors.Wrap(errors.ErrNoAPIKey, "gemini")
	}
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create gemini client")
	}

	return &GeminiProvider{
		client:      client,
		rateLimiter: NewRateLimiter(ProviderNameGemini, reqPerMinute),
		timeout:     timeout,
		models:      geminiModels(),
		log:         logger.Get().With("component", "gemini_provider"),
	}, nil
}

// Name returns provider name.
func (p *GeminiProvider) Name() string { return ProviderNameGemini.String() }

// GetModel returns model info by name.
func (p *GeminiProvider) GetModel(_ context.Context, model string) (ModelInfo, error) {
	for _, m := range p.models {
		if strings.EqualFold(m.Name, model) {
			return m, nil
		}
	}
	return ModelInfo{}, errors.Wrapf(errors.ErrNotFound, "gemini model %s not found", model)
}

// ListModels lists available models.
func (p *GeminiProvider) ListModels(_ context.Context) ([]ModelInfo, error) {
	return p.models, nil
}

// SupportsStreaming indicates streaming support.
func (p *GeminiProvider) SupportsStreaming() bool { return true }

// SupportsTools indicates tool calling support.
func (p *GeminiProvider) SupportsTools() bool { return true }

// Chat sends a generate-content request with function calling support.
//
// Gemini function calls carry no separate call ID, so tool call IDs are set
// to the function name and tool result messages are matched back by name.
func (p *GeminiProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if err := p.rateLimiter.Wait(ctx); err != nil {
		if ctxErr := classifyContextErr(ctx, "gemini"); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &RateLimitError{Provider: ProviderNameGemini, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	contents, config, err := toGeminiRequest(req)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Models.GenerateContent(ctx, req.Model, contents, config)
	if err != nil {
		var apierr genai.APIError
		if errors.As(err, &apierr) && apierr.Code == http.StatusTooManyRequests {
			return nil, &RateLimitError{Provider: ProviderNameGemini, Err: err}
		}
		return nil, errors.Wrapf(errors.ErrExternal, "gemini generate content: %v", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, errors.Wrap(errors.ErrNoResponse, "gemini returned no candidates")
	}

	out := &ChatResponse{
		ID:    resp.ResponseID,
		Model: req.Model,
	}
	if resp.UsageMetadata != nil {
		out.Usage = Usage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}

	for i, candidate := range resp.Candidates {
		choice, err := toChoice(i, candidate)
		if err != nil {
			return nil, err
		}
		out.Choices = append(out.Choices, choice)
	}

	return out, nil
}

func toGeminiRequest(req ChatRequest) ([]*genai.Content, *genai.GenerateContentConfig, error) {
	config := &genai.GenerateContentConfig{}

	if req.Temperature > 0 {
		config.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	if len(req.Tools) > 0 {
		declarations := make([]*genai.FunctionDeclaration, 0, len(req.Tools))
		for _, tool := range req.Tools {
			declarations = append(declarations, &genai.FunctionDeclaration{
				Name:                 tool.Name,
				Description:          tool.Description,
				ParametersJsonSchema: tool.Parameters,
			})
		}
		config.Tools = []*genai.Tool{{FunctionDeclarations: declarations}}
	}

	var contents []*genai.Content

	for _, msg := range req.Messages {
		switch msg.Role {
		case RoleSystem:
			config.SystemInstruction = &genai.Content{
				Parts: []*genai.Part{{Text: msg.Content}},
			}

		case RoleUser:
			contents = append(contents, &genai.Content{
				Role:  genai.RoleUser,
				Parts: []*genai.Part{{Text: msg.Content}},
			})

		case RoleAssistant:
			content := &genai.Content{Role: genai.RoleModel}
			if msg.Content != "" {
				content.Parts = append(content.Parts, &genai.Part{Text: msg.Content})
			}
			for _, tc := range msg.ToolCalls {
				args := map[string]any{}
				if tc.Arguments != "" {
					if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
						return nil, nil, errors.Wrapf(errors.ErrInvalidInput, "tool call %s arguments: %v", tc.Name, err)
					}
				}
				content.Parts = append(content.Parts, &genai.Part{
					FunctionCall: &genai.FunctionCall{Name: tc.Name, Args: args},
				})
			}
			contents = append(contents, content)

		case RoleTool:
			contents = append(contents, &genai.Content{
				Role: genai.RoleUser,
				Parts: []*genai.Part{{
					FunctionResponse: &genai.FunctionResponse{
						Name:     msg.ToolCallID,
						Response: map[string]any{"result": msg.Content},
					},
				}},
			})
		}
	}

	return contents, config, nil
}

func toChoice(index int, candidate *genai.Candidate) (Choice, error) {
	msg := Message{Role: RoleAssistant}

	if candidate.Content != nil {
		var text strings.Builder
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				text.WriteString(part.Text)
			}
			if part.FunctionCall != nil {
				args, err := json.Marshal(part.FunctionCall.Args)
				if err != nil {
					return Choice{}, errors.Wrapf(err, "marshal %s function call args", part.FunctionCall.Name)
				}
				msg.ToolCalls = append(msg.ToolCalls, ToolCall{
					ID:        part.FunctionCall.Name,
					Name:      part.FunctionCall.Name,
					Arguments: string(args),
				})
			}
		}
		msg.Content = text.String()
	}

	finish := FinishReasonStop
	switch {
	case len(msg.ToolCalls) > 0:
		finish = FinishReasonToolCalls
	case candidate.FinishReason == genai.FinishReasonMaxTokens:
		finish = FinishReasonLength
	}

	return Choice{Index: index, Message: msg, FinishReason: finish}, nil
}
