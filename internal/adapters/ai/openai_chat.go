package ai

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"concierge/pkg/errors"
	"concierge/pkg/logger"
)

// Ensure OpenAIProvider implements ChatProvider
var _ ChatProvider = (*OpenAIProvider)(nil)

// OpenAIProvider implements chat completions using the official OpenAI Go SDK.
type OpenAIProvider struct {
	client      openai.Client // NewClient returns Client (not *Client)
	rateLimiter *RateLimiter
	timeout     time.Duration
	models      []ModelInfo
	log         *logger.Logger
}

// NewOpenAIProvider creates a new OpenAI chat provider.
func NewOpenAIProvider(apiKey string, reqPerMinute float64, timeout time.Duration) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, errors.Wrap(errors.ErrNoAPIKey, "openai")
	}
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &OpenAIProvider{
		client:      client,
		rateLimiter: NewRateLimiter(ProviderNameOpenAI, reqPerMinute),
		timeout:     timeout,
		models:      openAIModels(),
		log:         logger.Get().With("component", "openai_provider"),
	}, nil
}

// Name returns provider name.
func (p *OpenAIProvider) Name() string { return ProviderNameOpenAI.String() }

// GetModel returns model info by name.
func (p *OpenAIProvider) GetModel(_ context.Context, model string) (ModelInfo, error) {
	for _, m := range p.models {
		if strings.EqualFold(m.Name, model) {
			return m, nil
		}
	}
	return ModelInfo{}, errors.Wrapf(errors.ErrNotFound, "openai model %s not found", model)
}

// ListModels lists available models.
func (p *OpenAIProvider) ListModels(_ context.Context) ([]ModelInfo, error) {
	return p.models, nil
}

// SupportsStreaming indicates streaming support.
func (p *OpenAIProvider) SupportsStreaming() bool { return true }

// SupportsTools indicates tool calling support.
func (p *OpenAIProvider) SupportsTools() bool { return true }

// Chat sends a chat completion request with tool calling support.
func (p *OpenAIProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if err := p.rateLimiter.Wait(ctx); err != nil {
		if ctxErr := classifyContextErr(ctx, "openai"); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &RateLimitError{Provider: ProviderNameOpenAI, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(req.Model),
		Messages: toOpenAIMessages(req.Messages),
	}

	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxTokens))
	}

	for _, tool := range req.Tools {
		params.Tools = append(params.Tools, openai.ChatCompletionFunctionTool(shared.FunctionDefinitionParam{
			Name:        tool.Name,
			Description: openai.String(tool.Description),
			Parameters:  shared.FunctionParameters(tool.Parameters),
		}))
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) && apierr.StatusCode == http.StatusTooManyRequests {
			return nil, &RateLimitError{Provider: ProviderNameOpenAI, Err: err}
		}
		return nil, errors.Wrapf(errors.ErrExternal, "openai chat completion: %v", err)
	}

	if len(completion.Choices) == 0 {
		return nil, errors.Wrap(errors.ErrNoResponse, "openai returned no choices")
	}

	resp := &ChatResponse{
		ID:    completion.ID,
		Model: completion.Model,
		Usage: Usage{
			PromptTokens:     int(completion.Usage.PromptTokens),
			CompletionTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:      int(completion.Usage.TotalTokens),
		},
	}

	for _, choice := range completion.Choices {
		msg := Message{
			Role:    RoleAssistant,
			Content: choice.Message.Content,
		}

		for _, tc := range choice.Message.ToolCalls {
			msg.ToolCalls = append(msg.ToolCalls, ToolCall{
				ID:        tc.ID,
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			})
		}

		resp.Choices = append(resp.Choices, Choice{
			Index:        int(choice.Index),
			Message:      msg,
			FinishReason: toFinishReason(choice.FinishReason),
		})
	}

	return resp, nil
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))

		case RoleUser:
			out = append(out, openai.UserMessage(msg.Content))

		case RoleAssistant:
			assistant := openai.ChatCompletionAssistantMessageParam{}
			if msg.Content != "" {
				assistant.Content.OfString = openai.String(msg.Content)
			}
			for _, tc := range msg.ToolCalls {
				assistant.ToolCalls = append(assistant.ToolCalls, openai.ChatCompletionMessageToolCallUnionParam{
					OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
						ID: tc.ID,
						Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
							Name:      tc.Name,
							Arguments: tc.Arguments,
						},
					},
				})
			}
			out = append(out, openai.ChatCompletionMessageParamUnion{OfAssistant: &assistant})

		case RoleTool:
			out = append(out, openai.ToolMessage(msg.Content, msg.ToolCallID))
		}
	}

	return out
}

func toFinishReason(reason string) FinishReason {
	switch reason {
	case "stop":
		return FinishReasonStop
	case "length":
		return FinishReasonLength
	case "tool_calls", "function_call":
		return FinishReasonToolCalls
	default:
		return FinishReasonStop
	}
}
