package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

var _ einomodel.BaseChatModel = (*anthropicChatModel)(nil)

// anthropicChatModel adapts the Anthropic Messages API to eino's chat model
// contract. System messages become the request's system prompt.
type anthropicChatModel struct {
	client      *anthropic.Client
	model       string
	maxTokens   int
	temperature float32
}

func newAnthropicChatModel(mc ModelConfig) *anthropicChatModel {
	opts := []anthropicoption.RequestOption{
		anthropicoption.WithAPIKey(mc.APIKey),
		anthropicoption.WithMaxRetries(0),
	}
	if mc.BaseURL != "" {
		opts = append(opts, anthropicoption.WithBaseURL(strings.TrimRight(mc.BaseURL, "/")+"/"))
	}
	if mc.Timeout > 0 {
		opts = append(opts, anthropicoption.WithRequestTimeout(mc.Timeout))
	}

	client := anthropic.NewClient(opts...)
	return &anthropicChatModel{
		client:      &client,
		model:       mc.Model,
		maxTokens:   mc.MaxCompletionToken,
		temperature: mc.Temperature,
	}
}

func (m *anthropicChatModel) Generate(ctx context.Context, input []*schema.Message, _ ...einomodel.Option) (*schema.Message, error) {
	var system []anthropic.TextBlockParam
	messages := make([]anthropic.MessageParam, 0, len(input))
	for _, msg := range input {
		if msg == nil {
			continue
		}
		switch msg.Role {
		case schema.System:
			system = append(system, anthropic.TextBlockParam{Text: msg.Content})
		case schema.Assistant:
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}
	if len(messages) == 0 {
		return nil, errors.New("anthropic: no user message to send")
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(m.model),
		MaxTokens:   int64(m.maxTokens),
		Messages:    messages,
		Temperature: anthropic.Float(float64(m.temperature)),
	}
	if len(system) > 0 {
		params.System = system
	}

	resp, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(tb.Text)
		}
	}
	return schema.AssistantMessage(strings.TrimSpace(sb.String()), nil), nil
}

func (m *anthropicChatModel) Stream(context.Context, []*schema.Message, ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("anthropic: stream is not supported")
}
