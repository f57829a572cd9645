package llm

import (
	"context"
	"errors"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	openaisdk "github.com/openai/openai-go"
	openrouterx "github.com/tanpawarit/capital-agent/pkg/openrouter"
)

var _ einomodel.BaseChatModel = (*openAIChatModel)(nil)

// openAIChatModel adapts the OpenAI SDK to eino's chat model contract.
type openAIChatModel struct {
	client      *openaisdk.Client
	model       string
	maxTokens   int
	temperature float32
}

func newOpenAIChatModel(mc ModelConfig) (*openAIChatModel, error) {
	client, err := openrouterx.NewClient(mc.openRouter())
	if err != nil {
		return nil, err
	}
	return &openAIChatModel{
		client:      client,
		model:       mc.Model,
		maxTokens:   mc.MaxCompletionToken,
		temperature: mc.Temperature,
	}, nil
}

func (m *openAIChatModel) Generate(ctx context.Context, input []*schema.Message, _ ...einomodel.Option) (*schema.Message, error) {
	messages := make([]openaisdk.ChatCompletionMessageParamUnion, 0, len(input))
	for _, msg := range input {
		if msg == nil {
			continue
		}
		switch msg.Role {
		case schema.System:
			messages = append(messages, openaisdk.SystemMessage(msg.Content))
		case schema.Assistant:
			messages = append(messages, openaisdk.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openaisdk.UserMessage(msg.Content))
		}
	}

	resp, err := m.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model:               openaisdk.ChatModel(m.model),
		Messages:            messages,
		MaxCompletionTokens: openaisdk.Int(int64(m.maxTokens)),
		Temperature:         openaisdk.Float(float64(m.temperature)),
	})
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, errors.New("openai: response has no choices")
	}

	return schema.AssistantMessage(strings.TrimSpace(resp.Choices[0].Message.Content), nil), nil
}

func (m *openAIChatModel) Stream(context.Context, []*schema.Message, ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("openai: stream is not supported")
}
