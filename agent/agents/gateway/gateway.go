package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/capital-agent/agent/contract"
	llmx "github.com/tanpawarit/capital-agent/agent/llm"
	promptx "github.com/tanpawarit/capital-agent/agent/prompt"
)

var _ contractx.Gateway = (*Gateway)(nil)

// Gateway runs the interpret and compose round trips against chat models.
type Gateway struct {
	interpretRunner compose.Runnable[map[string]any, contractx.Intent]
	composeRunner   compose.Runnable[map[string]any, *schema.Message]
	tools           []*schema.ToolInfo
}

// NewFromConfig builds one chat model per phase from cfg. tools are described
// to the model in the interpret payload.
func NewFromConfig(ctx context.Context, cfg llmx.Config, tools []*schema.ToolInfo) (*Gateway, error) {
	interpretModel, err := llmx.NewChatModel(ctx, cfg, llmx.PhaseInterpret)
	if err != nil {
		return nil, err
	}
	composeModel, err := llmx.NewChatModel(ctx, cfg, llmx.PhaseCompose)
	if err != nil {
		return nil, err
	}
	return New(ctx, interpretModel, composeModel, promptx.LoadPromptSet(), tools)
}

func New(
	ctx context.Context,
	interpretModel einomodel.BaseChatModel,
	composeModel einomodel.BaseChatModel,
	prompts promptx.PromptSet,
	tools []*schema.ToolInfo,
) (*Gateway, error) {
	if interpretModel == nil || composeModel == nil {
		return nil, fmt.Errorf("%w: chat models are required", contractx.ErrValidation)
	}
	if strings.TrimSpace(prompts.Interpret) == "" || strings.TrimSpace(prompts.Compose) == "" {
		return nil, fmt.Errorf("%w: prompts are required", contractx.ErrValidation)
	}

	interpretRunner, err := compileInterpretGraph(ctx, interpretModel, prompts.Interpret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrModelUnavailable, err)
	}
	composeRunner, err := compileComposeGraph(ctx, composeModel, prompts.Compose)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrModelUnavailable, err)
	}

	return &Gateway{
		interpretRunner: interpretRunner,
		composeRunner:   composeRunner,
		tools:           tools,
	}, nil
}

func (g *Gateway) Interpret(ctx context.Context, userText string, history []contractx.Turn) (contractx.Intent, error) {
	if strings.TrimSpace(userText) == "" {
		return nil, contractx.ErrEmptyInput
	}

	input, err := json.Marshal(map[string]any{
		"user_message": userText,
		"history":      summarizeHistory(history),
		"tools":        summarizeTools(g.tools),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal interpret payload: %v", contractx.ErrValidation, err)
	}

	intent, err := g.interpretRunner.Invoke(ctx, map[string]any{
		"input": string(input),
	})
	if err != nil {
		return nil, classify("interpret", err)
	}
	if intent == nil {
		return nil, fmt.Errorf("%w: interpret returned no intent", contractx.ErrMalformedResponse)
	}
	return intent, nil
}

func (g *Gateway) Compose(ctx context.Context, userText string, call contractx.ToolCall, history []contractx.Turn) (string, error) {
	if !call.Found {
		return "", fmt.Errorf("%w: compose needs a found capital", contractx.ErrValidation)
	}

	input, err := json.Marshal(map[string]any{
		"user_message": userText,
		"country":      call.Input,
		"capital":      call.Output,
		"history":      summarizeHistory(history),
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshal compose payload: %v", contractx.ErrValidation, err)
	}

	msg, err := g.composeRunner.Invoke(ctx, map[string]any{
		"input": string(input),
	})
	if err != nil {
		return "", classify("compose", err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", fmt.Errorf("%w: compose reply is empty", contractx.ErrMalformedResponse)
	}
	return strings.TrimSpace(msg.Content), nil
}

// classify keeps malformed-response errors and reports everything else as
// the model being unavailable.
func classify(phase string, err error) error {
	if errors.Is(err, contractx.ErrMalformedResponse) {
		return err
	}
	return fmt.Errorf("%w: %s invoke: %v", contractx.ErrModelUnavailable, phase, err)
}

func summarizeHistory(history []contractx.Turn) []map[string]any {
	out := make([]map[string]any, 0, len(history))
	for _, t := range history {
		out = append(out, map[string]any{
			"role": t.Role,
			"text": t.Text,
		})
	}
	return out
}

func summarizeTools(tools []*schema.ToolInfo) []map[string]any {
	out := make([]map[string]any, 0, len(tools))
	for _, t := range tools {
		if t == nil {
			continue
		}
		out = append(out, map[string]any{
			"name":        t.Name,
			"description": t.Desc,
		})
	}
	return out
}
