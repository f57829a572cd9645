package gateway

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/capital-agent/agent/contract"
)

func compileInterpretGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
) (compose.Runnable[map[string]any, contractx.Intent], error) {
	graph := compose.NewGraph[map[string]any, contractx.Intent]()
	if err := addPromptAndModel(graph, chatModel, systemPrompt); err != nil {
		return nil, fmt.Errorf("add interpret nodes: %w", err)
	}
	if err := graph.AddLambdaNode("parse_intent",
		compose.InvokableLambda(func(ctx context.Context, msg *schema.Message) (contractx.Intent, error) {
			if msg == nil {
				return nil, fmt.Errorf("%w: empty interpret response", contractx.ErrMalformedResponse)
			}
			return parseIntent(msg.Content)
		}),
	); err != nil {
		return nil, fmt.Errorf("add interpret parse node: %w", err)
	}

	if err := graph.AddEdge("model", "parse_intent"); err != nil {
		return nil, fmt.Errorf("add interpret edge model->parse: %w", err)
	}
	if err := graph.AddEdge("parse_intent", compose.END); err != nil {
		return nil, fmt.Errorf("add interpret edge parse->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("gateway.interpret_graph"))
	if err != nil {
		return nil, fmt.Errorf("compile interpret graph: %w", err)
	}
	return runner, nil
}

func compileComposeGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
) (compose.Runnable[map[string]any, *schema.Message], error) {
	graph := compose.NewGraph[map[string]any, *schema.Message]()
	if err := addPromptAndModel(graph, chatModel, systemPrompt); err != nil {
		return nil, fmt.Errorf("add compose nodes: %w", err)
	}
	if err := graph.AddEdge("model", compose.END); err != nil {
		return nil, fmt.Errorf("add compose edge model->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("gateway.compose_graph"))
	if err != nil {
		return nil, fmt.Errorf("compile compose graph: %w", err)
	}
	return runner, nil
}

// addPromptAndModel wires START -> prompt -> model. The caller connects model
// onward.
func addPromptAndModel[O any](
	graph *compose.Graph[map[string]any, O],
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
) error {
	template := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.UserMessage("{input}"),
	)

	if err := graph.AddChatTemplateNode("prompt", template); err != nil {
		return fmt.Errorf("add prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return fmt.Errorf("add model node: %w", err)
	}
	if err := graph.AddEdge(compose.START, "prompt"); err != nil {
		return fmt.Errorf("add edge start->prompt: %w", err)
	}
	if err := graph.AddEdge("prompt", "model"); err != nil {
		return fmt.Errorf("add edge prompt->model: %w", err)
	}
	return nil
}
