package orchestrator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	nodex "github.com/tanpawarit/capital-agent/agent/nodes/orchestrator"
)

func (o *Orchestrator) compileHandleTurnGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, nodex.GraphOutput], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.ValidateRequest(in, o.tracer)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("store_user_turn",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.StoreUserTurn(in, o.memory, o.tracer, o.historyWindow)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node store_user_turn: %w", err)
	}

	if err := graph.AddLambdaNode("interpret",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.Interpret(ctx, in, o.gateway, o.tracer)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node interpret: %w", err)
	}

	if err := graph.AddLambdaNode(nodex.NodeInvokeTool,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.InvokeTool(ctx, in, o.tools, o.tracer)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node invoke_tool: %w", err)
	}

	if err := graph.AddLambdaNode("compose_answer",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.ComposeAnswer(ctx, in, o.gateway, o.tracer)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node compose_answer: %w", err)
	}

	if err := graph.AddLambdaNode(nodex.NodeReply,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.FinalizeReply(in, o.tracer)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node reply: %w", err)
	}

	if err := graph.AddLambdaNode("store_agent_turn",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.StoreAgentTurn(in, o.memory, o.tracer)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node store_agent_turn: %w", err)
	}

	branch := compose.NewGraphBranch(
		func(ctx context.Context, in *nodex.GraphState) (string, error) {
			return nodex.Route(in)
		},
		map[string]bool{
			nodex.NodeInvokeTool: true,
			nodex.NodeReply:      true,
		},
	)
	if err := graph.AddBranch("interpret", branch); err != nil {
		return nil, fmt.Errorf("add branch after interpret: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "store_user_turn"},
		{"store_user_turn", "interpret"},
		{nodex.NodeInvokeTool, "compose_answer"},
		{"compose_answer", nodex.NodeReply},
		{nodex.NodeReply, "store_agent_turn"},
		{"store_agent_turn", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	// reply is reached either from the branch or from compose_answer, so it
	// must fire on whichever predecessor ran.
	runner, err := graph.Compile(ctx,
		compose.WithGraphName("orchestrator.handle_turn"),
		compose.WithNodeTriggerMode(compose.AnyPredecessor),
	)
	if err != nil {
		return nil, fmt.Errorf("compile orchestrator graph: %w", err)
	}
	return runner, nil
}
