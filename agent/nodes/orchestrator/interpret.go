package orchestratornode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/capital-agent/agent/contract"
)

const (
	NodeInvokeTool = "invoke_tool"
	NodeReply      = "reply"
)

// Interpret asks the model what to do with the message. A gateway failure is
// kept on the state so the turn can still finish with a fallback reply.
func Interpret(
	ctx context.Context,
	in *GraphState,
	gateway contractx.Gateway,
	tracer contractx.Tracer,
) (*GraphState, error) {
	if err := requireState(in); err != nil {
		return nil, err
	}

	intent, err := gateway.Interpret(modelCtx(ctx, in), in.Text, in.History)
	if err == nil {
		switch intent.(type) {
		case contractx.NeedsTool, contractx.DirectAnswer:
		default:
			err = fmt.Errorf("%w: unexpected intent %T", contractx.ErrMalformedResponse, intent)
		}
	}
	if err != nil {
		in.InterpretErr = err
		tracer.Emit(contractx.TraceEvent{
			Stage:   contractx.StageLLM,
			Message: fmt.Sprintf("Analyzing user question... failed: %v", err),
		})
		return in, nil
	}

	in.Intent = intent
	tracer.Emit(contractx.TraceEvent{
		Stage:   contractx.StageLLM,
		Message: "Analyzing user question... " + contractx.DescribeIntent(intent),
	})
	return in, nil
}

// Route picks the node that follows interpret.
func Route(in *GraphState) (string, error) {
	if err := requireState(in); err != nil {
		return "", err
	}
	if in.InterpretErr != nil {
		return NodeReply, nil
	}

	switch in.Intent.(type) {
	case contractx.NeedsTool:
		return NodeInvokeTool, nil
	case contractx.DirectAnswer:
		return NodeReply, nil
	default:
		return "", fmt.Errorf("%w: cannot route intent %T", contractx.ErrValidation, in.Intent)
	}
}
