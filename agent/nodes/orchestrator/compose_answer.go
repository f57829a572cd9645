package orchestratornode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/capital-agent/agent/contract"
	toolx "github.com/tanpawarit/capital-agent/agent/tool"
)

// ComposeAnswer turns the tool result into the final text. An unknown
// country never reaches the model.
func ComposeAnswer(
	ctx context.Context,
	in *GraphState,
	gateway contractx.Gateway,
	tracer contractx.Tracer,
) (*GraphState, error) {
	if err := requireState(in); err != nil {
		return nil, err
	}
	if in.Tool == nil {
		return nil, fmt.Errorf("%w: compose_answer without a tool call", contractx.ErrValidation)
	}

	if !in.Tool.Found {
		in.FinalText = toolx.UnknownCountryReply
		tracer.Emit(contractx.TraceEvent{
			Stage:   contractx.StageLLM,
			Message: "Skipping final response: country not in database",
		})
		return in, nil
	}

	text, err := gateway.Compose(modelCtx(ctx, in), in.Text, *in.Tool, in.History)
	if err != nil {
		in.FinalText = PlainCapitalAnswer(*in.Tool)
		in.Degraded = true
		in.Cause = err
		tracer.Emit(contractx.TraceEvent{
			Stage:   contractx.StageLLM,
			Message: fmt.Sprintf("Generating final response... failed, using plain answer: %v", err),
		})
		return in, nil
	}

	in.FinalText = text
	tracer.Emit(contractx.TraceEvent{
		Stage:   contractx.StageLLM,
		Message: "Generating final response...",
	})
	return in, nil
}

func PlainCapitalAnswer(call contractx.ToolCall) string {
	return fmt.Sprintf("The capital of %s is %s.", toolx.DisplayName(call.Input), call.Output)
}
