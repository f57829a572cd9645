package orchestratornode

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/capital-agent/agent/contract"
)

// GraphInput carries the caller's context for the model round trips. The
// graph itself runs detached so a cancelled call still completes the turn.
type GraphInput struct {
	CallerCtx context.Context
	Text      string
}

type GraphOutput struct {
	Reply contractx.Reply
}

// GraphState is threaded through every node of one turn and discarded when
// the turn ends.
type GraphState struct {
	CallerCtx context.Context

	Text    string
	History []contractx.Turn

	Intent       contractx.Intent
	InterpretErr error

	Tool      *contractx.ToolCall
	FinalText string
	Degraded  bool
	Cause     error
}

// ValidateRequest rejects blank input before anything is traced or stored.
func ValidateRequest(in GraphInput, tracer contractx.Tracer) (*GraphState, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, contractx.ErrEmptyInput
	}

	tracer.Emit(contractx.TraceEvent{
		Stage:   contractx.StageUser,
		Message: fmt.Sprintf("INPUT: '%s'", text),
	})
	return &GraphState{CallerCtx: in.CallerCtx, Text: text}, nil
}

// modelCtx is the context handed to the gateway.
func modelCtx(ctx context.Context, in *GraphState) context.Context {
	if in.CallerCtx != nil {
		return in.CallerCtx
	}
	return ctx
}

func requireState(in *GraphState) error {
	if in == nil {
		return fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	return nil
}
