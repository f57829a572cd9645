package orchestratornode

import (
	"errors"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/capital-agent/agent/contract"
)

const (
	FallbackModelUnavailable  = "Sorry, I couldn't reach the language model. Please try again."
	FallbackMalformedResponse = "Sorry, I couldn't understand the language model's reply. Please try again."
)

// FinalizeReply settles the final text for every path and emits it.
func FinalizeReply(in *GraphState, tracer contractx.Tracer) (*GraphState, error) {
	if err := requireState(in); err != nil {
		return nil, err
	}

	switch {
	case in.InterpretErr != nil:
		in.FinalText = interpretFallback(in.InterpretErr)
		in.Degraded = true
		in.Cause = in.InterpretErr
	case strings.TrimSpace(in.FinalText) == "":
		direct, ok := in.Intent.(contractx.DirectAnswer)
		if !ok {
			return nil, fmt.Errorf("%w: turn produced no reply", contractx.ErrValidation)
		}
		in.FinalText = strings.TrimSpace(direct.Text)
	}

	tracer.Emit(contractx.TraceEvent{
		Stage:   contractx.StageAgent,
		Message: "FINAL: " + in.FinalText,
	})
	return in, nil
}

func interpretFallback(err error) string {
	if errors.Is(err, contractx.ErrMalformedResponse) {
		return FallbackMalformedResponse
	}
	return FallbackModelUnavailable
}
