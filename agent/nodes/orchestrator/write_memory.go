package orchestratornode

import (
	"fmt"

	contractx "github.com/tanpawarit/capital-agent/agent/contract"
)

// StoreUserTurn captures the prompt history window, then appends the user
// turn. The window is read first so the current message is not sent twice.
func StoreUserTurn(
	in *GraphState,
	memory contractx.ConversationMemory,
	tracer contractx.Tracer,
	historyWindow int,
) (*GraphState, error) {
	if err := requireState(in); err != nil {
		return nil, err
	}

	in.History = memory.Window(historyWindow)
	turn := memory.Append(contractx.RoleUser, in.Text)

	tracer.Emit(contractx.TraceEvent{
		Stage:   contractx.StageMemory,
		Message: fmt.Sprintf("Storing user message... (turn %d)", turn.Ordinal),
	})
	return in, nil
}

func StoreAgentTurn(
	in *GraphState,
	memory contractx.ConversationMemory,
	tracer contractx.Tracer,
) (GraphOutput, error) {
	if err := requireState(in); err != nil {
		return GraphOutput{}, err
	}

	memory.Append(contractx.RoleAgent, in.FinalText)

	tracer.Emit(contractx.TraceEvent{
		Stage:   contractx.StageMemory,
		Message: fmt.Sprintf("Conversation stored (%d turns)", memory.Len()),
	})
	return GraphOutput{
		Reply: contractx.Reply{
			Text:     in.FinalText,
			Degraded: in.Degraded,
			Tool:     in.Tool,
			Cause:    in.Cause,
		},
	}, nil
}
