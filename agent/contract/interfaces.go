package contract

import "context"

// Gateway is the boundary to the external language model. Each call is one
// blocking round trip.
type Gateway interface {
	Interpret(ctx context.Context, userText string, history []Turn) (Intent, error)
	Compose(ctx context.Context, userText string, call ToolCall, history []Turn) (string, error)
}

type Tracer interface {
	Emit(event TraceEvent)
}

// ConversationMemory is append-only. History and Window return copies.
type ConversationMemory interface {
	Append(role Role, text string) Turn
	History() []Turn
	Window(n int) []Turn
	Len() int
}
