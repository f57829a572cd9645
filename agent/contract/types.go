package contract

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

type Turn struct {
	Role    Role      `json:"role"`
	Text    string    `json:"text"`
	Ordinal int       `json:"ordinal"`
	At      time.Time `json:"at"`
}

// Intent is what the model decided to do with a user message: either
// DirectAnswer or NeedsTool.
type Intent interface {
	intent()
}

type DirectAnswer struct {
	Text string
}

type NeedsTool struct {
	Country string
}

func (DirectAnswer) intent() {}
func (NeedsTool) intent()    {}

func DescribeIntent(in Intent) string {
	switch v := in.(type) {
	case DirectAnswer:
		return "intent=direct_answer"
	case NeedsTool:
		return fmt.Sprintf("intent=needs_tool country=%q", v.Country)
	default:
		return fmt.Sprintf("intent=unknown(%T)", in)
	}
}

type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ToolCall records one tool invocation inside a single turn.
type ToolCall struct {
	Tool   string `json:"tool"`
	Input  string `json:"input"`
	Output string `json:"output"`
	Found  bool   `json:"found"`
}

type Stage string

const (
	StageUser   Stage = "USER"
	StageMemory Stage = "MEMORY"
	StageLLM    Stage = "LLM"
	StageTool   Stage = "TOOL"
	StageAgent  Stage = "AGENT"
)

type TraceEvent struct {
	Stage   Stage  `json:"stage"`
	Message string `json:"message"`
}

func (e TraceEvent) String() string {
	return fmt.Sprintf("[%s] %s", e.Stage, e.Message)
}

// Reply is the outcome of one completed turn.
// Cause is the model error behind a degraded reply.
type Reply struct {
	Text     string
	Degraded bool
	Tool     *ToolCall
	Cause    error
}
