package gateway

import (
	"context"
	"errors"
	"strings"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/capital-agent/agent/contract"
	promptx "github.com/tanpawarit/capital-agent/agent/prompt"
	toolx "github.com/tanpawarit/capital-agent/agent/tool"
)

type fakeChatModel struct {
	responses []*schema.Message
	err       error
	idx       int
	inputs    [][]*schema.Message
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	if f.idx >= len(f.responses) {
		return nil, errors.New("no fake response left")
	}
	msg := f.responses[f.idx]
	f.idx++
	return msg, nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not implemented in fake model")
}

func newTestGateway(t *testing.T, interpret, compose *fakeChatModel) *Gateway {
	t.Helper()

	g, err := New(context.Background(), interpret, compose, promptx.LoadPromptSet(), toolx.Infos())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g
}

func TestInterpretNeedsTool(t *testing.T) {
	t.Parallel()

	interpret := &fakeChatModel{
		responses: []*schema.Message{
			{Content: "```json\n{\"intent\":\"needs_tool\",\"country\":\"  Japan \"}\n```"},
		},
	}
	g := newTestGateway(t, interpret, &fakeChatModel{})

	history := []contractx.Turn{{Role: contractx.RoleUser, Text: "hello", Ordinal: 1}}
	intent, err := g.Interpret(context.Background(), "What is the capital of Japan?", history)
	if err != nil {
		t.Fatalf("Interpret() error = %v", err)
	}

	needs, ok := intent.(contractx.NeedsTool)
	if !ok {
		t.Fatalf("expected NeedsTool, got %T", intent)
	}
	if needs.Country != "japan" {
		t.Fatalf("unexpected country: %q", needs.Country)
	}

	if len(interpret.inputs) != 1 {
		t.Fatalf("expected one model call, got %d", len(interpret.inputs))
	}
	msgs := interpret.inputs[0]
	if len(msgs) != 2 || msgs[0].Role != schema.System || msgs[1].Role != schema.User {
		t.Fatalf("unexpected prompt messages: %#v", msgs)
	}
	for _, want := range []string{"What is the capital of Japan?", toolx.ToolGetCapitalCity, `"hello"`} {
		if !strings.Contains(msgs[1].Content, want) {
			t.Fatalf("payload missing %q: %s", want, msgs[1].Content)
		}
	}
}

func TestInterpretDirectAnswer(t *testing.T) {
	t.Parallel()

	interpret := &fakeChatModel{
		responses: []*schema.Message{
			{Content: `{"intent":"DIRECT_ANSWER","answer":"Hello! Ask me about a capital."}`},
		},
	}
	g := newTestGateway(t, interpret, &fakeChatModel{})

	intent, err := g.Interpret(context.Background(), "hi there", nil)
	if err != nil {
		t.Fatalf("Interpret() error = %v", err)
	}

	direct, ok := intent.(contractx.DirectAnswer)
	if !ok {
		t.Fatalf("expected DirectAnswer, got %T", intent)
	}
	if direct.Text != "Hello! Ask me about a capital." {
		t.Fatalf("unexpected answer: %q", direct.Text)
	}
}

func TestInterpretMalformed(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"not json":        "the capital is Tokyo",
		"unknown intent":  `{"intent":"search_web","country":"japan"}`,
		"missing country": `{"intent":"needs_tool"}`,
		"empty answer":    `{"intent":"direct_answer","answer":"  "}`,
		"broken object":   `{"intent":"needs_tool","country":}`,
	}

	for name, content := range cases {
		content := content
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			g := newTestGateway(t, &fakeChatModel{
				responses: []*schema.Message{{Content: content}},
			}, &fakeChatModel{})

			_, err := g.Interpret(context.Background(), "What is the capital of Japan?", nil)
			if !errors.Is(err, contractx.ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestInterpretModelUnavailable(t *testing.T) {
	t.Parallel()

	g := newTestGateway(t, &fakeChatModel{err: errors.New("connection refused")}, &fakeChatModel{})

	_, err := g.Interpret(context.Background(), "What is the capital of Japan?", nil)
	if !errors.Is(err, contractx.ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestInterpretRejectsEmptyInput(t *testing.T) {
	t.Parallel()

	interpret := &fakeChatModel{}
	g := newTestGateway(t, interpret, &fakeChatModel{})

	_, err := g.Interpret(context.Background(), "   ", nil)
	if !errors.Is(err, contractx.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if len(interpret.inputs) != 0 {
		t.Fatalf("model should not be called for empty input")
	}
}

func TestComposeSuccess(t *testing.T) {
	t.Parallel()

	composeModel := &fakeChatModel{
		responses: []*schema.Message{{Content: "  The capital of Japan is Tokyo.  "}},
	}
	g := newTestGateway(t, &fakeChatModel{}, composeModel)

	text, err := g.Compose(context.Background(), "What is the capital of Japan?", contractx.ToolCall{
		Tool:   toolx.ToolGetCapitalCity,
		Input:  "japan",
		Output: "Tokyo",
		Found:  true,
	}, nil)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if text != "The capital of Japan is Tokyo." {
		t.Fatalf("unexpected text: %q", text)
	}
	if !strings.Contains(composeModel.inputs[0][1].Content, `"capital":"Tokyo"`) {
		t.Fatalf("compose payload missing capital: %s", composeModel.inputs[0][1].Content)
	}
}

func TestComposeFailures(t *testing.T) {
	t.Parallel()

	call := contractx.ToolCall{Tool: toolx.ToolGetCapitalCity, Input: "japan", Output: "Tokyo", Found: true}

	g := newTestGateway(t, &fakeChatModel{}, &fakeChatModel{err: errors.New("timeout")})
	if _, err := g.Compose(context.Background(), "q", call, nil); !errors.Is(err, contractx.ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}

	g = newTestGateway(t, &fakeChatModel{}, &fakeChatModel{responses: []*schema.Message{{Content: " "}}})
	if _, err := g.Compose(context.Background(), "q", call, nil); !errors.Is(err, contractx.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}

	notFound := contractx.ToolCall{Tool: toolx.ToolGetCapitalCity, Input: "atlantis"}
	if _, err := g.Compose(context.Background(), "q", notFound, nil); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	if _, err := New(context.Background(), nil, &fakeChatModel{}, promptx.LoadPromptSet(), nil); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation for nil model, got %v", err)
	}
	if _, err := New(context.Background(), &fakeChatModel{}, &fakeChatModel{}, promptx.PromptSet{}, nil); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty prompts, got %v", err)
	}
}
