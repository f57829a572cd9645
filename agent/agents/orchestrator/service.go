package orchestrator

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/compose"
	contractx "github.com/tanpawarit/capital-agent/agent/contract"
	memoryx "github.com/tanpawarit/capital-agent/agent/memory"
	nodex "github.com/tanpawarit/capital-agent/agent/nodes/orchestrator"
	toolx "github.com/tanpawarit/capital-agent/agent/tool"
	tracex "github.com/tanpawarit/capital-agent/agent/trace"
)

const defaultHistoryWindow = 10

type Config struct {
	HistoryWindow int `envconfig:"HISTORY_WINDOW" default:"10"`
}

// Orchestrator runs one conversation, a turn at a time. It is not safe for
// concurrent use.
type Orchestrator struct {
	gateway contractx.Gateway
	tools   toolx.Executor
	memory  contractx.ConversationMemory
	tracer  contractx.Tracer

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	historyWindow int
}

func New(
	gateway contractx.Gateway,
	tools toolx.Executor,
	memory contractx.ConversationMemory,
	tracer contractx.Tracer,
	cfg Config,
) (*Orchestrator, error) {
	if gateway == nil {
		return nil, errors.New("model gateway is required")
	}
	if tools == nil {
		tools = toolx.NewExecutor(nil)
	}
	if memory == nil {
		memory = memoryx.NewConversation()
	}
	if tracer == nil {
		tracer = tracex.New(nil)
	}

	historyWindow := cfg.HistoryWindow
	if historyWindow <= 0 {
		historyWindow = defaultHistoryWindow
	}

	o := &Orchestrator{
		gateway:       gateway,
		tools:         tools,
		memory:        memory,
		tracer:        tracer,
		historyWindow: historyWindow,
	}

	graphRunner, err := o.compileHandleTurnGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// HandleTurn runs one user message to completion. Model failures degrade the
// reply instead of failing the turn; blank input returns ErrEmptyInput.
func (o *Orchestrator) HandleTurn(ctx context.Context, text string) (contractx.Reply, error) {
	out, err := o.graphRunner.Invoke(context.WithoutCancel(ctx), nodex.GraphInput{
		CallerCtx: ctx,
		Text:      text,
	})
	if err != nil {
		if errors.Is(err, contractx.ErrEmptyInput) {
			return contractx.Reply{}, contractx.ErrEmptyInput
		}
		return contractx.Reply{}, err
	}
	return out.Reply, nil
}

func (o *Orchestrator) Memory() contractx.ConversationMemory {
	return o.memory
}
