package trace

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	contractx "github.com/tanpawarit/capital-agent/agent/contract"
)

type panicError struct {
	value any
}

func (p panicError) Error() string {
	return fmt.Sprintf("trace sink panicked: %v", p.value)
}

// ConsoleSink prints one "[STAGE] message" line per event.
type ConsoleSink struct {
	w      io.Writer
	colors map[contractx.Stage]*color.Color
}

func NewConsoleSink(w io.Writer, colorize bool) *ConsoleSink {
	s := &ConsoleSink{w: w}
	if colorize {
		s.colors = map[contractx.Stage]*color.Color{
			contractx.StageUser:   color.New(color.FgBlue, color.Bold),
			contractx.StageMemory: color.New(color.FgMagenta),
			contractx.StageLLM:    color.New(color.FgYellow),
			contractx.StageTool:   color.New(color.FgCyan),
			contractx.StageAgent:  color.New(color.FgGreen, color.Bold),
		}
		for _, c := range s.colors {
			c.EnableColor()
		}
	}
	return s
}

func (s *ConsoleSink) Write(event contractx.TraceEvent) error {
	if s.w == nil {
		return nil
	}
	tag := "[" + string(event.Stage) + "]"
	if c, ok := s.colors[event.Stage]; ok {
		tag = c.Sprint(tag)
	}
	_, err := fmt.Fprintf(s.w, "%s %s\n", tag, event.Message)
	return err
}

// Recorder keeps every event in memory.
type Recorder struct {
	mu     sync.RWMutex
	events []contractx.TraceEvent
}

func NewRecorder() *Recorder {
	return &Recorder{events: make([]contractx.TraceEvent, 0)}
}

func (r *Recorder) Write(event contractx.TraceEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *Recorder) Events() []contractx.TraceEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]contractx.TraceEvent, len(r.events))
	copy(out, r.events)
	return out
}

func (r *Recorder) Stages() []contractx.Stage {
	events := r.Events()
	out := make([]contractx.Stage, len(events))
	for i, e := range events {
		out[i] = e.Stage
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = r.events[:0]
}

// LogSink mirrors events into the structured log at debug level.
type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Write(event contractx.TraceEvent) error {
	s.logger.Debug().
		Str("stage", string(event.Stage)).
		Str("trace_message", event.Message).
		Msg("trace event")
	return nil
}
