package trace

import (
	contractx "github.com/tanpawarit/capital-agent/agent/contract"
)

// Sink receives trace events. Errors are reported to the tracer but never
// reach the turn that emitted the event.
type Sink interface {
	Write(event contractx.TraceEvent) error
}

type SinkFunc func(event contractx.TraceEvent) error

func (f SinkFunc) Write(event contractx.TraceEvent) error {
	return f(event)
}

var _ contractx.Tracer = (*Tracer)(nil)

// Tracer fans events out to its sinks in order. Emit is best-effort.
type Tracer struct {
	sinks   []Sink
	onError func(error)
}

type Option func(*Tracer)

// WithErrorHandler observes sink failures, e.g. to log them.
func WithErrorHandler(fn func(error)) Option {
	return func(t *Tracer) {
		t.onError = fn
	}
}

func New(sinks []Sink, opts ...Option) *Tracer {
	t := &Tracer{}
	for _, s := range sinks {
		if s != nil {
			t.sinks = append(t.sinks, s)
		}
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

func (t *Tracer) Emit(event contractx.TraceEvent) {
	if t == nil {
		return
	}
	for _, s := range t.sinks {
		t.write(s, event)
	}
}

func (t *Tracer) write(s Sink, event contractx.TraceEvent) {
	defer func() {
		if r := recover(); r != nil {
			t.report(panicError{value: r})
		}
	}()
	if err := s.Write(event); err != nil {
		t.report(err)
	}
}

func (t *Tracer) report(err error) {
	if t.onError == nil {
		return
	}
	defer func() { _ = recover() }()
	t.onError(err)
}
