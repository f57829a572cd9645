package memory

import (
	"strings"
	"time"

	contractx "github.com/tanpawarit/capital-agent/agent/contract"
)

var _ contractx.ConversationMemory = (*Conversation)(nil)

type Conversation struct {
	turns []contractx.Turn
	now   func() time.Time
}

type Option func(*Conversation)

func WithClock(now func() time.Time) Option {
	return func(c *Conversation) {
		if now != nil {
			c.now = now
		}
	}
}

func NewConversation(opts ...Option) *Conversation {
	c := &Conversation{
		turns: make([]contractx.Turn, 0, 16),
		now:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Append adds a turn at the end and returns a copy of it. Ordinals start at 1.
func (c *Conversation) Append(role contractx.Role, text string) contractx.Turn {
	turn := contractx.Turn{
		Role:    role,
		Text:    strings.TrimSpace(text),
		Ordinal: len(c.turns) + 1,
		At:      c.now().UTC(),
	}
	c.turns = append(c.turns, turn)
	return turn
}

func (c *Conversation) History() []contractx.Turn {
	out := make([]contractx.Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Window returns at most the last n turns. n <= 0 returns the full history.
func (c *Conversation) Window(n int) []contractx.Turn {
	if n <= 0 || n >= len(c.turns) {
		return c.History()
	}
	out := make([]contractx.Turn, n)
	copy(out, c.turns[len(c.turns)-n:])
	return out
}

func (c *Conversation) Len() int {
	return len(c.turns)
}
