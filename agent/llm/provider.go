package llm

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	contractx "github.com/tanpawarit/capital-agent/agent/contract"
	openrouterx "github.com/tanpawarit/capital-agent/pkg/openrouter"
)

// NewChatModel builds the chat model for one phase of the turn.
func NewChatModel(ctx context.Context, cfg Config, phase Phase) (einomodel.BaseChatModel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mc := cfg.For(phase)
	switch mc.Provider {
	case ProviderOpenRouter:
		m, err := openrouterx.NewChatModel(ctx, mc.openRouter())
		if err != nil {
			return nil, fmt.Errorf("%w: create %s model: %v", contractx.ErrModelUnavailable, phase, err)
		}
		return m, nil
	case ProviderOpenAI:
		m, err := newOpenAIChatModel(mc)
		if err != nil {
			return nil, fmt.Errorf("%w: create %s model: %v", contractx.ErrModelUnavailable, phase, err)
		}
		return m, nil
	case ProviderAnthropic:
		return newAnthropicChatModel(mc), nil
	default:
		return nil, fmt.Errorf("%w: unsupported provider=%q", contractx.ErrValidation, mc.Provider)
	}
}
