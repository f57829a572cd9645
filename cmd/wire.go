package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	gatewayx "github.com/tanpawarit/capital-agent/agent/agents/gateway"
	"github.com/tanpawarit/capital-agent/agent/agents/orchestrator"
	contractx "github.com/tanpawarit/capital-agent/agent/contract"
	llmx "github.com/tanpawarit/capital-agent/agent/llm"
	memoryx "github.com/tanpawarit/capital-agent/agent/memory"
	toolx "github.com/tanpawarit/capital-agent/agent/tool"
	tracex "github.com/tanpawarit/capital-agent/agent/trace"
	configx "github.com/tanpawarit/capital-agent/pkg/config"
)

// newGateway is swapped out in tests.
var newGateway = func(ctx context.Context, cfg llmx.Config, tools []*schema.ToolInfo) (contractx.Gateway, error) {
	return gatewayx.NewFromConfig(ctx, cfg, tools)
}

type session struct {
	id     string
	orch   *orchestrator.Orchestrator
	logger zerolog.Logger
}

func wireSession(cmd *cobra.Command, opts *rootOptions) (*session, error) {
	configOpts := []configx.Option{configx.WithEnvFile(opts.envFile)}

	llmCfg, err := configx.New[llmx.Config]("LLM", configOpts...)
	if err != nil {
		return nil, classifyConfigError("LLM", err)
	}
	if err := llmCfg.Validate(); err != nil {
		return nil, err
	}

	agentCfg, err := configx.New[orchestrator.Config]("AGENT", configOpts...)
	if err != nil {
		return nil, classifyConfigError("AGENT", err)
	}

	id := uuid.NewString()
	logger := log.With().Str("session_id", id).Logger()

	toolInfos, executor := toolx.Build(toolx.DefaultTable())
	gateway, err := newGateway(cmd.Context(), *llmCfg, toolInfos)
	if err != nil {
		return nil, fmt.Errorf("wire model gateway: %w", err)
	}

	tracer := tracex.New(
		[]tracex.Sink{
			tracex.NewConsoleSink(cmd.OutOrStdout(), useColor(cmd, opts)),
			tracex.NewLogSink(logger),
		},
		tracex.WithErrorHandler(func(err error) {
			logger.Warn().Err(err).Msg("trace sink failed")
		}),
	)

	orch, err := orchestrator.New(gateway, executor, memoryx.NewConversation(), tracer, *agentCfg)
	if err != nil {
		return nil, fmt.Errorf("wire orchestrator: %w", err)
	}

	logger.Info().
		Str("provider", llmCfg.Provider).
		Str("interpret_model", llmCfg.For(llmx.PhaseInterpret).Model).
		Str("compose_model", llmCfg.For(llmx.PhaseCompose).Model).
		Msg("session started")

	return &session{id: id, orch: orch, logger: logger}, nil
}

// classifyConfigError separates malformed values from missing required ones.
func classifyConfigError(prefix string, err error) error {
	var parseErr *envconfig.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Errorf("%w: %s config: %v", contractx.ErrValidation, prefix, err)
	}
	return fmt.Errorf("%w: %s config: %v", contractx.ErrStartupConfigMissing, prefix, err)
}
