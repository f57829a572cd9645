package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	contractx "github.com/tanpawarit/capital-agent/agent/contract"
)

const defaultDemoDelay = time.Second

var demoQuestions = []string{
	"What is the capital of Japan?",
	"Tell me about France's capital",
	"What about Germany?",
	"Capital of Australia?",
}

func newDemoCmd(opts *rootOptions) *cobra.Command {
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the preset capital city questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd, opts, delay)
		},
	}
	cmd.Flags().DurationVar(&delay, "delay", defaultDemoDelay, "pause between questions")

	return cmd
}

func runDemo(cmd *cobra.Command, opts *rootOptions, delay time.Duration) error {
	s, err := wireSession(cmd, opts)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Capital City Agent Demo")
	fmt.Fprintln(out, strings.Repeat("=", 50))

	unavailable := 0
	for i, q := range demoQuestions {
		if i > 0 && !sleepCtx(cmd, delay) {
			fmt.Fprintln(out, "\nInterrupted.")
			return nil
		}

		fmt.Fprintf(out, "\nQuestion %d: %s\n", i+1, q)
		fmt.Fprintln(out, strings.Repeat("-", 40))

		reply, err := s.orch.HandleTurn(ctx, q)
		if err != nil {
			s.logger.Error().Err(err).Int("question", i+1).Msg("demo turn failed")
			fmt.Fprintf(out, "[ERROR] %v\n", err)
			continue
		}
		if errors.Is(reply.Cause, contractx.ErrModelUnavailable) {
			unavailable++
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintf(out, "Demo complete (%d turns in memory)\n", s.orch.Memory().Len())

	if unavailable == len(demoQuestions) {
		return fmt.Errorf("%w: every demo question failed", contractx.ErrModelUnavailable)
	}
	return nil
}

// sleepCtx waits for d and reports false when the command was cancelled.
func sleepCtx(cmd *cobra.Command, d time.Duration) bool {
	ctx := cmd.Context()
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
