package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	envFile string
	color   bool
}

func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "capital-agent",
		Short: "Capital city chat agent with a step-by-step trace",
		Long: "capital-agent answers questions about capital cities. Each turn asks a language model " +
			"whether the capital lookup tool is needed and prints every step of the turn.",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPickMode(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env", "", "path to a .env file (default ./.env when present)")
	rootCmd.PersistentFlags().BoolVar(&opts.color, "color", false, "colorize trace output (default on for terminals)")

	rootCmd.AddCommand(
		newDemoCmd(opts),
		newInteractiveCmd(opts),
	)

	return rootCmd
}

// runPickMode asks for a mode on a terminal and falls back to the demo when
// input is piped.
func runPickMode(cmd *cobra.Command, opts *rootOptions) error {
	in := cmd.InOrStdin()
	if !isTerminal(in) {
		return runDemo(cmd, opts, defaultDemoDelay)
	}

	reader := bufio.NewReader(in)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Choose mode:")
	fmt.Fprintln(out, "  1. Demo (preset questions)")
	fmt.Fprintln(out, "  2. Interactive chat")
	fmt.Fprint(out, "Enter choice (1 or 2): ")

	choice, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("read mode choice: %w", err)
	}

	switch strings.TrimSpace(choice) {
	case "2", "interactive":
		return runInteractive(cmd, opts, reader)
	default:
		return runDemo(cmd, opts, defaultDemoDelay)
	}
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func useColor(cmd *cobra.Command, opts *rootOptions) bool {
	if cmd.Flags().Changed("color") {
		return opts.color
	}
	return isTerminal(cmd.OutOrStdout())
}
