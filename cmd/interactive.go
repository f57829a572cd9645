package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	contractx "github.com/tanpawarit/capital-agent/agent/contract"
)

var quitWords = map[string]bool{
	"quit": true,
	"exit": true,
	"bye":  true,
}

func newInteractiveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Chat with the agent line by line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd, opts, cmd.InOrStdin())
		},
	}
}

func runInteractive(cmd *cobra.Command, opts *rootOptions, in io.Reader) error {
	s, err := wireSession(cmd, opts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Capital City Agent - Interactive Mode")
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintln(out, "Ask me about capital cities. Type 'quit', 'exit' or 'bye' to leave.")

	lines, readErr := readLines(ctx, in)
	for {
		fmt.Fprint(out, "\nYou: ")

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "\nGoodbye!")
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			if err := <-readErr; err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			break
		}

		line = strings.TrimSpace(line)
		if quitWords[strings.ToLower(line)] {
			break
		}

		if _, err := s.orch.HandleTurn(ctx, line); err != nil {
			if errors.Is(err, contractx.ErrEmptyInput) {
				fmt.Fprintln(out, "Please enter a question.")
				continue
			}
			s.logger.Error().Err(err).Msg("interactive turn failed")
			fmt.Fprintf(out, "[ERROR] %v\n", err)
			fmt.Fprintln(out, "Please try again.")
		}
	}

	fmt.Fprintln(out, "\nGoodbye!")
	return nil
}

// readLines feeds input lines to a channel so a pending read does not block
// cancellation. The error channel yields once the reader stops.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errs <- nil
				return
			}
		}
		errs <- scanner.Err()
	}()

	return lines, errs
}
