// Command lc3vm loads one or more LC-3 object images and runs them against
// a terminal-backed machine.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lc3vm/internal/host"
	"lc3vm/vm"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	rootCmd := &cobra.Command{
		Use:   "lc3vm [images...]",
		Short: "Run LC-3 object images",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("%w: at least one image file is required", vm.ErrUsage)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImages(cmd.Context(), logger, args)
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("fatal", "error", err)
		return exitCode(err)
	}
	return 0
}

func runImages(ctx context.Context, logger *slog.Logger, images []string) error {
	term, err := host.NewTerminal(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("%w: terminal setup: %v", vm.ErrLoad, err)
	}
	defer term.Close()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	m := vm.NewMachine(term, out)

	for _, path := range images {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", vm.ErrLoad, path, err)
		}
		err = m.Load(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		logger.Info("loaded image", "path", path)
	}

	logger.Info("run start")
	err = m.Run(ctx)
	logger.Info("run stop", "error", err)
	return err
}

// exitCode maps a fatal error returned by the machine, or a usage error
// from cobra argument parsing, to the process exit code the command line
// contract specifies.
func exitCode(err error) int {
	switch {
	case errors.Is(err, vm.ErrInterrupted):
		return -2
	case errors.Is(err, vm.ErrLoad), errors.Is(err, vm.ErrIllegalInstruction):
		return 1
	case errors.Is(err, vm.ErrUsage):
		return 2
	default:
		return 2
	}
}
