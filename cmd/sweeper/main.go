package main

import (
	"context"
	"fmt"
	"mediconnect/config"
	"mediconnect/di"
	sweepService "mediconnect/internal/domains/sweep/service"
	"mediconnect/shared/logger"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const defaultTimeout = 5 * time.Minute

func main() {
	rootCmd := &cobra.Command{
		Use:   "sweeper",
		Short: "Time-based appointment maintenance",
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(listCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "run [sweep...]",
		Short: "Run the named sweeps, or all of them",
		Example: "  sweeper run\n" +
			"  sweeper run missed reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()

			logger.InitLogger()
			logger.SetLogLevel(cfg)

			runner, err := di.InitializeSweeper()
			if err != nil {
				return fmt.Errorf("failed to initialize sweeper: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			results, err := runner.Run(ctx, args...)
			for _, result := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%-22s scanned=%d updated=%d failed=%d\n",
					result.Name, result.Scanned, result.Updated, result.Failed)
			}

			if err != nil {
				log.Error().Err(err).Msg("Sweep run finished with errors")

				return fmt.Errorf("sweep run failed: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", defaultTimeout, "abort the run after this long")

	return cmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available sweeps",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(sweepService.Order, "\n"))
		},
	}
}
