// Command smoke checks a running portfolio service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/portfolio/internal/domain/model"
	"github.com/okian/portfolio/internal/smoke"
	"github.com/okian/portfolio/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfg       smoke.Config
		now       string
		logFormat string
	)
	cmd := &cobra.Command{
		Use:          "smoke",
		Short:        "Check health, skill consistency and contact idempotency of a running service",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.InitWithOptions(logger.Options{Format: logFormat, Writer: cmd.ErrOrStderr()}); err != nil {
				return err
			}
			if now != "" {
				ts, err := model.ParseTimestamp(now)
				if err != nil {
					return fmt.Errorf("--now: %w", err)
				}
				cfg.Now = ts.Time
			}
			report, err := smoke.Run(cmd.Context(), cfg)
			fmt.Fprintf(cmd.OutOrStdout(),
				"projects=%d categories=%d technologies=%s mismatches=%d contact_accepted=%d duplicate_detected=%t duration=%s\n",
				report.Projects, report.Categories, report.Technologies, len(report.Mismatches),
				report.ContactAccepted, report.DuplicateDetected, report.Duration.Round(time.Millisecond))
			return err
		},
	}
	cmd.Flags().StringVar(&cfg.BaseURL, "url", "http://localhost:9080", "base URL of the service")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", smoke.DefaultTimeout, "HTTP request timeout")
	cmd.Flags().IntVar(&cfg.Contacts, "contacts", 0, "contact submissions to send (0 skips the contact check)")
	cmd.Flags().IntVar(&cfg.Workers, "workers", smoke.DefaultWorkers, "concurrent contact submissions")
	cmd.Flags().StringVar(&now, "now", "", "reference time for the local aggregation (default: current time)")
	cmd.Flags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	return cmd
}
