package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/lifecycle"
	"github.com/spf13/cobra"

	"github.com/aretw0/pasty/internal/presence"
	"github.com/aretw0/pasty/pkg/core"
)

var statusServers int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the rotating presence line until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if err := followStore(ctx, svc, logger); err != nil {
			return err
		}

		servers := cfg.Servers
		if cmd.Flags().Changed("servers") {
			servers = statusServers
		}

		out := cmd.OutOrStdout()
		reporter := &presence.Reporter{
			Counter:  svc,
			Servers:  func() int { return servers },
			Sink:     func(s string) { fmt.Fprintln(out, s) },
			Interval: cfg.StatusInterval,
			Logger:   logger,
		}

		<-reporter.Start(ctx)
		return nil
	},
}

// followStore keeps svc's counts current while other processes write to the
// store. Events are drained until ctx is done.
func followStore(ctx context.Context, svc *core.Service, log *slog.Logger) error {
	events, err := svc.Watch(ctx)
	if err != nil {
		return err
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		for e := range events {
			if log != nil {
				log.Debug("store changed", "event", e.String())
			}
		}
		return nil
	})
	return nil
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().IntVar(&statusServers, "servers", 0, "Server count to report (default from config)")
}
