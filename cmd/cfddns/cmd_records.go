package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Jersk/Cloudflare-DDNS-Wizard/internal/logging"
	"github.com/spf13/cobra"
)

// newCmdRecords returns a command that lists the records the configured
// selection mode would manage, without updating anything.
func newCmdRecords() *cobra.Command {
	return &cobra.Command{
		Use:                "records",
		Short:              "List the A records the current configuration manages",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			syncUC, err := buildSyncUseCase(cmd, cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()
			logger := logging.FromContext(ctx)

			ctx, cleanup := withCmdRunLogger(ctx, "ddns.records", cfg.DomainMode)
			defer func() { cleanup(err) }()

			out, err := syncUC.Targets(ctx)
			if err != nil {
				return err
			}

			for _, r := range out.Targets {
				fmt.Fprintf(cmd.OutOrStdout(), "zone=%s record=%s name=%s type=%s content=%s ttl=%d proxied=%v\n",
					r.ZoneName, r.ID, r.Name, r.Type, r.Content, r.TTL, r.Proxied)
			}
			for _, f := range out.Failed {
				logger.Warn(ctx, "unresolvable selection entry", "record", f.Name, "zone_id", f.ZoneID, "error", f.Message)
			}
			if len(out.Targets) == 0 {
				logger.Info(ctx, "no records selected", "mode", string(out.Mode))
			}
			return nil
		},
	}
}
