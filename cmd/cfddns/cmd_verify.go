package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// newCmdVerify returns a command that probes the API token without
// touching any record.
func newCmdVerify() *cobra.Command {
	return &cobra.Command{
		Use:                "verify",
		Short:              "Verify the Cloudflare API token",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			api, err := buildAPIClient(cmd, cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			ctx, cleanup := withCmdRunLogger(ctx, "ddns.verify", cfg.DomainMode)
			defer func() { cleanup(err) }()

			status, err := api.VerifyToken(ctx)
			if err != nil {
				return fmt.Errorf("token verification failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "token ok status=%s\n", status)
			return nil
		},
	}
}
