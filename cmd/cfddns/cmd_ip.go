package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Jersk/Cloudflare-DDNS-Wizard/adapters/ipsource"
	"github.com/spf13/cobra"
)

// newCmdIP returns a command that prints the current public IPv4
// address as seen by the configured echo services.
func newCmdIP() *cobra.Command {
	return &cobra.Command{
		Use:                "ip",
		Short:              "Print the current public IPv4 address",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			ip, err := ipsource.New(cfg.Services()).Resolve(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ip)
			return nil
		},
	}
}
