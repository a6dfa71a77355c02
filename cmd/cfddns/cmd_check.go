package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Jersk/Cloudflare-DDNS-Wizard/adapters/dnsprobe"
	"github.com/Jersk/Cloudflare-DDNS-Wizard/adapters/ipsource"
	"github.com/Jersk/Cloudflare-DDNS-Wizard/domain/model"
	"github.com/Jersk/Cloudflare-DDNS-Wizard/internal/naming"
	"github.com/spf13/cobra"
)

// newCmdCheck returns a command that compares what public DNS answers
// for a name against the current public IP. The probe bypasses the
// Cloudflare API, so it shows what clients actually resolve right now.
func newCmdCheck() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:                "check",
		Short:              "Compare public DNS answers with the current public IP",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			fqdn := name
			if fqdn == "" {
				mode, err := cfg.Mode()
				if err != nil {
					return err
				}
				if mode != model.ModeSingleTarget {
					return fmt.Errorf("--name is required when domain_mode is %s", mode)
				}
				fqdn = naming.FQDN(cfg.Subdomain, cfg.Domain)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			ip, err := ipsource.New(cfg.Services()).Resolve(ctx)
			if err != nil {
				return err
			}

			drift, err := dnsprobe.New().Check(ctx, fqdn, ip)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case drift.InSync:
				fmt.Fprintf(out, "in sync: %s -> %s (ttl %s)\n", fqdn, ip, drift.TTL)
			case len(drift.Answers) == 0:
				fmt.Fprintf(out, "no A records in public DNS for %s (public ip %s)\n", fqdn, ip)
			default:
				fmt.Fprintf(out, "drift: %s answers %s, public ip %s\n", fqdn, strings.Join(drift.Answers, ","), ip)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "FQDN to probe (default: the single_target name)")

	return cmd
}
