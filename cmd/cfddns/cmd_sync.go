package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Jersk/Cloudflare-DDNS-Wizard/internal/logging"
	"github.com/Jersk/Cloudflare-DDNS-Wizard/usecase/sync"
	"github.com/spf13/cobra"
)

func newCmdSync() *cobra.Command {
	var dryRun bool
	var force bool

	cmd := &cobra.Command{
		Use:                "sync",
		Short:              "Synchronize managed A records with the current public IP",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			runCtx, closeLog, err := setupRunLogging(cmd, cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			syncUC, err := buildSyncUseCase(cmd, cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(runCtx, 30*time.Minute)
			defer cancel()
			logger := logging.FromContext(ctx)

			ctx, cleanup := withCmdRunLogger(ctx, "ddns.sync", cfg.DomainMode)
			defer func() { cleanup(err) }()

			out, err := syncUC.Run(ctx, &sync.RunInput{DryRun: dryRun, Force: force})
			if err != nil {
				return err
			}
			if out.LockBusy {
				// Another run is in flight; nothing to do is a success.
				return nil
			}

			res := out.Result
			for _, r := range res.Records {
				switch r.Action {
				case "planned":
					logger.Info(ctx, "would update record", "record", r.Name, "zone", r.ZoneName, "message", r.Message)
				case "updated":
					logger.Info(ctx, "updated record", "record", r.Name, "zone", r.ZoneName, "message", r.Message)
				case "skipped":
					logger.Debug(ctx, "skipped record", "record", r.Name, "message", r.Message)
				}
			}

			if code := res.ExitCode(); code != 0 {
				return ExitCodeError{Code: code, Err: fmt.Errorf("%d of %d records failed", res.Failed, len(res.Records))}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be changed without writing")
	cmd.Flags().BoolVar(&force, "force", false, "Rewrite records even when content already matches")

	return cmd
}
