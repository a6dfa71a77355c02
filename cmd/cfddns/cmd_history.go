package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newCmdHistory() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "history",
		Short:              "Inspect recorded synchronization runs",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE:               func(cmd *cobra.Command, args []string) error { return fmt.Errorf("invalid command") },
	}
	cmd.AddCommand(newCmdHistoryList(), newCmdHistoryShow())
	return cmd
}

func newCmdHistoryList() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:                "list",
		Short:              "List recorded runs, newest first",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			repo, err := openRunRepository(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			runs, err := repo.List(ctx, limit)
			if err != nil {
				return err
			}
			for _, r := range runs {
				fmt.Fprintf(cmd.OutOrStdout(), "id=%s started=%s mode=%s ip=%s updated=%d skipped=%d failed=%d exit=%d\n",
					r.ID, r.StartedAt.Format(time.RFC3339), r.Mode, r.IP, r.Updated, r.Skipped, r.Failed, r.ExitCode)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list (0 for all)")

	return cmd
}

func newCmdHistoryShow() *cobra.Command {
	return &cobra.Command{
		Use:                "show <run-id>",
		Short:              "Show one recorded run with its per-record results",
		Args:               cobra.ExactArgs(1),
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			repo, err := openRunRepository(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			run, err := repo.Get(ctx, args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(run)
		},
	}
}
