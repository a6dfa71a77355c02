package main

import (
	"context"
	"errors"
	"os"

	"log/slog"

	"github.com/Jersk/Cloudflare-DDNS-Wizard/internal/logging"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cfddns",
		Short:   "Cloudflare DDNS synchronization engine",
		Long:    "cfddns keeps Cloudflare A records pointed at this machine's public IPv4 address.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help by default when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global config flag
	defaultConfig := os.Getenv("CFDDNS_CONFIG")
	if defaultConfig == "" {
		defaultConfig = "/etc/cfddns/config.yml"
	}
	cmd.PersistentFlags().StringP("config", "c", defaultConfig, "Config file path (env CFDDNS_CONFIG)")

	// global flags (config already exists)
	cmd.PersistentFlags().String("log-format", "human", "Log format (human|text|json) (env CFDDNS_LOG_FORMAT)")
	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		format, _ := c.Flags().GetString("log-format")
		if env := os.Getenv("CFDDNS_LOG_FORMAT"); env != "" { // env overrides flag
			format = env
		}
		level := slog.Leveler(slog.LevelInfo)
		if debug, _ := c.Flags().GetBool("debug"); debug {
			level = slog.LevelDebug
		}
		l, err := logging.New(format, level)
		if err != nil {
			return err
		}
		ctx := logging.WithLogger(c.Context(), l)
		c.SetContext(ctx)
		return nil
	}

	// Add subcommands
	cmd.AddCommand(newCmdVersion())
	cmd.AddCommand(newCmdConfig())
	cmd.AddCommand(newCmdSync())
	cmd.AddCommand(newCmdVerify())
	cmd.AddCommand(newCmdIP())
	cmd.AddCommand(newCmdRecords())
	cmd.AddCommand(newCmdCheck())
	cmd.AddCommand(newCmdHistory())
	return cmd
}

func main() {
	root := newRootCmd()
	root.SetContext(context.Background())
	executed, err := root.ExecuteC()
	if err != nil {
		ctx := root.Context()
		if executed != nil {
			ctx = executed.Context()
		}
		code := 1
		var exitCodeErr ExitCodeError
		if errors.As(err, &exitCodeErr) {
			code = exitCodeErr.Code
		}
		logging.FromContext(ctx).Errorf(ctx, "Failed: %s", err)
		os.Exit(code)
	}
}
