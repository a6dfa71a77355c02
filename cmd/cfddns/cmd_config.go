package main

import (
	"fmt"

	"github.com/Jersk/Cloudflare-DDNS-Wizard/config/ddnscfg"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "config",
		Short:              "Read and validate configuration",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE:               func(cmd *cobra.Command, args []string) error { return fmt.Errorf("invalid command") },
	}
	cmd.AddCommand(newCmdConfigShow(), newCmdConfigValidate())
	return cmd
}

// newCmdConfigShow returns a command that prints the effective
// configuration, defaults filled in, as YAML.
func newCmdConfigShow() *cobra.Command {
	return &cobra.Command{
		Use:                "show",
		Short:              "Print the effective configuration as YAML",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := ddnscfg.Load(path)
			if err != nil {
				return err
			}
			b, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}

// newCmdConfigValidate returns a command that validates the config file
// and the token file. The token itself stays off the terminal; only its
// length is shown.
func newCmdConfigValidate() *cobra.Command {
	return &cobra.Command{
		Use:                "validate",
		Short:              "Validate the configuration and the token file",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			token, loosePerms, err := ddnscfg.LoadToken(cfg.TokenFile)
			if err != nil {
				return fmt.Errorf("token check failed: %w", err)
			}

			out := cmd.OutOrStdout()
			// Print a concise summary to stdout
			fmt.Fprintf(out, "config ok path=%s mode=%s domain=%s records=%d services=%d\n",
				path, cfg.DomainMode, cfg.Domain, len(cfg.SelectedRecords), len(cfg.Services()))
			fmt.Fprintf(out, "token ok path=%s len=%d\n", cfg.TokenFile, len(token))
			if loosePerms {
				fmt.Fprintf(out, "warning: token file is readable by group or others, tighten to 0600\n")
			}
			return nil
		},
	}
}
