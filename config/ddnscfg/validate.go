package ddnscfg

import (
	"fmt"
	"net/url"

	"github.com/Jersk/Cloudflare-DDNS-Wizard/domain/model"
	"github.com/Jersk/Cloudflare-DDNS-Wizard/internal/naming"
)

// Validate performs semantic validation on the configuration. A failure
// here is fatal for the run: nothing useful can proceed on a config
// whose active mode is structurally incomplete or whose knobs are out
// of range.
func (c *Config) Validate() error {
	mode, err := c.Mode()
	if err != nil {
		return err
	}

	switch mode {
	case model.ModeSingleTarget:
		if c.Domain == "" {
			return fmt.Errorf("domain is required when domain_mode is %s", model.ModeSingleTarget)
		}
		if err := naming.ValidateDomain(c.Domain); err != nil {
			return fmt.Errorf("domain: %w", err)
		}
		if err := naming.ValidateSubdomain(c.Subdomain); err != nil {
			return fmt.Errorf("subdomain: %w", err)
		}
	case model.ModeExplicitList:
		if len(c.SelectedRecords) == 0 {
			return fmt.Errorf("selected_records must not be empty when domain_mode is %s", model.ModeExplicitList)
		}
	case model.ModeAllZones:
		// No additional required fields.
	}

	if err := c.validateRanges(); err != nil {
		return err
	}
	return c.validateServices()
}

func (c *Config) validateRanges() error {
	if c.MaxRetries < 1 || c.MaxRetries > 10 {
		return fmt.Errorf("max_retries must be between 1 and 10, got %d", c.MaxRetries)
	}
	if c.SleepBetweenRetries < 1 || c.SleepBetweenRetries > 30 {
		return fmt.Errorf("sleep_between_retries must be between 1 and 30, got %d", c.SleepBetweenRetries)
	}
	if c.MaxWaitForNet < 60 || c.MaxWaitForNet > 900 {
		return fmt.Errorf("max_wait_for_net must be between 60 and 900, got %d", c.MaxWaitForNet)
	}
	if c.WaitInterval < 1 || c.WaitInterval > c.MaxWaitForNet {
		return fmt.Errorf("wait_interval must be between 1 and max_wait_for_net, got %d", c.WaitInterval)
	}
	if c.LogMaxLines < 100 || c.LogMaxLines > 100000 {
		return fmt.Errorf("log_max_lines must be between 100 and 100000, got %d", c.LogMaxLines)
	}
	if c.HistoryDB != "" && c.HistoryMaxRuns < 1 {
		return fmt.Errorf("history_max_runs must be positive, got %d", c.HistoryMaxRuns)
	}
	if _, err := ParseRunInterval(c.RunInterval); err != nil {
		return fmt.Errorf("run_interval: %w", err)
	}
	switch c.LogFormat {
	case "", "human", "text", "json":
	default:
		return fmt.Errorf("log_format must be human, text or json, got %q", c.LogFormat)
	}
	if c.TokenFile == "" {
		return fmt.Errorf("token_file is required")
	}
	return nil
}

func (c *Config) validateServices() error {
	services := c.Services()
	if len(services) == 0 {
		return fmt.Errorf("ip_services must not be empty")
	}
	for i, s := range services {
		u, err := url.Parse(s)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("ip_services[%d]: %q is not a valid http(s) URL", i, s)
		}
	}
	return nil
}
