// Package ddnscfg defines the configuration schema (structs) for the
// cfddns config file. This package is intended for YAML -> struct
// deserialization; loading helpers and validation live in separate
// files.
package ddnscfg

import (
	"github.com/Jersk/Cloudflare-DDNS-Wizard/domain/model"
)

// DefaultIPServices is the ordered list of public IP echo endpoints
// queried when the configuration does not supply its own.
var DefaultIPServices = []string{
	"https://api.ipify.org",
	"https://ifconfig.me/ip",
	"https://ipv4.icanhazip.com",
	"https://checkip.amazonaws.com",
	"https://ipinfo.io/ip",
}

// Config is the root structure of the cfddns config file.
type Config struct {
	// Record selection.
	DomainMode      string      `yaml:"domain_mode"`
	Domain          string      `yaml:"domain,omitempty"`
	Subdomain       string      `yaml:"subdomain,omitempty"`
	SelectedZones   []string    `yaml:"selected_zones,omitempty"`
	SelectedRecords []RecordRef `yaml:"selected_records,omitempty"`

	// Public IP detection.
	IPServices      []string `yaml:"ip_services,omitempty"`
	CustomIPService string   `yaml:"custom_ip_service,omitempty"`

	// Retry and timing knobs (seconds unless noted).
	MaxRetries          int    `yaml:"max_retries"`
	SleepBetweenRetries int    `yaml:"sleep_between_retries"`
	MaxWaitForNet       int    `yaml:"max_wait_for_net"`
	WaitInterval        int    `yaml:"wait_interval"`
	RunInterval         string `yaml:"run_interval"` // systemd span, consumed by the timer

	// Behavior flags.
	DetailedLogging  bool `yaml:"detailed_logging"`
	ContinueOnError  bool `yaml:"continue_on_error"`
	SkipVerification bool `yaml:"skip_verification"`

	// Files and logging.
	TokenFile      string `yaml:"token_file"`
	LogFile        string `yaml:"log_file,omitempty"`
	LogMaxLines    int    `yaml:"log_max_lines"`
	LogFormat      string `yaml:"log_format,omitempty"` // human|text|json
	Journal        bool   `yaml:"journal,omitempty"`
	LockFile       string `yaml:"lock_file,omitempty"`
	HistoryDB      string `yaml:"history_db,omitempty"` // empty disables run history
	HistoryMaxRuns int    `yaml:"history_max_runs,omitempty"`
}

// RecordRef is one managed record entry under selected_records.
type RecordRef struct {
	ZoneID     string `yaml:"zone_id"`
	RecordID   string `yaml:"record_id"`
	RecordName string `yaml:"record_name"`
	RecordType string `yaml:"record_type"`
}

// New returns a Config carrying the documented defaults. Load decodes
// the YAML file over these values, so absent keys keep their default.
func New() *Config {
	return &Config{
		MaxRetries:          3,
		SleepBetweenRetries: 5,
		MaxWaitForNet:       300,
		WaitInterval:        10,
		RunInterval:         "5min",
		ContinueOnError:     true,
		LogMaxLines:         1000,
		LogFormat:           "human",
		HistoryMaxRuns:      1000,
	}
}

// Services returns the effective IP service list: the configured list
// (or the defaults when absent) with the custom service appended last.
func (c *Config) Services() []string {
	services := c.IPServices
	if len(services) == 0 {
		services = DefaultIPServices
	}
	out := make([]string, 0, len(services)+1)
	out = append(out, services...)
	if c.CustomIPService != "" {
		out = append(out, c.CustomIPService)
	}
	return out
}

// Mode returns the parsed selection mode.
func (c *Config) Mode() (model.SelectionMode, error) {
	return model.ParseSelectionMode(c.DomainMode)
}

// Records converts the configured record references to domain values.
// Conversion never filters: malformed entries are handed through so the
// run can count them as failed without aborting.
func (c *Config) Records() []model.RecordRef {
	out := make([]model.RecordRef, 0, len(c.SelectedRecords))
	for _, r := range c.SelectedRecords {
		out = append(out, model.RecordRef{
			ZoneID:     r.ZoneID,
			RecordID:   r.RecordID,
			RecordName: r.RecordName,
			RecordType: model.RecordType(r.RecordType),
		})
	}
	return out
}
