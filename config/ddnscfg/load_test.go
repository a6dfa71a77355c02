package ddnscfg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Success(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	content := `
domain_mode: single_target
domain: example.com
subdomain: home
token_file: /etc/cfddns/token
max_retries: 5
sleep_between_retries: 2
detailed_logging: true
log_file: /var/log/cfddns.log
selected_zones:
  - example.com
  - example.org
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp yaml: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.DomainMode != "single_target" {
		t.Errorf("unexpected domain_mode: %s", cfg.DomainMode)
	}
	if cfg.Domain != "example.com" || cfg.Subdomain != "home" {
		t.Errorf("unexpected target: %s / %s", cfg.Domain, cfg.Subdomain)
	}
	if cfg.MaxRetries != 5 || cfg.SleepBetweenRetries != 2 {
		t.Errorf("unexpected retry knobs: %d / %d", cfg.MaxRetries, cfg.SleepBetweenRetries)
	}
	if !cfg.DetailedLogging {
		t.Errorf("detailed_logging not set")
	}
	if len(cfg.SelectedZones) != 2 {
		t.Errorf("unexpected selected_zones: %v", cfg.SelectedZones)
	}
}

func TestLoad_DefaultsSurviveAbsentKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	content := `
domain_mode: all_zones
token_file: /etc/cfddns/token
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp yaml: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.MaxRetries != 3 {
		t.Errorf("max_retries default = %d, want 3", cfg.MaxRetries)
	}
	if cfg.SleepBetweenRetries != 5 {
		t.Errorf("sleep_between_retries default = %d, want 5", cfg.SleepBetweenRetries)
	}
	if cfg.MaxWaitForNet != 300 || cfg.WaitInterval != 10 {
		t.Errorf("network wait defaults = %d / %d, want 300 / 10", cfg.MaxWaitForNet, cfg.WaitInterval)
	}
	if cfg.RunInterval != "5min" {
		t.Errorf("run_interval default = %q, want 5min", cfg.RunInterval)
	}
	if cfg.LogMaxLines != 1000 {
		t.Errorf("log_max_lines default = %d, want 1000", cfg.LogMaxLines)
	}
	if !cfg.ContinueOnError {
		t.Errorf("continue_on_error must default to true")
	}
	if len(cfg.Services()) != 5 {
		t.Errorf("expected 5 default ip services, got %d", len(cfg.Services()))
	}
}

func TestLoad_ExplicitFalseOverridesDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	content := `
domain_mode: all_zones
token_file: /etc/cfddns/token
continue_on_error: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp yaml: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ContinueOnError {
		t.Errorf("continue_on_error: false not honored")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	if _, err := Load("/path/does/not/exist.yml"); err == nil {
		t.Fatalf("expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")

	bad := "domain_mode: [1,2\n"
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatalf("failed to write temp yaml: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for invalid YAML, got nil")
	}
}

func TestLoad_SelectedRecords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	content := `
domain_mode: explicit_list
token_file: /etc/cfddns/token
selected_records:
  - zone_id: z1
    record_id: r1
    record_name: home.example.com
    record_type: A
  - zone_id: z2
    record_id: r2
    record_name: vpn.example.org
    record_type: A
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp yaml: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	refs := cfg.Records()
	if len(refs) != 2 {
		t.Fatalf("expected 2 record refs, got %d", len(refs))
	}
	if refs[0].ZoneID != "z1" || refs[0].RecordName != "home.example.com" {
		t.Errorf("unexpected first ref: %+v", refs[0])
	}
	if err := refs[1].Validate(); err != nil {
		t.Errorf("second ref should validate: %v", err)
	}
}

func TestServices_CustomAppended(t *testing.T) {
	cfg := New()
	cfg.CustomIPService = "https://ip.example.net"

	services := cfg.Services()
	if len(services) != 6 {
		t.Fatalf("expected 6 services, got %d", len(services))
	}
	if services[5] != "https://ip.example.net" {
		t.Errorf("custom service not last: %v", services)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	cfg := New()
	cfg.DomainMode = "single_target"
	cfg.Domain = "example.com"
	cfg.Subdomain = "@"
	cfg.TokenFile = "/etc/cfddns/token"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("saved config mode = %v, want 0600", info.Mode().Perm())
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Domain != "example.com" || loaded.Subdomain != "@" {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestLoadToken(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")

	if err := os.WriteFile(path, []byte("cf-token-value-123\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	token, loose, err := LoadToken(path)
	if err != nil {
		t.Fatalf("LoadToken returned error: %v", err)
	}
	if token != "cf-token-value-123" {
		t.Errorf("token not trimmed: %q", token)
	}
	if loose {
		t.Errorf("0600 token reported as loose")
	}
}

func TestLoadToken_LoosePerms(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")

	if err := os.WriteFile(path, []byte("tok"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, loose, err := LoadToken(path)
	if err != nil {
		t.Fatalf("LoadToken returned error: %v", err)
	}
	if !loose {
		t.Errorf("0644 token not reported as loose")
	}
}

func TestLoadToken_MissingOrEmpty(t *testing.T) {
	if _, _, err := LoadToken("/does/not/exist"); err == nil {
		t.Fatalf("expected error for missing token file")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	if err := os.WriteFile(path, []byte("  \n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadToken(path); err == nil || !strings.Contains(err.Error(), "empty") {
		t.Fatalf("expected empty-token error, got %v", err)
	}
}
