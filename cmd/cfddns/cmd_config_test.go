package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T, extra string) (cfgPath, tokenPath string) {
	t.Helper()
	dir := t.TempDir()
	tokenPath = filepath.Join(dir, "token")
	if err := os.WriteFile(tokenPath, []byte("s3cr3t-token-value\n"), 0o600); err != nil {
		t.Fatalf("writing token file: %v", err)
	}
	cfgPath = filepath.Join(dir, "config.yml")
	content := "domain_mode: single_target\ndomain: example.com\nsubdomain: home\ntoken_file: " + tokenPath + "\n" + extra
	if err := os.WriteFile(cfgPath, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return cfgPath, tokenPath
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	root := newRootCmd()
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestConfigValidateCommand(t *testing.T) {
	cfgPath, _ := writeTestConfig(t, "")

	out, err := runCommand(t, "config", "validate", "--config", cfgPath)
	if err != nil {
		t.Fatalf("config validate failed: %v", err)
	}
	if !strings.Contains(out, "config ok") {
		t.Errorf("missing config ok line: %q", out)
	}
	if !strings.Contains(out, "mode=single_target") {
		t.Errorf("missing mode in summary: %q", out)
	}
	// Never the token itself, only its length.
	if strings.Contains(out, "s3cr3t-token-value") {
		t.Fatalf("token value leaked to output: %q", out)
	}
	if !strings.Contains(out, "len=18") {
		t.Errorf("missing token length: %q", out)
	}
	if strings.Contains(out, "warning") {
		t.Errorf("unexpected permission warning for 0600 token: %q", out)
	}
}

func TestConfigValidateCommand_LooseTokenPerms(t *testing.T) {
	cfgPath, tokenPath := writeTestConfig(t, "")
	if err := os.Chmod(tokenPath, 0o644); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	out, err := runCommand(t, "config", "validate", "--config", cfgPath)
	if err != nil {
		t.Fatalf("config validate failed: %v", err)
	}
	if !strings.Contains(out, "warning") {
		t.Errorf("expected permission warning, got %q", out)
	}
}

func TestConfigValidateCommand_BadMode(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(cfgPath, []byte("domain_mode: everything\ntoken_file: /etc/cfddns/token\n"), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	_, err := runCommand(t, "config", "validate", "--config", cfgPath)
	if err == nil || !strings.Contains(err.Error(), "domain_mode") {
		t.Fatalf("expected domain_mode error, got %v", err)
	}
}

func TestConfigShowCommand(t *testing.T) {
	cfgPath, _ := writeTestConfig(t, "continue_on_error: false\n")

	out, err := runCommand(t, "config", "show", "--config", cfgPath)
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(out, "domain_mode: single_target") {
		t.Errorf("missing domain_mode: %q", out)
	}
	if !strings.Contains(out, "continue_on_error: false") {
		t.Errorf("explicit false not preserved: %q", out)
	}
	// Defaults are filled in on load and shown.
	if !strings.Contains(out, "max_retries: 3") {
		t.Errorf("defaults not applied: %q", out)
	}
}
