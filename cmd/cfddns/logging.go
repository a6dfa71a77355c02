package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Jersk/Cloudflare-DDNS-Wizard/config/ddnscfg"
	"github.com/Jersk/Cloudflare-DDNS-Wizard/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// findFlag looks up a flag on the command or any of its parents.
func findFlag(cmd *cobra.Command, name string) *pflag.Flag {
	for c := cmd; c != nil; c = c.Parent() {
		if f := c.Flags().Lookup(name); f != nil {
			return f
		}
	}
	return nil
}

// withCmdRunLogger implements the Span pattern for CLI command logging.
// It emits a start log line and returns a context with logger attributes attached,
// plus a cleanup function to emit the success or failure log line.
//
// Usage:
//
//	ctx, cleanup := withCmdRunLogger(ctx, "ddns.sync", target)
//	defer func() { cleanup(err) }()
//
// Log message format:
// - Start:   CMD:<operation>/S (with target in logger attributes)
// - Success: CMD:<operation>/EOK (with err, elapsed in logger attributes)
// - Failure: CMD:<operation>/EFAIL (with err, elapsed in logger attributes)
//
// Note: ExitCodeError is treated as EOK since it represents exit code
// propagation (for example a partial run) rather than a command failure.
//
// All logs use INFO level (mechanical recording).
func withCmdRunLogger(ctx context.Context, operation, target string) (context.Context, func(err error)) {
	startAt := time.Now()

	// Attach target to logger and return new context
	logger := logging.FromContext(ctx).With("target", target)
	ctx = logging.WithLogger(ctx, logger)

	// Emit start log line
	logger.Info(ctx, "CMD:"+operation+"/S")

	cleanup := func(err error) {
		elapsed := time.Since(startAt).Seconds()
		var msg, errStr string

		// ExitCodeError is not a command failure; it's exit code propagation
		var exitCodeErr ExitCodeError
		isExitCodeErr := errors.As(err, &exitCodeErr)

		if err == nil || isExitCodeErr {
			msg = "CMD:" + operation + "/EOK"
			errStr = ""
		} else {
			msg = "CMD:" + operation + "/EFAIL"
			errMsg := err.Error()
			if len(errMsg) > 32 {
				errStr = errMsg[:32] + "..."
			} else {
				errStr = errMsg
			}
		}

		// Always use INFO level for Span pattern (mechanical recording)
		if isExitCodeErr {
			logger.Info(ctx, msg, "err", errStr, "exitCode", exitCodeErr.Code, "elapsed", elapsed)
		} else {
			logger.Info(ctx, msg, "err", errStr, "elapsed", elapsed)
		}
	}

	return ctx, cleanup
}

// setupRunLogging replaces the console logger from PersistentPreRunE with
// one that also writes to the configured log file and the systemd journal.
// The log file is trimmed before it is opened for append: TrimToLines
// rewrites via rename, which would orphan an already open descriptor.
// The returned close function flushes and closes the log file.
func setupRunLogging(c *cobra.Command, cfg *ddnscfg.Config) (context.Context, func(), error) {
	ctx := c.Context()
	closeFn := func() {}
	if cfg.LogFile == "" && !cfg.Journal && !cfg.DetailedLogging {
		return ctx, closeFn, nil
	}
	logger := logging.FromContext(ctx)

	// An explicit --log-format wins over the config file value.
	format := cfg.LogFormat
	if f := findFlag(c, "log-format"); f != nil && f.Changed {
		format = f.Value.String()
	}
	if env := os.Getenv("CFDDNS_LOG_FORMAT"); env != "" { // env overrides flag
		format = env
	}
	level := slog.Leveler(slog.LevelInfo)
	if debug, _ := c.Flags().GetBool("debug"); debug || cfg.DetailedLogging {
		level = slog.LevelDebug
	}

	opts := logging.Options{Format: format, Level: level, Journal: cfg.Journal}
	if cfg.LogFile != "" {
		if err := logging.TrimToLines(cfg.LogFile, cfg.LogMaxLines); err != nil {
			logger.Warn(ctx, "failed to trim log file", "path", cfg.LogFile, "error", err)
		}
		lf, err := logging.OpenLogFile(cfg.LogFile)
		if err != nil {
			return ctx, closeFn, fmt.Errorf("failed to open log file %s: %w", cfg.LogFile, err)
		}
		opts.File = lf.Writer()
		closeFn = func() { _ = lf.Close() }
	}

	l, err := logging.NewWithOptions(opts)
	if err != nil {
		closeFn()
		return ctx, func() {}, err
	}
	ctx = logging.WithLogger(ctx, l)
	c.SetContext(ctx)
	return ctx, closeFn, nil
}
