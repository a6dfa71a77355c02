package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/Jersk/Cloudflare-DDNS-Wizard/domain/model"
	"github.com/Jersk/Cloudflare-DDNS-Wizard/internal/logging"
	"github.com/Jersk/Cloudflare-DDNS-Wizard/internal/retry"
	"github.com/Jersk/Cloudflare-DDNS-Wizard/internal/runlock"
)

// RunInput holds parameters for one synchronization run.
type RunInput struct {
	DryRun bool `json:"dry_run,omitempty"`
	Force  bool `json:"force,omitempty"`
}

// RunOutput holds the outcome of one synchronization run.
type RunOutput struct {
	// LockBusy reports that another run held the lock; nothing was done
	// and no network call was made.
	LockBusy bool             `json:"lock_busy,omitempty"`
	Result   *model.RunResult `json:"result,omitempty"`
}

// Run executes one synchronization pass: acquire the run lock, wait for
// the network, verify the token, select targets, update them, and
// summarize. Per-record failures never abort the pass; fatal
// preconditions return an error before any record is touched.
func (u *UseCase) Run(ctx context.Context, in *RunInput) (*RunOutput, error) {
	if in == nil {
		in = &RunInput{}
	}
	logger := logging.FromContext(ctx)
	started := time.Now()

	mode, err := u.Config.Mode()
	if err != nil {
		return nil, err
	}

	// At most one live run system-wide. A held lock means another
	// invocation is authoritative; the kernel drops the lock with the
	// process, so a stale lock file never wedges future runs.
	lock := runlock.New(u.lockPath())
	release, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire run lock %s: %w", lock.Path, err)
	}
	if release == nil {
		logger.Info(ctx, "another run holds the lock, nothing to do", "lock", lock.Path)
		return &RunOutput{LockBusy: true}, nil
	}
	defer func() { _ = release() }()

	// The first successful resolution doubles as the desired IP for the
	// whole run.
	ip, err := u.waitForIP(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "public ip resolved", "ip", ip)

	status, err := u.API.VerifyToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}
	logger.Debug(ctx, "api token verified", "status", status)

	res := &model.RunResult{Mode: mode, IP: ip, StartedAt: started}
	targets, err := u.selectTargets(ctx, mode, res)
	if err != nil {
		return nil, err
	}
	for _, target := range targets {
		rec := u.updateRecord(ctx, target, ip, in)
		res.Add(rec)
		if rec.Action == "failed" && !u.Config.ContinueOnError {
			logger.Warn(ctx, "stopping after first failure", "record", rec.Name)
			break
		}
	}

	res.FinishedAt = time.Now()
	logger.Info(ctx, "run summary",
		"mode", string(mode), "ip", ip,
		"updated", res.Updated, "skipped", res.Skipped, "failed", res.Failed)
	for _, f := range res.Failures() {
		logger.Warn(ctx, "record not updated", "record", f.Name, "zone", f.ZoneName, "message", f.Message)
	}
	u.saveHistory(ctx, res, in)

	return &RunOutput{Result: res}, nil
}

// waitForIP polls the resolver until the network yields a public IPv4
// or max_wait_for_net elapses.
func (u *UseCase) waitForIP(ctx context.Context) (string, error) {
	logger := logging.FromContext(ctx)
	interval := time.Duration(u.Config.WaitInterval) * time.Second
	deadline := time.Now().Add(time.Duration(u.Config.MaxWaitForNet) * time.Second)

	for {
		ip, err := u.IP.Resolve(ctx)
		if err == nil {
			return ip, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if !time.Now().Before(deadline) {
			return "", fmt.Errorf("%w: no public ip after %ds", model.ErrNetworkUnavailable, u.Config.MaxWaitForNet)
		}
		logger.Warn(ctx, "network not ready, waiting", "error", err, "wait_interval", interval.String())
		if err := retry.Sleep(ctx, interval); err != nil {
			return "", err
		}
	}
}

// saveHistory persists the run snapshot. Best-effort: storage trouble
// logs WARN and never alters the run's outcome. Dry runs are not
// recorded.
func (u *UseCase) saveHistory(ctx context.Context, res *model.RunResult, in *RunInput) {
	if u.Runs == nil || in.DryRun {
		return
	}
	logger := logging.FromContext(ctx)
	run := model.NewRun(res, res.ExitCode(), nil)
	if err := u.Runs.Create(ctx, run); err != nil {
		logger.Warn(ctx, "failed to record run history", "error", err)
		return
	}
	res.RunID = run.ID
	if keep := u.Config.HistoryMaxRuns; keep > 0 {
		if err := u.Runs.Prune(ctx, keep); err != nil {
			logger.Warn(ctx, "failed to prune run history", "error", err)
		}
	}
}

// lockPath returns the configured lock file or the runtime default.
func (u *UseCase) lockPath() string {
	if u.Config.LockFile != "" {
		return u.Config.LockFile
	}
	return runlock.DefaultPath("cfddns.lock")
}
