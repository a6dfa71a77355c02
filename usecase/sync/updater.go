package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/Jersk/Cloudflare-DDNS-Wizard/adapters/cloudflare"
	"github.com/Jersk/Cloudflare-DDNS-Wizard/domain/model"
	"github.com/Jersk/Cloudflare-DDNS-Wizard/internal/logging"
	"github.com/Jersk/Cloudflare-DDNS-Wizard/internal/retry"
)

// updateRecord drives one record to the desired IP. It never returns an
// error; every outcome lands in the RecordResult it produces.
func (u *UseCase) updateRecord(ctx context.Context, target *model.Record, desiredIP string, in *RunInput) model.RecordResult {
	logger := logging.FromContext(ctx)
	res := model.RecordResult{
		ZoneID:   target.ZoneID,
		ZoneName: target.ZoneName,
		RecordID: target.ID,
		Name:     target.Name,
		Type:     target.Type,
	}

	// Re-read immediately before deciding anything: the selector's
	// snapshot can be stale by the time this record's turn comes.
	payload := cloudflare.UpdatePayload{
		Type:    string(target.Type),
		Name:    target.Name,
		Content: desiredIP,
		TTL:     1,
		Proxied: false,
	}
	var prevContent string
	current, err := u.API.GetRecord(ctx, target.ZoneID, target.ID)
	if err != nil {
		logger.Warn(ctx, "cannot read current record, writing with fallback ttl/proxied", "record", target.Name, "error", err)
	} else {
		prevContent = current.Content
		res.Name = current.Name
		res.Type = current.Type
		if current.ZoneName != "" {
			res.ZoneName = current.ZoneName
		}
		if !in.Force && current.Content == desiredIP {
			logger.Debug(ctx, "record already up to date", "record", current.Name, "content", current.Content)
			res.Action = "skipped"
			res.Message = "already up to date"
			return res
		}
		// Never silently change the user's proxy or TTL settings.
		payload = cloudflare.UpdatePayload{
			Type:    string(current.Type),
			Name:    current.Name,
			Content: desiredIP,
			TTL:     current.TTL,
			Proxied: current.Proxied,
		}
	}
	if err := payload.Validate(); err != nil {
		logger.Warn(ctx, "update payload rejected, falling back to ttl=1 proxied=false", "record", res.Name, "error", err)
		payload.TTL = 1
		payload.Proxied = false
	}

	if in.DryRun {
		res.Action = "planned"
		res.Message = "would set content to " + desiredIP
		if prevContent != "" {
			res.Message = fmt.Sprintf("would update %s -> %s", prevContent, desiredIP)
		}
		return res
	}

	attempts := u.Config.MaxRetries
	if attempts < 1 {
		attempts = 1
	}
	pause := time.Duration(u.Config.SleepBetweenRetries) * time.Second

	var unverified bool
	err = retry.Do(ctx, attempts, retry.Constant(pause), func(attempt int) error {
		if _, err := u.API.UpdateRecord(ctx, target.ZoneID, target.ID, payload); err != nil {
			logger.Warn(ctx, "update attempt failed", "record", res.Name, "attempt", attempt, "max_attempts", attempts, "error", err)
			return err
		}
		if u.Config.SkipVerification {
			return nil
		}
		// Propagation lag before the confirming read.
		if err := retry.Sleep(ctx, u.PropagationDelay); err != nil {
			unverified = true
			return nil
		}
		check, err := u.API.GetRecord(ctx, target.ZoneID, target.ID)
		if err == nil && check.Content == desiredIP {
			return nil
		}
		if attempt == attempts {
			// The write itself succeeded; verification is advisory and
			// propagation may simply be lagging.
			unverified = true
			return nil
		}
		if err != nil {
			logger.Warn(ctx, "verification read failed, retrying", "record", res.Name, "attempt", attempt, "error", err)
			return fmt.Errorf("verification read failed: %w", err)
		}
		logger.Warn(ctx, "verification mismatch, retrying", "record", res.Name, "attempt", attempt, "content", check.Content, "want", desiredIP)
		return fmt.Errorf("verification mismatch: content %s, want %s", check.Content, desiredIP)
	})
	change := "content set to " + desiredIP
	if prevContent != "" {
		change = fmt.Sprintf("%s -> %s", prevContent, desiredIP)
	}
	switch {
	case err != nil:
		res.Action = "failed"
		res.Message = err.Error()
	case unverified:
		res.Action = "updated"
		res.Message = change + " (propagation unverified)"
	default:
		res.Action = "updated"
		res.Message = change
	}
	return res
}
