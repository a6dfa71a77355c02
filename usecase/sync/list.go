package sync

import (
	"context"

	"github.com/Jersk/Cloudflare-DDNS-Wizard/domain/model"
)

// TargetsOutput lists what the configured selection mode would manage.
type TargetsOutput struct {
	Mode    model.SelectionMode
	Targets []*model.Record
	Failed  []model.RecordResult
}

// Targets runs the record selector alone: no lock, no IP resolution,
// no writes. Entries the selector could not resolve (malformed
// references, unlistable zones, unreadable records) land in Failed.
func (u *UseCase) Targets(ctx context.Context) (*TargetsOutput, error) {
	mode, err := u.Config.Mode()
	if err != nil {
		return nil, err
	}
	res := &model.RunResult{Mode: mode}
	targets, err := u.selectTargets(ctx, mode, res)
	if err != nil {
		return nil, err
	}
	if mode == model.ModeExplicitList {
		targets = u.hydrateTargets(ctx, targets, res)
	}
	return &TargetsOutput{Mode: mode, Targets: targets, Failed: res.Failures()}, nil
}

// hydrateTargets replaces the selector's bare references with the live
// record state. The run path skips this (the updater re-reads anyway);
// listings want current content.
func (u *UseCase) hydrateTargets(ctx context.Context, targets []*model.Record, res *model.RunResult) []*model.Record {
	out := make([]*model.Record, 0, len(targets))
	for _, t := range targets {
		current, err := u.API.GetRecord(ctx, t.ZoneID, t.ID)
		if err != nil {
			res.Add(model.RecordResult{
				ZoneID:   t.ZoneID,
				RecordID: t.ID,
				Name:     t.Name,
				Type:     t.Type,
				Action:   "failed",
				Message:  err.Error(),
			})
			continue
		}
		out = append(out, current)
	}
	return out
}
