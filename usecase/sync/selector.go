package sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/Jersk/Cloudflare-DDNS-Wizard/domain/model"
	"github.com/Jersk/Cloudflare-DDNS-Wizard/internal/logging"
	"github.com/Jersk/Cloudflare-DDNS-Wizard/internal/naming"
)

// selectTargets resolves the selection mode into concrete target
// records. Targets that cannot even be addressed (malformed refs,
// unlistable zones) are appended to res as failed results; a returned
// error aborts the run.
func (u *UseCase) selectTargets(ctx context.Context, mode model.SelectionMode, res *model.RunResult) ([]*model.Record, error) {
	switch mode {
	case model.ModeSingleTarget:
		return u.selectSingleTarget(ctx)
	case model.ModeExplicitList:
		return u.selectExplicitList(ctx, res), nil
	case model.ModeAllZones:
		return u.selectAllZones(ctx, res)
	}
	return nil, fmt.Errorf("unsupported domain_mode: %s", mode)
}

// selectSingleTarget targets every A record at one FQDN. A missing zone
// is fatal for the run; a missing record is not (zero targets, the run
// still summarizes cleanly).
func (u *UseCase) selectSingleTarget(ctx context.Context) ([]*model.Record, error) {
	logger := logging.FromContext(ctx)

	zone, err := u.API.ZoneByName(ctx, u.Config.Domain)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve zone %s: %w", u.Config.Domain, err)
	}
	records, err := u.API.ListARecords(ctx, zone.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list records in zone %s: %w", zone.Name, err)
	}

	// Multiple A records at the same name are legitimate round-robin
	// setups; every one of them is an independent target.
	fqdn := naming.FQDN(u.Config.Subdomain, u.Config.Domain)
	var targets []*model.Record
	for _, rec := range records {
		if !naming.EqualFQDN(rec.Name, fqdn) {
			continue
		}
		fillZone(rec, zone)
		targets = append(targets, rec)
	}
	if len(targets) == 0 {
		logger.Warn(ctx, "no A records match target name", "selector", "single_target", "fqdn", fqdn, "zone", zone.Name)
	}
	return targets, nil
}

// selectExplicitList takes the configured refs verbatim. A malformed
// ref is counted failed and never aborts the run.
func (u *UseCase) selectExplicitList(ctx context.Context, res *model.RunResult) []*model.Record {
	logger := logging.FromContext(ctx)

	var targets []*model.Record
	for _, ref := range u.Config.Records() {
		if err := ref.Validate(); err != nil {
			logger.Warn(ctx, "malformed record entry", "selector", "explicit_list", "record", ref.RecordName, "error", err)
			res.Add(model.RecordResult{
				ZoneID:   ref.ZoneID,
				RecordID: ref.RecordID,
				Name:     ref.RecordName,
				Type:     ref.RecordType,
				Action:   "failed",
				Message:  err.Error(),
			})
			continue
		}
		targets = append(targets, &model.Record{
			ID:     ref.RecordID,
			ZoneID: ref.ZoneID,
			Name:   ref.RecordName,
			Type:   ref.RecordType,
		})
	}
	return targets
}

// selectAllZones targets every A record the token can see. One zone's
// listing failure is isolated as a single failed result; zone
// enumeration failure is fatal.
func (u *UseCase) selectAllZones(ctx context.Context, res *model.RunResult) ([]*model.Record, error) {
	logger := logging.FromContext(ctx)

	zones, err := u.API.ListZones(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}
	if len(u.Config.SelectedZones) > 0 {
		logger.Info(ctx, "selected_zones is advisory in all_zones mode, processing every zone",
			"selector", "all_zones", "selected_zones", strings.Join(u.Config.SelectedZones, ","))
	}

	var targets []*model.Record
	for _, zone := range zones {
		records, err := u.API.ListARecords(ctx, zone.ID)
		if err != nil {
			logger.Warn(ctx, "failed to list records, skipping zone", "selector", "all_zones", "zone", zone.Name, "error", err)
			res.Add(model.RecordResult{
				ZoneID:   zone.ID,
				ZoneName: zone.Name,
				Action:   "failed",
				Message:  fmt.Sprintf("failed to list records: %v", err),
			})
			continue
		}
		for _, rec := range records {
			fillZone(rec, zone)
			targets = append(targets, rec)
		}
	}
	return targets, nil
}

// fillZone backfills zone identity on records whose listing omitted it.
func fillZone(rec *model.Record, zone *model.Zone) {
	if rec.ZoneID == "" {
		rec.ZoneID = zone.ID
	}
	if rec.ZoneName == "" {
		rec.ZoneName = zone.Name
	}
}
