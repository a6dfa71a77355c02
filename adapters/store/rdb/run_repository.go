package rdb

import (
	"context"
	"encoding/json"

	"github.com/Jersk/Cloudflare-DDNS-Wizard/domain"
	"github.com/Jersk/Cloudflare-DDNS-Wizard/domain/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RunRepository is a GORM-backed implementation of domain.RunRepository.
type RunRepository struct{ db *gorm.DB }

func NewRunRepository(db *gorm.DB) *RunRepository { return &RunRepository{db: db} }

func runToRecord(run *model.Run) (*RunRecord, error) {
	rec := &RunRecord{
		ID:         run.ID,
		Mode:       run.Mode,
		IP:         run.IP,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
		Updated:    run.Updated,
		Skipped:    run.Skipped,
		Failed:     run.Failed,
		ExitCode:   run.ExitCode,
		Error:      run.Error,
		CreatedAt:  run.CreatedAt,
		UpdatedAt:  run.UpdatedAt,
	}
	if len(run.Records) > 0 {
		b, err := json.Marshal(run.Records)
		if err != nil {
			return nil, err
		}
		rec.Records = string(b)
	}
	return rec, nil
}

func runToModel(rec *RunRecord) (*model.Run, error) {
	run := &model.Run{
		ID:         rec.ID,
		Mode:       rec.Mode,
		IP:         rec.IP,
		StartedAt:  rec.StartedAt,
		FinishedAt: rec.FinishedAt,
		Updated:    rec.Updated,
		Skipped:    rec.Skipped,
		Failed:     rec.Failed,
		ExitCode:   rec.ExitCode,
		Error:      rec.Error,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
	if rec.Records != "" {
		if err := json.Unmarshal([]byte(rec.Records), &run.Records); err != nil {
			return nil, err
		}
	}
	return run, nil
}

func (r *RunRepository) Create(ctx context.Context, run *model.Run) error {
	if run.ID == "" {
		run.ID = "run-" + uuid.NewString()
	}
	rec, err := runToRecord(run)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *RunRepository) Get(ctx context.Context, id string) (*model.Run, error) {
	var rec RunRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, model.ErrRunNotFound
		}
		return nil, err
	}
	return runToModel(&rec)
}

// List returns runs newest first, at most limit rows (limit <= 0 means
// no cap).
func (r *RunRepository) List(ctx context.Context, limit int) ([]*model.Run, error) {
	q := r.db.WithContext(ctx).Order("started_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var recs []RunRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Run, 0, len(recs))
	for i := range recs {
		run, err := runToModel(&recs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, nil
}

// Prune deletes all but the newest keep runs. keep < 1 is a no-op.
func (r *RunRepository) Prune(ctx context.Context, keep int) error {
	if keep < 1 {
		return nil
	}
	var keepIDs []string
	if err := r.db.WithContext(ctx).Model(&RunRecord{}).
		Order("started_at DESC").Limit(keep).Pluck("id", &keepIDs).Error; err != nil {
		return err
	}
	if len(keepIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id NOT IN ?", keepIDs).Delete(&RunRecord{}).Error
}

var _ domain.RunRepository = (*RunRepository)(nil)
