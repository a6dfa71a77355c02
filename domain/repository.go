package domain

import (
	"context"

	"github.com/Jersk/Cloudflare-DDNS-Wizard/domain/model"
)

// RunRepository stores and retrieves Run history snapshots.
type RunRepository interface {
	Create(ctx context.Context, r *model.Run) error
	Get(ctx context.Context, id string) (*model.Run, error)
	List(ctx context.Context, limit int) ([]*model.Run, error)
	Prune(ctx context.Context, keep int) error
}
