// Package inmem provides thread-safe in-memory repositories for tests.
package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Jersk/Cloudflare-DDNS-Wizard/domain"
	"github.com/Jersk/Cloudflare-DDNS-Wizard/domain/model"
)

// RunRepository is a thread-safe in-memory implementation.
type RunRepository struct {
	mu    sync.RWMutex
	items map[string]*model.Run
	seq   int64
}

func NewRunRepository() *RunRepository {
	return &RunRepository{items: make(map[string]*model.Run)}
}

func (r *RunRepository) nextID() string {
	r.seq++
	return fmt.Sprintf("run-%d-%d", time.Now().UnixNano(), r.seq)
}

func (r *RunRepository) Create(_ context.Context, run *model.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if run.ID == "" {
		run.ID = r.nextID()
	}
	cp := *run
	r.items[run.ID] = &cp
	return nil
}

func (r *RunRepository) Get(_ context.Context, id string) (*model.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	if !ok {
		return nil, model.ErrRunNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *RunRepository) List(_ context.Context, limit int) ([]*model.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Run, 0, len(r.items))
	for _, v := range r.items {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *RunRepository) Prune(_ context.Context, keep int) error {
	if keep < 1 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) <= keep {
		return nil
	}
	runs := make([]*model.Run, 0, len(r.items))
	for _, v := range r.items {
		runs = append(runs, v)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].StartedAt.After(runs[j].StartedAt) })
	for _, v := range runs[keep:] {
		delete(r.items, v.ID)
	}
	return nil
}

var _ domain.RunRepository = (*RunRepository)(nil)
