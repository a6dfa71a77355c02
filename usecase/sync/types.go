// Package sync implements the synchronization run: resolve the public
// IPv4 once, select the target A records per the configured mode, and
// rewrite the ones whose content drifted.
package sync

import (
	"context"
	"time"

	"github.com/Jersk/Cloudflare-DDNS-Wizard/adapters/cloudflare"
	"github.com/Jersk/Cloudflare-DDNS-Wizard/config/ddnscfg"
	"github.com/Jersk/Cloudflare-DDNS-Wizard/domain"
	"github.com/Jersk/Cloudflare-DDNS-Wizard/domain/model"
)

// API is the slice of the Cloudflare client the sync engine uses.
type API interface {
	VerifyToken(ctx context.Context) (string, error)
	ListZones(ctx context.Context) ([]*model.Zone, error)
	ZoneByName(ctx context.Context, name string) (*model.Zone, error)
	ListARecords(ctx context.Context, zoneID string) ([]*model.Record, error)
	GetRecord(ctx context.Context, zoneID, recordID string) (*model.Record, error)
	UpdateRecord(ctx context.Context, zoneID, recordID string, payload cloudflare.UpdatePayload) (*model.Record, error)
}

// IPResolver yields the current public IPv4.
type IPResolver interface {
	Resolve(ctx context.Context) (string, error)
}

// UseCase provides application logic for synchronization runs.
type UseCase struct {
	Config *ddnscfg.Config
	API    API
	IP     IPResolver
	Runs   domain.RunRepository // optional; nil disables run history

	// PropagationDelay is the wait between a successful write and its
	// confirming read. Tests zero it out.
	PropagationDelay time.Duration
}

// New wires a UseCase with production defaults.
func New(cfg *ddnscfg.Config, api API, ip IPResolver, runs domain.RunRepository) *UseCase {
	return &UseCase{
		Config:           cfg,
		API:              api,
		IP:               ip,
		Runs:             runs,
		PropagationDelay: 5 * time.Second,
	}
}
