package cloudflare

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/Jersk/Cloudflare-DDNS-Wizard/domain/model"
)

// ListZones enumerates every zone in the account.
func (c *Client) ListZones(ctx context.Context) ([]*model.Zone, error) {
	var zones []*model.Zone
	err := c.getPaged(ctx, "/zones", nil, 50, func(raw json.RawMessage) error {
		var page []zoneJSON
		if err := json.Unmarshal(raw, &page); err != nil {
			return fmt.Errorf("decode zones page: %w", err)
		}
		for _, z := range page {
			zones = append(zones, &model.Zone{ID: z.ID, Name: z.Name})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return zones, nil
}

// ZoneByName looks up a zone by exact name. A successful response with
// no match is model.ErrZoneNotFound.
func (c *Client) ZoneByName(ctx context.Context, name string) (*model.Zone, error) {
	q := url.Values{}
	q.Set("name", name)

	var page []zoneJSON
	if err := c.get(ctx, "/zones", q, &page); err != nil {
		return nil, err
	}
	if len(page) == 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrZoneNotFound, name)
	}
	return &model.Zone{ID: page[0].ID, Name: page[0].Name}, nil
}
