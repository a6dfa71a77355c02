package cloudflare

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Jersk/Cloudflare-DDNS-Wizard/domain/model"
)

// ListARecords enumerates all A records of a zone.
func (c *Client) ListARecords(ctx context.Context, zoneID string) ([]*model.Record, error) {
	q := url.Values{}
	q.Set("type", string(model.RecordTypeA))

	var records []*model.Record
	err := c.getPaged(ctx, "/zones/"+zoneID+"/dns_records", q, 100, func(raw json.RawMessage) error {
		var page []recordJSON
		if err := json.Unmarshal(raw, &page); err != nil {
			return fmt.Errorf("decode records page: %w", err)
		}
		for i := range page {
			records = append(records, page[i].toModel())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// GetRecord fetches one record's live state.
func (c *Client) GetRecord(ctx context.Context, zoneID, recordID string) (*model.Record, error) {
	var rec recordJSON
	if err := c.get(ctx, "/zones/"+zoneID+"/dns_records/"+recordID, nil, &rec); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Code == recordNotFoundCode {
			return nil, fmt.Errorf("%w: %s", model.ErrRecordNotFound, recordID)
		}
		return nil, err
	}
	return rec.toModel(), nil
}

// UpdateRecord overwrites a record via PUT and returns its new state.
func (c *Client) UpdateRecord(ctx context.Context, zoneID, recordID string, payload UpdatePayload) (*model.Record, error) {
	raw, _, err := c.do(ctx, http.MethodPut, "/zones/"+zoneID+"/dns_records/"+recordID, nil, payload)
	if err != nil {
		return nil, err
	}
	var rec recordJSON
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode updated record: %w", err)
	}
	return rec.toModel(), nil
}
