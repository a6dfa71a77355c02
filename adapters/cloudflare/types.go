package cloudflare

import (
	"encoding/json"
	"fmt"

	"github.com/Jersk/Cloudflare-DDNS-Wizard/domain/model"
)

// envelope is the standard v4 API response wrapper. Every endpoint
// returns it; Result holds the endpoint-specific payload.
type envelope struct {
	Success    bool            `json:"success"`
	Errors     []APIError      `json:"errors"`
	Result     json.RawMessage `json:"result"`
	ResultInfo *resultInfo     `json:"result_info"`
}

type resultInfo struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Count      int `json:"count"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// APIError is one entry of the envelope errors array. A response with
// success=false surfaces its first entry as the attempt's error.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error code %d: %s", e.Code, e.Message)
}

// RateLimitError reports an HTTP 429 response. The retry loop stretches
// its delay when the failed attempt carries one.
type RateLimitError struct{}

func (e *RateLimitError) Error() string { return "rate limited (http 429)" }

// recordNotFoundCode is the documented error code for a missing DNS
// record on the dns_records endpoints.
const recordNotFoundCode = 81044

// zoneJSON is the wire form of a zone object.
type zoneJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// recordJSON is the wire form of a DNS record object.
type recordJSON struct {
	ID       string `json:"id"`
	ZoneID   string `json:"zone_id"`
	ZoneName string `json:"zone_name"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Content  string `json:"content"`
	TTL      int    `json:"ttl"`
	Proxied  *bool  `json:"proxied"`
}

func (r *recordJSON) toModel() *model.Record {
	rec := &model.Record{
		ID:       r.ID,
		ZoneID:   r.ZoneID,
		ZoneName: r.ZoneName,
		Name:     r.Name,
		Type:     model.RecordType(r.Type),
		Content:  r.Content,
		TTL:      r.TTL,
	}
	if r.Proxied != nil {
		rec.Proxied = *r.Proxied
	}
	return rec
}

// UpdatePayload is the PUT body for record updates. Proxied and TTL are
// carried over from the record's current state so an IP change never
// alters the user's proxy or TTL settings.
type UpdatePayload struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Content string `json:"content"`
	TTL     int    `json:"ttl"`
	Proxied bool   `json:"proxied"`
}

// Validate checks the payload against the API's documented constraints.
// TTL 1 means automatic; anything else must be 60..86400.
func (p UpdatePayload) Validate() error {
	if p.Type == "" {
		return fmt.Errorf("payload type is empty")
	}
	if p.Name == "" {
		return fmt.Errorf("payload name is empty")
	}
	if p.Content == "" {
		return fmt.Errorf("payload content is empty")
	}
	if p.TTL != 1 && (p.TTL < 60 || p.TTL > 86400) {
		return fmt.Errorf("payload ttl %d out of range (1 or 60..86400)", p.TTL)
	}
	return nil
}

// tokenVerifyJSON is the result payload of GET /user/tokens/verify.
type tokenVerifyJSON struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
