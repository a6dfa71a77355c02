package model

import "fmt"

// RecordType represents DNS record types as used by the Cloudflare API.
type RecordType string

const (
	RecordTypeA RecordType = "A"
)

// Zone is a DNS zone in the Cloudflare account.
type Zone struct {
	ID   string
	Name string
}

// Record is a DNS record fetched live from the API.
// Records are never cached across runs; stale content would defeat the
// compare-before-write idempotence check.
type Record struct {
	ID       string
	ZoneID   string
	ZoneName string
	Name     string // FQDN
	Type     RecordType
	Content  string // IPv4 address for A records
	TTL      int    // 1 = automatic, otherwise 60..86400 seconds
	Proxied  bool
}

// RecordRef identifies one managed record in explicit list mode.
type RecordRef struct {
	ZoneID     string
	RecordID   string
	RecordName string
	RecordType RecordType
}

// Validate reports the first missing or unsupported field of the reference.
func (r RecordRef) Validate() error {
	switch {
	case r.ZoneID == "":
		return fmt.Errorf("%w: missing zone_id", ErrRecordRefInvalid)
	case r.RecordID == "":
		return fmt.Errorf("%w: missing record_id", ErrRecordRefInvalid)
	case r.RecordName == "":
		return fmt.Errorf("%w: missing record_name", ErrRecordRefInvalid)
	case r.RecordType == "":
		return fmt.Errorf("%w: missing record_type", ErrRecordRefInvalid)
	case r.RecordType != RecordTypeA:
		return fmt.Errorf("%w: unsupported record type %q", ErrRecordRefInvalid, r.RecordType)
	}
	return nil
}
