package model

import "time"

// RecordResult describes the outcome of one record operation.
type RecordResult struct {
	ZoneID   string     `json:"zone_id"`
	ZoneName string     `json:"zone_name,omitempty"`
	RecordID string     `json:"record_id"`
	Name     string     `json:"name"`
	Type     RecordType `json:"type"`
	Action   string     `json:"action"` // "updated", "skipped", "failed", "planned"
	Message  string     `json:"message,omitempty"`
}

// RunResult aggregates the outcome of one synchronization run.
// Counters only ever increment; each processed record lands in exactly
// one of them.
type RunResult struct {
	RunID      string
	Mode       SelectionMode
	IP         string
	StartedAt  time.Time
	FinishedAt time.Time
	Updated    int
	Skipped    int
	Failed     int
	Records    []RecordResult
}

// Add appends a record result and bumps the matching counter.
// "planned" counts as skipped so dry runs keep exit code 0.
func (r *RunResult) Add(rec RecordResult) {
	switch rec.Action {
	case "updated":
		r.Updated++
	case "failed":
		r.Failed++
	default:
		r.Skipped++
	}
	r.Records = append(r.Records, rec)
}

// Failures returns the subset of record results that failed.
func (r *RunResult) Failures() []RecordResult {
	var out []RecordResult
	for _, rec := range r.Records {
		if rec.Action == "failed" {
			out = append(out, rec)
		}
	}
	return out
}

// ExitCode maps the aggregate outcome to the process exit code:
// 0 when every record was updated or already correct, 2 when one or
// more records failed. Fatal preconditions use exit code 1 and never
// reach a RunResult.
func (r *RunResult) ExitCode() int {
	if r.Failed > 0 {
		return 2
	}
	return 0
}
