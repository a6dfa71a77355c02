package model

import "time"

// Run is a persisted snapshot of one synchronization run.
type Run struct {
	ID         string         `json:"id"`
	Mode       string         `json:"mode"`
	IP         string         `json:"ip"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Updated    int            `json:"updated"`
	Skipped    int            `json:"skipped"`
	Failed     int            `json:"failed"`
	ExitCode   int            `json:"exit_code"`
	Error      string         `json:"error,omitempty"`
	Records    []RecordResult `json:"records,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// NewRun snapshots a RunResult for persistence.
func NewRun(res *RunResult, exitCode int, runErr error) *Run {
	run := &Run{
		ID:         res.RunID,
		Mode:       string(res.Mode),
		IP:         res.IP,
		StartedAt:  res.StartedAt,
		FinishedAt: res.FinishedAt,
		Updated:    res.Updated,
		Skipped:    res.Skipped,
		Failed:     res.Failed,
		ExitCode:   exitCode,
		Records:    res.Records,
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	return run
}
