package rdb

import "time"

// RunRecord is the RDB persistence model for domain Run.
// Table name: runs
type RunRecord struct {
	ID         string    `gorm:"primaryKey;type:text;not null"`
	Mode       string    `gorm:"type:text;not null"`
	IP         string    `gorm:"type:text"`
	StartedAt  time.Time `gorm:"not null;index"`
	FinishedAt time.Time `gorm:"not null"`
	Updated    int       `gorm:"not null"`
	Skipped    int       `gorm:"not null"`
	Failed     int       `gorm:"not null"`
	ExitCode   int       `gorm:"not null"`
	Error      string    `gorm:"type:text"`
	Records    string    `gorm:"type:text"` // JSON encoded []model.RecordResult
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (RunRecord) TableName() string { return "runs" }
