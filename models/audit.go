package models

import "time"

// IngestionAudit is one row of the PostgreSQL upload history table.
type IngestionAudit struct {
	ID         int       `json:"id"`
	FileName   string    `json:"file_name"`
	TotalRows  int       `json:"total_rows"`
	Inserted   int       `json:"inserted"`
	Failed     int       `json:"failed"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}
