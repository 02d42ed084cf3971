package handlers

import (
	"log"
	"net/http"
	"time"

	"voterroll_site/config"
	"voterroll_site/ingest"
	"voterroll_site/models"
)

// recordAudit writes one upload-history row. The audit trail is best
// effort: a missing Postgres connection or a failed insert never affects
// the ingestion response.
func recordAudit(fileName string, totalRows int, report ingest.Report, took time.Duration) {
	if config.DB == nil {
		return
	}
	_, err := config.DB.Exec(`
		INSERT INTO ingestion_audit (file_name, total_rows, inserted, failed, duration_ms)
		VALUES ($1, $2, $3, $4, $5)`,
		fileName, totalRows, report.InsertedCount, report.ErrorCount, took.Milliseconds())
	if err != nil {
		log.Printf("Warning: failed to record ingestion audit: %v", err)
	}
}

// GetIngestionHistory lists recent uploads from the audit table.
func GetIngestionHistory(w http.ResponseWriter, r *http.Request) {
	if config.DB == nil {
		sendErrorResponse(w, "Ingestion audit is not configured", http.StatusServiceUnavailable)
		return
	}

	rows, err := config.DB.QueryContext(r.Context(), `
		SELECT id, file_name, total_rows, inserted, failed, duration_ms, created_at
		FROM ingestion_audit
		ORDER BY created_at DESC
		LIMIT 50`)
	if err != nil {
		sendErrorResponse(w, "Database error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	entries := make([]models.IngestionAudit, 0, 50)
	for rows.Next() {
		var e models.IngestionAudit
		if err := rows.Scan(&e.ID, &e.FileName, &e.TotalRows, &e.Inserted, &e.Failed, &e.DurationMs, &e.CreatedAt); err != nil {
			log.Printf("Error scanning ingestion_audit row: %v", err)
			continue
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		sendErrorResponse(w, "Database error", http.StatusInternalServerError)
		return
	}

	sendJSONResponse(w, map[string]interface{}{
		"data":  entries,
		"count": len(entries),
	})
}
