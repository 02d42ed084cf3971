package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"voterroll_site/config"
	"voterroll_site/ingest"
	"voterroll_site/models"
)

const uploadFormField = "file"

// UploadVoterSheet ingests one spreadsheet: locate the header, transform
// every row, then bulk-insert in bounded chunks. Per-record insert failures
// are reported as data; the request still succeeds with exact counts.
func UploadVoterSheet(w http.ResponseWriter, r *http.Request) {
	maxBytes := config.GetUploadMaxBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		sendErrorResponse(w, "Invalid multipart upload: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile(uploadFormField)
	if err != nil {
		sendErrorResponse(w, "A spreadsheet file is required in the 'file' field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		sendErrorResponse(w, "Error reading uploaded file", http.StatusBadRequest)
		return
	}

	started := time.Now()

	rows, err := ingest.ReadSheet(data, header.Filename)
	if err != nil {
		sendErrorResponse(w, "Unsupported or unreadable spreadsheet: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := ingest.ExtractRecords(rows, config.GetHeaderScanRows())
	switch {
	case errors.Is(err, ingest.ErrNoDataRows):
		sendErrorResponse(w, "Sheet has no data rows below the header", http.StatusBadRequest)
		return
	case errors.Is(err, ingest.ErrNoValidRecords):
		sendErrorResponse(w, "No row carried a name in either language", http.StatusBadRequest)
		return
	case err != nil:
		sendErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Printf("Located header at row %d in %s: %d records, %d rejected",
		result.HeaderRow, header.Filename, len(result.Records), result.Rejected)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	ingestor := ingest.NewIngestor(config.MongoDB.Collection(config.VoterCollection), config.GetBatchSize())
	ingestor.ChunkPause = time.Duration(config.GetChunkPauseMs()) * time.Millisecond
	ingestor.SampleLimit = config.GetErrorSampleLimit()

	report, err := ingestor.Ingest(ctx, result.Records)
	if err != nil {
		log.Printf("Ingestion aborted mid-batch: %v", err)
		recordAudit(header.Filename, result.Processed, report, time.Since(started))
		sendErrorResponse(w, "Store failure during bulk insert", http.StatusBadGateway)
		return
	}

	config.FlushVoterCaches()
	recordAudit(header.Filename, result.Processed, report, time.Since(started))

	sample := result.Records
	if len(sample) > 5 {
		sample = sample[:5]
	}

	sendJSONResponse(w, map[string]interface{}{
		"insertedCount":  report.InsertedCount,
		"totalProcessed": result.Processed,
		"errorCount":     report.ErrorCount,
		"errorSamples":   report.ErrorSamples,
		"rejectedRows":   result.Rejected,
		"headerRow":      result.HeaderRow,
		"sample":         sample,
	})
}

// GetVoterRecords returns one page of the registry.
func GetVoterRecords(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	cacheKey := config.GetCacheKey("voters:list", page, limit)
	if cached, found := config.ListCache.Get(cacheKey); found {
		w.Header().Set("X-Cache", "HIT")
		sendJSONResponse(w, cached)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	coll := config.MongoDB.Collection(config.VoterCollection)

	totalCount, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		sendErrorResponse(w, "Database error", http.StatusInternalServerError)
		return
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		sendErrorResponse(w, "Database error", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	records := make([]models.VoterRecord, 0, limit)
	if err := cursor.All(ctx, &records); err != nil {
		sendErrorResponse(w, "Error processing results", http.StatusInternalServerError)
		return
	}

	payload := map[string]interface{}{
		"data":        records,
		"totalCount":  totalCount,
		"currentPage": page,
		"totalPages":  (totalCount + int64(limit) - 1) / int64(limit),
	}
	config.ListCache.SetDefault(cacheKey, payload)

	w.Header().Set("Cache-Control", "public, max-age=300")
	sendJSONResponse(w, payload)
}

// GetVoterRecord looks up a single record by its ObjectID.
func GetVoterRecord(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		sendErrorResponse(w, "Invalid record id", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var record models.VoterRecord
	err = config.MongoDB.Collection(config.VoterCollection).
		FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		sendErrorResponse(w, "Record not found", http.StatusNotFound)
		return
	}
	if err != nil {
		sendErrorResponse(w, "Database error", http.StatusInternalServerError)
		return
	}

	sendJSONResponse(w, map[string]interface{}{"data": record})
}

// SearchVoterRecords does a case-insensitive partial match. The script of
// the query string decides which language's fields are searched: one
// Devanagari code point routes the query to name_mr/gender_mr.
func SearchVoterRecords(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		sendErrorResponse(w, "Query parameter 'query' is required", http.StatusBadRequest)
		return
	}
	page, limit := parsePagination(r)

	nameField, genderField, lang := "name", "gender", "english"
	if ingest.IsDevanagari(query) {
		nameField, genderField, lang = "name_mr", "gender_mr", "marathi"
	}

	cacheKey := config.GetCacheKey("voters:search", lang, query, page, limit)
	if cached, found := config.SearchCache.Get(cacheKey); found {
		w.Header().Set("X-Cache", "HIT")
		sendJSONResponse(w, cached)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pattern := regexp.QuoteMeta(query)
	filter := bson.M{
		"$or": []bson.M{
			{nameField: bson.M{"$regex": pattern, "$options": "i"}},
			{genderField: bson.M{"$regex": pattern, "$options": "i"}},
		},
	}

	coll := config.MongoDB.Collection(config.VoterCollection)

	totalCount, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		sendErrorResponse(w, "Database error", http.StatusInternalServerError)
		return
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		sendErrorResponse(w, "Database error", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	records := make([]models.VoterRecord, 0, limit)
	if err := cursor.All(ctx, &records); err != nil {
		sendErrorResponse(w, "Error processing results", http.StatusInternalServerError)
		return
	}

	payload := map[string]interface{}{
		"data":           records,
		"searchLanguage": lang,
		"totalCount":     totalCount,
		"currentPage":    page,
	}
	config.SearchCache.SetDefault(cacheKey, payload)

	sendJSONResponse(w, payload)
}

// ClearVoterRecords drops every record in the registry.
func ClearVoterRecords(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	res, err := config.MongoDB.Collection(config.VoterCollection).DeleteMany(ctx, bson.M{})
	if err != nil {
		sendErrorResponse(w, "Database error", http.StatusInternalServerError)
		return
	}

	config.FlushVoterCaches()
	log.Printf("Cleared voter collection: %d records deleted", res.DeletedCount)

	sendJSONResponse(w, map[string]interface{}{"deletedCount": res.DeletedCount})
}

// GetVoterStats reports the registry size and a per-gender breakdown.
func GetVoterStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	coll := config.MongoDB.Collection(config.VoterCollection)

	totalCount, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		sendErrorResponse(w, "Database error", http.StatusInternalServerError)
		return
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$toLower": "$gender"},
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		sendErrorResponse(w, "Database error", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var groups []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		sendErrorResponse(w, "Error processing results", http.StatusInternalServerError)
		return
	}

	byGender := make(map[string]int64, len(groups))
	for _, g := range groups {
		key := g.ID
		if key == "" {
			key = "unspecified"
		}
		byGender[key] = g.Count
	}

	sendJSONResponse(w, map[string]interface{}{
		"totalCount": totalCount,
		"byGender":   byGender,
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}
