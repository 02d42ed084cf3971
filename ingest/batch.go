package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"voterroll_site/models"
)

// ChunkWriter is the slice of *mongo.Collection the ingestor needs. The
// session behind it is owned and managed by the caller.
type ChunkWriter interface {
	InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// InsertError pairs a failed record with its index in the original upload.
type InsertError struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// Report aggregates the outcome of one bulk ingestion across all chunks.
type Report struct {
	InsertedCount int           `json:"insertedCount"`
	ErrorCount    int           `json:"errorCount"`
	ErrorSamples  []InsertError `json:"errorSamples"`
}

const (
	// DefaultBatchSize bounds peak memory and per-call payload size.
	DefaultBatchSize = 500
	// DefaultSampleLimit caps how many per-record errors the response carries.
	DefaultSampleLimit = 10
	// DefaultChunkPause throttles writes between chunks.
	DefaultChunkPause = 100 * time.Millisecond
)

// Ingestor persists canonical records in fixed-size sequential chunks,
// isolating per-record failures so one bad document never sinks the rest of
// its chunk. Chunks are written one after another, never in parallel.
type Ingestor struct {
	Coll        ChunkWriter
	BatchSize   int
	ChunkPause  time.Duration
	SampleLimit int
}

func NewIngestor(coll ChunkWriter, batchSize int) *Ingestor {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Ingestor{
		Coll:        coll,
		BatchSize:   batchSize,
		ChunkPause:  DefaultChunkPause,
		SampleLimit: DefaultSampleLimit,
	}
}

// Ingest writes all records and returns exact counts. A non-nil error means
// a transport-level fault stopped the pipeline early; chunks already
// committed stay committed and are reflected in the partial report.
func (ing *Ingestor) Ingest(ctx context.Context, records []models.VoterRecord) (Report, error) {
	report := Report{ErrorSamples: []InsertError{}}

	now := time.Now().UTC()
	docs := make([]interface{}, len(records))
	for i := range records {
		records[i].CreatedAt = now
		records[i].UpdatedAt = now
		docs[i] = records[i]
	}

	for start := 0; start < len(docs); start += ing.BatchSize {
		end := start + ing.BatchSize
		if end > len(docs) {
			end = len(docs)
		}

		inserted, insertErrs, err := ing.insertChunk(ctx, docs[start:end], start)
		report.InsertedCount += inserted
		report.ErrorCount += len(insertErrs)
		for _, e := range insertErrs {
			if len(report.ErrorSamples) < ing.SampleLimit {
				report.ErrorSamples = append(report.ErrorSamples, e)
			}
		}
		if err != nil {
			return report, fmt.Errorf("chunk starting at record %d: %w", start, err)
		}
		log.Printf("Committed chunk %d-%d (%d inserted, %d failed so far)",
			start, end-1, report.InsertedCount, report.ErrorCount)

		if end < len(docs) && ing.ChunkPause > 0 {
			select {
			case <-ctx.Done():
				return report, fmt.Errorf("ingestion cancelled after record %d: %w", end-1, ctx.Err())
			case <-time.After(ing.ChunkPause):
			}
		}
	}
	return report, nil
}

// insertChunk tries one unordered bulk insert. Per-record write errors are
// extracted from the driver's bulk exception with their indexes rebased to
// the whole upload; a failure mode without per-record detail falls back to
// inserting the chunk one document at a time.
func (ing *Ingestor) insertChunk(ctx context.Context, chunk []interface{}, offset int) (int, []InsertError, error) {
	_, err := ing.Coll.InsertMany(ctx, chunk, options.InsertMany().SetOrdered(false))
	if err == nil {
		return len(chunk), nil, nil
	}

	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		insertErrs := make([]InsertError, 0, len(bwe.WriteErrors))
		for _, we := range bwe.WriteErrors {
			insertErrs = append(insertErrs, InsertError{
				Index:   offset + we.Index,
				Message: we.Message,
			})
		}
		// Unordered insert: everything without a write error went in.
		return len(chunk) - len(insertErrs), insertErrs, nil
	}

	if isTransportError(err) {
		return 0, nil, err
	}

	log.Printf("Bulk insert failed without per-record detail (%v), retrying chunk singly", err)
	inserted := 0
	var insertErrs []InsertError
	for i, doc := range chunk {
		if _, err := ing.Coll.InsertOne(ctx, doc); err != nil {
			if isTransportError(err) {
				return inserted, insertErrs, err
			}
			insertErrs = append(insertErrs, InsertError{
				Index:   offset + i,
				Message: err.Error(),
			})
			continue
		}
		inserted++
	}
	return inserted, insertErrs, nil
}

func isTransportError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	if errors.Is(err, mongo.ErrClientDisconnected) {
		return true
	}
	return mongo.IsTimeout(err) || mongo.IsNetworkError(err)
}
