package config

import (
	"os"
	"strconv"
)

// Ingestion tunables. Everything here is overridable from the environment
// so operators can retune batch pressure without a rebuild.
func GetBatchSize() int        { return getEnvAsInt("INGEST_BATCH_SIZE", 500) }
func GetHeaderScanRows() int   { return getEnvAsInt("HEADER_SCAN_ROWS", 20) }
func GetChunkPauseMs() int     { return getEnvAsInt("CHUNK_PAUSE_MS", 100) }
func GetErrorSampleLimit() int { return getEnvAsInt("ERROR_SAMPLE_LIMIT", 10) }

// GetUploadMaxBytes bounds the accepted spreadsheet size (default 32 MiB).
func GetUploadMaxBytes() int64 {
	return int64(getEnvAsInt("UPLOAD_MAX_BYTES", 32<<20))
}

func getMongoURI() string {
	return getEnvWithDefault("MONGO_URI", "mongodb://localhost:27017")
}

func getMongoDBName() string {
	return getEnvWithDefault("MONGO_DB_NAME", "voter_registry")
}

// Helper functions
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
