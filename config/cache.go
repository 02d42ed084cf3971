package config

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

var (
	// Cache instances for the read endpoints. Both are flushed whenever an
	// upload or a bulk clear changes the underlying collection.
	ListCache   *cache.Cache
	SearchCache *cache.Cache
)

const (
	listCacheDuration   = 5 * time.Minute
	searchCacheDuration = 5 * time.Minute

	listCleanupInterval   = 15 * time.Minute
	searchCleanupInterval = 15 * time.Minute
)

func InitCache() {
	ListCache = cache.New(listCacheDuration, listCleanupInterval)
	SearchCache = cache.New(searchCacheDuration, searchCleanupInterval)
}

// FlushVoterCaches drops every cached page after the voter collection
// changes.
func FlushVoterCaches() {
	if ListCache != nil {
		ListCache.Flush()
	}
	if SearchCache != nil {
		SearchCache.Flush()
	}
}

func GetCacheKey(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key += ":" + fmt.Sprintf("%v", param)
	}
	return key
}
