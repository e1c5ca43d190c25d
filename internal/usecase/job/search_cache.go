package job

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"time"
)

const searchCachePrefix = "jobs:search:"

type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type searchCacheKeyInput struct {
	Strategy string `json:"strategy"`
	Query    string `json:"query"`
}

// SearchCacheKey is exact on the query: strategies decide themselves how
// case and whitespace matter.
func SearchCacheKey(namespace string, generation uint64, strategy, query string) string {
	b, _ := json.Marshal(searchCacheKeyInput{Strategy: strategy, Query: query})
	sum := sha256.Sum256(b)
	return searchCachePrefix + namespace + ":" + strconv.FormatUint(generation, 10) + ":" + hex.EncodeToString(sum[:])
}

// SearchCachePattern matches every key of one namespace.
func SearchCachePattern(namespace string) string {
	return searchCachePrefix + namespace + ":*"
}
