// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package cache keeps recently ranked results for a short time, owned by the caller of the engine.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/AccelByte/extend-team-matcher/pkg/models"
)

// ResultCache is an in-memory store of ranked results with a fixed ttl.
// Results are copied in and out, so callers never share them.
type ResultCache struct {
	store *gocache.Cache
	ttl   time.Duration
}

// NewResultCache returns a cache whose entries live for ttl.
func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{
		store: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func (c *ResultCache) Get(key string) ([]models.CompatibilityResult, bool) {
	value, found := c.store.Get(key)
	if !found {
		return nil, false
	}
	results, ok := value.([]models.CompatibilityResult)
	if !ok {
		return nil, false
	}
	copied := models.CopyResults(results)
	if copied == nil {
		copied = []models.CompatibilityResult{}
	}
	return copied, true
}

func (c *ResultCache) Set(key string, results []models.CompatibilityResult) {
	copied := models.CopyResults(results)
	if copied == nil {
		copied = []models.CompatibilityResult{}
	}
	c.store.Set(key, copied, gocache.DefaultExpiration)
}

// Len is the number of entries, expired ones included until the janitor removes them.
func (c *ResultCache) Len() int {
	return c.store.ItemCount()
}

func (c *ResultCache) Flush() {
	c.store.Flush()
}

func (c *ResultCache) TTL() time.Duration {
	return c.ttl
}
