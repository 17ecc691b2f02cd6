package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// NameCache keeps resolved display labels in memory so a feed fetch with
// many rows from the same actor hits the users table once.
type NameCache struct {
	cache *cache.Cache
}

func NewNameCache() *NameCache {
	// Labels expire after an hour; expired items are purged every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &NameCache{
		cache: c,
	}
}

func (r *NameCache) Save(userID uuid.UUID, label string) {
	r.cache.Set(userID.String(), label, cache.DefaultExpiration)
}

func (r *NameCache) Get(userID uuid.UUID) (string, bool) {
	if x, found := r.cache.Get(userID.String()); found {
		return x.(string), true
	}
	return "", false
}

func (r *NameCache) Delete(userID uuid.UUID) {
	r.cache.Delete(userID.String())
}
