// Package history keeps a short-lived, in-process record of completed
// generation attempts so the studio UI can show recent results without a
// round-trip to its hosted database.
package history

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/davinci-studio/imagine/models"
)

const (
	// DefaultTTL matches how long the UI keeps a session's thumbnails warm.
	DefaultTTL = 30 * time.Minute

	// DefaultSweep is how often expired records are purged.
	DefaultSweep = time.Hour
)

// Record is one completed attempt, success or failure.
type Record struct {
	ID       string                     `json:"id"`
	Prompt   string                     `json:"prompt"`
	Response *models.GenerationResponse `json:"response"`
}

// Store is a TTL-bounded record cache. Safe for concurrent use.
type Store struct {
	records *cache.Cache
}

// NewStore creates a store with the given record lifetime and sweep interval;
// nonpositive values fall back to the defaults.
func NewStore(ttl, sweep time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if sweep <= 0 {
		sweep = DefaultSweep
	}
	return &Store{records: cache.New(ttl, sweep)}
}

// Add records a completed attempt and returns it with a fresh id.
func (s *Store) Add(prompt string, resp *models.GenerationResponse) Record {
	rec := Record{
		ID:       uuid.NewString(),
		Prompt:   prompt,
		Response: resp,
	}
	s.records.Set(rec.ID, rec, cache.DefaultExpiration)
	return rec
}

// Get fetches one record by id.
func (s *Store) Get(id string) (Record, bool) {
	v, ok := s.records.Get(id)
	if !ok {
		return Record{}, false
	}
	return v.(Record), true
}

// List returns all live records, newest first.
func (s *Store) List() []Record {
	items := s.records.Items()
	out := make([]Record, 0, len(items))
	for _, item := range items {
		out = append(out, item.Object.(Record))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Response.GeneratedAt.After(out[j].Response.GeneratedAt)
	})
	return out
}

// Len reports the number of live records.
func (s *Store) Len() int {
	return s.records.ItemCount()
}
