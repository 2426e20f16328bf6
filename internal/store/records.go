package store

import (
	"context"
	"sort"
	"sync"

	"github.com/i474232898/pressure-headache/internal/record"
)

// RecordStore keeps headache records per profile in memory.
type RecordStore struct {
	mu        sync.RWMutex
	byProfile map[string][]record.Record
}

func NewRecordStore() *RecordStore {
	return &RecordStore{byProfile: make(map[string][]record.Record)}
}

func (s *RecordStore) Add(_ context.Context, r record.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byProfile[r.ProfileID] = append(s.byProfile[r.ProfileID], r)
	return nil
}

// ListByProfile returns a copy of the profile's records, newest first.
// Records with equal timestamps keep reverse insertion order.
func (s *RecordStore) ListByProfile(_ context.Context, profileID string) ([]record.Record, error) {
	s.mu.RLock()
	stored := s.byProfile[profileID]
	out := make([]record.Record, len(stored))
	for i, r := range stored {
		out[len(stored)-1-i] = r
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}
