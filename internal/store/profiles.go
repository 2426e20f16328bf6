package store

import (
	"context"
	"sync"

	"github.com/i474232898/pressure-headache/internal/profile"
)

// ProfileStore is an in-memory profile directory. Candidates are returned in
// registration order so rankings are deterministic.
type ProfileStore struct {
	mu    sync.RWMutex
	byID  map[string]profile.UserProfile
	order []string
}

func NewProfileStore(seed ...profile.UserProfile) *ProfileStore {
	s := &ProfileStore{byID: make(map[string]profile.UserProfile)}
	for _, p := range seed {
		_ = s.Save(context.Background(), p)
	}
	return s
}

// Save inserts or replaces the profile with p.ID.
func (s *ProfileStore) Save(_ context.Context, p profile.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[p.ID]; !ok {
		s.order = append(s.order, p.ID)
	}
	s.byID[p.ID] = p
	return nil
}

func (s *ProfileStore) Get(_ context.Context, id string) (profile.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok {
		return profile.UserProfile{}, profile.ErrNotFound
	}
	return p, nil
}

func (s *ProfileStore) List(_ context.Context) ([]profile.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]profile.UserProfile, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

// Candidates returns every stored profile; the caller drops the subject.
func (s *ProfileStore) Candidates(ctx context.Context, _ profile.UserProfile) ([]profile.UserProfile, error) {
	return s.List(ctx)
}

// Exists returns profile.ErrNotFound when id is unknown.
func (s *ProfileStore) Exists(ctx context.Context, id string) error {
	_, err := s.Get(ctx, id)
	return err
}
