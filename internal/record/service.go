package record

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store persists headache records per profile.
type Store interface {
	Add(ctx context.Context, r Record) error
	// ListByProfile returns the profile's records newest first.
	ListByProfile(ctx context.Context, profileID string) ([]Record, error)
}

// ProfileChecker reports whether a profile exists. It returns an error
// (typically profile.ErrNotFound) when it does not.
type ProfileChecker interface {
	Exists(ctx context.Context, id string) error
}

type Service struct {
	store    Store
	profiles ProfileChecker
	now      func() time.Time
}

func NewService(store Store, profiles ProfileChecker) *Service {
	return &Service{store: store, profiles: profiles, now: time.Now}
}

// Add validates r and stores it for profileID. A zero timestamp is set to now.
func (s *Service) Add(ctx context.Context, profileID string, r Record) (Record, error) {
	if s.profiles != nil {
		if err := s.profiles.Exists(ctx, profileID); err != nil {
			return Record{}, err
		}
	}

	r.ProfileID = profileID
	r = Normalize(r)
	if err := Validate(r); err != nil {
		return Record{}, err
	}
	r.ID = uuid.NewString()
	if r.Timestamp.IsZero() {
		r.Timestamp = s.now().UTC()
	}

	if err := s.store.Add(ctx, r); err != nil {
		return Record{}, fmt.Errorf("save record for %s: %w", profileID, err)
	}
	return r, nil
}

func (s *Service) List(ctx context.Context, profileID string) ([]Record, error) {
	if s.profiles != nil {
		if err := s.profiles.Exists(ctx, profileID); err != nil {
			return nil, err
		}
	}
	return s.store.ListByProfile(ctx, profileID)
}
