package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/i474232898/pressure-headache/internal/metrics"
)

// ErrNotFound is returned when no profile exists for an id.
var ErrNotFound = errors.New("profile not found")

// CandidateSource supplies the pool of profiles considered for matching.
type CandidateSource interface {
	Candidates(ctx context.Context, subject UserProfile) ([]UserProfile, error)
}

// Repository is the contract the profile directory must satisfy.
type Repository interface {
	CandidateSource
	Save(ctx context.Context, p UserProfile) error
	Get(ctx context.Context, id string) (UserProfile, error)
	List(ctx context.Context) ([]UserProfile, error)
}

// Service registers profiles and finds similar users.
type Service struct {
	repo   Repository
	engine *Engine
	limit  int
}

// NewService creates a Service. A limit <= 0 falls back to DefaultLimit.
func NewService(repo Repository, engine *Engine, limit int) *Service {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Service{
		repo:   repo,
		engine: engine,
		limit:  limit,
	}
}

// Register normalizes and validates p, assigns an id when missing and stores it.
func (s *Service) Register(ctx context.Context, p UserProfile) (UserProfile, error) {
	p = Normalize(p)
	if err := Validate(p); err != nil {
		return UserProfile{}, err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return UserProfile{}, fmt.Errorf("save profile %s: %w", p.ID, err)
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (UserProfile, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]UserProfile, error) {
	return s.repo.List(ctx)
}

// FindSimilar ranks the candidate pool against the profile with the given id.
// The subject itself is never part of its own result. A limit <= 0 uses the
// service default.
func (s *Service) FindSimilar(ctx context.Context, id string, limit int) (results []MatchResult, err error) {
	defer func() { metrics.MatchRequests.WithLabelValues(metrics.Outcome(err)).Inc() }()

	subject, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	pool, err := s.repo.Candidates(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("load candidates for %s: %w", id, err)
	}

	candidates := make([]UserProfile, 0, len(pool))
	for _, c := range pool {
		if c.ID != "" && c.ID == subject.ID {
			continue
		}
		candidates = append(candidates, c)
	}
	metrics.MatchCandidates.Observe(float64(len(candidates)))

	if limit <= 0 {
		limit = s.limit
	}
	return s.engine.Rank(subject, candidates, limit)
}
