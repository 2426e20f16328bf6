package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/pressure-headache/internal/profile"
	"github.com/i474232898/pressure-headache/internal/record"
	"github.com/i474232898/pressure-headache/internal/weather"
)

var tokyo = weather.Location{City: "Tokyo", Country: "JP"}

func snap(ts time.Time, pressure float64) weather.WeatherSnapshot {
	return weather.WeatherSnapshot{Location: tokyo, Timestamp: ts, Pressure: pressure}
}

func TestMemoryStoreKeepsSnapshotsSorted(t *testing.T) {
	s := NewMemoryStore(0, 0)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	s.SaveSnapshot(tokyo, snap(base.Add(2*time.Hour), 1002))
	s.SaveSnapshot(tokyo, snap(base, 1000))
	s.SaveSnapshot(tokyo, snap(base.Add(time.Hour), 1001))

	latest, err := s.GetLatest(tokyo)
	require.NoError(t, err)
	assert.Equal(t, 1002.0, latest.Pressure)

	got, err := s.GetRange(tokyo, base, base.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []float64{1000, 1001, 1002}, []float64{got[0].Pressure, got[1].Pressure, got[2].Pressure})
}

func TestMemoryStoreRetention(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	s := NewMemoryStore(2, 0)
	for i := 0; i < 4; i++ {
		s.SaveSnapshot(tokyo, snap(base.Add(time.Duration(i)*time.Minute), float64(1000+i)))
	}
	got, err := s.GetRange(tokyo, base, base.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1002.0, got[0].Pressure)

	s = NewMemoryStore(0, time.Hour)
	s.now = func() time.Time { return base }
	s.SaveSnapshot(tokyo, snap(base.Add(-3*time.Hour), 990))
	s.SaveSnapshot(tokyo, snap(base.Add(-10*time.Minute), 995))
	got, err = s.GetRange(tokyo, base.Add(-24*time.Hour), base)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 995.0, got[0].Pressure)
}

func TestMemoryStoreDropsExpiredOnly(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore(0, time.Hour)
	s.now = func() time.Time { return base }

	s.SaveSnapshot(tokyo, snap(base.Add(-2*time.Hour), 990))
	_, err := s.GetLatest(tokyo)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreUnknownLocation(t *testing.T) {
	s := NewMemoryStore(0, 0)
	_, err := s.GetLatest(tokyo)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetRange(tokyo, time.Time{}, time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileStore(t *testing.T) {
	ctx := context.Background()
	s := NewProfileStore(profile.SampleProfiles()...)

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(profile.SampleProfiles()))
	assert.Equal(t, "sample-tokyo", all[0].ID)

	p, err := s.Get(ctx, "sample-osaka")
	require.NoError(t, err)
	assert.Equal(t, 5, p.PressureSensitivity)

	p.PressureSensitivity = 1
	require.NoError(t, s.Save(ctx, p))
	all, _ = s.List(ctx)
	assert.Len(t, all, len(profile.SampleProfiles()))
	assert.Equal(t, "sample-osaka", all[1].ID)
	assert.Equal(t, 1, all[1].PressureSensitivity)

	_, err = s.Get(ctx, "nobody")
	assert.ErrorIs(t, err, profile.ErrNotFound)
	assert.ErrorIs(t, s.Exists(ctx, "nobody"), profile.ErrNotFound)
	assert.NoError(t, s.Exists(ctx, "sample-tokyo"))
}

func TestProfileStoreBacksMatching(t *testing.T) {
	ctx := context.Background()
	s := NewProfileStore(profile.SampleProfiles()...)
	svc := profile.NewService(s, profile.NewEngine(profile.DefaultWeights()), 0)

	results, err := svc.FindSimilar(ctx, "sample-tokyo", 0)
	require.NoError(t, err)
	for _, r := range results {
		assert.NotEqual(t, "sample-tokyo", r.Profile.ID)
	}
}

func TestRecordStoreNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, s.Add(ctx, record.Record{ID: "a", ProfileID: "p1", Timestamp: base}))
	require.NoError(t, s.Add(ctx, record.Record{ID: "b", ProfileID: "p1", Timestamp: base.Add(time.Hour)}))
	require.NoError(t, s.Add(ctx, record.Record{ID: "c", ProfileID: "p1", Timestamp: base}))
	require.NoError(t, s.Add(ctx, record.Record{ID: "x", ProfileID: "p2", Timestamp: base}))

	got, err := s.ListByProfile(ctx, "p1")
	require.NoError(t, err)
	ids := make([]string, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"b", "c", "a"}, ids)

	got, err = s.ListByProfile(ctx, "none")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecordServiceWithStores(t *testing.T) {
	ctx := context.Background()
	svc := record.NewService(NewRecordStore(), NewProfileStore(profile.SampleProfiles()...))

	r, err := svc.Add(ctx, "sample-tokyo", record.Record{Severity: 3, Notes: "  after rain  "})
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "after rain", r.Notes)

	_, err = svc.Add(ctx, "nobody", record.Record{Severity: 3})
	assert.ErrorIs(t, err, profile.ErrNotFound)

	list, err := svc.List(ctx, "sample-tokyo")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, r.ID, list[0].ID)
}
