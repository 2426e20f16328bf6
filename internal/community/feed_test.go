package community

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIsDeterministic(t *testing.T) {
	a := Generate(3, DefaultPostCount)
	b := Generate(3, DefaultPostCount)
	require.Len(t, a, DefaultPostCount)
	assert.Equal(t, a, b)

	ids := make(map[string]struct{})
	for _, p := range a {
		ids[p.ID] = struct{}{}
		assert.NotEmpty(t, p.UserName)
		assert.GreaterOrEqual(t, len(p.Symptoms), 1)
		assert.LessOrEqual(t, len(p.Symptoms), 3)
		assert.GreaterOrEqual(t, p.PostedHoursAgo, 1)
		assert.LessOrEqual(t, p.PostedHoursAgo, 10)
		assert.InDelta(t, 0, p.Weather.PressureChange, 5)
		assert.GreaterOrEqual(t, p.EmpathyCount, 0)
	}
	assert.Len(t, ids, DefaultPostCount)
}

func TestToggleEmpathy(t *testing.T) {
	feed := NewFeed([]Post{{ID: "a", EmpathyCount: 4}})

	p, err := feed.ToggleEmpathy("a")
	require.NoError(t, err)
	assert.True(t, p.IsEmpathized)
	assert.Equal(t, 5, p.EmpathyCount)

	p, err = feed.ToggleEmpathy("a")
	require.NoError(t, err)
	assert.False(t, p.IsEmpathized)
	assert.Equal(t, 4, p.EmpathyCount)

	_, err = feed.ToggleEmpathy("missing")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostsReturnsCopy(t *testing.T) {
	feed := NewFeed(Generate(1, 2))
	posts := feed.Posts()
	posts[0].EmpathyCount = -100
	assert.NotEqual(t, -100, feed.Posts()[0].EmpathyCount)
}
