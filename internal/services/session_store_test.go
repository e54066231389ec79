package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dotlabs/dot-ranker/internal/models"
)

func newTestSessionStore(t *testing.T, ttl time.Duration) (SessionStoreService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewSessionStoreService(client, ttl), mr
}

func TestSessionStore_RoundTrip(t *testing.T) {
	store, _ := newTestSessionStore(t, time.Hour)
	ctx := context.Background()

	saved := &models.SessionAnalysis{
		Timestamp:    time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
		ProfileCount: 2,
		JobRequirements: models.JobRequirement{
			RequiredSkills: []string{"go"},
		},
		Results: models.RankingReport{
			Ranking: []models.RankedCandidate{{DotID: "DOT-001", Rank: 1}},
		},
	}
	require.NoError(t, store.SaveLastAnalysis(ctx, "sess-1", saved))

	got, err := store.LastAnalysis(ctx, "sess-1")
	require.NoError(t, err)

	assert.True(t, saved.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, saved.ProfileCount, got.ProfileCount)
	assert.Equal(t, []string{"go"}, got.JobRequirements.RequiredSkills)
	require.Len(t, got.Results.Ranking, 1)
	assert.Equal(t, "DOT-001", got.Results.Ranking[0].DotID)
}

func TestSessionStore_MissingSession(t *testing.T) {
	store, _ := newTestSessionStore(t, time.Hour)

	_, err := store.LastAnalysis(context.Background(), "never-seen")
	assert.ErrorIs(t, err, ErrNoAnalysis)
}

func TestSessionStore_SessionsAreIsolated(t *testing.T) {
	store, _ := newTestSessionStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.SaveLastAnalysis(ctx, "sess-a", &models.SessionAnalysis{ProfileCount: 1}))
	require.NoError(t, store.SaveLastAnalysis(ctx, "sess-b", &models.SessionAnalysis{ProfileCount: 9}))

	a, err := store.LastAnalysis(ctx, "sess-a")
	require.NoError(t, err)
	b, err := store.LastAnalysis(ctx, "sess-b")
	require.NoError(t, err)

	assert.Equal(t, 1, a.ProfileCount)
	assert.Equal(t, 9, b.ProfileCount)
}

func TestSessionStore_EntryExpires(t *testing.T) {
	store, mr := newTestSessionStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.SaveLastAnalysis(ctx, "sess-1", &models.SessionAnalysis{ProfileCount: 3}))

	mr.FastForward(2 * time.Minute)

	_, err := store.LastAnalysis(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNoAnalysis)
}
