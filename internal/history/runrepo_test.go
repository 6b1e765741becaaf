package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRepo_RecordAndRecent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRunRepo(db)
	ctx := context.Background()

	started := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	err := repo.Record(ctx, Run{
		Bot:        "loginbot",
		Outcome:    OutcomeOK,
		StartedAt:  started,
		FinishedAt: started.Add(25 * time.Second),
	})
	require.NoError(t, err)

	runs, err := repo.Recent(ctx, "loginbot", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "loginbot", runs[0].Bot)
	assert.Equal(t, OutcomeOK, runs[0].Outcome)
	assert.Equal(t, "", runs[0].Detail)
	assert.Equal(t, started, runs[0].StartedAt)
	assert.Equal(t, started.Add(25*time.Second), runs[0].FinishedAt)
}

func TestRunRepo_RecentOrdersMostRecentFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRunRepo(db)
	ctx := context.Background()

	base := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := repo.Record(ctx, Run{
			Bot:        "loginbot",
			Outcome:    OutcomeOK,
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			FinishedAt: base.Add(time.Duration(i)*time.Hour + time.Minute),
		})
		require.NoError(t, err)
	}

	runs, err := repo.Recent(ctx, "loginbot", 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, base.Add(2*time.Hour), runs[0].StartedAt)
	assert.Equal(t, base.Add(time.Hour), runs[1].StartedAt)
}

func TestRunRepo_RecentFiltersByBot(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRunRepo(db)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, repo.Record(ctx, Run{Bot: "loginbot", Outcome: OutcomeOK, StartedAt: now, FinishedAt: now}))
	require.NoError(t, repo.Record(ctx, Run{Bot: "refreshbot", Outcome: OutcomeError, Detail: "timeout", StartedAt: now, FinishedAt: now}))

	runs, err := repo.Recent(ctx, "refreshbot", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, OutcomeError, runs[0].Outcome)
	assert.Equal(t, "timeout", runs[0].Detail)
}

func TestRunRepo_RecentEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRunRepo(db)

	runs, err := repo.Recent(context.Background(), "loginbot", 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRunRepo_RejectsUnknownOutcome(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRunRepo(db)
	now := time.Now()

	err := repo.Record(context.Background(), Run{Bot: "loginbot", Outcome: "maybe", StartedAt: now, FinishedAt: now})
	require.Error(t, err)
}
