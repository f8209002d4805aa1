package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func mustOpen(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAppendAndRecentNewestFirst(t *testing.T) {
	store := mustOpen(t, ":memory:")
	ctx := context.Background()

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	for i, task := range []string{"build", "publish", "lint"} {
		err := store.Append(ctx, Run{
			ID:        task + "-run",
			Task:      task,
			Profile:   "base",
			StartedAt: base.Add(time.Duration(i) * time.Minute),
			Duration:  1500 * time.Millisecond,
			Outcome:   "success",
		})
		require.NoError(t, err)
	}

	runs, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, "lint", runs[0].Task)
	require.Equal(t, "publish", runs[1].Task)
}

func TestRecentReturnsAllWhenFewerThanLimit(t *testing.T) {
	store := mustOpen(t, ":memory:")
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, Run{ID: "only", Task: "build", Profile: "base", StartedAt: time.Now(), Outcome: "failure", Detail: "generator exited 1"}))

	runs, err := store.Recent(ctx, 25)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, "failure", runs[0].Outcome)
	require.Equal(t, "generator exited 1", runs[0].Detail)
}

func TestRunFieldsRoundTrip(t *testing.T) {
	store := mustOpen(t, ":memory:")
	ctx := context.Background()

	in := Run{
		ID:        "3f5c9a",
		Task:      "publish",
		Profile:   "publish",
		StartedAt: time.Date(2026, 1, 2, 3, 4, 5, 600_000_000, time.UTC),
		Duration:  42_300 * time.Millisecond,
		Outcome:   "success",
		Detail:    "",
	}
	require.NoError(t, store.Append(ctx, in))

	runs, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	got := runs[0]
	require.Equal(t, in.ID, got.ID)
	require.Equal(t, in.Task, got.Task)
	require.Equal(t, in.Profile, got.Profile)
	require.Equal(t, in.StartedAt.UnixMilli(), got.StartedAt.UnixMilli())
	require.Equal(t, in.Duration, got.Duration)
	require.Equal(t, in.Outcome, got.Outcome)
	require.Equal(t, in.Detail, got.Detail)
}

func TestOpenCreatesParentAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".blogbuilder", "history.db")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, Run{ID: "a", Task: "build", Profile: "base", StartedAt: time.Now(), Outcome: "success"}))
	require.NoError(t, store.Close())

	reopened := mustOpen(t, path)
	runs, err := reopened.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, "a", runs[0].ID)
}

func TestDuplicateRunIDRejected(t *testing.T) {
	store := mustOpen(t, ":memory:")
	ctx := context.Background()

	run := Run{ID: "dup", Task: "build", Profile: "base", StartedAt: time.Now(), Outcome: "success"}
	require.NoError(t, store.Append(ctx, run))
	require.Error(t, store.Append(ctx, run))
}
