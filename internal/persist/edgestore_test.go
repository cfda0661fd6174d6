package persist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planfold/sched/internal/depgraph"
)

func openTestStore(t *testing.T) *EdgeStore {
	t.Helper()
	store, err := Open(Config{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestEdgeStore_RoundTrip(t *testing.T) {
	store := openTestStore(t)

	edges := []depgraph.Edge{
		{ID: "e1", Predecessor: "a", Successor: "b", Type: depgraph.FinishToStart, LagDays: 0},
		{ID: "e2", Predecessor: "b", Successor: "c", Type: depgraph.StartToFinish, LagDays: -3},
	}
	require.NoError(t, store.SaveProject("p1", edges))

	loaded, err := store.LoadProject("p1")
	require.NoError(t, err)
	assert.Equal(t, edges, loaded)
}

func TestEdgeStore_MissingProject(t *testing.T) {
	store := openTestStore(t)

	loaded, err := store.LoadProject("unknown")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestEdgeStore_OverwriteReplacesEdgeSet(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SaveProject("p1", []depgraph.Edge{
		{ID: "e1", Predecessor: "a", Successor: "b"},
		{ID: "e2", Predecessor: "b", Successor: "c"},
	}))
	require.NoError(t, store.SaveProject("p1", []depgraph.Edge{
		{ID: "e3", Predecessor: "x", Successor: "y", Type: depgraph.FinishToFinish, LagDays: 1},
	}))

	loaded, err := store.LoadProject("p1")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "e3", loaded[0].ID)
}

func TestEdgeStore_ProjectsAreIsolated(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SaveProject("p1", []depgraph.Edge{
		{ID: "e1", Predecessor: "a", Successor: "b"},
	}))

	loaded, err := store.LoadProject("p2")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestEdgeStore_OnDisk(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(Config{Path: dir, SyncWrites: true})
	require.NoError(t, err)
	require.NoError(t, store.SaveProject("p1", []depgraph.Edge{
		{ID: "e1", Predecessor: "a", Successor: "b"},
	}))
	require.NoError(t, store.Close())

	reopened, err := Open(Config{Path: dir})
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.LoadProject("p1")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "a", loaded[0].Predecessor)
}
