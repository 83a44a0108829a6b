package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tristep/internal/core/domain"
)

func TestSnapshotStore(t *testing.T) {
	store := NewSnapshotStore()
	ctx := context.Background()

	_, err := store.Get(ctx, domain.CorpusJobs)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.Save(ctx, domain.CorpusSnapshot{Kind: domain.CorpusJobs, Hash: "a", Rows: 3}))
	require.NoError(t, store.Save(ctx, domain.CorpusSnapshot{Kind: domain.CorpusCourses, Hash: "b"}))
	require.NoError(t, store.Save(ctx, domain.CorpusSnapshot{Kind: domain.CorpusJobs, Hash: "c", Rows: 5}))

	snap, err := store.Get(ctx, domain.CorpusJobs)
	require.NoError(t, err)
	assert.Equal(t, "c", snap.Hash)
	assert.Equal(t, 5, snap.Rows)

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, domain.CorpusCourses, all[0].Kind)
}
