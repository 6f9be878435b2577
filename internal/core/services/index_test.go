package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/membridge/internal/core/domain"
)

func TestIndex_NotReadyUntilBuilt(t *testing.T) {
	idx := NewIndex(&mockDiscovery{}, &mockLoader{})

	assert.False(t, idx.Ready())
	assert.Nil(t, idx.Documents())
	assert.True(t, idx.BuiltAt().IsZero())
}

func TestIndex_Rebuild(t *testing.T) {
	discovery := &mockDiscovery{files: []domain.FileItem{
		file("a", domain.CategoryNotes),
		file("missing", domain.CategoryNotes),
	}}
	loader := &mockLoader{files: map[string]string{"a": "Alpha"}}
	idx := NewIndex(discovery, loader)

	n, err := idx.Rebuild(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, idx.Ready())
	assert.False(t, idx.BuiltAt().IsZero())
	require.Len(t, idx.Documents(), 1)
	assert.Equal(t, "alpha", idx.Documents()[0].Content)
}

func TestIndex_RebuildReplacesWholesale(t *testing.T) {
	discovery := &mockDiscovery{files: []domain.FileItem{file("a", domain.CategoryNotes)}}
	loader := &mockLoader{files: map[string]string{"a": "old"}}
	idx := NewIndex(discovery, loader)
	_, err := idx.Rebuild(context.Background())
	require.NoError(t, err)
	before := idx.Documents()

	discovery.files = []domain.FileItem{file("b", domain.CategoryNotes)}
	loader.files = map[string]string{"b": "new"}
	_, err = idx.Rebuild(context.Background())
	require.NoError(t, err)

	require.Len(t, idx.Documents(), 1)
	assert.Equal(t, "b", idx.Documents()[0].Path)
	assert.Equal(t, "a", before[0].Path, "earlier snapshots stay intact")
}

func TestIndex_RebuildDiscoveryError(t *testing.T) {
	idx := NewIndex(&mockDiscovery{err: errors.New("boom")}, &mockLoader{})

	_, err := idx.Rebuild(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "discover files")
	assert.False(t, idx.Ready())
}

func TestIndex_RebuildWithoutCollaborators(t *testing.T) {
	_, err := NewIndex(nil, nil).Rebuild(context.Background())

	assert.ErrorIs(t, err, domain.ErrArchiveUnavailable)
}

func TestIndex_ConcurrentReadsDuringReplace(t *testing.T) {
	idx := NewIndex(nil, nil)
	idx.Replace(domain.DocumentSet{doc("a", "fox")})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = Search(idx.Documents(), "fox")
		}()
		go func() {
			defer wg.Done()
			idx.Replace(domain.DocumentSet{doc("b", "fox fox")})
		}()
	}
	wg.Wait()

	assert.True(t, idx.Ready())
}
