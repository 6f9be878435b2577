package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_CopiesSeed(t *testing.T) {
	seed := map[string]any{"archive.root": "/srv/memory"}
	store := NewConfigStore(seed)

	seed["archive.root"] = "changed"
	assert.Equal(t, "/srv/memory", store.GetString("archive.root"))

	empty := NewConfigStore(nil)
	_, ok := empty.Get("archive.root")
	assert.False(t, ok)
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore(nil)

	require.NoError(t, store.Set("search.limit", 25))
	require.NoError(t, store.Set("search.limit", 30))

	val, ok := store.Get("search.limit")
	assert.True(t, ok)
	assert.Equal(t, 30, val)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"archive.root":  "memory",
		"search.limit":  int64(20),
		"float.limit":   12.0,
		"watch.enabled": true,
	})

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("archive.root"), "memory"},
		{"string wrong type", store.GetString("search.limit"), ""},
		{"string missing", store.GetString("missing"), ""},
		{"int64", store.GetInt("search.limit"), 20},
		{"float", store.GetInt("float.limit"), 12},
		{"int wrong type", store.GetInt("archive.root"), 0},
		{"int missing", store.GetInt("missing"), 0},
		{"bool", store.GetBool("watch.enabled"), true},
		{"bool wrong type", store.GetBool("archive.root"), false},
		{"bool missing", store.GetBool("missing"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_LoadAndPath(t *testing.T) {
	store := NewConfigStore(nil)
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrent(t *testing.T) {
	store := NewConfigStore(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("search.limit", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("search.limit")
		}()
	}
	wg.Wait()

	_, ok := store.Get("search.limit")
	assert.True(t, ok)
}
