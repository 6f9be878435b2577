package services

import (
	"context"
	"time"

	"github.com/custodia-labs/membridge/internal/core/domain"
)

// mockLoader implements driven.ContentLoader over an in-memory map.
type mockLoader struct {
	files map[string]string
	calls []string
}

func (m *mockLoader) Load(path string) (string, error) {
	m.calls = append(m.calls, path)
	content, ok := m.files[path]
	if !ok {
		return "", domain.ErrNotFound
	}
	return content, nil
}

// mockDiscovery implements driven.FileDiscovery for testing.
type mockDiscovery struct {
	files    []domain.FileItem
	modified time.Time
	err      error
}

func (m *mockDiscovery) List(_ context.Context) ([]domain.FileItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.files, nil
}

func (m *mockDiscovery) LastModified(_ context.Context) (time.Time, error) {
	if m.err != nil {
		return time.Time{}, m.err
	}
	return m.modified, nil
}

func file(path string, cat domain.Category) domain.FileItem {
	name := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			name = path[i+1:]
			break
		}
	}
	return domain.FileItem{Path: path, Name: name + ".md", Category: cat}
}

// mockConfigStore implements driven.ConfigStore for testing.
type mockConfigStore struct {
	data   map[string]any
	setErr error
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{data: make(map[string]any)}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	s, _ := m.data[key].(string)
	return s
}

func (m *mockConfigStore) GetInt(key string) int {
	switch v := m.data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	default:
		return 0
	}
}

func (m *mockConfigStore) GetBool(key string) bool {
	b, _ := m.data[key].(bool)
	return b
}

func (m *mockConfigStore) Set(key string, value any) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *mockConfigStore) Load() error  { return nil }
func (m *mockConfigStore) Path() string { return "/tmp/membridge/config.toml" }
