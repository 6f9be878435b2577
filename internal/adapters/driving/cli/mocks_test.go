package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/membridge/internal/core/domain"
	"github.com/custodia-labs/membridge/internal/core/services"
)

// mockSearchService records the last call and returns canned results.
type mockSearchService struct {
	results   []domain.SearchResult
	err       error
	lastQuery string
	lastOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(_ context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.results, m.err
}

// mockArchiveService serves a fixed archive.
type mockArchiveService struct {
	groups   []domain.CategoryGroup
	contents map[string]string
	err      error
}

func (m *mockArchiveService) Files(context.Context) ([]domain.FileItem, error) {
	var out []domain.FileItem
	for _, g := range m.groups {
		out = append(out, g.Files...)
	}
	return out, m.err
}

func (m *mockArchiveService) Categories(context.Context) ([]domain.CategoryGroup, error) {
	return m.groups, m.err
}

func (m *mockArchiveService) Content(_ context.Context, path string) (string, error) {
	c, ok := m.contents[path]
	if !ok {
		return "", domain.ErrNotFound
	}
	return c, nil
}

func (m *mockArchiveService) LastSynced() string {
	return "2026-01-02 09:30"
}

// mockSettingsService keeps settings in memory.
type mockSettingsService struct {
	settings domain.Settings
	sets     map[string]string
}

func (m *mockSettingsService) Get() domain.Settings {
	return m.settings
}

func (m *mockSettingsService) Set(key, value string) error {
	if key != services.KeySearchLimit && key != services.KeyArchiveRoot {
		return domain.ErrInvalidInput
	}
	m.sets[key] = value
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{services.KeyArchiveRoot, services.KeySearchLimit, services.KeyServerAddr, services.KeyWatchEnabled}
}

func (m *mockSettingsService) ConfigPath() string {
	return "/home/test/.membridge/config.toml"
}

// mockRenderer wraps source in a paragraph.
type mockRenderer struct{}

func (mockRenderer) Render(source string) (string, string, error) {
	return "<p>" + source + "</p>\n", "", nil
}

type testEnv struct {
	svc      *Services
	search   *mockSearchService
	archive  *mockArchiveService
	settings *mockSettingsService
	rebuilds int
	opts     Options
}

func testResults() []domain.SearchResult {
	return []domain.SearchResult{
		{Path: "notes/fox", Name: "fox.md", Category: domain.CategoryNotes, Matches: 2, Excerpt: "the quick\nbrown fox jumps over the fox"},
		{Path: "MEMORY", Name: "MEMORY.md", Category: domain.CategoryMemory, Matches: 1, Excerpt: "remember the fox"},
	}
}

func testGroups() []domain.CategoryGroup {
	return []domain.CategoryGroup{
		{Category: domain.CategoryMemory, Label: "Memory", Files: []domain.FileItem{
			{Path: "MEMORY", Name: "MEMORY.md", Category: domain.CategoryMemory,
				LastModified: time.Date(2026, 1, 2, 9, 30, 0, 0, time.UTC), Size: 42},
		}},
		{Category: domain.CategoryDocs, Label: "Documentation"},
	}
}

// setupTestServices installs mock services and resets flag state.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()
	resetFlags()

	env := &testEnv{
		search:  &mockSearchService{results: testResults()},
		archive: &mockArchiveService{groups: testGroups(), contents: map[string]string{"MEMORY": "# Memory\n\nKeep **this**.\n"}},
		settings: &mockSettingsService{
			settings: domain.DefaultSettings(),
			sets:     map[string]string{},
		},
	}
	env.svc = &Services{
		Search:    env.search,
		Archive:   env.archive,
		Settings:  env.settings,
		Renderer:  mockRenderer{},
		PlainText: func(s string) string { return strings.ReplaceAll(strings.TrimPrefix(s, "# "), "**", "") },
		Rebuild: func(context.Context) (int, error) {
			env.rebuilds++
			return 2, nil
		},
		DocumentCount: func() int { return 2 },
		FileURI:       func(path string) string { return "file:///srv/memory/" + path + ".md" },
		PathFromURI: func(uri string) (string, bool) {
			path, ok := strings.CutPrefix(uri, "file:///srv/memory/")
			return strings.TrimSuffix(path, ".md"), ok
		},
	}
	SetFactory(func(opts Options) (*Services, error) {
		env.opts = opts
		return env.svc, nil
	})
	t.Cleanup(func() {
		SetFactory(nil)
		resetFlags()
	})
	return env
}

// resetFlags restores flag defaults. Cobra commands are package globals, so
// values and Changed marks survive between executions.
func resetFlags() {
	verbose, rootFlag, configDir = false, "", ""
	searchLimit, searchJSON, searchCategories = services.DisplayLimit, false, nil
	listJSON, showPlain, showHTML = false, false, false
	serveAddr, serveNoWatch, versionShort = "", false, false
	_ = mcpServeCmd.Flags().Set("port", "0")

	var clear func(cmd *cobra.Command)
	clear = func(cmd *cobra.Command) {
		unmark := func(f *pflag.Flag) { f.Changed = false }
		cmd.Flags().VisitAll(unmark)
		cmd.PersistentFlags().VisitAll(unmark)
		for _, sub := range cmd.Commands() {
			clear(sub)
		}
	}
	clear(rootCmd)
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

func executeContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}

func requireContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		require.Contains(t, out, w)
	}
}
