package portfolio

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/folio/internal/metrics"
)

func TestStore_Load(t *testing.T) {
	s := NewStore(writeFixtures(t), nil, nil)
	require.NoError(t, s.Load())

	p, err := s.Profile()
	require.NoError(t, err)
	assert.Equal(t, "Alistair", p.Basics.Name)
	assert.Len(t, p.Experience, 2)

	projects, err := s.Projects()
	require.NoError(t, err)
	assert.Len(t, projects.Projects, 2)
	require.Len(t, projects.Featured(), 1)
	assert.Equal(t, "p1", projects.Featured()[0].ID)

	g, err := s.SkillsGraph()
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 3)
	assert.Equal(t, "backend->go", g.Edges[1].ID)
}

func TestStore_NotLoaded(t *testing.T) {
	s := NewStore(t.TempDir(), nil, nil)

	_, err := s.Profile()
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = s.Projects()
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = s.SkillsGraph()
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestStore_MissingSkillsGraphIsTolerated(t *testing.T) {
	dir := writeFixtures(t)
	require.NoError(t, os.Remove(filepath.Join(dir, SkillsGraphFile)))

	s := NewStore(dir, nil, nil)
	require.NoError(t, s.Load())

	_, err := s.SkillsGraph()
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestStore_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ProfileFile, `{"basics": {}}`)
	writeFile(t, dir, ProjectsFile, `not json`)

	s := NewStore(dir, nil, nil)
	err := s.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load profile")
	assert.Contains(t, err.Error(), "failed to load projects")
}

func TestStore_ReloadKeepsLastGoodCopy(t *testing.T) {
	dir := writeFixtures(t)
	collector := metrics.NewCollector("test")
	s := NewStore(dir, nil, collector)
	require.NoError(t, s.Load())

	writeFile(t, dir, ProfileFile, `{broken`)
	require.Error(t, s.Reload(ProfileFile))

	p, err := s.Profile()
	require.NoError(t, err)
	assert.Equal(t, "Alistair", p.Basics.Name)

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.DataReloads.WithLabelValues(ProfileFile, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.DataReloads.WithLabelValues(ProfileFile, "error")))
}

func TestStore_ReloadUnknownDocument(t *testing.T) {
	s := NewStore(writeFixtures(t), nil, nil)
	writeFile(t, s.Dir(), "other.json", `{}`)
	assert.Error(t, s.Reload("other.json"))
}

func TestStore_SkillsSource(t *testing.T) {
	s := NewStore(writeFixtures(t), nil, nil)
	require.NoError(t, s.Load())

	g, err := s.SkillsSource().Load(context.Background())
	require.NoError(t, err)

	// Callers get a copy.
	g.Nodes[0].Label = "changed"
	again, err := s.SkillsGraph()
	require.NoError(t, err)
	assert.Equal(t, "Alistair", again.Nodes[0].Label)
}

func TestStore_Watch(t *testing.T) {
	dir := writeFixtures(t)
	s := NewStore(dir, nil, nil)
	require.NoError(t, s.Load())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	writeFile(t, dir, ProfileFile, `{"basics": {"name": "Ada"}}`)

	assert.Eventually(t, func() bool {
		p, err := s.Profile()
		return err == nil && p.Basics.Name == "Ada"
	}, 3*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestStore_LoadShippedData(t *testing.T) {
	s := NewStore(filepath.Join("..", "..", "data"), nil, nil)
	require.NoError(t, s.Load())

	g, err := s.SkillsGraph()
	require.NoError(t, err)
	assert.NotEmpty(t, g.Nodes)
}
