package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestNavCmd(t *testing.T) {
	assert.Equal(t, "contact\n", execute(t, "nav", "how", "do", "I", "reach", "out"))
	assert.Equal(t, "no matching section\n", execute(t, "nav", "xyzzy"))
}

func TestVersionCmd(t *testing.T) {
	assert.Equal(t, "folioctl version dev\n", execute(t, "version"))
}

func TestMapCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.geojson")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {}, "geometry": {"type": "Polygon", "coordinates": [[[0,0],[10,0],[10,10],[0,10],[0,0]]]}},
			{"type": "Feature", "properties": {"location": "London"}, "geometry": {"type": "Point", "coordinates": [5,2]}}
		]
	}`), 0o644))

	out := execute(t, "map", path)
	assert.Equal(t, "path: M 50,750 L 750,750 L 750,50 L 50,50 L 50,750 Z\nLondon: 400.0,610.0\n", out)
}

func TestSkillsCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills-graph.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"nodes": [
			{"id": "me", "label": "Alistair", "type": "root"},
			{"id": "backend", "label": "Backend", "type": "category"},
			{"id": "go", "label": "Go", "type": "skill"}
		],
		"edges": [
			{"source": "me", "target": "backend"},
			{"source": "backend", "target": "go"}
		]
	}`), 0o644))

	assert.Equal(t, "- Alistair\n  - Backend\n    - Go\n", execute(t, "skills", path))
	assert.Equal(t, "- Alistair\n  + Backend\n", execute(t, "skills", path, "--collapse", "backend"))
}
