package osmadmin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mpetrov/geogrid/internal/geojson"
)

func TestParseNameAndLevel(t *testing.T) {
	attrs, err := Parse(geojson.Feature{Properties: map[string]any{
		"name": "United States", "admin_level": 2.0,
	}})
	require.NoError(t, err)
	require.Equal(t, "United States", attrs.Name())
	require.EqualValues(t, 2, attrs.AdminLevel)
}

func TestParseMissingNameErrors(t *testing.T) {
	_, err := Parse(geojson.Feature{Properties: map[string]any{"admin_level": 2.0}})
	require.Error(t, err)
}

func TestParseStringAdminLevel(t *testing.T) {
	attrs, err := Parse(geojson.Feature{Properties: map[string]any{
		"name": "Egypt", "admin_level": "2",
	}})
	require.NoError(t, err)
	require.EqualValues(t, 2, attrs.AdminLevel)
}

func TestWalkSourcesSkipsEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	nonEmpty := filepath.Join(dir, "a.geojson")
	require.NoError(t, os.WriteFile(nonEmpty, []byte(`{"type":"Feature"}`), 0o644))
	empty := filepath.Join(dir, "b.geojson")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.txt"), []byte("ignore me"), 0o644))

	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	nested := filepath.Join(sub, "d.geojson")
	require.NoError(t, os.WriteFile(nested, []byte(`{"type":"Feature"}`), 0o644))

	paths, err := WalkSources(dir)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{nonEmpty, nested}, paths)
}
