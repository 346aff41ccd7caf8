package osmtz

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mpetrov/geogrid/internal/geojson"
)

func TestParseRequiresTzid(t *testing.T) {
	_, err := Parse(geojson.Feature{Properties: map[string]any{}})
	require.Error(t, err)

	attrs, err := Parse(geojson.Feature{Properties: map[string]any{"tzid": "Europe/Paris"}})
	require.NoError(t, err)
	require.Equal(t, "Europe/Paris", attrs.Name())
}

func TestReadZipSourceTakesFirstEntry(t *testing.T) {
	var zbuf bytes.Buffer
	w := zip.NewWriter(&zbuf)
	f, err := w.Create("combined-shapefile.json")
	require.NoError(t, err)
	_, err = f.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := ReadZipSource(zbuf.Bytes())
	require.NoError(t, err)
	require.Contains(t, string(data), "FeatureCollection")
}
