package geojson

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mpetrov/geogrid"
)

const samplePolygonFeature = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "box"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[0,0],[10,0],[10,10],[0,10],[0,0]]]
      }
    }
  ]
}`

func TestParseFeatureCollection(t *testing.T) {
	features, err := ParseFeatureCollection([]byte(samplePolygonFeature))
	require.NoError(t, err)
	require.Len(t, features, 1)
	require.Equal(t, "box", features[0].Properties["name"])
	require.Equal(t, geogrid.GeometryPolygon, features[0].Geometry.Kind)
	require.True(t, features[0].Geometry.ContainsPoint(geogrid.Point{X: 5, Y: 5}))
}

func TestRoundTripThroughFeatureCollection(t *testing.T) {
	features, err := ParseFeatureCollection([]byte(samplePolygonFeature))
	require.NoError(t, err)

	data, err := BuildFeatureCollection(features)
	require.NoError(t, err)

	again, err := ParseFeatureCollection(data)
	require.NoError(t, err)
	require.Len(t, again, 1)
	require.Equal(t, features[0].Geometry.Envelope(), again[0].Geometry.Envelope())
}

func TestParseSingleFeature(t *testing.T) {
	const raw = `{"type":"Feature","properties":{"name":"solo"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}}`
	f, err := ParseSingleFeature([]byte(raw))
	require.NoError(t, err)
	require.Equal(t, "solo", f.Properties["name"])
}
