package ned

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mpetrov/geogrid"
	"github.com/mpetrov/geogrid/internal/geojson"
)

func TestParseKnownFields(t *testing.T) {
	id := "America/Los_Angeles"
	feature := geojson.Feature{
		Properties: map[string]any{
			"tz_name1st": id,
			"places":     "Los Angeles, Vancouver",
			"dst_places": "Vancouver",
			"time_zone":  "UTC-8:00",
			"zone":       -8.0,
		},
	}

	attrs, err := Parse(feature)
	require.NoError(t, err)
	require.NotNil(t, attrs.Identifier)
	require.Equal(t, id, *attrs.Identifier)
	require.Equal(t, "Los Angeles, Vancouver", attrs.Places)
	require.Equal(t, id, attrs.Name())
	require.EqualValues(t, -8*3600, attrs.RawOffsetSeconds)
}

func TestParseMissingIdentifierFallsBackToPlaces(t *testing.T) {
	feature := geojson.Feature{Properties: map[string]any{"places": "International Waters"}}
	attrs, err := Parse(feature)
	require.NoError(t, err)
	require.Nil(t, attrs.Identifier)
	require.Equal(t, "International Waters", attrs.Name())
}

func TestCodecRoundTrip(t *testing.T) {
	id := "America/Denver"
	attrs := Attrs{
		Identifier:       &id,
		Places:           "Denver",
		DstPlaces:        "Denver",
		OffsetStr:        "UTC-7:00",
		ZoneHours:        -7,
		RawOffsetSeconds: -7 * 3600,
	}

	var buf bytes.Buffer
	Codec{}.Encode(&buf, attrs)

	c := geogrid.NewCursor(buf.Bytes())
	got, err := Codec{}.Decode(c)
	require.NoError(t, err)
	require.Equal(t, attrs.Places, got.Places)
	require.Equal(t, *attrs.Identifier, *got.Identifier)
	require.Equal(t, attrs.RawOffsetSeconds, got.RawOffsetSeconds)
}
