package geogrid

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestGeometryRoundTrip(t *testing.T) {
	geoms := []Geometry{
		NewPolygonGeometry(Polygon{
			Exterior: Ring{{X: -10, Y: -10}, {X: 10, Y: -10}, {X: 10, Y: 10}, {X: -10, Y: 10}, {X: -10, Y: -10}},
			Interiors: []Ring{
				{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1}},
			},
		}),
		NewMultiPolygonGeometry(MultiPolygon{Polygons: []Polygon{
			{Exterior: Ring{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}}},
			{Exterior: Ring{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 6}, {X: 5, Y: 5}}},
		}}),
	}

	for i, g := range geoms {
		var buf bytes.Buffer
		EncodeGeometry(&buf, g)

		c := NewCursor(buf.Bytes())
		got, err := c.DecodeGeometry()
		require.NoError(t, err)

		if diff := cmp.Diff(g, got, cmp.Comparer(func(a, b Ring) bool {
			if len(a) != len(b) {
				return false
			}
			for i := range a {
				if a[i] != b[i] {
					return false
				}
			}
			return true
		})); diff != "" {
			t.Errorf("geometry %d round-trip mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestIDListRoundTrip(t *testing.T) {
	ids := []uint32{0, 1, 2, 100, 1 << 20}

	var buf bytes.Buffer
	EncodeIDList(&buf, ids)

	c := NewCursor(buf.Bytes())
	got, err := c.DecodeIDList()
	require.NoError(t, err)
	require.Equal(t, ids, got)
}

func TestDecodeGeometryTruncated(t *testing.T) {
	var buf bytes.Buffer
	EncodeGeometry(&buf, NewPolygonGeometry(samplePolygonFull()))

	truncated := buf.Bytes()[:len(buf.Bytes())-4]
	c := NewCursor(truncated)
	_, err := c.DecodeGeometry()
	require.Error(t, err)

	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
}

func samplePolygonFull() Polygon {
	return Polygon{Exterior: Ring{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}}}
}
