package simplify

import (
	"testing"

	"github.com/mpetrov/geogrid"
)

func TestRingDropsInsignificantVertex(t *testing.T) {
	// A near-collinear point at (5, 0.0001) contributes almost no area and
	// should be dropped at a moderate epsilon.
	ring := geogrid.Ring{
		{X: 0, Y: 0}, {X: 5, Y: 0.0001}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0},
	}

	out := Ring(ring, 0.01)
	if len(out) != len(ring)-1 {
		t.Fatalf("expected one vertex dropped, got %d points from %d", len(out), len(ring))
	}
}

func TestRingKeepsSignificantVertices(t *testing.T) {
	ring := geogrid.Ring{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0},
	}
	out := Ring(ring, 1e-9)
	if len(out) != len(ring) {
		t.Fatalf("expected all vertices kept at tiny epsilon, got %d from %d", len(out), len(ring))
	}
}

func TestRingBelowMinSizeUnchanged(t *testing.T) {
	ring := geogrid.Ring{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	out := Ring(ring, 100)
	if len(out) != len(ring) {
		t.Fatalf("expected a too-small ring to be returned unchanged, got %d points", len(out))
	}
}

func TestPolygonSimplifiesHolesIndependently(t *testing.T) {
	p := geogrid.Polygon{
		Exterior: geogrid.Ring{
			{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 20}, {X: 0, Y: 20}, {X: 0, Y: 0},
		},
		Interiors: []geogrid.Ring{
			{{X: 5, Y: 5}, {X: 10, Y: 5.0001}, {X: 15, Y: 5}, {X: 15, Y: 15}, {X: 5, Y: 15}, {X: 5, Y: 5}},
		},
	}
	out := Polygon(p, 0.01)
	if len(out.Interiors[0]) != len(p.Interiors[0])-1 {
		t.Fatalf("expected hole vertex dropped, got %d from %d", len(out.Interiors[0]), len(p.Interiors[0]))
	}
}
