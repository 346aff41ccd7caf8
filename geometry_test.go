package geogrid

import "testing"

func square(minX, minY, maxX, maxY Float) Ring {
	return Ring{
		{X: minX, Y: minY}, {X: maxX, Y: minY}, {X: maxX, Y: maxY}, {X: minX, Y: maxY}, {X: minX, Y: minY},
	}
}

func TestRingContainsPoint(t *testing.T) {
	ring := square(0, 0, 10, 10)

	cases := []struct {
		name string
		p    Point
		want bool
	}{
		{"center", Point{X: 5, Y: 5}, true},
		{"outside", Point{X: 20, Y: 20}, false},
		{"just inside", Point{X: 0.1, Y: 0.1}, true},
	}
	for _, c := range cases {
		if got := ring.containsPoint(c.p); got != c.want {
			t.Errorf("%s: containsPoint(%v) = %v, want %v", c.name, c.p, got, c.want)
		}
	}
}

func TestPolygonHole(t *testing.T) {
	p := Polygon{
		Exterior:  square(0, 0, 10, 10),
		Interiors: []Ring{square(2, 2, 4, 4)},
	}
	if !p.ContainsPoint(Point{X: 1, Y: 1}) {
		t.Fatal("expected point outside the hole to be contained")
	}
	if p.ContainsPoint(Point{X: 3, Y: 3}) {
		t.Fatal("expected point inside the hole to be excluded")
	}
}

func TestPolygonIntersectsRect(t *testing.T) {
	p := Polygon{Exterior: square(0, 0, 10, 10)}

	if !p.IntersectsRect(Rect{MinX: 5, MinY: 5, MaxX: 15, MaxY: 15}) {
		t.Fatal("expected overlapping rect to intersect")
	}
	if !p.IntersectsRect(Rect{MinX: 1, MinY: 1, MaxX: 2, MaxY: 2}) {
		t.Fatal("expected rect wholly inside the polygon to intersect")
	}
	if p.IntersectsRect(Rect{MinX: 20, MinY: 20, MaxX: 21, MaxY: 21}) {
		t.Fatal("expected disjoint rect not to intersect")
	}
}

func TestMultiPolygonContainsPoint(t *testing.T) {
	mp := MultiPolygon{Polygons: []Polygon{
		{Exterior: square(0, 0, 1, 1)},
		{Exterior: square(10, 10, 11, 11)},
	}}
	if !mp.ContainsPoint(Point{X: 10.5, Y: 10.5}) {
		t.Fatal("expected point in second polygon to be contained")
	}
	if mp.ContainsPoint(Point{X: 5, Y: 5}) {
		t.Fatal("expected point between polygons to be excluded")
	}
}
