package geogrid

// Point is a WGS84 (longitude, latitude) pair in degrees.
type Point struct {
	X Float
	Y Float
}

// Ring is a closed sequence of points; the spec does not require an
// explicit closing duplicate, but the ray-casting test below handles both
// forms identically.
type Ring []Point

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX, MinY, MaxX, MaxY Float
}

// Intersects reports whether r and other share any area, including
// touching edges.
func (r Rect) Intersects(other Rect) bool {
	return r.MinX <= other.MaxX && r.MaxX >= other.MinX &&
		r.MinY <= other.MaxY && r.MaxY >= other.MinY
}

func (r Rect) contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

func emptyRect() Rect {
	return Rect{MinX: maxFloat(), MinY: maxFloat(), MaxX: minFloat(), MaxY: minFloat()}
}

// Sentinel bounds for an "empty" rect accumulator. Comfortably outside any
// WGS84 coordinate (±180/±90) while remaining representable in float32.
const sentinelBound Float = 1e18

func maxFloat() Float { return sentinelBound }
func minFloat() Float { return -sentinelBound }

func (r Rect) union(p Point) Rect {
	if p.X < r.MinX {
		r.MinX = p.X
	}
	if p.X > r.MaxX {
		r.MaxX = p.X
	}
	if p.Y < r.MinY {
		r.MinY = p.Y
	}
	if p.Y > r.MaxY {
		r.MaxY = p.Y
	}
	return r
}

// Envelope returns the ring's axis-aligned bounding box.
func (ring Ring) Envelope() Rect {
	box := emptyRect()
	for _, p := range ring {
		box = box.union(p)
	}
	return box
}

// containsPoint applies the standard even-odd ray-casting rule.
func (ring Ring) containsPoint(p Point) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		pi, pj := ring[i], ring[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			xCross := (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if p.X < xCross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// intersectsRect tests a ring (as a closed polyline) against an
// axis-aligned rectangle: bbox reject, then vertex-in-rect,
// rect-corner-in-ring, or edge/edge crossing.
func (ring Ring) intersectsRect(r Rect) bool {
	n := len(ring)
	if n == 0 {
		return false
	}
	if !ring.Envelope().Intersects(r) {
		return false
	}

	for _, p := range ring {
		if r.contains(p) {
			return true
		}
	}

	corners := [4]Point{
		{X: r.MinX, Y: r.MinY}, {X: r.MaxX, Y: r.MinY},
		{X: r.MaxX, Y: r.MaxY}, {X: r.MinX, Y: r.MaxY},
	}
	if ring.containsPoint(corners[0]) {
		return true
	}

	j := n - 1
	for i := 0; i < n; i++ {
		a, b := ring[j], ring[i]
		j = i
		for k := 0; k < 4; k++ {
			c, d := corners[k], corners[(k+1)%4]
			if segmentsIntersect(a, b, c, d) {
				return true
			}
		}
	}
	return false
}

func orientation(a, b, c Point) int {
	val := (b.Y-a.Y)*(c.X-b.X) - (b.X-a.X)*(c.Y-b.Y)
	switch {
	case val > 0:
		return 1
	case val < 0:
		return -1
	default:
		return 0
	}
}

func onSegment(a, b, p Point) bool {
	return p.X <= max2(a.X, b.X) && p.X >= min2(a.X, b.X) &&
		p.Y <= max2(a.Y, b.Y) && p.Y >= min2(a.Y, b.Y)
}

func max2(a, b Float) Float {
	if a > b {
		return a
	}
	return b
}

func min2(a, b Float) Float {
	if a < b {
		return a
	}
	return b
}

// segmentsIntersect is the standard orientation-based segment intersection
// test, including the collinear-overlap special cases.
func segmentsIntersect(p1, q1, p2, q2 Point) bool {
	o1 := orientation(p1, q1, p2)
	o2 := orientation(p1, q1, q2)
	o3 := orientation(p2, q2, p1)
	o4 := orientation(p2, q2, q1)

	if o1 != o2 && o3 != o4 {
		return true
	}
	if o1 == 0 && onSegment(p1, q1, p2) {
		return true
	}
	if o2 == 0 && onSegment(p1, q1, q2) {
		return true
	}
	if o3 == 0 && onSegment(p2, q2, p1) {
		return true
	}
	if o4 == 0 && onSegment(p2, q2, q1) {
		return true
	}
	return false
}

// Polygon is one exterior ring plus zero or more interior (hole) rings.
type Polygon struct {
	Exterior  Ring
	Interiors []Ring
}

// Envelope returns the polygon's bounding box (the exterior ring's, since
// holes never extend it).
func (p Polygon) Envelope() Rect {
	return p.Exterior.Envelope()
}

// ContainsPoint is true when pt is inside the exterior ring and outside
// every interior ring.
func (p Polygon) ContainsPoint(pt Point) bool {
	if !p.Exterior.containsPoint(pt) {
		return false
	}
	for _, hole := range p.Interiors {
		if hole.containsPoint(pt) {
			return false
		}
	}
	return true
}

// IntersectsRect is true when the polygon's boundary meets r, or r lies
// entirely within the polygon (minus holes), or the polygon lies entirely
// within r.
func (p Polygon) IntersectsRect(r Rect) bool {
	if !p.Envelope().Intersects(r) {
		return false
	}
	if p.Exterior.intersectsRect(r) {
		return true
	}
	// Exterior ring doesn't cross r's boundary: either r is wholly inside
	// the polygon (check one corner) or wholly outside.
	corner := Point{X: r.MinX, Y: r.MinY}
	if !p.Exterior.containsPoint(corner) {
		return false
	}
	for _, hole := range p.Interiors {
		if hole.intersectsRect(r) {
			return true
		}
		if hole.containsPoint(corner) {
			return false
		}
	}
	return true
}

// MultiPolygon is an ordered collection of polygons.
type MultiPolygon struct {
	Polygons []Polygon
}

func (mp MultiPolygon) Envelope() Rect {
	box := emptyRect()
	for _, p := range mp.Polygons {
		e := p.Envelope()
		box = box.union(Point{X: e.MinX, Y: e.MinY}).union(Point{X: e.MaxX, Y: e.MaxY})
	}
	return box
}

func (mp MultiPolygon) ContainsPoint(pt Point) bool {
	for _, p := range mp.Polygons {
		if p.ContainsPoint(pt) {
			return true
		}
	}
	return false
}

func (mp MultiPolygon) IntersectsRect(r Rect) bool {
	for _, p := range mp.Polygons {
		if p.IntersectsRect(r) {
			return true
		}
	}
	return false
}

// GeometryKind discriminates the two geometry shapes the query path
// accepts. Values must match the codec's on-disk discriminant (codec.go).
type GeometryKind uint32

const (
	GeometryPolygon GeometryKind = iota
	GeometryMultiPolygon
)

// Geometry is a polygon or multi-polygon in WGS84 degrees. Line-string
// variants exist upstream (admin boundaries) but never reach this type:
// the query path only ever holds polygonal geometry.
type Geometry struct {
	Kind    GeometryKind
	Polygon Polygon
	Multi   MultiPolygon
}

func NewPolygonGeometry(p Polygon) Geometry {
	return Geometry{Kind: GeometryPolygon, Polygon: p}
}

func NewMultiPolygonGeometry(mp MultiPolygon) Geometry {
	return Geometry{Kind: GeometryMultiPolygon, Multi: mp}
}

func (g Geometry) Envelope() Rect {
	if g.Kind == GeometryMultiPolygon {
		return g.Multi.Envelope()
	}
	return g.Polygon.Envelope()
}

// ContainsPoint is the exact containment predicate used to confirm grid
// candidates (spec §4.6): ray-casting with correct hole handling.
func (g Geometry) ContainsPoint(p Point) bool {
	if g.Kind == GeometryMultiPolygon {
		return g.Multi.ContainsPoint(p)
	}
	return g.Polygon.ContainsPoint(p)
}

// IntersectsRect is the predicate the grid builder uses to decide whether
// an item belongs in a given cell's candidate list.
func (g Geometry) IntersectsRect(r Rect) bool {
	if g.Kind == GeometryMultiPolygon {
		return g.Multi.IntersectsRect(r)
	}
	return g.Polygon.IntersectsRect(r)
}
