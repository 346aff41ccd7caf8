// Package simplify implements Visvalingam-Whyatt polygon decimation
// (https://bost.ocks.org/mike/simplify/): repeatedly drop the vertex whose
// removal changes the enclosed area least, until every remaining vertex's
// effective area exceeds epsilon.
package simplify

import (
	"container/heap"

	"github.com/mpetrov/geogrid"
)

// Geometry simplifies a polygon or multi-polygon to epsilon. Geometries
// that cannot be meaningfully simplified (degenerate rings, or anything
// below the minimum ring size) are returned unchanged, matching the spec's
// "returned unchanged" fallback rather than erroring.
func Geometry(g geogrid.Geometry, epsilon geogrid.Float) geogrid.Geometry {
	switch g.Kind {
	case geogrid.GeometryMultiPolygon:
		polys := make([]geogrid.Polygon, len(g.Multi.Polygons))
		for i, p := range g.Multi.Polygons {
			polys[i] = Polygon(p, epsilon)
		}
		return geogrid.NewMultiPolygonGeometry(geogrid.MultiPolygon{Polygons: polys})
	default:
		return geogrid.NewPolygonGeometry(Polygon(g.Polygon, epsilon))
	}
}

// Polygon simplifies the exterior and every interior ring independently.
func Polygon(p geogrid.Polygon, epsilon geogrid.Float) geogrid.Polygon {
	out := geogrid.Polygon{
		Exterior:  Ring(p.Exterior, epsilon),
		Interiors: make([]geogrid.Ring, len(p.Interiors)),
	}
	for i, hole := range p.Interiors {
		out.Interiors[i] = Ring(hole, epsilon)
	}
	return out
}

// minRingSize is the smallest ring Ring will attempt to simplify; a bare
// triangle or anything shorter is returned as-is. A closed triangle (three
// points plus its closing duplicate) passes this check but still keeps
// every vertex, since runVW never reduces a ring below three points.
const minRingSize = 4

// Ring runs Visvalingam-Whyatt on a single ring. Rings too small to
// simplify are returned unchanged, per spec §4.3.
func Ring(ring geogrid.Ring, epsilon geogrid.Float) geogrid.Ring {
	n := len(ring)
	if n < minRingSize || epsilon <= 0 {
		return ring
	}

	closed := ring[0] == ring[n-1]
	pts := ring
	if closed {
		pts = ring[:n-1]
	}
	m := len(pts)
	if m < 3 {
		return ring
	}

	kept := runVW(pts, epsilon)
	if len(kept) < 3 {
		// Degenerate result: keep the original rather than emit an
		// invalid ring.
		return ring
	}

	out := make(geogrid.Ring, 0, len(kept)+1)
	out = append(out, kept...)
	if closed {
		out = append(out, kept[0])
	}
	return out
}

type vwNode struct {
	pt       geogrid.Point
	area     geogrid.Float
	prev, next int // indices into the node slice, or -1
	index    int // heap index, maintained by container/heap
	removed  bool
}

type vwHeap []*vwNode

func (h vwHeap) Len() int            { return len(h) }
func (h vwHeap) Less(i, j int) bool  { return h[i].area < h[j].area }
func (h vwHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *vwHeap) Push(x any) {
	node := x.(*vwNode)
	node.index = len(*h)
	*h = append(*h, node)
}
func (h *vwHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[:n-1]
	return node
}

func triangleArea(a, b, c geogrid.Point) geogrid.Float {
	area := (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
	if area < 0 {
		area = -area
	}
	return area / 2
}

// runVW performs the decimation on an open (non-closed) point sequence and
// returns the surviving points in their original order. The first and last
// points are never removed, matching the standard VW treatment of
// endpoints as structurally significant.
func runVW(pts []geogrid.Point, epsilon geogrid.Float) []geogrid.Point {
	n := len(pts)
	nodes := make([]*vwNode, n)
	for i, p := range pts {
		nodes[i] = &vwNode{pt: p, prev: i - 1, next: i + 1}
	}
	nodes[0].prev = -1
	nodes[n-1].next = -1

	h := make(vwHeap, 0, n)
	for i := 1; i < n-1; i++ {
		node := nodes[i]
		node.area = triangleArea(nodes[node.prev].pt, node.pt, nodes[node.next].pt)
		h = append(h, node)
	}
	heap.Init(&h)

	remaining := n
	minSurvivors := 3
	for h.Len() > 0 && remaining > minSurvivors {
		node := heap.Pop(&h).(*vwNode)
		if node.area > epsilon {
			break
		}
		node.removed = true
		remaining--

		prev := nodes[node.prev]
		next := nodes[node.next]
		prev.next = node.next
		next.prev = node.prev

		if prev.prev != -1 {
			prev.area = triangleArea(nodes[prev.prev].pt, prev.pt, nodes[prev.next].pt)
			heap.Fix(&h, prev.index)
		}
		if next.next != -1 {
			next.area = triangleArea(nodes[next.prev].pt, next.pt, nodes[next.next].pt)
			heap.Fix(&h, next.index)
		}
	}

	out := make([]geogrid.Point, 0, remaining)
	for _, node := range nodes {
		if !node.removed {
			out = append(out, node.pt)
		}
	}
	return out
}
