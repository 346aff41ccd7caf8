package geogrid

// Interior bounds for the one-candidate fast path: a query point strictly
// inside this box can trust a singleton candidate list without running
// exact containment (spec §4.6). Points in the remaining 1-degree margin
// around the domain edge always fall through to exact containment.
const (
	fastPathInteriorX Float = 179
	fastPathInteriorY Float = 89
)

// Engine is the online query path for one variant's Store: cell narrowing
// plus exact containment, with the fast path gated by the Variant's
// eligibility flag. It holds no state of its own beyond its Store and
// Variant, so it is cheap to construct and safe to share across
// goroutines.
type Engine[A Attributes] struct {
	store   *Store[A]
	variant Variant
}

// NewEngine pairs a Store with the Variant policy governing its queries.
func NewEngine[A Attributes](store *Store[A], variant Variant) *Engine[A] {
	return &Engine[A]{store: store, variant: variant}
}

func floorToCell(f Float) RoundInt {
	i := RoundInt(f)
	if Float(i) > f {
		i--
	}
	return i
}

// Lookup returns every item containing (lng, lat), in candidate order
// (spec §4.6): floor to a cell, fetch its candidates, and either return a
// lone interior candidate directly or filter the candidates by exact
// containment. This is the grid-assisted path; LookupSlow is its
// brute-force reference.
func (e *Engine[A]) Lookup(lng, lat Float) []Item[A] {
	x := floorToCell(lng)
	y := floorToCell(lat)
	candidates := e.store.CandidateIDs(x, y)
	if len(candidates) == 0 {
		return nil
	}

	if e.variant.FastPathEligible && len(candidates) == 1 &&
		lng > -fastPathInteriorX && lng < fastPathInteriorX &&
		lat > -fastPathInteriorY && lat < fastPathInteriorY {
		item, ok := e.store.ItemByID(candidates[0])
		if !ok {
			return nil
		}
		return []Item[A]{item}
	}

	pt := Point{X: lng, Y: lat}
	var out []Item[A]
	for _, id := range candidates {
		item, ok := e.store.ItemByID(id)
		if !ok {
			continue
		}
		if item.Geometry.ContainsPoint(pt) {
			out = append(out, item)
		}
	}
	return out
}

// LookupSlow scans every item and applies exact containment, ignoring the
// grid entirely. It is the correctness reference Lookup is tested against,
// not a production query path (spec §4.6).
func (e *Engine[A]) LookupSlow(lng, lat Float) []Item[A] {
	pt := Point{X: lng, Y: lat}
	var out []Item[A]
	for _, item := range e.store.Items() {
		if item.Geometry.ContainsPoint(pt) {
			out = append(out, item)
		}
	}
	return out
}

// LookupCell returns the raw candidate items for the grid cell (x, y),
// without applying exact containment. Useful for debugging and for tests
// that assert on candidate-list shape directly.
func (e *Engine[A]) LookupCell(x, y RoundInt) []Item[A] {
	candidates := e.store.CandidateIDs(x, y)
	if len(candidates) == 0 {
		return nil
	}
	out := make([]Item[A], 0, len(candidates))
	for _, id := range candidates {
		if item, ok := e.store.ItemByID(id); ok {
			out = append(out, item)
		}
	}
	return out
}

// Items returns the engine's full, ID-ordered item vector.
func (e *Engine[A]) Items() []Item[A] {
	return e.store.Items()
}
