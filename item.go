package geogrid

import "bytes"

// Attributes is the per-variant payload attached to every Item: the NED
// timezone record, the OSM timezone record, or the OSM admin-boundary
// record (spec §4.2). Each corpus supplies its own type satisfying this
// interface, the Go analogue of the trait-object variant dispatch in the
// source model.
type Attributes interface {
	// Name is the attribute set's human-readable identifier. GeoJSON
	// export and the CLIs render per-variant fields directly and do not
	// call it.
	Name() string
}

// AttributeCodec encodes and decodes a variant's Attributes to and from the
// artifact's binary format. Implementations live in internal/variant/*,
// one per corpus.
type AttributeCodec[A Attributes] interface {
	// Encode appends a's binary encoding to buf.
	Encode(buf *bytes.Buffer, a A)
	// Decode reads one A starting at the cursor's current position.
	Decode(c *Cursor) (A, error)
}

// Item is one polygon (or multi-polygon) record: its geometry plus its
// variant-specific attributes. ID is the item's position in the variant's
// dense item array, the same value stored in every grid cell's candidate
// list.
type Item[A Attributes] struct {
	ID       uint32
	Geometry Geometry
	Data     A
}
