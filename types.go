// Package geogrid is a point-in-region lookup engine: it turns polygon
// corpora (time zones, administrative boundaries) into a compact binary
// artifact and answers "which regions contain this lng/lat" queries in
// microseconds by combining a one-degree integer grid with exact polygon
// containment.
package geogrid

import "fmt"

// RoundInt is the integer cell coordinate type: a floored longitude or
// latitude degree.
type RoundInt = int16

// CellKey identifies one of the 64,800 unit cells tiling
// [-180,180)×[-90,90) at integer degrees.
type CellKey struct {
	X RoundInt
	Y RoundInt
}

// Grid domain bounds.
const (
	gridMinX = -180
	gridMaxX = 180 // exclusive
	gridMinY = -90
	gridMaxY = 90 // exclusive

	gridWidth  = gridMaxX - gridMinX // 360
	gridHeight = gridMaxY - gridMinY // 180

	// CellCount is the number of cells in the full grid domain. Every
	// corpus's lookup must have exactly this many entries.
	CellCount = gridWidth * gridHeight
)

// cellIndex maps a cell to its position in a dense CellCount-length array.
func cellIndex(x, y RoundInt) (int, bool) {
	if x < gridMinX || x >= gridMaxX || y < gridMinY || y >= gridMaxY {
		return 0, false
	}
	return int(x-gridMinX)*gridHeight + int(y-gridMinY), true
}

func cellFromIndex(i int) CellKey {
	x := i / gridHeight
	y := i % gridHeight
	return CellKey{X: RoundInt(x + gridMinX), Y: RoundInt(y + gridMinY)}
}

// ErrKind classifies a fatal decode or corpus error, so callers can
// distinguish truncation/format problems from precision mismatches without
// parsing error strings.
type ErrKind int

const (
	// ErrKindTruncated indicates the input ended before a length-prefixed
	// field could be fully read.
	ErrKindTruncated ErrKind = iota
	// ErrKindUnknownVariant indicates an unrecognized geometry
	// discriminant, artifact magic, or artifact version.
	ErrKindUnknownVariant
	// ErrKindPrecisionMismatch indicates the artifact's float width or
	// endianness does not match this build.
	ErrKindPrecisionMismatch
	// ErrKindMalformedCorpus indicates structurally invalid loaded data: a
	// lookup artifact with the wrong cell count, or a store whose loader
	// failed (see OnceCache.Get).
	ErrKindMalformedCorpus
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindTruncated:
		return "truncated"
	case ErrKindUnknownVariant:
		return "unknown-variant"
	case ErrKindPrecisionMismatch:
		return "precision-mismatch"
	case ErrKindMalformedCorpus:
		return "malformed-corpus"
	default:
		return "unknown"
	}
}

// DecodeError is returned by the codec and artifact readers. Its Kind lets
// callers apply the "fatal, rebuild artifacts" policy uniformly.
type DecodeError struct {
	Kind ErrKind
	Msg  string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("geogrid: %s: %s", e.Kind, e.Msg)
}

func newDecodeErr(kind ErrKind, format string, args ...any) *DecodeError {
	return &DecodeError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
