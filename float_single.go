//go:build !doubleprecision

package geogrid

import (
	"encoding/binary"
	"math"
)

// Float is the coordinate precision used throughout the engine. Single
// precision is the default, matching the NED/OSM corpora's source precision;
// build with -tags doubleprecision to switch the whole module to float64.
type Float = float32

const floatWidth = 4

// putFloat writes f into buf (which must be at least floatWidth bytes) in
// the host's native byte order, the same order stamped into every
// artifact's header.
func putFloat(buf []byte, f Float) {
	binary.NativeEndian.PutUint32(buf, math.Float32bits(f))
}

// getFloat reads a Float from buf (at least floatWidth bytes).
func getFloat(buf []byte) Float {
	return math.Float32frombits(binary.NativeEndian.Uint32(buf))
}
