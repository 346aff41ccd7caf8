//go:build doubleprecision

package geogrid

import (
	"encoding/binary"
	"math"
)

// Float is the coordinate precision used throughout the engine, fixed at
// build time by the doubleprecision tag. It must match the precision an
// artifact was encoded with; decoding an artifact built at the other
// precision is a fatal error (see checkHeader in artifact.go).
type Float = float64

const floatWidth = 8

func putFloat(buf []byte, f Float) {
	binary.NativeEndian.PutUint64(buf, math.Float64bits(f))
}

func getFloat(buf []byte) Float {
	return math.Float64frombits(binary.NativeEndian.Uint64(buf))
}
