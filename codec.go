package geogrid

import (
	"bytes"
	"encoding/binary"
	"math"
	"unsafe"
)

// Binary layout constants (spec §4.1, §6).
const (
	wordSize = 4 // uint32 words for discriminants, lengths, and ids

	discPolygon      uint32 = 0
	discMultiPolygon uint32 = 1
)

func hostIsLittleEndian() bool {
	var x uint16 = 1
	b := (*[2]byte)(unsafe.Pointer(&x))
	return b[0] == 1
}

// endiannessByte is stamped into every artifact header: 0 for little-endian,
// 1 for big-endian, matching the build's host architecture.
func endiannessByte() byte {
	if hostIsLittleEndian() {
		return 0
	}
	return 1
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [wordSize]byte
	binary.NativeEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

// --- Encoding ---

func encodeRing(buf *bytes.Buffer, ring Ring) {
	writeU32(buf, uint32(len(ring)))
	coord := make([]byte, floatWidth)
	for _, p := range ring {
		putFloat(coord, p.X)
		buf.Write(coord)
		putFloat(coord, p.Y)
		buf.Write(coord)
	}
}

func encodePolygonBody(buf *bytes.Buffer, p Polygon) {
	encodeRing(buf, p.Exterior)
	writeU32(buf, uint32(len(p.Interiors)))
	for _, hole := range p.Interiors {
		encodeRing(buf, hole)
	}
}

// EncodeGeometry appends g's binary encoding to buf: a discriminant word,
// then the polygon or multi-polygon body (spec §4.1).
func EncodeGeometry(buf *bytes.Buffer, g Geometry) {
	switch g.Kind {
	case GeometryMultiPolygon:
		writeU32(buf, discMultiPolygon)
		writeU32(buf, uint32(len(g.Multi.Polygons)))
		for _, p := range g.Multi.Polygons {
			encodePolygonBody(buf, p)
		}
	default:
		writeU32(buf, discPolygon)
		encodePolygonBody(buf, g.Polygon)
	}
}

// EncodeIDList appends a length-prefixed array of dense item ids, as used
// for a single grid cell's candidate list.
func EncodeIDList(buf *bytes.Buffer, ids []uint32) {
	writeU32(buf, uint32(len(ids)))
	var b [wordSize]byte
	for _, id := range ids {
		binary.NativeEndian.PutUint32(b[:], id)
		buf.Write(b[:])
	}
}

// --- Decoding ---

// Cursor walks a decode buffer, tracking the offset so callers can decide
// whether the zero-copy alias path is legal at each point (it requires
// offset alignment to the float width).
type Cursor struct {
	data []byte
	off  int
}

func (c *Cursor) remaining() int { return len(c.data) - c.off }

func (c *Cursor) readU32() (uint32, error) {
	if c.remaining() < wordSize {
		return 0, newDecodeErr(ErrKindTruncated, "expected %d more bytes for a word, have %d", wordSize, c.remaining())
	}
	v := binary.NativeEndian.Uint32(c.data[c.off:])
	c.off += wordSize
	return v, nil
}

// aligned reports whether the cursor's current absolute position is
// aligned for direct reinterpretation as []Point.
func (c *Cursor) aligned() bool {
	if len(c.data) == 0 {
		return false
	}
	addr := uintptr(unsafe.Pointer(&c.data[0])) + uintptr(c.off)
	return addr%uintptr(floatWidth) == 0
}

// readRing decodes a ring. When the cursor is aligned and the artifact's
// endianness already matched the host (checked once, at the artifact
// header), the coordinate run is aliased directly onto the underlying
// buffer instead of copied point-by-point — the hot path described in
// spec §4.1. Misaligned input falls back to an owned, allocated copy; both
// paths produce identical values.
func (c *Cursor) readRing() (Ring, error) {
	n, err := c.readU32()
	if err != nil {
		return nil, err
	}
	byteLen := int(n) * 2 * floatWidth
	if c.remaining() < byteLen {
		return nil, newDecodeErr(ErrKindTruncated, "ring of %d points needs %d bytes, have %d", n, byteLen, c.remaining())
	}

	if n == 0 {
		c.off += byteLen
		return Ring{}, nil
	}

	if c.aligned() {
		ring := unsafe.Slice((*Point)(unsafe.Pointer(&c.data[c.off])), n)
		c.off += byteLen
		return Ring(ring), nil
	}

	ring := make(Ring, n)
	for i := range ring {
		ring[i].X = getFloat(c.data[c.off:])
		c.off += floatWidth
		ring[i].Y = getFloat(c.data[c.off:])
		c.off += floatWidth
	}
	return ring, nil
}

func (c *Cursor) readPolygonBody() (Polygon, error) {
	ext, err := c.readRing()
	if err != nil {
		return Polygon{}, err
	}
	k, err := c.readU32()
	if err != nil {
		return Polygon{}, err
	}
	var interiors []Ring
	if k > 0 {
		interiors = make([]Ring, k)
	}
	for i := range interiors {
		interiors[i], err = c.readRing()
		if err != nil {
			return Polygon{}, err
		}
	}
	return Polygon{Exterior: ext, Interiors: interiors}, nil
}

// DecodeGeometry reads one geometry (polygon or multi-polygon) starting at
// the cursor's current position.
func (c *Cursor) DecodeGeometry() (Geometry, error) {
	disc, err := c.readU32()
	if err != nil {
		return Geometry{}, err
	}
	switch disc {
	case discPolygon:
		p, err := c.readPolygonBody()
		if err != nil {
			return Geometry{}, err
		}
		return NewPolygonGeometry(p), nil
	case discMultiPolygon:
		count, err := c.readU32()
		if err != nil {
			return Geometry{}, err
		}
		polys := make([]Polygon, count)
		for i := range polys {
			polys[i], err = c.readPolygonBody()
			if err != nil {
				return Geometry{}, err
			}
		}
		return NewMultiPolygonGeometry(MultiPolygon{Polygons: polys}), nil
	default:
		return Geometry{}, newDecodeErr(ErrKindUnknownVariant, "geometry discriminant %d", disc)
	}
}

// DecodeIDList reads a length-prefixed u32 array. Like readRing, it
// aliases the underlying buffer when aligned.
func (c *Cursor) DecodeIDList() ([]uint32, error) {
	n, err := c.readU32()
	if err != nil {
		return nil, err
	}
	byteLen := int(n) * wordSize
	if c.remaining() < byteLen {
		return nil, newDecodeErr(ErrKindTruncated, "id list of %d entries needs %d bytes, have %d", n, byteLen, c.remaining())
	}
	if n == 0 {
		c.off += byteLen
		return []uint32{}, nil
	}
	if c.aligned() {
		ids := unsafe.Slice((*uint32)(unsafe.Pointer(&c.data[c.off])), n)
		c.off += byteLen
		return ids, nil
	}
	ids := make([]uint32, n)
	for i := range ids {
		ids[i] = binary.NativeEndian.Uint32(c.data[c.off:])
		c.off += wordSize
	}
	return ids, nil
}

// --- Scalar and string helpers for variant attribute codecs ---

// EncodeI32 appends a 32-bit two's-complement word.
func EncodeI32(buf *bytes.Buffer, v int32) {
	writeU32(buf, uint32(v))
}

// ReadI32 reads a 32-bit two's-complement word.
func (c *Cursor) ReadI32() (int32, error) {
	v, err := c.readU32()
	return int32(v), err
}

// EncodeString appends s length-prefixed (in bytes) and zero-padded up to
// the next multiple of floatWidth, so fields after it stay aligned for the
// zero-copy ring/id-list paths (spec §4.1).
func EncodeString(buf *bytes.Buffer, s string) {
	writeU32(buf, uint32(len(s)))
	buf.WriteString(s)
	if pad := padLen(len(s)); pad > 0 {
		buf.Write(make([]byte, pad))
	}
}

func padLen(n int) int {
	rem := n % floatWidth
	if rem == 0 {
		return 0
	}
	return floatWidth - rem
}

// DecodeString reads a length-prefixed, padded string written by
// EncodeString. The returned string always owns a copy of its bytes: Go
// string aliasing over a mutable buffer isn't worth the hazard for the
// comparatively small attribute payloads.
func (c *Cursor) DecodeString() (string, error) {
	n, err := c.readU32()
	if err != nil {
		return "", err
	}
	total := int(n) + padLen(int(n))
	if c.remaining() < total {
		return "", newDecodeErr(ErrKindTruncated, "string of %d bytes needs %d padded bytes, have %d", n, total, c.remaining())
	}
	s := string(c.data[c.off : c.off+int(n)])
	c.off += total
	return s, nil
}

// EncodeOptionalString writes a presence word followed by the string body
// when present.
func EncodeOptionalString(buf *bytes.Buffer, s *string) {
	if s == nil {
		writeU32(buf, 0)
		return
	}
	writeU32(buf, 1)
	EncodeString(buf, *s)
}

// DecodeOptionalString reads a value written by EncodeOptionalString.
func (c *Cursor) DecodeOptionalString() (*string, error) {
	present, err := c.readU32()
	if err != nil {
		return nil, err
	}
	if present == 0 {
		return nil, nil
	}
	s, err := c.DecodeString()
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// EncodeF64 appends a fixed-width IEEE 754 double. Attribute payloads (as
// opposed to geometry coordinates) always use float64 regardless of the
// build's Float precision, since they aren't on the zero-copy ring path and
// gain nothing from narrowing.
func EncodeF64(buf *bytes.Buffer, v float64) {
	var b [8]byte
	binary.NativeEndian.PutUint64(b[:], math.Float64bits(v))
	buf.Write(b[:])
}

// ReadF64 reads a value written by EncodeF64.
func (c *Cursor) ReadF64() (float64, error) {
	if c.remaining() < 8 {
		return 0, newDecodeErr(ErrKindTruncated, "expected 8 more bytes for a float64, have %d", c.remaining())
	}
	v := math.Float64frombits(binary.NativeEndian.Uint64(c.data[c.off:]))
	c.off += 8
	return v, nil
}

// NewCursor wraps data for decoding. It does not copy data; callers must
// keep the backing array alive for as long as any zero-copy result (a Ring
// or []uint32 aliasing it) is in use — exactly the contract of the
// process-wide cache, which pins the artifact bytes for the process
// lifetime.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}
