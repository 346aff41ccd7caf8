package geogrid

import (
	"bytes"
	"fmt"
	"os"
)

// Artifact header: 4-byte magic, version, endianness, float width, one
// reserved byte, for 8 bytes total. Fixed at build time; decoding an
// artifact stamped with a different endianness or float width is fatal
// (spec §3), so there is no cross-precision or byte-swapping fallback.
var artifactMagicItems = [4]byte{'G', 'G', 'I', 'T'}
var artifactMagicLookup = [4]byte{'G', 'G', 'L', 'K'}

const artifactVersion byte = 1
const headerLen = 8

func writeHeader(buf *bytes.Buffer, magic [4]byte) {
	buf.Write(magic[:])
	buf.WriteByte(artifactVersion)
	buf.WriteByte(endiannessByte())
	buf.WriteByte(byte(floatWidth))
	buf.WriteByte(0) // reserved
}

func checkHeader(data []byte, wantMagic [4]byte) ([]byte, error) {
	if len(data) < headerLen {
		return nil, newDecodeErr(ErrKindTruncated, "artifact shorter than header (%d bytes)", len(data))
	}
	var magic [4]byte
	copy(magic[:], data[:4])
	if magic != wantMagic {
		return nil, newDecodeErr(ErrKindUnknownVariant, "bad artifact magic %q", magic)
	}
	if data[4] != artifactVersion {
		return nil, newDecodeErr(ErrKindUnknownVariant, "artifact version %d, engine supports %d", data[4], artifactVersion)
	}
	if data[5] != endiannessByte() {
		return nil, newDecodeErr(ErrKindPrecisionMismatch, "artifact endianness byte %d does not match host", data[5])
	}
	if data[6] != byte(floatWidth) {
		return nil, newDecodeErr(ErrKindPrecisionMismatch, "artifact float width %d does not match build's %d", data[6], floatWidth)
	}
	return data[headerLen:], nil
}

// EncodeItems writes every item's geometry and attributes, in ID order,
// preceded by an items-artifact header.
func EncodeItems[A Attributes](items []Item[A], codec AttributeCodec[A]) []byte {
	var buf bytes.Buffer
	writeHeader(&buf, artifactMagicItems)
	writeU32(&buf, uint32(len(items)))
	for _, item := range items {
		EncodeGeometry(&buf, item.Geometry)
		codec.Encode(&buf, item.Data)
	}
	return buf.Bytes()
}

// DecodeItems reads an items artifact back into a dense, ID-ordered slice.
func DecodeItems[A Attributes](data []byte, codec AttributeCodec[A]) ([]Item[A], error) {
	body, err := checkHeader(data, artifactMagicItems)
	if err != nil {
		return nil, err
	}
	c := NewCursor(body)
	n, err := c.readU32()
	if err != nil {
		return nil, err
	}
	items := make([]Item[A], n)
	for i := range items {
		geom, err := c.DecodeGeometry()
		if err != nil {
			return nil, fmt.Errorf("decode item %d: %w", i, err)
		}
		data, err := codec.Decode(c)
		if err != nil {
			return nil, fmt.Errorf("decode item %d attributes: %w", i, err)
		}
		items[i] = Item[A]{ID: uint32(i), Geometry: geom, Data: data}
	}
	return items, nil
}

// EncodeLookup writes the dense CellCount-length candidate grid, preceded
// by a lookup-artifact header.
func EncodeLookup(grid [][]uint32) []byte {
	var buf bytes.Buffer
	writeHeader(&buf, artifactMagicLookup)
	writeU32(&buf, uint32(len(grid)))
	for _, ids := range grid {
		EncodeIDList(&buf, ids)
	}
	return buf.Bytes()
}

// DecodeLookup reads a lookup artifact back into the dense grid.
func DecodeLookup(data []byte) ([][]uint32, error) {
	body, err := checkHeader(data, artifactMagicLookup)
	if err != nil {
		return nil, err
	}
	c := NewCursor(body)
	n, err := c.readU32()
	if err != nil {
		return nil, err
	}
	if int(n) != CellCount {
		return nil, newDecodeErr(ErrKindMalformedCorpus, "lookup artifact has %d cells, want %d", n, CellCount)
	}
	grid := make([][]uint32, n)
	for i := range grid {
		ids, err := c.DecodeIDList()
		if err != nil {
			return nil, fmt.Errorf("decode cell %d: %w", i, err)
		}
		grid[i] = ids
	}
	return grid, nil
}

// LoadEmbedded builds a Store from caller-supplied artifact bytes, the
// shape a //go:embed directive in a consumer binary would produce. This
// package never embeds a real dataset itself (see DESIGN.md).
func LoadEmbedded[A Attributes](itemsBytes, lookupBytes []byte, codec AttributeCodec[A]) (*Store[A], error) {
	items, err := DecodeItems(itemsBytes, codec)
	if err != nil {
		return nil, fmt.Errorf("decode items artifact: %w", err)
	}
	grid, err := DecodeLookup(lookupBytes)
	if err != nil {
		return nil, fmt.Errorf("decode lookup artifact: %w", err)
	}
	return newStore(items, grid), nil
}

// LoadFromDisk reads the two artifact files from itemsPath/lookupPath.
// Intended for development builds that derive artifacts lazily rather than
// embedding them (spec §4.5).
func LoadFromDisk[A Attributes](itemsPath, lookupPath string, codec AttributeCodec[A]) (*Store[A], error) {
	itemsBytes, err := os.ReadFile(itemsPath)
	if err != nil {
		return nil, fmt.Errorf("read items artifact %s: %w", itemsPath, err)
	}
	lookupBytes, err := os.ReadFile(lookupPath)
	if err != nil {
		return nil, fmt.Errorf("read lookup artifact %s: %w", lookupPath, err)
	}
	return LoadEmbedded(itemsBytes, lookupBytes, codec)
}
