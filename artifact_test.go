package geogrid

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

type testAttrsCodec struct{}

func (testAttrsCodec) Encode(buf *bytes.Buffer, a testAttrs) {
	EncodeString(buf, a.name)
}

func (testAttrsCodec) Decode(c *Cursor) (testAttrs, error) {
	name, err := c.DecodeString()
	if err != nil {
		return testAttrs{}, err
	}
	return testAttrs{name: name}, nil
}

func TestArtifactRoundTrip(t *testing.T) {
	items := testItems()
	grid := BuildGrid(items)

	itemsBytes := EncodeItems(items, testAttrsCodec{})
	lookupBytes := EncodeLookup(grid)

	store, err := LoadEmbedded(itemsBytes, lookupBytes, testAttrsCodec{})
	require.NoError(t, err)

	decoded := store.Items()
	require.Len(t, decoded, len(items))
	for i, item := range items {
		require.Equal(t, item.ID, decoded[i].ID)
		require.Equal(t, item.Data.name, decoded[i].Data.name)
		require.Equal(t, item.Geometry.Kind, decoded[i].Geometry.Kind)
	}

	idx, ok := cellIndex(-121, 46)
	require.True(t, ok)
	require.Equal(t, grid[idx], store.CandidateIDs(-121, 46))
}

func TestArtifactRejectsBadMagic(t *testing.T) {
	_, err := DecodeItems([]byte("not an artifact at all............"), testAttrsCodec{})
	require.Error(t, err)
}

func TestArtifactRejectsWrongCellCount(t *testing.T) {
	var buf bytes.Buffer
	writeHeader(&buf, artifactMagicLookup)
	writeU32(&buf, 1) // wrong: must be CellCount
	EncodeIDList(&buf, nil)

	_, err := DecodeLookup(buf.Bytes())
	require.Error(t, err)
}
