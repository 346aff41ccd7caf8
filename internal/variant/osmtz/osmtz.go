// Package osmtz adapts the OSM time zone boundary corpus, distributed as a
// ZIP archive containing a single GeoJSON file (spec §6). Each feature
// carries one required property, tzid, the IANA zone name.
package osmtz

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/mpetrov/geogrid"
	"github.com/mpetrov/geogrid/internal/geojson"
	"github.com/mpetrov/geogrid/internal/simplify"
)

// Attrs is one OSM time zone polygon's attribute set.
type Attrs struct {
	Identifier string // tzid, required
}

func (a Attrs) Name() string { return a.Identifier }

// Variant is the build policy for the OSM time zone corpus (spec §4.2).
var Variant = geogrid.Variant{
	Name:                      "osm-timezone",
	Epsilon:                   1e-4,
	ExtraSimplifiedMultiplier: 10,
	FastPathEligible:          true,
}

// Parse converts one decoded GeoJSON feature into Attrs.
func Parse(feature geojson.Feature) (Attrs, error) {
	raw, ok := feature.Properties["tzid"]
	if !ok || raw == nil {
		return Attrs{}, fmt.Errorf("feature missing required tzid property")
	}
	return Attrs{Identifier: fmt.Sprintf("%v", raw)}, nil
}

// Codec implements geogrid.AttributeCodec[Attrs].
type Codec struct{}

func (Codec) Encode(buf *bytes.Buffer, a Attrs) {
	geogrid.EncodeString(buf, a.Identifier)
}

func (Codec) Decode(c *geogrid.Cursor) (Attrs, error) {
	id, err := c.DecodeString()
	if err != nil {
		return Attrs{}, err
	}
	return Attrs{Identifier: id}, nil
}

// ReadZipSource extracts the single GeoJSON entry from an OSM time zone
// distribution archive. The source format is a ZIP containing exactly one
// feature collection file; the reader takes the archive's first entry
// regardless of name, matching spec §6.
func ReadZipSource(zipBytes []byte) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return nil, fmt.Errorf("open osm timezone zip: %w", err)
	}
	if len(r.File) == 0 {
		return nil, fmt.Errorf("osm timezone zip has no entries")
	}
	f, err := r.File[0].Open()
	if err != nil {
		return nil, fmt.Errorf("open osm timezone zip entry %s: %w", r.File[0].Name, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read osm timezone zip entry %s: %w", r.File[0].Name, err)
	}
	return data, nil
}

// BuildItems parses the archive's GeoJSON feature collection into a dense,
// simplified item vector.
func BuildItems(zipBytes []byte, extraSimplified bool) ([]geogrid.Item[Attrs], error) {
	geojsonBytes, err := ReadZipSource(zipBytes)
	if err != nil {
		return nil, err
	}
	features, err := geojson.ParseFeatureCollection(geojsonBytes)
	if err != nil {
		return nil, fmt.Errorf("parse osm timezone geojson: %w", err)
	}
	eps := Variant.EffectiveEpsilon(extraSimplified)
	items := make([]geogrid.Item[Attrs], 0, len(features))
	for _, f := range features {
		attrs, err := Parse(f)
		if err != nil {
			return nil, fmt.Errorf("parse osm timezone feature %d: %w", len(items), err)
		}
		items = append(items, geogrid.Item[Attrs]{
			ID:       uint32(len(items)),
			Geometry: simplify.Geometry(f.Geometry, eps),
			Data:     attrs,
		})
	}
	return items, nil
}
