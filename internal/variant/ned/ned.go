// Package ned adapts Natural Earth's time zone GeoJSON corpus to the
// engine's Item/Attributes model (spec §4.2, §6). Property parsing follows
// rtz-core/src/geo/tz/ned.rs's From<(usize, &Feature)> impl: tz_name1st is
// the optional IANA identifier, places/dst_places are free-text locality
// lists, time_zone is the formatted UTC offset string, and zone is the
// numeric UTC offset in (fractional) hours, negative west of UTC (e.g. -8
// for America/Los_Angeles) — rtz-core derives raw_offset from it with no
// sign flip, and this adaptor matches that.
package ned

import (
	"bytes"
	"fmt"
	"math"

	"github.com/mpetrov/geogrid"
	"github.com/mpetrov/geogrid/internal/geojson"
	"github.com/mpetrov/geogrid/internal/simplify"
)

// Attrs is one Natural Earth time zone polygon's attribute set.
type Attrs struct {
	// Identifier is the IANA zone name (tz_name1st), absent for a handful
	// of international-waters polygons that carry no canonical zone.
	Identifier *string
	Places     string
	DstPlaces  string
	OffsetStr  string
	// ZoneHours is the "zone" property as-is: the signed UTC offset in
	// hours (e.g. -8 for America/Los_Angeles). RawOffsetSeconds is its
	// rounded seconds form, same sign.
	ZoneHours        float64
	RawOffsetSeconds int32
}

// Name satisfies geogrid.Attributes: the IANA identifier when present,
// falling back to the locality list so every item has a usable label.
func (a Attrs) Name() string {
	if a.Identifier != nil {
		return *a.Identifier
	}
	return a.Places
}

// Variant is the build policy for the NED corpus (spec §4.2 table).
var Variant = geogrid.Variant{
	Name:                      "ned-timezone",
	Epsilon:                   1e-5,
	ExtraSimplifiedMultiplier: 100,
	FastPathEligible:          true,
}

func stringProp(props map[string]any, key string) string {
	v, ok := props[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func floatProp(props map[string]any, key string) float64 {
	switch v := props[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

// Parse converts one decoded GeoJSON feature into Attrs, following the
// property mapping documented in the package comment.
func Parse(feature geojson.Feature) (Attrs, error) {
	props := feature.Properties
	var id *string
	if raw := stringProp(props, "tz_name1st"); raw != "" {
		idCopy := raw
		id = &idCopy
	}
	zoneHours := floatProp(props, "zone")
	return Attrs{
		Identifier:       id,
		Places:           stringProp(props, "places"),
		DstPlaces:        stringProp(props, "dst_places"),
		OffsetStr:        stringProp(props, "time_zone"),
		ZoneHours:        zoneHours,
		RawOffsetSeconds: int32(math.Round(zoneHours * 3600)),
	}, nil
}

// Codec implements geogrid.AttributeCodec[Attrs].
type Codec struct{}

func (Codec) Encode(buf *bytes.Buffer, a Attrs) {
	geogrid.EncodeOptionalString(buf, a.Identifier)
	geogrid.EncodeString(buf, a.Places)
	geogrid.EncodeString(buf, a.DstPlaces)
	geogrid.EncodeString(buf, a.OffsetStr)
	geogrid.EncodeF64(buf, a.ZoneHours)
	geogrid.EncodeI32(buf, a.RawOffsetSeconds)
}

func (Codec) Decode(c *geogrid.Cursor) (Attrs, error) {
	id, err := c.DecodeOptionalString()
	if err != nil {
		return Attrs{}, err
	}
	places, err := c.DecodeString()
	if err != nil {
		return Attrs{}, err
	}
	dstPlaces, err := c.DecodeString()
	if err != nil {
		return Attrs{}, err
	}
	offsetStr, err := c.DecodeString()
	if err != nil {
		return Attrs{}, err
	}
	zoneHours, err := c.ReadF64()
	if err != nil {
		return Attrs{}, err
	}
	rawOffset, err := c.ReadI32()
	if err != nil {
		return Attrs{}, err
	}
	return Attrs{
		Identifier:       id,
		Places:           places,
		DstPlaces:        dstPlaces,
		OffsetStr:        offsetStr,
		ZoneHours:        zoneHours,
		RawOffsetSeconds: rawOffset,
	}, nil
}

// BuildItems parses every feature in a single GeoJSON file (the NED
// corpus's ingestion shape per spec §6) into a dense, simplified item
// vector ready for geogrid.BuildGrid.
func BuildItems(geojsonBytes []byte, extraSimplified bool) ([]geogrid.Item[Attrs], error) {
	features, err := geojson.ParseFeatureCollection(geojsonBytes)
	if err != nil {
		return nil, fmt.Errorf("parse ned geojson: %w", err)
	}
	eps := Variant.EffectiveEpsilon(extraSimplified)
	items := make([]geogrid.Item[Attrs], 0, len(features))
	for _, f := range features {
		attrs, err := Parse(f)
		if err != nil {
			return nil, fmt.Errorf("parse ned feature %d: %w", len(items), err)
		}
		items = append(items, geogrid.Item[Attrs]{
			ID:       uint32(len(items)),
			Geometry: simplify.Geometry(f.Geometry, eps),
			Data:     attrs,
		})
	}
	return items, nil
}
