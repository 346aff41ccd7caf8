// Package geojson bridges GeoJSON feature collections and the engine's
// native geogrid.Geometry, using simplefeatures for parsing and encoding
// (the teacher's own geom.GeoJSONFeatureCollection / geom.GeoJSONFeature
// types, as used by geostore.go's Put and cmd/index/main.go).
package geojson

import (
	"encoding/json"
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/mpetrov/geogrid"
)

// Feature is a decoded GeoJSON feature, already carrying native geometry.
type Feature struct {
	Properties map[string]any
	Geometry   geogrid.Geometry
}

// ParseFeatureCollection decodes raw into features, skipping (rather than
// failing on) any feature whose geometry type isn't a Polygon or
// MultiPolygon, since none of the three corpora's variant adaptors accept
// anything else.
func ParseFeatureCollection(raw []byte) ([]Feature, error) {
	var fc geom.GeoJSONFeatureCollection
	if err := json.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("invalid geojson: %w", err)
	}
	out := make([]Feature, 0, len(fc.Features))
	for _, gf := range fc.Features {
		g, err := ToGeometry(gf.Geometry)
		if err != nil {
			continue
		}
		out = append(out, Feature{Properties: gf.Properties, Geometry: g})
	}
	return out, nil
}

// ParseSingleFeature decodes raw as a bare GeoJSON Feature document (no
// surrounding FeatureCollection), the shape the OSM admin export sometimes
// uses for its per-feature files.
func ParseSingleFeature(raw []byte) (Feature, error) {
	var gf geom.GeoJSONFeature
	if err := json.Unmarshal(raw, &gf); err != nil {
		return Feature{}, fmt.Errorf("invalid geojson feature: %w", err)
	}
	g, err := ToGeometry(gf.Geometry)
	if err != nil {
		return Feature{}, err
	}
	return Feature{Properties: gf.Properties, Geometry: g}, nil
}

// ToGeometry converts a simplefeatures geometry into the engine's native
// Polygon/MultiPolygon representation.
func ToGeometry(g geom.Geometry) (geogrid.Geometry, error) {
	switch g.Type() {
	case geom.TypePolygon:
		return geogrid.NewPolygonGeometry(toPolygon(g.MustAsPolygon())), nil
	case geom.TypeMultiPolygon:
		mp := g.MustAsMultiPolygon()
		polys := make([]geogrid.Polygon, mp.NumPolygons())
		for i := range polys {
			polys[i] = toPolygon(mp.PolygonN(i))
		}
		return geogrid.NewMultiPolygonGeometry(geogrid.MultiPolygon{Polygons: polys}), nil
	default:
		return geogrid.Geometry{}, fmt.Errorf("unsupported geometry type: %s", g.Type())
	}
}

func toPolygon(p geom.Polygon) geogrid.Polygon {
	out := geogrid.Polygon{
		Exterior:  toRing(p.ExteriorRing()),
		Interiors: make([]geogrid.Ring, p.NumInteriorRings()),
	}
	for i := range out.Interiors {
		out.Interiors[i] = toRing(p.InteriorRingN(i))
	}
	return out
}

func toRing(ls geom.LineString) geogrid.Ring {
	seq := ls.Coordinates()
	n := seq.Length()
	ring := make(geogrid.Ring, n)
	for i := 0; i < n; i++ {
		xy := seq.GetXY(i)
		ring[i] = geogrid.Point{X: geogrid.Float(xy.X), Y: geogrid.Float(xy.Y)}
	}
	return ring
}

// FromGeometry converts a native geometry back to simplefeatures, for
// GeoJSON export (spec §4.6 "to_geojson").
func FromGeometry(g geogrid.Geometry) geom.Geometry {
	if g.Kind == geogrid.GeometryMultiPolygon {
		polys := make([]geom.Polygon, len(g.Multi.Polygons))
		for i, p := range g.Multi.Polygons {
			polys[i] = fromPolygon(p)
		}
		return geom.NewMultiPolygon(polys).AsGeometry()
	}
	return fromPolygon(g.Polygon).AsGeometry()
}

func fromPolygon(p geogrid.Polygon) geom.Polygon {
	rings := make([]geom.LineString, 0, 1+len(p.Interiors))
	rings = append(rings, fromRing(p.Exterior))
	for _, hole := range p.Interiors {
		rings = append(rings, fromRing(hole))
	}
	return geom.NewPolygon(rings)
}

func fromRing(ring geogrid.Ring) geom.LineString {
	coords := make([]float64, 0, len(ring)*2)
	for _, p := range ring {
		coords = append(coords, float64(p.X), float64(p.Y))
	}
	n := len(ring)
	if n > 0 && (ring[0] != ring[n-1]) {
		coords = append(coords, float64(ring[0].X), float64(ring[0].Y))
	}
	seq := geom.NewSequence(coords, geom.DimXY)
	return geom.NewLineString(seq)
}

// Export serializes a variant's item vector back to a GeoJSON feature
// collection (spec §4.6 "to_geojson"), calling propsFn to turn each item's
// attributes into GeoJSON properties. It lives here, not as a geogrid.Engine
// method, so the core package never has to import simplefeatures.
func Export[A geogrid.Attributes](items []geogrid.Item[A], propsFn func(A) map[string]any) ([]byte, error) {
	features := make([]Feature, len(items))
	for i, item := range items {
		props := propsFn(item.Data)
		if props == nil {
			props = map[string]any{}
		}
		props["id"] = item.ID
		features[i] = Feature{Properties: props, Geometry: item.Geometry}
	}
	return BuildFeatureCollection(features)
}

// BuildFeatureCollection encodes features (geometry plus arbitrary
// properties) back into a GeoJSON FeatureCollection document.
func BuildFeatureCollection(features []Feature) ([]byte, error) {
	gf := make([]geom.GeoJSONFeature, len(features))
	for i, f := range features {
		gf[i] = geom.GeoJSONFeature{
			Geometry:   FromGeometry(f.Geometry),
			Properties: f.Properties,
		}
	}
	fc := geom.GeoJSONFeatureCollection{Features: gf}
	data, err := json.Marshal(fc)
	if err != nil {
		return nil, fmt.Errorf("marshal feature collection: %w", err)
	}
	return data, nil
}
