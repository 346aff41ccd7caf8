// Package osmadmin adapts OSM administrative boundary polygons, distributed
// as a directory tree of one GeoJSON file per feature (spec §6), following
// rtz-core/src/geo/admin/osm.rs's directory walk: recurse into
// subdirectories, consider only *.geojson files, and silently skip any
// file with zero bytes (a known artifact of the upstream export).
package osmadmin

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mpetrov/geogrid"
	"github.com/mpetrov/geogrid/internal/geojson"
	"github.com/mpetrov/geogrid/internal/simplify"
)

// Attrs is one OSM admin boundary's attribute set.
type Attrs struct {
	AdminName  string
	AdminLevel int32
}

func (a Attrs) Name() string { return a.AdminName }

// Variant is the build policy for the OSM admin corpus (spec §4.2): no
// fast path, since overlapping administrative levels mean a singleton
// candidate list at one cell says nothing about containment at another
// level sharing that cell.
var Variant = geogrid.Variant{
	Name:                      "osm-admin",
	Epsilon:                   1e-3,
	ExtraSimplifiedMultiplier: 10,
	FastPathEligible:          false,
}

// Parse converts one decoded GeoJSON feature into Attrs.
func Parse(feature geojson.Feature) (Attrs, error) {
	name, ok := feature.Properties["name"]
	if !ok || name == nil {
		return Attrs{}, fmt.Errorf("feature missing required name property")
	}
	level, err := adminLevel(feature.Properties["admin_level"])
	if err != nil {
		return Attrs{}, err
	}
	return Attrs{AdminName: fmt.Sprintf("%v", name), AdminLevel: level}, nil
}

func adminLevel(raw any) (int32, error) {
	switch v := raw.(type) {
	case float64:
		return int32(v), nil
	case int:
		return int32(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("admin_level %q is not an integer: %w", v, err)
		}
		return int32(n), nil
	default:
		return 0, fmt.Errorf("feature missing required admin_level property")
	}
}

// Codec implements geogrid.AttributeCodec[Attrs].
type Codec struct{}

func (Codec) Encode(buf *bytes.Buffer, a Attrs) {
	geogrid.EncodeString(buf, a.AdminName)
	geogrid.EncodeI32(buf, a.AdminLevel)
}

func (Codec) Decode(c *geogrid.Cursor) (Attrs, error) {
	name, err := c.DecodeString()
	if err != nil {
		return Attrs{}, err
	}
	level, err := c.ReadI32()
	if err != nil {
		return Attrs{}, err
	}
	return Attrs{AdminName: name, AdminLevel: level}, nil
}

// WalkSources returns every non-empty *.geojson file under root, recursing
// into subdirectories. The admin source has no canonical upstream location,
// so the path is always caller-supplied (see DESIGN.md).
func WalkSources(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".geojson") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.Size() == 0 {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk admin source tree %s: %w", root, err)
	}
	return paths, nil
}

// BuildItems reads every per-feature GeoJSON file across roots (multiple
// directory trees may be supplied; see DESIGN.md Open Question) and parses
// each into a simplified item. A source file may itself be a single-feature
// document or a feature collection; both are accepted.
func BuildItems(roots []string, extraSimplified bool) ([]geogrid.Item[Attrs], error) {
	eps := Variant.EffectiveEpsilon(extraSimplified)
	items := make([]geogrid.Item[Attrs], 0)
	for _, root := range roots {
		paths, err := WalkSources(root)
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			raw, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read admin source %s: %w", path, err)
			}
			features, err := parseOne(raw)
			if err != nil {
				return nil, fmt.Errorf("parse admin source %s: %w", path, err)
			}
			for _, f := range features {
				attrs, err := Parse(f)
				if err != nil {
					return nil, fmt.Errorf("parse admin feature in %s: %w", path, err)
				}
				items = append(items, geogrid.Item[Attrs]{
					ID:       uint32(len(items)),
					Geometry: simplify.Geometry(f.Geometry, eps),
					Data:     attrs,
				})
			}
		}
	}
	return items, nil
}

// BuildItemsFromFile builds items from a single GeoJSON file (a bare
// feature or a feature collection) instead of a directory tree, for
// deployments without the upstream per-feature export layout (spec §9 Open
// Question).
func BuildItemsFromFile(path string, extraSimplified bool) ([]geogrid.Item[Attrs], error) {
	eps := Variant.EffectiveEpsilon(extraSimplified)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read admin source %s: %w", path, err)
	}
	features, err := parseOne(raw)
	if err != nil {
		return nil, fmt.Errorf("parse admin source %s: %w", path, err)
	}
	items := make([]geogrid.Item[Attrs], 0, len(features))
	for _, f := range features {
		attrs, err := Parse(f)
		if err != nil {
			return nil, fmt.Errorf("parse admin feature in %s: %w", path, err)
		}
		items = append(items, geogrid.Item[Attrs]{
			ID:       uint32(len(items)),
			Geometry: simplify.Geometry(f.Geometry, eps),
			Data:     attrs,
		})
	}
	return items, nil
}

// parseOne accepts either a bare GeoJSON Feature or a FeatureCollection,
// since per-feature export files in the wild use both shapes.
func parseOne(raw []byte) ([]geojson.Feature, error) {
	if features, err := geojson.ParseFeatureCollection(raw); err == nil && len(features) > 0 {
		return features, nil
	}
	feature, err := geojson.ParseSingleFeature(raw)
	if err != nil {
		return nil, err
	}
	return []geojson.Feature{feature}, nil
}
