// Command query is a minimal single-corpus demo CLI over geogrid, adapted
// from the teacher's cmd/query: load one variant's artifact pair from disk
// and resolve a coordinate, or dump the whole corpus back to GeoJSON.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mpetrov/geogrid"
	"github.com/mpetrov/geogrid/internal/geojson"
	"github.com/mpetrov/geogrid/internal/variant/ned"
	"github.com/mpetrov/geogrid/internal/variant/osmadmin"
	"github.com/mpetrov/geogrid/internal/variant/osmtz"
)

func main() {
	variant := flag.String("variant", "ned", "Corpus to query: ned, osmtz, or osmadmin")
	itemsPath := flag.String("items", "items.bin", "Items artifact path")
	lookupPath := flag.String("lookup", "lookup.bin", "Lookup artifact path")
	lat := flag.Float64("lat", 0, "Latitude")
	lng := flag.Float64("lng", 0, "Longitude")
	slow := flag.Bool("slow", false, "Use the brute-force lookup_slow reference path")
	dump := flag.Bool("dump", false, "Dump the whole corpus as GeoJSON instead of querying")
	flag.Parse()

	var err error
	switch *variant {
	case "ned":
		err = runNed(*itemsPath, *lookupPath, *lng, *lat, *slow, *dump)
	case "osmtz":
		err = runOsmTz(*itemsPath, *lookupPath, *lng, *lat, *slow, *dump)
	case "osmadmin":
		err = runOsmAdmin(*itemsPath, *lookupPath, *lng, *lat, *slow, *dump)
	default:
		log.Fatalf("unknown -variant %q (want ned, osmtz, or osmadmin)", *variant)
	}
	if err != nil {
		log.Fatalf("query failed: %v", err)
	}
}

func runNed(itemsPath, lookupPath string, lng, lat float64, slow, dump bool) error {
	store, err := geogrid.LoadFromDisk(itemsPath, lookupPath, ned.Codec{})
	if err != nil {
		return err
	}
	engine := geogrid.NewEngine(store, ned.Variant)
	if dump {
		return dumpGeoJSON(engine, func(a ned.Attrs) map[string]any {
			return map[string]any{"identifier": a.Identifier, "places": a.Places, "offset": a.OffsetStr}
		})
	}
	matches := lookup(engine, geogrid.Float(lng), geogrid.Float(lat), slow)
	for _, m := range matches {
		fmt.Printf("id=%d identifier=%v places=%q offset=%q\n", m.ID, m.Data.Identifier, m.Data.Places, m.Data.OffsetStr)
	}
	return nil
}

func runOsmTz(itemsPath, lookupPath string, lng, lat float64, slow, dump bool) error {
	store, err := geogrid.LoadFromDisk(itemsPath, lookupPath, osmtz.Codec{})
	if err != nil {
		return err
	}
	engine := geogrid.NewEngine(store, osmtz.Variant)
	if dump {
		return dumpGeoJSON(engine, func(a osmtz.Attrs) map[string]any {
			return map[string]any{"tzid": a.Identifier}
		})
	}
	matches := lookup(engine, geogrid.Float(lng), geogrid.Float(lat), slow)
	for _, m := range matches {
		fmt.Printf("id=%d tzid=%s\n", m.ID, m.Data.Identifier)
	}
	return nil
}

func runOsmAdmin(itemsPath, lookupPath string, lng, lat float64, slow, dump bool) error {
	store, err := geogrid.LoadFromDisk(itemsPath, lookupPath, osmadmin.Codec{})
	if err != nil {
		return err
	}
	engine := geogrid.NewEngine(store, osmadmin.Variant)
	if dump {
		return dumpGeoJSON(engine, func(a osmadmin.Attrs) map[string]any {
			return map[string]any{"name": a.AdminName, "admin_level": a.AdminLevel}
		})
	}
	matches := lookup(engine, geogrid.Float(lng), geogrid.Float(lat), slow)
	for _, m := range matches {
		fmt.Printf("id=%d name=%q admin_level=%d\n", m.ID, m.Data.AdminName, m.Data.AdminLevel)
	}
	return nil
}

func lookup[A geogrid.Attributes](engine *geogrid.Engine[A], lng, lat geogrid.Float, slow bool) []geogrid.Item[A] {
	if slow {
		return engine.LookupSlow(lng, lat)
	}
	return engine.Lookup(lng, lat)
}

func dumpGeoJSON[A geogrid.Attributes](engine *geogrid.Engine[A], propsFn func(A) map[string]any) error {
	data, err := geojson.Export(engine.Items(), propsFn)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
