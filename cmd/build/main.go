// Command build is the offline preprocessor: it reads one corpus's GeoJSON
// source, simplifies and indexes its geometry, and writes the items.bin /
// lookup.bin artifact pair a geogrid.Engine loads at runtime. Adapted from
// the teacher's cmd/index, including its uuid-stamped-run logging.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/mpetrov/geogrid"
	"github.com/mpetrov/geogrid/internal/buildcache"
	"github.com/mpetrov/geogrid/internal/variant/ned"
	"github.com/mpetrov/geogrid/internal/variant/osmadmin"
	"github.com/mpetrov/geogrid/internal/variant/osmtz"
)

func main() {
	variant := flag.String("variant", "ned", "Corpus to build: ned, osmtz, or osmadmin")
	in := flag.String("in", "", "Input source path (GeoJSON file, zip archive, or admin directory tree, comma-separated for osmadmin)")
	itemsOut := flag.String("items-out", "items.bin", "Output items artifact path")
	lookupOut := flag.String("lookup-out", "lookup.bin", "Output lookup artifact path")
	extraSimplified := flag.Bool("extra-simplified", false, "Apply the variant's extra-simplified epsilon multiplier")
	cachePath := flag.String("cache", "", "Path to a build-cache database that memoizes the grid sweep across runs (skipped if empty)")
	flag.Parse()

	if *in == "" {
		log.Fatal("-in is required")
	}

	buildID := uuid.New().String()
	log.Printf("build %s: starting variant=%s in=%s", buildID, *variant, *in)

	var cache *buildcache.Cache
	if *cachePath != "" {
		var err error
		cache, err = buildcache.Open(*cachePath)
		if err != nil {
			log.Fatalf("build %s: open cache: %v", buildID, err)
		}
		defer cache.Close()
	}

	var err error
	switch *variant {
	case "ned":
		err = buildNed(*in, *itemsOut, *lookupOut, *extraSimplified, cache)
	case "osmtz":
		err = buildOsmTz(*in, *itemsOut, *lookupOut, *extraSimplified, cache)
	case "osmadmin":
		err = buildOsmAdmin(*in, *itemsOut, *lookupOut, *extraSimplified, cache)
	default:
		log.Fatalf("unknown -variant %q (want ned, osmtz, or osmadmin)", *variant)
	}
	if err != nil {
		log.Fatalf("build %s: failed: %v", buildID, err)
	}
	log.Printf("build %s: done", buildID)
}

func buildNed(in, itemsOut, lookupOut string, extraSimplified bool, cache *buildcache.Cache) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	items, err := ned.BuildItems(data, extraSimplified)
	if err != nil {
		return err
	}
	eps := ned.Variant.EffectiveEpsilon(extraSimplified)
	return writeArtifacts(items, ned.Codec{}, itemsOut, lookupOut, cache, data, float64(eps))
}

func buildOsmTz(in, itemsOut, lookupOut string, extraSimplified bool, cache *buildcache.Cache) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	items, err := osmtz.BuildItems(data, extraSimplified)
	if err != nil {
		return err
	}
	eps := osmtz.Variant.EffectiveEpsilon(extraSimplified)
	return writeArtifacts(items, osmtz.Codec{}, itemsOut, lookupOut, cache, data, float64(eps))
}

func buildOsmAdmin(in, itemsOut, lookupOut string, extraSimplified bool, cache *buildcache.Cache) error {
	roots := strings.Split(in, ",")
	items, err := osmadmin.BuildItems(roots, extraSimplified)
	if err != nil {
		return err
	}
	// The admin source is a directory tree rather than a single file, so
	// the cache key is derived from the roots list itself plus item count
	// rather than raw source bytes.
	keySource := []byte(strings.Join(roots, ";") + fmt.Sprintf("|n=%d", len(items)))
	eps := osmadmin.Variant.EffectiveEpsilon(extraSimplified)
	return writeArtifacts(items, osmadmin.Codec{}, itemsOut, lookupOut, cache, keySource, float64(eps))
}

// writeArtifacts encodes items and their grid to itemsOut/lookupOut. When
// cache is non-nil, the grid sweep is skipped on a memoized hit for the
// same (sourceBytes, epsilon) pair; a miss computes the grid as usual and
// stores it back for the next run (see internal/buildcache).
func writeArtifacts[A geogrid.Attributes](items []geogrid.Item[A], codec geogrid.AttributeCodec[A], itemsOut, lookupOut string, cache *buildcache.Cache, sourceBytes []byte, epsilon float64) error {
	log.Printf("built %d items, computing grid...", len(items))

	var lookupBytes []byte
	var cacheKey string
	if cache != nil {
		cacheKey = buildcache.Key(sourceBytes, epsilon)
		if cached, ok, err := cache.Get(cacheKey); err != nil {
			log.Printf("build cache lookup failed, recomputing: %v", err)
		} else if ok {
			log.Printf("build cache hit, skipping grid sweep")
			lookupBytes = cached
		}
	}

	if lookupBytes == nil {
		grid := geogrid.BuildGrid(items)
		lookupBytes = geogrid.EncodeLookup(grid)
		if cache != nil {
			if err := cache.Put(cacheKey, lookupBytes); err != nil {
				log.Printf("build cache store failed: %v", err)
			}
		}
	}

	itemsBytes := geogrid.EncodeItems(items, codec)
	if err := os.WriteFile(itemsOut, itemsBytes, 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(lookupOut, lookupBytes, 0o644); err != nil {
		return err
	}
	log.Printf("wrote %s (%d bytes) and %s (%d bytes)", itemsOut, len(itemsBytes), lookupOut, len(lookupBytes))
	return nil
}
