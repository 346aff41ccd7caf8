package geogrid

// Variant describes the build-time policy for one corpus: NED timezones,
// OSM timezones, or OSM admin boundaries (spec §4.2, §4.6). It carries no
// data itself — only the knobs the preprocessor and query engine consult.
type Variant struct {
	// Name identifies the corpus, used in build logs and error messages.
	Name string
	// Epsilon is the Visvalingam-Whyatt area threshold applied to every
	// item's geometry at build time.
	Epsilon Float
	// ExtraSimplifiedMultiplier scales Epsilon for an alternate,
	// smaller-artifact build profile (spec §4.2, "×10 or ×100").
	ExtraSimplifiedMultiplier Float
	// FastPathEligible gates the one-candidate interior shortcut in
	// Engine.Lookup. Variants whose polygons can be adjacent at a shared
	// boundary with no gap should disable this if a single-candidate cell
	// cannot be trusted to be unambiguous; both shipped timezone corpora
	// enable it, matching the source model.
	FastPathEligible bool
}

// EffectiveEpsilon returns the simplification tolerance for a build,
// applying ExtraSimplifiedMultiplier when extraSimplified is requested.
func (v Variant) EffectiveEpsilon(extraSimplified bool) Float {
	if !extraSimplified || v.ExtraSimplifiedMultiplier <= 0 {
		return v.Epsilon
	}
	return v.Epsilon * v.ExtraSimplifiedMultiplier
}
