package directory

import (
	"strings"
)

// regionEntry maps a colloquial area key to the concrete place names it
// denotes.
type regionEntry struct {
	key    string
	places []string
}

// defaultRegionTable expands the colloquial Sonoma County area names staff
// actually use. Table order is significant: more specific keys
// (neighborhoods, districts) come before the broad regions that contain
// them, so "boyes" resolves to Boyes Hot Springs rather than being
// swallowed by "sonoma valley".
var defaultRegionTable = []regionEntry{
	{"boyes", []string{"Boyes Hot Springs"}},
	{"the springs", []string{"Boyes Hot Springs", "Fetters Hot Springs", "Agua Caliente", "El Verano"}},
	{"russian river", []string{"Guerneville", "Monte Rio", "Rio Nido", "Duncans Mills"}},
	{"river", []string{"Guerneville", "Monte Rio", "Rio Nido", "Duncans Mills"}},
	{"coast", []string{"Bodega Bay", "Jenner", "Timber Cove", "Sea Ranch"}},
	{"west county", []string{"Guerneville", "Sebastopol", "Forestville", "Occidental", "Monte Rio", "Graton", "Bodega Bay"}},
	{"sonoma valley", []string{"Sonoma", "Boyes Hot Springs", "Glen Ellen", "Kenwood", "El Verano"}},
	{"south county", []string{"Petaluma", "Penngrove", "Cotati", "Rohnert Park"}},
	{"north county", []string{"Healdsburg", "Windsor", "Cloverdale", "Geyserville"}},
}

// RegionExpander translates a colloquial geographic name into the concrete
// set of place names it denotes, for broadened search. The table is loaded
// once and injected rather than referenced as an ambient global.
type RegionExpander struct {
	table []regionEntry
}

// NewRegionExpander builds an expander over the default area table.
func NewRegionExpander() *RegionExpander {
	return &RegionExpander{table: defaultRegionTable}
}

// Expand returns the place names the area denotes. The result is never
// empty: unknown areas come back as [area] verbatim so callers can feed
// the result straight into a multi-pattern search.
//
// A table key matches when the normalized input contains the key as a
// substring or the key contains the input ("west county" and "the west
// county area" both match). The first matching key wins.
func (e *RegionExpander) Expand(area string) []string {
	norm := normalizeText(area)
	if norm == "" {
		return []string{area}
	}

	for _, entry := range e.table {
		if containsEither(norm, entry.key) {
			out := make([]string, len(entry.places))
			copy(out, entry.places)
			return out
		}
	}
	return []string{area}
}

func containsEither(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}
