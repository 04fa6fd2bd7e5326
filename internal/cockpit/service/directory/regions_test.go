package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandColloquialRegion(t *testing.T) {
	e := NewRegionExpander()

	got := e.Expand("west county")
	require.Greater(t, len(got), 1, "a region should expand to multiple places")
	assert.Contains(t, got, "Guerneville")
	assert.Contains(t, got, "Sebastopol")
}

func TestExpandMatchesInsideLongerPhrase(t *testing.T) {
	e := NewRegionExpander()

	got := e.Expand("somewhere out in west county maybe")
	assert.Contains(t, got, "Guerneville")
}

func TestExpandAreaContainedInRegionName(t *testing.T) {
	e := NewRegionExpander()

	// "Boyes" is shorthand for Boyes Hot Springs.
	got := e.Expand("Boyes")
	assert.Contains(t, got, "Boyes Hot Springs")
}

func TestExpandUnknownAreaReturnsVerbatim(t *testing.T) {
	e := NewRegionExpander()

	// A street name that happens to share a word with no region entry must
	// pass through untouched.
	got := e.Expand("Roseland Drive")
	assert.Equal(t, []string{"Roseland Drive"}, got)
}

func TestExpandCaseInsensitive(t *testing.T) {
	e := NewRegionExpander()

	upper := e.Expand("WEST COUNTY")
	lower := e.Expand("west county")
	assert.Equal(t, lower, upper)
}
