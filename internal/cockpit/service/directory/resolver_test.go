package directory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestResolveExactBeatsSubstring(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertPlace(ctx, &Place{
		ID: "p1", Name: "Riverside Mobile Home Park", City: "Guerneville",
		UpdatedAt: time.Now(),
	}))
	require.NoError(t, s.UpsertPlace(ctx, &Place{
		ID: "p2", Name: "Riverside", City: "Monte Rio",
		UpdatedAt: time.Now().Add(-24 * time.Hour),
	}))

	cand, err := s.Resolve(ctx, EntityPlace, "Riverside")
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.Equal(t, "p2", cand.ID, "the exact name match wins even when it is older")
}

func TestResolveRecencyBreaksTies(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertPlace(ctx, &Place{
		ID: "old", Name: "Oak Hill Farm Stand", City: "Sebastopol",
		UpdatedAt: time.Now().Add(-48 * time.Hour),
	}))
	require.NoError(t, s.UpsertPlace(ctx, &Place{
		ID: "new", Name: "Oak Hill Trailer Court", City: "Sebastopol",
		UpdatedAt: time.Now(),
	}))

	cand, err := s.Resolve(ctx, EntityPlace, "Oak Hill")
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.Equal(t, "new", cand.ID)
}

func TestResolveExcludesDeletedAndMerged(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertPlace(ctx, &Place{ID: "gone", Name: "Closed Colony Site", UpdatedAt: time.Now()}))
	require.NoError(t, s.MarkPlaceDeleted(ctx, "gone"))

	cand, err := s.Resolve(ctx, EntityPlace, "Closed Colony Site")
	require.NoError(t, err)
	assert.Nil(t, cand, "soft-deleted records must not resolve")

	require.NoError(t, s.UpsertPerson(ctx, &Person{ID: "dup", DisplayName: "Maria Duplicate", UpdatedAt: time.Now()}))
	require.NoError(t, s.UpsertPerson(ctx, &Person{ID: "canon", DisplayName: "Maria Canonical", UpdatedAt: time.Now()}))
	require.NoError(t, s.MarkPersonMerged(ctx, "dup", "canon"))

	cand, err = s.Resolve(ctx, EntityPerson, "Maria Duplicate")
	require.NoError(t, err)
	assert.Nil(t, cand, "merged-away records must not resolve")
}

func TestResolvePersonByPhone(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertPerson(ctx, &Person{
		ID: "myrna", DisplayName: "Myrna Chavez", Phone: "7072061094",
		UpdatedAt: time.Now(),
	}))

	cand, err := s.Resolve(ctx, EntityPerson, "707-206-1094")
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.Equal(t, "myrna", cand.ID)

	// 11-digit form with leading country code normalizes to the same number.
	cand, err = s.Resolve(ctx, EntityPerson, "1 (707) 206-1094")
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.Equal(t, "myrna", cand.ID)
}

func TestResolveNothingFound(t *testing.T) {
	s := newTestStore(t)

	cand, err := s.Resolve(context.Background(), EntityPlace, "no such place anywhere")
	require.NoError(t, err)
	assert.Nil(t, cand)
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "7072061094", NormalizePhone("(707) 206-1094"))
	assert.Equal(t, "7072061094", NormalizePhone("1-707-206-1094"))
	assert.Equal(t, "2061094", NormalizePhone("206.1094"))
	assert.Equal(t, "", NormalizePhone("no digits here"))
}
