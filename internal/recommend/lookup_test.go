package recommend

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupCopingOnePerDuration(t *testing.T) {
	s := newTestStorage(t)
	seedMaster(t, s, 4, 10, 60, 180)
	rng := rand.New(rand.NewSource(1))

	got, err := LookupCoping(context.Background(), s, 4, []int{10, 60, 180}, rng)
	assert.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, "rest-4-10", got[0].RestType)
	assert.Equal(t, "rest-4-60", got[1].RestType)
	assert.Equal(t, "rest-4-180", got[2].RestType)
}

func TestLookupCopingOmitsEmptyDurations(t *testing.T) {
	s := newTestStorage(t)
	seedMaster(t, s, 2, 60) // only the middle duration has a record
	rng := rand.New(rand.NewSource(1))

	got, err := LookupCoping(context.Background(), s, 2, []int{10, 60, 180}, rng)
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "rest-2-60", got[0].RestType)
}

func TestLookupCopingNoMatchesAtAll(t *testing.T) {
	s := newTestStorage(t)
	rng := rand.New(rand.NewSource(1))

	got, err := LookupCoping(context.Background(), s, 1, []int{10, 60, 180}, rng)
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestLookupCopingDoesNotCrossBuckets(t *testing.T) {
	s := newTestStorage(t)
	seedMaster(t, s, 3, 10, 60, 180)
	rng := rand.New(rand.NewSource(1))

	got, err := LookupCoping(context.Background(), s, 4, []int{10, 60, 180}, rng)
	assert.NoError(t, err)
	assert.Empty(t, got)
}
