package vecmem

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGetOrCreate(t *testing.T) {
	reg := NewRegistry()

	coll, err := reg.GetOrCreate("images", 512)
	require.NoError(t, err)
	assert.Equal(t, "images", coll.Name())
	assert.Equal(t, 512, coll.Dimension())

	// Same name and dimension returns the same instance.
	same, err := reg.GetOrCreate("images", 512)
	require.NoError(t, err)
	assert.Same(t, coll, same)

	// Same name with a different dimension is rejected, the existing
	// collection stays untouched.
	_, err = reg.GetOrCreate("images", 768)
	var dm *ErrDimensionMismatch
	require.ErrorAs(t, err, &dm)
	assert.Equal(t, 512, dm.Expected)
	assert.Equal(t, 768, dm.Actual)

	got, ok := reg.Get("images")
	require.True(t, ok)
	assert.Same(t, coll, got)
}

func TestRegistryValidation(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.GetOrCreate("  ", 4)
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = reg.GetOrCreate("ok", 0)
	var id *ErrInvalidDimension
	require.ErrorAs(t, err, &id)
	assert.Equal(t, 0, id.Dimension)

	_, err = reg.GetOrCreate("ok", -3)
	assert.ErrorAs(t, err, &id)

	// Failed creations must not leave a collection behind.
	_, ok := reg.Get("ok")
	assert.False(t, ok)
}

func TestRegistryGetMiss(t *testing.T) {
	reg := NewRegistry()

	coll, ok := reg.Get("nope")
	assert.False(t, ok)
	assert.Nil(t, coll)
}

func TestRegistryClear(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.GetOrCreate("a", 2)
	require.NoError(t, err)
	_, err = reg.GetOrCreate("b", 3)
	require.NoError(t, err)

	reg.Clear()

	_, ok := reg.Get("a")
	assert.False(t, ok)

	// The name is free again, with a fresh dimension.
	coll, err := reg.GetOrCreate("a", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, coll.Dimension())
}

func TestRegistryConcurrentGetOrCreate(t *testing.T) {
	reg := NewRegistry()

	const goroutines = 16
	results := make([]*Collection, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			coll, err := reg.GetOrCreate("shared", 8)
			assert.NoError(t, err)
			results[i] = coll
		}()
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestRegistryIndependentCollections(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()

	for i, dim := range []int{2, 3, 5} {
		coll, err := reg.GetOrCreate(fmt.Sprintf("coll-%d", i), dim)
		require.NoError(t, err)

		embedding := make([]float64, dim)
		embedding[0] = 1
		require.NoError(t, coll.Add(ctx, Batch{
			IDs:        []string{"only"},
			Embeddings: [][]float64{embedding},
		}))
	}

	a, _ := reg.Get("coll-0")
	b, _ := reg.Get("coll-1")
	assert.Equal(t, 1, a.Count())
	assert.Equal(t, 1, b.Count())

	a.DeleteByIDs(ctx, []string{"only"})
	assert.Equal(t, 0, a.Count())
	assert.Equal(t, 1, b.Count(), "collections must not share state")
}
