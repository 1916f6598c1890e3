package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexCompileEquality(t *testing.T) {
	ix := NewIndex()
	ix.Add(0, Document{"tag": String("keep")})
	ix.Add(1, Document{"tag": String("drop")})
	ix.Add(2, Document{"tag": String("keep")})

	f := mustBuild(t, NewFilterBuilder().WhereEquals("tag", String("keep")))

	bitmap, ok := ix.Compile(f)
	require.True(t, ok)
	require.NotNil(t, bitmap)
	assert.Equal(t, []uint32{0, 2}, bitmap.ToArray())
}

func TestIndexCompileMembership(t *testing.T) {
	ix := NewIndex()
	ix.Add(0, Document{"cameraNo": String("A01")})
	ix.Add(1, Document{"cameraNo": String("A02")})
	ix.Add(2, Document{"cameraNo": String("B01")})

	f := mustBuild(t, NewFilterBuilder().WhereIn("cameraNo", String("A02"), String("B01")))

	bitmap, ok := ix.Compile(f)
	require.True(t, ok)
	assert.Equal(t, []uint32{1, 2}, bitmap.ToArray())
}

func TestIndexCompileIntersectsConstraints(t *testing.T) {
	ix := NewIndex()
	ix.Add(0, Document{"tag": String("keep"), "cameraNo": String("A01")})
	ix.Add(1, Document{"tag": String("keep"), "cameraNo": String("A02")})
	ix.Add(2, Document{"tag": String("drop"), "cameraNo": String("A02")})

	f := mustBuild(t, NewFilterBuilder().
		WhereEquals("tag", String("keep")).
		WhereIn("cameraNo", String("A02")))

	bitmap, ok := ix.Compile(f)
	require.True(t, ok)
	assert.Equal(t, []uint32{1}, bitmap.ToArray())
}

func TestIndexCompileUnknownBucket(t *testing.T) {
	ix := NewIndex()
	ix.Add(0, Document{"tag": String("keep")})

	f := mustBuild(t, NewFilterBuilder().WhereEquals("tag", String("missing")))

	bitmap, ok := ix.Compile(f)
	require.True(t, ok)
	assert.True(t, bitmap.IsEmpty())
}

func TestIndexCompileRangeOnlyFallsBack(t *testing.T) {
	ix := NewIndex()
	ix.Add(0, Document{"createdAt": Int(100)})

	f := mustBuild(t, NewFilterBuilder().WhereGreaterThan("createdAt", 50))

	bitmap, ok := ix.Compile(f)
	assert.False(t, ok)
	assert.Nil(t, bitmap)
}

func TestIndexCompileEmptyFilterFallsBack(t *testing.T) {
	ix := NewIndex()
	bitmap, ok := ix.Compile(EmptyFilter())
	assert.False(t, ok)
	assert.Nil(t, bitmap)
}

func TestIndexRemoveCleansBuckets(t *testing.T) {
	ix := NewIndex()
	doc := Document{"tag": String("keep")}
	ix.Add(7, doc)
	ix.Remove(7, doc)

	f := mustBuild(t, NewFilterBuilder().WhereEquals("tag", String("keep")))

	bitmap, ok := ix.Compile(f)
	require.True(t, ok)
	assert.True(t, bitmap.IsEmpty())
	assert.Empty(t, ix.inverted)
}

func TestIndexNumericBucketsCrossKind(t *testing.T) {
	ix := NewIndex()
	ix.Add(0, Document{"v": Int(10)})
	ix.Add(1, Document{"v": Float(10)})

	f := mustBuild(t, NewFilterBuilder().WhereEquals("v", Float(10)))

	bitmap, ok := ix.Compile(f)
	require.True(t, ok)
	assert.Equal(t, []uint32{0, 1}, bitmap.ToArray())
}

func TestIndexCompileResultIsDetached(t *testing.T) {
	ix := NewIndex()
	ix.Add(0, Document{"tag": String("keep")})

	f := mustBuild(t, NewFilterBuilder().WhereEquals("tag", String("keep")))
	bitmap, ok := ix.Compile(f)
	require.True(t, ok)

	// Later index mutations must not leak into a compiled bitmap.
	ix.Add(1, Document{"tag": String("keep")})
	assert.Equal(t, []uint32{0}, bitmap.ToArray())
}
