package metadata

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Index is an inverted index from metadata key/value buckets to the slot
// numbers of the records carrying them. It accelerates the equality and
// membership parts of a Filter during query scans; range constraints stay a
// per-record check.
//
// Index carries no lock of its own: the owning collection mutates it under
// its write lock and compiles filters under its read lock.
type Index struct {
	inverted map[string]map[string]*roaring.Bitmap // key -> value bucket -> slots
}

// NewIndex creates an empty inverted index.
func NewIndex() *Index {
	return &Index{
		inverted: make(map[string]map[string]*roaring.Bitmap),
	}
}

// Add indexes every key/value pair of doc under the given slot.
func (ix *Index) Add(slot uint32, doc Document) {
	for key, value := range doc {
		valueMap, ok := ix.inverted[key]
		if !ok {
			valueMap = make(map[string]*roaring.Bitmap)
			ix.inverted[key] = valueMap
		}
		bucket := value.Key()
		bitmap, ok := valueMap[bucket]
		if !ok {
			bitmap = roaring.New()
			valueMap[bucket] = bitmap
		}
		bitmap.Add(slot)
	}
}

// Remove drops the slot from every bucket doc maps to, cleaning up buckets
// and keys that become empty.
func (ix *Index) Remove(slot uint32, doc Document) {
	for key, value := range doc {
		valueMap, ok := ix.inverted[key]
		if !ok {
			continue
		}
		bucket := value.Key()
		bitmap, ok := valueMap[bucket]
		if !ok {
			continue
		}
		bitmap.Remove(slot)
		if bitmap.IsEmpty() {
			delete(valueMap, bucket)
			if len(valueMap) == 0 {
				delete(ix.inverted, key)
			}
		}
	}
}

// Compile turns the equality and membership constraints of f into a bitmap of
// candidate slots. The second return is false when the filter has no
// compilable constraints, in which case every slot is a candidate.
//
// The returned bitmap is freshly allocated and safe to use after the owning
// collection's lock is released. It is a superset test only: numeric buckets
// can collide where int64 precision exceeds float64, so callers must still
// evaluate Filter.Matches on each candidate.
func (ix *Index) Compile(f *Filter) (*roaring.Bitmap, bool) {
	if f.IsEmpty() || (len(f.equals) == 0 && len(f.in) == 0) {
		return nil, false
	}

	var result *roaring.Bitmap

	intersect := func(bitmap *roaring.Bitmap) {
		if result == nil {
			result = bitmap
		} else {
			result.And(bitmap)
		}
	}

	for key, value := range f.equals {
		bitmap := ix.bucket(key, value)
		if bitmap == nil {
			return roaring.New(), true
		}
		intersect(bitmap.Clone())
	}

	for key, candidates := range f.in {
		union := roaring.New()
		for _, candidate := range candidates {
			if bitmap := ix.bucket(key, candidate); bitmap != nil {
				union.Or(bitmap)
			}
		}
		if union.IsEmpty() {
			return union, true
		}
		intersect(union)
	}

	return result, true
}

// bucket returns the live bitmap for key=value, or nil if nothing maps there.
func (ix *Index) bucket(key string, value Value) *roaring.Bitmap {
	valueMap, ok := ix.inverted[key]
	if !ok {
		return nil
	}
	return valueMap[value.Key()]
}
