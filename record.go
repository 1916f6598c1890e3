package vecmem

import (
	"slices"
	"strings"

	"github.com/hupe1980/vecmem/distance"
	"github.com/hupe1980/vecmem/metadata"
)

// Batch is the parallel-list input for Add and Upsert. The record at index i
// is formed from IDs[i], Embeddings[i] and, when the optional lists are
// non-nil, Documents[i] and Metadatas[i]. A nil optional list means no
// documents/metadata for the whole batch; a non-nil one must match len(IDs)
// exactly.
type Batch struct {
	IDs        []string
	Embeddings [][]float64
	Documents  []string
	Metadatas  []metadata.Document
}

// record is one stored vector. It is immutable after construction: an upsert
// replaces the whole record, it never mutates one in place, so concurrent
// readers holding a snapshot can use it without synchronization.
type record struct {
	id        string
	embedding []float64
	norm      float64
	document  string
	meta      metadata.Document
	slot      uint32
}

// buildRecords validates the batch and constructs the records to store.
// It runs entirely outside the collection lock; a batch either fully
// validates or fails with no record constructed. Embeddings and metadata are
// deep-copied so the caller's slices never alias stored state, and the L2
// norm is computed once here.
func buildRecords(dimension int, batch Batch) ([]*record, error) {
	n := len(batch.IDs)

	if len(batch.Embeddings) != n {
		return nil, &ErrSizeMismatch{Field: "embeddings", Expected: n, Actual: len(batch.Embeddings)}
	}
	if batch.Documents != nil && len(batch.Documents) != n {
		return nil, &ErrSizeMismatch{Field: "documents", Expected: n, Actual: len(batch.Documents)}
	}
	if batch.Metadatas != nil && len(batch.Metadatas) != n {
		return nil, &ErrSizeMismatch{Field: "metadatas", Expected: n, Actual: len(batch.Metadatas)}
	}

	records := make([]*record, 0, n)
	for i := 0; i < n; i++ {
		id := batch.IDs[i]
		if strings.TrimSpace(id) == "" {
			return nil, &ErrInvalidID{Index: i}
		}

		embedding := batch.Embeddings[i]
		if len(embedding) != dimension {
			return nil, &ErrDimensionMismatch{Expected: dimension, Actual: len(embedding)}
		}

		rec := &record{
			id:        id,
			embedding: slices.Clone(embedding),
		}
		rec.norm = distance.Norm(rec.embedding)
		if batch.Documents != nil {
			rec.document = batch.Documents[i]
		}
		if batch.Metadatas != nil {
			rec.meta = batch.Metadatas[i].Clone()
		}
		records = append(records, rec)
	}

	return records, nil
}
