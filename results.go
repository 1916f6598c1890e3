package vecmem

import (
	"github.com/hupe1980/vecmem/metadata"
)

// GetResult is the immutable result of GetByIDs. IDs are always populated;
// the optional fields use comma-ok accessors so "not requested" is
// distinguishable from "requested but empty". All contained slices are
// copies, never views into collection state.
type GetResult struct {
	ids                []string
	embeddings         [][]float64
	embeddingsIncluded bool
	documents          []string
	documentsIncluded  bool
	metadatas          []metadata.Document
	metadatasIncluded  bool
}

// IDs returns the ids of the records found, as the subsequence of the input
// ids that were present.
func (r *GetResult) IDs() []string { return r.ids }

// Embeddings returns the embeddings per hit. The bool is false when
// embeddings were not requested.
func (r *GetResult) Embeddings() ([][]float64, bool) {
	if !r.embeddingsIncluded {
		return nil, false
	}
	return r.embeddings, true
}

// Documents returns the documents per hit. The bool is false when documents
// were not requested.
func (r *GetResult) Documents() ([]string, bool) {
	if !r.documentsIncluded {
		return nil, false
	}
	return r.documents, true
}

// Metadatas returns the metadata per hit. The bool is false when metadata
// was not requested.
func (r *GetResult) Metadatas() ([]metadata.Document, bool) {
	if !r.metadatasIncluded {
		return nil, false
	}
	return r.metadatas, true
}

// QueryResult is the immutable result of Query. The outer slice of every
// field aligns with the input query vectors; the inner slices are each
// query's hits in ascending distance order.
type QueryResult struct {
	ids                [][]string
	distances          [][]float64
	embeddings         [][][]float64
	embeddingsIncluded bool
	documents          [][]string
	documentsIncluded  bool
	metadatas          [][]metadata.Document
	metadatasIncluded  bool
}

// IDs returns the hit ids per query.
func (r *QueryResult) IDs() [][]string { return r.ids }

// Distances returns the cosine distances per query, shaped like IDs.
func (r *QueryResult) Distances() [][]float64 { return r.distances }

// Embeddings returns the embeddings per query hit. The bool is false when
// embeddings were not requested.
func (r *QueryResult) Embeddings() ([][][]float64, bool) {
	if !r.embeddingsIncluded {
		return nil, false
	}
	return r.embeddings, true
}

// Documents returns the documents per query hit. The bool is false when
// documents were not requested.
func (r *QueryResult) Documents() ([][]string, bool) {
	if !r.documentsIncluded {
		return nil, false
	}
	return r.documents, true
}

// Metadatas returns the metadata per query hit. The bool is false when
// metadata was not requested.
func (r *QueryResult) Metadatas() ([][]metadata.Document, bool) {
	if !r.metadatasIncluded {
		return nil, false
	}
	return r.metadatas, true
}
