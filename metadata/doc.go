// Package metadata provides typed metadata documents, conjunctive filters and
// a roaring-bitmap inverted index for filtered vector search.
//
// It uses Go's unique package to intern string values, reducing memory usage
// for repetitive metadata.
package metadata
