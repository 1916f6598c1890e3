// Package vecmem provides an embeddable, single-process, in-memory vector
// store for Go.
//
// A Registry manages named, fixed-dimension collections of dense float64
// vectors. Collections support batched add/upsert/delete, point lookup by
// id, and exact nearest-neighbor search under cosine distance with
// conjunctive metadata filtering. Search is always an exhaustive scan over a
// point-in-time snapshot; there is no approximate index and no persistence.
//
// # Quick Start
//
//	ctx := context.Background()
//	reg := vecmem.NewRegistry()
//
//	coll, err := reg.GetOrCreate("articles", 3)
//	if err != nil {
//	    panic(err)
//	}
//
//	err = coll.Add(ctx, vecmem.Batch{
//	    IDs:        []string{"a", "b"},
//	    Embeddings: [][]float64{{0.2, 0.1, 0.7}, {0.9, 0.1, 0.0}},
//	    Documents:  []string{"doc-a", "doc-b"},
//	    Metadatas: []metadata.Document{
//	        {"kind": metadata.String("intro")},
//	        {"kind": metadata.String("summary")},
//	    },
//	})
//
// # Search
//
// Each query vector gets its own independent top-k result, ascending by
// cosine distance:
//
//	res, err := coll.Query(ctx, [][]float64{{0.85, 0.15, 0.05}}, 2,
//	    func(o *vecmem.QueryOptions) {
//	        o.IncludeDocuments = true
//	    })
//	ids := res.IDs()[0]
//	docs, _ := res.Documents()
//
// # Metadata Filtering
//
// Filters combine equality, set-membership and numeric-range constraints,
// all ANDed. They are built once and reused:
//
//	f, err := metadata.NewFilterBuilder().
//	    WhereIn("cameraNo", metadata.String("A02"), metadata.String("B01")).
//	    WhereGreaterThanOrEqual("createdAt", 1700000004000).
//	    WhereLessThan("createdAt", 1700200000000).
//	    Build()
//
//	res, err = coll.Query(ctx, queries, 10, vecmem.WithFilter(f))
//
// Equality and membership constraints are served by a roaring-bitmap
// inverted index; the scan still computes exact distances for every
// candidate.
//
// # Concurrency
//
// Collections are safe for concurrent use from multiple goroutines. Reads
// take a snapshot under a shared lock and scan without holding it, so
// queries see one consistent state and writers only wait for the snapshot
// copy, not for the scan.
package vecmem
