package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/hupe1980/vecmem"
	"github.com/hupe1980/vecmem/metadata"
	"github.com/hupe1980/vecmem/testutil"
)

func main() {
	ctx := context.Background()

	seed := int64(4711)
	dim := 128
	size := 50000
	k := 10

	metrics := &vecmem.BasicMetricsCollector{}
	reg := vecmem.NewRegistry(func(o *vecmem.RegistryOptions) {
		o.Logger = vecmem.NewTextLogger(slog.LevelInfo)
		o.Metrics = metrics
	})

	coll, err := reg.GetOrCreate("demo", dim)
	if err != nil {
		log.Fatal(err)
	}

	rng := testutil.NewRNG(seed)
	ids := testutil.SequentialIDs("vec", size)
	vectors := rng.RandomVectors(size, dim)
	metadatas := make([]metadata.Document, size)
	for i := range metadatas {
		metadatas[i] = metadata.Document{
			"shard":     metadata.Int(int64(i % 8)),
			"createdAt": metadata.Int(time.Now().UnixMilli()),
		}
	}

	fmt.Println("--- Insert ---")
	fmt.Println("Dimension:", dim)
	fmt.Println("Size:", size)

	start := time.Now()
	if err := coll.Add(ctx, vecmem.Batch{
		IDs:        ids,
		Embeddings: vectors,
		Metadatas:  metadatas,
	}); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Insert took:", time.Since(start))

	query := testutil.NewRNG(seed + 1).RandomVectors(1, dim)

	fmt.Println("--- Query ---")
	start = time.Now()
	res, err := coll.Query(ctx, query, k)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Query took:", time.Since(start))
	for i, id := range res.IDs()[0] {
		fmt.Printf("%2d. %s (distance %.4f)\n", i+1, id, res.Distances()[0][i])
	}

	filter, err := metadata.NewFilterBuilder().
		WhereEquals("shard", metadata.Int(3)).
		Build()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("--- Filtered query ---")
	start = time.Now()
	res, err = coll.Query(ctx, query, k, vecmem.WithFilter(filter))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Filtered query took:", time.Since(start))
	fmt.Println("Hits:", len(res.IDs()[0]))

	stats := metrics.GetStats()
	fmt.Println("--- Stats ---")
	fmt.Println("Adds:", stats.AddRecords)
	fmt.Println("Queries:", stats.QueryCount)
	fmt.Println("Avg query:", time.Duration(stats.QueryAvgNanos))
}
