package vecmem

import (
	"context"
	"math"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/vecmem/distance"
	"github.com/hupe1980/vecmem/internal/queue"
	"github.com/hupe1980/vecmem/metadata"
)

// Collection is a named, fixed-dimension store of vector records with
// exact cosine-distance search and metadata filtering.
//
// All operations are safe for concurrent use. Writes (Add, Upsert,
// DeleteByIDs) are serialized against each other and against readers; reads
// (Count, GetByIDs, Query) run concurrently with each other. Input
// validation and record construction happen before the write lock is taken,
// so lock hold time covers only the map mutation itself.
type Collection struct {
	name      string
	dimension int

	mu        sync.RWMutex
	records   map[string]*record
	slots     []*record // slot -> record, nil entries are free
	freeSlots []uint32
	meta      *metadata.Index

	logger  *Logger
	metrics MetricsCollector
}

func newCollection(name string, dimension int, logger *Logger, metrics MetricsCollector) *Collection {
	return &Collection{
		name:      name,
		dimension: dimension,
		records:   make(map[string]*record),
		meta:      metadata.NewIndex(),
		logger:    logger.WithCollection(name),
		metrics:   metrics,
	}
}

// Name returns the collection's unique name.
func (c *Collection) Name() string { return c.name }

// Dimension returns the fixed vector dimension declared at creation.
func (c *Collection) Dimension() int { return c.dimension }

// Count returns the number of stored records.
func (c *Collection) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.records)
}

// Add stores the batch, rejecting the whole batch with ErrDuplicateID if any
// id is already present. Either every record is inserted or none are.
func (c *Collection) Add(ctx context.Context, batch Batch) error {
	start := time.Now()
	err := c.store(batch, false)
	c.metrics.RecordAdd(len(batch.IDs), time.Since(start), err)
	c.logger.LogWrite(ctx, "add", len(batch.IDs), err)
	return err
}

// Upsert stores the batch, replacing existing records wholesale: a replaced
// record keeps nothing from its predecessor, including document and metadata.
func (c *Collection) Upsert(ctx context.Context, batch Batch) error {
	start := time.Now()
	err := c.store(batch, true)
	c.metrics.RecordUpsert(len(batch.IDs), time.Since(start), err)
	c.logger.LogWrite(ctx, "upsert", len(batch.IDs), err)
	return err
}

func (c *Collection) store(batch Batch, overwrite bool) error {
	newRecords, err := buildRecords(c.dimension, batch)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !overwrite {
		for _, rec := range newRecords {
			if _, ok := c.records[rec.id]; ok {
				return &ErrDuplicateID{ID: rec.id}
			}
		}
	}

	for _, rec := range newRecords {
		if existing, ok := c.records[rec.id]; ok {
			rec.slot = existing.slot
			c.meta.Remove(existing.slot, existing.meta)
		} else {
			rec.slot = c.allocSlot()
		}
		c.slots[rec.slot] = rec
		c.meta.Add(rec.slot, rec.meta)
		c.records[rec.id] = rec
	}

	return nil
}

// allocSlot reserves a slot from the free list or by extending the slot
// table. Caller must hold the write lock.
func (c *Collection) allocSlot() uint32 {
	if n := len(c.freeSlots); n > 0 {
		slot := c.freeSlots[n-1]
		c.freeSlots = c.freeSlots[:n-1]
		return slot
	}
	c.slots = append(c.slots, nil)
	return uint32(len(c.slots) - 1)
}

// DeleteByIDs removes the given ids and returns the number of records
// actually removed. Unknown ids are skipped silently.
func (c *Collection) DeleteByIDs(ctx context.Context, ids []string) int {
	start := time.Now()

	c.mu.Lock()
	removed := 0
	for _, id := range ids {
		rec, ok := c.records[id]
		if !ok {
			continue
		}
		delete(c.records, id)
		c.slots[rec.slot] = nil
		c.freeSlots = append(c.freeSlots, rec.slot)
		c.meta.Remove(rec.slot, rec.meta)
		removed++
	}
	c.mu.Unlock()

	c.metrics.RecordDelete(removed, time.Since(start))
	c.logger.LogDelete(ctx, len(ids), removed)
	return removed
}

// GetOptions controls which optional fields GetByIDs copies out.
type GetOptions struct {
	IncludeEmbeddings bool
	IncludeDocuments  bool
	IncludeMetadatas  bool
}

// WithAllFields requests embeddings, documents and metadata.
func WithAllFields() func(o *GetOptions) {
	return func(o *GetOptions) {
		o.IncludeEmbeddings = true
		o.IncludeDocuments = true
		o.IncludeMetadatas = true
	}
}

// GetByIDs looks up each id in input order and returns the hits. Ids not
// present are skipped: a missing id is not an error for a best-effort batch
// lookup. Returned embeddings and metadata are defensive copies.
func (c *Collection) GetByIDs(ctx context.Context, ids []string, optFns ...func(o *GetOptions)) *GetResult {
	start := time.Now()

	var opts GetOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	res := &GetResult{
		embeddingsIncluded: opts.IncludeEmbeddings,
		documentsIncluded:  opts.IncludeDocuments,
		metadatasIncluded:  opts.IncludeMetadatas,
	}

	c.mu.RLock()
	for _, id := range ids {
		rec, ok := c.records[id]
		if !ok {
			continue
		}
		res.ids = append(res.ids, rec.id)
		if opts.IncludeEmbeddings {
			res.embeddings = append(res.embeddings, slices.Clone(rec.embedding))
		}
		if opts.IncludeDocuments {
			res.documents = append(res.documents, rec.document)
		}
		if opts.IncludeMetadatas {
			res.metadatas = append(res.metadatas, rec.meta.Clone())
		}
	}
	c.mu.RUnlock()

	c.metrics.RecordGet(len(res.ids), time.Since(start))
	return res
}

// QueryOptions controls filtering and output fields for Query.
type QueryOptions struct {
	// Filter restricts candidates to records whose metadata matches.
	// Nil means no filtering.
	Filter *metadata.Filter

	IncludeEmbeddings bool
	IncludeDocuments  bool
	IncludeMetadatas  bool
}

// WithFilter sets the metadata filter for a query.
func WithFilter(f *metadata.Filter) func(o *QueryOptions) {
	return func(o *QueryOptions) {
		o.Filter = f
	}
}

// Query runs an exact nearest-neighbor search for each query vector
// independently and returns the topK closest records per query, ordered by
// ascending cosine distance. Results for different query vectors do not
// interact and come back in input order.
//
// All candidates are scanned against a snapshot taken under the read lock,
// so each query reflects one consistent point in time; the lock is not held
// during the scan itself. Candidates with equal distance have no guaranteed
// relative order.
func (c *Collection) Query(ctx context.Context, queries [][]float64, topK int, optFns ...func(o *QueryOptions)) (*QueryResult, error) {
	start := time.Now()
	res, err := c.query(ctx, queries, topK, optFns...)
	c.metrics.RecordQuery(len(queries), topK, time.Since(start), err)
	c.logger.LogQuery(ctx, len(queries), topK, err)
	return res, err
}

func (c *Collection) query(ctx context.Context, queries [][]float64, topK int, optFns ...func(o *QueryOptions)) (*QueryResult, error) {
	if topK <= 0 {
		return nil, ErrInvalidK
	}
	for _, q := range queries {
		if len(q) != c.dimension {
			return nil, &ErrDimensionMismatch{Expected: c.dimension, Actual: len(q)}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var opts QueryOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	filter := opts.Filter

	// Snapshot the slot table and compile the filter's candidate bitmap
	// under one shared-lock acquisition, then scan lock-free.
	c.mu.RLock()
	snapshot := slices.Clone(c.slots)
	var candidates *roaring.Bitmap
	useBitmap := false
	if filter != nil {
		candidates, useBitmap = c.meta.Compile(filter)
	}
	c.mu.RUnlock()

	res := &QueryResult{
		ids:                make([][]string, len(queries)),
		distances:          make([][]float64, len(queries)),
		embeddingsIncluded: opts.IncludeEmbeddings,
		documentsIncluded:  opts.IncludeDocuments,
		metadatasIncluded:  opts.IncludeMetadatas,
	}
	if opts.IncludeEmbeddings {
		res.embeddings = make([][][]float64, len(queries))
	}
	if opts.IncludeDocuments {
		res.documents = make([][]string, len(queries))
	}
	if opts.IncludeMetadatas {
		res.metadatas = make([][]metadata.Document, len(queries))
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for qi, q := range queries {
		g.Go(func() error {
			scored := c.scan(snapshot, candidates, useBitmap, filter, q, topK)

			ids := make([]string, len(scored))
			dists := make([]float64, len(scored))
			for i, item := range scored {
				rec := snapshot[item.Index]
				ids[i] = rec.id
				dists[i] = item.Distance
			}
			res.ids[qi] = ids
			res.distances[qi] = dists

			if opts.IncludeEmbeddings {
				embeddings := make([][]float64, len(scored))
				for i, item := range scored {
					embeddings[i] = slices.Clone(snapshot[item.Index].embedding)
				}
				res.embeddings[qi] = embeddings
			}
			if opts.IncludeDocuments {
				documents := make([]string, len(scored))
				for i, item := range scored {
					documents[i] = snapshot[item.Index].document
				}
				res.documents[qi] = documents
			}
			if opts.IncludeMetadatas {
				metadatas := make([]metadata.Document, len(scored))
				for i, item := range scored {
					metadatas[i] = snapshot[item.Index].meta.Clone()
				}
				res.metadatas[qi] = metadatas
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return res, nil
}

// scan selects the topK records of the snapshot closest to q, ascending by
// distance. A bounded max-heap keeps the selection at O(n log k) time and
// O(k) space; a candidate only displaces the current worst when it is
// strictly closer, so ties have no defined order.
func (c *Collection) scan(snapshot []*record, candidates *roaring.Bitmap, useBitmap bool, filter *metadata.Filter, q []float64, topK int) []queue.Item {
	queryNorm := distance.Norm(q)

	actualK := topK
	if actualK > len(snapshot) {
		actualK = len(snapshot)
	}
	top := queue.NewMax(actualK)

	consider := func(idx int) {
		rec := snapshot[idx]
		if rec == nil {
			return
		}
		// The bitmap is a superset pre-filter; Matches is authoritative.
		if filter != nil && !filter.Matches(rec.meta) {
			return
		}
		dist := distance.Cosine(q, queryNorm, rec.embedding, rec.norm)
		if math.IsNaN(dist) || math.IsInf(dist, 0) {
			return
		}
		if top.Len() < actualK {
			top.PushItem(queue.Item{Index: idx, Distance: dist})
			return
		}
		if worst, _ := top.TopItem(); dist < worst.Distance {
			top.PopItem()
			top.PushItem(queue.Item{Index: idx, Distance: dist})
		}
	}

	if useBitmap {
		it := candidates.Iterator()
		for it.HasNext() {
			if idx := int(it.Next()); idx < len(snapshot) {
				consider(idx)
			}
		}
	} else {
		for idx := range snapshot {
			consider(idx)
		}
	}

	scored := make([]queue.Item, top.Len())
	for i := top.Len() - 1; i >= 0; i-- {
		item, _ := top.PopItem()
		scored[i] = item
	}
	return scored
}
