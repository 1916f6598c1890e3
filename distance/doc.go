// Package distance provides the vector math used by the collection engine:
// dot products, L2 norms and cosine distance over float64 vectors.
package distance
