package distance

import "math"

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Norm calculates the L2 (Euclidean) norm of v.
func Norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Cosine calculates the cosine distance between two vectors with
// precomputed norms.
//
// The distance is 1 minus the cosine similarity. If either norm is zero the
// similarity is defined as 0, so the distance is 1 (this avoids a division by
// zero for degenerate vectors). Floating-point rounding can push the
// similarity slightly above 1, so the distance is clamped at 0.
//
// The result may be NaN or Inf if the inputs contain non-finite components;
// callers are expected to drop such candidates.
func Cosine(a []float64, normA float64, b []float64, normB float64) float64 {
	sim := CosineSimilarity(a, normA, b, normB)
	d := 1.0 - sim
	if d < 0 {
		return 0
	}
	return d
}

// CosineSimilarity calculates the cosine similarity between two vectors with
// precomputed norms. It returns 0 when either norm is zero.
func CosineSimilarity(a []float64, normA float64, b []float64, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	return Dot(a, b) / (normA * normB)
}
