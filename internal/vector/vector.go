// Package vector provides the small amount of vector-space math the triage
// core needs. All functions are pure and never divide by zero.
package vector

import "math"

// Cosine returns the cosine similarity of two vectors. It returns 0 when
// either vector has zero norm or the dimensions differ, never NaN.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Centroid returns the component-wise mean of the given vectors. Vectors
// shorter than the first are padded with zeros; nil input yields nil.
func Centroid(vectors [][]float64) []float64 {
	if len(vectors) == 0 {
		return nil
	}

	dim := 0
	for _, v := range vectors {
		if len(v) > dim {
			dim = len(v)
		}
	}
	if dim == 0 {
		return nil
	}

	centroid := make([]float64, dim)
	for _, v := range vectors {
		for i, x := range v {
			centroid[i] += x
		}
	}
	for i := range centroid {
		centroid[i] /= float64(len(vectors))
	}
	return centroid
}

// PairwiseStats computes the mean and population standard deviation of the
// cosine similarities over all unordered pairs of vectors. Mean requires at
// least 2 vectors, stddev at least 3; below those counts the corresponding
// pointer is nil so callers can tell "tight cluster" from "insufficient
// data".
func PairwiseStats(vectors [][]float64) (mean, stddev *float64) {
	if len(vectors) < 2 {
		return nil, nil
	}

	var sims []float64
	for i := 0; i < len(vectors); i++ {
		for j := i + 1; j < len(vectors); j++ {
			sims = append(sims, Cosine(vectors[i], vectors[j]))
		}
	}

	var sum float64
	for _, s := range sims {
		sum += s
	}
	m := sum / float64(len(sims))
	mean = &m

	if len(vectors) < 3 {
		return mean, nil
	}

	var sq float64
	for _, s := range sims {
		d := s - m
		sq += d * d
	}
	sd := math.Sqrt(sq / float64(len(sims)))
	stddev = &sd

	return mean, stddev
}

// MeanCosine returns the mean cosine similarity of each vector against a
// single reference vector. Nil when there are no vectors.
func MeanCosine(vectors [][]float64, reference []float64) *float64 {
	if len(vectors) == 0 || len(reference) == 0 {
		return nil
	}
	var sum float64
	for _, v := range vectors {
		sum += Cosine(v, reference)
	}
	m := sum / float64(len(vectors))
	return &m
}
