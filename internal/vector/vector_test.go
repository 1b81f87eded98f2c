package vector

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCosine_SelfSimilarity(t *testing.T) {
	v := []float64{0.3, -1.2, 4.5}
	if got := Cosine(v, v); !almostEqual(got, 1.0) {
		t.Errorf("expected self-similarity 1.0, got %g", got)
	}
}

func TestCosine_Symmetric(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{-2, 0.5, 7}
	if Cosine(a, b) != Cosine(b, a) {
		t.Errorf("expected symmetric cosine, got %g and %g", Cosine(a, b), Cosine(b, a))
	}
}

func TestCosine_ZeroNorm(t *testing.T) {
	zero := []float64{0, 0, 0}
	v := []float64{1, 2, 3}

	if got := Cosine(zero, v); got != 0 {
		t.Errorf("expected 0 for zero-norm input, got %g", got)
	}
	if got := Cosine(zero, zero); got != 0 {
		t.Errorf("expected 0 for two zero vectors, got %g", got)
	}
	if got := Cosine(nil, v); got != 0 {
		t.Errorf("expected 0 for nil input, got %g", got)
	}
}

func TestCosine_Orthogonal(t *testing.T) {
	a := []float64{1, 0}
	b := []float64{0, 1}
	if got := Cosine(a, b); !almostEqual(got, 0) {
		t.Errorf("expected 0 for orthogonal vectors, got %g", got)
	}

	c := []float64{-1, 0}
	if got := Cosine(a, c); !almostEqual(got, -1) {
		t.Errorf("expected -1 for opposite vectors, got %g", got)
	}
}

func TestCentroid(t *testing.T) {
	vectors := [][]float64{
		{1, 2},
		{3, 4},
	}
	centroid := Centroid(vectors)
	if len(centroid) != 2 || !almostEqual(centroid[0], 2) || !almostEqual(centroid[1], 3) {
		t.Errorf("expected centroid [2 3], got %v", centroid)
	}

	if Centroid(nil) != nil {
		t.Error("expected nil centroid for no vectors")
	}
}

func TestPairwiseStats_InsufficientData(t *testing.T) {
	// Below 2 vectors: no mean, no stddev. Null, not zero.
	mean, stddev := PairwiseStats(nil)
	if mean != nil || stddev != nil {
		t.Error("expected nil stats for empty input")
	}

	mean, stddev = PairwiseStats([][]float64{{1, 0}})
	if mean != nil || stddev != nil {
		t.Error("expected nil stats for a single vector")
	}

	// Exactly 2 vectors: mean defined, stddev still nil.
	mean, stddev = PairwiseStats([][]float64{{1, 0}, {1, 0}})
	if mean == nil {
		t.Fatal("expected mean for two vectors")
	}
	if !almostEqual(*mean, 1.0) {
		t.Errorf("expected mean 1.0 for identical vectors, got %g", *mean)
	}
	if stddev != nil {
		t.Error("expected nil stddev for two vectors")
	}
}

func TestPairwiseStats_ThreeVectors(t *testing.T) {
	// Three identical vectors: mean 1, stddev 0 (defined, not nil).
	vectors := [][]float64{{2, 0}, {2, 0}, {2, 0}}
	mean, stddev := PairwiseStats(vectors)
	if mean == nil || stddev == nil {
		t.Fatal("expected both stats for three vectors")
	}
	if !almostEqual(*mean, 1.0) {
		t.Errorf("expected mean 1.0, got %g", *mean)
	}
	if !almostEqual(*stddev, 0) {
		t.Errorf("expected stddev 0, got %g", *stddev)
	}
}

func TestMeanCosine(t *testing.T) {
	query := []float64{1, 0}
	vectors := [][]float64{
		{1, 0},  // cos 1
		{0, 1},  // cos 0
		{-1, 0}, // cos -1
	}
	mean := MeanCosine(vectors, query)
	if mean == nil {
		t.Fatal("expected mean for non-empty input")
	}
	if !almostEqual(*mean, 0) {
		t.Errorf("expected mean 0, got %g", *mean)
	}

	if MeanCosine(nil, query) != nil {
		t.Error("expected nil for no vectors")
	}
	if MeanCosine(vectors, nil) != nil {
		t.Error("expected nil for empty reference")
	}
}
