package model

// ClaimGeometricMeasurement holds the Level-1 (non-semantic) measurements for
// one claim. Pointer fields distinguish "could not measure" (nil) from
// "measured as zero"; consumers must never collapse the two.
type ClaimGeometricMeasurement struct {
	ClaimID string `json:"claim_id"`

	// SourceCoherence is the mean pairwise cosine similarity of the claim's
	// source-statement embeddings. Nil with fewer than 2 embedded statements.
	SourceCoherence *float64 `json:"source_coherence"`

	// EmbeddingSpread is the standard deviation of those pairwise
	// similarities. Nil with fewer than 3 embedded statements.
	EmbeddingSpread *float64 `json:"embedding_spread"`

	// RegionSpan counts distinct regions touched by the source statements.
	RegionSpan int `json:"region_span"`

	// SourceModelDiversity counts distinct originating models, traced
	// exactly through paragraph ownership.
	SourceModelDiversity int `json:"source_model_diversity"`

	SourceStatementCount int `json:"source_statement_count"`

	// DominantRegionID is the region holding the most source statements.
	// Ties break to the first region encountered in source-statement order;
	// that order is part of the contract.
	DominantRegionID             string     `json:"dominant_region_id,omitempty"`
	DominantRegionTier           RegionTier `json:"dominant_region_tier,omitempty"`
	DominantRegionModelDiversity int        `json:"dominant_region_model_diversity,omitempty"`
}

// EdgeGeographicMeasurement holds the geometric measurements for one edge.
type EdgeGeographicMeasurement struct {
	From string   `json:"from"`
	To   string   `json:"to"`
	Type EdgeType `json:"type"`

	// CrossesRegionBoundary is true iff both claims have a dominant region
	// and the regions differ.
	CrossesRegionBoundary bool `json:"crosses_region_boundary"`

	// CentroidSimilarity is the cosine similarity of the two claims'
	// source-statement centroids. Nil if either claim has no embedded
	// statements.
	CentroidSimilarity *float64 `json:"centroid_similarity"`

	FromRegionID string `json:"from_region_id,omitempty"`
	ToRegionID   string `json:"to_region_id,omitempty"`
}

// DiagnosticsResult is the full measurement bundle for one decision round.
type DiagnosticsResult struct {
	ClaimMeasurements []ClaimGeometricMeasurement `json:"claim_measurements"`
	EdgeMeasurements  []EdgeGeographicMeasurement `json:"edge_measurements"`
}

// Measurement lookup helpers used by the pipeline and renderer.

// ClaimMeasurement returns the measurement for a claim id, or nil.
func (r *DiagnosticsResult) ClaimMeasurement(claimID string) *ClaimGeometricMeasurement {
	for i := range r.ClaimMeasurements {
		if r.ClaimMeasurements[i].ClaimID == claimID {
			return &r.ClaimMeasurements[i]
		}
	}
	return nil
}
