// Package diagnose computes Level-1 geometric measurements over claims and
// edges. Everything here is a direct vector-space measurement: no policy, no
// suppression, no gating. The blast-radius filter never depends on these
// numbers; they exist for display and debugging.
package diagnose

import (
	"github.com/crux-triage/crux/internal/model"
	"github.com/crux-triage/crux/internal/vector"
)

// Analyzer computes geometric measurements for one decision round.
type Analyzer struct{}

// NewAnalyzer creates a new analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Compute measures every claim and edge. Pure and deterministic: claims and
// edges are measured in input order, and the dominant-region tie-break is
// "first region encountered in source-statement order", which is part of the
// contract. Statements missing from the embedding set are excluded from the
// relevant denominators, never treated as fatal.
func (a *Analyzer) Compute(
	claims []model.Claim,
	edges []model.Edge,
	regions []model.Region,
	embeddings model.EmbeddingSet,
	statementModel map[string]int,
) model.DiagnosticsResult {
	regionByID := make(map[string]*model.Region, len(regions))
	statementRegion := make(map[string]string)
	for i := range regions {
		r := &regions[i]
		regionByID[r.ID] = r
		for _, nodeID := range r.NodeIDs {
			// First region listing a statement wins; the substrate builder
			// emits disjoint regions so this only matters on bad input.
			if _, ok := statementRegion[nodeID]; !ok {
				statementRegion[nodeID] = r.ID
			}
		}
	}

	result := model.DiagnosticsResult{
		ClaimMeasurements: make([]model.ClaimGeometricMeasurement, 0, len(claims)),
		EdgeMeasurements:  make([]model.EdgeGeographicMeasurement, 0, len(edges)),
	}

	// Per-claim centroids, kept for the edge pass.
	centroids := make(map[string][]float64, len(claims))
	dominantRegion := make(map[string]string, len(claims))

	for i := range claims {
		c := &claims[i]
		m := a.measureClaim(c, statementRegion, regionByID, embeddings, statementModel)
		result.ClaimMeasurements = append(result.ClaimMeasurements, m)
		dominantRegion[c.ID] = m.DominantRegionID

		var vectors [][]float64
		for _, sid := range c.SourceStatementIDs {
			if v, ok := embeddings[sid]; ok {
				vectors = append(vectors, v)
			}
		}
		if len(vectors) > 0 {
			centroids[c.ID] = vector.Centroid(vectors)
		}
	}

	for _, e := range edges {
		em := model.EdgeGeographicMeasurement{
			From:         e.From,
			To:           e.To,
			Type:         e.Type,
			FromRegionID: dominantRegion[e.From],
			ToRegionID:   dominantRegion[e.To],
		}
		em.CrossesRegionBoundary = em.FromRegionID != "" &&
			em.ToRegionID != "" && em.FromRegionID != em.ToRegionID

		fromCentroid, fromOK := centroids[e.From]
		toCentroid, toOK := centroids[e.To]
		if fromOK && toOK {
			sim := vector.Cosine(fromCentroid, toCentroid)
			em.CentroidSimilarity = &sim
		}

		result.EdgeMeasurements = append(result.EdgeMeasurements, em)
	}

	return result
}

// measureClaim computes the per-claim record.
func (a *Analyzer) measureClaim(
	c *model.Claim,
	statementRegion map[string]string,
	regionByID map[string]*model.Region,
	embeddings model.EmbeddingSet,
	statementModel map[string]int,
) model.ClaimGeometricMeasurement {
	m := model.ClaimGeometricMeasurement{
		ClaimID:              c.ID,
		SourceStatementCount: len(c.SourceStatementIDs),
	}

	var vectors [][]float64
	for _, sid := range c.SourceStatementIDs {
		if v, ok := embeddings[sid]; ok {
			vectors = append(vectors, v)
		}
	}
	m.SourceCoherence, m.EmbeddingSpread = vector.PairwiseStats(vectors)

	// Majority vote over region membership; the counting order doubles as
	// the tie-break order.
	regionCounts := make(map[string]int)
	var regionOrder []string
	modelsSeen := make(map[int]bool)
	for _, sid := range c.SourceStatementIDs {
		if rid, ok := statementRegion[sid]; ok {
			if regionCounts[rid] == 0 {
				regionOrder = append(regionOrder, rid)
			}
			regionCounts[rid]++
		}
		if mi, ok := statementModel[sid]; ok {
			modelsSeen[mi] = true
		}
	}

	m.RegionSpan = len(regionOrder)
	m.SourceModelDiversity = len(modelsSeen)

	best := ""
	bestCount := 0
	for _, rid := range regionOrder {
		if regionCounts[rid] > bestCount {
			best = rid
			bestCount = regionCounts[rid]
		}
	}
	if best != "" {
		m.DominantRegionID = best
		if r, ok := regionByID[best]; ok {
			m.DominantRegionTier = r.Tier
			m.DominantRegionModelDiversity = r.ModelDiversity
		}
	}

	return m
}

// Stamp writes SourceCoherence back onto the claim records for user-facing
// display. Nothing else from the measurement bundle is stamped; the rest
// stays debug-only.
func Stamp(claims []model.Claim, result model.DiagnosticsResult) {
	byID := make(map[string]*model.ClaimGeometricMeasurement, len(result.ClaimMeasurements))
	for i := range result.ClaimMeasurements {
		byID[result.ClaimMeasurements[i].ClaimID] = &result.ClaimMeasurements[i]
	}
	for i := range claims {
		if m, ok := byID[claims[i].ID]; ok {
			claims[i].SourceCoherence = m.SourceCoherence
		}
	}
}
