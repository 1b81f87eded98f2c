package model

// ScoreComponents are the five raw dimension values behind a composite,
// each normalized to [0,1] before weighting. Kept for auditability.
type ScoreComponents struct {
	CascadeBreadth    float64 `json:"cascade_breadth"`
	ExclusiveEvidence float64 `json:"exclusive_evidence"`
	Leverage          float64 `json:"leverage"`
	QueryRelevance    float64 `json:"query_relevance"`
	ArticulationPoint float64 `json:"articulation_point"`
}

// BlastRadiusScore is the importance verdict for one claim.
type BlastRadiusScore struct {
	ClaimID string `json:"claim_id"`

	// Composite is the current, possibly-discounted score.
	Composite float64 `json:"composite"`

	// RawComposite is the pre-modifier weighted sum.
	RawComposite float64 `json:"raw_composite"`

	Components ScoreComponents `json:"components"`

	Suppressed bool `json:"suppressed"`

	// SuppressionReason is a human-readable trace of every modifier that
	// fired, plus the floor verdict. Surfaced by debugging UIs.
	SuppressionReason string `json:"suppression_reason,omitempty"`

	// FragileConsensus flags a claim whose mapper-reported supporter count
	// exceeds the number of distinct models geometry can trace through its
	// source statements.
	FragileConsensus bool `json:"fragile_consensus,omitempty"`
}

// BlastRadiusAxis is one connected component of the overlap graph among
// surviving claims, surfaced as one independent decision for the user.
type BlastRadiusAxis struct {
	ID                    string   `json:"id"`
	ClaimIDs              []string `json:"claim_ids"`
	RepresentativeClaimID string   `json:"representative_claim_id"` // Highest composite in the component
	MaxBlastRadius        float64  `json:"max_blast_radius"`
}

// FilterMeta records the inputs that shaped gate and ceiling decisions.
type FilterMeta struct {
	ClaimCount       int     `json:"claim_count"`
	SurvivorCount    int     `json:"survivor_count"`
	ConflictEdges    int     `json:"conflict_edges"`
	ConflictClusters int     `json:"conflict_clusters"`
	ModelCount       int     `json:"model_count"`
	ConvergenceRatio float64 `json:"convergence_ratio"`
}

// FilterResult is the complete blast-radius filter output for one round.
type FilterResult struct {
	Scores          []BlastRadiusScore `json:"scores"`
	Axes            []BlastRadiusAxis  `json:"axes"`
	QuestionCeiling int                `json:"question_ceiling"` // Always in {0,1,2,3}
	SkipSurvey      bool               `json:"skip_survey"`
	SkipReason      string             `json:"skip_reason,omitempty"`
	Meta            FilterMeta         `json:"meta"`
}

// Score returns the score record for a claim id, or nil.
func (r *FilterResult) Score(claimID string) *BlastRadiusScore {
	for i := range r.Scores {
		if r.Scores[i].ClaimID == claimID {
			return &r.Scores[i]
		}
	}
	return nil
}
