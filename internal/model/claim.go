package model

// Claim represents an assertion extracted from one or more models' answers.
// Claims are created once per decision round by the upstream semantic mapper;
// diagnostics enrich them in place (SourceCoherence only) and everything else
// treats them as read-only.
type Claim struct {
	ID                 string   `json:"id"`
	Label              string   `json:"label"`
	Supporters         []string `json:"supporters"`           // Model ids backing the claim
	SourceStatementIDs []string `json:"source_statement_ids"` // Evidence trail
	SupportRatio       float64  `json:"support_ratio"`        // Fraction of models supporting, in [0,1]
	Leverage           float64  `json:"leverage"`             // Upstream structural importance
	LeverageInversion  bool     `json:"leverage_inversion"`   // Structurally critical despite weak consensus
	Keystone           bool     `json:"keystone"`             // Structurally critical with strong consensus

	// SourceCoherence is stamped by diagnostics for user-facing display:
	// mean pairwise cosine similarity of the claim's source-statement
	// embeddings. Nil when fewer than 2 statements are embedded.
	SourceCoherence *float64 `json:"source_coherence,omitempty"`
}

// EdgeType categorizes the relation between two claims.
type EdgeType string

const (
	EdgeSupports     EdgeType = "supports"
	EdgeConflicts    EdgeType = "conflicts"
	EdgeTradeoff     EdgeType = "tradeoff"
	EdgePrerequisite EdgeType = "prerequisite"
)

// Edge is a typed relation between two claims.
type Edge struct {
	From string   `json:"from"`
	To   string   `json:"to"`
	Type EdgeType `json:"type"`
}

// CascadeRisk lists the claims causally downstream of a source claim in the
// structural graph. External input.
type CascadeRisk struct {
	SourceID     string   `json:"source_id"`
	DependentIDs []string `json:"dependent_ids"`
}

// ClaimExclusivity carries the fraction of a claim's evidence not shared
// with any other claim.
type ClaimExclusivity struct {
	ClaimID          string  `json:"claim_id"`
	ExclusivityRatio float64 `json:"exclusivity_ratio"`
}

// ClaimOverlapEntry is the pairwise Jaccard similarity of two claims'
// evidence sets.
type ClaimOverlapEntry struct {
	ClaimA  string  `json:"claim_a"`
	ClaimB  string  `json:"claim_b"`
	Jaccard float64 `json:"jaccard"`
}
