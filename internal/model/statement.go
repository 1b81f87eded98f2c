package model

// Statement is an atomic sentence extracted from one model's answer.
// Statements are immutable once extracted.
type Statement struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	ParagraphID string `json:"paragraph_id,omitempty"` // Owning paragraph
}

// Paragraph groups statements and carries the originating model index.
type Paragraph struct {
	ID         string `json:"id"`
	ModelIndex int    `json:"model_index"` // Which answering model produced it
}

// RegionTier classifies a region's density in embedding space.
type RegionTier string

const (
	TierPeak  RegionTier = "peak"
	TierHill  RegionTier = "hill"
	TierFloor RegionTier = "floor"
)

// Region is a geometric cluster of statements produced by the upstream
// substrate builder. Read-only here.
type Region struct {
	ID             string     `json:"id"`
	NodeIDs        []string   `json:"node_ids"` // Member statement ids
	Tier           RegionTier `json:"tier"`
	ModelDiversity int        `json:"model_diversity"` // Distinct models represented
}

// Embedding is a fixed-dimension vector for one statement.
type Embedding []float64

// EmbeddingSet maps statement id to its vector. Statements absent from the
// set are excluded from measurement denominators, never treated as fatal.
type EmbeddingSet map[string]Embedding
