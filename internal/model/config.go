package model

import "time"

// Config is the complete crux configuration. Every scoring constant lives
// here rather than in package-level globals so tests can vary them; the
// defaults below are the calibrated production values.
type Config struct {
	Filter      FilterConfig      `yaml:"filter" json:"filter"`
	Traverse    TraverseConfig    `yaml:"traverse" json:"traverse"`
	Embed       EmbedConfig       `yaml:"embed" json:"embed"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// FilterConfig holds the blast-radius filter's weights and thresholds.
// The five dimension weights must sum to 1.0.
type FilterConfig struct {
	// Composite dimension weights.
	CascadeWeight      float64 `yaml:"cascade_weight" json:"cascade_weight"`
	ExclusivityWeight  float64 `yaml:"exclusivity_weight" json:"exclusivity_weight"`
	LeverageWeight     float64 `yaml:"leverage_weight" json:"leverage_weight"`
	RelevanceWeight    float64 `yaml:"relevance_weight" json:"relevance_weight"`
	ArticulationWeight float64 `yaml:"articulation_weight" json:"articulation_weight"`

	// Consensus discount: composite *= 1 - supportRatio*strength, with
	// strength = ConsensusStrength * min(modelCount/ConsensusModelNorm, 1).
	ConsensusStrength  float64 `yaml:"consensus_strength" json:"consensus_strength"`
	ConsensusModelNorm float64 `yaml:"consensus_model_norm" json:"consensus_model_norm"`

	// Sole-source off-topic discount.
	OffTopicCosine   float64 `yaml:"off_topic_cosine" json:"off_topic_cosine"`     // Raw-cosine threshold
	OffTopicDiscount float64 `yaml:"off_topic_discount" json:"off_topic_discount"` // Multiplier applied below it

	// Redundancy discount.
	RedundancyJaccard  float64 `yaml:"redundancy_jaccard" json:"redundancy_jaccard"`   // Pair qualifies above this
	RedundancyStrength float64 `yaml:"redundancy_strength" json:"redundancy_strength"` // composite *= 1 - jaccard*strength

	// SuppressionFloor marks claims suppressed below this composite.
	SuppressionFloor float64 `yaml:"suppression_floor" json:"suppression_floor"`

	// Zero-question gate.
	GateConvergence   float64 `yaml:"gate_convergence" json:"gate_convergence"`         // convergenceRatio must exceed
	GateSoleSourceCap float64 `yaml:"gate_sole_source_cap" json:"gate_sole_source_cap"` // No surviving sole-source claim above

	// AxisJaccard links surviving claims into one axis above this overlap.
	AxisJaccard float64 `yaml:"axis_jaccard" json:"axis_jaccard"`

	// MaxQuestions is the hard ceiling on clarifying questions.
	MaxQuestions int `yaml:"max_questions" json:"max_questions"`
}

// TraverseConfig holds the traversal partition engine thresholds.
type TraverseConfig struct {
	// AutoResolveOverlap: a conditional gate auto-resolves when at least
	// this fraction of its affected statements is pruned.
	AutoResolveOverlap float64 `yaml:"auto_resolve_overlap" json:"auto_resolve_overlap"`
}

// EmbedConfig configures the optional embedding provider used to hydrate
// bundles that arrive without statement vectors. The triage core never
// touches it; scores are computed from vectors alone.
type EmbedConfig struct {
	Provider          string  `yaml:"provider" json:"provider"` // "openai" or "" (disabled)
	Model             string  `yaml:"model" json:"model"`
	APIKey            string  `yaml:"-" json:"-"` // Env only, never persisted
	BaseURL           string  `yaml:"base_url" json:"base_url"`
	TimeoutSeconds    int     `yaml:"timeout_seconds" json:"timeout_seconds"`
	BatchSize         int     `yaml:"batch_size" json:"batch_size"`
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int     `yaml:"burst" json:"burst"`
	MaxRetries        int     `yaml:"max_retries" json:"max_retries"`
	RetryBackoffMS    int     `yaml:"retry_backoff_ms" json:"retry_backoff_ms"`
}

// CacheConfig configures the embedding cache.
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" json:"enabled"`
	TTL             time.Duration `yaml:"ttl" json:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" json:"cleanup_interval"`
}

// ConcurrencyConfig bounds parallel work.
type ConcurrencyConfig struct {
	EmbedWorkers int `yaml:"embed_workers" json:"embed_workers"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// DefaultConfig returns the calibrated defaults.
func DefaultConfig() *Config {
	return &Config{
		Filter: FilterConfig{
			CascadeWeight:      0.30,
			ExclusivityWeight:  0.25,
			LeverageWeight:     0.20,
			RelevanceWeight:    0.15,
			ArticulationWeight: 0.10,

			ConsensusStrength:  0.50,
			ConsensusModelNorm: 4,

			OffTopicCosine:   0.30,
			OffTopicDiscount: 0.50,

			RedundancyJaccard:  0.50,
			RedundancyStrength: 0.40,

			SuppressionFloor: 0.20,

			GateConvergence:   0.70,
			GateSoleSourceCap: 0.50,

			AxisJaccard: 0.30,

			MaxQuestions: 3,
		},
		Traverse: TraverseConfig{
			AutoResolveOverlap: 0.80,
		},
		Embed: EmbedConfig{
			Provider:          "", // Disabled by default
			Model:             "text-embedding-3-small",
			TimeoutSeconds:    30,
			BatchSize:         64,
			RequestsPerSecond: 2,
			Burst:             2,
			MaxRetries:        2,
			RetryBackoffMS:    500,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             24 * time.Hour,
			CleanupInterval: time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			EmbedWorkers: 4,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}

// Principles documents the scoring stance carried on every report.
type Principles struct {
	NonNormative  bool `json:"non_normative"` // Measures structure and support, never truth
	Transparent   bool `json:"transparent"`   // Every modifier leaves an audit trail
	Deterministic bool `json:"deterministic"` // Identical inputs yield identical outputs
}

// DefaultPrinciples returns the standard crux principles.
func DefaultPrinciples() Principles {
	return Principles{
		NonNormative:  true,
		Transparent:   true,
		Deterministic: true,
	}
}
