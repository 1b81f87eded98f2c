package model

import "fmt"

// Bundle is one decision round's worth of upstream records: everything the
// semantic mapper, substrate builder, and structural analyzer hand over.
// Upstream shapes are loosely typed; Normalize is the validation boundary
// that turns them into records the core can trust.
type Bundle struct {
	Subject string `json:"subject" yaml:"subject"`

	Statements []Statement `json:"statements" yaml:"statements"`
	Paragraphs []Paragraph `json:"paragraphs" yaml:"paragraphs"`
	Regions    []Region    `json:"regions" yaml:"regions"`

	Claims []Claim `json:"claims" yaml:"claims"`
	Edges  []Edge  `json:"edges" yaml:"edges"`

	CascadeRisks []CascadeRisk       `json:"cascade_risks" yaml:"cascade_risks"`
	Exclusivity  []ClaimExclusivity  `json:"exclusivity" yaml:"exclusivity"`
	Overlap      []ClaimOverlapEntry `json:"overlap" yaml:"overlap"`

	ModelCount       int     `json:"model_count" yaml:"model_count"`
	ConvergenceRatio float64 `json:"convergence_ratio" yaml:"convergence_ratio"`

	// Embeddings keyed by statement id; the query embedding is separate.
	Embeddings     EmbeddingSet `json:"embeddings,omitempty" yaml:"embeddings,omitempty"`
	QueryEmbedding Embedding    `json:"query_embedding,omitempty" yaml:"query_embedding,omitempty"`

	Partitions []Partition         `json:"partitions,omitempty" yaml:"partitions,omitempty"`
	Questions  []TraversalQuestion `json:"questions,omitempty" yaml:"questions,omitempty"`
	Answers    AnswerMap           `json:"answers,omitempty" yaml:"answers,omitempty"`
}

// Normalize validates cross-field requirements and defaults optional fields
// explicitly. It rejects only records the core cannot interpret at all;
// dangling references are left in place because each component excludes them
// from its own denominators.
func (b *Bundle) Normalize() error {
	if b.ModelCount < 0 {
		return fmt.Errorf("model_count must be non-negative, got %d", b.ModelCount)
	}
	if b.ConvergenceRatio < 0 || b.ConvergenceRatio > 1 {
		return fmt.Errorf("convergence_ratio must be in [0,1], got %g", b.ConvergenceRatio)
	}

	seen := make(map[string]bool, len(b.Claims))
	for i := range b.Claims {
		c := &b.Claims[i]
		if c.ID == "" {
			return fmt.Errorf("claim %d has empty id", i)
		}
		if seen[c.ID] {
			return fmt.Errorf("duplicate claim id %q", c.ID)
		}
		seen[c.ID] = true
		if c.SupportRatio < 0 {
			c.SupportRatio = 0
		}
		if c.SupportRatio > 1 {
			c.SupportRatio = 1
		}
		if c.Supporters == nil {
			c.Supporters = []string{}
		}
		if c.SourceStatementIDs == nil {
			c.SourceStatementIDs = []string{}
		}
	}

	for i := range b.Edges {
		e := &b.Edges[i]
		switch e.Type {
		case EdgeSupports, EdgeConflicts, EdgeTradeoff, EdgePrerequisite:
		case "":
			e.Type = EdgeSupports
		default:
			return fmt.Errorf("edge %d has unknown type %q", i, e.Type)
		}
	}

	for i := range b.Partitions {
		p := &b.Partitions[i]
		if p.ID == "" {
			return fmt.Errorf("partition %d has empty id", i)
		}
		if p.SideAStatementIDs == nil {
			p.SideAStatementIDs = []string{}
		}
		if p.SideBStatementIDs == nil {
			p.SideBStatementIDs = []string{}
		}
	}

	for i := range b.Questions {
		q := &b.Questions[i]
		switch q.Type {
		case QuestionPartition, QuestionConditional:
		default:
			return fmt.Errorf("question %d has unknown type %q", i, q.Type)
		}
	}

	return nil
}

// StatementModelIndex traces each statement to its originating model via its
// paragraph. Statements with no resolvable paragraph are omitted.
func (b *Bundle) StatementModelIndex() map[string]int {
	paragraphModel := make(map[string]int, len(b.Paragraphs))
	for _, p := range b.Paragraphs {
		paragraphModel[p.ID] = p.ModelIndex
	}
	idx := make(map[string]int, len(b.Statements))
	for _, s := range b.Statements {
		if s.ParagraphID == "" {
			continue
		}
		if m, ok := paragraphModel[s.ParagraphID]; ok {
			idx[s.ID] = m
		}
	}
	return idx
}
