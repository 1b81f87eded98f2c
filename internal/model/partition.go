package model

// PartitionSide identifies one of the two sides of a partition.
type PartitionSide string

const (
	SideA PartitionSide = "A"
	SideB PartitionSide = "B"
)

// Partition is a binary decision point over two sets of statements.
// Exemplar membership (SideAStatementIDs/SideBStatementIDs) is a statement's
// plain assignment to a side; advocacy membership lists statements actively
// arguing that side and may overlap across partitions.
type Partition struct {
	ID               string        `json:"id"`
	Source           string        `json:"source,omitempty"`
	FocalStatementID string        `json:"focal_statement_id,omitempty"`
	HingeQuestion    string        `json:"hinge_question,omitempty"`
	DefaultSide      PartitionSide `json:"default_side,omitempty"`

	SideAStatementIDs []string `json:"side_a_statement_ids"`
	SideBStatementIDs []string `json:"side_b_statement_ids"`

	SideAAdvocacyStatementIDs []string `json:"side_a_advocacy_statement_ids,omitempty"`
	SideBAdvocacyStatementIDs []string `json:"side_b_advocacy_statement_ids,omitempty"`
}

// QuestionType distinguishes the two kinds of traversal questions.
type QuestionType string

const (
	QuestionPartition   QuestionType = "partition"
	QuestionConditional QuestionType = "conditional"
)

// TraversalQuestion is a forcing point produced by the external question
// extractor. Conditional questions gate further reasoning until answered or
// auto-resolved; partition questions mirror their source partition.
type TraversalQuestion struct {
	ID     string       `json:"id"`
	Type   QuestionType `json:"type"`
	Status string       `json:"status,omitempty"`

	// Conditional questions only.
	GateID               string   `json:"gate_id,omitempty"`
	AffectedStatementIDs []string `json:"affected_statement_ids,omitempty"`
	BlockedBy            []string `json:"blocked_by,omitempty"` // Other gate ids

	// Partition questions only.
	PartitionID               string   `json:"partition_id,omitempty"`
	SideAStatementIDs         []string `json:"side_a_statement_ids,omitempty"`
	SideBStatementIDs         []string `json:"side_b_statement_ids,omitempty"`
	SideAAdvocacyStatementIDs []string `json:"side_a_advocacy_statement_ids,omitempty"`
	SideBAdvocacyStatementIDs []string `json:"side_b_advocacy_statement_ids,omitempty"`
}

// AnswerChoice is the user's verdict on one partition.
type AnswerChoice string

const (
	ChoiceA       AnswerChoice = "A"
	ChoiceB       AnswerChoice = "B"
	ChoiceUnknown AnswerChoice = "unknown"
)

// Answer records the user's choice for one partition. Partitions absent from
// the answer map, or answered "unknown", are undecided and contribute
// nothing to pruning.
type Answer struct {
	Choice AnswerChoice `json:"choice"`
}

// AnswerMap keys answers by partition id.
type AnswerMap map[string]Answer

// Decided reports whether the answer selects a concrete side.
func (a Answer) Decided() bool {
	return a.Choice == ChoiceA || a.Choice == ChoiceB
}
