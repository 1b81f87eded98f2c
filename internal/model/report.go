package model

import "time"

// Report is the complete output of one decision round: measurements,
// blast-radius verdicts, and (when answers were supplied) traversal results.
type Report struct {
	Subject    string    `json:"subject"` // Usually the user's question
	ComputedAt time.Time `json:"computed_at"`

	Diagnostics DiagnosticsResult `json:"diagnostics"`
	Filter      FilterResult      `json:"filter"`

	// Traversal results, present only when the bundle carried answers.
	PrunedStatementIDs []string `json:"pruned_statement_ids,omitempty"`
	ResolvedGateIDs    []string `json:"resolved_gate_ids,omitempty"`

	Principles Principles `json:"principles"`
}
