// Package traverse resolves user answers to partition questions into pruned
// statements and auto-resolvable conditional gates. Like the rest of the
// core it is pure: callers own persistence and the pause/resume lifecycle.
package traverse

import (
	"sort"

	"github.com/crux-triage/crux/internal/model"
)

// Engine applies partition answers for one decision round.
type Engine struct {
	cfg model.TraverseConfig
}

// NewEngine creates an engine with the given configuration; nil selects the
// defaults.
func NewEngine(cfg *model.TraverseConfig) *Engine {
	if cfg == nil {
		cfg = &model.DefaultConfig().Traverse
	}
	return &Engine{cfg: *cfg}
}

// PrunedStatementIDs computes which source statements the user's answers
// prune. For every decided partition the losing side's advocacy statements
// (falling back to its exemplar statements when no advocacy list exists)
// become prune candidates, while the winning side's exemplar statements
// become protected. Protection is accumulated across all decided partitions
// and subtracted last: being the exemplar member of any winning side always
// overrides being mentioned in some losing side's advocacy list, which
// resolves cross-partition overlap without ranking partitions.
func (e *Engine) PrunedStatementIDs(partitions []model.Partition, answers model.AnswerMap) map[string]struct{} {
	candidates := make(map[string]struct{})
	protected := make(map[string]struct{})

	for i := range partitions {
		p := &partitions[i]
		answer, ok := answers[p.ID]
		if !ok || !answer.Decided() {
			continue
		}

		var losing, winning []string
		switch answer.Choice {
		case model.ChoiceA:
			losing = p.SideBAdvocacyStatementIDs
			if losing == nil {
				losing = p.SideBStatementIDs
			}
			winning = p.SideAStatementIDs
		case model.ChoiceB:
			losing = p.SideAAdvocacyStatementIDs
			if losing == nil {
				losing = p.SideAStatementIDs
			}
			winning = p.SideBStatementIDs
		}

		for _, sid := range losing {
			candidates[sid] = struct{}{}
		}
		for _, sid := range winning {
			protected[sid] = struct{}{}
		}
	}

	for sid := range protected {
		delete(candidates, sid)
	}
	return candidates
}

// AutoResolvableGateIDs returns the conditional gates whose affected
// statements are pruned heavily enough to resolve without asking the user:
// overlap of at least AutoResolveOverlap (default 0.80). Partition questions
// carry no gate and are ignored; a gate with no affected statements never
// resolves. Gate ids are returned in question order.
func (e *Engine) AutoResolvableGateIDs(questions []model.TraversalQuestion, pruned map[string]struct{}) []string {
	var gateIDs []string
	seen := make(map[string]bool)

	for i := range questions {
		q := &questions[i]
		if q.Type != model.QuestionConditional || q.GateID == "" || seen[q.GateID] {
			continue
		}
		if len(q.AffectedStatementIDs) == 0 {
			continue
		}

		prunedCount := 0
		for _, sid := range q.AffectedStatementIDs {
			if _, ok := pruned[sid]; ok {
				prunedCount++
			}
		}

		ratio := float64(prunedCount) / float64(len(q.AffectedStatementIDs))
		if ratio >= e.cfg.AutoResolveOverlap {
			gateIDs = append(gateIDs, q.GateID)
			seen[q.GateID] = true
		}
	}

	return gateIDs
}

// SortedStatementIDs renders a pruned set as a sorted slice for reports and
// byte-identical output across runs.
func SortedStatementIDs(pruned map[string]struct{}) []string {
	ids := make([]string, 0, len(pruned))
	for sid := range pruned {
		ids = append(ids, sid)
	}
	sort.Strings(ids)
	return ids
}
