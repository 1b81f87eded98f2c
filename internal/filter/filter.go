// Package filter implements the blast-radius filter: the single-authority
// scoring pass that decides which claims are worth a clarifying question.
//
// Every signal is a continuous multiplier on one composite score. Nothing is
// categorically vetoed except the final suppression floor, which avoids the
// failure mode of independent binary kill-rules silently conflicting. Every
// modifier that fires leaves a trace in the score's SuppressionReason so the
// verdict stays explainable.
package filter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/crux-triage/crux/internal/model"
)

// Input carries everything the filter consumes for one decision round.
// All fields are read-only; the filter recomputes its verdicts from scratch
// on every call.
type Input struct {
	Claims       []model.Claim
	Edges        []model.Edge
	CascadeRisks []model.CascadeRisk
	Exclusivity  []model.ClaimExclusivity
	Overlap      []model.ClaimOverlapEntry

	// ArticulationPoints lists claim ids that are cut vertices of the claim
	// graph. Computed upstream (see internal/graph).
	ArticulationPoints []string

	// QueryRelevance maps claim id to the raw mean cosine similarity of its
	// source statements against the user's query, in [-1,1]. Claims absent
	// from the map could not be measured and score 0 on that dimension.
	QueryRelevance map[string]float64

	ModelCount       int
	ConvergenceRatio float64

	// StatementModel traces statement id to originating model. Optional;
	// its absence only disables the FragileConsensus diagnostic.
	StatementModel map[string]int
}

// Filter scores claims and clusters survivors into decision axes.
type Filter struct {
	cfg model.FilterConfig
}

// NewFilter creates a filter with the given configuration; nil selects the
// calibrated defaults.
func NewFilter(cfg *model.FilterConfig) *Filter {
	if cfg == nil {
		cfg = &model.DefaultConfig().Filter
	}
	return &Filter{cfg: *cfg}
}

// Apply runs the full pass: composite scoring, ordered continuous modifiers,
// the suppression floor, the zero-question gate, axis clustering, and the
// question ceiling. It never returns an error; malformed records degrade to
// zero scores instead of failing the round.
func (f *Filter) Apply(in Input) model.FilterResult {
	result := model.FilterResult{
		Scores: []model.BlastRadiusScore{},
		Axes:   []model.BlastRadiusAxis{},
		Meta: model.FilterMeta{
			ClaimCount:       len(in.Claims),
			ModelCount:       in.ModelCount,
			ConvergenceRatio: in.ConvergenceRatio,
		},
	}

	if len(in.Claims) == 0 {
		result.SkipSurvey = true
		result.SkipReason = "no_claims"
		return result
	}

	result.Scores = f.scoreClaims(in)
	f.applyRedundancyDiscount(result.Scores, in.Overlap)
	f.applyFloor(result.Scores)

	survivors := 0
	for i := range result.Scores {
		if !result.Scores[i].Suppressed {
			survivors++
		}
	}
	result.Meta.SurvivorCount = survivors

	conflictEdges := 0
	for _, e := range in.Edges {
		if e.Type == model.EdgeConflicts {
			conflictEdges++
		}
	}
	result.Meta.ConflictEdges = conflictEdges
	result.Meta.ConflictClusters = countConflictClusters(in.Edges)

	// The gate runs before clustering: a converged round surfaces nothing.
	if skip, reason := f.checkZeroQuestionGate(in, result.Scores, conflictEdges); skip {
		result.SkipSurvey = true
		result.SkipReason = reason
		return result
	}

	result.Axes = f.clusterAxes(in, result.Scores)
	result.QuestionCeiling = f.questionCeiling(in, result.Scores, result.Axes, conflictEdges, result.Meta.ConflictClusters)

	return result
}

// scoreClaims computes the raw composite and applies the per-claim modifiers
// (consensus discount, sole-source off-topic discount) in order. The
// pairwise redundancy discount runs afterwards over all scores.
func (f *Filter) scoreClaims(in Input) []model.BlastRadiusScore {
	claimSet := make(map[string]bool, len(in.Claims))
	for i := range in.Claims {
		claimSet[in.Claims[i].ID] = true
	}

	cascade := make(map[string]int, len(in.CascadeRisks))
	for _, cr := range in.CascadeRisks {
		seen := make(map[string]bool, len(cr.DependentIDs))
		for _, dep := range cr.DependentIDs {
			if dep != cr.SourceID && claimSet[dep] {
				seen[dep] = true
			}
		}
		cascade[cr.SourceID] = len(seen)
	}

	exclusivity := make(map[string]float64, len(in.Exclusivity))
	for _, ex := range in.Exclusivity {
		exclusivity[ex.ClaimID] = clamp01(ex.ExclusivityRatio)
	}

	articulation := make(map[string]bool, len(in.ArticulationPoints))
	for _, id := range in.ArticulationPoints {
		articulation[id] = true
	}

	// Min-max normalize leverage across the round. A flat leverage profile
	// carries no relative signal and normalizes to 0 for everyone.
	minLev, maxLev := in.Claims[0].Leverage, in.Claims[0].Leverage
	for i := range in.Claims {
		l := in.Claims[i].Leverage
		if l < minLev {
			minLev = l
		}
		if l > maxLev {
			maxLev = l
		}
	}
	levRange := maxLev - minLev

	scores := make([]model.BlastRadiusScore, 0, len(in.Claims))
	for i := range in.Claims {
		c := &in.Claims[i]

		components := model.ScoreComponents{
			ExclusiveEvidence: exclusivity[c.ID],
		}
		if len(in.Claims) > 1 {
			components.CascadeBreadth = float64(cascade[c.ID]) / float64(len(in.Claims)-1)
		}
		if levRange > 0 {
			components.Leverage = (c.Leverage - minLev) / levRange
		}
		if raw, ok := in.QueryRelevance[c.ID]; ok {
			// Raw cosine lives in [-1,1]; rescale to [0,1] for blending
			// only. Modifier 2 below still reads the raw value.
			components.QueryRelevance = clamp01((raw + 1) / 2)
		}
		if articulation[c.ID] {
			components.ArticulationPoint = 1
		}

		raw := f.cfg.CascadeWeight*components.CascadeBreadth +
			f.cfg.ExclusivityWeight*components.ExclusiveEvidence +
			f.cfg.LeverageWeight*components.Leverage +
			f.cfg.RelevanceWeight*components.QueryRelevance +
			f.cfg.ArticulationWeight*components.ArticulationPoint

		score := model.BlastRadiusScore{
			ClaimID:      c.ID,
			Composite:    raw,
			RawComposite: raw,
			Components:   components,
		}

		var reasons []string

		// Modifier 1: consensus discount. Strength shrinks with fewer total
		// models because low-N consensus is weaker evidence of agreement.
		strength := f.cfg.ConsensusStrength
		if f.cfg.ConsensusModelNorm > 0 {
			norm := float64(in.ModelCount) / f.cfg.ConsensusModelNorm
			if norm < 1 {
				strength *= norm
			}
		}
		if factor := 1 - c.SupportRatio*strength; factor < 1 {
			score.Composite *= factor
			reasons = append(reasons, fmt.Sprintf(
				"consensus_discount x%.3f (support_ratio=%.2f strength=%.2f)",
				factor, c.SupportRatio, strength))
		}

		// Modifier 2: sole-source off-topic discount. Uses the raw cosine,
		// not the rescaled blend value; an unmeasurable relevance never
		// counts as off-topic.
		if len(c.Supporters) == 1 {
			if raw, ok := in.QueryRelevance[c.ID]; ok && raw < f.cfg.OffTopicCosine {
				score.Composite *= f.cfg.OffTopicDiscount
				reasons = append(reasons, fmt.Sprintf(
					"sole_source_off_topic x%.2f (raw_cosine=%.2f)",
					f.cfg.OffTopicDiscount, raw))
			}
		}

		score.SuppressionReason = strings.Join(reasons, "; ")

		if in.StatementModel != nil {
			score.FragileConsensus = fragileConsensus(c, in.StatementModel)
		}

		scores = append(scores, score)
	}

	return scores
}

// applyRedundancyDiscount processes overlap entries sorted descending by
// Jaccard and, for any pair above the threshold, discounts the lower-scoring
// member. The higher-scoring member is never touched by this rule; on an
// exact score tie the second-listed claim takes the discount.
func (f *Filter) applyRedundancyDiscount(scores []model.BlastRadiusScore, overlap []model.ClaimOverlapEntry) {
	byID := make(map[string]*model.BlastRadiusScore, len(scores))
	for i := range scores {
		byID[scores[i].ClaimID] = &scores[i]
	}

	sorted := make([]model.ClaimOverlapEntry, len(overlap))
	copy(sorted, overlap)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Jaccard > sorted[j].Jaccard
	})

	for _, entry := range sorted {
		if entry.Jaccard <= f.cfg.RedundancyJaccard {
			break
		}
		a, okA := byID[entry.ClaimA]
		b, okB := byID[entry.ClaimB]
		if !okA || !okB || a == b {
			continue
		}

		lower := b
		if a.Composite < b.Composite {
			lower = a
		}

		factor := 1 - entry.Jaccard*f.cfg.RedundancyStrength
		lower.Composite *= factor
		appendReason(lower, fmt.Sprintf(
			"redundancy_discount x%.3f (jaccard=%.2f vs %s)",
			factor, entry.Jaccard, otherID(entry, lower.ClaimID)))
	}
}

// applyFloor marks claims below the suppression floor.
func (f *Filter) applyFloor(scores []model.BlastRadiusScore) {
	for i := range scores {
		s := &scores[i]
		if s.Composite < f.cfg.SuppressionFloor {
			s.Suppressed = true
			appendReason(s, fmt.Sprintf(
				"below_floor (%.3f < %.2f)", s.Composite, f.cfg.SuppressionFloor))
		}
	}
}

// checkZeroQuestionGate decides whether the round is converged enough to ask
// nothing at all. All four conditions must hold simultaneously.
func (f *Filter) checkZeroQuestionGate(in Input, scores []model.BlastRadiusScore, conflictEdges int) (bool, string) {
	if in.ConvergenceRatio <= f.cfg.GateConvergence {
		return false, ""
	}
	for i := range in.Claims {
		if in.Claims[i].LeverageInversion {
			return false, ""
		}
	}
	if conflictEdges > 0 {
		return false, ""
	}
	soleByID := make(map[string]bool, len(in.Claims))
	for i := range in.Claims {
		if len(in.Claims[i].Supporters) == 1 {
			soleByID[in.Claims[i].ID] = true
		}
	}
	for i := range scores {
		s := &scores[i]
		if !s.Suppressed && soleByID[s.ClaimID] && s.Composite > f.cfg.GateSoleSourceCap {
			return false, ""
		}
	}
	return true, fmt.Sprintf(
		"converged: convergence_ratio=%.2f > %.2f, no leverage inversions, no conflict edges, no strong sole-source survivors",
		in.ConvergenceRatio, f.cfg.GateConvergence)
}

// fragileConsensus reports whether the mapper claims more supporting models
// than geometry can trace through the claim's source statements.
func fragileConsensus(c *model.Claim, statementModel map[string]int) bool {
	traced := make(map[int]bool)
	for _, sid := range c.SourceStatementIDs {
		if mi, ok := statementModel[sid]; ok {
			traced[mi] = true
		}
	}
	return len(c.Supporters) > len(traced)
}

func appendReason(s *model.BlastRadiusScore, reason string) {
	if s.SuppressionReason == "" {
		s.SuppressionReason = reason
		return
	}
	s.SuppressionReason += "; " + reason
}

func otherID(entry model.ClaimOverlapEntry, id string) string {
	if entry.ClaimA == id {
		return entry.ClaimB
	}
	return entry.ClaimA
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
