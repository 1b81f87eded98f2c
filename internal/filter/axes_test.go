package filter

import (
	"testing"

	"github.com/crux-triage/crux/internal/model"
)

// axisClaims builds claims that all clear the floor, with composites ordered
// by leverage. Two supporters each keeps the sole-source rules out of play.
func axisClaims(leverages ...float64) []model.Claim {
	claims := make([]model.Claim, len(leverages))
	for i, lev := range leverages {
		claims[i] = model.Claim{
			ID:           "c" + string(rune('1'+i)),
			Supporters:   []string{"m0", "m1"},
			SupportRatio: 0,
			Leverage:     lev,
		}
	}
	return claims
}

func axisExclusivity(claims []model.Claim) []model.ClaimExclusivity {
	ex := make([]model.ClaimExclusivity, len(claims))
	for i := range claims {
		ex[i] = model.ClaimExclusivity{ClaimID: claims[i].ID, ExclusivityRatio: 1}
	}
	return ex
}

func TestFilter_Apply_AxisClustering(t *testing.T) {
	f := NewFilter(nil)

	claims := axisClaims(0, 1, 0.5, 0.25)
	in := Input{
		Claims:      claims,
		Exclusivity: axisExclusivity(claims),
		Overlap: []model.ClaimOverlapEntry{
			{ClaimA: "c1", ClaimB: "c2", Jaccard: 0.45}, // Links into one axis
			{ClaimA: "c3", ClaimB: "c4", Jaccard: 0.10}, // Below 0.30, no link
		},
		ModelCount:       4,
		ConvergenceRatio: 0.5,
	}

	result := f.Apply(in)

	if len(result.Axes) != 3 {
		t.Fatalf("expected 3 axes, got %d", len(result.Axes))
	}

	// c2 carries the highest composite; its axis sorts first and it is the
	// representative of the c1-c2 component.
	first := result.Axes[0]
	if first.RepresentativeClaimID != "c2" {
		t.Errorf("expected representative c2, got %q", first.RepresentativeClaimID)
	}
	if len(first.ClaimIDs) != 2 {
		t.Errorf("expected 2 claims in the first axis, got %v", first.ClaimIDs)
	}
	if first.ID != "axis-1" {
		t.Errorf("expected id axis-1, got %q", first.ID)
	}
	if first.MaxBlastRadius != result.Score("c2").Composite {
		t.Errorf("expected max blast radius %g, got %g", result.Score("c2").Composite, first.MaxBlastRadius)
	}

	// Remaining axes sort by their representative composite: c3 then c4.
	if result.Axes[1].RepresentativeClaimID != "c3" || result.Axes[2].RepresentativeClaimID != "c4" {
		t.Errorf("unexpected axis order: %q, %q",
			result.Axes[1].RepresentativeClaimID, result.Axes[2].RepresentativeClaimID)
	}
}

func TestFilter_Apply_SuppressedClaimsExcludedFromAxes(t *testing.T) {
	f := NewFilter(nil)

	claims := axisClaims(1, 0.5)
	in := Input{
		Claims: claims,
		// Only c1 gets exclusivity; c2's composite lands under the floor.
		Exclusivity: []model.ClaimExclusivity{
			{ClaimID: "c1", ExclusivityRatio: 1},
		},
		Overlap: []model.ClaimOverlapEntry{
			{ClaimA: "c1", ClaimB: "c2", Jaccard: 0.45},
		},
		ModelCount:       4,
		ConvergenceRatio: 0.5,
	}

	result := f.Apply(in)

	if !result.Score("c2").Suppressed {
		t.Fatal("fixture expected c2 suppressed")
	}
	if len(result.Axes) != 1 {
		t.Fatalf("expected 1 axis, got %d", len(result.Axes))
	}
	if len(result.Axes[0].ClaimIDs) != 1 || result.Axes[0].ClaimIDs[0] != "c1" {
		t.Errorf("expected axis of only c1, got %v", result.Axes[0].ClaimIDs)
	}
}

func TestFilter_Apply_QuestionCeiling_NoConflicts(t *testing.T) {
	f := NewFilter(nil)

	claims := axisClaims(1, 0.5, 0.25)
	in := Input{
		Claims:           claims,
		Exclusivity:      axisExclusivity(claims),
		ModelCount:       4,
		ConvergenceRatio: 0.5,
	}

	result := f.Apply(in)
	if result.QuestionCeiling != 2 {
		t.Errorf("expected ceiling 2 with no conflict edges, got %d", result.QuestionCeiling)
	}

	// Ceiling never exceeds the axis count.
	in.Claims = axisClaims(1)
	in.Exclusivity = axisExclusivity(in.Claims)
	result = f.Apply(in)
	if result.QuestionCeiling != 1 {
		t.Errorf("expected ceiling capped at 1 axis, got %d", result.QuestionCeiling)
	}
}

func TestFilter_Apply_QuestionCeiling_FlaggedSoleSource(t *testing.T) {
	f := NewFilter(nil)

	claims := axisClaims(1, 0.5, 0.25)
	claims[1].Supporters = []string{"m0"}
	claims[1].Keystone = true

	in := Input{
		Claims:           claims,
		Exclusivity:      axisExclusivity(claims),
		ModelCount:       4,
		ConvergenceRatio: 0.5,
	}

	result := f.Apply(in)
	if result.QuestionCeiling != 1 {
		t.Errorf("expected ceiling 1 with a keystone sole-source survivor, got %d", result.QuestionCeiling)
	}

	// Leverage inversion triggers the same narrowing. Convergence must stay
	// below the gate threshold for the round to proceed at all.
	claims[1].Keystone = false
	claims[1].LeverageInversion = true
	result = f.Apply(in)
	if result.QuestionCeiling != 1 {
		t.Errorf("expected ceiling 1 with a leverage-inversion sole-source survivor, got %d", result.QuestionCeiling)
	}
}

func TestFilter_Apply_QuestionCeiling_ConflictClusters(t *testing.T) {
	f := NewFilter(nil)

	claims := axisClaims(1, 0.9, 0.8, 0.7, 0.6, 0.5)
	in := Input{
		Claims:      claims,
		Exclusivity: axisExclusivity(claims),
		Edges: []model.Edge{
			{From: "c1", To: "c2", Type: model.EdgeConflicts},
		},
		ModelCount:       4,
		ConvergenceRatio: 0.5,
	}

	// One conflict cluster: ceiling 2.
	result := f.Apply(in)
	if result.Meta.ConflictClusters != 1 {
		t.Fatalf("expected 1 conflict cluster, got %d", result.Meta.ConflictClusters)
	}
	if result.QuestionCeiling != 2 {
		t.Errorf("expected ceiling 2 for <=2 conflict clusters, got %d", result.QuestionCeiling)
	}

	// Three disjoint conflict pairs: ceiling 3, regardless of six axes.
	in.Edges = []model.Edge{
		{From: "c1", To: "c2", Type: model.EdgeConflicts},
		{From: "c3", To: "c4", Type: model.EdgeConflicts},
		{From: "c5", To: "c6", Type: model.EdgeConflicts},
	}
	result = f.Apply(in)
	if result.Meta.ConflictClusters != 3 {
		t.Fatalf("expected 3 conflict clusters, got %d", result.Meta.ConflictClusters)
	}
	if result.QuestionCeiling != 3 {
		t.Errorf("expected ceiling 3 for >2 conflict clusters, got %d", result.QuestionCeiling)
	}
}

func TestFilter_Apply_CeilingZeroWithoutAxes(t *testing.T) {
	f := NewFilter(nil)

	// Every claim lands under the floor: no axes, ceiling 0, but the gate
	// has not fired (convergence is low), so this is a degenerate round
	// rather than a converged one.
	in := Input{
		Claims:           axisClaims(0, 0),
		ModelCount:       4,
		ConvergenceRatio: 0.5,
	}

	result := f.Apply(in)
	if result.SkipSurvey {
		t.Fatal("expected gate not to fire at low convergence")
	}
	if len(result.Axes) != 0 {
		t.Fatalf("expected no axes, got %d", len(result.Axes))
	}
	if result.QuestionCeiling != 0 {
		t.Errorf("expected ceiling 0 with no axes, got %d", result.QuestionCeiling)
	}
}
