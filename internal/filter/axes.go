package filter

import (
	"fmt"
	"sort"

	"github.com/crux-triage/crux/internal/graph"
	"github.com/crux-triage/crux/internal/model"
)

// clusterAxes builds the undirected overlap graph over surviving claims and
// returns its connected components as decision axes, sorted descending by
// representative composite. Survivors enter the graph in claim order, which
// fixes component order before the sort and keeps equal-composite ties
// deterministic.
func (f *Filter) clusterAxes(in Input, scores []model.BlastRadiusScore) []model.BlastRadiusAxis {
	byID := make(map[string]*model.BlastRadiusScore, len(scores))
	for i := range scores {
		byID[scores[i].ClaimID] = &scores[i]
	}

	surviving := func(id string) bool {
		s, ok := byID[id]
		return ok && !s.Suppressed && s.Composite > 0
	}

	g := graph.NewUndirected()
	for i := range in.Claims {
		if surviving(in.Claims[i].ID) {
			g.AddNode(in.Claims[i].ID)
		}
	}
	for _, entry := range in.Overlap {
		if entry.Jaccard > f.cfg.AxisJaccard && surviving(entry.ClaimA) && surviving(entry.ClaimB) {
			g.AddEdge(entry.ClaimA, entry.ClaimB)
		}
	}

	axes := make([]model.BlastRadiusAxis, 0, g.Len())
	for _, component := range g.Components() {
		rep := component[0]
		for _, id := range component[1:] {
			if byID[id].Composite > byID[rep].Composite {
				rep = id
			}
		}
		axes = append(axes, model.BlastRadiusAxis{
			ClaimIDs:              component,
			RepresentativeClaimID: rep,
			MaxBlastRadius:        byID[rep].Composite,
		})
	}

	sort.SliceStable(axes, func(i, j int) bool {
		return axes[i].MaxBlastRadius > axes[j].MaxBlastRadius
	})
	for i := range axes {
		axes[i].ID = fmt.Sprintf("axis-%d", i+1)
	}

	return axes
}

// questionCeiling caps how many clarifying questions one round may surface.
// Always in {0..MaxQuestions}; 0 whenever there are no axes.
func (f *Filter) questionCeiling(in Input, scores []model.BlastRadiusScore, axes []model.BlastRadiusAxis, conflictEdges, conflictClusters int) int {
	if len(axes) == 0 {
		return 0
	}

	if conflictEdges == 0 {
		// A structurally critical sole-source survivor narrows the round to
		// its single sharpest question.
		byID := make(map[string]*model.BlastRadiusScore, len(scores))
		for i := range scores {
			byID[scores[i].ClaimID] = &scores[i]
		}
		for i := range in.Claims {
			c := &in.Claims[i]
			if len(c.Supporters) != 1 || !(c.LeverageInversion || c.Keystone) {
				continue
			}
			if s, ok := byID[c.ID]; ok && !s.Suppressed {
				return capAt(1, len(axes))
			}
		}
		return capAt(2, len(axes))
	}

	if conflictClusters <= 2 {
		return capAt(2, len(axes))
	}
	return capAt(f.cfg.MaxQuestions, len(axes))
}

// countConflictClusters counts connected components of the conflict-only
// edge subgraph. Claims untouched by conflict edges do not contribute.
func countConflictClusters(edges []model.Edge) int {
	g := graph.NewUndirected()
	for _, e := range edges {
		if e.Type == model.EdgeConflicts {
			g.AddEdge(e.From, e.To)
		}
	}
	return len(g.Components())
}

func capAt(limit, axisCount int) int {
	if axisCount < limit {
		return axisCount
	}
	return limit
}
