package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/crux-triage/crux/internal/model"
)

// Renderer writes round reports to disk.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable summary of the triage verdict.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Crux Triage Report\n\n")
	if report.Subject != "" {
		fmt.Fprintf(&b, "**Subject:** %s\n\n", report.Subject)
	}
	fmt.Fprintf(&b, "Computed: %s\n\n", report.ComputedAt.Format("2006-01-02 15:04:05 UTC"))

	f := &report.Filter
	if f.SkipSurvey {
		fmt.Fprintf(&b, "## Verdict: no questions\n\n%s\n\n", f.SkipReason)
	} else {
		fmt.Fprintf(&b, "## Verdict: up to %d question(s)\n\n", f.QuestionCeiling)

		if len(f.Axes) > 0 {
			fmt.Fprintf(&b, "### Decision axes\n\n")
			fmt.Fprintf(&b, "| axis | representative claim | blast radius | claims |\n")
			fmt.Fprintf(&b, "|---|---|---|---|\n")
			for _, axis := range f.Axes {
				fmt.Fprintf(&b, "| %s | %s | %.3f | %s |\n",
					axis.ID, axis.RepresentativeClaimID, axis.MaxBlastRadius,
					strings.Join(axis.ClaimIDs, ", "))
			}
			fmt.Fprintf(&b, "\n")
		}
	}

	fmt.Fprintf(&b, "### Claim scores\n\n")
	fmt.Fprintf(&b, "| claim | composite | raw | suppressed | trace |\n")
	fmt.Fprintf(&b, "|---|---|---|---|---|\n")
	for i := range f.Scores {
		s := &f.Scores[i]
		trace := s.SuppressionReason
		if trace == "" {
			trace = "-"
		}
		fmt.Fprintf(&b, "| %s | %.3f | %.3f | %v | %s |\n",
			s.ClaimID, s.Composite, s.RawComposite, s.Suppressed, trace)
	}
	fmt.Fprintf(&b, "\n")

	if len(report.PrunedStatementIDs) > 0 {
		fmt.Fprintf(&b, "### Traversal\n\n")
		fmt.Fprintf(&b, "Pruned statements (%d): %s\n\n",
			len(report.PrunedStatementIDs), strings.Join(report.PrunedStatementIDs, ", "))
		if len(report.ResolvedGateIDs) > 0 {
			fmt.Fprintf(&b, "Auto-resolved gates: %s\n\n", strings.Join(report.ResolvedGateIDs, ", "))
		}
	}

	if r.includeFooter {
		fmt.Fprintf(&b, "---\n\nCrux measures structure and support, never truth. ")
		fmt.Fprintf(&b, "Every discount above is a labeled policy heuristic; raw composites are preserved for audit.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}
