package model

import (
	"strings"
	"testing"
)

func TestBundle_Normalize_DefaultsAndClamps(t *testing.T) {
	b := &Bundle{
		Claims: []Claim{
			{ID: "c1", SupportRatio: 1.7},
			{ID: "c2", SupportRatio: -0.2},
		},
		Edges: []Edge{
			{From: "c1", To: "c2"}, // Untyped defaults to supports
		},
		Partitions: []Partition{
			{ID: "p1"},
		},
		ModelCount:       3,
		ConvergenceRatio: 0.5,
	}

	if err := b.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if b.Claims[0].SupportRatio != 1 || b.Claims[1].SupportRatio != 0 {
		t.Errorf("expected support ratios clamped to [0,1], got %g and %g",
			b.Claims[0].SupportRatio, b.Claims[1].SupportRatio)
	}
	if b.Claims[0].Supporters == nil || b.Claims[0].SourceStatementIDs == nil {
		t.Error("expected nil claim slices defaulted")
	}
	if b.Edges[0].Type != EdgeSupports {
		t.Errorf("expected untyped edge defaulted to supports, got %q", b.Edges[0].Type)
	}
	if b.Partitions[0].SideAStatementIDs == nil || b.Partitions[0].SideBStatementIDs == nil {
		t.Error("expected nil partition sides defaulted")
	}
}

func TestBundle_Normalize_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		bundle Bundle
		want   string
	}{
		{
			name:   "negative model count",
			bundle: Bundle{ModelCount: -1},
			want:   "model_count",
		},
		{
			name:   "convergence out of range",
			bundle: Bundle{ConvergenceRatio: 1.2},
			want:   "convergence_ratio",
		},
		{
			name:   "empty claim id",
			bundle: Bundle{Claims: []Claim{{}}},
			want:   "empty id",
		},
		{
			name:   "duplicate claim id",
			bundle: Bundle{Claims: []Claim{{ID: "c1"}, {ID: "c1"}}},
			want:   "duplicate claim id",
		},
		{
			name:   "unknown edge type",
			bundle: Bundle{Edges: []Edge{{From: "a", To: "b", Type: "contradicts"}}},
			want:   "unknown type",
		},
		{
			name:   "empty partition id",
			bundle: Bundle{Partitions: []Partition{{}}},
			want:   "partition 0",
		},
		{
			name:   "unknown question type",
			bundle: Bundle{Questions: []TraversalQuestion{{ID: "q1", Type: "survey"}}},
			want:   "unknown type",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.bundle.Normalize()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestBundle_StatementModelIndex(t *testing.T) {
	b := &Bundle{
		Statements: []Statement{
			{ID: "s1", ParagraphID: "p1"},
			{ID: "s2", ParagraphID: "p2"},
			{ID: "s3", ParagraphID: "ghost"}, // Paragraph unknown
			{ID: "s4"},                       // No paragraph at all
		},
		Paragraphs: []Paragraph{
			{ID: "p1", ModelIndex: 0},
			{ID: "p2", ModelIndex: 3},
		},
	}

	idx := b.StatementModelIndex()
	if len(idx) != 2 {
		t.Fatalf("expected 2 traced statements, got %d", len(idx))
	}
	if idx["s1"] != 0 || idx["s2"] != 3 {
		t.Errorf("unexpected model indices: %v", idx)
	}
}

func TestAnswer_Decided(t *testing.T) {
	if !(Answer{Choice: ChoiceA}).Decided() || !(Answer{Choice: ChoiceB}).Decided() {
		t.Error("expected A and B decided")
	}
	if (Answer{Choice: ChoiceUnknown}).Decided() || (Answer{}).Decided() {
		t.Error("expected unknown and empty undecided")
	}
}
