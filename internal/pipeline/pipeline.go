// Package pipeline orchestrates one complete decision round: bundle
// validation, optional embedding hydration, diagnostics, blast-radius
// filtering, and traversal resolution. The three core engines stay directly
// callable; this package only sequences them and assembles the report.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/crux-triage/crux/internal/cache"
	"github.com/crux-triage/crux/internal/diagnose"
	"github.com/crux-triage/crux/internal/embed"
	"github.com/crux-triage/crux/internal/filter"
	"github.com/crux-triage/crux/internal/graph"
	"github.com/crux-triage/crux/internal/model"
	"github.com/crux-triage/crux/internal/traverse"
	"github.com/crux-triage/crux/internal/vector"
)

// Pipeline runs decision rounds.
type Pipeline struct {
	analyzer *diagnose.Analyzer
	filter   *filter.Filter
	engine   *traverse.Engine
	embedder *embed.Embedder // Nil when no provider is configured
	renderer *Renderer
	config   *model.Config
}

// NewPipeline creates a pipeline from configuration.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	var embedder *embed.Embedder
	provider, err := embed.NewProvider(cfg.Embed)
	if err != nil {
		return nil, fmt.Errorf("embed provider: %w", err)
	}
	if provider != nil {
		var store cache.Cache
		if cfg.Cache.Enabled {
			store = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
		}
		embedder = embed.NewEmbedder(provider, store, cfg.Embed, cfg.Cache, cfg.Concurrency.EmbedWorkers)
	}

	return &Pipeline{
		analyzer: diagnose.NewAnalyzer(),
		filter:   filter.NewFilter(&cfg.Filter),
		engine:   traverse.NewEngine(&cfg.Traverse),
		embedder: embedder,
		renderer: NewRenderer(cfg.Output.IncludeFooter),
		config:   cfg,
	}, nil
}

// RunRound validates the bundle, measures it, filters it, and (when the
// bundle carries answers) resolves the traversal. Derived records are
// recomputed from scratch; nothing is persisted here.
func (p *Pipeline) RunRound(ctx context.Context, bundle *model.Bundle) (*model.Report, error) {
	if err := bundle.Normalize(); err != nil {
		return nil, fmt.Errorf("normalize bundle: %w", err)
	}

	if err := p.hydrateEmbeddings(ctx, bundle); err != nil {
		return nil, fmt.Errorf("hydrate embeddings: %w", err)
	}

	statementModel := bundle.StatementModelIndex()

	diagnostics := p.analyzer.Compute(bundle.Claims, bundle.Edges, bundle.Regions, bundle.Embeddings, statementModel)
	diagnose.Stamp(bundle.Claims, diagnostics)

	filterResult := p.filter.Apply(filter.Input{
		Claims:             bundle.Claims,
		Edges:              bundle.Edges,
		CascadeRisks:       bundle.CascadeRisks,
		Exclusivity:        bundle.Exclusivity,
		Overlap:            bundle.Overlap,
		ArticulationPoints: ArticulationPoints(bundle.Claims, bundle.Edges),
		QueryRelevance:     QueryRelevance(bundle.Claims, bundle.Embeddings, bundle.QueryEmbedding),
		ModelCount:         bundle.ModelCount,
		ConvergenceRatio:   bundle.ConvergenceRatio,
		StatementModel:     statementModel,
	})

	report := &model.Report{
		Subject:     bundle.Subject,
		ComputedAt:  time.Now().UTC(),
		Diagnostics: diagnostics,
		Filter:      filterResult,
		Principles:  model.DefaultPrinciples(),
	}

	if len(bundle.Answers) > 0 {
		pruned := p.engine.PrunedStatementIDs(bundle.Partitions, bundle.Answers)
		report.PrunedStatementIDs = traverse.SortedStatementIDs(pruned)
		report.ResolvedGateIDs = p.engine.AutoResolvableGateIDs(bundle.Questions, pruned)
	}

	return report, nil
}

// hydrateEmbeddings fills in missing statement vectors and the query vector
// through the configured provider. A bundle that already carries vectors is
// left untouched; a bundle without vectors and without a provider still
// works, it just measures nothing geometric.
func (p *Pipeline) hydrateEmbeddings(ctx context.Context, bundle *model.Bundle) error {
	if p.embedder == nil {
		return nil
	}

	if bundle.Embeddings == nil {
		bundle.Embeddings = make(model.EmbeddingSet)
	}
	var missing []model.Statement
	for _, s := range bundle.Statements {
		if _, ok := bundle.Embeddings[s.ID]; !ok && s.Text != "" {
			missing = append(missing, s)
		}
	}
	if len(missing) > 0 {
		set, err := p.embedder.EmbedStatements(ctx, missing)
		if err != nil {
			return err
		}
		for id, v := range set {
			bundle.Embeddings[id] = v
		}
	}

	if len(bundle.QueryEmbedding) == 0 && bundle.Subject != "" {
		v, err := p.embedder.EmbedQuery(ctx, bundle.Subject)
		if err != nil {
			return err
		}
		bundle.QueryEmbedding = v
	}

	return nil
}

// ArticulationPoints computes the cut vertices of the claim graph over all
// edge types. This produces the filter's articulation input when the
// upstream structural analyzer has not supplied one.
func ArticulationPoints(claims []model.Claim, edges []model.Edge) []string {
	g := graph.NewUndirected()
	for i := range claims {
		g.AddNode(claims[i].ID)
	}
	claimSet := make(map[string]bool, len(claims))
	for i := range claims {
		claimSet[claims[i].ID] = true
	}
	for _, e := range edges {
		if claimSet[e.From] && claimSet[e.To] {
			g.AddEdge(e.From, e.To)
		}
	}
	return g.ArticulationPoints()
}

// QueryRelevance computes each claim's raw mean cosine similarity between
// its embedded source statements and the query vector. Claims with no
// embedded statements are omitted: an unmeasurable relevance is not zero
// relevance.
func QueryRelevance(claims []model.Claim, embeddings model.EmbeddingSet, query model.Embedding) map[string]float64 {
	relevance := make(map[string]float64)
	if len(query) == 0 {
		return relevance
	}
	for i := range claims {
		var vectors [][]float64
		for _, sid := range claims[i].SourceStatementIDs {
			if v, ok := embeddings[sid]; ok {
				vectors = append(vectors, v)
			}
		}
		if mean := vector.MeanCosine(vectors, query); mean != nil {
			relevance[claims[i].ID] = *mean
		}
	}
	return relevance
}
