package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/crux-triage/crux/internal/model"
	"github.com/crux-triage/crux/internal/pipeline"
)

var (
	outJSON       string
	outMD         string
	answersPath   string
	timeout       time.Duration
	noCache       bool
	noFooter      bool
	embedProvider string
	embedModel    string
)

// triageCmd represents the triage command
var triageCmd = &cobra.Command{
	Use:   "triage <bundle.json|bundle.yaml>",
	Short: "Run one decision round over a claim bundle",
	Long: `Triage runs the full decision round over a bundle of claims, edges, and
partitions exported by the upstream semantic mapper:
- Measure claim geometry from statement embeddings
- Score blast radius with transparent continuous modifiers
- Cluster surviving claims into independent decision axes
- Cap the number of clarifying questions to surface
- Resolve the traversal when partition answers are supplied

Bundles that arrive without vectors can be hydrated through an embedding
provider; scoring itself never calls one.

Example:
  crux triage round.json
  crux triage round.yaml --json report.json --md report.md
  crux triage round.json --answers answers.json
  crux triage round.json --embed openai`,
	Args: cobra.ExactArgs(1),
	RunE: runTriage,
}

func init() {
	rootCmd.AddCommand(triageCmd)

	// Output flags
	triageCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	triageCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	triageCmd.Flags().StringVar(&answersPath, "answers", "", "partition answers file (JSON or YAML)")
	triageCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall round timeout (matters only when embedding)")
	triageCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the embedding cache")
	triageCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Embedding flags
	triageCmd.Flags().StringVar(&embedProvider, "embed", "", "embedding provider for bundles without vectors (openai)")
	triageCmd.Flags().StringVar(&embedModel, "embed-model", "text-embedding-3-small", "embedding model name")
}

func runTriage(cmd *cobra.Command, args []string) error {
	bundlePath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	bundle, err := pipeline.LoadBundle(bundlePath)
	if err != nil {
		return err
	}

	if answersPath != "" {
		answers, err := pipeline.LoadAnswers(answersPath)
		if err != nil {
			return err
		}
		bundle.Answers = answers
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Bundle: %s (%d claims, %d edges, %d partitions)\n",
			bundlePath, len(bundle.Claims), len(bundle.Edges), len(bundle.Partitions))
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	report, err := p.RunRound(ctx, bundle)
	if err != nil {
		return fmt.Errorf("triage failed: %w", err)
	}

	if report.Filter.SkipSurvey {
		fmt.Printf("No questions needed: %s\n", report.Filter.SkipReason)
	} else {
		fmt.Printf("Question ceiling: %d (%d axes, %d/%d claims surviving)\n",
			report.Filter.QuestionCeiling, len(report.Filter.Axes),
			report.Filter.Meta.SurvivorCount, report.Filter.Meta.ClaimCount)
	}
	if len(report.PrunedStatementIDs) > 0 {
		fmt.Printf("Pruned %d statements, auto-resolved %d gates\n",
			len(report.PrunedStatementIDs), len(report.ResolvedGateIDs))
	}

	renderer := pipeline.NewRenderer(!noFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote Markdown: %s\n", outMD)
		}
	}

	return nil
}

// buildConfig merges defaults with triage command flags.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if embedProvider != "" {
		cfg.Embed.Provider = embedProvider
		cfg.Embed.Model = embedModel
		switch embedProvider {
		case "openai":
			cfg.Embed.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.Embed.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		}
	}

	return cfg, nil
}
