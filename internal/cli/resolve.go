package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crux-triage/crux/internal/model"
	"github.com/crux-triage/crux/internal/pipeline"
	"github.com/crux-triage/crux/internal/traverse"
)

var resolveAnswersPath string

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve <bundle.json|bundle.yaml>",
	Short: "Apply partition answers and report pruned statements and resolved gates",
	Long: `Resolve runs only the traversal partition engine: given the user's answers
to partition questions, it computes which source statements are pruned and
which downstream conditional gates auto-resolve without asking the user.

Example:
  crux resolve round.json --answers answers.json`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringVar(&resolveAnswersPath, "answers", "", "partition answers file (JSON or YAML, required)")
	_ = resolveCmd.MarkFlagRequired("answers")
}

func runResolve(cmd *cobra.Command, args []string) error {
	bundle, err := pipeline.LoadBundle(args[0])
	if err != nil {
		return err
	}
	if err := bundle.Normalize(); err != nil {
		return fmt.Errorf("normalize bundle: %w", err)
	}

	answers, err := pipeline.LoadAnswers(resolveAnswersPath)
	if err != nil {
		return err
	}

	engine := traverse.NewEngine(&model.DefaultConfig().Traverse)
	pruned := engine.PrunedStatementIDs(bundle.Partitions, answers)
	gates := engine.AutoResolvableGateIDs(bundle.Questions, pruned)

	ids := traverse.SortedStatementIDs(pruned)
	fmt.Printf("Pruned statements (%d):\n", len(ids))
	for _, id := range ids {
		fmt.Printf("  %s\n", id)
	}
	if len(gates) > 0 {
		fmt.Printf("Auto-resolved gates: %s\n", strings.Join(gates, ", "))
	} else {
		fmt.Println("Auto-resolved gates: none")
	}

	return nil
}
