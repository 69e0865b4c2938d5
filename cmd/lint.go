package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentic-research/vitrine/internal/linter"
	"github.com/agentic-research/vitrine/internal/writeback"
)

func init() {
	rootCmd.AddCommand(lintCmd)
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check the content for structural errors and likely mistakes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(cmd.Context(), nil)
		if err != nil {
			return err
		}
		tree := doc.Snapshot()
		out := cmd.OutOrStdout()

		problems := writeback.Problems(tree)
		for _, p := range problems {
			fmt.Fprintf(out, "error: %s\n", p.Error())
		}
		for _, d := range linter.Lint(tree) {
			fmt.Fprintf(out, "warning: %s\n", d)
		}
		if len(problems) > 0 {
			return fmt.Errorf("%d structural error(s)", len(problems))
		}
		return nil
	},
}
