package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentic-research/vitrine/api"
	"github.com/agentic-research/vitrine/internal/content"
	"github.com/agentic-research/vitrine/internal/writeback"
)

var (
	editAction string
	editDryRun bool
)

func init() {
	editCmd.Flags().StringVarP(&editAction, "action", "a", "UPDATE", "UPDATE, ADD_ITEM or DELETE_ITEM")
	editCmd.Flags().BoolVar(&editDryRun, "dry-run", false, "Print the resulting document instead of saving it")
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit <path> [json-value]",
	Short: "Apply one mutation to the content file",
	Long: `Apply one mutation to the content file and save it atomically.

The value is JSON text: '"New title"', '3', '{"name":"Ana"}'. Omit it for
DELETE_ITEM on an element path (faq.items[1]).`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := contentPath()
		if err != nil {
			return err
		}

		j, err := openJournal()
		if err != nil {
			return err
		}
		if j != nil {
			defer func() { _ = j.Close() }()
		}

		doc, err := loadDocument(cmd.Context(), recorder(j))
		if err != nil {
			return err
		}

		e := api.Edit{Path: args[0], Action: editAction}
		if len(args) == 2 {
			e.Value = json.RawMessage(args[1])
		}
		res, err := doc.Apply(cmd.Context(), e)
		if err != nil {
			return err
		}

		if editDryRun {
			fmt.Fprintln(cmd.OutOrStdout(), string(content.Encode(doc.Snapshot(), 2)))
			return nil
		}
		if err := writeback.Save(file, doc.Snapshot()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Applied %s %s (revision %d), saved %s\n", e.Action, e.Path, res.Revision, file)
		return nil
	},
}
