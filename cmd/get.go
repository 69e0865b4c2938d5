package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentic-research/vitrine/internal/content"
)

func init() {
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(queryCmd)
}

var getCmd = &cobra.Command{
	Use:   "get [path]",
	Short: "Print the value at a content path",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(cmd.Context(), nil)
		if err != nil {
			return err
		}
		v := doc.Snapshot()
		if len(args) == 1 && args[0] != "" {
			if v, err = doc.Get(args[0]); err != nil {
				return err
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(content.Encode(v, 2)))
		return nil
	},
}

var queryCmd = &cobra.Command{
	Use:   "query <jsonpath>",
	Short: "Evaluate a JSONPath selector against the content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(cmd.Context(), nil)
		if err != nil {
			return err
		}
		matches, err := doc.Query(args[0])
		if err != nil {
			return err
		}
		for _, m := range matches {
			fmt.Fprintln(cmd.OutOrStdout(), string(content.Encode(m, 0)))
		}
		return nil
	},
}
