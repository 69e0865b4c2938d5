package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentic-research/vitrine/internal/writeback"
)

var exportOut string

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "Write to this file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the content as formatted JSON, without editing scaffolding",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(cmd.Context(), nil)
		if err != nil {
			return err
		}
		data := append(doc.Export(), '\n')
		if exportOut == "" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}
		if err := writeback.WriteFile(exportOut, data); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", location(), exportOut)
		return nil
	},
}
