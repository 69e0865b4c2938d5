package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agentic-research/vitrine/internal/agent"
)

func init() {
	rootCmd.AddCommand(agentCmd)
}

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Serve the content file to MCP clients over stdio",
	Long: `Serve the content file to MCP clients over stdio.

Tools: get_content, mutate_content, query_content, export_content and
lint_content. Successful mutations are saved back to the content file.
Logs go to stderr; stdout carries the protocol.`,
	Args: cobra.NoArgs,
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
		return agent.New(doc, file, logger).ServeStdio(version)
	},
}
