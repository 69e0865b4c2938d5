package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentic-research/vitrine/internal/journal"
)

var (
	journalLimit    int
	journalFailures bool
	journalSession  string
)

func init() {
	journalCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "Number of entries")
	journalCmd.Flags().BoolVar(&journalFailures, "failures", false, "Only rejected edits")
	journalCmd.Flags().StringVar(&journalSession, "session", "", "Only this session")
	rootCmd.AddCommand(journalCmd)
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show recent edits from the edit journal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		j, err := openJournal()
		if err != nil {
			return err
		}
		if j == nil {
			return errors.New("no journal configured")
		}
		defer func() { _ = j.Close() }()

		entries, err := j.Recent(cmd.Context(), journal.Filter{
			Limit:        journalLimit,
			FailuresOnly: journalFailures,
			Session:      journalSession,
		})
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TIME\tREV\tACTION\tPATH\tRESULT")
		for _, e := range entries {
			result := "ok"
			if e.Failed() {
				result = e.Error
			}
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", e.At.Format(time.DateTime), e.Revision, e.Action, e.Path, result)
		}
		return tw.Flush()
	},
}
