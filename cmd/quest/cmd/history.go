package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func HistoryCmd(s *session) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently recorded events",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := s.quest().History(limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No events recorded yet.")
				return nil
			}

			for _, e := range events {
				printer.Fprintf(out, "%s  #%d %s (%s)  +%d  score %d  level %d\n",
					e.RecordedAt.Local().Format(time.DateTime),
					e.GoalIndex, e.GoalTitle, e.GoalKind, e.Points, e.Score, e.Level)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of events to show")
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Delete all recorded events",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := s.app.ResetJournal(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Event history cleared.")
			return nil
		},
	})

	return cmd
}
