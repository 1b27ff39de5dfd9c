package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/templui/eternalquest/internal/model"
)

func CreateCmd(s *session) *cobra.Command {
	var (
		kind   string
		params model.GoalParams
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a simple, eternal or checklist goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := model.ParseKind(kind)
			if err != nil {
				return err
			}
			params.Kind = k

			if err := s.load(); err != nil {
				return err
			}

			_, err = s.quest().CreateGoal(params)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Goal created.")
			return s.save(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "simple", "goal kind: simple, eternal or checklist")
	cmd.Flags().StringVarP(&params.Title, "title", "t", "", "goal title")
	cmd.Flags().StringVarP(&params.Description, "description", "d", "", "goal description")
	cmd.Flags().IntVarP(&params.Points, "points", "p", 0, "points awarded per event")
	cmd.Flags().IntVar(&params.TargetCount, "target", 1, "events needed to complete a checklist goal")
	cmd.Flags().IntVar(&params.Bonus, "bonus", 0, "bonus awarded when a checklist goal completes")

	return cmd
}

func ListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.load(); err != nil {
				return err
			}
			printGoals(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

func RecordCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "record <goal-number>",
		Short: "Record an event against a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid goal number %q", args[0])
			}

			if err := s.load(); err != nil {
				return err
			}

			outcome, err := s.quest().RecordEventAt(index)
			if err != nil {
				return err
			}

			printOutcome(cmd.OutOrStdout(), outcome)
			return s.save(cmd.OutOrStdout())
		},
	}
}

func StatusCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show score and level",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.load(); err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), s.quest().EngineStatus())
			return nil
		},
	}
}
