package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/templui/eternalquest/internal/app"
	"github.com/templui/eternalquest/internal/repository"
	"github.com/templui/eternalquest/internal/service"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// session carries what every command needs: the app and the quest file
// selected with --file.
type session struct {
	app  *app.App
	file string
}

func (s *session) quest() *service.QuestService {
	return s.app.QuestService
}

// load reads the quest file if there is one. A missing file starts a
// fresh quest.
func (s *session) load() error {
	_, err := s.quest().LoadFromPath(s.file)
	if errors.Is(err, repository.ErrQuestFileNotFound) || errors.Is(err, repository.ErrQuestFileEmpty) {
		return nil
	}
	return err
}

func (s *session) save(out io.Writer) error {
	msg, err := s.quest().SaveToPath(s.file)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, msg)
	return nil
}

func RootCmd(a *app.App) *cobra.Command {
	s := &session{app: a}

	rootCmd := &cobra.Command{
		Use:          "quest",
		Short:        "Track goals, earn points and level up",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&s.file, "file", "f", "", fmt.Sprintf("quest file (default %s)", a.QuestService.DefaultPath()))

	rootCmd.AddCommand(MenuCmd(s))
	rootCmd.AddCommand(CreateCmd(s))
	rootCmd.AddCommand(ListCmd(s))
	rootCmd.AddCommand(RecordCmd(s))
	rootCmd.AddCommand(StatusCmd(s))
	rootCmd.AddCommand(HistoryCmd(s))
	rootCmd.AddCommand(BackupCmd(s))

	return rootCmd
}

var printer = message.NewPrinter(language.English)

func printStatus(out io.Writer, status service.EngineStatus) {
	printer.Fprintf(out, "Score: %d  |  Level: %d\n", status.Score, status.Level)
	if len(status.Badges) > 0 {
		fmt.Fprintf(out, "Badges: %s\n", strings.Join(status.Badges, ", "))
	}
}

func printGoals(out io.Writer, s *session) {
	goals := s.quest().ListGoals()
	if len(goals) == 0 {
		fmt.Fprintln(out, "No goals yet.")
		return
	}

	fmt.Fprintln(out, "Goals:")
	for _, g := range goals {
		fmt.Fprintf(out, "%d. %s %s - %s\n", g.Index, g.Status, g.Title, g.Description)
	}
}

func printOutcome(out io.Writer, outcome service.EventOutcome) {
	if outcome.Earned() == 0 {
		fmt.Fprintln(out, "No points earned (maybe the goal was already complete).")
		return
	}

	printer.Fprintf(out, "You earned %d points!\n", outcome.Earned())
	if outcome.Award.LevelUp() {
		fmt.Fprintf(out, "*** Level up! You reached level %d! ***\n", outcome.Award.NewLevel)
	}
	for _, badge := range outcome.Award.NewBadges {
		fmt.Fprintf(out, "Badge earned: %s\n", badge.Label)
	}
}
