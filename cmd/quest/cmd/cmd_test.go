package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/eternalquest/internal/app"
	"github.com/templui/eternalquest/internal/config"
	"github.com/templui/eternalquest/internal/model"
	"github.com/templui/eternalquest/internal/repository"
	"github.com/templui/eternalquest/internal/service"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	cfg := &config.Config{
		AppEnv:    "production",
		QuestFile: filepath.Join(t.TempDir(), config.DefaultQuestFile),
	}
	return &app.App{
		Cfg:          cfg,
		QuestService: service.NewQuestService(repository.NewQuestFileRepository(), nil, model.DefaultPolicy(), cfg.QuestFile),
	}
}

func run(t *testing.T, a *app.App, stdin string, args ...string) (string, error) {
	t.Helper()
	root := RootCmd(a)
	var out bytes.Buffer
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.Execute()
	return out.String(), err
}

func TestMenuSession(t *testing.T) {
	a := newTestApp(t)
	path := filepath.Join(t.TempDir(), "menu.txt")

	input := strings.Join([]string{
		"1", "1", "Run", "Marathon", "100", // create simple goal
		"3", "1", // record it
		"4",       // status
		"5", path, // save
		"7",
	}, "\n") + "\n"

	out, err := run(t, a, input, "menu")
	require.NoError(t, err)

	assert.Contains(t, out, "Goal created.")
	assert.Contains(t, out, "You earned 100 points!")
	assert.Contains(t, out, "*** Level up! You reached level 2! ***")
	assert.Contains(t, out, "Badge earned: 100+ points")
	assert.Contains(t, out, "Score: 100  |  Level: 2")
	assert.Contains(t, out, "Saved to "+path+".")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "100\nSimple|Run|Marathon|100|True\n", string(data))
}

func TestMenuRetriesInvalidInput(t *testing.T) {
	a := newTestApp(t)

	input := strings.Join([]string{
		"9",                                  // invalid option
		"1", "2", "Pray", "Daily", "x", "50", // bad number then good
		"3", "5", "1", // out of range then valid
		"6", "", // load default file, which does not exist yet
		"7",
	}, "\n") + "\n"

	out, err := run(t, a, input, "menu")
	require.NoError(t, err)

	assert.Contains(t, out, "Invalid option. Try again.")
	assert.Contains(t, out, "Invalid number, try again.")
	assert.Contains(t, out, "Value must be between 1 and 1.")
	assert.Contains(t, out, "You earned 50 points!")
	assert.Contains(t, out, "not found.")
	assert.Len(t, a.QuestService.ListGoals(), 1)
}

func TestMenuEndsOnEOF(t *testing.T) {
	out, err := run(t, newTestApp(t), "2\n", "menu")
	require.NoError(t, err)
	assert.Contains(t, out, "No goals yet.")
	assert.Contains(t, out, "Goodbye!")
}

func TestCommands(t *testing.T) {
	a := newTestApp(t)
	file := filepath.Join(t.TempDir(), "quest.txt")

	out, err := run(t, a, "", "create", "-f", file, "-k", "checklist", "-t", "Temple", "-d", "Visit", "-p", "10", "--target", "2", "--bonus", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "Goal created.")

	out, err = run(t, a, "", "record", "1", "-f", file)
	require.NoError(t, err)
	assert.Contains(t, out, "You earned 10 points!")

	out, err = run(t, a, "", "record", "1", "-f", file)
	require.NoError(t, err)
	assert.Contains(t, out, "You earned 60 points!")

	out, err = run(t, a, "", "list", "-f", file)
	require.NoError(t, err)
	assert.Contains(t, out, "1. [X] Temple - Visit")

	out, err = run(t, a, "", "status", "-f", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Score: 70  |  Level: 1")

	_, err = run(t, a, "", "record", "2", "-f", file)
	assert.ErrorIs(t, err, model.ErrIndexOutOfRange)

	_, err = run(t, a, "", "create", "-f", file, "-k", "weekly", "-t", "Gym")
	assert.ErrorIs(t, err, model.ErrUnknownGoalKind)
}

func TestHistoryWithoutJournal(t *testing.T) {
	_, err := run(t, newTestApp(t), "", "history")
	assert.ErrorIs(t, err, service.ErrJournalDisabled)
}

func TestBackupRequiresBucket(t *testing.T) {
	_, err := run(t, newTestApp(t), "", "backup", "push")
	assert.ErrorIs(t, err, app.ErrBackupNotConfigured)
}
