package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/templui/eternalquest/internal/model"
)

func MenuCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := &menu{
				s:   s,
				in:  bufio.NewReader(cmd.InOrStdin()),
				out: cmd.OutOrStdout(),
			}
			return m.run()
		},
	}
}

type menu struct {
	s   *session
	in  *bufio.Reader
	out io.Writer
}

// errInputClosed ends the menu when stdin is exhausted.
var errInputClosed = errors.New("input closed")

func (m *menu) run() error {
	fmt.Fprintln(m.out, "Welcome to Eternal Quest!")
	fmt.Fprintln(m.out)

	for {
		m.showMenu()
		choice, err := m.prompt("Choose an option: ")
		if err != nil {
			break
		}
		fmt.Fprintln(m.out)

		switch choice {
		case "1":
			err = m.createGoal()
		case "2":
			printGoals(m.out, m.s)
		case "3":
			err = m.recordEvent()
		case "4":
			printStatus(m.out, m.s.quest().EngineStatus())
		case "5":
			err = m.saveFile()
		case "6":
			err = m.loadFile()
		case "7":
			fmt.Fprintln(m.out, "Goodbye! Keep pressing forward on your Eternal Quest.")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid option. Try again.")
		}
		if errors.Is(err, errInputClosed) {
			break
		}
		fmt.Fprintln(m.out)
	}

	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "Goodbye! Keep pressing forward on your Eternal Quest.")
	return nil
}

func (m *menu) showMenu() {
	fmt.Fprintln(m.out, "Menu:")
	fmt.Fprintln(m.out, "1. Create a new goal")
	fmt.Fprintln(m.out, "2. Show goals")
	fmt.Fprintln(m.out, "3. Record an event (complete a goal)")
	fmt.Fprintln(m.out, "4. Show score/level")
	fmt.Fprintln(m.out, "5. Save goals & score")
	fmt.Fprintln(m.out, "6. Load goals & score")
	fmt.Fprintln(m.out, "7. Exit")
	fmt.Fprintln(m.out)
}

func (m *menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	line, err := m.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", errInputClosed
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptInt asks until it gets an integer within [lo, hi].
func (m *menu) promptInt(label string, lo, hi int) (int, error) {
	for {
		s, err := m.prompt(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		switch {
		case err != nil:
			fmt.Fprintln(m.out, "Invalid number, try again.")
		case n < lo || n > hi:
			fmt.Fprintf(m.out, "Value must be between %d and %d.\n", lo, hi)
		default:
			return n, nil
		}
	}
}

func (m *menu) createGoal() error {
	fmt.Fprintln(m.out, "Select goal type:")
	fmt.Fprintln(m.out, "1. Simple goal (one-time)")
	fmt.Fprintln(m.out, "2. Eternal goal (repeatable)")
	fmt.Fprintln(m.out, "3. Checklist goal (repeat N times)")

	choice, err := m.prompt("Choice: ")
	if err != nil {
		return err
	}

	var p model.GoalParams
	if p.Title, err = m.prompt("Enter title: "); err != nil {
		return err
	}
	if p.Description, err = m.prompt("Enter description: "); err != nil {
		return err
	}
	if p.Points, err = m.promptInt("Enter points awarded per event: ", minInt, maxInt); err != nil {
		return err
	}

	kind, kindErr := model.ParseKind(choice)
	if kind == model.GoalKindChecklist {
		if p.TargetCount, err = m.promptInt("Enter how many times needed to complete: ", minInt, maxInt); err != nil {
			return err
		}
		if p.Bonus, err = m.promptInt("Enter bonus points awarded on completion: ", minInt, maxInt); err != nil {
			return err
		}
	}
	if kindErr != nil {
		fmt.Fprintln(m.out, "Unknown type. Aborting creation.")
		return nil
	}
	p.Kind = kind

	_, err = m.s.quest().CreateGoal(p)
	if err != nil {
		fmt.Fprintf(m.out, "Could not create goal: %v\n", err)
		return nil
	}

	fmt.Fprintln(m.out, "Goal created.")
	return nil
}

func (m *menu) recordEvent() error {
	count := len(m.s.quest().ListGoals())
	if count == 0 {
		fmt.Fprintln(m.out, "No goals to record.")
		return nil
	}

	printGoals(m.out, m.s)
	fmt.Fprintln(m.out)

	index, err := m.promptInt(fmt.Sprintf("Choose a goal to record (1-%d): ", count), 1, count)
	if err != nil {
		return err
	}

	outcome, err := m.s.quest().RecordEventAt(index)
	if err != nil {
		fmt.Fprintf(m.out, "Error recording event: %v\n", err)
		return nil
	}

	printOutcome(m.out, outcome)
	return nil
}

func (m *menu) filename(action string) (string, error) {
	name, err := m.prompt(fmt.Sprintf("Enter filename to %s (default %s): ", action, m.defaultFile()))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(name) == "" {
		return m.s.file, nil
	}
	return name, nil
}

func (m *menu) defaultFile() string {
	if m.s.file != "" {
		return m.s.file
	}
	return m.s.quest().DefaultPath()
}

func (m *menu) saveFile() error {
	path, err := m.filename("save")
	if err != nil {
		return err
	}

	msg, _ := m.s.quest().SaveToPath(path)
	fmt.Fprintln(m.out, msg)
	return nil
}

func (m *menu) loadFile() error {
	path, err := m.filename("load")
	if err != nil {
		return err
	}

	result, _ := m.s.quest().LoadFromPath(path)
	fmt.Fprintln(m.out, result.Message)
	return nil
}

const (
	minInt = -1 << 31
	maxInt = 1<<31 - 1
)
