package repository

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/templui/eternalquest/internal/model"
)

var (
	ErrQuestFileNotFound = errors.New("quest file not found")
	ErrQuestFileEmpty    = errors.New("quest file is empty")
)

// Snapshot is the decoded content of a quest file.
type Snapshot struct {
	Engine   *model.Gamification
	Registry *model.Registry
	Skipped  int // goal records that could not be parsed
}

type QuestFileRepository interface {
	Save(path string, engine *model.Gamification, registry *model.Registry) error
	Load(path string, policy model.Policy) (*Snapshot, error)
}

type questFileRepository struct{}

func NewQuestFileRepository() QuestFileRepository {
	return &questFileRepository{}
}

// Save writes the quest file atomically: either the whole new content is
// in place afterwards or the previous file is untouched.
func (r *questFileRepository) Save(path string, engine *model.Gamification, registry *model.Registry) error {
	var buf bytes.Buffer
	err := Encode(&buf, engine, registry)
	if err != nil {
		return err
	}

	err = atomic.WriteFile(path, &buf)
	if err != nil {
		return fmt.Errorf("failed to write quest file: %w", err)
	}
	return nil
}

func (r *questFileRepository) Load(path string, policy model.Policy) (*Snapshot, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrQuestFileNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open quest file: %w", err)
	}
	defer f.Close()

	return Decode(f, policy)
}

// Encode writes the score on the first line followed by one record per goal.
func Encode(w io.Writer, engine *model.Gamification, registry *model.Registry) error {
	bw := bufio.NewWriter(w)

	_, err := fmt.Fprintln(bw, engine.Serialize())
	if err != nil {
		return fmt.Errorf("failed to encode score: %w", err)
	}

	for _, goal := range registry.Goals() {
		_, err = fmt.Fprintln(bw, goal.Serialize())
		if err != nil {
			return fmt.Errorf("failed to encode goal %q: %w", goal.Title(), err)
		}
	}

	return bw.Flush()
}

// Decode reads a quest file. An unreadable score line becomes zero and
// goal records that fail to parse are skipped; only read errors and an
// empty input are reported. Records have no length limit.
func Decode(rd io.Reader, policy model.Policy) (*Snapshot, error) {
	br := bufio.NewReader(rd)

	scoreLine, err := readRecord(br)
	if err == io.EOF && scoreLine == "" {
		return nil, ErrQuestFileEmpty
	}
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read quest file: %w", err)
	}

	snapshot := &Snapshot{
		Engine: model.NewGamification(policy, model.ParseScore(strings.TrimPrefix(scoreLine, "\ufeff"))),
	}

	var goals []model.Goal
	for line := 2; err == nil; line++ {
		var record string
		record, err = readRecord(br)
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to read quest file: %w", err)
		}
		if err == io.EOF && record == "" {
			break
		}

		goal, parseErr := model.ParseGoal(record)
		if parseErr != nil {
			snapshot.Skipped++
			slog.Debug("skipping goal record", "line", line, "error", parseErr)
			continue
		}
		goals = append(goals, goal)
	}

	snapshot.Registry = model.NewRegistry(goals...)
	return snapshot, nil
}

// readRecord returns the next line without its terminator. The final line
// may lack one, in which case the error is io.EOF.
func readRecord(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	return strings.TrimRight(line, "\r\n"), err
}
