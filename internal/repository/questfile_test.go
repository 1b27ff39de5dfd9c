package repository

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/eternalquest/internal/model"
)

const sampleQuest = `345
Simple|Run|Run a marathon|1000|False
Eternal|Pray|Morning and night|50|12
Checklist|Temple|Attend 10 times|50|10|4|500
`

func TestEncode(t *testing.T) {
	engine := model.NewGamification(model.DefaultPolicy(), 345)
	registry := model.NewRegistry(
		model.NewSimpleGoal("Run", "Run a marathon", 1000, false),
		model.NewEternalGoal("Pray", "Morning and night", 50, 12),
		model.NewChecklistGoal("Temple", "Attend 10 times", 50, 10, 4, 500),
	)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, engine, registry))
	assert.Equal(t, sampleQuest, buf.String())
}

func TestDecode(t *testing.T) {
	snapshot, err := Decode(strings.NewReader(sampleQuest), model.DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, 345, snapshot.Engine.Score())
	assert.Equal(t, 4, snapshot.Engine.Level())
	assert.Equal(t, 3, snapshot.Registry.Len())
	assert.Equal(t, 0, snapshot.Skipped)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, snapshot.Engine, snapshot.Registry))
	assert.Equal(t, sampleQuest, buf.String())
}

func TestDecodeSkipsMalformedRecords(t *testing.T) {
	input := "120\n" +
		"Simple|Run|Far|10|False\n" +
		"Checklist|Temple|Go|50|10|4\n" + // missing bonus
		"Weekly|Gym|Lift|5|0\n" +
		"\n" +
		"Eternal|Pray|Daily|5|2\n"

	snapshot, err := Decode(strings.NewReader(input), model.DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, 120, snapshot.Engine.Score())
	assert.Equal(t, 3, snapshot.Skipped)

	views := snapshot.Registry.List()
	require.Len(t, views, 2)
	assert.Equal(t, "Run", views[0].Title)
	assert.Equal(t, "Pray", views[1].Title)
}

func TestDecodeLongMalformedRecordKeepsOthers(t *testing.T) {
	input := "10\n" +
		"Simple|A|B|5|False\n" +
		"Eternal|" + strings.Repeat("x", 2<<20) + "|d|1|0|extra\n" +
		"Eternal|C|D|3|1"

	snapshot, err := Decode(strings.NewReader(input), model.DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, 10, snapshot.Engine.Score())
	assert.Equal(t, 1, snapshot.Skipped)

	views := snapshot.Registry.List()
	require.Len(t, views, 2)
	assert.Equal(t, "A", views[0].Title)
	assert.Equal(t, "C", views[1].Title)
}

func TestDecodeLongRecordIsKept(t *testing.T) {
	title := strings.Repeat("t", 2<<20)

	snapshot, err := Decode(strings.NewReader("0\nEternal|"+title+"|d|1|0\n"), model.DefaultPolicy())
	require.NoError(t, err)

	require.Equal(t, 1, snapshot.Registry.Len())
	assert.Equal(t, title, snapshot.Registry.Goals()[0].Title())
}

func TestDecodeBadScoreDefaultsToZero(t *testing.T) {
	snapshot, err := Decode(strings.NewReader("lots\nEternal|Pray|Daily|5|2\n"), model.DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, 0, snapshot.Engine.Score())
	assert.Equal(t, 1, snapshot.Engine.Level())
	assert.Equal(t, 1, snapshot.Registry.Len())
}

func TestDecodeCRLFAndBOM(t *testing.T) {
	input := "\ufeff250\r\nSimple|Run|Far|10|True\r\n"

	snapshot, err := Decode(strings.NewReader(input), model.DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, 250, snapshot.Engine.Score())
	require.Equal(t, 1, snapshot.Registry.Len())
	assert.True(t, snapshot.Registry.Goals()[0].Complete())
}

func TestDecodeEmpty(t *testing.T) {
	_, err := Decode(strings.NewReader(""), model.DefaultPolicy())
	assert.ErrorIs(t, err, ErrQuestFileEmpty)
}

func TestQuestFileSaveLoad(t *testing.T) {
	repo := NewQuestFileRepository()
	path := filepath.Join(t.TempDir(), "quest.txt")

	snapshot, err := Decode(strings.NewReader(sampleQuest), model.DefaultPolicy())
	require.NoError(t, err)

	require.NoError(t, repo.Save(path, snapshot.Engine, snapshot.Registry))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleQuest, string(data))

	loaded, err := repo.Load(path, model.DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, 345, loaded.Engine.Score())
	assert.Equal(t, snapshot.Registry.List(), loaded.Registry.List())
}

func TestQuestFileLoadMissing(t *testing.T) {
	repo := NewQuestFileRepository()

	_, err := repo.Load(filepath.Join(t.TempDir(), "missing.txt"), model.DefaultPolicy())
	assert.ErrorIs(t, err, ErrQuestFileNotFound)
}

func TestQuestFileSaveUnwritablePath(t *testing.T) {
	repo := NewQuestFileRepository()
	path := filepath.Join(t.TempDir(), "missing-dir", "quest.txt")

	err := repo.Save(path, model.NewGamification(model.DefaultPolicy(), 0), model.NewRegistry())
	assert.Error(t, err)
	assert.NoFileExists(t, path)
}
