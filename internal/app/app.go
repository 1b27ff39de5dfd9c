package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/templui/eternalquest/internal/config"
	"github.com/templui/eternalquest/internal/db"
	"github.com/templui/eternalquest/internal/repository"
	"github.com/templui/eternalquest/internal/service"
	"github.com/templui/eternalquest/internal/storage"
)

var ErrBackupNotConfigured = errors.New("backup storage is not configured (set S3_BUCKET)")

type App struct {
	Cfg          *config.Config
	Journal      *db.Journal // nil when the journal is disabled
	QuestService *service.QuestService
}

// New wires the application. The event journal is opened on first use, so
// a journal that cannot be opened only costs the history, never the quest
// file operations.
func New(cfg *config.Config) *App {
	var (
		journal *db.Journal
		events  repository.EventRepository
	)

	if cfg.JournalEnabled {
		journal = db.NewJournal(cfg.DBDriver, cfg.DBConnection)
		events = repository.NewEventRepository(journal)
	}

	questService := service.NewQuestService(
		repository.NewQuestFileRepository(),
		events,
		cfg.Policy(),
		cfg.QuestFile,
	)

	return &App{
		Cfg:          cfg,
		Journal:      journal,
		QuestService: questService,
	}
}

// BackupService connects to object storage on demand, so commands that
// never touch backups do not need S3 settings.
func (a *App) BackupService(ctx context.Context) (*service.BackupService, error) {
	if !a.Cfg.BackupConfigured() {
		return nil, ErrBackupNotConfigured
	}

	store, err := storage.New(ctx, a.Cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return service.NewBackupService(store, a.QuestService, a.Cfg.S3BackupKey), nil
}

// ResetJournal drops and recreates the journal schema.
func (a *App) ResetJournal(ctx context.Context) error {
	if a.Journal == nil {
		return service.ErrJournalDisabled
	}

	err := a.Journal.Reset(ctx)
	if err != nil {
		return err
	}

	slog.Info("journal reset")
	return nil
}

func (a *App) Close() error {
	return a.Journal.Close()
}
