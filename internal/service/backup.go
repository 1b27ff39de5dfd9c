package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/templui/eternalquest/internal/storage"
)

// BackupService copies the session state to and from object storage using
// the quest file format.
type BackupService struct {
	store storage.Storage
	quest *QuestService
	key   string
}

func NewBackupService(store storage.Storage, quest *QuestService, key string) *BackupService {
	return &BackupService{
		store: store,
		quest: quest,
		key:   key,
	}
}

func (s *BackupService) Push(ctx context.Context) error {
	var buf bytes.Buffer
	err := s.quest.Encode(&buf)
	if err != nil {
		return err
	}

	size := buf.Len()
	err = s.store.Save(ctx, s.key, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return fmt.Errorf("failed to push backup: %w", err)
	}

	slog.Info("backup pushed", "key", s.key, "bytes", size)
	return nil
}

// Pull replaces the session state with the stored backup. The session is
// left untouched if the backup cannot be fetched or read.
func (s *BackupService) Pull(ctx context.Context) (LoadResult, error) {
	body, err := s.store.Open(ctx, s.key)
	if err != nil {
		return LoadResult{Path: s.key, Message: fmt.Sprintf("Failed to pull backup: %v", err)}, err
	}
	defer body.Close()

	return s.quest.Restore(body, s.key)
}

func (s *BackupService) Link(ctx context.Context, expiry time.Duration) (string, error) {
	return s.store.PresignedURL(ctx, s.key, expiry)
}
