package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jjudge-oj/todoapi/types"
	"go.uber.org/zap"
)

const backupContentType = "application/json"

// ObjectWriter is the subset of object storage used by backups.
// *storage.Storage satisfies it.
type ObjectWriter interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Bucket() string
}

// TodoSnapshot is the document written by a backup.
type TodoSnapshot struct {
	CreatedAt time.Time    `json:"created_at"`
	Todos     []types.Todo `json:"todos"`
}

// BackupService writes point-in-time snapshots of every todo to object
// storage.
type BackupService struct {
	todos   TodoRepository
	objects ObjectWriter
	logger  *zap.Logger
	now     func() time.Time
}

func NewBackupService(todos TodoRepository, objects ObjectWriter, logger *zap.Logger) *BackupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackupService{
		todos:   todos,
		objects: objects,
		logger:  logger,
		now:     time.Now,
	}
}

// Export uploads a snapshot and returns its object key.
func (s *BackupService) Export(ctx context.Context) (string, error) {
	if err := s.objects.EnsureBucket(ctx); err != nil {
		return "", fmt.Errorf("ensure bucket: %w", err)
	}

	todos, err := s.todos.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list todos: %w", err)
	}

	createdAt := s.now().UTC()
	data, err := json.Marshal(TodoSnapshot{CreatedAt: createdAt, Todos: todos})
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	key := BackupKey(createdAt)
	if err := s.objects.Put(ctx, key, bytes.NewReader(data), int64(len(data)), backupContentType); err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}

	s.logger.Info("todo backup written",
		zap.String("bucket", s.objects.Bucket()),
		zap.String("key", key),
		zap.Int("todos", len(todos)),
	)
	return key, nil
}

// BackupKey names the snapshot object taken at t.
func BackupKey(t time.Time) string {
	return "backups/todos-" + t.UTC().Format("20060102T150405Z") + ".json"
}
