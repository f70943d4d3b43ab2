package services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/jjudge-oj/todoapi/types"
	"go.uber.org/zap"
)

const (
	TodoCreated = "todo.created"
	TodoUpdated = "todo.updated"
	TodoDeleted = "todo.deleted"
)

// TodoRepository defines persistence operations for todos.
type TodoRepository interface {
	List(ctx context.Context) ([]types.Todo, error)
	ListForOwner(ctx context.Context, ownerID int) ([]types.Todo, error)
	GetForOwner(ctx context.Context, id, ownerID int) (types.Todo, error)
	Create(ctx context.Context, todo types.Todo) (types.Todo, error)
	UpdateForOwner(ctx context.Context, todo types.Todo) (types.Todo, error)
	DeleteForOwner(ctx context.Context, id, ownerID int) error
	Delete(ctx context.Context, id int) error
}

// Publisher sends a message to a named channel. *mq.MQ satisfies it.
type Publisher interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
}

// TodoEvent is the change notification published after a successful mutation.
type TodoEvent struct {
	Type       string     `json:"type"`
	Todo       types.Todo `json:"todo"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// TodoService exposes todo use-cases. Every caller-facing method is scoped
// by the owner id taken from the caller's token.
type TodoService struct {
	repo      TodoRepository
	publisher Publisher
	channel   string
	logger    *zap.Logger
}

// NewTodoService constructs a TodoService. publisher may be nil, in which
// case no change notifications are sent.
func NewTodoService(repo TodoRepository, publisher Publisher, channel string, logger *zap.Logger) *TodoService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TodoService{
		repo:      repo,
		publisher: publisher,
		channel:   channel,
		logger:    logger,
	}
}

func (s *TodoService) List(ctx context.Context, ownerID int) ([]types.Todo, error) {
	return s.repo.ListForOwner(ctx, ownerID)
}

func (s *TodoService) Get(ctx context.Context, ownerID, id int) (types.Todo, error) {
	return s.repo.GetForOwner(ctx, id, ownerID)
}

// Create stores a todo owned by ownerID.
func (s *TodoService) Create(ctx context.Context, ownerID int, req types.TodoRequest) (types.Todo, error) {
	todo, err := s.repo.Create(ctx, types.Todo{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Complete:    req.Complete != nil && *req.Complete,
		OwnerID:     ownerID,
	})
	if err != nil {
		return types.Todo{}, err
	}
	s.notify(ctx, TodoCreated, todo)
	return todo, nil
}

// Update overwrites all fields of the caller's todo.
func (s *TodoService) Update(ctx context.Context, ownerID, id int, req types.TodoRequest) (types.Todo, error) {
	todo, err := s.repo.UpdateForOwner(ctx, types.Todo{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Complete:    req.Complete != nil && *req.Complete,
		OwnerID:     ownerID,
	})
	if err != nil {
		return types.Todo{}, err
	}
	s.notify(ctx, TodoUpdated, todo)
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, ownerID, id int) error {
	if err := s.repo.DeleteForOwner(ctx, id, ownerID); err != nil {
		return err
	}
	s.notify(ctx, TodoDeleted, types.Todo{ID: id, OwnerID: ownerID})
	return nil
}

// ListAll returns every user's todos. Admin only.
func (s *TodoService) ListAll(ctx context.Context) ([]types.Todo, error) {
	return s.repo.List(ctx)
}

// DeleteAny removes a todo regardless of owner. Admin only.
func (s *TodoService) DeleteAny(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notify(ctx, TodoDeleted, types.Todo{ID: id})
	return nil
}

// notify never fails the caller; the mutation is already committed.
func (s *TodoService) notify(ctx context.Context, eventType string, todo types.Todo) {
	if s.publisher == nil {
		return
	}

	data, err := json.Marshal(TodoEvent{
		Type:       eventType,
		Todo:       todo,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("encode todo event failed", zap.String("type", eventType), zap.Error(err))
		return
	}

	attrs := map[string]string{
		"type":     eventType,
		"todo_id":  strconv.Itoa(todo.ID),
		"owner_id": strconv.Itoa(todo.OwnerID),
	}
	if _, err := s.publisher.Publish(ctx, s.channel, data, attrs); err != nil {
		s.logger.Warn("publish todo event failed",
			zap.String("type", eventType),
			zap.Int("todo_id", todo.ID),
			zap.Error(err),
		)
	}
}
