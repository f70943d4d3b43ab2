package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jjudge-oj/todoapi/types"
)

// TodoRepository handles persistence for todos. Methods suffixed with
// ForOwner add owner_id to the WHERE clause, so rows owned by someone else
// behave exactly like missing rows.
type TodoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// List returns every todo regardless of owner.
func (r *TodoRepository) List(ctx context.Context) ([]types.Todo, error) {
	const query = `
		SELECT id, title, description, priority, complete, owner_id
		FROM todos
		ORDER BY id`
	return r.query(ctx, query)
}

func (r *TodoRepository) ListForOwner(ctx context.Context, ownerID int) ([]types.Todo, error) {
	const query = `
		SELECT id, title, description, priority, complete, owner_id
		FROM todos
		WHERE owner_id = $1
		ORDER BY id`
	return r.query(ctx, query, ownerID)
}

func (r *TodoRepository) GetForOwner(ctx context.Context, id, ownerID int) (types.Todo, error) {
	const query = `
		SELECT id, title, description, priority, complete, owner_id
		FROM todos
		WHERE id = $1 AND owner_id = $2`
	var todo types.Todo
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&todo.ID,
		&todo.Title,
		&todo.Description,
		&todo.Priority,
		&todo.Complete,
		&todo.OwnerID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Todo{}, ErrNotFound
		}
		return types.Todo{}, err
	}
	return todo, nil
}

func (r *TodoRepository) Create(ctx context.Context, todo types.Todo) (types.Todo, error) {
	const query = `
		INSERT INTO todos (title, description, priority, complete, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		todo.Title,
		todo.Description,
		todo.Priority,
		todo.Complete,
		todo.OwnerID,
	).Scan(&todo.ID); err != nil {
		return types.Todo{}, err
	}
	return todo, nil
}

// UpdateForOwner overwrites every mutable field of the todo identified by
// todo.ID and todo.OwnerID. owner_id itself is never written.
func (r *TodoRepository) UpdateForOwner(ctx context.Context, todo types.Todo) (types.Todo, error) {
	const query = `
		UPDATE todos
		SET title = $1,
			description = $2,
			priority = $3,
			complete = $4
		WHERE id = $5 AND owner_id = $6`
	result, err := r.db.ExecContext(
		ctx,
		query,
		todo.Title,
		todo.Description,
		todo.Priority,
		todo.Complete,
		todo.ID,
		todo.OwnerID,
	)
	if err != nil {
		return types.Todo{}, err
	}
	if err := expectAffected(result); err != nil {
		return types.Todo{}, err
	}
	return todo, nil
}

func (r *TodoRepository) DeleteForOwner(ctx context.Context, id, ownerID int) error {
	const query = `DELETE FROM todos WHERE id = $1 AND owner_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

// Delete removes a todo regardless of owner.
func (r *TodoRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM todos WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

func (r *TodoRepository) query(ctx context.Context, query string, args ...any) ([]types.Todo, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := make([]types.Todo, 0)
	for rows.Next() {
		var todo types.Todo
		if err := rows.Scan(
			&todo.ID,
			&todo.Title,
			&todo.Description,
			&todo.Priority,
			&todo.Complete,
			&todo.OwnerID,
		); err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return todos, nil
}
