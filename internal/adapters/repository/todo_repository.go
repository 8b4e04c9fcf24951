package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/todoforge/core/internal/domain/entities"
	"github.com/todoforge/core/internal/infrastructure/database"
	"github.com/todoforge/core/internal/ports"
)

// TodoRepositoryImpl implements ports.TodoRepository on PostgreSQL.
type TodoRepositoryImpl struct {
	db *database.DB
}

// NewTodoRepository creates a new todo repository
func NewTodoRepository(db *database.DB) ports.TodoRepository {
	return &TodoRepositoryImpl{db: db}
}

func (r *TodoRepositoryImpl) Create(ctx context.Context, todo *entities.Todo) error {
	if todo.ID == uuid.Nil {
		todo.ID = uuid.New()
	}
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = time.Now().UTC()
	}
	if todo.UpdatedAt.IsZero() {
		todo.UpdatedAt = todo.CreatedAt
	}

	query := `
		INSERT INTO todos (id, title, description, completed, user_id, created_at, updated_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.DB.ExecContext(ctx, query,
		todo.ID, todo.Title, todo.Description, todo.Completed, todo.UserID,
		todo.CreatedAt, todo.UpdatedAt, todo.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("create todo: %w", err)
	}

	return nil
}

func (r *TodoRepositoryImpl) GetByID(ctx context.Context, userID string, id uuid.UUID) (*entities.Todo, error) {
	query := `
		SELECT id, title, description, completed, user_id, created_at, updated_at, completed_at
		FROM todos
		WHERE id = $1 AND user_id = $2`

	var todo entities.Todo
	err := r.db.DB.GetContext(ctx, &todo, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTodoNotFound
		}
		return nil, fmt.Errorf("get todo by id: %w", err)
	}

	return &todo, nil
}

// List returns one page of the owner's todos plus the total count of rows
// matching the owner and the optional completed filter. Count and page are
// read inside a single transaction so a concurrent insert or delete cannot
// skew one against the other. Ordering is by creation time with the id as a
// tie-breaker, keeping pagination windows stable.
func (r *TodoRepositoryImpl) List(ctx context.Context, userID string, filter ports.TodoFilter) ([]*entities.Todo, int64, error) {
	where := "user_id = $1"
	args := []interface{}{userID}
	if filter.Completed != nil {
		where += " AND completed = $2"
		args = append(args, *filter.Completed)
	}

	todos := []*entities.Todo{}
	var total int64

	err := r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		countQuery := "SELECT COUNT(*) FROM todos WHERE " + where
		if err := tx.GetContext(ctx, &total, countQuery, args...); err != nil {
			return fmt.Errorf("count todos: %w", err)
		}

		listQuery := fmt.Sprintf(`
			SELECT id, title, description, completed, user_id, created_at, updated_at, completed_at
			FROM todos
			WHERE %s
			ORDER BY created_at, id
			OFFSET $%d LIMIT $%d`, where, len(args)+1, len(args)+2)

		listArgs := append(args, filter.Skip, filter.Limit)
		if err := tx.SelectContext(ctx, &todos, listQuery, listArgs...); err != nil {
			return fmt.Errorf("list todos: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return todos, total, nil
}

func (r *TodoRepositoryImpl) Update(ctx context.Context, todo *entities.Todo) error {
	query := `
		UPDATE todos
		SET title = $3, description = $4, completed = $5, completed_at = $6, updated_at = $7
		WHERE id = $1 AND user_id = $2`

	result, err := r.db.DB.ExecContext(ctx, query,
		todo.ID, todo.UserID, todo.Title, todo.Description,
		todo.Completed, todo.CompletedAt, todo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrTodoNotFound
	}

	return nil
}

func (r *TodoRepositoryImpl) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	query := `DELETE FROM todos WHERE id = $1 AND user_id = $2`

	result, err := r.db.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrTodoNotFound
	}

	return nil
}
