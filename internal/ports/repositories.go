package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/todoforge/core/internal/domain/entities"
)

// TodoRepository defines the interface for todo data operations. Every read
// and write is scoped by the owning user id: a row that exists under a
// different owner must behave exactly like a missing row, so callers cannot
// learn whether another user's todo exists.
type TodoRepository interface {
	Create(ctx context.Context, todo *entities.Todo) error
	GetByID(ctx context.Context, userID string, id uuid.UUID) (*entities.Todo, error)
	List(ctx context.Context, userID string, filter TodoFilter) ([]*entities.Todo, int64, error)
	Update(ctx context.Context, todo *entities.Todo) error
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}

// TodoFilter narrows and paginates list queries. The total returned by List
// counts every row matching the owner and the optional completed filter,
// independent of Skip/Limit.
type TodoFilter struct {
	Completed *bool
	Skip      int
	Limit     int
}
