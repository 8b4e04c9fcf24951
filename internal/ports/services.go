package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/todoforge/core/internal/domain/entities"
)

// TodoService interface for todo business operations
type TodoService interface {
	CreateTodo(ctx context.Context, userID string, req CreateTodoRequest) (*entities.Todo, error)
	GetTodo(ctx context.Context, userID string, id uuid.UUID) (*entities.Todo, error)
	ListTodos(ctx context.Context, userID string, filter TodoFilter) ([]*entities.Todo, int64, error)
	UpdateTodo(ctx context.Context, userID string, id uuid.UUID, req UpdateTodoRequest) (*entities.Todo, error)
	DeleteTodo(ctx context.Context, userID string, id uuid.UUID) error
}

// TokenVerifier verifies bearer credentials presented on incoming requests.
type TokenVerifier interface {
	VerifyAuthorization(header string) (string, error)
	VerifyToken(tokenString string) (string, error)
	GenerateToken(userID string, ttl time.Duration) (string, error)
}

// CreateTodoRequest carries the payload for creating a todo
type CreateTodoRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// UpdateTodoRequest carries a partial update; nil fields are left unchanged.
type UpdateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Completed   *bool   `json:"completed"`
}
