package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/todoforge/core/internal/domain/entities"
	"github.com/todoforge/core/internal/infrastructure/logger"
	"github.com/todoforge/core/internal/ports"
)

// TodoService handles todo business rules: field validation, ownership-scoped
// access and the completed/completed_at transition policy. All repository
// calls are scoped by the caller's user id, so a todo owned by someone else
// is reported as not found rather than forbidden.
type TodoService struct {
	todoRepo ports.TodoRepository
	logger   *logger.Logger
}

// NewTodoService creates a new todo service
func NewTodoService(todoRepo ports.TodoRepository, logger *logger.Logger) *TodoService {
	return &TodoService{
		todoRepo: todoRepo,
		logger:   logger,
	}
}

// CreateTodo validates the payload and persists a new todo owned by userID.
// New todos always start incomplete with no completion timestamp.
func (s *TodoService) CreateTodo(ctx context.Context, userID string, req ports.CreateTodoRequest) (*entities.Todo, error) {
	title, err := entities.NormalizeTitle(req.Title)
	if err != nil {
		return nil, err
	}

	if err := entities.ValidateDescription(req.Description); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	todo := &entities.Todo{
		ID:          uuid.New(),
		Title:       title,
		Description: req.Description,
		Completed:   false,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.todoRepo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	s.logger.Info("Todo created", "todo_id", todo.ID, "user_id", userID)

	return todo, nil
}

// GetTodo retrieves a todo scoped to its owner.
func (s *TodoService) GetTodo(ctx context.Context, userID string, id uuid.UUID) (*entities.Todo, error) {
	return s.todoRepo.GetByID(ctx, userID, id)
}

// ListTodos retrieves the owner's todos with pagination and an optional
// completion filter. Range bounds on skip/limit are enforced at the HTTP
// boundary; only non-negativity is checked here.
func (s *TodoService) ListTodos(ctx context.Context, userID string, filter ports.TodoFilter) ([]*entities.Todo, int64, error) {
	if filter.Skip < 0 || filter.Limit < 0 {
		return nil, 0, &entities.ValidationError{Message: "pagination parameters must be non-negative"}
	}

	todos, total, err := s.todoRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list todos: %w", err)
	}

	return todos, total, nil
}

// UpdateTodo applies a partial update to an owned todo. Absent fields are
// left unchanged. CompletedAt is only touched when the requested completed
// value differs from the stored one; re-submitting the current value is a
// no-op for the timestamp. UpdatedAt is refreshed on every successful update.
func (s *TodoService) UpdateTodo(ctx context.Context, userID string, id uuid.UUID, req ports.UpdateTodoRequest) (*entities.Todo, error) {
	todo, err := s.todoRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title, err := entities.NormalizeTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		todo.Title = title
	}

	if req.Description != nil {
		if err := entities.ValidateDescription(req.Description); err != nil {
			return nil, err
		}
		todo.Description = req.Description
	}

	now := time.Now().UTC()
	if req.Completed != nil {
		todo.SetCompleted(*req.Completed, now)
	}
	todo.UpdatedAt = now

	if err := s.todoRepo.Update(ctx, todo); err != nil {
		return nil, err
	}

	s.logger.Info("Todo updated", "todo_id", todo.ID, "user_id", userID)

	return todo, nil
}

// DeleteTodo removes an owned todo. A missing or foreign row is reported as
// entities.ErrTodoNotFound.
func (s *TodoService) DeleteTodo(ctx context.Context, userID string, id uuid.UUID) error {
	if err := s.todoRepo.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.logger.Info("Todo deleted", "todo_id", id, "user_id", userID)

	return nil
}
