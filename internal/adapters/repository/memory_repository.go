package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/todoforge/core/internal/domain/entities"
	"github.com/todoforge/core/internal/ports"
)

// MemoryTodoRepository is an in-memory ports.TodoRepository. It honors the
// same ownership-scoping contract as the PostgreSQL implementation and is
// used by the service and handler tests.
type MemoryTodoRepository struct {
	mu    sync.RWMutex
	todos map[uuid.UUID]entities.Todo
	order []uuid.UUID // insertion order; keeps pagination windows stable
}

// NewMemoryTodoRepository creates an empty in-memory repository.
func NewMemoryTodoRepository() *MemoryTodoRepository {
	return &MemoryTodoRepository{
		todos: make(map[uuid.UUID]entities.Todo),
	}
}

func (r *MemoryTodoRepository) Create(ctx context.Context, todo *entities.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if todo.ID == uuid.Nil {
		todo.ID = uuid.New()
	}
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = time.Now().UTC()
	}
	if todo.UpdatedAt.IsZero() {
		todo.UpdatedAt = todo.CreatedAt
	}

	r.todos[todo.ID] = *todo
	r.order = append(r.order, todo.ID)

	return nil
}

func (r *MemoryTodoRepository) GetByID(ctx context.Context, userID string, id uuid.UUID) (*entities.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	todo, ok := r.todos[id]
	if !ok || !todo.IsOwnedBy(userID) {
		return nil, entities.ErrTodoNotFound
	}

	found := todo
	return &found, nil
}

func (r *MemoryTodoRepository) List(ctx context.Context, userID string, filter ports.TodoFilter) ([]*entities.Todo, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matching := make([]entities.Todo, 0)
	for _, id := range r.order {
		todo := r.todos[id]
		if !todo.IsOwnedBy(userID) {
			continue
		}
		if filter.Completed != nil && todo.Completed != *filter.Completed {
			continue
		}
		matching = append(matching, todo)
	}

	total := int64(len(matching))

	start := filter.Skip
	if start > len(matching) {
		start = len(matching)
	}
	end := start + filter.Limit
	if end > len(matching) {
		end = len(matching)
	}

	page := make([]*entities.Todo, 0, end-start)
	for i := start; i < end; i++ {
		item := matching[i]
		page = append(page, &item)
	}

	return page, total, nil
}

func (r *MemoryTodoRepository) Update(ctx context.Context, todo *entities.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.todos[todo.ID]
	if !ok || !existing.IsOwnedBy(todo.UserID) {
		return entities.ErrTodoNotFound
	}

	r.todos[todo.ID] = *todo

	return nil
}

func (r *MemoryTodoRepository) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	todo, ok := r.todos[id]
	if !ok || !todo.IsOwnedBy(userID) {
		return entities.ErrTodoNotFound
	}

	delete(r.todos, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}
