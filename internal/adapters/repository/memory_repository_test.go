package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/todoforge/core/internal/domain/entities"
	"github.com/todoforge/core/internal/ports"
)

func seedTodo(t *testing.T, repo *MemoryTodoRepository, userID, title string) *entities.Todo {
	t.Helper()

	todo := &entities.Todo{
		Title:  title,
		UserID: userID,
	}
	if err := repo.Create(context.Background(), todo); err != nil {
		t.Fatalf("Create(%q) error = %v", title, err)
	}
	return todo
}

func boolPtr(b bool) *bool { return &b }

func TestMemoryTodoRepository_CreateAssignsDefaults(t *testing.T) {
	repo := NewMemoryTodoRepository()

	todo := seedTodo(t, repo, "user-a", "Task")

	if todo.ID == uuid.Nil {
		t.Error("Create() did not assign an id")
	}
	if todo.CreatedAt.IsZero() || todo.UpdatedAt.IsZero() {
		t.Error("Create() did not assign timestamps")
	}

	got, err := repo.GetByID(context.Background(), "user-a", todo.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "Task" {
		t.Errorf("got.Title = %q, want %q", got.Title, "Task")
	}
}

func TestMemoryTodoRepository_OwnershipScoping(t *testing.T) {
	repo := NewMemoryTodoRepository()
	ctx := context.Background()

	todo := seedTodo(t, repo, "user-a", "Private")

	if _, err := repo.GetByID(ctx, "user-b", todo.ID); !errors.Is(err, entities.ErrTodoNotFound) {
		t.Errorf("GetByID(other owner) error = %v, want ErrTodoNotFound", err)
	}

	stolen := *todo
	stolen.UserID = "user-b"
	if err := repo.Update(ctx, &stolen); !errors.Is(err, entities.ErrTodoNotFound) {
		t.Errorf("Update(other owner) error = %v, want ErrTodoNotFound", err)
	}

	if err := repo.Delete(ctx, "user-b", todo.ID); !errors.Is(err, entities.ErrTodoNotFound) {
		t.Errorf("Delete(other owner) error = %v, want ErrTodoNotFound", err)
	}

	if _, err := repo.GetByID(ctx, "user-a", todo.ID); err != nil {
		t.Errorf("GetByID(owner) error = %v after foreign access attempts", err)
	}
}

func TestMemoryTodoRepository_ListFilterAndPagination(t *testing.T) {
	repo := NewMemoryTodoRepository()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		todo := seedTodo(t, repo, "user-a", fmt.Sprintf("Task %d", i))
		if i < 2 {
			todo.Completed = true
			if err := repo.Update(ctx, todo); err != nil {
				t.Fatalf("Update() error = %v", err)
			}
		}
	}
	seedTodo(t, repo, "user-b", "Other owner")

	t.Run("owner scoped", func(t *testing.T) {
		todos, total, err := repo.List(ctx, "user-a", ports.TodoFilter{Limit: 100})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if total != 5 || len(todos) != 5 {
			t.Errorf("List() = %d items, total %d; want 5, 5", len(todos), total)
		}
	})

	t.Run("completed filter affects total", func(t *testing.T) {
		todos, total, err := repo.List(ctx, "user-a", ports.TodoFilter{Completed: boolPtr(true), Limit: 100})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if total != 2 || len(todos) != 2 {
			t.Errorf("List(completed) = %d items, total %d; want 2, 2", len(todos), total)
		}
	})

	t.Run("window past the end", func(t *testing.T) {
		todos, total, err := repo.List(ctx, "user-a", ports.TodoFilter{Skip: 10, Limit: 20})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(todos) != 0 {
			t.Errorf("len(todos) = %d, want 0", len(todos))
		}
		if total != 5 {
			t.Errorf("total = %d, want 5", total)
		}
	})

	t.Run("stable ordering across windows", func(t *testing.T) {
		first, _, err := repo.List(ctx, "user-a", ports.TodoFilter{Skip: 0, Limit: 3})
		if err != nil {
			t.Fatalf("List(first window) error = %v", err)
		}
		second, _, err := repo.List(ctx, "user-a", ports.TodoFilter{Skip: 3, Limit: 3})
		if err != nil {
			t.Fatalf("List(second window) error = %v", err)
		}

		seen := make(map[uuid.UUID]bool)
		for _, todo := range append(first, second...) {
			if seen[todo.ID] {
				t.Errorf("todo %v appears in both windows", todo.ID)
			}
			seen[todo.ID] = true
		}
		if len(seen) != 5 {
			t.Errorf("windows cover %d todos, want 5", len(seen))
		}
	})
}

func TestMemoryTodoRepository_Delete(t *testing.T) {
	repo := NewMemoryTodoRepository()
	ctx := context.Background()

	todo := seedTodo(t, repo, "user-a", "Doomed")

	if err := repo.Delete(ctx, "user-a", todo.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID(ctx, "user-a", todo.ID); !errors.Is(err, entities.ErrTodoNotFound) {
		t.Errorf("GetByID(deleted) error = %v, want ErrTodoNotFound", err)
	}
	if err := repo.Delete(ctx, "user-a", todo.ID); !errors.Is(err, entities.ErrTodoNotFound) {
		t.Errorf("second Delete() error = %v, want ErrTodoNotFound", err)
	}

	todos, total, err := repo.List(ctx, "user-a", ports.TodoFilter{Limit: 100})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 0 || len(todos) != 0 {
		t.Errorf("List() after delete = %d items, total %d; want 0, 0", len(todos), total)
	}
}

func TestMemoryTodoRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryTodoRepository()
	ctx := context.Background()

	todo := seedTodo(t, repo, "user-a", "Original")

	got, err := repo.GetByID(ctx, "user-a", todo.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	got.Title = "Mutated"

	again, err := repo.GetByID(ctx, "user-a", todo.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if again.Title != "Original" {
		t.Errorf("stored title = %q, want %q; repository leaked internal state", again.Title, "Original")
	}
}
