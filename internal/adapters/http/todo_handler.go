package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/todoforge/core/internal/application/services"
	"github.com/todoforge/core/internal/domain/entities"
	"github.com/todoforge/core/internal/infrastructure/logger"
	"github.com/todoforge/core/internal/ports"
)

// Pagination bounds for list requests
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// TodoHandler handles todo-related requests
type TodoHandler struct {
	todoService *services.TodoService
	logger      *logger.Logger
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(todoService *services.TodoService, logger *logger.Logger) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
		logger:      logger,
	}
}

// CreateTodo handles POST /todos
func (h *TodoHandler) CreateTodo(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req ports.CreateTodoRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "Invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return BadRequest(c, err.Error())
	}

	todo, err := h.todoService.CreateTodo(c.Request().Context(), userID, req)
	if err != nil {
		return h.writeServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, todo)
}

// ListTodos handles GET /todos with skip/limit pagination and an optional
// completed filter.
func (h *TodoHandler) ListTodos(c echo.Context) error {
	userID := getUserIDFromContext(c)

	skip := 0
	if v := c.QueryParam("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return BadRequest(c, "skip must be a non-negative integer")
		}
		skip = n
	}

	limit := DefaultPageSize
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > MaxPageSize {
			return BadRequest(c, "limit must be between 1 and 100")
		}
		limit = n
	}

	filter := ports.TodoFilter{Skip: skip, Limit: limit}
	if v := c.QueryParam("completed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return BadRequest(c, "completed must be a boolean")
		}
		filter.Completed = &b
	}

	todos, total, err := h.todoService.ListTodos(c.Request().Context(), userID, filter)
	if err != nil {
		return h.writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, TodoListResponse{
		Items: todos,
		Total: total,
		Skip:  skip,
		Limit: limit,
	})
}

// GetTodo handles GET /todos/:id
func (h *TodoHandler) GetTodo(c echo.Context) error {
	userID := getUserIDFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// The id space is opaque; an unparsable id behaves like a missing row.
		return NotFound(c)
	}

	todo, err := h.todoService.GetTodo(c.Request().Context(), userID, id)
	if err != nil {
		return h.writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, todo)
}

// UpdateTodo handles PATCH /todos/:id
func (h *TodoHandler) UpdateTodo(c echo.Context) error {
	userID := getUserIDFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NotFound(c)
	}

	var req ports.UpdateTodoRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "Invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return BadRequest(c, err.Error())
	}

	todo, err := h.todoService.UpdateTodo(c.Request().Context(), userID, id, req)
	if err != nil {
		return h.writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, todo)
}

// DeleteTodo handles DELETE /todos/:id
func (h *TodoHandler) DeleteTodo(c echo.Context) error {
	userID := getUserIDFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NotFound(c)
	}

	if err := h.todoService.DeleteTodo(c.Request().Context(), userID, id); err != nil {
		return h.writeServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// writeServiceError maps typed service failures to transport responses.
// Anything unrecognized is logged and reported as a generic server error.
func (h *TodoHandler) writeServiceError(c echo.Context, err error) error {
	var validationErr *entities.ValidationError
	switch {
	case errors.Is(err, entities.ErrTodoNotFound):
		return NotFound(c)
	case errors.As(err, &validationErr):
		return BadRequest(c, validationErr.Message)
	default:
		h.logger.Error("Unexpected service error", "error", err, "path", c.Request().URL.Path)
		return InternalError(c)
	}
}

func getUserIDFromContext(c echo.Context) string {
	if userID, ok := c.Get("user").(string); ok {
		return userID
	}
	return ""
}
