package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/todoforge/core/internal/domain/entities"
)

// Error codes returned in the error_code field of every error response.
// ErrorCodeForbidden is reserved by the API contract but never emitted:
// ownership mismatches surface as TODO_NOT_FOUND so the existence of other
// users' todos is not disclosed.
const (
	ErrorCodeUnauthorized = "UNAUTHORIZED"
	ErrorCodeForbidden    = "FORBIDDEN"
	ErrorCodeNotFound     = "TODO_NOT_FOUND"
	ErrorCodeValidation   = "VALIDATION_ERROR"
	ErrorCodeInternal     = "INTERNAL_ERROR"
)

// ErrorResponse is the body shape shared by all error responses.
type ErrorResponse struct {
	Detail    string `json:"detail"`
	ErrorCode string `json:"error_code"`
}

// TodoListResponse is the paginated collection envelope.
type TodoListResponse struct {
	Items []*entities.Todo `json:"items"`
	Total int64            `json:"total"`
	Skip  int              `json:"skip"`
	Limit int              `json:"limit"`
}

// Unauthorized writes a 401 with the bearer challenge header.
func Unauthorized(c echo.Context, detail string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return c.JSON(http.StatusUnauthorized, ErrorResponse{Detail: detail, ErrorCode: ErrorCodeUnauthorized})
}

// BadRequest writes a 400 validation failure.
func BadRequest(c echo.Context, detail string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Detail: detail, ErrorCode: ErrorCodeValidation})
}

// NotFound writes a 404 for a todo that is absent or not owned by the caller.
func NotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Todo not found", ErrorCode: ErrorCodeNotFound})
}

// InternalError writes a generic 500 without leaking internal detail.
func InternalError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Internal server error", ErrorCode: ErrorCodeInternal})
}
