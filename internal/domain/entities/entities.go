package entities

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrTodoNotFound = errors.New("todo not found")

	// Credential rejection reasons. The HTTP boundary maps all of them to
	// an unauthorized response; the distinction exists for logging and tests.
	ErrMalformedCredential = errors.New("malformed authorization header")
	ErrInvalidCredential   = errors.New("invalid credential")
	ErrExpiredCredential   = errors.New("expired credential")
	ErrMissingIdentity     = errors.New("credential carries no user identity")
)

// Field bounds for todos. Title length is counted after trimming
// surrounding whitespace.
const (
	TitleMaxLength       = 200
	DescriptionMaxLength = 2000
)

// ValidationError reports a rejected todo field with a human-readable message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Todo represents a single todo item owned by exactly one user. UserID is
// assigned at creation from the verified credential and never changes.
type Todo struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description" db:"description"`
	Completed   bool       `json:"completed" db:"completed"`
	UserID      string     `json:"user_id" db:"user_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	CompletedAt *time.Time `json:"completed_at" db:"completed_at"`
}

// NormalizeTitle trims surrounding whitespace and validates the result
// against the title bounds.
func NormalizeTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", &ValidationError{Message: "title cannot be empty or whitespace only"}
	}
	if utf8.RuneCountInString(trimmed) > TitleMaxLength {
		return "", &ValidationError{Message: fmt.Sprintf("title cannot exceed %d characters", TitleMaxLength)}
	}
	return trimmed, nil
}

// ValidateDescription checks the optional description against its bound.
func ValidateDescription(description *string) error {
	if description == nil {
		return nil
	}
	if utf8.RuneCountInString(*description) > DescriptionMaxLength {
		return &ValidationError{Message: fmt.Sprintf("description cannot exceed %d characters", DescriptionMaxLength)}
	}
	return nil
}

// SetCompleted applies a requested completion value. CompletedAt is stamped
// when the value transitions false to true and cleared on the reverse
// transition; re-applying the stored value leaves CompletedAt untouched.
func (t *Todo) SetCompleted(completed bool, now time.Time) {
	if t.Completed == completed {
		return
	}

	t.Completed = completed
	if completed {
		ts := now
		t.CompletedAt = &ts
	} else {
		t.CompletedAt = nil
	}
}

// IsOwnedBy reports whether the todo belongs to the given user.
func (t *Todo) IsOwnedBy(userID string) bool {
	return t.UserID == userID
}
