package services

import (
	"errors"
	"fmt"
	"strings"
)

// ─── Sentinel Errors ──────────────────────────────────────────────────────────

var (
	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrBookNotFound is returned when the referenced book does not exist.
	ErrBookNotFound = errors.New("book not found")

	// ErrDetailsNotFound is returned when the referenced book details row does not exist.
	ErrDetailsNotFound = errors.New("book details not found")

	// ErrBorrowNotFound is returned when the referenced borrow record does not exist.
	ErrBorrowNotFound = errors.New("borrowed book record not found")

	// ErrEmailTaken is returned when a create or update would duplicate a user email.
	ErrEmailTaken = errors.New("email already in use")

	// ErrISBNTaken is returned when a create or update would duplicate a book ISBN.
	ErrISBNTaken = errors.New("ISBN already in use")

	// ErrDetailsExist is returned when a second details row is created for a book
	// that already has one.
	ErrDetailsExist = errors.New("book already has a details record")

	// ErrReturnBeforeBorrow is returned when a borrow record's return date
	// precedes its borrow date.
	ErrReturnBeforeBorrow = errors.New("return date precedes borrow date")
)

// ─── Validation Errors ────────────────────────────────────────────────────────

// FieldError names the field of a payload (and, for batch payloads, the
// element index) that failed validation.
type FieldError struct {
	Index   int    `json:"index"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidationErrors collects every constraint failure found in a payload. The
// whole payload is rejected and nothing is persisted when it is non-empty.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		if fe.Field != "" {
			msgs[i] = fmt.Sprintf("item %d: %s: %s", fe.Index, fe.Field, fe.Message)
		} else {
			msgs[i] = fmt.Sprintf("item %d: %s", fe.Index, fe.Message)
		}
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// isUniqueViolation checks whether a store-level unique-constraint error
// occurred. PostgreSQL reports code 23505; SQLite reports a
// "UNIQUE constraint failed" message.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "UNIQUE constraint")
}
