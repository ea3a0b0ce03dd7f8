// Package apperr defines the reservation error taxonomy. Callers branch on the
// kind of failure (validation, conflict, not found) through errors.Is and
// errors.As instead of matching message text.
package apperr

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type Kind string

const (
	KindTooManySeats        Kind = "TooManySeats"
	KindSeatGapViolation    Kind = "SeatGapViolation"
	KindNotHeldBySession    Kind = "NotHeldBySession"
	KindInvalidOrderState   Kind = "InvalidOrderState"
	KindInvalidSessionState Kind = "InvalidSessionState"
	KindInvalidRequest      Kind = "InvalidRequest"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
)

// Field describes one offending input, keyed in ValidationError.Fields.
type Field struct {
	Msg      string
	Path     string
	Location string
}

type ValidationError struct {
	Kind    Kind
	Message string
	Fields  map[string]Field
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// SeatConflict is one seat that blocked a lock request. Holder is nil for
// seats that are sold rather than locked.
type SeatConflict struct {
	SeatID uuid.UUID
	Status string
	Holder *uuid.UUID
}

type ConflictError struct {
	Message string
	Seats   []SeatConflict
}

func (e *ConflictError) Error() string {
	if len(e.Seats) == 0 {
		return e.Message
	}
	ids := make([]string, len(e.Seats))
	for i, s := range e.Seats {
		ids[i] = s.SeatID.String()
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(ids, ", "))
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

type NotFoundError struct {
	Entity string
	IDs    []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, strings.Join(e.IDs, ", "))
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func Validation(kind Kind, message string, fields map[string]Field) error {
	return errors.WithStack(&ValidationError{Kind: kind, Message: message, Fields: fields})
}

func Conflict(message string, seats []SeatConflict) error {
	return errors.WithStack(&ConflictError{Message: message, Seats: seats})
}

func NotFound(entity string, ids ...string) error {
	return errors.WithStack(&NotFoundError{Entity: entity, IDs: ids})
}

// InvalidOrderState reports an order that is not in the state an operation
// requires. The message carries the current status.
func InvalidOrderState(orderID uuid.UUID, status string) error {
	return Validation(KindInvalidOrderState,
		fmt.Sprintf("order %s is %s, only PENDING orders can be expired", orderID, status), nil)
}

// KindOf returns the validation kind of err, or "" when err is not a
// ValidationError.
func KindOf(err error) Kind {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return ""
}

// StackLines renders err with its stack for logging, trimmed to maxLines.
func StackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	lines := strings.Split(fmt.Sprintf("%+v", err), "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
