package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound         = errors.New("resource not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict with current state, retry the operation")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrForbidden        = errors.New("access denied")
	ErrUnauthenticated  = errors.New("invalid credentials")
	ErrDuplicateInvoice = errors.New("invoice number already exists")
)

// InsufficientStockError is returned when a reservation or checkout asks for
// more units than are sellable right now. Available carries the actual count
// so the caller can retry with a corrected quantity.
type InsufficientStockError struct {
	ProductID string
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: %d available", e.ProductID, e.Available)
}

// IntegrityError signals a ledger invariant violation (e.g. a delta that would
// drive quantity negative). It is fatal: the operation must abort and the
// condition be surfaced, never auto-corrected.
type IntegrityError struct {
	Op     string
	Detail string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("ledger integrity violation in %s: %s", e.Op, e.Detail)
}

// UnauthorizedError is returned when the acting user lacks every role the
// operation requires.
type UnauthorizedError struct {
	Actor    string
	Required []string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("actor %s lacks required role (one of: %s)", e.Actor, strings.Join(e.Required, ", "))
}

// InvalidStateError is returned when a lifecycle transition is attempted on a
// record that already left the pending state.
type InvalidStateError struct {
	Subject string
	ID      string
	Status  string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s %s is already %s", e.Subject, e.ID, e.Status)
}

// DuplicateRequestError is returned when a pending approval request already
// targets the same subject. ExistingID lets the caller locate it.
type DuplicateRequestError struct {
	ExistingID string
}

func (e *DuplicateRequestError) Error() string {
	return fmt.Sprintf("a pending request %s already targets this subject", e.ExistingID)
}
