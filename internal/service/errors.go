package service

import (
	"errors"
	"fmt"
)

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when the request contradicts current state
	ErrConflict = errors.New("resource conflict")

	// ErrSameBranchTransfer is returned when a transfer names the same
	// branch as both origin and destination
	ErrSameBranchTransfer = errors.New("destination branch must differ from origin branch")

	// ErrReceivedByRequired is returned when a transfer is marked received
	// without naming who received the device
	ErrReceivedByRequired = errors.New("received_by is required when receiving a transfer")
)

// InvalidTransitionError is returned when a status change violates the
// lifecycle rules of an order or transfer
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid %s status transition from %q to %q", e.Entity, e.From, e.To)
}
