package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Status enumerates order progression.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

var (
	ErrInvalidStatus = errors.New("order status is invalid")
	// ErrInvalidTransition is matched by every *InvalidTransitionError.
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// InvalidTransitionError reports a status change the lifecycle forbids.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("order cannot move from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Lifecycle is the forward-only status sequence. The processing step is optional.
type Lifecycle struct {
	processing bool
}

// NewLifecycle builds the sequence, including processing when enabled.
func NewLifecycle(withProcessing bool) Lifecycle {
	return Lifecycle{processing: withProcessing}
}

// DefaultLifecycle is pending -> shipped -> delivered.
func DefaultLifecycle() Lifecycle {
	return Lifecycle{}
}

// Statuses lists every status known to the lifecycle in progression order.
func (l Lifecycle) Statuses() []Status {
	statuses := []Status{StatusPending}
	if l.processing {
		statuses = append(statuses, StatusProcessing)
	}
	return append(statuses, StatusShipped, StatusDelivered, StatusCancelled)
}

// Parse resolves a transported status name against the lifecycle.
func (l Lifecycle) Parse(value string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range l.Statuses() {
		if known == status {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
}

func (l Lifecycle) rank(s Status) int {
	switch s {
	case StatusPending:
		return 0
	case StatusProcessing:
		if l.processing {
			return 1
		}
	case StatusShipped:
		return 2
	case StatusDelivered:
		return 3
	}
	return -1
}

// checkAdvance validates a process step from one status to another.
func (l Lifecycle) checkAdvance(from, to Status) error {
	if to == StatusCancelled {
		return fmt.Errorf("%w: cancellation is a separate intent", ErrInvalidStatus)
	}
	target := l.rank(to)
	if target < 0 {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	if from.Terminal() || target <= l.rank(from) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}
