package fsm

import (
	"context"
	"database/sql"
	"errors"
)

// Status constants used by the booking state machine.
const (
	StatusPending           = "pending"
	StatusConfirmed         = "confirmed"
	StatusAwaitingHomeowner = "awaiting_homeowner_confirmation"
	StatusCompleted         = "completed"
	StatusCancelled         = "cancelled"
)

var transitions = map[string]map[string]struct{}{
	StatusPending: {
		StatusConfirmed: {},
		StatusCancelled: {},
	},
	StatusConfirmed: {
		StatusAwaitingHomeowner: {},
		StatusCancelled:         {},
	},
	StatusAwaitingHomeowner: {
		StatusCompleted: {},
	},
	StatusCompleted: {},
	StatusCancelled: {},
}

// IsValid reports whether s is a known booking status.
func IsValid(s string) bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal reports whether s admits no further transitions.
func IsTerminal(s string) bool {
	allowed, ok := transitions[s]
	return ok && len(allowed) == 0
}

// CanTransition returns whether a booking can move from the current status to
// the target status. Re-applying the current status is not allowed: a repeated
// transition means the caller lost a race and must observe the new state.
func CanTransition(from, to string) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// SuspensionCancels reports whether suspending a provider cancels a booking
// in the given status. Only pending and confirmed work is taken out; a
// booking already awaiting homeowner confirmation runs to completion, and
// terminal bookings are left as they are.
func SuspensionCancels(status string) bool {
	return status == StatusPending || status == StatusConfirmed
}

// Apply updates a booking status using optimistic validation. The row must
// already be locked by the surrounding transaction; the WHERE status clause
// guards against a concurrent transition that slipped past the lock, in which
// case sql.ErrNoRows is returned.
func Apply(ctx context.Context, tx *sql.Tx, bookingID, fromStatus, toStatus string) error {
	if !CanTransition(fromStatus, toStatus) {
		return errors.New("invalid status transition")
	}
	res, err := tx.ExecContext(ctx, `UPDATE bookings SET status = ?, updated_at = NOW() WHERE id = ? AND status = ?`, toStatus, bookingID, fromStatus)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
