package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"homehelpBack/internal/fsm"
	"homehelpBack/internal/models"
)

type BookingRepository struct {
	DB *sql.DB
}

// Service title, image and party names are snapshot columns written at
// creation, so later service or profile edits never rewrite booking history.
const bookingSelect = `
        SELECT b.id, b.service_id, b.homeowner_id, b.provider_id, b.scheduled_date, b.scheduled_time,
               b.status, b.price, b.address, b.notes, b.service_title, b.service_image,
               b.provider_name, b.homeowner_name,
               b.rating, b.cancellation_reason, b.created_at, b.updated_at, b.completed_at
        FROM bookings b
`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (models.Booking, error) {
	var b models.Booking
	var scheduledDate time.Time
	err := row.Scan(
		&b.ID, &b.ServiceID, &b.HomeownerID, &b.ProviderID, &scheduledDate, &b.ScheduledTime,
		&b.Status, &b.Price, &b.Address, &b.Notes, &b.ServiceTitle, &b.ServiceImage,
		&b.ProviderName, &b.HomeownerName, &b.Rating, &b.CancellationReason,
		&b.CreatedAt, &b.UpdatedAt, &b.CompletedAt,
	)
	if err != nil {
		return models.Booking{}, err
	}
	b.ScheduledDate = scheduledDate.Format("2006-01-02")
	if len(b.ScheduledTime) > 5 {
		b.ScheduledTime = b.ScheduledTime[:5]
	}
	return b, nil
}

// CreateBooking inserts a pending booking, snapshotting the service price,
// title, image and both party names at booking time.
func (r *BookingRepository) CreateBooking(ctx context.Context, homeowner models.User, svc models.Service, in models.BookingCreateInput) (models.Booking, error) {
	id := uuid.NewString()
	query := `
        INSERT INTO bookings (id, service_id, homeowner_id, provider_id, scheduled_date, scheduled_time,
                              status, price, address, notes, service_title, service_image,
                              provider_name, homeowner_name, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
    `
	_, err := r.DB.ExecContext(ctx, query,
		id, svc.ID, homeowner.ID, svc.ProviderID, in.ScheduledDate, in.ScheduledTime,
		fsm.StatusPending, svc.Price, in.Address, in.Notes,
		svc.Title, svc.Image, svc.ProviderName, homeowner.FullName,
	)
	if err != nil {
		return models.Booking{}, err
	}
	return r.GetBookingByID(ctx, id)
}

func (r *BookingRepository) GetBookingByID(ctx context.Context, bookingID string) (models.Booking, error) {
	query := bookingSelect + ` WHERE b.id = ?`
	b, err := scanBooking(r.DB.QueryRowContext(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, models.ErrBookingNotFound
		}
		return models.Booking{}, err
	}
	return b, nil
}

// TransitionStatus moves a booking to a new status under a row lock. The
// current status is re-read inside the transaction, so a caller that validated
// permissions against a stale read still cannot apply an illegal transition.
func (r *BookingRepository) TransitionStatus(ctx context.Context, bookingID, toStatus string, cancellationReason *string) (models.Booking, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Booking{}, err
	}
	defer tx.Rollback()

	var fromStatus string
	err = tx.QueryRowContext(ctx, `SELECT status FROM bookings WHERE id = ? FOR UPDATE`, bookingID).Scan(&fromStatus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, models.ErrBookingNotFound
		}
		return models.Booking{}, err
	}

	// A terminal booking is done: whoever raced us here sees the final state,
	// not a conflict. A repeated non-terminal transition is a lost race.
	if fsm.IsTerminal(fromStatus) {
		return models.Booking{}, models.ErrInvalidTransition
	}
	if fromStatus == toStatus {
		return models.Booking{}, models.ErrStatusConflict
	}
	if !fsm.CanTransition(fromStatus, toStatus) {
		return models.Booking{}, models.ErrInvalidTransition
	}
	if err := fsm.Apply(ctx, tx, bookingID, fromStatus, toStatus); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, models.ErrStatusConflict
		}
		return models.Booking{}, err
	}

	switch toStatus {
	case fsm.StatusCompleted:
		if _, err := tx.ExecContext(ctx, `UPDATE bookings SET completed_at = NOW() WHERE id = ?`, bookingID); err != nil {
			return models.Booking{}, err
		}
	case fsm.StatusCancelled:
		if cancellationReason != nil {
			if _, err := tx.ExecContext(ctx, `UPDATE bookings SET cancellation_reason = ? WHERE id = ?`, *cancellationReason, bookingID); err != nil {
				return models.Booking{}, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, err
	}
	return r.GetBookingByID(ctx, bookingID)
}

// RateBooking stores the homeowner's rating on a completed booking, upserts
// the matching review row and refreshes the service aggregate, all in one
// transaction.
func (r *BookingRepository) RateBooking(ctx context.Context, bookingID, homeownerID string, rating int) (models.Booking, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Booking{}, err
	}
	defer tx.Rollback()

	var status, owner, serviceID string
	err = tx.QueryRowContext(ctx, `SELECT status, homeowner_id, service_id FROM bookings WHERE id = ? FOR UPDATE`, bookingID).
		Scan(&status, &owner, &serviceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, models.ErrBookingNotFound
		}
		return models.Booking{}, err
	}
	if owner != homeownerID {
		return models.Booking{}, models.ErrPermissionDenied
	}
	if status != fsm.StatusCompleted {
		return models.Booking{}, models.ErrBookingNotCompleted
	}

	if _, err := tx.ExecContext(ctx, `UPDATE bookings SET rating = ?, updated_at = NOW() WHERE id = ?`, rating, bookingID); err != nil {
		return models.Booking{}, err
	}

	upsert := `
        INSERT INTO reviews (id, booking_id, service_id, homeowner_id, rating, review_text, created_at)
        VALUES (?, ?, ?, ?, ?, '', NOW())
        ON DUPLICATE KEY UPDATE rating = VALUES(rating), updated_at = NOW()
    `
	if _, err := tx.ExecContext(ctx, upsert, uuid.NewString(), bookingID, serviceID, homeownerID, rating); err != nil {
		return models.Booking{}, err
	}

	if err := recomputeServiceRating(ctx, tx, serviceID); err != nil {
		return models.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Booking{}, err
	}
	return r.GetBookingByID(ctx, bookingID)
}

func (r *BookingRepository) ListForHomeowner(ctx context.Context, homeownerID string) (models.BookingList, error) {
	query := bookingSelect + ` WHERE b.homeowner_id = ? ORDER BY b.scheduled_date, b.scheduled_time`
	return r.querySplit(ctx, query, homeownerID)
}

func (r *BookingRepository) ListForProvider(ctx context.Context, providerID string) (models.BookingList, error) {
	query := bookingSelect + ` WHERE b.provider_id = ? ORDER BY b.scheduled_date, b.scheduled_time`
	return r.querySplit(ctx, query, providerID)
}

func (r *BookingRepository) querySplit(ctx context.Context, query string, arg interface{}) (models.BookingList, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return models.BookingList{}, err
	}
	defer rows.Close()

	var list models.BookingList
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return models.BookingList{}, err
		}
		switch b.Status {
		case fsm.StatusCompleted, fsm.StatusCancelled:
			list.Past = append(list.Past, b)
		default:
			list.Upcoming = append(list.Upcoming, b)
		}
	}
	return list, rows.Err()
}

// ListActiveByServiceAndDate returns the bookings that occupy slots on the
// given date. Cancelled and completed bookings never block a slot.
func (r *BookingRepository) ListActiveByServiceAndDate(ctx context.Context, serviceID, date string) ([]models.Booking, error) {
	query := bookingSelect + `
        WHERE b.service_id = ? AND b.scheduled_date = ?
          AND b.status IN (?, ?)
        ORDER BY b.scheduled_time
    `
	rows, err := r.DB.QueryContext(ctx, query, serviceID, date,
		fsm.StatusPending, fsm.StatusConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *BookingRepository) StatsForProvider(ctx context.Context, providerID string) (models.BookingStats, error) {
	query := `
        SELECT COUNT(*),
               COALESCE(SUM(status = 'pending'), 0),
               COALESCE(SUM(status = 'confirmed'), 0),
               COALESCE(SUM(status = 'completed'), 0),
               COALESCE(SUM(status = 'cancelled'), 0),
               COALESCE(SUM(CASE WHEN status = 'completed' THEN price ELSE 0 END), 0)
        FROM bookings
        WHERE provider_id = ?
    `
	var stats models.BookingStats
	err := r.DB.QueryRowContext(ctx, query, providerID).Scan(
		&stats.Total, &stats.Pending, &stats.Confirmed, &stats.Completed, &stats.Cancelled, &stats.Revenue,
	)
	if err != nil {
		return models.BookingStats{}, err
	}
	return stats, nil
}
