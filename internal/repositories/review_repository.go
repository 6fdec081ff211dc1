package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"homehelpBack/internal/fsm"
	"homehelpBack/internal/models"
)

type ReviewRepository struct {
	DB *sql.DB
}

const reviewSelect = `
        SELECT r.id, r.booking_id, r.service_id, r.homeowner_id, r.rating, r.review_text,
               h.full_name, r.created_at, r.updated_at
        FROM reviews r
        JOIN users h ON h.id = r.homeowner_id
`

func scanReview(row rowScanner) (models.Review, error) {
	var rv models.Review
	err := row.Scan(
		&rv.ID, &rv.BookingID, &rv.ServiceID, &rv.HomeownerID, &rv.Rating, &rv.ReviewText,
		&rv.HomeownerName, &rv.CreatedAt, &rv.UpdatedAt,
	)
	if err != nil {
		return models.Review{}, err
	}
	return rv, nil
}

// CreateReview inserts a review for a completed booking and refreshes the
// service aggregate. The booking's rating column is kept in sync so both
// read paths report the same value.
func (r *ReviewRepository) CreateReview(ctx context.Context, bookingID, homeownerID string, in models.ReviewInput) (models.Review, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Review{}, err
	}
	defer tx.Rollback()

	var status, owner, serviceID string
	err = tx.QueryRowContext(ctx, `SELECT status, homeowner_id, service_id FROM bookings WHERE id = ? FOR UPDATE`, bookingID).
		Scan(&status, &owner, &serviceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Review{}, models.ErrBookingNotFound
		}
		return models.Review{}, err
	}
	if owner != homeownerID {
		return models.Review{}, models.ErrPermissionDenied
	}
	if status != fsm.StatusCompleted {
		return models.Review{}, models.ErrBookingNotCompleted
	}

	var existing string
	err = tx.QueryRowContext(ctx, `SELECT id FROM reviews WHERE booking_id = ?`, bookingID).Scan(&existing)
	if err == nil {
		return models.Review{}, models.ErrAlreadyReviewed
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Review{}, err
	}

	id := uuid.NewString()
	insert := `
        INSERT INTO reviews (id, booking_id, service_id, homeowner_id, rating, review_text, created_at)
        VALUES (?, ?, ?, ?, ?, ?, NOW())
    `
	if _, err := tx.ExecContext(ctx, insert, id, bookingID, serviceID, homeownerID, in.Rating, in.ReviewText); err != nil {
		return models.Review{}, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE bookings SET rating = ?, updated_at = NOW() WHERE id = ?`, in.Rating, bookingID); err != nil {
		return models.Review{}, err
	}
	if err := recomputeServiceRating(ctx, tx, serviceID); err != nil {
		return models.Review{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Review{}, err
	}
	return r.GetReviewByID(ctx, id)
}

func (r *ReviewRepository) GetReviewByID(ctx context.Context, reviewID string) (models.Review, error) {
	query := reviewSelect + ` WHERE r.id = ?`
	rv, err := scanReview(r.DB.QueryRowContext(ctx, query, reviewID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Review{}, models.ErrReviewNotFound
		}
		return models.Review{}, err
	}
	return rv, nil
}

func (r *ReviewRepository) ListReviewsByService(ctx context.Context, serviceID string) ([]models.Review, error) {
	query := reviewSelect + ` WHERE r.service_id = ? ORDER BY r.created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, serviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) UpdateReview(ctx context.Context, reviewID, homeownerID string, in models.ReviewInput) (models.Review, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Review{}, err
	}
	defer tx.Rollback()

	var owner, serviceID, bookingID string
	err = tx.QueryRowContext(ctx, `SELECT homeowner_id, service_id, booking_id FROM reviews WHERE id = ? FOR UPDATE`, reviewID).
		Scan(&owner, &serviceID, &bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Review{}, models.ErrReviewNotFound
		}
		return models.Review{}, err
	}
	if owner != homeownerID {
		return models.Review{}, models.ErrPermissionDenied
	}

	update := `UPDATE reviews SET rating = ?, review_text = ?, updated_at = NOW() WHERE id = ?`
	if _, err := tx.ExecContext(ctx, update, in.Rating, in.ReviewText, reviewID); err != nil {
		return models.Review{}, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE bookings SET rating = ?, updated_at = NOW() WHERE id = ?`, in.Rating, bookingID); err != nil {
		return models.Review{}, err
	}
	if err := recomputeServiceRating(ctx, tx, serviceID); err != nil {
		return models.Review{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Review{}, err
	}
	return r.GetReviewByID(ctx, reviewID)
}

// DeleteReview removes a review and clears the booking's rating. isAdmin
// bypasses the ownership check for moderation takedowns.
func (r *ReviewRepository) DeleteReview(ctx context.Context, reviewID, actorID string, isAdmin bool) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var owner, serviceID, bookingID string
	err = tx.QueryRowContext(ctx, `SELECT homeowner_id, service_id, booking_id FROM reviews WHERE id = ? FOR UPDATE`, reviewID).
		Scan(&owner, &serviceID, &bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrReviewNotFound
		}
		return err
	}
	if owner != actorID && !isAdmin {
		return models.ErrPermissionDenied
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, reviewID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE bookings SET rating = NULL, updated_at = NOW() WHERE id = ?`, bookingID); err != nil {
		return err
	}
	if err := recomputeServiceRating(ctx, tx, serviceID); err != nil {
		return err
	}
	return tx.Commit()
}
