package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"homehelpBack/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (models.User, error) {
	query := `
        SELECT id, email, full_name, phone, role, status, suspension_end_date, created_at, updated_at
        FROM users
        WHERE id = ?
    `
	var user models.User
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&user.ID, &user.Email, &user.FullName, &user.Phone, &user.Role,
		&user.Status, &user.SuspensionEndDate, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, models.ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetSessionByRefreshToken(ctx context.Context, token string) (models.Session, error) {
	query := `SELECT user_id, role, refresh_token, expires_at FROM sessions WHERE refresh_token = ?`
	var s models.Session
	err := r.DB.QueryRowContext(ctx, query, token).Scan(&s.UserID, &s.Role, &s.RefreshToken, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, models.ErrNoRecord
		}
		return models.Session{}, err
	}
	return s, nil
}

// ReactivateExpiredSuspensions flips suspended accounts back to active once
// their suspension window has passed. Returns how many rows were updated.
func (r *UserRepository) ReactivateExpiredSuspensions(ctx context.Context, now time.Time) (int64, error) {
	query := `
        UPDATE users
        SET status = ?, suspension_end_date = NULL, updated_at = NOW()
        WHERE status = ? AND suspension_end_date IS NOT NULL AND suspension_end_date <= ?
    `
	res, err := r.DB.ExecContext(ctx, query, models.UserStatusActive, models.UserStatusSuspended, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
