package repositories

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"homehelpBack/internal/models"
)

type NotificationRepository struct {
	DB *sql.DB
}

func (r *NotificationRepository) InsertNotification(ctx context.Context, n models.Notification) (models.Notification, error) {
	n.ID = uuid.NewString()
	query := `INSERT INTO notifications (id, user_id, title, message, is_read, created_at) VALUES (?, ?, ?, ?, FALSE, NOW())`
	_, err := r.DB.ExecContext(ctx, query, n.ID, n.UserID, n.Title, n.Message)
	if err != nil {
		return models.Notification{}, err
	}
	return n, nil
}

func (r *NotificationRepository) ListNotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	query := `SELECT id, user_id, title, message, is_read, created_at FROM notifications WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepository) MarkNotificationsRead(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE user_id = ? AND is_read = FALSE`, userID)
	return err
}

func (r *NotificationRepository) SaveNotifyToken(ctx context.Context, userID, token string) error {
	query := `INSERT INTO notify_tokens (user_id, token) VALUES (?, ?) ON DUPLICATE KEY UPDATE token = VALUES(token)`
	_, err := r.DB.ExecContext(ctx, query, userID, token)
	return err
}

func (r *NotificationRepository) GetNotifyTokens(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT token FROM notify_tokens WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

func (r *NotificationRepository) DeleteNotifyToken(ctx context.Context, userID, token string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM notify_tokens WHERE user_id = ? AND token = ?`, userID, token)
	return err
}
