package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"homehelpBack/internal/models"
)

type ServiceRepository struct {
	DB *sql.DB
}

func (r *ServiceRepository) CreateService(ctx context.Context, providerID string, in models.ServiceInput) (models.Service, error) {
	id := uuid.NewString()
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	query := `
        INSERT INTO services (id, provider_id, title, description, price, duration_minutes, image, is_active, rating, review_count, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, 0, NOW())
    `
	_, err := r.DB.ExecContext(ctx, query, id, providerID, in.Title, in.Description, in.Price, in.DurationMinutes, in.Image, isActive)
	if err != nil {
		return models.Service{}, err
	}
	return r.GetServiceByID(ctx, id)
}

func (r *ServiceRepository) GetServiceByID(ctx context.Context, serviceID string) (models.Service, error) {
	query := `
        SELECT s.id, s.provider_id, s.title, s.description, s.price, s.duration_minutes,
               s.image, s.rating, s.review_count, u.full_name, s.is_active, s.created_at, s.updated_at
        FROM services s
        JOIN users u ON u.id = s.provider_id
        WHERE s.id = ?
    `
	var svc models.Service
	err := r.DB.QueryRowContext(ctx, query, serviceID).Scan(
		&svc.ID, &svc.ProviderID, &svc.Title, &svc.Description, &svc.Price, &svc.DurationMinutes,
		&svc.Image, &svc.Rating, &svc.ReviewCount, &svc.ProviderName, &svc.IsActive, &svc.CreatedAt, &svc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Service{}, models.ErrServiceNotFound
		}
		return models.Service{}, err
	}
	return svc, nil
}

func (r *ServiceRepository) ListActiveServices(ctx context.Context) ([]models.Service, error) {
	query := `
        SELECT s.id, s.provider_id, s.title, s.description, s.price, s.duration_minutes,
               s.image, s.rating, s.review_count, u.full_name, s.is_active, s.created_at, s.updated_at
        FROM services s
        JOIN users u ON u.id = s.provider_id
        WHERE s.is_active = TRUE AND u.status = ?
        ORDER BY s.rating DESC, s.created_at DESC
    `
	return r.queryServices(ctx, query, models.UserStatusActive)
}

func (r *ServiceRepository) ListServicesByProvider(ctx context.Context, providerID string) ([]models.Service, error) {
	query := `
        SELECT s.id, s.provider_id, s.title, s.description, s.price, s.duration_minutes,
               s.image, s.rating, s.review_count, u.full_name, s.is_active, s.created_at, s.updated_at
        FROM services s
        JOIN users u ON u.id = s.provider_id
        WHERE s.provider_id = ?
        ORDER BY s.created_at DESC
    `
	return r.queryServices(ctx, query, providerID)
}

func (r *ServiceRepository) queryServices(ctx context.Context, query string, args ...interface{}) ([]models.Service, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []models.Service
	for rows.Next() {
		var svc models.Service
		if err := rows.Scan(
			&svc.ID, &svc.ProviderID, &svc.Title, &svc.Description, &svc.Price, &svc.DurationMinutes,
			&svc.Image, &svc.Rating, &svc.ReviewCount, &svc.ProviderName, &svc.IsActive, &svc.CreatedAt, &svc.UpdatedAt,
		); err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	return services, rows.Err()
}

func (r *ServiceRepository) UpdateService(ctx context.Context, serviceID string, in models.ServiceInput) (models.Service, error) {
	query := `
        UPDATE services
        SET title = ?, description = ?, price = ?, duration_minutes = ?,
            image = COALESCE(?, image), is_active = COALESCE(?, is_active), updated_at = NOW()
        WHERE id = ?
    `
	res, err := r.DB.ExecContext(ctx, query, in.Title, in.Description, in.Price, in.DurationMinutes, in.Image, in.IsActive, serviceID)
	if err != nil {
		return models.Service{}, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return models.Service{}, err
	}
	if rows == 0 {
		if _, err := r.GetServiceByID(ctx, serviceID); err != nil {
			return models.Service{}, err
		}
	}
	return r.GetServiceByID(ctx, serviceID)
}

// DeactivateService hides a service from the catalogue without touching its
// booking history.
func (r *ServiceRepository) DeactivateService(ctx context.Context, serviceID string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE services SET is_active = FALSE, updated_at = NOW() WHERE id = ?`, serviceID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		var id string
		if err := r.DB.QueryRowContext(ctx, `SELECT id FROM services WHERE id = ?`, serviceID).Scan(&id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.ErrServiceNotFound
			}
			return err
		}
	}
	return nil
}

func (r *ServiceRepository) UpdateServiceImage(ctx context.Context, serviceID, imageURL string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE services SET image = ?, updated_at = ? WHERE id = ?`, imageURL, time.Now(), serviceID)
	return err
}
