package repositories

import (
	"context"
	"database/sql"
)

// recomputeServiceRating refreshes the derived rating columns on a service
// from its review rows. Must run inside the same transaction as the review
// mutation so readers never observe a half-applied aggregate.
func recomputeServiceRating(ctx context.Context, tx *sql.Tx, serviceID string) error {
	query := `
        UPDATE services s
        SET s.rating = (SELECT ROUND(COALESCE(AVG(r.rating), 0), 1) FROM reviews r WHERE r.service_id = ?),
            s.review_count = (SELECT COUNT(*) FROM reviews r WHERE r.service_id = ?),
            s.updated_at = NOW()
        WHERE s.id = ?
    `
	_, err := tx.ExecContext(ctx, query, serviceID, serviceID, serviceID)
	return err
}
