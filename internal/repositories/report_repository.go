package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"homehelpBack/internal/fsm"
	"homehelpBack/internal/models"
)

type ReportRepository struct {
	DB *sql.DB
}

// Reports carry their own snapshot of the service title and party names,
// copied from the booking when the report is filed.
const reportSelect = `
        SELECT r.id, r.booking_id, r.homeowner_id, r.provider_id, r.title, r.description, r.status,
               r.service_title, r.provider_name, r.homeowner_name, r.created_at, r.updated_at
        FROM reports r
`

func scanReport(row rowScanner) (models.Report, error) {
	var rp models.Report
	err := row.Scan(
		&rp.ID, &rp.BookingID, &rp.HomeownerID, &rp.ProviderID, &rp.Title, &rp.Description, &rp.Status,
		&rp.ServiceTitle, &rp.ProviderName, &rp.HomeownerName, &rp.CreatedAt, &rp.UpdatedAt,
	)
	if err != nil {
		return models.Report{}, err
	}
	return rp, nil
}

// CreateReport files a report against the provider of a completed booking.
// Only one report per booking is allowed.
func (r *ReportRepository) CreateReport(ctx context.Context, homeownerID string, in models.ReportCreateInput) (models.Report, error) {
	return r.createReport(ctx, homeownerID, in.BookingID, in.Title, in.Description, fsm.StatusCompleted)
}

// CreateDisputeReport files a report when the homeowner rejects a completion
// request. The booking stays in awaiting_homeowner_confirmation.
func (r *ReportRepository) CreateDisputeReport(ctx context.Context, homeownerID, bookingID, reason string) (models.Report, error) {
	return r.createReport(ctx, homeownerID, bookingID, "Completion disputed", reason, fsm.StatusAwaitingHomeowner)
}

func (r *ReportRepository) createReport(ctx context.Context, homeownerID, bookingID, title, description, requiredStatus string) (models.Report, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Report{}, err
	}
	defer tx.Rollback()

	var status, owner, providerID, serviceTitle, providerName, homeownerName string
	lock := `
        SELECT status, homeowner_id, provider_id, service_title, provider_name, homeowner_name
        FROM bookings WHERE id = ? FOR UPDATE
    `
	err = tx.QueryRowContext(ctx, lock, bookingID).
		Scan(&status, &owner, &providerID, &serviceTitle, &providerName, &homeownerName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Report{}, models.ErrBookingNotFound
		}
		return models.Report{}, err
	}
	if owner != homeownerID {
		return models.Report{}, models.ErrPermissionDenied
	}
	if status != requiredStatus {
		if requiredStatus == fsm.StatusAwaitingHomeowner {
			return models.Report{}, models.ErrNotAwaitingConfirm
		}
		return models.Report{}, models.ErrBookingNotCompleted
	}

	var existing string
	err = tx.QueryRowContext(ctx, `SELECT id FROM reports WHERE booking_id = ?`, bookingID).Scan(&existing)
	if err == nil {
		return models.Report{}, models.ErrReportExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Report{}, err
	}

	id := uuid.NewString()
	insert := `
        INSERT INTO reports (id, booking_id, homeowner_id, provider_id, title, description, status,
                             service_title, provider_name, homeowner_name, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
    `
	if _, err := tx.ExecContext(ctx, insert, id, bookingID, homeownerID, providerID, title, description,
		models.ReportStatusOpen, serviceTitle, providerName, homeownerName); err != nil {
		return models.Report{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Report{}, err
	}
	return r.GetReportByID(ctx, id)
}

func (r *ReportRepository) GetReportByID(ctx context.Context, reportID string) (models.Report, error) {
	query := reportSelect + ` WHERE r.id = ?`
	rp, err := scanReport(r.DB.QueryRowContext(ctx, query, reportID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Report{}, models.ErrReportNotFound
		}
		return models.Report{}, err
	}
	return rp, nil
}

// ListReports returns all reports, optionally filtered by status. Open
// reports come first, newest first within each group.
func (r *ReportRepository) ListReports(ctx context.Context, status string) ([]models.Report, error) {
	query := reportSelect
	var args []interface{}
	if status != "" {
		query += ` WHERE r.status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY r.status = 'open' DESC, r.created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		rp, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rp)
	}
	return reports, rows.Err()
}

// lockOpenReport reads a report under a row lock and verifies it has not
// already been resolved.
func lockOpenReport(ctx context.Context, tx *sql.Tx, reportID string) (providerID string, err error) {
	var status string
	err = tx.QueryRowContext(ctx, `SELECT status, provider_id FROM reports WHERE id = ? FOR UPDATE`, reportID).
		Scan(&status, &providerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", models.ErrReportNotFound
		}
		return "", err
	}
	if status != models.ReportStatusOpen {
		return "", models.ErrReportResolved
	}
	return providerID, nil
}

// DismissReport resolves a report without any action against the provider.
func (r *ReportRepository) DismissReport(ctx context.Context, reportID string) (models.Report, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Report{}, err
	}
	defer tx.Rollback()

	if _, err := lockOpenReport(ctx, tx, reportID); err != nil {
		return models.Report{}, err
	}
	if err := resolveReport(ctx, tx, reportID); err != nil {
		return models.Report{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Report{}, err
	}
	return r.GetReportByID(ctx, reportID)
}

func resolveReport(ctx context.Context, tx *sql.Tx, reportID string) error {
	_, err := tx.ExecContext(ctx, `UPDATE reports SET status = ?, updated_at = NOW() WHERE id = ?`, models.ReportStatusResolved, reportID)
	return err
}

// WarnProvider resolves a report and records a warning against the provider.
func (r *ReportRepository) WarnProvider(ctx context.Context, reportID, message string) (models.Report, models.Warning, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Report{}, models.Warning{}, err
	}
	defer tx.Rollback()

	providerID, err := lockOpenReport(ctx, tx, reportID)
	if err != nil {
		return models.Report{}, models.Warning{}, err
	}
	if err := resolveReport(ctx, tx, reportID); err != nil {
		return models.Report{}, models.Warning{}, err
	}

	warning := models.Warning{
		ID:        uuid.NewString(),
		UserID:    providerID,
		ReportID:  reportID,
		Reason:    message,
		CreatedAt: time.Now(),
	}
	insert := `INSERT INTO warnings (id, user_id, report_id, reason, created_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, insert, warning.ID, warning.UserID, warning.ReportID, warning.Reason, warning.CreatedAt); err != nil {
		return models.Report{}, models.Warning{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Report{}, models.Warning{}, err
	}

	report, err := r.GetReportByID(ctx, reportID)
	if err != nil {
		return models.Report{}, models.Warning{}, err
	}
	return report, warning, nil
}

// SuspendProvider resolves a report, suspends the provider for the given
// number of days and cancels every booking of theirs still in flight. The
// whole cascade commits or rolls back as one unit.
func (r *ReportRepository) SuspendProvider(ctx context.Context, reportID string, days int, reason string) (models.SuspensionResult, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.SuspensionResult{}, err
	}
	defer tx.Rollback()

	providerID, err := lockOpenReport(ctx, tx, reportID)
	if err != nil {
		return models.SuspensionResult{}, err
	}
	if err := resolveReport(ctx, tx, reportID); err != nil {
		return models.SuspensionResult{}, err
	}

	endDate := time.Now().AddDate(0, 0, days)
	suspend := `UPDATE users SET status = ?, suspension_end_date = ?, updated_at = NOW() WHERE id = ?`
	if _, err := tx.ExecContext(ctx, suspend, models.UserStatusSuspended, endDate, providerID); err != nil {
		return models.SuspensionResult{}, err
	}

	// Lock every non-terminal booking so nothing transitions mid-cascade,
	// then cancel only the ones a suspension actually takes out. Work
	// already awaiting homeowner confirmation runs to completion.
	listActive := `
        SELECT b.id, b.homeowner_id, b.service_title, b.status
        FROM bookings b
        WHERE b.provider_id = ? AND b.status IN (?, ?, ?)
        FOR UPDATE
    `
	rows, err := tx.QueryContext(ctx, listActive, providerID,
		fsm.StatusPending, fsm.StatusConfirmed, fsm.StatusAwaitingHomeowner)
	if err != nil {
		return models.SuspensionResult{}, err
	}
	result := models.SuspensionResult{
		ProviderID:        providerID,
		SuspensionEndDate: endDate,
	}
	for rows.Next() {
		var id, homeownerID, title, status string
		if err := rows.Scan(&id, &homeownerID, &title, &status); err != nil {
			rows.Close()
			return models.SuspensionResult{}, err
		}
		if !fsm.SuspensionCancels(status) {
			continue
		}
		result.CancelledBookingIDs = append(result.CancelledBookingIDs, id)
		result.CancelledHomeowners = append(result.CancelledHomeowners, homeownerID)
		result.CancelledTitles = append(result.CancelledTitles, title)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return models.SuspensionResult{}, err
	}
	rows.Close()
	result.CancelledCount = len(result.CancelledBookingIDs)

	if len(result.CancelledBookingIDs) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(result.CancelledBookingIDs)), ", ")
		cancel := fmt.Sprintf(`
        UPDATE bookings
        SET status = ?, cancellation_reason = ?, updated_at = NOW()
        WHERE id IN (%s)
    `, placeholders)
		args := []interface{}{fsm.StatusCancelled, "Provider suspended"}
		for _, id := range result.CancelledBookingIDs {
			args = append(args, id)
		}
		if _, err := tx.ExecContext(ctx, cancel, args...); err != nil {
			return models.SuspensionResult{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.SuspensionResult{}, err
	}

	report, err := r.GetReportByID(ctx, reportID)
	if err != nil {
		return models.SuspensionResult{}, err
	}
	result.Report = report
	return result, nil
}

func (r *ReportRepository) ListWarningsByUser(ctx context.Context, userID string) ([]models.Warning, error) {
	query := `SELECT id, user_id, report_id, reason, created_at FROM warnings WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var warnings []models.Warning
	for rows.Next() {
		var w models.Warning
		if err := rows.Scan(&w.ID, &w.UserID, &w.ReportID, &w.Reason, &w.CreatedAt); err != nil {
			return nil, err
		}
		warnings = append(warnings, w)
	}
	return warnings, rows.Err()
}
