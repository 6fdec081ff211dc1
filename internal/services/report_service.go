package services

import (
	"context"
	"fmt"

	"homehelpBack/internal/models"
	"homehelpBack/internal/repositories"
)

type ReportService struct {
	ReportRepo    *repositories.ReportRepository
	Notifications *NotificationService
}

func (s *ReportService) CreateReport(ctx context.Context, actor models.Actor, in models.ReportCreateInput) (models.Report, error) {
	if actor.Role != models.RoleHomeowner {
		return models.Report{}, models.ErrPermissionDenied
	}
	return s.ReportRepo.CreateReport(ctx, actor.ID, in)
}

func (s *ReportService) GetReport(ctx context.Context, actor models.Actor, reportID string) (models.Report, error) {
	report, err := s.ReportRepo.GetReportByID(ctx, reportID)
	if err != nil {
		return models.Report{}, err
	}
	if actor.Role != models.RoleAdmin && report.HomeownerID != actor.ID && report.ProviderID != actor.ID {
		return models.Report{}, models.ErrPermissionDenied
	}
	return report, nil
}

func (s *ReportService) ListReports(ctx context.Context, actor models.Actor, status string) ([]models.Report, error) {
	if actor.Role != models.RoleAdmin {
		return nil, models.ErrPermissionDenied
	}
	return s.ReportRepo.ListReports(ctx, status)
}

// DismissReport closes a report with no action taken against the provider.
func (s *ReportService) DismissReport(ctx context.Context, actor models.Actor, reportID string) (models.Report, error) {
	if actor.Role != models.RoleAdmin {
		return models.Report{}, models.ErrPermissionDenied
	}
	report, err := s.ReportRepo.DismissReport(ctx, reportID)
	if err != nil {
		return models.Report{}, err
	}
	s.notify(report.HomeownerID, "Report resolved",
		fmt.Sprintf("Your report about %s was reviewed and dismissed", report.ServiceTitle))
	return report, nil
}

// WarnProvider closes a report and records a formal warning against the
// provider.
func (s *ReportService) WarnProvider(ctx context.Context, actor models.Actor, reportID string, in models.WarnProviderInput) (models.Report, models.Warning, error) {
	if actor.Role != models.RoleAdmin {
		return models.Report{}, models.Warning{}, models.ErrPermissionDenied
	}
	report, warning, err := s.ReportRepo.WarnProvider(ctx, reportID, in.WarningMessage)
	if err != nil {
		return models.Report{}, models.Warning{}, err
	}
	s.notify(report.ProviderID, "Official warning", in.WarningMessage)
	s.notify(report.HomeownerID, "Report resolved",
		fmt.Sprintf("The provider was warned over your report about %s", report.ServiceTitle))
	return report, warning, nil
}

// SuspendProvider closes a report, suspends the provider and cancels their
// in-flight bookings. Every homeowner whose booking was cancelled by the
// cascade gets notified.
func (s *ReportService) SuspendProvider(ctx context.Context, actor models.Actor, reportID string, in models.SuspendProviderInput) (models.SuspensionResult, error) {
	if actor.Role != models.RoleAdmin {
		return models.SuspensionResult{}, models.ErrPermissionDenied
	}
	result, err := s.ReportRepo.SuspendProvider(ctx, reportID, in.SuspensionDays, in.SuspensionReason)
	if err != nil {
		return models.SuspensionResult{}, err
	}

	s.notify(result.ProviderID, "Account suspended",
		fmt.Sprintf("Your account is suspended until %s: %s",
			result.SuspensionEndDate.Format("2006-01-02"), in.SuspensionReason))
	for i, homeownerID := range result.CancelledHomeowners {
		title := ""
		if i < len(result.CancelledTitles) {
			title = result.CancelledTitles[i]
		}
		s.notify(homeownerID, "Booking cancelled",
			fmt.Sprintf("Your booking for %s was cancelled: provider suspended", title))
	}
	s.notify(result.Report.HomeownerID, "Report resolved",
		fmt.Sprintf("The provider was suspended over your report about %s", result.Report.ServiceTitle))
	return result, nil
}

func (s *ReportService) ListWarnings(ctx context.Context, actor models.Actor, userID string) ([]models.Warning, error) {
	if actor.Role != models.RoleAdmin && actor.ID != userID {
		return nil, models.ErrPermissionDenied
	}
	return s.ReportRepo.ListWarningsByUser(ctx, userID)
}

func (s *ReportService) notify(userID, title, message string) {
	if s.Notifications != nil {
		s.Notifications.Notify(userID, title, message)
	}
}
