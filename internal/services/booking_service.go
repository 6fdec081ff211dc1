package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"homehelpBack/internal/fsm"
	"homehelpBack/internal/models"
)

// BookingStore is the persistence surface the booking engine needs.
// *repositories.BookingRepository satisfies it.
type BookingStore interface {
	CreateBooking(ctx context.Context, homeowner models.User, svc models.Service, in models.BookingCreateInput) (models.Booking, error)
	GetBookingByID(ctx context.Context, bookingID string) (models.Booking, error)
	TransitionStatus(ctx context.Context, bookingID, toStatus string, cancellationReason *string) (models.Booking, error)
	RateBooking(ctx context.Context, bookingID, homeownerID string, rating int) (models.Booking, error)
	ListForHomeowner(ctx context.Context, homeownerID string) (models.BookingList, error)
	ListForProvider(ctx context.Context, providerID string) (models.BookingList, error)
	ListActiveByServiceAndDate(ctx context.Context, serviceID, date string) ([]models.Booking, error)
	StatsForProvider(ctx context.Context, providerID string) (models.BookingStats, error)
}

// ServiceGetter resolves a service by id. *repositories.ServiceRepository
// satisfies it.
type ServiceGetter interface {
	GetServiceByID(ctx context.Context, serviceID string) (models.Service, error)
}

// DisputeFiler records a completion dispute as an open moderation report.
// *repositories.ReportRepository satisfies it.
type DisputeFiler interface {
	CreateDisputeReport(ctx context.Context, homeownerID, bookingID, reason string) (models.Report, error)
}

// UserGetter resolves a user profile by id. *repositories.UserRepository
// satisfies it.
type UserGetter interface {
	GetUserByID(ctx context.Context, userID string) (models.User, error)
}

type BookingService struct {
	BookingRepo   BookingStore
	ServiceRepo   ServiceGetter
	ReportRepo    DisputeFiler
	UserRepo      UserGetter
	Availability  *AvailabilityService
	Notifications *NotificationService
}

// CreateBooking books a service slot for a homeowner. The slot check is
// advisory: it reads current bookings without locking, so two homeowners
// racing for the same slot can both succeed and the provider resolves the
// collision by cancelling one.
func (s *BookingService) CreateBooking(ctx context.Context, actor models.Actor, in models.BookingCreateInput) (models.Booking, error) {
	if actor.Role != models.RoleHomeowner {
		return models.Booking{}, models.ErrPermissionDenied
	}

	homeowner, err := s.UserRepo.GetUserByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return models.Booking{}, models.ErrHomeownerNotFound
		}
		return models.Booking{}, err
	}

	svc, err := s.ServiceRepo.GetServiceByID(ctx, in.ServiceID)
	if err != nil {
		return models.Booking{}, err
	}
	if !svc.IsActive {
		return models.Booking{}, models.ErrServiceNotFound
	}

	start, ok := parseClock(in.ScheduledTime)
	if !ok {
		return models.Booking{}, models.ErrSlotUnavailable
	}
	if start < dayStartMinutes || start+svc.DurationMinutes > dayEndMinutes {
		return models.Booking{}, models.ErrSlotUnavailable
	}

	active, err := s.BookingRepo.ListActiveByServiceAndDate(ctx, in.ServiceID, in.ScheduledDate)
	if err != nil {
		return models.Booking{}, err
	}
	for _, b := range active {
		other, ok := parseClock(b.ScheduledTime)
		if !ok {
			continue
		}
		if start < other+svc.DurationMinutes && other < start+svc.DurationMinutes {
			return models.Booking{}, models.ErrSlotUnavailable
		}
	}

	booking, err := s.BookingRepo.CreateBooking(ctx, homeowner, svc, in)
	if err != nil {
		return models.Booking{}, err
	}

	s.invalidateAvailability(ctx, booking)
	s.notify(booking.ProviderID, "New booking request",
		fmt.Sprintf("%s requested %s on %s at %s", booking.HomeownerName, booking.ServiceTitle, booking.ScheduledDate, booking.ScheduledTime))
	return booking, nil
}

// checkStatusTarget enforces who may move a booking where. Homeowners may
// only cancel their own bookings. Providers manage bookings on their own
// services but can never mark one completed themselves.
func checkStatusTarget(actor models.Actor, booking models.Booking, newStatus string) error {
	switch actor.Role {
	case models.RoleHomeowner:
		if booking.HomeownerID != actor.ID {
			return models.ErrPermissionDenied
		}
		if newStatus != fsm.StatusCancelled {
			return models.ErrPermissionDenied
		}
	case models.RoleProvider:
		if booking.ProviderID != actor.ID {
			return models.ErrPermissionDenied
		}
		switch newStatus {
		case fsm.StatusConfirmed, fsm.StatusCancelled, fsm.StatusAwaitingHomeowner:
		case fsm.StatusCompleted:
			// Completion always goes through homeowner confirmation.
			return models.ErrInvalidTransition
		default:
			return models.ErrPermissionDenied
		}
	default:
		return models.ErrPermissionDenied
	}
	return nil
}

func (s *BookingService) UpdateStatus(ctx context.Context, actor models.Actor, bookingID, newStatus string) (models.Booking, error) {
	if !fsm.IsValid(newStatus) {
		return models.Booking{}, models.ErrInvalidStatus
	}

	booking, err := s.BookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if err := checkStatusTarget(actor, booking, newStatus); err != nil {
		return models.Booking{}, err
	}

	updated, err := s.BookingRepo.TransitionStatus(ctx, bookingID, newStatus, nil)
	if err != nil {
		return models.Booking{}, err
	}

	s.invalidateAvailability(ctx, updated)
	s.notifyTransition(actor, updated)
	return updated, nil
}

func (s *BookingService) notifyTransition(actor models.Actor, b models.Booking) {
	switch b.Status {
	case fsm.StatusConfirmed:
		s.notify(b.HomeownerID, "Booking confirmed",
			fmt.Sprintf("%s confirmed your booking for %s on %s", b.ProviderName, b.ServiceTitle, b.ScheduledDate))
	case fsm.StatusAwaitingHomeowner:
		s.notify(b.HomeownerID, "Completion requested",
			fmt.Sprintf("%s marked %s as done. Please confirm.", b.ProviderName, b.ServiceTitle))
	case fsm.StatusCancelled:
		if actor.Role == models.RoleHomeowner {
			s.notify(b.ProviderID, "Booking cancelled",
				fmt.Sprintf("%s cancelled the booking for %s on %s", b.HomeownerName, b.ServiceTitle, b.ScheduledDate))
		} else {
			s.notify(b.HomeownerID, "Booking cancelled",
				fmt.Sprintf("%s cancelled your booking for %s on %s", b.ProviderName, b.ServiceTitle, b.ScheduledDate))
		}
	}
}

// ConfirmCompletion resolves a provider's completion request. Accepting moves
// the booking to completed; disputing files an open report for moderation and
// leaves the booking awaiting confirmation. The returned report is nil unless
// a dispute was filed.
func (s *BookingService) ConfirmCompletion(ctx context.Context, actor models.Actor, bookingID string, in models.BookingConfirmation) (models.Booking, *models.Report, error) {
	if actor.Role != models.RoleHomeowner {
		return models.Booking{}, nil, models.ErrPermissionDenied
	}
	booking, err := s.BookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return models.Booking{}, nil, err
	}
	if booking.HomeownerID != actor.ID {
		return models.Booking{}, nil, models.ErrPermissionDenied
	}
	if booking.Status != fsm.StatusAwaitingHomeowner {
		return models.Booking{}, nil, models.ErrNotAwaitingConfirm
	}

	if in.Confirmed {
		updated, err := s.BookingRepo.TransitionStatus(ctx, bookingID, fsm.StatusCompleted, nil)
		if err != nil {
			return models.Booking{}, nil, err
		}
		s.notify(updated.ProviderID, "Booking completed",
			fmt.Sprintf("%s confirmed completion of %s", updated.HomeownerName, updated.ServiceTitle))
		return updated, nil, nil
	}

	if in.DisputeReason == nil || strings.TrimSpace(*in.DisputeReason) == "" {
		return models.Booking{}, nil, models.ErrDisputeReasonEmpty
	}
	report, err := s.ReportRepo.CreateDisputeReport(ctx, actor.ID, bookingID, strings.TrimSpace(*in.DisputeReason))
	if err != nil {
		return models.Booking{}, nil, err
	}
	s.notify(booking.ProviderID, "Completion disputed",
		fmt.Sprintf("%s disputed completion of %s", booking.HomeownerName, booking.ServiceTitle))
	return booking, &report, nil
}

func (s *BookingService) RateBooking(ctx context.Context, actor models.Actor, bookingID string, in models.RatingInput) (models.Booking, error) {
	if actor.Role != models.RoleHomeowner {
		return models.Booking{}, models.ErrPermissionDenied
	}
	if in.Rating < 1 || in.Rating > 5 {
		return models.Booking{}, models.ErrInvalidRating
	}
	booking, err := s.BookingRepo.RateBooking(ctx, bookingID, actor.ID, in.Rating)
	if err != nil {
		return models.Booking{}, err
	}
	s.notify(booking.ProviderID, "New rating",
		fmt.Sprintf("%s rated %s %d/5", booking.HomeownerName, booking.ServiceTitle, in.Rating))
	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, actor models.Actor, bookingID string) (models.Booking, error) {
	booking, err := s.BookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if actor.Role != models.RoleAdmin && booking.HomeownerID != actor.ID && booking.ProviderID != actor.ID {
		return models.Booking{}, models.ErrPermissionDenied
	}
	return booking, nil
}

func (s *BookingService) ListForHomeowner(ctx context.Context, homeownerID string) (models.BookingList, error) {
	return s.BookingRepo.ListForHomeowner(ctx, homeownerID)
}

func (s *BookingService) ListForProvider(ctx context.Context, providerID string) (models.BookingList, error) {
	return s.BookingRepo.ListForProvider(ctx, providerID)
}

func (s *BookingService) StatsForProvider(ctx context.Context, providerID string) (models.BookingStats, error) {
	return s.BookingRepo.StatsForProvider(ctx, providerID)
}

func (s *BookingService) invalidateAvailability(ctx context.Context, b models.Booking) {
	if s.Availability != nil {
		s.Availability.Invalidate(ctx, b.ServiceID, b.ScheduledDate)
	}
}

func (s *BookingService) notify(userID, title, message string) {
	if s.Notifications != nil {
		s.Notifications.Notify(userID, title, message)
	}
}
