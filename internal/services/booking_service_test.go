package services

import (
	"context"
	"errors"
	"testing"

	"homehelpBack/internal/fsm"
	"homehelpBack/internal/models"
)

type stubBookingStore struct {
	bookings    map[string]models.Booking
	active      []models.Booking
	transitions []string
	rated       []int
}

func (s *stubBookingStore) CreateBooking(_ context.Context, homeowner models.User, svc models.Service, in models.BookingCreateInput) (models.Booking, error) {
	return models.Booking{
		ID:            "new",
		ServiceID:     svc.ID,
		HomeownerID:   homeowner.ID,
		ProviderID:    svc.ProviderID,
		ScheduledDate: in.ScheduledDate,
		ScheduledTime: in.ScheduledTime,
		Status:        fsm.StatusPending,
		Price:         svc.Price,
		ServiceTitle:  svc.Title,
		ServiceImage:  svc.Image,
		ProviderName:  svc.ProviderName,
		HomeownerName: homeowner.FullName,
	}, nil
}

func (s *stubBookingStore) GetBookingByID(_ context.Context, bookingID string) (models.Booking, error) {
	b, ok := s.bookings[bookingID]
	if !ok {
		return models.Booking{}, models.ErrBookingNotFound
	}
	return b, nil
}

func (s *stubBookingStore) TransitionStatus(_ context.Context, bookingID, toStatus string, _ *string) (models.Booking, error) {
	b, ok := s.bookings[bookingID]
	if !ok {
		return models.Booking{}, models.ErrBookingNotFound
	}
	s.transitions = append(s.transitions, toStatus)
	b.Status = toStatus
	s.bookings[bookingID] = b
	return b, nil
}

func (s *stubBookingStore) RateBooking(_ context.Context, bookingID, homeownerID string, rating int) (models.Booking, error) {
	s.rated = append(s.rated, rating)
	b, ok := s.bookings[bookingID]
	if !ok {
		return models.Booking{}, models.ErrBookingNotFound
	}
	b.Rating = &rating
	return b, nil
}

func (s *stubBookingStore) ListForHomeowner(context.Context, string) (models.BookingList, error) {
	return models.BookingList{}, nil
}

func (s *stubBookingStore) ListForProvider(context.Context, string) (models.BookingList, error) {
	return models.BookingList{}, nil
}

func (s *stubBookingStore) ListActiveByServiceAndDate(context.Context, string, string) ([]models.Booking, error) {
	return s.active, nil
}

func (s *stubBookingStore) StatsForProvider(context.Context, string) (models.BookingStats, error) {
	return models.BookingStats{}, nil
}

type stubServiceGetter struct {
	svc models.Service
	err error
}

func (s *stubServiceGetter) GetServiceByID(context.Context, string) (models.Service, error) {
	return s.svc, s.err
}

type stubUserGetter struct {
	user models.User
	err  error
}

func (s *stubUserGetter) GetUserByID(context.Context, string) (models.User, error) {
	return s.user, s.err
}

type stubDisputeFiler struct {
	filed  []string
	report models.Report
}

func (s *stubDisputeFiler) CreateDisputeReport(_ context.Context, _, _, reason string) (models.Report, error) {
	s.filed = append(s.filed, reason)
	return s.report, nil
}

func TestCheckStatusTarget(t *testing.T) {
	booking := models.Booking{
		ID:          "b1",
		HomeownerID: "h1",
		ProviderID:  "p1",
		Status:      fsm.StatusPending,
	}

	cases := []struct {
		name      string
		actor     models.Actor
		newStatus string
		wantErr   error
	}{
		{
			name:      "homeowner cancels own booking",
			actor:     models.Actor{ID: "h1", Role: models.RoleHomeowner},
			newStatus: fsm.StatusCancelled,
		},
		{
			name:      "homeowner cannot cancel someone else's booking",
			actor:     models.Actor{ID: "h2", Role: models.RoleHomeowner},
			newStatus: fsm.StatusCancelled,
			wantErr:   models.ErrPermissionDenied,
		},
		{
			name:      "homeowner cannot confirm",
			actor:     models.Actor{ID: "h1", Role: models.RoleHomeowner},
			newStatus: fsm.StatusConfirmed,
			wantErr:   models.ErrPermissionDenied,
		},
		{
			name:      "provider confirms own booking",
			actor:     models.Actor{ID: "p1", Role: models.RoleProvider},
			newStatus: fsm.StatusConfirmed,
		},
		{
			name:      "provider requests completion",
			actor:     models.Actor{ID: "p1", Role: models.RoleProvider},
			newStatus: fsm.StatusAwaitingHomeowner,
		},
		{
			name:      "provider cancels own booking",
			actor:     models.Actor{ID: "p1", Role: models.RoleProvider},
			newStatus: fsm.StatusCancelled,
		},
		{
			name:      "provider cannot complete directly",
			actor:     models.Actor{ID: "p1", Role: models.RoleProvider},
			newStatus: fsm.StatusCompleted,
			wantErr:   models.ErrInvalidTransition,
		},
		{
			name:      "provider cannot touch another provider's booking",
			actor:     models.Actor{ID: "p2", Role: models.RoleProvider},
			newStatus: fsm.StatusConfirmed,
			wantErr:   models.ErrPermissionDenied,
		},
		{
			name:      "admin has no transition rights",
			actor:     models.Actor{ID: "a1", Role: models.RoleAdmin},
			newStatus: fsm.StatusCancelled,
			wantErr:   models.ErrPermissionDenied,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := checkStatusTarget(c.actor, booking, c.newStatus)
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("checkStatusTarget() = %v, want %v", err, c.wantErr)
			}
		})
	}
}

func TestCreateBookingSlotConflict(t *testing.T) {
	store := &stubBookingStore{
		active: []models.Booking{{ScheduledTime: "10:00", Status: fsm.StatusConfirmed}},
	}
	svc := &BookingService{
		BookingRepo: store,
		ServiceRepo: &stubServiceGetter{svc: models.Service{ID: "s1", ProviderID: "p1", DurationMinutes: 60, Price: 50, IsActive: true}},
		UserRepo:    &stubUserGetter{user: models.User{ID: "h1", FullName: "Dana Reyes"}},
	}
	actor := models.Actor{ID: "h1", Role: models.RoleHomeowner}

	in := models.BookingCreateInput{ServiceID: "s1", ScheduledDate: "2026-09-01", ScheduledTime: "10:30", Address: "12 Oak Lane"}
	if _, err := svc.CreateBooking(context.Background(), actor, in); !errors.Is(err, models.ErrSlotUnavailable) {
		t.Fatalf("overlapping slot: got %v, want ErrSlotUnavailable", err)
	}

	in.ScheduledTime = "11:00"
	booking, err := svc.CreateBooking(context.Background(), actor, in)
	if err != nil {
		t.Fatalf("adjacent slot: %v", err)
	}
	if booking.Status != fsm.StatusPending {
		t.Errorf("new booking status = %q, want pending", booking.Status)
	}
	if booking.Price != 50 {
		t.Errorf("price snapshot = %v, want 50", booking.Price)
	}
}

func TestCreateBookingOutsideWorkingDay(t *testing.T) {
	svc := &BookingService{
		BookingRepo: &stubBookingStore{},
		ServiceRepo: &stubServiceGetter{svc: models.Service{ID: "s1", DurationMinutes: 60, IsActive: true}},
		UserRepo:    &stubUserGetter{user: models.User{ID: "h1"}},
	}
	actor := models.Actor{ID: "h1", Role: models.RoleHomeowner}

	for _, at := range []string{"07:30", "17:30"} {
		in := models.BookingCreateInput{ServiceID: "s1", ScheduledDate: "2026-09-01", ScheduledTime: at, Address: "12 Oak Lane"}
		if _, err := svc.CreateBooking(context.Background(), actor, in); !errors.Is(err, models.ErrSlotUnavailable) {
			t.Errorf("time %s: got %v, want ErrSlotUnavailable", at, err)
		}
	}
}

func TestCreateBookingRequiresHomeowner(t *testing.T) {
	svc := &BookingService{BookingRepo: &stubBookingStore{}, ServiceRepo: &stubServiceGetter{}, UserRepo: &stubUserGetter{}}
	_, err := svc.CreateBooking(context.Background(), models.Actor{ID: "p1", Role: models.RoleProvider}, models.BookingCreateInput{})
	if !errors.Is(err, models.ErrPermissionDenied) {
		t.Fatalf("provider creating booking: got %v, want ErrPermissionDenied", err)
	}
}

func TestCreateBookingMissingHomeownerProfile(t *testing.T) {
	svc := &BookingService{
		BookingRepo: &stubBookingStore{},
		ServiceRepo: &stubServiceGetter{svc: models.Service{ID: "s1", DurationMinutes: 60, IsActive: true}},
		UserRepo:    &stubUserGetter{err: models.ErrUserNotFound},
	}
	actor := models.Actor{ID: "ghost", Role: models.RoleHomeowner}

	in := models.BookingCreateInput{ServiceID: "s1", ScheduledDate: "2026-09-01", ScheduledTime: "10:00", Address: "12 Oak Lane"}
	if _, err := svc.CreateBooking(context.Background(), actor, in); !errors.Is(err, models.ErrHomeownerNotFound) {
		t.Fatalf("missing homeowner profile: got %v, want ErrHomeownerNotFound", err)
	}
}

func TestCreateBookingSnapshotsDisplayFields(t *testing.T) {
	image := "plumbing.jpg"
	svc := &BookingService{
		BookingRepo: &stubBookingStore{},
		ServiceRepo: &stubServiceGetter{svc: models.Service{
			ID: "s1", ProviderID: "p1", Title: "Pipe repair", Image: &image,
			ProviderName: "Sam Okafor", DurationMinutes: 60, Price: 80, IsActive: true,
		}},
		UserRepo: &stubUserGetter{user: models.User{ID: "h1", FullName: "Dana Reyes"}},
	}
	actor := models.Actor{ID: "h1", Role: models.RoleHomeowner}

	in := models.BookingCreateInput{ServiceID: "s1", ScheduledDate: "2026-09-01", ScheduledTime: "09:00", Address: "12 Oak Lane"}
	booking, err := svc.CreateBooking(context.Background(), actor, in)
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if booking.ServiceTitle != "Pipe repair" {
		t.Errorf("service title snapshot = %q", booking.ServiceTitle)
	}
	if booking.ServiceImage == nil || *booking.ServiceImage != image {
		t.Errorf("service image snapshot = %v", booking.ServiceImage)
	}
	if booking.ProviderName != "Sam Okafor" {
		t.Errorf("provider name snapshot = %q", booking.ProviderName)
	}
	if booking.HomeownerName != "Dana Reyes" {
		t.Errorf("homeowner name snapshot = %q", booking.HomeownerName)
	}
}

func TestConfirmCompletionAccept(t *testing.T) {
	store := &stubBookingStore{bookings: map[string]models.Booking{
		"b1": {ID: "b1", HomeownerID: "h1", ProviderID: "p1", Status: fsm.StatusAwaitingHomeowner},
	}}
	svc := &BookingService{BookingRepo: store, ReportRepo: &stubDisputeFiler{}}
	actor := models.Actor{ID: "h1", Role: models.RoleHomeowner}

	booking, report, err := svc.ConfirmCompletion(context.Background(), actor, "b1", models.BookingConfirmation{Confirmed: true})
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if report != nil {
		t.Error("accept must not file a report")
	}
	if booking.Status != fsm.StatusCompleted {
		t.Errorf("status = %q, want completed", booking.Status)
	}
	if len(store.transitions) != 1 || store.transitions[0] != fsm.StatusCompleted {
		t.Errorf("transitions = %v", store.transitions)
	}
}

func TestConfirmCompletionDispute(t *testing.T) {
	store := &stubBookingStore{bookings: map[string]models.Booking{
		"b1": {ID: "b1", HomeownerID: "h1", ProviderID: "p1", Status: fsm.StatusAwaitingHomeowner},
	}}
	filer := &stubDisputeFiler{report: models.Report{ID: "r1", Status: models.ReportStatusOpen}}
	svc := &BookingService{BookingRepo: store, ReportRepo: filer}
	actor := models.Actor{ID: "h1", Role: models.RoleHomeowner}

	// Disputing without a reason is rejected.
	_, _, err := svc.ConfirmCompletion(context.Background(), actor, "b1", models.BookingConfirmation{Confirmed: false})
	if !errors.Is(err, models.ErrDisputeReasonEmpty) {
		t.Fatalf("missing reason: got %v, want ErrDisputeReasonEmpty", err)
	}
	blank := "   "
	_, _, err = svc.ConfirmCompletion(context.Background(), actor, "b1", models.BookingConfirmation{Confirmed: false, DisputeReason: &blank})
	if !errors.Is(err, models.ErrDisputeReasonEmpty) {
		t.Fatalf("blank reason: got %v, want ErrDisputeReasonEmpty", err)
	}

	reason := "work was not finished"
	booking, report, err := svc.ConfirmCompletion(context.Background(), actor, "b1", models.BookingConfirmation{Confirmed: false, DisputeReason: &reason})
	if err != nil {
		t.Fatalf("dispute: %v", err)
	}
	if report == nil || report.ID != "r1" {
		t.Fatalf("dispute report = %+v", report)
	}
	// The booking stays awaiting confirmation while the dispute is open.
	if booking.Status != fsm.StatusAwaitingHomeowner {
		t.Errorf("status after dispute = %q, want awaiting_homeowner_confirmation", booking.Status)
	}
	if len(store.transitions) != 0 {
		t.Errorf("dispute must not transition the booking, got %v", store.transitions)
	}
	if len(filer.filed) != 1 || filer.filed[0] != reason {
		t.Errorf("filed reasons = %v", filer.filed)
	}
}

func TestConfirmCompletionGates(t *testing.T) {
	store := &stubBookingStore{bookings: map[string]models.Booking{
		"b1": {ID: "b1", HomeownerID: "h1", ProviderID: "p1", Status: fsm.StatusConfirmed},
	}}
	svc := &BookingService{BookingRepo: store, ReportRepo: &stubDisputeFiler{}}

	_, _, err := svc.ConfirmCompletion(context.Background(), models.Actor{ID: "h2", Role: models.RoleHomeowner}, "b1", models.BookingConfirmation{Confirmed: true})
	if !errors.Is(err, models.ErrPermissionDenied) {
		t.Errorf("foreign homeowner: got %v, want ErrPermissionDenied", err)
	}

	_, _, err = svc.ConfirmCompletion(context.Background(), models.Actor{ID: "h1", Role: models.RoleHomeowner}, "b1", models.BookingConfirmation{Confirmed: true})
	if !errors.Is(err, models.ErrNotAwaitingConfirm) {
		t.Errorf("confirmed booking: got %v, want ErrNotAwaitingConfirm", err)
	}
}

func TestRateBookingValidatesRange(t *testing.T) {
	store := &stubBookingStore{bookings: map[string]models.Booking{
		"b1": {ID: "b1", HomeownerID: "h1", ProviderID: "p1", Status: fsm.StatusCompleted},
	}}
	svc := &BookingService{BookingRepo: store}
	actor := models.Actor{ID: "h1", Role: models.RoleHomeowner}

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.RateBooking(context.Background(), actor, "b1", models.RatingInput{Rating: rating})
		if !errors.Is(err, models.ErrInvalidRating) {
			t.Errorf("rating %d: got %v, want ErrInvalidRating", rating, err)
		}
	}
	if len(store.rated) != 0 {
		t.Fatalf("invalid ratings must not reach the store, got %v", store.rated)
	}

	booking, err := svc.RateBooking(context.Background(), actor, "b1", models.RatingInput{Rating: 5})
	if err != nil {
		t.Fatalf("valid rating: %v", err)
	}
	if booking.Rating == nil || *booking.Rating != 5 {
		t.Errorf("stored rating = %v", booking.Rating)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc := &BookingService{BookingRepo: &stubBookingStore{}}
	_, err := svc.UpdateStatus(context.Background(), models.Actor{ID: "p1", Role: models.RoleProvider}, "b1", "in_progress")
	if !errors.Is(err, models.ErrInvalidStatus) {
		t.Fatalf("unknown status: got %v, want ErrInvalidStatus", err)
	}
}
