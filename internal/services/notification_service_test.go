package services

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"

	"homehelpBack/internal/models"
)

type stubStore struct {
	mu        sync.Mutex
	inserted  []models.Notification
	tokens    map[string][]string
	insertErr error
}

func (s *stubStore) InsertNotification(_ context.Context, n models.Notification) (models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return models.Notification{}, s.insertErr
	}
	n.ID = "n1"
	s.inserted = append(s.inserted, n)
	return n, nil
}

func (s *stubStore) ListNotificationsByUser(context.Context, string) ([]models.Notification, error) {
	return nil, nil
}
func (s *stubStore) MarkNotificationsRead(context.Context, string) error     { return nil }
func (s *stubStore) SaveNotifyToken(context.Context, string, string) error   { return nil }
func (s *stubStore) DeleteNotifyToken(context.Context, string, string) error { return nil }

func (s *stubStore) GetNotifyTokens(_ context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[userID], nil
}

type stubPush struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (p *stubPush) Send(_ context.Context, token, _, _ string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, token)
	return p.err
}

type stubStream struct {
	mu       sync.Mutex
	received []models.Notification
}

func (s *stubStream) SendToUser(_ string, n models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.received = append(s.received, n)
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestNotificationDelivery(t *testing.T) {
	store := &stubStore{tokens: map[string][]string{"u1": {"tok-a", "tok-b"}}}
	push := &stubPush{}
	stream := &stubStream{}

	svc := NewNotificationService(store, push, stream, discardLogger(), discardLogger())
	svc.Notify("u1", "Booking confirmed", "See you Tuesday")
	svc.Close()

	if len(store.inserted) != 1 {
		t.Fatalf("expected 1 stored notification, got %d", len(store.inserted))
	}
	got := store.inserted[0]
	if got.UserID != "u1" || got.Title != "Booking confirmed" {
		t.Errorf("stored notification = %+v", got)
	}
	if len(push.sent) != 2 {
		t.Fatalf("expected pushes to 2 tokens, got %d", len(push.sent))
	}
	if len(stream.received) != 1 || stream.received[0].ID != "n1" {
		t.Fatalf("stream received %+v", stream.received)
	}
}

func TestNotificationDeliveryContinuesOnInsertFailure(t *testing.T) {
	store := &stubStore{insertErr: errors.New("db down")}
	stream := &stubStream{}

	svc := NewNotificationService(store, nil, stream, discardLogger(), discardLogger())
	svc.Notify("u1", "Booking confirmed", "See you Tuesday")
	svc.Close()

	// Persistence failed but the live stream still gets the notification.
	if len(stream.received) != 1 {
		t.Fatalf("expected stream delivery despite insert failure, got %d", len(stream.received))
	}
}

func TestNotificationQueueDropsWhenFull(t *testing.T) {
	store := &stubStore{}
	svc := &NotificationService{
		NotificationRepo: store,
		ErrorLog:         discardLogger(),
		queue:            make(chan models.Notification), // no capacity, no worker
	}

	// Must not block even though nothing consumes the queue.
	svc.Notify("u1", "t", "m")
}
