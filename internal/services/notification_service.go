package services

import (
	"context"
	"log"
	"time"

	"homehelpBack/internal/models"
)

// PushSender delivers a push notification to a single device token.
type PushSender interface {
	Send(ctx context.Context, token, title, body string) error
}

// Streamer delivers a notification to the user's live connections, if any.
type Streamer interface {
	SendToUser(userID string, n models.Notification)
}

// NotificationStore is the persistence surface the dispatcher needs.
// *repositories.NotificationRepository satisfies it.
type NotificationStore interface {
	InsertNotification(ctx context.Context, n models.Notification) (models.Notification, error)
	ListNotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkNotificationsRead(ctx context.Context, userID string) error
	SaveNotifyToken(ctx context.Context, userID, token string) error
	GetNotifyTokens(ctx context.Context, userID string) ([]string, error)
	DeleteNotifyToken(ctx context.Context, userID, token string) error
}

const notifyQueueSize = 256

// NotificationService persists notifications and fans them out to push and
// stream transports. Dispatch is asynchronous: callers enqueue and move on,
// delivery failures are logged and never surface into the request path.
type NotificationService struct {
	NotificationRepo NotificationStore
	Push             PushSender
	Stream           Streamer
	InfoLog          *log.Logger
	ErrorLog         *log.Logger

	queue chan models.Notification
	done  chan struct{}
}

func NewNotificationService(repo NotificationStore, push PushSender, stream Streamer, infoLog, errorLog *log.Logger) *NotificationService {
	s := &NotificationService{
		NotificationRepo: repo,
		Push:             push,
		Stream:           stream,
		InfoLog:          infoLog,
		ErrorLog:         errorLog,
		queue:            make(chan models.Notification, notifyQueueSize),
		done:             make(chan struct{}),
	}
	go s.run()
	return s
}

// Notify enqueues a notification for delivery. If the queue is full the
// notification is dropped with a log line rather than blocking the caller.
func (s *NotificationService) Notify(userID, title, message string) {
	n := models.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}
	select {
	case s.queue <- n:
	default:
		s.ErrorLog.Printf("notification queue full, dropping notification for user %s", userID)
	}
}

// Close stops the worker after draining already-enqueued notifications.
func (s *NotificationService) Close() {
	close(s.queue)
	<-s.done
}

func (s *NotificationService) run() {
	defer close(s.done)
	for n := range s.queue {
		s.deliver(n)
	}
}

func (s *NotificationService) deliver(n models.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	saved, err := s.NotificationRepo.InsertNotification(ctx, n)
	if err != nil {
		s.ErrorLog.Printf("notification insert for user %s: %v", n.UserID, err)
		saved = n
	}

	if s.Stream != nil {
		s.Stream.SendToUser(saved.UserID, saved)
	}

	if s.Push == nil {
		return
	}
	tokens, err := s.NotificationRepo.GetNotifyTokens(ctx, saved.UserID)
	if err != nil {
		s.ErrorLog.Printf("notify tokens for user %s: %v", saved.UserID, err)
		return
	}
	for _, token := range tokens {
		if err := s.Push.Send(ctx, token, saved.Title, saved.Message); err != nil {
			s.ErrorLog.Printf("push to user %s: %v", saved.UserID, err)
		}
	}
}

func (s *NotificationService) ListNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.NotificationRepo.ListNotificationsByUser(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID string) error {
	return s.NotificationRepo.MarkNotificationsRead(ctx, userID)
}

func (s *NotificationService) SaveToken(ctx context.Context, userID, token string) error {
	return s.NotificationRepo.SaveNotifyToken(ctx, userID, token)
}

func (s *NotificationService) DeleteToken(ctx context.Context, userID, token string) error {
	return s.NotificationRepo.DeleteNotifyToken(ctx, userID, token)
}
