package services

import (
	"context"
	"fmt"

	"homehelpBack/internal/models"
	"homehelpBack/internal/repositories"
)

type ReviewService struct {
	ReviewRepo    *repositories.ReviewRepository
	ServiceRepo   *repositories.ServiceRepository
	Notifications *NotificationService
}

func (s *ReviewService) CreateReview(ctx context.Context, actor models.Actor, bookingID string, in models.ReviewInput) (models.Review, error) {
	if actor.Role != models.RoleHomeowner {
		return models.Review{}, models.ErrPermissionDenied
	}
	if in.Rating < 1 || in.Rating > 5 {
		return models.Review{}, models.ErrInvalidRating
	}
	review, err := s.ReviewRepo.CreateReview(ctx, bookingID, actor.ID, in)
	if err != nil {
		return models.Review{}, err
	}

	if s.Notifications != nil {
		if svc, err := s.ServiceRepo.GetServiceByID(ctx, review.ServiceID); err == nil {
			s.Notifications.Notify(svc.ProviderID, "New review",
				fmt.Sprintf("%s left a %d/5 review on %s", review.HomeownerName, review.Rating, svc.Title))
		}
	}
	return review, nil
}

func (s *ReviewService) ListReviewsByService(ctx context.Context, serviceID string) ([]models.Review, error) {
	if _, err := s.ServiceRepo.GetServiceByID(ctx, serviceID); err != nil {
		return nil, err
	}
	return s.ReviewRepo.ListReviewsByService(ctx, serviceID)
}

func (s *ReviewService) UpdateReview(ctx context.Context, actor models.Actor, reviewID string, in models.ReviewInput) (models.Review, error) {
	if actor.Role != models.RoleHomeowner {
		return models.Review{}, models.ErrPermissionDenied
	}
	if in.Rating < 1 || in.Rating > 5 {
		return models.Review{}, models.ErrInvalidRating
	}
	return s.ReviewRepo.UpdateReview(ctx, reviewID, actor.ID, in)
}

func (s *ReviewService) DeleteReview(ctx context.Context, actor models.Actor, reviewID string) error {
	return s.ReviewRepo.DeleteReview(ctx, reviewID, actor.ID, actor.Role == models.RoleAdmin)
}
