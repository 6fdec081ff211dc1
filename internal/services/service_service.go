package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"homehelpBack/internal/models"
	"homehelpBack/internal/repositories"
	"homehelpBack/utils"
)

type ServiceService struct {
	ServiceRepo *repositories.ServiceRepository
	Storage     *utils.S3Storage
}

func (s *ServiceService) CreateService(ctx context.Context, actor models.Actor, in models.ServiceInput) (models.Service, error) {
	if actor.Role != models.RoleProvider {
		return models.Service{}, models.ErrPermissionDenied
	}
	return s.ServiceRepo.CreateService(ctx, actor.ID, in)
}

func (s *ServiceService) GetService(ctx context.Context, serviceID string) (models.Service, error) {
	return s.ServiceRepo.GetServiceByID(ctx, serviceID)
}

func (s *ServiceService) ListServices(ctx context.Context) ([]models.Service, error) {
	return s.ServiceRepo.ListActiveServices(ctx)
}

func (s *ServiceService) ListMyServices(ctx context.Context, actor models.Actor) ([]models.Service, error) {
	if actor.Role != models.RoleProvider {
		return nil, models.ErrPermissionDenied
	}
	return s.ServiceRepo.ListServicesByProvider(ctx, actor.ID)
}

func (s *ServiceService) UpdateService(ctx context.Context, actor models.Actor, serviceID string, in models.ServiceInput) (models.Service, error) {
	if err := s.checkOwner(ctx, actor, serviceID); err != nil {
		return models.Service{}, err
	}
	return s.ServiceRepo.UpdateService(ctx, serviceID, in)
}

func (s *ServiceService) DeactivateService(ctx context.Context, actor models.Actor, serviceID string) error {
	if err := s.checkOwner(ctx, actor, serviceID); err != nil {
		return err
	}
	return s.ServiceRepo.DeactivateService(ctx, serviceID)
}

// UploadServiceImage stores the image in object storage and points the
// service at the resulting URL.
func (s *ServiceService) UploadServiceImage(ctx context.Context, actor models.Actor, serviceID string, data []byte, contentType string) (string, error) {
	if err := s.checkOwner(ctx, actor, serviceID); err != nil {
		return "", err
	}
	fileName := fmt.Sprintf("%d_%s.jpg", time.Now().Unix(), uuid.NewString())
	url, err := s.Storage.UploadFile(data, fileName, "services", contentType)
	if err != nil {
		return "", err
	}
	if err := s.ServiceRepo.UpdateServiceImage(ctx, serviceID, url); err != nil {
		return "", err
	}
	return url, nil
}

func (s *ServiceService) checkOwner(ctx context.Context, actor models.Actor, serviceID string) error {
	svc, err := s.ServiceRepo.GetServiceByID(ctx, serviceID)
	if err != nil {
		return err
	}
	if actor.Role == models.RoleAdmin {
		return nil
	}
	if actor.Role != models.RoleProvider || svc.ProviderID != actor.ID {
		return models.ErrPermissionDenied
	}
	return nil
}
