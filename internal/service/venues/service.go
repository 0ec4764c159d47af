package venues

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	userRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/user"
	venueRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/venues/models"
)

// Service сервис для работы с площадками
type Service struct {
	venueRepo VenueRepository
	userRepo  UserRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса площадок
func NewService(venueRepo VenueRepository, userRepo UserRepository, logger Logger) *Service {
	return &Service{
		venueRepo: venueRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// GetByID получает площадку по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.VenueResponse, error) {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("GetByID: venue id=%d not found", id)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("GetByID: repository error for venue id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainVenue(venue), nil
}

// List получает список площадок
func (s *Service) List(ctx context.Context, req *models.ListVenuesRequest) (*models.VenueListResponse, error) {
	venues, err := s.venueRepo.List(ctx, domain.VenuesFilter{
		Building:    req.Building,
		CustodianID: req.CustodianID,
	})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d venues", len(venues))
	return models.FromDomainVenueList(venues), nil
}

// Update обновляет площадку
// Доступно администраторам и кастодиану площадки
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateVenueRequest) (*models.VenueResponse, error) {
	s.logger.Info("Update: updating venue id=%d by user=%d", id, req.UserID)

	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("Update: venue id=%d not found", id)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("Update: repository error for venue id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Update: user=%d not found", req.UserID)
			return nil, ErrAccessDenied
		}
		s.logger.Error("Update: failed to get user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Update - failed to get user: %v", ErrInternal, err)
	}

	if !user.CanManageVenue(venue) {
		s.logger.Warn("Update: user=%d cannot manage venue id=%d", req.UserID, id)
		return nil, ErrAccessDenied
	}

	req.ApplyToVenue(venue)
	if err := validateVenue(venue); err != nil {
		s.logger.Warn("Update: validation failed for venue id=%d: %v", id, err)
		return nil, err
	}

	updated, err := s.venueRepo.Update(ctx, venue)
	if err != nil {
		switch {
		case errors.Is(err, venueRepo.ErrVenueNotFound):
			return nil, ErrVenueNotFound
		case errors.Is(err, venueRepo.ErrDuplicateCode):
			s.logger.Warn("Update: code %q already used", venue.Code)
			return nil, ErrDuplicateCode
		}
		s.logger.Error("Update: repository error for venue id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated venue id=%d", id)
	return models.FromDomainVenue(updated), nil
}

func validateVenue(v *domain.Venue) error {
	if v.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if v.Code == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if v.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
	}
	return nil
}
