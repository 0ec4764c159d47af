package validate_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	venueRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// UseCase проверяет черновик по актуальной занятости площадки, ничего не сохраняя
type UseCase struct {
	bookingRepo  BookingRepository
	venueRepo    VenueRepository
	validator    SlotValidator
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	venueRepo VenueRepository,
	validator SlotValidator,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		venueRepo:    venueRepo,
		validator:    validator,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет проверку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.VenueID <= 0 {
		return nil, fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if _, err := uc.venueRepo.GetByID(ctx, req.VenueID); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("ValidateBooking: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	req.Draft = req.Draft.WithDefaultEndTime()

	var idx *domain.AvailabilityIndex
	date, dateErr := uc.validator.ParseDate(req.Draft.Date)
	if dateErr == nil {
		bookings, err := uc.bookingRepo.GetByVenueWithFilter(ctx, domain.VenueBookingsFilter{
			VenueID:   req.VenueID,
			StartDate: &date,
			EndDate:   &date,
		})
		if err != nil {
			uc.logger.Error("ValidateBooking: failed to get bookings for venue id=%d: %v", req.VenueID, err)
			return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}
		idx = domain.BuildAvailabilityIndex(bookings)
	}

	resp := &Response{
		Errors: uc.validator.Validate(req.Draft, idx, now),
	}

	if dateErr == nil {
		if start, err := types.NewTimeStringFromString(req.Draft.StartTime); err == nil {
			startHour, _ := start.Hour()
			resp.AllowedEndHours = uc.validator.AllowedEndHours(date, startHour, idx)
		}
	}

	return resp, nil
}
