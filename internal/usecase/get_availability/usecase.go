package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	venueRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/venue"
)

// UseCase use case для получения занятости площадки
type UseCase struct {
	bookingRepo  BookingRepository
	venueRepo    VenueRepository
	options      SlotOptions
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	venueRepo VenueRepository,
	options SlotOptions,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		venueRepo:    venueRepo,
		options:      options,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute строит индекс занятости по активным бронированиям площадки начиная с сегодня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.VenueID <= 0 {
		return nil, fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if _, err := uc.venueRepo.GetByID(ctx, req.VenueID); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("GetAvailability: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("GetAvailability: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// Прошедшие даты не влияют ни на один допустимый выбор
	today := domain.CalendarDay(uc.timeProvider.Now().In(uc.options.Location()))
	bookings, err := uc.bookingRepo.GetByVenueWithFilter(ctx, domain.VenueBookingsFilter{
		VenueID:   req.VenueID,
		StartDate: &today,
	})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings for venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	idx := domain.BuildAvailabilityIndex(bookings)

	resp := &Response{
		VenueID:          req.VenueID,
		UnavailableDates: idx.UnavailableDates(),
	}

	if req.Date != nil {
		resp.Date = req.Date
		resp.UnavailableHours = idx.UnavailableHours(*req.Date)
		resp.AllowedStartHours = uc.options.AllowedStartHours(*req.Date, idx)
	}

	uc.logger.Info("GetAvailability: venue=%d, bookings=%d, unavailable dates=%d",
		req.VenueID, len(bookings), len(resp.UnavailableDates))

	return resp, nil
}
