package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
	userRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/user"
	venueRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-VenueBookingService/pkg/ptr"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	venueRepo    VenueRepository
	userRepo     UserRepository
	publisher    EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	venueRepo VenueRepository,
	userRepo UserRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		venueRepo:    venueRepo,
		userRepo:     userRepo,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит своё бронирование; сотрудник площадки видит любое бронирование площадки
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != userID {
		if _, err := s.staffFor(ctx, booking.VenueID, userID); err != nil {
			s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
			return nil, err
		}
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetVenueBookings получает бронирования площадки с фильтрацией
// Список публичный: именно из него клиенты строят индекс занятости
func (s *Service) GetVenueBookings(ctx context.Context, req *models.GetVenueBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetVenueBookings: fetching bookings for venue=%d, status=%v, includeCanceled=%t",
		req.VenueID, req.Status, req.IncludeCanceled)

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetVenueBookings: invalid filter for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	if _, err := s.getVenue(ctx, "GetVenueBookings", req.VenueID); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetVenueBookings: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: GetVenueBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetVenueBookings: successfully fetched %d bookings for venue=%d", len(bookings), req.VenueID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Владелец отменяет своё бронирование (cancelledBy=user),
// кастодиан или администратор площадки отменяет любое (cancelledBy=custodian|admin)
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return nil, ErrCannotCancel
	}

	cancelledBy := domain.CancelledByUser
	if booking.UserID != req.UserID {
		staff, err := s.staffFor(ctx, booking.VenueID, req.UserID)
		if err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
			return nil, err
		}
		cancelledBy = staffCancelledBy(staff)
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelledBy); err != nil {
		return nil, s.mapUpdateError("Cancel", bookingID, err)
	}

	booking.Status = domain.StatusCanceled
	booking.CancelledBy = ptr.Ptr(cancelledBy)
	s.publish(ctx, domain.EventBookingCancelled, booking)

	s.logger.Info("Cancel: successfully cancelled booking id=%d, cancelledBy=%s", bookingID, cancelledBy)
	return models.FromDomainBooking(booking), nil
}

// UpdateStatus меняет статус бронирования
// Доступно только кастодиану площадки и администраторам.
// Одобрение отклоняется, если интервал пересекается с уже одобренным бронированием площадки.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d", bookingID, req.Status, req.UserID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, req.Status)
	}

	var updated *domain.Booking
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "UpdateStatus", bookingID)
		if err != nil {
			return err
		}

		staff, err := s.staffFor(txCtx, booking.VenueID, req.UserID)
		if err != nil {
			s.logger.Warn("UpdateStatus: access denied for user=%d to booking id=%d", req.UserID, bookingID)
			return err
		}

		if !booking.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for booking id=%d",
				booking.Status, newStatus, bookingID)
			return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidStatus, booking.Status, newStatus)
		}

		if newStatus == domain.StatusCanceled {
			cancelledBy := staffCancelledBy(staff)
			if req.CancelledBy != nil {
				if cancelledBy, err = models.ToDomainCancelledBy(*req.CancelledBy); err != nil {
					return fmt.Errorf("%w: invalid cancelledBy %q", ErrInvalidInput, *req.CancelledBy)
				}
			}
			if err := s.bookingRepo.Cancel(txCtx, bookingID, cancelledBy); err != nil {
				return s.mapUpdateError("UpdateStatus", bookingID, err)
			}
			booking.CancelledBy = ptr.Ptr(cancelledBy)
		} else {
			if newStatus == domain.StatusApproved {
				if err := s.checkApprovedConflict(txCtx, booking); err != nil {
					return err
				}
			}
			if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, newStatus); err != nil {
				return s.mapUpdateError("UpdateStatus", bookingID, err)
			}
		}

		booking.Status = newStatus
		updated = booking
		return nil
	})
	if err != nil {
		if isServiceError(err) {
			return nil, err
		}
		s.logger.Error("UpdateStatus: transaction failed for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - transaction failed: %v", ErrInternal, err)
	}

	eventType := domain.EventBookingStatusChanged
	if updated.Status == domain.StatusCanceled {
		eventType = domain.EventBookingCancelled
	}
	s.publish(ctx, eventType, updated)

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return models.FromDomainBooking(updated), nil
}

// Вспомогательные методы

// checkApprovedConflict строит индекс по остальным одобренным бронированиям площадки на дату
// и проверяет, что интервал бронирования свободен.
// Читаются все активные бронирования даты: в транзакции это тот же набор строк,
// который блокирует создание бронирования.
func (s *Service) checkApprovedConflict(ctx context.Context, booking *domain.Booking) error {
	date := domain.CalendarDay(booking.Date)

	others, err := s.bookingRepo.GetByVenueWithFilter(ctx, domain.VenueBookingsFilter{
		VenueID:   booking.VenueID,
		StartDate: &date,
		EndDate:   &date,
	})
	if err != nil {
		s.logger.Error("checkApprovedConflict: repository error for venue=%d: %v", booking.VenueID, err)
		return fmt.Errorf("%w: checkApprovedConflict - repository error: %v", ErrInternal, err)
	}

	filtered := make([]*domain.Booking, 0, len(others))
	for _, other := range others {
		if other.ID != booking.ID && other.IsApproved() {
			filtered = append(filtered, other)
		}
	}

	idx := domain.BuildAvailabilityIndex(filtered)
	if idx.IsRangeUnavailable(booking.Date, booking.StartHour(), booking.EndHour()) {
		s.logger.Warn("checkApprovedConflict: booking id=%d overlaps an approved booking on %s",
			booking.ID, domain.DateKey(booking.Date))
		return ErrSlotConflict
	}
	return nil
}

// staffFor возвращает пользователя, если он администратор или кастодиан площадки
func (s *Service) staffFor(ctx context.Context, venueID, userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrAccessDenied
		}
		s.logger.Error("staffFor: failed to get user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: staffFor - failed to get user: %v", ErrInternal, err)
	}

	venue, err := s.getVenue(ctx, "staffFor", venueID)
	if err != nil {
		return nil, err
	}

	if !user.CanManageVenue(venue) {
		return nil, ErrAccessDenied
	}
	return user, nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) getVenue(ctx context.Context, op string, id int64) (*domain.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("%s: venue id=%d not found", op, id)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("%s: repository error for venue id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return venue, nil
}

func (s *Service) mapUpdateError(op string, id int64, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Warn("%s: booking id=%d not found during update", op, id)
		return ErrBookingNotFound
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// publish отправляет событие; ошибка доставки не отменяет изменение
func (s *Service) publish(ctx context.Context, eventType domain.BookingEventType, booking *domain.Booking) {
	event := domain.NewBookingEvent(eventType, booking, s.timeProvider.Now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish: failed to publish %s for booking id=%d: %v", eventType, booking.ID, err)
	}
}

// staffCancelledBy определяет инициатора отмены по роли сотрудника
func staffCancelledBy(staff *domain.User) domain.CancelledBy {
	if staff.IsAdmin() {
		return domain.CancelledByAdmin
	}
	return domain.CancelledByCustodian
}

func isServiceError(err error) bool {
	for _, target := range []error{
		ErrBookingNotFound, ErrVenueNotFound, ErrAccessDenied, ErrInvalidStatus,
		ErrSlotConflict, ErrInvalidInput, ErrInternal,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
