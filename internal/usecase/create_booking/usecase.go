package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	userRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/user"
	venueRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/venue"
)

// UseCase use case для создания бронирования площадки
type UseCase struct {
	bookingRepo  BookingRepository
	venueRepo    VenueRepository
	userRepo     UserRepository
	validator    SlotValidator
	publisher    EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	venueRepo VenueRepository,
	userRepo UserRepository,
	validator SlotValidator,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		venueRepo:    venueRepo,
		userRepo:     userRepo,
		validator:    validator,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Занятость площадки перечитывается в сериализуемой транзакции с блокировкой строк,
// поэтому сервер отклоняет пересечения даже при устаревших данных у клиента.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// Время окончания необязательно: по умолчанию бронируется один час
	req.Draft = req.Draft.WithDefaultEndTime()

	uc.logger.Info("CreateBooking: user=%d, venue=%d, date=%s, time=%s-%s",
		req.UserID, req.VenueID, req.Draft.Date, req.Draft.StartTime, req.Draft.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем пользователя
	if _, err := uc.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateBooking: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	// 3. Получаем площадку
	venue, err := uc.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("CreateBooking: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("CreateBooking: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 4. Получаем текущее время
	now := uc.timeProvider.Now()

	// 5. Если дату нельзя разобрать, занятость не нужна: правила и так вернут ошибку по дате
	date, err := uc.validator.ParseDate(req.Draft.Date)
	if err != nil {
		result := uc.validator.Validate(req.Draft, nil, now)
		checkCapacity(result, req.Draft.Attendees, venue)
		uc.logger.Warn("CreateBooking: draft rejected: %v", result.Fields())
		return nil, &ValidationError{Fields: result}
	}

	var created *domain.Booking

	// 6. Проверка занятости и создание выполняются в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Получаем бронирования площадки на дату с блокировкой (FOR UPDATE)
		filter := domain.VenueBookingsFilter{
			VenueID:   req.VenueID,
			StartDate: &date,
			EndDate:   &date,
		}

		bookings, err := uc.bookingRepo.GetByVenueWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 6.2. Проверяем черновик по тем же правилам, что и форма клиента
		idx := domain.BuildAvailabilityIndex(bookings)
		result := uc.validator.Validate(req.Draft, idx, now)
		checkCapacity(result, req.Draft.Attendees, venue)
		if !result.IsValid() {
			uc.logger.Warn("CreateBooking: draft rejected: %v", result.Fields())
			return &ValidationError{Fields: result}
		}

		// 6.3. Создаем бронирование в статусе pending
		booking, err := buildBooking(req, date)
		if err != nil {
			return err
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", created.ID)

	// 7. Уведомление не влияет на результат
	event := domain.NewBookingEvent(domain.EventBookingCreated, created, now)
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%d: %v", created.ID, err)
	}

	return &Response{
		Booking: created,
		Venue:   venue,
	}, nil
}
