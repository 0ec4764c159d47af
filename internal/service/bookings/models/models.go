package models

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/ptr"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID int64 `json:"userId"`
}

// UpdateStatusRequest запрос на смену статуса бронирования сотрудником
type UpdateStatusRequest struct {
	UserID      int64   `json:"userId"`
	Status      string  `json:"status"`
	CancelledBy *string `json:"cancelledBy,omitempty"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetVenueBookingsRequest запрос на получение бронирований площадки
type GetVenueBookingsRequest struct {
	VenueID         int64      `json:"venueId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeCanceled bool       `json:"includeCanceled,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetVenueBookingsRequest) ToDomainFilter() (domain.VenueBookingsFilter, error) {
	filter := domain.VenueBookingsFilter{
		VenueID:         r.VenueID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeCanceled: r.IncludeCanceled,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// VenueRef ссылка на площадку в ответе
type VenueRef struct {
	ID int64 `json:"id"`
}

// BookingResponse ответ с информацией о бронировании
type BookingResponse struct {
	ID          int64    `json:"id"`
	UserID      int64    `json:"userId"`
	Venue       VenueRef `json:"venue"`
	EventName   string   `json:"eventName"`
	EventType   string   `json:"eventType"`
	Date        string   `json:"date"`              // YYYY-MM-DD
	TimeSlot    string   `json:"timeSlot"`          // HH:MM:SS
	EndTime     *string  `json:"endTime,omitempty"` // HH:MM:SS
	Capacity    int      `json:"capacity"`
	Description string   `json:"description,omitempty"`
	Status      string   `json:"status"`
	CancelledBy *string  `json:"cancelledBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:          b.ID,
		UserID:      b.UserID,
		Venue:       VenueRef{ID: b.VenueID},
		EventName:   b.EventName,
		EventType:   string(b.EventType),
		Date:        domain.DateKey(b.Date),
		TimeSlot:    wireTime(b.TimeSlot),
		Capacity:    b.Capacity,
		Description: b.Description,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}

	if !b.EndTime.IsZero() {
		resp.EndTime = ptr.Ptr(wireTime(b.EndTime))
	}

	if b.CancelledBy != nil {
		resp.CancelledBy = ptr.Ptr(string(*b.CancelledBy))
	}

	return resp
}

// wireTime отдаёт время в виде HH:MM:SS, некорректное значение возвращается как есть
func wireTime(t types.TimeString) string {
	s, err := t.WithSeconds()
	if err != nil {
		return t.String()
	}
	return s
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	if !domain.IsValidBookingStatus(status) {
		return "", ErrInvalidStatus
	}
	return domain.BookingStatus(status), nil
}

// ToDomainCancelledBy конвертирует строку в domain.CancelledBy
func ToDomainCancelledBy(raw string) (domain.CancelledBy, error) {
	switch by := domain.CancelledBy(raw); by {
	case domain.CancelledByUser, domain.CancelledByCustodian, domain.CancelledByAdmin:
		return by, nil
	}
	return "", ErrInvalidCancelledBy
}
