package update_booking_status

import "github.com/m04kA/SMC-VenueBookingService/internal/service/bookings/models"

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status      string  `json:"status"`                // pending, approved, rejected, canceled
	CancelledBy *string `json:"cancelledBy,omitempty"` // только для canceled
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(userID int64) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		UserID:      userID,
		Status:      r.Status,
		CancelledBy: r.CancelledBy,
	}
}
