package get_availability

import (
	"time"
)

// Request модель запроса занятости площадки
type Request struct {
	VenueID int64
	Date    *time.Time // Дата, для которой нужны часы; nil - только список занятых дат
}

// Response занятость площадки начиная с сегодняшнего дня
type Response struct {
	VenueID           int64
	UnavailableDates  []string   // YYYY-MM-DD
	Date              *time.Time // Запрошенная дата
	UnavailableHours  []int      // Занятые часы на Date
	AllowedStartHours []int      // Часы, с которых можно начать бронирование на Date
}
