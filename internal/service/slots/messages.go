package slots

// Сообщения об ошибках валидации, показываются пользователю как есть
const (
	MsgDateRequired         = "Please select a date."
	MsgDateInvalid          = "Please select a valid date."
	MsgDateNotFuture        = "Please select a future date."
	MsgDateBooked           = "This date already has a booking. Please choose another date."
	MsgEventNameRequired    = "Please enter an event name."
	MsgEventNameTooLong     = "Event name is too long."
	MsgEventTypeRequired    = "Please choose an event type."
	MsgStartTimeRequired    = "Please select a start time."
	MsgEndTimeRequired      = "Please select an end time."
	MsgEndNotAfterStart     = "End time must be later than start time."
	MsgDurationTooLong      = "Duration cannot exceed %d hours."
	MsgOutsideWindow        = "Bookings must start and end between %s and %s."
	MsgTimeOverlap          = "The selected time overlaps an existing booking."
	MsgAdvanceNotice        = "Bookings must be made at least %d hours before the event start."
	MsgInvalidSelection     = "Invalid date/time selection."
	MsgAttendeesRequired    = "Please enter expected attendees."
	MsgAttendeesNotPositive = "Attendees must be a positive number."
)
