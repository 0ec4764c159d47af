package submitter

import "errors"

// MsgSubmitFailed сообщение, когда сервер не прислал своего
const MsgSubmitFailed = "Failed to submit booking. Please try again."

var (
	// ErrAuthRequired отправка без идентификатора пользователя
	ErrAuthRequired = errors.New("submitter: authentication required")

	// ErrVenueRequired не выбрана площадка
	ErrVenueRequired = errors.New("submitter: venue is required")

	// ErrSubmissionInProgress предыдущая отправка ещё не завершилась
	ErrSubmissionInProgress = errors.New("submitter: submission already in progress")

	// ErrAvailabilityUnknown занятость площадки ещё ни разу не загружена
	ErrAvailabilityUnknown = errors.New("submitter: availability has not been loaded")

	// ErrFormClosed форма закрыта
	ErrFormClosed = errors.New("submitter: form is closed")
)

// SubmissionError ошибка отправки; черновик остаётся редактируемым
type SubmissionError struct {
	Message string
	Err     error
}

// Error возвращает сообщение для пользователя
func (e *SubmissionError) Error() string {
	return e.Message
}

// Unwrap возвращает исходную ошибку
func (e *SubmissionError) Unwrap() error {
	return e.Err
}
