package models

import "errors"

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("models: invalid booking status")

	// ErrInvalidCancelledBy возвращается при некорректном инициаторе отмены
	ErrInvalidCancelledBy = errors.New("models: invalid cancelledBy value")
)
