package history

import "errors"

var (
	// ErrEncodeEntry ошибка сериализации записи
	ErrEncodeEntry = errors.New("history: failed to encode entry")

	// ErrStore ошибка обращения к хранилищу
	ErrStore = errors.New("history: store error")
)
