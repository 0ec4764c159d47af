package notify

import "errors"

var (
	// ErrEncodeEvent ошибка сериализации события
	ErrEncodeEvent = errors.New("notify: failed to encode event")

	// ErrPublish ошибка публикации события
	ErrPublish = errors.New("notify: failed to publish event")
)
