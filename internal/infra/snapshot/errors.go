package snapshot

import "errors"

var (
	// ErrLoad возвращается, если не удалось загрузить коллекцию
	ErrLoad = errors.New("snapshot: failed to load collection")

	// ErrUnknownFeed возвращается при подписке на неизвестную коллекцию
	ErrUnknownFeed = errors.New("snapshot: unknown collection")
)
