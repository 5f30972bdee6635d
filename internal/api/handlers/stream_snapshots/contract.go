package stream_snapshots

import (
	"github.com/m04kA/SMC-StudioService/internal/infra/snapshot"
)

// FeedRegistry выдает коллекцию по имени (*snapshot.Dispatcher)
type FeedRegistry interface {
	Feed(name string) (snapshot.Feed, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
