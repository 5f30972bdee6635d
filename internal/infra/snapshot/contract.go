package snapshot

import (
	"context"

	"github.com/lib/pq"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Notifier источник уведомлений Postgres (*pq.Listener)
type Notifier interface {
	NotificationChannel() <-chan *pq.Notification
}

// Feed коллекция, на которую можно подписаться
type Feed interface {
	Name() string
	Refresh(ctx context.Context) error
	Subscribe(ctx context.Context) (<-chan Snapshot, error)
}
