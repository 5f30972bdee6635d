package snapshot

import (
	"context"
	"fmt"
)

// Dispatcher обновляет коллекции по уведомлениям NOTIFY
// Payload уведомления - имя изменившейся коллекции (имя таблицы из триггера)
type Dispatcher struct {
	notifier Notifier
	feeds    map[string]Feed
	logger   Logger
}

// NewDispatcher создает диспетчер для набора коллекций
func NewDispatcher(notifier Notifier, logger Logger, feeds ...Feed) *Dispatcher {
	byName := make(map[string]Feed, len(feeds))
	for _, f := range feeds {
		byName[f.Name()] = f
	}

	return &Dispatcher{
		notifier: notifier,
		feeds:    byName,
		logger:   logger,
	}
}

// Feed возвращает коллекцию по имени
// Без источника уведомлений кэш коллекции не обновляется, поэтому каждая подписка перечитывает коллекцию.
func (d *Dispatcher) Feed(name string) (Feed, error) {
	feed, ok := d.feeds[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFeed, name)
	}
	if d.notifier == nil {
		return onDemandFeed{Feed: feed}, nil
	}
	return feed, nil
}

// onDemandFeed перечитывает коллекцию перед каждой подпиской
type onDemandFeed struct {
	Feed
}

func (f onDemandFeed) Subscribe(ctx context.Context) (<-chan Snapshot, error) {
	if err := f.Refresh(ctx); err != nil {
		return nil, err
	}
	return f.Feed.Subscribe(ctx)
}

// Run читает уведомления до отмены ctx
// nil-уведомление pq.Listener присылает после переподключения:
// события за время разрыва потеряны, поэтому обновляются все коллекции.
func (d *Dispatcher) Run(ctx context.Context) error {
	if d.notifier == nil {
		<-ctx.Done()
		return ctx.Err()
	}

	notifications := d.notifier.NotificationChannel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case n, ok := <-notifications:
			if !ok {
				d.logger.Warn("Dispatcher: notification channel closed")
				return nil
			}

			if n == nil {
				d.logger.Warn("Dispatcher: listener reconnected, refreshing all collections")
				d.RefreshAll(ctx)
				continue
			}

			feed, exists := d.feeds[n.Extra]
			if !exists {
				continue
			}

			if err := feed.Refresh(ctx); err != nil {
				d.logger.Error("Dispatcher: failed to refresh collection=%s: %v", n.Extra, err)
			}
		}
	}
}

// RefreshAll перечитывает все коллекции
func (d *Dispatcher) RefreshAll(ctx context.Context) {
	for name, feed := range d.feeds {
		if err := feed.Refresh(ctx); err != nil {
			d.logger.Error("Dispatcher: failed to refresh collection=%s: %v", name, err)
		}
	}
}
