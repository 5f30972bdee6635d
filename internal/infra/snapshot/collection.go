package snapshot

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Snapshot полное состояние коллекции на момент SentAt
type Snapshot struct {
	Collection string
	Items      interface{}
	SentAt     time.Time
}

// Loader загружает коллекцию целиком
type Loader[T any] func(ctx context.Context) ([]T, error)

// Collection раздает подписчикам полные снимки коллекции
// Каждый подписчик держит не больше одного недоставленного снимка:
// новый снимок вытесняет старый, медленный подписчик видит только последнее состояние.
type Collection[T any] struct {
	name   string
	load   Loader[T]
	logger Logger
	now    func() time.Time

	// refreshMu упорядочивает загрузки: снимок публикуется до старта следующей загрузки
	refreshMu sync.Mutex

	mu          sync.Mutex
	current     *Snapshot
	subscribers map[int]chan Snapshot
	nextID      int
}

// NewCollection создает коллекцию с загрузчиком
func NewCollection[T any](name string, load Loader[T], logger Logger) *Collection[T] {
	return &Collection[T]{
		name:        name,
		load:        load,
		logger:      logger,
		now:         time.Now,
		subscribers: make(map[int]chan Snapshot),
	}
}

// Name возвращает имя коллекции
func (c *Collection[T]) Name() string {
	return c.name
}

// Refresh перечитывает коллекцию и рассылает снимок всем подписчикам
func (c *Collection[T]) Refresh(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLoad, c.name, err)
	}
	if items == nil {
		items = []T{}
	}

	snap := Snapshot{Collection: c.name, Items: items, SentAt: c.now()}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = &snap
	for _, ch := range c.subscribers {
		offer(ch, snap)
	}

	return nil
}

// Subscribe регистрирует подписчика и сразу отдает ему текущий снимок
// Канал закрывается после отмены ctx.
func (c *Collection[T]) Subscribe(ctx context.Context) (<-chan Snapshot, error) {
	c.mu.Lock()
	loaded := c.current != nil
	c.mu.Unlock()

	if !loaded {
		if err := c.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	ch := make(chan Snapshot, 1)

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subscribers[id] = ch
	if c.current != nil {
		offer(ch, *c.current)
	}
	c.mu.Unlock()

	go func() {
		<-ctx.Done()

		c.mu.Lock()
		delete(c.subscribers, id)
		close(ch)
		c.mu.Unlock()
	}()

	return ch, nil
}

// Subscribers возвращает число активных подписчиков
func (c *Collection[T]) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subscribers)
}

// offer кладет снимок в канал, вытесняя недоставленный
// Вызывается под c.mu, поэтому отправитель у канала один
func offer(ch chan Snapshot, snap Snapshot) {
	select {
	case ch <- snap:
		return
	default:
	}

	select {
	case <-ch:
	default:
	}

	select {
	case ch <- snap:
	default:
	}
}
