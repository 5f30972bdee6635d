package stream_snapshots

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/infra/snapshot"
)

const (
	msgUnknownCollection = "коллекция не поддерживает подписку"
	msgSubscribeFailed   = "не удалось подписаться на коллекцию"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Options параметры соединения
type Options struct {
	PingPeriod time.Duration
	PongWait   time.Duration
	// AllowedOrigins пустой список - любой origin
	AllowedOrigins []string
	// Context при отмене все подписчики получают close frame
	Context context.Context
}

type Handler struct {
	feeds    FeedRegistry
	logger   Logger
	upgrader websocket.Upgrader
	opts     Options
}

func NewHandler(feeds FeedRegistry, opts Options, logger Logger) *Handler {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.PingPeriod <= 0 {
		opts.PingPeriod = pingPeriod
	}
	// pong должен успеть прийти до следующего ping
	if opts.PongWait <= opts.PingPeriod {
		opts.PongWait = max(pongWait, 2*opts.PingPeriod)
	}

	h := &Handler{
		feeds:  feeds,
		logger: logger,
		opts:   opts,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// Handle GET /api/v1/stream/{collection}
// После upgrade сразу отправляется текущий снимок, далее - снимок на каждое изменение коллекции
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["collection"]

	// 1. Проверяем коллекцию до upgrade, чтобы вернуть обычный HTTP статус
	feed, err := h.feeds.Feed(name)
	if err != nil {
		if errors.Is(err, snapshot.ErrUnknownFeed) {
			handlers.RespondNotFound(w, msgUnknownCollection)
			return
		}
		h.logger.Error("GET /stream/%s - Failed to get feed: %v", name, err)
		handlers.RespondInternalError(w)
		return
	}

	ctx, cancel := context.WithCancel(h.opts.Context)
	defer cancel()

	// 2. Подписываемся (первый снимок загружается здесь)
	snapshots, err := feed.Subscribe(ctx)
	if err != nil {
		h.logger.Error("GET /stream/%s - Failed to subscribe: %v", name, err)
		handlers.RespondError(w, http.StatusServiceUnavailable, msgSubscribeFailed)
		return
	}

	// 3. Upgrade HTTP -> WebSocket
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader уже ответил клиенту
		h.logger.Warn("GET /stream/%s - Upgrade failed: %v", name, err)
		return
	}
	defer conn.Close()

	h.logger.Info("GET /stream/%s - Subscriber connected: remote=%s", name, r.RemoteAddr)

	// 4. Читаем входящие кадры только ради pong и close
	go h.readLoop(conn, cancel)

	// 5. Единственный писатель в соединение
	h.writeLoop(ctx, conn, snapshots)

	h.logger.Info("GET /stream/%s - Subscriber disconnected: remote=%s", name, r.RemoteAddr)
}

// readLoop отменяет подписку, когда клиент закрыл соединение или перестал отвечать на ping
func (h *Handler) readLoop(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(h.opts.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.opts.PongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("Stream: read error: %v", err)
			}
			return
		}
	}
}

func (h *Handler) writeLoop(ctx context.Context, conn *websocket.Conn, snapshots <-chan snapshot.Snapshot) {
	ticker := time.NewTicker(h.opts.PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return

		case snap, ok := <-snapshots:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(FromSnapshot(snap)); err != nil {
				h.logger.Warn("Stream: failed to write snapshot collection=%s: %v", snap.Collection, err)
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	if len(h.opts.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.opts.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}
