package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"github.com/BruksfildServices01/barber-queue/internal/dto"
	"github.com/BruksfildServices01/barber-queue/internal/metrics"
	"github.com/BruksfildServices01/barber-queue/internal/watch"
)

const (
	liveWriteWait  = 10 * time.Second
	liveReadLimit  = 512
	livePongWait   = 60 * time.Second
	livePingPeriod = 54 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiveHandler pushes the public live queue over a WebSocket. Each
// connection runs its own poller against the engine; there is no shared
// broadcast hub.
type LiveHandler struct {
	engine   QueueEngine
	interval time.Duration
	clock    clockwork.Clock
	metrics  *metrics.Metrics
}

func NewLiveHandler(engine QueueEngine, interval time.Duration, clock clockwork.Clock, m *metrics.Metrics) *LiveHandler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &LiveHandler{
		engine:   engine,
		interval: interval,
		clock:    clock,
		metrics:  m,
	}
}

func (h *LiveHandler) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	h.metrics.LiveConnected()
	defer h.metrics.LiveDisconnected()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// the client never sends anything useful; reading only detects the close
	go func() {
		defer cancel()
		conn.SetReadLimit(liveReadLimit)
		_ = conn.SetReadDeadline(time.Now().Add(livePongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(livePongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	go h.keepAlive(ctx, conn)

	source := func(ctx context.Context) (dto.LiveQueueDTO, error) {
		return liveQueue(ctx, h.engine, h.clock)
	}
	poller := watch.NewPoller(source, h.interval, h.clock)

	err = poller.Run(ctx, func(live dto.LiveQueueDTO) error {
		_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
		return conn.WriteJSON(live)
	})
	if err != nil {
		slog.Debug("live queue stream closed", "error", err)
		return
	}

	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(liveWriteWait),
	)
}

// keepAlive pings so idle proxies do not drop the socket. gorilla allows
// WriteControl concurrently with the data writer.
func (h *LiveHandler) keepAlive(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(livePingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(liveWriteWait)); err != nil {
				return
			}
		}
	}
}

func liveQueue(ctx context.Context, engine QueueEngine, clock clockwork.Clock) (dto.LiveQueueDTO, error) {
	snapshot, err := engine.Snapshot(ctx)
	if err != nil {
		return dto.LiveQueueDTO{}, err
	}
	barbers, services, err := referenceData(ctx, engine)
	if err != nil {
		return dto.LiveQueueDTO{}, err
	}
	return dto.NewLiveQueue(snapshot, barbers, services, clock.Now()), nil
}
