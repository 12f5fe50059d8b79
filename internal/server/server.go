// Package server broadcasts live table events to websocket spectators.
// Clients are read only: they receive the same event stream the table's
// observers see, as JSON messages.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerengine/internal/engine"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	sendBuffer = 256
)

// Broadcaster fans engine events out to connected websocket clients. It
// implements engine.Observer; register it on a game with AddObserver.
type Broadcaster struct {
	addr     string
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]bool

	events chan Message
}

type client struct {
	conn *websocket.Conn
	send chan Message
	once sync.Once
}

// NewBroadcaster creates a broadcaster listening on addr.
func NewBroadcaster(addr string, logger *log.Logger) *Broadcaster {
	return &Broadcaster{
		addr:   addr,
		logger: logger.WithPrefix("server"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*client]bool),
		events:  make(chan Message, 1024),
	}
}

// OnEvent queues an event for broadcast. Called synchronously from the
// game's goroutine; drops events rather than blocking the table when the
// queue is full.
func (b *Broadcaster) OnEvent(e engine.Event) {
	select {
	case b.events <- messageFor(e):
	default:
		b.logger.Warn("event queue full, dropping event")
	}
}

// Serve runs the HTTP listener and the broadcast pump until the context
// is canceled.
func (b *Broadcaster) Serve(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", b.handleWS)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{Addr: b.addr, Handler: mux}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b.logger.Info("listening", "addr", b.addr)
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		b.pump(ctx)
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// pump moves queued events to every connected client.
func (b *Broadcaster) pump(ctx context.Context) {
	for {
		select {
		case msg := <-b.events:
			b.mu.Lock()
			for c := range b.clients {
				select {
				case c.send <- msg:
				default:
					// Slow consumer: disconnect rather than stall the table.
					delete(b.clients, c)
					c.close()
				}
			}
			b.mu.Unlock()
		case <-ctx.Done():
			b.mu.Lock()
			for c := range b.clients {
				delete(b.clients, c)
				c.close()
			}
			b.mu.Unlock()
			return
		}
	}
}

func (b *Broadcaster) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Error("upgrade failed", "error", err)
		return
	}
	c := &client{conn: conn, send: make(chan Message, sendBuffer)}

	b.mu.Lock()
	b.clients[c] = true
	total := len(b.clients)
	b.mu.Unlock()
	b.logger.Info("spectator connected", "total", total)

	go c.writePump(b.logger)
	go b.readPump(c)
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.send)
	})
}

// readPump discards client input; its job is to notice disconnects and
// answer pings.
func (b *Broadcaster) readPump(c *client) {
	defer func() {
		b.mu.Lock()
		if b.clients[c] {
			delete(b.clients, c)
			c.close()
		}
		total := len(b.clients)
		b.mu.Unlock()
		b.logger.Info("spectator disconnected", "total", total)
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump(logger *log.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				logger.Debug("write failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
