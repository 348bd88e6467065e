package stream

import (
	"context"
	"sync"
	"time"

	"MemeFlow/internal/domain/repository"
	"MemeFlow/pkg/logger"

	"github.com/gorilla/websocket"
)

// State is the transport's connection state.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Config holds transport settings.
type Config struct {
	URL              string
	ReconnectDelay   time.Duration
	HandshakeTimeout time.Duration
	BufferSize       int
}

// Client maintains one persistent push connection. Every close, clean or
// error-triggered, schedules exactly one reconnect after a fixed delay;
// the single run loop makes stacked reconnects impossible. The client
// sends no handshake payload: the server pushes init on its own. Stop
// suppresses any further reconnecting.
type Client struct {
	cfg     Config
	log     *logger.Logger
	metrics repository.Metrics

	frames chan []byte
	done   chan struct{}
	wg     sync.WaitGroup

	mu       sync.Mutex
	conn     *websocket.Conn
	state    State
	stopOnce sync.Once
}

// New creates a push stream client.
func New(cfg Config, log *logger.Logger, metrics repository.Metrics) *Client {
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = 2 * time.Second
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = 10 * time.Second
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 256
	}
	return &Client{
		cfg:     cfg,
		log:     log,
		metrics: metrics,
		frames:  make(chan []byte, cfg.BufferSize),
		done:    make(chan struct{}),
	}
}

// Start launches the connect loop.
func (c *Client) Start(ctx context.Context) {
	c.wg.Add(1)
	go c.run(ctx)
}

// Frames returns the channel of raw received frames. Closed when the
// client stops for good.
func (c *Client) Frames() <-chan []byte {
	return c.frames
}

// State returns the current connection state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Stop shuts the transport down and suppresses further reconnects.
func (c *Client) Stop() {
	c.stopOnce.Do(func() {
		close(c.done)
		c.mu.Lock()
		if c.conn != nil {
			_ = c.conn.Close()
		}
		c.mu.Unlock()
	})
	c.wg.Wait()
}

func (c *Client) run(ctx context.Context) {
	defer c.wg.Done()
	defer close(c.frames)

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		default:
		}

		c.setState(StateConnecting)
		dialer := websocket.Dialer{HandshakeTimeout: c.cfg.HandshakeTimeout}
		conn, _, err := dialer.DialContext(ctx, c.cfg.URL, nil)
		if err != nil {
			c.setState(StateDisconnected)
			c.log.Warn("stream dial failed", logger.String("url", c.cfg.URL), logger.Error(err))
			c.metrics.RecordError("stream_dial")
			if !c.waitReconnect(ctx) {
				return
			}
			continue
		}

		// Stop can land between dial and publishing the conn; it would
		// see nil and close nothing, leaving readFrames blocked forever
		// on a silent server. Re-check done inside the same critical
		// section that stores the conn.
		c.mu.Lock()
		select {
		case <-c.done:
			c.mu.Unlock()
			_ = conn.Close()
			c.setState(StateDisconnected)
			return
		default:
		}
		c.conn = conn
		c.state = StateConnected
		c.mu.Unlock()
		c.log.Info("stream connected", logger.String("url", c.cfg.URL))

		c.readFrames(conn)

		c.mu.Lock()
		c.conn = nil
		c.state = StateDisconnected
		c.mu.Unlock()

		if !c.waitReconnect(ctx) {
			return
		}
	}
}

// readFrames pumps raw frames until the connection drops.
func (c *Client) readFrames(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
			default:
				c.log.Warn("stream read error", logger.Error(err))
				c.metrics.RecordError("stream_read")
			}
			_ = conn.Close()
			return
		}
		select {
		case c.frames <- data:
		case <-c.done:
			_ = conn.Close()
			return
		default:
			// Consumer stalled; dropping beats blocking the read loop.
			c.metrics.RecordError("stream_backpressure")
		}
	}
}

// waitReconnect sleeps the fixed delay before the next attempt. Returns
// false when the client is stopping.
func (c *Client) waitReconnect(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-c.done:
		return false
	case <-time.After(c.cfg.ReconnectDelay):
		c.metrics.RecordReconnect()
		return true
	}
}

func (c *Client) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}
