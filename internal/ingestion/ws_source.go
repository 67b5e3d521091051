package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"fraud-eval-lab/internal/domain"
	"fraud-eval-lab/internal/observability"
)

// WSConfig configures WebSocket feed behavior.
type WSConfig struct {
	// ReconnectDelay is initial delay before reconnect attempt.
	ReconnectDelay time.Duration
	// MaxReconnectDelay is maximum delay between reconnect attempts.
	MaxReconnectDelay time.Duration
	// PingInterval is interval for sending ping frames.
	PingInterval time.Duration
	// ReadTimeout is timeout for reading messages.
	ReadTimeout time.Duration
	// WriteTimeout is timeout for writing messages.
	WriteTimeout time.Duration
}

// DefaultWSConfig returns default WebSocket configuration.
func DefaultWSConfig() WSConfig {
	return WSConfig{
		ReconnectDelay:    1 * time.Second,
		MaxReconnectDelay: 30 * time.Second,
		PingInterval:      30 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
}

// WSBatchSource reads labeled batch frames from a scoring-agent WebSocket
// feed. Each text frame is one JSON-encoded LabeledBatch. The source
// reconnects with exponential backoff on connection loss.
type WSBatchSource struct {
	endpoint string
	config   WSConfig
	logger   *log.Logger

	conn   *websocket.Conn
	connMu sync.Mutex
	closed atomic.Bool

	batches chan domain.LabeledBatch

	// reconnecting indicates reconnection in progress
	reconnecting atomic.Bool

	// done signals shutdown
	done chan struct{}
	wg   sync.WaitGroup
}

// NewWSBatchSource creates a feed source and connects to the endpoint.
func NewWSBatchSource(ctx context.Context, endpoint string, config *WSConfig, logger *log.Logger) (*WSBatchSource, error) {
	cfg := DefaultWSConfig()
	if config != nil {
		cfg = *config
	}
	if logger == nil {
		logger = log.Default()
	}

	s := &WSBatchSource{
		endpoint: endpoint,
		config:   cfg,
		logger:   logger,
		batches:  make(chan domain.LabeledBatch, 64),
		done:     make(chan struct{}),
	}

	if err := s.connect(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// connect establishes the WebSocket connection.
func (s *WSBatchSource) connect(ctx context.Context) error {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, s.endpoint, nil)
	if err != nil {
		return fmt.Errorf("websocket dial: %w", err)
	}

	s.conn = conn
	return nil
}

// Subscribe starts the reader and ping loops and returns the batch channel.
func (s *WSBatchSource) Subscribe(ctx context.Context) (<-chan domain.LabeledBatch, error) {
	if s.closed.Load() {
		return nil, fmt.Errorf("source closed")
	}

	s.wg.Add(1)
	go s.readLoop()

	s.wg.Add(1)
	go s.pingLoop()

	return s.batches, nil
}

// Close closes the connection and the batch channel.
func (s *WSBatchSource) Close() error {
	if s.closed.Swap(true) {
		return nil // Already closed
	}

	close(s.done)

	s.connMu.Lock()
	if s.conn != nil {
		s.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		s.conn.Close()
	}
	s.connMu.Unlock()

	s.wg.Wait()
	close(s.batches)
	return nil
}

// readLoop reads frames and dispatches decoded batches.
func (s *WSBatchSource) readLoop() {
	defer s.wg.Done()

	reconnectDelay := s.config.ReconnectDelay

	for !s.closed.Load() {
		s.connMu.Lock()
		conn := s.conn
		s.connMu.Unlock()

		if conn == nil {
			select {
			case <-s.done:
				return
			case <-time.After(100 * time.Millisecond):
				continue
			}
		}

		conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, message, err := conn.ReadMessage()
		if err != nil {
			if s.closed.Load() {
				return
			}

			// Connection error - attempt reconnect with exponential backoff
			if !s.reconnecting.Swap(true) {
				go s.reconnect(reconnectDelay)
			}

			reconnectDelay = reconnectDelay * 2
			if reconnectDelay > s.config.MaxReconnectDelay {
				reconnectDelay = s.config.MaxReconnectDelay
			}

			select {
			case <-s.done:
				return
			case <-time.After(100 * time.Millisecond):
				continue
			}
		}

		// Reset delay on successful read
		reconnectDelay = s.config.ReconnectDelay

		s.handleFrame(message)
	}
}

// reconnect waits for the backoff delay and re-dials.
func (s *WSBatchSource) reconnect(delay time.Duration) {
	defer s.reconnecting.Store(false)

	if s.closed.Load() {
		return
	}

	select {
	case <-s.done:
		return
	case <-time.After(delay):
	}

	observability.RecordFeedReconnect()

	// Close existing connection
	s.connMu.Lock()
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
	s.connMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.connect(ctx); err != nil {
		// Reconnect failed, will retry on next read error
		s.logger.Printf("feed reconnect failed: %v", err)
		return
	}

	s.logger.Printf("feed reconnected to %s", s.endpoint)
}

// handleFrame decodes one frame into a batch. Malformed frames are dropped.
func (s *WSBatchSource) handleFrame(message []byte) {
	var batch domain.LabeledBatch
	if err := json.Unmarshal(message, &batch); err != nil {
		s.logger.Printf("dropping malformed feed frame: %v", err)
		observability.RecordFeedFrameDropped("malformed")
		return
	}

	observability.RecordFeedFrame()

	// Block until we can send - never drop decoded batches
	select {
	case s.batches <- batch:
	case <-s.done:
	}
}

// pingLoop sends periodic ping frames to keep connection alive.
func (s *WSBatchSource) pingLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.connMu.Lock()
			if s.conn != nil {
				s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
				if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					// Connection might be dead, reader will handle reconnect
				}
			}
			s.connMu.Unlock()
		}
	}
}
