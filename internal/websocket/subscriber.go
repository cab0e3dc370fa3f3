package websocket

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// ErrSubscriberLagging is returned when a subscriber's queue is full and the
// event was dropped. The subscriber is sent a resync event instead.
var ErrSubscriberLagging = errors.New("subscriber is lagging")

const (
	writeTimeout = 10 * time.Second
	idleTimeout  = 60 * time.Second
	pingInterval = idleTimeout * 9 / 10

	// subscribers only send pongs and close frames
	maxInboundFrame = 512

	queueSize = 64
)

// conn is the part of *websocket.Conn a subscriber drives
type conn interface {
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Subscriber streams one user's ledger events over a WebSocket connection.
// Events are delivered in publish order; when the queue overflows the
// newest events are dropped and a single ledger.resync follows the backlog.
type Subscriber struct {
	id     string
	userID int32
	conn   conn
	hub    *Hub
	queue  chan []byte
	lagged atomic.Bool

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

// NewSubscriber wraps an upgraded connection following userID's ledger
func NewSubscriber(c *websocket.Conn, userID int32, hub *Hub) *Subscriber {
	return newSubscriber(c, userID, hub)
}

func newSubscriber(c conn, userID int32, hub *Hub) *Subscriber {
	return &Subscriber{
		id:     uuid.New().String(),
		userID: userID,
		conn:   c,
		hub:    hub,
		queue:  make(chan []byte, queueSize),
	}
}

func (s *Subscriber) ID() string {
	return s.id
}

func (s *Subscriber) UserID() int32 {
	return s.userID
}

// Send queues an encoded event without blocking the publisher
func (s *Subscriber) Send(data []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrClientClosed
	}

	select {
	case s.queue <- data:
		return nil
	default:
		s.lagged.Store(true)
		return ErrSubscriberLagging
	}
}

// Close ends the subscription. The write loop sends a close frame once the
// queue is drained. Safe to call more than once.
func (s *Subscriber) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.queue)
		s.mu.Unlock()
	})
	return nil
}

// Serve starts the read and write loops and returns immediately
func (s *Subscriber) Serve() {
	go s.writeLoop()
	go s.readLoop()
}

// readLoop keeps the idle deadline fresh on pongs and unsubscribes when the
// peer goes away
func (s *Subscriber) readLoop() {
	defer func() {
		s.hub.Unregister(s)
		_ = s.Close()
	}()

	s.conn.SetReadLimit(maxInboundFrame)
	_ = s.conn.SetReadDeadline(time.Now().Add(idleTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(idleTimeout))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().
					Err(err).
					Str("client_id", s.id).
					Int32("user_id", s.userID).
					Msg("Ledger subscriber disconnected")
			}
			return
		}
	}
}

func (s *Subscriber) writeLoop() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case data, ok := <-s.queue:
			if !ok {
				_ = s.write(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.write(websocket.TextMessage, data); err != nil {
				return
			}
			if err := s.flushResync(); err != nil {
				return
			}

		case <-ticker.C:
			if err := s.flushResync(); err != nil {
				return
			}
			if err := s.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// flushResync sends ledger.resync once the queued backlog has been written
func (s *Subscriber) flushResync() error {
	if len(s.queue) > 0 || !s.lagged.CompareAndSwap(true, false) {
		return nil
	}

	data, err := LedgerResync(s.userID).ToJSON()
	if err != nil {
		return err
	}
	log.Debug().
		Str("client_id", s.id).
		Int32("user_id", s.userID).
		Msg("Ledger subscriber lagged, resync sent")
	return s.write(websocket.TextMessage, data)
}

func (s *Subscriber) write(messageType int, data []byte) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := s.conn.WriteMessage(messageType, data); err != nil {
		log.Warn().
			Err(err).
			Str("client_id", s.id).
			Int32("user_id", s.userID).
			Msg("Ledger subscriber write failed")
		return err
	}
	return nil
}
