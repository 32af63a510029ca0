package session

import (
	"context"
	"time"

	"github.com/gorilla/websocket"

	"github.com/proctorsight/go-proctor/internal/log"
	"github.com/proctorsight/go-proctor/pkg/protocol"
)

const (
	uplinkWriteWait  = 10 * time.Second
	uplinkMinBackoff = time.Second
	uplinkMaxBackoff = 30 * time.Second
)

// Uplink streams violation events to a central review server over a
// websocket. Events are queued non-blocking; when the connection is
// down they are dropped rather than stalling the frame loop, and the
// dialer retries with exponential backoff.
type Uplink struct {
	url    string
	events chan []byte
}

// NewUplink creates an uplink targeting the given websocket URL.
func NewUplink(url string) *Uplink {
	return &Uplink{
		url:    url,
		events: make(chan []byte, 256),
	}
}

// SendAlert queues a violation event for delivery.
func (u *Uplink) SendAlert(sessionID string, v Violation) {
	msg, err := protocol.NewMessage(protocol.TypeAlert, protocol.AlertData{
		SessionID: sessionID,
		Kind:      v.Kind,
		Detail:    v.Detail,
		Score:     v.Score,
	})
	if err != nil {
		log.Error("uplink encode alert", "error", err)
		return
	}
	data, err := msg.Bytes()
	if err != nil {
		log.Error("uplink encode alert", "error", err)
		return
	}

	select {
	case u.events <- data:
	default:
		log.Warn("uplink queue full, dropping alert", "kind", v.Kind)
	}
}

// Run drives the connection until the context is cancelled.
// Call in a goroutine.
func (u *Uplink) Run(ctx context.Context) {
	backoff := uplinkMinBackoff

	for {
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.url, nil)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Warn("uplink dial failed", "url", u.url, "error", err, "retry_in", backoff)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, uplinkMaxBackoff)
			continue
		}

		log.Info("uplink connected", "url", u.url)
		backoff = uplinkMinBackoff

		if err := u.pump(ctx, conn); err != nil {
			log.Warn("uplink connection lost", "error", err)
		}
		conn.Close()

		if ctx.Err() != nil {
			return
		}
	}
}

// pump writes queued events until the context ends or a write fails.
func (u *Uplink) pump(ctx context.Context, conn *websocket.Conn) error {
	for {
		select {
		case <-ctx.Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(uplinkWriteWait))
			return nil
		case data := <-u.events:
			conn.SetWriteDeadline(time.Now().Add(uplinkWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return err
			}
		}
	}
}
