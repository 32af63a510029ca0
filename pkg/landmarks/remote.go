package landmarks

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"gocv.io/x/gocv"
)

const (
	// detectTimeout bounds one round trip to the sidecar.
	detectTimeout = 2 * time.Second

	// jpegQuality for frames sent to the sidecar. Landmark models are
	// tolerant of compression; keep the wire payload small.
	jpegQuality = 80
)

// RemoteConfig holds configuration for the sidecar provider.
type RemoteConfig struct {
	URL string // Websocket URL of the landmark sidecar (e.g. ws://localhost:9001/landmarks)
}

// Remote is a Provider backed by a landmark-extraction sidecar over a
// websocket. Each Detect call sends one JPEG frame and reads one response.
// The model itself (face mesh inference) runs in the sidecar process.
type Remote struct {
	cfg  RemoteConfig
	mu   sync.Mutex // Serializes the request/response exchange
	conn *websocket.Conn
}

// remoteResponse is the sidecar's per-frame answer.
type remoteResponse struct {
	Found  bool    `json:"found"`
	Points []Point `json:"points,omitempty"`
}

// NewRemote creates a sidecar provider. The connection is established
// lazily on the first Detect and re-dialed after transport errors.
func NewRemote(cfg RemoteConfig) (*Remote, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("landmarks: sidecar URL required")
	}
	return &Remote{cfg: cfg}, nil
}

// Detect sends the frame to the sidecar and parses the landmark response.
func (r *Remote) Detect(frame gocv.Mat) (Set, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn == nil {
		conn, _, err := websocket.DefaultDialer.Dial(r.cfg.URL, nil)
		if err != nil {
			return Set{}, false, fmt.Errorf("landmarks: dial sidecar: %w", err)
		}
		r.conn = conn
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, frame,
		[]int{gocv.IMWriteJpegQuality, jpegQuality})
	if err != nil {
		return Set{}, false, fmt.Errorf("landmarks: encode frame: %w", err)
	}
	defer buf.Close()

	deadline := time.Now().Add(detectTimeout)
	r.conn.SetWriteDeadline(deadline)
	if err := r.conn.WriteMessage(websocket.BinaryMessage, buf.GetBytes()); err != nil {
		r.reset()
		return Set{}, false, fmt.Errorf("landmarks: send frame: %w", err)
	}

	r.conn.SetReadDeadline(deadline)
	_, data, err := r.conn.ReadMessage()
	if err != nil {
		r.reset()
		return Set{}, false, fmt.Errorf("landmarks: read response: %w", err)
	}

	var resp remoteResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return Set{}, false, fmt.Errorf("landmarks: parse response: %w", err)
	}
	if !resp.Found {
		return Set{}, false, nil
	}

	set, err := NewSet(resp.Points)
	if err != nil {
		return Set{}, false, err
	}
	return set, true, nil
}

// reset drops a broken connection so the next Detect re-dials.
func (r *Remote) reset() {
	if r.conn != nil {
		r.conn.Close()
		r.conn = nil
	}
}

// Close releases the sidecar connection.
func (r *Remote) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reset()
	return nil
}
