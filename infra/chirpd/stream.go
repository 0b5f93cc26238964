package chirpd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"

	"chirpterm/app"
	"chirpterm/domain"
)

// snapshotFrame is one websocket message from the comment stream: the
// chirp's FULL flat comment list after any change, never a diff.
type snapshotFrame struct {
	ChirpID  string           `json:"chirp_id"`
	Comments []commentPayload `json:"comments"`
}

// commentStream is a live comment subscription over a websocket.
type commentStream struct {
	conn    *websocket.Conn
	updates chan []domain.Comment
	done    chan struct{}

	closeOnce sync.Once

	mu  sync.Mutex
	err error
}

// SubscribeToComments opens a websocket to the chirp's comment stream.
// Every frame carries the full updated flat list. The returned
// subscription must be closed by the caller.
func (s *commentService) SubscribeToComments(ctx context.Context, chirpID string) (app.Subscription, error) {
	token, err := s.client.Token()
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}

	streamURL := s.client.StreamURL(
		fmt.Sprintf("/api/v1/chirps/%s/comments/stream", url.PathEscape(chirpID)))
	header := http.Header{"Authorization": {"Bearer " + token}}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, streamURL, header)
	if err != nil {
		return nil, fmt.Errorf("dialing comment stream: %w", err)
	}

	stream := &commentStream{
		conn:    conn,
		updates: make(chan []domain.Comment),
		done:    make(chan struct{}),
	}
	go stream.readLoop(chirpID)
	return stream, nil
}

func (cs *commentStream) readLoop(chirpID string) {
	defer close(cs.updates)
	for {
		var frame snapshotFrame
		if err := cs.conn.ReadJSON(&frame); err != nil {
			cs.setErr(err)
			return
		}
		if frame.ChirpID != chirpID {
			continue // Server bug or crossed wires; never ours to apply.
		}
		select {
		case cs.updates <- commentsToDomain(frame.Comments):
		case <-cs.done:
			return
		}
	}
}

// Updates yields full flat snapshots; closed when the stream ends.
func (cs *commentStream) Updates() <-chan []domain.Comment {
	return cs.updates
}

// Err reports why the stream ended, nil after a clean Close.
func (cs *commentStream) Err() error {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.err
}

// Close unsubscribes. Safe to call more than once.
func (cs *commentStream) Close() error {
	var err error
	cs.closeOnce.Do(func() {
		close(cs.done)
		err = cs.conn.Close()
	})
	return err
}

func (cs *commentStream) setErr(err error) {
	select {
	case <-cs.done:
		return // Closed by the caller; the read error is just teardown noise.
	default:
	}
	cs.mu.Lock()
	cs.err = err
	cs.mu.Unlock()
}
