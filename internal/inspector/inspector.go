// Package inspector streams Event Records to a dev-time inspector over a
// WebSocket, for cmd/jsaction-inspect. Grounded on the teacher's own
// coder/websocket usage (websocket.go's Bridge/Write pattern) and its
// andybalholm/brotli usage (compression.go), repurposed here to compress
// each outgoing batch rather than a worker's Compression Streams polyfill.
package inspector

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/coder/websocket"

	"github.com/jsaction-go/contract/internal/core"
)

// WireRecord is the JSON-over-brotli shape sent to subscribers; core
// values are flattened to strings since Element/DOMEvent are not
// serializable host objects.
type WireRecord struct {
	EventType     string  `json:"event_type"`
	TargetTag     string  `json:"target_tag"`
	Action        string  `json:"action,omitempty"`
	ActionTag     string  `json:"action_tag,omitempty"`
	TimeStamp     float64 `json:"time_stamp"`
	Global        bool    `json:"global"`
}

// Batch is one WebSocket message payload.
type Batch struct {
	Records []WireRecord `json:"records"`
}

func toWire(record core.EventRecord, global bool) WireRecord {
	w := WireRecord{
		EventType: record.EventType,
		TargetTag: record.TargetElement.TagName(),
		Action:    record.Action,
		TimeStamp: record.TimeStamp,
		Global:    global,
	}
	if record.ActionElement != nil {
		w.ActionTag = record.ActionElement.TagName()
	}
	return w
}

// Server fans out Event Records to every currently connected inspector
// client. It implements jsaction.Dispatcher, so a Contract can DispatchTo
// it directly.
type Server struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}

	writeTimeout time.Duration
}

// NewServer creates an inspector fan-out server.
func NewServer() *Server {
	return &Server{conns: make(map[*websocket.Conn]struct{}), writeTimeout: 5 * time.Second}
}

// Handler upgrades incoming HTTP requests to WebSocket connections and
// registers them as inspector subscribers until the client disconnects.
func (s *Server) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			log.Printf("inspector: accept: %v", err)
			return
		}
		s.mu.Lock()
		s.conns[conn] = struct{}{}
		s.mu.Unlock()

		defer func() {
			s.mu.Lock()
			delete(s.conns, conn)
			s.mu.Unlock()
			_ = conn.CloseNow()
		}()

		// Subscribers are write-only; read (and discard) to detect
		// disconnects and respond to pings.
		for {
			if _, _, err := conn.Read(r.Context()); err != nil {
				return
			}
		}
	}
}

// DispatchOne implements jsaction.Dispatcher.
func (s *Server) DispatchOne(record core.EventRecord) {
	s.broadcast(Batch{Records: []WireRecord{toWire(record, false)}})
}

// DispatchBatch implements jsaction.Dispatcher.
func (s *Server) DispatchBatch(records []core.EventRecord, isGlobal bool) {
	wire := make([]WireRecord, len(records))
	for i, r := range records {
		wire[i] = toWire(r, isGlobal)
	}
	s.broadcast(Batch{Records: wire})
}

func (s *Server) broadcast(batch Batch) {
	payload, err := encode(batch)
	if err != nil {
		log.Printf("inspector: encode: %v", err)
		return
	}

	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
		if err := c.Write(ctx, websocket.MessageBinary, payload); err != nil {
			log.Printf("inspector: write: %v", err)
		}
		cancel()
	}
}

// encode JSON-marshals then brotli-compresses batch.
func encode(batch Batch) ([]byte, error) {
	var buf bytes.Buffer
	bw := brotli.NewWriter(&buf)
	if err := json.NewEncoder(bw).Encode(batch); err != nil {
		return nil, err
	}
	if err := bw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode brotli-decompresses and JSON-unmarshals a message produced by
// encode, for cmd/jsaction-inspect's client side.
func Decode(payload []byte) (Batch, error) {
	var batch Batch
	br := brotli.NewReader(bytes.NewReader(payload))
	err := json.NewDecoder(br).Decode(&batch)
	return batch, err
}
