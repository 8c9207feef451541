// Package bridge hosts the page that embeds the video frames and relays
// cross-document messages between those frames and the terminal program.
//
// Outbound player commands travel to the page over a server-sent event
// stream; the page posts every message its frames emit back to the bridge,
// which hands them to a sink without interpreting them.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"musicstream/internal/player"
)

// ErrClosed is returned by frames once the bridge has shut down
var ErrClosed = errors.New("bridge closed")

const subscriberBuffer = 32

// Card is one rendered result on the page
type Card struct {
	FrameID  string
	Title    string
	Artists  string
	Image    string
	EmbedURL string
	WatchURL string
}

// Sink receives inbound frame messages
type Sink func(frameID string, msg player.Message)

// Event is the payload of one "command" server-sent event
type Event struct {
	Frame  string `json:"frame"`
	Data   string `json:"data"`
	Target string `json:"target"`
}

type sse struct {
	name string
	data string
}

// Server is the local bridge HTTP server
type Server struct {
	addr    string
	sink    Sink
	metrics *Metrics

	mu      sync.Mutex
	cards   []Card
	known   map[string]struct{}
	subs    map[uint64]chan sse
	nextSub uint64
	closed  bool

	srv *http.Server
	ln  net.Listener
}

// Option configures a Server
type Option func(*Server)

// WithSink sets the receiver of inbound frame messages
func WithSink(sink Sink) Option {
	return func(s *Server) { s.sink = sink }
}

// WithMetrics serves m on /metrics and records bridge traffic in it
func WithMetrics(m *Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// New creates a bridge that will listen on addr
func New(addr string, opts ...Option) *Server {
	s := &Server{
		addr:  addr,
		known: make(map[string]struct{}),
		subs:  make(map[uint64]chan sse),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the bridge routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /events", s.handleEvents)
	mux.HandleFunc("POST /frames/{id}/messages", s.handleMessage)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}
	return mux
}

// Start binds the listener and serves in the background
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("bridge listen %s: %w", s.addr, err)
	}
	s.ln = ln
	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Bridge server stopped")
		}
	}()
	log.WithField("addr", ln.Addr().String()).Info("Bridge listening")
	return nil
}

// URL returns the page address once Start has succeeded
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String() + "/"
}

// Shutdown ends every event stream and stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
	s.mu.Unlock()

	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// Frame returns the transport for frame id
func (s *Server) Frame(id string) player.Frame {
	return &frame{server: s, id: id}
}

// SetCards replaces the cards on the page and asks open pages to reload
func (s *Server) SetCards(cards []Card) {
	s.mu.Lock()
	s.cards = append([]Card(nil), cards...)
	s.known = make(map[string]struct{}, len(cards))
	for _, c := range cards {
		s.known[c.FrameID] = struct{}{}
	}
	s.mu.Unlock()

	s.broadcast(sse{name: "reload", data: "{}"})
}

// Cards returns a copy of the current cards
func (s *Server) Cards() []Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Card(nil), s.cards...)
}

func (s *Server) post(frameID, data, target string) error {
	b, err := json.Marshal(Event{Frame: frameID, Data: data, Target: target})
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrClosed
	}
	s.broadcast(sse{name: "command", data: string(b)})
	return nil
}

// broadcast never blocks; a page that falls behind loses events
func (s *Server) broadcast(ev sse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ch := range s.subs {
		select {
		case ch <- ev:
		default:
			log.WithFields(log.Fields{"subscriber": id, "event": ev.name}).Warn("Dropping bridge event for slow page")
			if s.metrics != nil {
				s.metrics.eventsDropped.Inc()
			}
		}
	}
}

func (s *Server) subscribe() (uint64, <-chan sse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, nil, false
	}
	s.nextSub++
	ch := make(chan sse, subscriberBuffer)
	s.subs[s.nextSub] = ch
	if s.metrics != nil {
		s.metrics.viewers.Inc()
	}
	return s.nextSub, ch, true
}

func (s *Server) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok := s.subs[id]; ok {
		close(ch)
		delete(s.subs, id)
	}
	if s.metrics != nil {
		s.metrics.viewers.Dec()
	}
}

func (s *Server) knows(frameID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.known[frameID]
	return ok
}

type frame struct {
	server *Server
	id     string
}

func (f *frame) PostMessage(data, targetOrigin string) error {
	return f.server.post(f.id, data, targetOrigin)
}
