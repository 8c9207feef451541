// Package search owns the query, the debounced search-on-type cycle and the
// request state of the song search.
//
// The Controller is driven from a single bubbletea update loop: SetQuery
// returns a tagged tick command, and the tick and result messages come back
// through Update. Only the tick carrying the latest tag issues a search, and
// only the response carrying the latest request token is applied.
package search

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"musicstream/internal/domain"
	"musicstream/internal/eventbus"
	"musicstream/internal/searchapi"
)

// DefaultDebounce is the quiet period after the last keystroke
const DefaultDebounce = 500 * time.Millisecond

// Messages shown to the user
const (
	MsgNoSongs      = "No songs found"
	MsgConnectivity = "Failed to connect to server. Please try again later."
)

// Searcher performs one search request
type Searcher interface {
	Search(ctx context.Context, query string) (*searchapi.Response, error)
}

// debounceMsg fires when a quiet period elapses
type debounceMsg struct {
	tag   int
	query string
}

// resultMsg carries the outcome of one request back to the update loop
type resultMsg struct {
	token   uint64
	query   string
	resp    *searchapi.Response
	err     error
	elapsed time.Duration
}

// Controller implements the search lifecycle
type Controller struct {
	api      Searcher
	bus      eventbus.EventBus
	debounce time.Duration
	timeout  time.Duration

	query  string
	songs  []domain.Song
	state  domain.RequestState
	errMsg string

	tag        int    // bumped by every SetQuery
	token      uint64 // bumped by every Search
	cancel     context.CancelFunc
	generation int // bumped whenever songs is replaced
	closed     bool
}

// Option configures a Controller
type Option func(*Controller)

// WithDebounce overrides the quiet period
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = d }
}

// WithTimeout bounds each request
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// WithEventBus publishes search lifecycle events to bus
func WithEventBus(bus eventbus.EventBus) Option {
	return func(c *Controller) { c.bus = bus }
}

// NewController creates a controller in the Idle state
func NewController(api Searcher, opts ...Option) *Controller {
	c := &Controller{
		api:      api,
		debounce: DefaultDebounce,
		state:    domain.StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetQuery updates the query immediately and restarts the debounce window.
// The returned command must be run by the caller's event loop.
func (c *Controller) SetQuery(text string) tea.Cmd {
	c.query = text
	c.tag++
	tag := c.tag
	return tea.Tick(c.debounce, func(time.Time) tea.Msg {
		return debounceMsg{tag: tag, query: text}
	})
}

// SelectTag runs a suggested query through the same debounce pipeline
func (c *Controller) SelectTag(tag string) tea.Cmd {
	return c.SetQuery(tag)
}

// Search starts a request for text right away. A blank text resets the
// controller to Idle and returns nil without touching the network.
func (c *Controller) Search(text string) tea.Cmd {
	if c.closed {
		return nil
	}

	// Anything in flight is superseded from here on
	c.token++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		c.replaceSongs(nil)
		c.errMsg = ""
		c.state = domain.StateIdle
		return nil
	}

	c.state = domain.StateLoading
	c.errMsg = ""

	token := c.token
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), c.timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	c.cancel = cancel

	log.WithFields(log.Fields{"query": trimmed, "token": token}).Info("Issuing search")
	c.publish(domain.SearchStartedEvent{Query: trimmed, Token: token})

	api := c.api
	return func() tea.Msg {
		defer cancel()
		start := time.Now()
		resp, err := api.Search(ctx, trimmed)
		return resultMsg{
			token:   token,
			query:   trimmed,
			resp:    resp,
			err:     err,
			elapsed: time.Since(start),
		}
	}
}

// Update handles the controller's own messages and ignores everything else
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case debounceMsg:
		if c.closed || msg.tag != c.tag {
			return nil
		}
		return c.Search(msg.query)

	case resultMsg:
		c.applyResult(msg)
	}
	return nil
}

func (c *Controller) applyResult(msg resultMsg) {
	fields := log.Fields{"query": msg.query, "token": msg.token}
	if c.closed {
		log.WithFields(fields).Debug("Dropping search result after close")
		return
	}
	if msg.token != c.token {
		log.WithFields(fields).Info("Discarding stale search result")
		c.publish(domain.SearchDiscardedEvent{Query: msg.query, Token: msg.token})
		return
	}
	c.cancel = nil

	switch {
	case msg.err != nil || msg.resp == nil:
		log.WithFields(fields).WithError(msg.err).Error("Search request failed")
		c.fail(MsgConnectivity)
		c.publish(domain.SearchFailedEvent{
			Query: msg.query, Token: msg.token, Message: MsgConnectivity,
			Transport: true, Err: msg.err, Duration: msg.elapsed,
		})

	case msg.resp.Status:
		c.replaceSongs(msg.resp.Songs)
		c.errMsg = ""
		c.state = domain.StateReady
		log.WithFields(fields).WithField("results", len(c.songs)).Info("Search completed")
		c.publish(domain.SearchCompletedEvent{
			Query: msg.query, Token: msg.token, Results: len(c.songs), Duration: msg.elapsed,
		})

	default:
		message := msg.resp.Message
		if message == "" {
			message = MsgNoSongs
		}
		log.WithFields(fields).WithField("message", message).Info("Search returned no songs")
		c.fail(message)
		c.publish(domain.SearchFailedEvent{
			Query: msg.query, Token: msg.token, Message: message, Duration: msg.elapsed,
		})
	}
}

func (c *Controller) fail(message string) {
	c.errMsg = message
	c.replaceSongs(nil)
	c.state = domain.StateError
}

func (c *Controller) replaceSongs(songs []domain.Song) {
	if len(songs) == 0 && len(c.songs) == 0 {
		c.songs = nil
		return
	}
	c.songs = songs
	c.generation++
}

func (c *Controller) publish(event domain.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(event)
	}
}

// Close stops the controller; later results are dropped without effect
func (c *Controller) Close() {
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Query returns the current query text
func (c *Controller) Query() string { return c.query }

// Songs returns the current result set
func (c *Controller) Songs() []domain.Song { return c.songs }

// State returns the request state
func (c *Controller) State() domain.RequestState { return c.state }

// Err returns the user-facing error message, "" when there is none
func (c *Controller) Err() string { return c.errMsg }

// Loading reports whether a request is in flight
func (c *Controller) Loading() bool { return c.state == domain.StateLoading }

// Generation changes every time the result set is replaced
func (c *Controller) Generation() int { return c.generation }

// View derives the one screen to render. The checks run in priority order.
func (c *Controller) View() domain.View {
	blank := domain.IsBlank(c.query)
	switch {
	case c.state == domain.StateLoading:
		return domain.ViewLoading
	case c.state == domain.StateError:
		return domain.ViewError
	case c.state == domain.StateReady && len(c.songs) > 0:
		return domain.ViewResults
	case !blank && len(c.songs) == 0 && c.errMsg == "":
		return domain.ViewNoResults
	default:
		// Idle and Ready both reach here only with a blank query and no songs
		return domain.ViewWelcome
	}
}
