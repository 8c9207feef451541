// Package player adapts an externally hosted video frame to a simple
// play/pause contract.
//
// An Adapter talks to its frame only through cross-document messages: it
// posts JSON commands and reads JSON status events. Local state is
// optimistic and is corrected by whatever the frame reports, so it is
// eventually consistent with the external player rather than authoritative.
// Adapters and the Coordinator are not safe for concurrent use; drive them
// from one event loop.
package player

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"musicstream/internal/domain"
	"musicstream/internal/eventbus"
)

// Frame is the messaging channel to one embedded player
type Frame interface {
	PostMessage(data, targetOrigin string) error
}

// Adapter wraps one embedded video
type Adapter struct {
	id        string
	videoID   string
	embedHost string
	origin    string
	frame     Frame
	bus       eventbus.EventBus

	playing bool

	onPlay   func(id string)
	onStatus func(id string, playing bool)
}

// AdapterOption configures an Adapter
type AdapterOption func(*Adapter)

// WithOrigin sets the origin status messages must come from
func WithOrigin(origin string) AdapterOption {
	return func(a *Adapter) { a.origin = origin }
}

// WithEmbedHost sets the host used to build the embed URL
func WithEmbedHost(host string) AdapterOption {
	return func(a *Adapter) { a.embedHost = host }
}

// WithBus publishes playback events
func WithBus(bus eventbus.EventBus) AdapterOption {
	return func(a *Adapter) { a.bus = bus }
}

// OnPlay registers the parent's notification for user-initiated play
func OnPlay(fn func(id string)) AdapterOption {
	return func(a *Adapter) { a.onPlay = fn }
}

// OnStatus registers the parent's notification for frame-reported changes
func OnStatus(fn func(id string, playing bool)) AdapterOption {
	return func(a *Adapter) { a.onStatus = fn }
}

// NewAdapter creates a paused adapter for videoID. id identifies the frame.
func NewAdapter(id, videoID string, frame Frame, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		id:        id,
		videoID:   videoID,
		embedHost: DefaultOrigin,
		origin:    DefaultOrigin,
		frame:     frame,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ID returns the frame id
func (a *Adapter) ID() string { return a.id }

// VideoID returns the external video identifier
func (a *Adapter) VideoID() string { return a.videoID }

// Playing reports the local playback state
func (a *Adapter) Playing() bool { return a.playing }

// OverlayVisible reports whether the click-to-play overlay is shown
func (a *Adapter) OverlayVisible() bool { return !a.playing }

// EmbedURL returns the iframe source for this video
func (a *Adapter) EmbedURL() string { return EmbedURL(a.embedHost, a.videoID) }

// Play asks the frame to start, marks local state playing and tells the
// parent. The command is sent on every call.
func (a *Adapter) Play() error {
	if err := a.send(FuncPlay); err != nil {
		return err
	}
	a.setPlaying(true)
	if a.onPlay != nil {
		a.onPlay(a.id)
	}
	return nil
}

// ClickOverlay plays the video when the overlay is showing
func (a *Adapter) ClickOverlay() error {
	if !a.OverlayVisible() {
		return nil
	}
	return a.Play()
}

// Sync brings the frame in line with the parent's authoritative flag. It
// sends a command only when the flag differs from local state.
func (a *Adapter) Sync(shouldPlay bool) error {
	if shouldPlay == a.playing {
		return nil
	}
	fn := FuncPause
	if shouldPlay {
		fn = FuncPlay
	}
	if err := a.send(fn); err != nil {
		return err
	}
	a.setPlaying(shouldPlay)
	return nil
}

// HandleMessage applies a status message from the frame. It returns true
// when local state changed. Messages from any origin other than the
// expected one, and payloads that do not parse, are ignored.
func (a *Adapter) HandleMessage(msg Message) bool {
	fields := log.Fields{"frame": a.id, "origin": msg.Origin}
	if msg.Origin != a.origin {
		log.WithFields(fields).Debug("Ignoring frame message from foreign origin")
		a.reject(msg.Origin, "origin")
		return false
	}

	state, ok, err := parseStatus(msg.Data)
	if err != nil {
		log.WithFields(fields).WithError(err).Debug("Ignoring unparseable frame message")
		a.reject(msg.Origin, "payload")
		return false
	}
	if !ok {
		return false
	}

	var playing bool
	switch state {
	case StatePlaying:
		playing = true
	case StatePaused:
		playing = false
	default:
		return false
	}
	if playing == a.playing {
		return false
	}

	a.setPlaying(playing)
	if a.onStatus != nil {
		a.onStatus(a.id, playing)
	}
	return true
}

func (a *Adapter) send(fn string) error {
	if a.frame == nil {
		return fmt.Errorf("player %s: no frame attached", a.id)
	}
	if err := a.frame.PostMessage(EncodeCommand(fn), TargetAny); err != nil {
		return fmt.Errorf("player %s: post %s: %w", a.id, fn, err)
	}
	log.WithFields(log.Fields{"frame": a.id, "func": fn}).Debug("Posted player command")
	if a.bus != nil {
		a.bus.Publish(domain.PlayerCommandSentEvent{FrameID: a.id, Func: fn})
	}
	return nil
}

func (a *Adapter) setPlaying(playing bool) {
	if a.playing == playing {
		return
	}
	a.playing = playing
	if a.bus != nil {
		a.bus.Publish(domain.PlaybackChangedEvent{FrameID: a.id, VideoID: a.videoID, Playing: playing})
	}
}

func (a *Adapter) reject(origin, reason string) {
	if a.bus != nil {
		a.bus.Publish(domain.FrameMessageRejectedEvent{FrameID: a.id, Origin: origin, Reason: reason})
	}
}
