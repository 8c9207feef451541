package player

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// ErrUnknownFrame is returned for ids the coordinator does not hold
var ErrUnknownFrame = errors.New("unknown frame")

// Coordinator owns the authoritative "should play" flag of every card and
// keeps at most one of them set.
type Coordinator struct {
	adapters map[string]*Adapter
	order    []string
	active   string
}

// NewCoordinator creates an empty coordinator
func NewCoordinator() *Coordinator {
	return &Coordinator{adapters: make(map[string]*Adapter)}
}

// Hooks returns the adapter options that wire an adapter back to c. Pass
// them to NewAdapter before handing the adapter to Reset.
func (c *Coordinator) Hooks() []AdapterOption {
	return []AdapterOption{
		OnPlay(func(id string) { c.activate(id) }),
		OnStatus(c.statusChanged),
	}
}

// Reset replaces the card set. The previously active card, if any, is paused
// first so a replaced frame does not keep playing unseen.
func (c *Coordinator) Reset(adapters []*Adapter) {
	if prev, ok := c.adapters[c.active]; ok {
		if err := prev.Sync(false); err != nil {
			log.WithError(err).Warn("Failed to pause replaced player")
		}
	}
	c.adapters = make(map[string]*Adapter, len(adapters))
	c.order = c.order[:0]
	c.active = ""
	for _, a := range adapters {
		c.adapters[a.ID()] = a
		c.order = append(c.order, a.ID())
	}
}

// Adapter returns the adapter for id
func (c *Coordinator) Adapter(id string) (*Adapter, bool) {
	a, ok := c.adapters[id]
	return a, ok
}

// Adapters returns the adapters in card order
func (c *Coordinator) Adapters() []*Adapter {
	out := make([]*Adapter, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.adapters[id])
	}
	return out
}

// Active returns the id of the card allowed to play, "" when none
func (c *Coordinator) Active() string { return c.active }

// ShouldPlay returns the authoritative flag for id
func (c *Coordinator) ShouldPlay(id string) bool { return id != "" && id == c.active }

// Play clicks the overlay of card id
func (c *Coordinator) Play(id string) error {
	a, ok := c.adapters[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFrame, id)
	}
	return a.ClickOverlay()
}

// Stop clears the authoritative flag of the active card
func (c *Coordinator) Stop() error {
	return c.setActive("")
}

// Dispatch routes a frame message to its adapter
func (c *Coordinator) Dispatch(frameID string, msg Message) (bool, error) {
	a, ok := c.adapters[frameID]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownFrame, frameID)
	}
	return a.HandleMessage(msg), nil
}

func (c *Coordinator) activate(id string) {
	if err := c.setActive(id); err != nil {
		log.WithError(err).WithField("frame", id).Warn("Failed to pause other players")
	}
}

// statusChanged follows the frame: a frame that starts on its own becomes
// the active card, and the active card pausing clears the slot.
func (c *Coordinator) statusChanged(id string, playing bool) {
	switch {
	case playing && id != c.active:
		c.activate(id)
	case !playing && id == c.active:
		c.active = ""
	}
}

// setActive flips the authoritative flags and syncs every adapter to them
func (c *Coordinator) setActive(id string) error {
	c.active = id
	var errs []error
	for _, fid := range c.order {
		if err := c.adapters[fid].Sync(c.ShouldPlay(fid)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
