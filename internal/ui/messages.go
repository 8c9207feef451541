package ui

import (
	"time"

	"musicstream/internal/player"
)

// FrameMsg carries one message posted by an embedded player frame
type FrameMsg struct {
	FrameID string
	Message player.Message
}

// openedMsg reports the result of opening a URL in the browser
type openedMsg struct {
	url string
	err error
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// clearStatusMsg clears the status line if it still belongs to seq
type clearStatusMsg struct {
	seq int
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}

const statusTTL = 3 * time.Second
