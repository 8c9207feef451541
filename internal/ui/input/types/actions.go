package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type ClearTextAction struct{}

func (a ClearTextAction) Type() string { return "clear_text" }

// SelectTagAction picks one of the suggested queries on the welcome screen
type SelectTagAction struct {
	Index int
}

func (a SelectTagAction) Type() string { return "select_tag" }

// Player actions
type PlayAction struct {
	Index int // -1 for current
}

func (a PlayAction) Type() string { return "play" }

type StopAction struct{}

func (a StopAction) Type() string { return "stop" }

type OpenWatchAction struct{}

func (a OpenWatchAction) Type() string { return "open_watch" }

type OpenPageAction struct{}

func (a OpenPageAction) Type() string { return "open_page" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
