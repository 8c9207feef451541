package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"musicstream/internal/ui/input/modes"
	"musicstream/internal/ui/input/types"
)

// Handler routes keys to the active mode and owns the query text input
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model
}

func New() *Handler {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Search for songs, artists or moods"
	ti.CharLimit = 200
	ti.Focus()

	h := &Handler{
		currentMode: types.ModeSearch,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeSearch] = modes.NewSearchMode(h.textInput)
	h.modes[types.ModeBrowse] = modes.NewBrowseMode()

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	var cmd tea.Cmd
	var allActions []types.Action

	if !consumed && !h.isTextMode(h.currentMode) {
		return nil, nil
	}

	for _, action := range actions {
		switch a := action.(type) {
		case types.ChangeModeAction:
			cmd = h.SetMode(a.Mode, ctx)
			allActions = append(allActions, a)
		case types.ClearTextAction:
			h.textInput.SetValue("")
			allActions = append(allActions, types.UpdateTextAction{Text: ""})
		default:
			allActions = append(allActions, action)
		}
	}

	// Keys the search mode did not claim edit the query
	if h.isTextMode(h.currentMode) && !consumed {
		before := h.textInput.Value()
		var textCmd tea.Cmd
		*h.textInput, textCmd = h.textInput.Update(msg)
		cmd = textCmd
		if after := h.textInput.Value(); after != before {
			allActions = append(allActions, types.UpdateTextAction{Text: after})
		}
	}

	return allActions, cmd
}

// SetMode switches modes, running the exit and enter hooks
func (h *Handler) SetMode(mode types.Mode, ctx types.Context) tea.Cmd {
	if mode == h.currentMode {
		return nil
	}
	if old := h.modes[h.currentMode]; old != nil {
		old.Exit(ctx)
	}
	h.currentMode = mode
	if next := h.modes[h.currentMode]; next != nil {
		next.Enter(ctx)
	}
	if h.isTextMode(mode) {
		return textinput.Blink
	}
	return nil
}

// Update forwards non-key messages to the text input so the cursor blinks
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if !h.isTextMode(h.currentMode) {
		return nil
	}
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	return cmd
}

// SetText replaces the query text without emitting actions
func (h *Handler) SetText(text string) {
	h.textInput.SetValue(text)
	h.textInput.CursorEnd()
}

func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

func (h *Handler) TextInput() *textinput.Model {
	return h.textInput
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	return mode == types.ModeSearch
}
