package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"musicstream/internal/domain"
	"musicstream/internal/ui/input/types"
)

// BrowseMode moves between result cards and drives playback
type BrowseMode struct{}

func NewBrowseMode() *BrowseMode {
	return &BrowseMode{}
}

func (m *BrowseMode) Name() string {
	return "browse"
}

func (m *BrowseMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *BrowseMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *BrowseMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{}}, true
	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	case tea.KeyTab:
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true
	case tea.KeyEnter, tea.KeySpace:
		if ctx.CardCount() == 0 {
			return nil, true
		}
		return []types.Action{types.PlayAction{Index: -1}}, true
	}

	key := msg.String()
	switch key {
	case "q":
		return []types.Action{types.QuitAction{}}, true
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case "g":
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true
	case "s":
		return []types.Action{types.StopAction{}}, true
	case "o":
		if ctx.CardCount() == 0 {
			return nil, true
		}
		return []types.Action{types.OpenWatchAction{}}, true
	case "b":
		return []types.Action{types.OpenPageAction{}}, true
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	}

	// Suggested tags are numbered from 1 on the welcome screen
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' && ctx.View() == domain.ViewWelcome {
		idx := int(key[0] - '1')
		if idx < ctx.TagCount() {
			return []types.Action{types.SelectTagAction{Index: idx}}, true
		}
	}
	return nil, false
}
