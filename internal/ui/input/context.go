package input

import "musicstream/internal/domain"

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	CurrentView   domain.View
	SelectedIndex int
	Cards         int
	Tags          int
}

func (c *ModelContext) View() domain.View { return c.CurrentView }

func (c *ModelContext) CurrentIndex() int { return c.SelectedIndex }

// CardCount returns the number of playable cards on screen
func (c *ModelContext) CardCount() int {
	if c.CurrentView != domain.ViewResults {
		return 0
	}
	return c.Cards
}

func (c *ModelContext) TagCount() int { return c.Tags }
