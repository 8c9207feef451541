package views

import (
	"strings"
)

// CardHeight is the number of lines one card takes
const CardHeight = 4

// CardRenderer handles rendering of result cards
type CardRenderer struct {
	styles *Styles
}

// NewCardRenderer creates a new card renderer
func NewCardRenderer(styles *Styles) *CardRenderer {
	return &CardRenderer{styles: styles}
}

// RenderCard renders one song. A paused card shows the play overlay.
func (r *CardRenderer) RenderCard(card CardState, isSelected bool) string {
	var state string
	if card.Playing {
		state = r.styles.Playing.Render("♪ playing")
	} else {
		state = r.styles.Overlay.Render("▶")
	}

	name := card.Name
	if name == "" {
		name = "Untitled"
	}

	lines := []string{
		state + " " + r.styles.SongName.Render(name),
		r.styles.Artists.Render("♫ " + card.Artists),
		r.styles.Dim.Render("image: ") + orDash(card.Image),
		r.styles.Dim.Render("watch: ") + r.renderLink(card.WatchURL),
	}

	style := r.styles.Card
	if isSelected {
		style = r.styles.CardSelected
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (r *CardRenderer) renderLink(url string) string {
	if url == "" {
		return "-"
	}
	return r.styles.Link.Render(url)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
