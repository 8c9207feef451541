package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"musicstream/internal/domain"
)

// CardState is one result card as the renderer sees it
type CardState struct {
	Name     string
	Artists  string
	Image    string
	WatchURL string
	Playing  bool
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	View          domain.View
	Query         string
	SearchInput   string // rendered text input
	Searching     bool   // search mode has focus
	Spinner       string
	Error         string
	Tags          []string
	Cards         []CardState
	SelectedIndex int
	StatusMessage string
	PageURL       string
	HelpModel     help.Model
	Keys          help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles     *Styles
	cardRender *CardRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:     styles,
		cardRender: NewCardRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(state))
	content.WriteString("\n")
	content.WriteString(r.renderSearchBox(state))
	content.WriteString("\n\n")

	var body string
	switch state.View {
	case domain.ViewLoading:
		body = r.renderLoading(state)
	case domain.ViewError:
		body = r.styles.StatusError.Render(state.Error)
	case domain.ViewResults:
		body = r.renderResults(state)
	case domain.ViewNoResults:
		body = r.renderNoResults()
	default:
		body = r.renderWelcome(state)
	}
	content.WriteString(body)

	footer := r.renderFooter(state)

	// Push the footer to the bottom of the screen
	currentLines := strings.Count(content.String(), "\n") + 1
	availableLines := state.Height - 2
	if availableLines <= 0 {
		availableLines = 22
	}
	footerLines := strings.Count(footer, "\n") + 1
	if pad := availableLines - currentLines - footerLines; pad > 0 {
		content.WriteString(strings.Repeat("\n", pad))
	} else {
		content.WriteString("\n")
	}
	content.WriteString(footer)

	return r.styles.Main.Render(content.String())
}

func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render("♫ musicstream")
	if state.PageURL == "" {
		return logo
	}
	right := r.styles.Dim.Render("player page: " + state.PageURL)

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

func (r *Renderer) renderSearchBox(state ViewState) string {
	box := r.styles.SearchBoxIdle
	if state.Searching {
		box = r.styles.SearchBox
	}
	width := state.Width - 8
	if width < 20 {
		width = 20
	}
	return box.Width(width).Render("🔍 " + state.SearchInput)
}

func (r *Renderer) renderWelcome(state ViewState) string {
	var b strings.Builder
	b.WriteString(r.styles.Heading.Render("Welcome to MusicStream"))
	b.WriteString("\n")
	b.WriteString(r.styles.Dim.Render("Search for your favorite songs, artists, or albums and discover amazing music from YouTube"))
	if len(state.Tags) > 0 {
		b.WriteString("\n\n")
		tags := make([]string, 0, len(state.Tags))
		for i, tag := range state.Tags {
			tags = append(tags, r.styles.TagKey.Render(fmt.Sprintf("%d", i+1))+" "+r.styles.Tag.Render(tag))
		}
		b.WriteString(strings.Join(tags, "   "))
	}
	return b.String()
}

func (r *Renderer) renderLoading(state ViewState) string {
	return r.styles.StatusLoading.Render(strings.TrimSpace(state.Spinner + " Searching for music..."))
}

func (r *Renderer) renderNoResults() string {
	return r.styles.Heading.Render("No results found") + "\n" +
		r.styles.Dim.Render("Try searching with different keywords or check your spelling")
}

func (r *Renderer) renderResults(state ViewState) string {
	var b strings.Builder
	b.WriteString(r.styles.Heading.Render(fmt.Sprintf("Found %d results", len(state.Cards))))
	b.WriteString("\n\n")

	start, end := r.visibleRange(state)
	if start > 0 {
		b.WriteString(r.styles.Dim.Render("↑ (more above)"))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		b.WriteString(r.cardRender.RenderCard(state.Cards[i], i == state.SelectedIndex))
		b.WriteString("\n")
	}
	if end < len(state.Cards) {
		b.WriteString(r.styles.Dim.Render("↓ (more below)"))
	}
	return strings.TrimRight(b.String(), "\n")
}

// visibleRange keeps the selected card on screen
func (r *Renderer) visibleRange(state ViewState) (int, int) {
	total := len(state.Cards)
	// title, search box, heading, footer and padding
	avail := state.Height - 14
	per := CardHeight + 1
	fit := avail / per
	if fit < 1 {
		fit = 1
	}
	if total <= fit {
		return 0, total
	}
	start := state.SelectedIndex - fit/2
	if start < 0 {
		start = 0
	}
	if start+fit > total {
		start = total - fit
	}
	return start, start + fit
}

func (r *Renderer) renderFooter(state ViewState) string {
	var lines []string
	if state.StatusMessage != "" {
		lines = append(lines, r.styles.Status.Render(state.StatusMessage))
	}
	mode := "browse"
	if state.Searching {
		mode = "search"
	}
	helpLine := r.styles.Mode.Render("["+mode+"]") + " "
	if state.Keys != nil {
		helpLine += state.HelpModel.View(state.Keys)
	} else {
		helpLine += r.styles.Help.Render("Press ? for help")
	}
	lines = append(lines, helpLine)
	return strings.Join(lines, "\n")
}
