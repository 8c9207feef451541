package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{"Search", []helpEntry{
		{"type", "Edit the query; results follow after a short pause"},
		{"ctrl+u", "Clear the query"},
		{"tab/esc", "Switch to browsing results"},
		{"enter", "Browse results when there are any"},
	}},
	{"Browse", []helpEntry{
		{"↑/↓, j/k", "Move between songs"},
		{"g/G", "Go to first/last song"},
		{"enter/space", "Play the selected song"},
		{"s", "Stop playback"},
		{"o", "Open the song on YouTube"},
		{"b", "Open the player page"},
		{"1-9", "Search a suggestion (welcome screen)"},
		{"tab, /", "Back to the search box"},
	}},
	{"Other", []helpEntry{
		{"?", "Show this help"},
		{"q, ctrl+c", "Quit"},
	}},
}

// RenderHelpContent generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContent(pageURL string) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(14)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("MusicStream Help"))
	help.WriteString("\n")

	for _, section := range helpSections {
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, e := range section.entries {
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(e.keys), descStyle.Render(e.desc)))
		}
	}

	help.WriteString(sectionStyle.Render("Player"))
	help.WriteString("\n")
	note := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	if pageURL != "" {
		help.WriteString(note.Render("  Videos play in the browser page at " + pageURL))
		help.WriteString("\n")
		help.WriteString(note.Render("  Only one song plays at a time; starting another pauses the first."))
	} else {
		help.WriteString(note.Render("  The player page is disabled; use o to watch on YouTube."))
	}

	return help.String()
}

// HelpOps shows help outside the bubbletea screen
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Give ov time to leave the alternate screen before bubbletea takes it back
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
