package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	SearchBox     lipgloss.Style
	SearchBoxIdle lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Heading       lipgloss.Style
	Tag           lipgloss.Style
	TagKey        lipgloss.Style
	Card          lipgloss.Style
	CardSelected  lipgloss.Style
	SongName      lipgloss.Style
	Artists       lipgloss.Style
	Link          lipgloss.Style
	Overlay       lipgloss.Style
	Playing       lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	Mode          lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		SearchBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		SearchBoxIdle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		Tag: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")).
			Padding(0, 1),
		TagKey:        lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Card:          lipgloss.NewStyle().PaddingLeft(2).Border(lipgloss.HiddenBorder(), false, false, false, true),
		CardSelected:  lipgloss.NewStyle().PaddingLeft(2).Border(lipgloss.ThickBorder(), false, false, false, true).BorderForeground(lipgloss.Color("99")),
		SongName:      lipgloss.NewStyle().Bold(true),
		Artists:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Link:          lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Underline(true),
		Overlay:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true), // red, like the play button
		Playing:       lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true),  // green
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		Mode:          lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
	}
}
