package domain

import "strings"

// Song is one search hit returned by the song-search API.
// ID doubles as the external video identifier.
type Song struct {
	ID             string
	Name           string
	PrimaryArtists string
	Images         []string // image URLs, lowest resolution first
	VideoURL       string   // external watch URL
}

// Thumbnail returns the first image URL, or "" when the song has none
func (s Song) Thumbnail() string {
	if len(s.Images) == 0 {
		return ""
	}
	return s.Images[0]
}

// RequestState is the lifecycle state of the most recent search
type RequestState int

const (
	StateIdle RequestState = iota
	StateLoading
	StateError
	StateReady
)

func (s RequestState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// View is the single screen derived from search state. It is never stored.
type View int

const (
	ViewWelcome View = iota
	ViewLoading
	ViewError
	ViewResults
	ViewNoResults
)

func (v View) String() string {
	switch v {
	case ViewWelcome:
		return "welcome"
	case ViewLoading:
		return "loading"
	case ViewError:
		return "error"
	case ViewResults:
		return "results"
	case ViewNoResults:
		return "no-results"
	default:
		return "unknown"
	}
}

// IsBlank reports whether a query has no searchable content
func IsBlank(query string) bool {
	return strings.TrimSpace(query) == ""
}
