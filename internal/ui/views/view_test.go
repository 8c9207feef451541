package views

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"musicstream/internal/domain"
)

func TestRenderPicksOneView(t *testing.T) {
	r := NewRenderer()
	base := ViewState{Width: 100, Height: 40, Tags: []string{"Yoga Music", "Classical"}}

	cases := []struct {
		view    domain.View
		setup   func(*ViewState)
		want    string
		notWant []string
	}{
		{domain.ViewWelcome, nil, "Welcome to MusicStream", []string{"Searching", "No results"}},
		{domain.ViewLoading, nil, "Searching for music...", []string{"Welcome"}},
		{domain.ViewError, func(s *ViewState) { s.Error = "No songs found" }, "No songs found", []string{"Welcome", "Found"}},
		{domain.ViewNoResults, nil, "No results found", []string{"Welcome"}},
		{domain.ViewResults, func(s *ViewState) {
			s.Cards = []CardState{{Name: "Raga", Artists: "Ravi Shankar"}}
		}, "Found 1 results", []string{"Welcome", "No results"}},
	}
	for _, tc := range cases {
		state := base
		state.View = tc.view
		if tc.setup != nil {
			tc.setup(&state)
		}
		out := r.Render(state)
		assert.Contains(t, out, tc.want, tc.view.String())
		for _, nw := range tc.notWant {
			assert.NotContains(t, out, nw, tc.view.String())
		}
	}
}

func TestWelcomeNumbersTags(t *testing.T) {
	out := NewRenderer().Render(ViewState{View: domain.ViewWelcome, Tags: []string{"Yoga Music", "Classical"}})
	assert.Contains(t, out, "1")
	assert.Contains(t, out, "Yoga Music")
	assert.Contains(t, out, "Classical")
}

func TestCardShowsOverlayWhenPaused(t *testing.T) {
	r := NewCardRenderer(NewStyles())

	paused := r.RenderCard(CardState{Name: "Song", Artists: "A", WatchURL: "https://w"}, false)
	assert.Contains(t, paused, "▶")
	assert.NotContains(t, paused, "playing")
	assert.Contains(t, paused, "https://w")

	playing := r.RenderCard(CardState{Name: "Song", Playing: true}, true)
	assert.NotContains(t, playing, "▶")
	assert.Contains(t, playing, "♪ playing")
	assert.Contains(t, playing, "watch:")
}

func TestResultsScrollToSelection(t *testing.T) {
	cards := make([]CardState, 20)
	for i := range cards {
		cards[i] = CardState{Name: "song-" + string(rune('a'+i))}
	}
	out := NewRenderer().Render(ViewState{View: domain.ViewResults, Height: 30, Width: 80, Cards: cards, SelectedIndex: 19})

	assert.Contains(t, out, "song-t")
	assert.NotContains(t, out, "song-a")
	assert.True(t, strings.Contains(out, "more above"))
}
