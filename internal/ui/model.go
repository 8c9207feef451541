package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"musicstream/internal/bridge"
	"musicstream/internal/config"
	"musicstream/internal/domain"
	"musicstream/internal/eventbus"
	"musicstream/internal/player"
	"musicstream/internal/search"
	"musicstream/internal/ui/input"
	inputtypes "musicstream/internal/ui/input/types"
	"musicstream/internal/ui/views"
)

const readyMarker = "__READY__"

// PageHost hosts the embedded player frames
type PageHost interface {
	Frame(id string) player.Frame
	SetCards(cards []bridge.Card)
	URL() string
}

// Model represents the UI state
type Model struct {
	cfg     *config.Config
	bus     eventbus.EventBus
	search  *search.Controller
	players *player.Coordinator
	page    PageHost
	opener  URLOpener
	newID   func() string

	width   int
	height  int
	help    help.Model
	keys    keyMap
	spinner spinner.Model

	inputHandler *input.Handler
	renderer     *views.Renderer
	helpRenderer *HelpRenderer

	selected    int
	generation  int
	status      string
	statusSeq   int
	inPagerMode bool

	// Program reference for terminal management
	program *tea.Program
}

// Option configures a Model
type Option func(*Model)

// WithPage plays videos through host
func WithPage(host PageHost) Option {
	return func(m *Model) { m.page = host }
}

// WithOpener replaces the browser launcher
func WithOpener(o URLOpener) Option {
	return func(m *Model) { m.opener = o }
}

// WithEventBus publishes player events on bus
func WithEventBus(bus eventbus.EventBus) Option {
	return func(m *Model) { m.bus = bus }
}

// WithIDGenerator replaces the frame id source
func WithIDGenerator(fn func() string) Option {
	return func(m *Model) { m.newID = fn }
}

// NewModel creates a new UI model
func NewModel(cfg *config.Config, ctrl *search.Controller, coord *player.Coordinator, opts ...Option) *Model {
	m := &Model{
		cfg:          cfg,
		search:       ctrl,
		players:      coord,
		opener:       NewBrowserOps(),
		newID:        uuid.NewString,
		help:         help.New(),
		keys:         newKeyMap(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		inputHandler: input.New(),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		actions, cmd := m.inputHandler.HandleKey(msg, m.inputContext())

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		m.syncCards()
		return m, tea.Batch(cmds...)

	case FrameMsg:
		if _, err := m.players.Dispatch(msg.FrameID, msg.Message); err != nil {
			log.WithError(err).WithField("frame", msg.FrameID).Debug("Dropping message for replaced frame")
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case openedMsg:
		if msg.err != nil {
			log.WithError(msg.err).WithField("url", msg.url).Warn("Failed to open browser")
			return m, m.setStatus("Could not open browser: " + msg.err.Error())
		}
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			log.WithError(msg.err).Warn("Help pager failed")
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}

	// Debounce and search result messages belong to the controller
	cmds := []tea.Cmd{m.search.Update(msg), m.inputHandler.Update(msg)}
	m.syncCards()
	return m, tea.Batch(cmds...)
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.UpdateTextAction:
		return m.search.SetQuery(a.Text)

	case inputtypes.SelectTagAction:
		tags := m.cfg.Search.Tags
		if a.Index < 0 || a.Index >= len(tags) {
			return nil
		}
		m.inputHandler.SetText(tags[a.Index])
		return m.search.SelectTag(tags[a.Index])

	case inputtypes.NavigateAction:
		m.navigate(a.Direction)
		return nil

	case inputtypes.PlayAction:
		return m.togglePlay(a.Index)

	case inputtypes.StopAction:
		if err := m.players.Stop(); err != nil {
			log.WithError(err).Warn("Failed to stop playback")
			return m.setStatus("Could not reach the player page")
		}
		return nil

	case inputtypes.OpenWatchAction:
		song, ok := m.selectedSong()
		if !ok {
			return nil
		}
		return m.openURL(watchURL(song))

	case inputtypes.OpenPageAction:
		if m.page == nil || m.page.URL() == "" {
			return m.setStatus("The player page is disabled")
		}
		return m.openURL(m.page.URL())

	case inputtypes.ToggleHelpAction:
		if m.program == nil {
			return nil
		}
		return m.fetchHelpPager(m.helpRenderer.RenderHelpContent(m.pageURL()))

	case inputtypes.QuitAction:
		m.Shutdown()
		return tea.Quit
	}
	return nil
}

// Shutdown stops playback and the search controller. Safe to call twice.
func (m *Model) Shutdown() {
	m.search.Close()
	if err := m.players.Stop(); err != nil {
		log.WithError(err).Debug("Failed to pause players on shutdown")
	}
}

func (m *Model) togglePlay(index int) tea.Cmd {
	if index < 0 {
		index = m.selected
	}
	adapters := m.players.Adapters()
	if index >= len(adapters) {
		return nil
	}
	a := adapters[index]

	var err error
	if a.Playing() {
		err = m.players.Stop()
	} else {
		err = m.players.Play(a.ID())
	}
	if err != nil {
		log.WithError(err).WithField("frame", a.ID()).Warn("Player command failed")
		if m.page == nil {
			return m.setStatus("The player page is disabled; press o to watch on YouTube")
		}
		return m.setStatus("Could not reach the player page")
	}
	return nil
}

func (m *Model) navigate(direction string) {
	total := len(m.search.Songs())
	if total == 0 {
		m.selected = 0
		return
	}
	switch direction {
	case "up":
		if m.selected > 0 {
			m.selected--
		}
	case "down":
		if m.selected < total-1 {
			m.selected++
		}
	case "home":
		m.selected = 0
	case "end":
		m.selected = total - 1
	}
}

// syncCards rebuilds the players whenever the result set is replaced
func (m *Model) syncCards() {
	gen := m.search.Generation()
	if gen == m.generation {
		return
	}
	m.generation = gen
	m.selected = 0

	songs := m.search.Songs()
	adapters := make([]*player.Adapter, 0, len(songs))
	cards := make([]bridge.Card, 0, len(songs))
	for _, song := range songs {
		id := m.newID()
		var frame player.Frame
		if m.page != nil {
			frame = m.page.Frame(id)
		}
		opts := []player.AdapterOption{
			player.WithOrigin(m.cfg.Player.Origin),
			player.WithEmbedHost(m.cfg.Player.EmbedHost),
		}
		if m.bus != nil {
			opts = append(opts, player.WithBus(m.bus))
		}
		a := player.NewAdapter(id, song.ID, frame, append(opts, m.players.Hooks()...)...)
		adapters = append(adapters, a)
		cards = append(cards, bridge.Card{
			FrameID:  id,
			Title:    song.Name,
			Artists:  song.PrimaryArtists,
			Image:    song.Thumbnail(),
			EmbedURL: a.EmbedURL(),
			WatchURL: watchURL(song),
		})
	}
	m.players.Reset(adapters)
	if m.page != nil {
		m.page.SetCards(cards)
	}
	log.WithFields(log.Fields{"generation": gen, "cards": len(cards)}).Debug("Rebuilt players")
}

func (m *Model) selectedSong() (domain.Song, bool) {
	songs := m.search.Songs()
	if m.search.View() != domain.ViewResults || m.selected >= len(songs) {
		return domain.Song{}, false
	}
	return songs[m.selected], true
}

func (m *Model) openURL(url string) tea.Cmd {
	opener := m.opener
	return func() tea.Msg {
		return openedMsg{url: url, err: opener.Open(url)}
	}
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	program := m.program
	return func() tea.Msg {
		program.Send(pauseRenderingMsg{})
		err := NewHelpOps(program).ShowHelpInPager(helpContent)
		program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

func (m *Model) setStatus(text string) tea.Cmd {
	m.status = text
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (m *Model) pageURL() string {
	if m.page == nil {
		return ""
	}
	return m.page.URL()
}

func (m *Model) inputContext() *input.ModelContext {
	return &input.ModelContext{
		CurrentView:   m.search.View(),
		SelectedIndex: m.selected,
		Cards:         len(m.players.Adapters()),
		Tags:          len(m.cfg.Search.Tags),
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	view := m.search.View()
	adapters := m.players.Adapters()
	songs := m.search.Songs()
	cards := make([]views.CardState, 0, len(songs))
	for i, song := range songs {
		playing := i < len(adapters) && adapters[i].Playing()
		cards = append(cards, views.CardState{
			Name:     song.Name,
			Artists:  song.PrimaryArtists,
			Image:    song.Thumbnail(),
			WatchURL: watchURL(song),
			Playing:  playing,
		})
	}

	searching := m.inputHandler.CurrentMode() == inputtypes.ModeSearch
	var keys help.KeyMap = browseKeys{k: m.keys, welcome: view == domain.ViewWelcome}
	if searching {
		keys = searchKeys{k: m.keys}
	}

	out := m.renderer.Render(views.ViewState{
		Width:         m.width,
		Height:        m.height,
		View:          view,
		Query:         m.search.Query(),
		SearchInput:   m.inputHandler.TextInput().View(),
		Searching:     searching,
		Spinner:       m.spinner.View(),
		Error:         m.search.Err(),
		Tags:          m.cfg.Search.Tags,
		Cards:         cards,
		SelectedIndex: m.selected,
		StatusMessage: m.status,
		PageURL:       m.pageURL(),
		HelpModel:     m.help,
		Keys:          keys,
	})
	if m.cfg.E2E {
		out += "\n" + readyMarker
	}
	return out
}

func watchURL(song domain.Song) string {
	if song.VideoURL != "" {
		return song.VideoURL
	}
	if song.ID == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + song.ID
}
