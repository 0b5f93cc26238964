package feed

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chirpterm/app"
	"chirpterm/domain"
	"chirpterm/tui/common"
)

// --- Messages ---

// ChirpsLoadedMsg is sent when the timeline fetch completes successfully.
type ChirpsLoadedMsg struct {
	Chirps  []domain.Chirp
	Authors map[string]domain.User
}

// ChirpsErrorMsg is sent when the timeline fetch fails.
type ChirpsErrorMsg struct {
	Err error
}

// OpenThreadMsg asks the root model to open the thread view for a chirp.
type OpenThreadMsg struct {
	Chirp domain.Chirp
}

// --- Model ---

// Model holds the state for the chirp timeline view.
type Model struct {
	chirpSvc app.ChirpService
	userSvc  app.UserService

	chirps  []domain.Chirp
	authors map[string]domain.User
	cursor  int
	limit   int
	loading bool
	err     error

	keys    common.KeyMap
	spinner spinner.Model
	width   int
	height  int
}

// New creates a feed model with injected dependencies.
func New(chirps app.ChirpService, users app.UserService, limit int) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD7FF"))

	return Model{
		chirpSvc: chirps,
		userSvc:  users,
		limit:    limit,
		authors:  map[string]domain.User{},
		keys:     common.DefaultKeyMap(),
		spinner:  s,
	}
}

// Init starts the initial timeline fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchChirps(),
		m.spinner.Tick,
	)
}

// SelectedChirp returns the currently highlighted chirp, if any.
func (m Model) SelectedChirp() (domain.Chirp, bool) {
	if len(m.chirps) == 0 || m.cursor < 0 || m.cursor >= len(m.chirps) {
		return domain.Chirp{}, false
	}
	return m.chirps[m.cursor], true
}

// Update handles messages for the feed view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ChirpsLoadedMsg:
		m.chirps = msg.Chirps
		m.authors = msg.Authors
		m.loading = false
		m.err = nil
		if m.cursor >= len(m.chirps) {
			m.cursor = 0
		}
		return m, nil

	case ChirpsErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, tea.Batch(m.fetchChirps(), m.spinner.Tick)

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.chirps)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Open):
			chirp, ok := m.SelectedChirp()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg { return OpenThreadMsg{Chirp: chirp} }
		}
	}

	return m, nil
}
