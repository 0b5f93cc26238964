package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"chirpterm/app"
	"chirpterm/tui/common"
	"chirpterm/tui/feed"
	"chirpterm/tui/thread"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Chirps        app.ChirpService
	Comments      app.CommentService
	Users         app.UserService
	CurrentUserID string
	Limit         int
	MaxDepth      int
}

type activeView int

const (
	feedView activeView = iota
	threadView
)

// App is the root Bubble Tea model. It routes between sub-views.
type App struct {
	deps   Deps
	active activeView
	feed   feed.Model
	thread thread.Model
	keys   common.KeyMap
	width  int
	height int
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	return App{
		deps:   deps,
		active: feedView,
		feed:   feed.New(deps.Chirps, deps.Users, deps.Limit),
		keys:   common.DefaultKeyMap(),
	}
}

// Init delegates to the feed, the initial view.
func (a App) Init() tea.Cmd {
	return a.feed.Init()
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(msg)
		cmds = append(cmds, cmd)
		if a.active == threadView {
			a.thread, cmd = a.thread.Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			a.thread.Close()
			return a, tea.Quit
		}
		if a.active == feedView && key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}

	case feed.OpenThreadMsg:
		a.active = threadView
		a.thread = thread.New(a.deps.Comments, a.deps.Users, msg.Chirp, a.deps.CurrentUserID, a.deps.MaxDepth)
		var cmd tea.Cmd
		a.thread, cmd = a.thread.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		return a, tea.Batch(a.thread.Init(), cmd)

	case thread.BackMsg:
		a.active = feedView
		return a, nil
	}

	// Delegate to the active sub-model.
	switch a.active {
	case feedView:
		updated, cmd := a.feed.Update(msg)
		a.feed = updated
		return a, cmd
	case threadView:
		updated, cmd := a.thread.Update(msg)
		a.thread = updated
		return a, cmd
	}

	return a, nil
}

// View renders the active sub-model.
func (a App) View() string {
	switch a.active {
	case threadView:
		return a.thread.View()
	default:
		return a.feed.View()
	}
}
