package thread

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chirpterm/app"
	"chirpterm/domain"
	"chirpterm/tui/common"
)

// --- Messages ---

// LoadedMsg is sent when the initial comment fetch completes.
type LoadedMsg struct {
	ChirpID  string
	Comments []domain.Comment
	Authors  map[string]domain.User
}

// LoadErrorMsg is sent when the initial comment fetch fails.
type LoadErrorMsg struct {
	ChirpID string
	Err     error
}

// SubscribedMsg is sent once the live comment stream is open.
type SubscribedMsg struct {
	ChirpID string
	Sub     app.Subscription
	Err     error
}

// SnapshotMsg carries one full flat comment list pushed by the store.
// OK is false when the stream has ended.
type SnapshotMsg struct {
	ChirpID  string
	Comments []domain.Comment
	OK       bool
}

// AuthorsLoadedMsg delivers author metadata resolved after a snapshot
// introduced unknown author ids.
type AuthorsLoadedMsg struct {
	ChirpID string
	Authors map[string]domain.User
}

// AddResultMsg is sent after a comment submission attempt.
type AddResultMsg struct {
	ChirpID string
	LocalID string
	Comment domain.Comment
	Err     error
}

// DeleteResultMsg is sent after a comment deletion attempt.
type DeleteResultMsg struct {
	ChirpID   string
	CommentID string
	Err       error
}

// BackMsg asks the root model to return to the feed.
type BackMsg struct{}

// --- Model ---

// row is one visible line item: a comment node at its nesting depth.
type row struct {
	node  *domain.CommentNode
	depth int
}

// Model holds the state for one chirp's comment thread view.
//
// The flat comment list is the single source of truth; the forest and
// the visible rows are derived from it on every change. Snapshots from
// the store replace the flat list wholesale — there is no incremental
// patching.
type Model struct {
	comments app.CommentService
	users    app.UserService

	chirp         domain.Chirp
	currentUserID string
	maxDepth      int

	flat    []domain.Comment
	forest  []*domain.CommentNode
	authors map[string]domain.User
	rows    []row
	cursor  int
	start   int // First visible row index

	collapsed map[string]bool

	// Reply composer state machine: idle → replying → (submitted|cancelled) → idle.
	composing   bool
	replyTo     string // Parent comment id; empty for a top-level comment
	replyToUser string
	input       textarea.Model
	submitting  bool
	localID     string // Optimistic echo awaiting the store's answer
	draft       string // Preserved so a failed submit never loses typed text

	confirmDelete bool

	sub     app.Subscription
	loading bool
	status  string

	keys    common.KeyMap
	spinner spinner.Model
	width   int
	height  int
}

// New creates a thread model for the given chirp.
func New(comments app.CommentService, users app.UserService, chirp domain.Chirp, currentUserID string, maxDepth int) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD7FF"))

	ta := textarea.New()
	ta.Placeholder = "Write a comment..."
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.CharLimit = 2000

	return Model{
		comments:      comments,
		users:         users,
		chirp:         chirp,
		currentUserID: currentUserID,
		maxDepth:      maxDepth,
		authors:       map[string]domain.User{},
		collapsed:     map[string]bool{},
		input:         ta,
		loading:       true,
		keys:          common.DefaultKeyMap(),
		spinner:       s,
	}
}

// Init fetches the thread and opens the live stream.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadThread(),
		m.subscribe(),
		m.spinner.Tick,
	)
}

// Close releases the live subscription. Safe on a model that never
// finished subscribing.
func (m *Model) Close() {
	if m.sub != nil {
		_ = m.sub.Close()
		m.sub = nil
	}
}

// setComments replaces the flat list and rebuilds everything derived
// from it, keeping the cursor on the same comment when possible.
func (m *Model) setComments(flat []domain.Comment) {
	selected := m.selectedID()
	m.flat = flat
	m.forest = domain.BuildCommentTree(flat)
	m.rebuildRows()
	if selected != "" {
		m.setCursorByID(selected)
	}
}

func (m *Model) rebuildRows() {
	m.rows = flattenForest(m.forest, m.collapsed, m.authors)
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
	m.ensureCursorVisible()
}

func (m Model) selectedID() string {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return ""
	}
	return m.rows[m.cursor].node.ID
}

func (m Model) selectedRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m *Model) setCursorByID(id string) {
	for i := range m.rows {
		if m.rows[i].node.ID == id {
			m.cursor = i
			m.ensureCursorVisible()
			return
		}
	}
}

func (m *Model) ensureCursorVisible() {
	slots := max(m.rowSlots(), 1)
	if m.cursor < m.start {
		m.start = m.cursor
	}
	if m.cursor >= m.start+slots {
		m.start = m.cursor - slots + 1
	}
	maxStart := max(len(m.rows)-slots, 0)
	if m.start > maxStart {
		m.start = maxStart
	}
	if m.start < 0 {
		m.start = 0
	}
}

// rowSlots estimates how many comment cards fit under the chirp header.
func (m Model) rowSlots() int {
	h := max(m.height-14, 10)
	return max(h/5, 3)
}

// flattenForest lists the forest depth-first in input order. Collapsed
// nodes keep their row but hide the whole descendant subtree. A node
// whose author cannot be resolved is omitted from rendering; its
// replies still show at their own depth so no content disappears with
// it.
func flattenForest(forest []*domain.CommentNode, collapsed map[string]bool, authors map[string]domain.User) []row {
	var rows []row
	var walk func(nodes []*domain.CommentNode, depth int)
	walk = func(nodes []*domain.CommentNode, depth int) {
		for _, n := range nodes {
			_, known := authors[n.AuthorID]
			if known {
				rows = append(rows, row{node: n, depth: depth})
				if collapsed[n.ID] {
					continue
				}
			}
			walk(n.Replies, depth+1)
		}
	}
	walk(forest, 0)
	return rows
}
