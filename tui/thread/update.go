package thread

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"chirpterm/domain"
)

// Update handles messages for the thread view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(max(msg.Width-16, 30))
		m.ensureCursorVisible()
		return m, nil

	case LoadedMsg:
		if msg.ChirpID != m.chirp.ID {
			return m, nil // Stale response for a previously focused chirp.
		}
		m.loading = false
		m.mergeAuthors(msg.Authors)
		m.setComments(msg.Comments)
		return m, nil

	case LoadErrorMsg:
		if msg.ChirpID != m.chirp.ID {
			return m, nil
		}
		m.loading = false
		m.status = "Could not load comments: " + msg.Err.Error()
		return m, nil

	case SubscribedMsg:
		if msg.ChirpID != m.chirp.ID {
			if msg.Sub != nil {
				_ = msg.Sub.Close()
			}
			return m, nil
		}
		if msg.Err != nil {
			m.status = "Live updates unavailable"
			return m, nil
		}
		m.sub = msg.Sub
		return m, waitForSnapshot(m.chirp.ID, msg.Sub)

	case SnapshotMsg:
		if msg.ChirpID != m.chirp.ID {
			return m, nil
		}
		if !msg.OK {
			if m.sub != nil && m.sub.Err() != nil {
				m.status = "Live updates disconnected"
			}
			return m, nil
		}
		m.applySnapshot(msg.Comments)
		cmds := []tea.Cmd{waitForSnapshot(m.chirp.ID, m.sub)}
		if missing := m.missingAuthorIDs(); len(missing) > 0 {
			cmds = append(cmds, m.fetchAuthors(missing))
		}
		return m, tea.Batch(cmds...)

	case AuthorsLoadedMsg:
		if msg.ChirpID != m.chirp.ID {
			return m, nil
		}
		m.mergeAuthors(msg.Authors)
		m.rebuildRows()
		return m, nil

	case AddResultMsg:
		if msg.ChirpID != m.chirp.ID {
			return m, nil
		}
		return m.handleAddResult(msg)

	case DeleteResultMsg:
		if msg.ChirpID != m.chirp.ID {
			return m, nil
		}
		if msg.Err != nil {
			// Authorization and transient failures read the same to
			// the user; the store is the authority either way.
			m.status = "Failed to delete, try again"
			return m, nil
		}
		m.removeComment(msg.CommentID)
		m.status = "Comment deleted"
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.confirmDelete {
		return m.handleConfirmKey(msg)
	}
	if m.composing {
		return m.handleComposerKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.Close()
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.status = ""
		return m, tea.Batch(m.loadThread(), m.spinner.Tick)

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.ensureCursorVisible()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
			m.ensureCursorVisible()
		}
		return m, nil

	case key.Matches(msg, m.keys.Collapse):
		r, ok := m.selectedRow()
		if !ok || len(r.node.Replies) == 0 {
			return m, nil
		}
		m.collapsed[r.node.ID] = !m.collapsed[r.node.ID]
		m.rebuildRows()
		m.setCursorByID(r.node.ID)
		return m, nil

	case key.Matches(msg, m.keys.Compose):
		return m.openComposer("", ""), textarea.Blink

	case key.Matches(msg, m.keys.Reply):
		r, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		// Nesting is capped: at the max depth the reply affordance is
		// withheld, while deeper existing comments still display.
		if r.depth >= m.maxDepth {
			m.status = "Max nesting reached, reply further up the thread"
			return m, nil
		}
		return m.openComposer(r.node.ID, r.node.AuthorID), textarea.Blink

	case key.Matches(msg, m.keys.Delete):
		r, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		if !domain.CanDeleteComment(m.currentUserID, r.node.Comment, m.chirp.AuthorID) {
			m.status = "Only the comment author or the chirp author can delete"
			return m, nil
		}
		m.confirmDelete = true
		return m, nil
	}

	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirmDelete = false
		r, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		m.status = "Deleting..."
		return m, m.deleteComment(r.node.ID)
	case "n", "N", "esc":
		m.confirmDelete = false
		return m, nil
	}
	return m, nil
}

func (m Model) handleComposerKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		// Cancelled → idle. The draft is deliberately discarded; only
		// FAILED submits preserve it.
		m.composing = false
		m.submitting = false
		m.draft = ""
		m.input.Reset()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) openComposer(parentID, replyToUserID string) Model {
	m.composing = true
	m.replyTo = parentID
	m.replyToUser = replyToUserID
	m.status = ""
	m.input.Reset()
	m.input.Focus()
	return m
}

func (m Model) submit() (Model, tea.Cmd) {
	if m.submitting {
		return m, nil // A submission is already in flight.
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		m.status = domain.ErrEmptyComment.Error()
		return m, nil
	}
	if m.currentUserID == "" {
		m.status = domain.ErrNotSignedIn.Error()
		return m, nil
	}

	nc := domain.NewComment{
		ChirpID:         m.chirp.ID,
		AuthorID:        m.currentUserID,
		Text:            text,
		ParentCommentID: m.replyTo,
		ReplyToUserID:   m.replyToUser,
	}

	// Local echo: show the comment immediately, reconcile when the
	// store answers or the next snapshot lands.
	local := domain.Comment{
		ID:              "local-" + uuid.NewString(),
		ChirpID:         nc.ChirpID,
		AuthorID:        nc.AuthorID,
		Text:            nc.Text,
		ParentCommentID: nc.ParentCommentID,
		ReplyToUserID:   nc.ReplyToUserID,
		CreatedAt:       time.Now(),
	}

	m.submitting = true
	m.localID = local.ID
	m.draft = m.input.Value()
	m.composing = false
	m.input.Reset()
	m.status = ""
	m.setComments(append(append([]domain.Comment{}, m.flat...), local))
	m.setCursorByID(local.ID)

	return m, m.addComment(nc, local.ID)
}

func (m Model) handleAddResult(msg AddResultMsg) (Model, tea.Cmd) {
	m.submitting = false
	if msg.LocalID != m.localID {
		return m, nil // Result for an echo a snapshot already settled.
	}
	m.localID = ""

	if msg.Err != nil {
		// Drop the echo but hand the draft back so nothing typed is lost.
		m.removeComment(msg.LocalID)
		m.composing = true
		m.input.SetValue(m.draft)
		m.input.Focus()
		m.status = "Failed to post comment, try again"
		return m, nil
	}

	m.draft = ""
	m.replyTo = ""
	m.replyToUser = ""
	m.reconcileAdd(msg.LocalID, msg.Comment)
	m.status = "Comment posted"
	return m, nil
}

// applySnapshot replaces the flat list with a pushed snapshot, keeping
// a still-pending local echo visible until its result arrives.
func (m *Model) applySnapshot(comments []domain.Comment) {
	if m.localID != "" {
		if local, ok := m.findComment(m.localID); ok && !snapshotCovers(comments, local) {
			comments = append(append([]domain.Comment{}, comments...), local)
		}
	}
	m.setComments(comments)
}

// snapshotCovers reports whether the snapshot already contains the
// stored version of a local echo. IDs differ, so the match is by
// author, parent, and text, like-for-like with the optimistic entry.
func snapshotCovers(comments []domain.Comment, local domain.Comment) bool {
	for _, c := range comments {
		if c.ID == local.ID {
			return true
		}
		if c.AuthorID == local.AuthorID &&
			c.ParentCommentID == local.ParentCommentID &&
			strings.TrimSpace(c.Text) == strings.TrimSpace(local.Text) {
			return true
		}
	}
	return false
}

func (m *Model) reconcileAdd(localID string, server domain.Comment) {
	placed := false
	flat := make([]domain.Comment, 0, len(m.flat))
	for _, c := range m.flat {
		switch c.ID {
		case server.ID, localID:
			if !placed {
				flat = append(flat, server)
				placed = true
			}
		default:
			flat = append(flat, c)
		}
	}
	if !placed {
		flat = append(flat, server)
	}
	m.setComments(flat)
	m.setCursorByID(server.ID)
}

func (m *Model) removeComment(id string) {
	flat := make([]domain.Comment, 0, len(m.flat))
	for _, c := range m.flat {
		if c.ID != id {
			flat = append(flat, c)
		}
	}
	m.setComments(flat)
}

func (m Model) findComment(id string) (domain.Comment, bool) {
	for _, c := range m.flat {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Comment{}, false
}

func (m *Model) mergeAuthors(authors map[string]domain.User) {
	for id, u := range authors {
		m.authors[id] = u
	}
}

func (m Model) missingAuthorIDs() []string {
	seen := map[string]bool{}
	var missing []string
	for _, c := range m.flat {
		for _, id := range []string{c.AuthorID, c.ReplyToUserID} {
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			if _, ok := m.authors[id]; !ok {
				missing = append(missing, id)
			}
		}
	}
	return missing
}
