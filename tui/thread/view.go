package thread

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"chirpterm/tui/common"
)

const indentUnit = 3 // Columns per visible nesting level

// View renders the chirp header and the visible slice of thread rows.
func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Render("chirpterm")
	crumb := common.TaglineStyle.Render("thread " + m.chirp.ID)
	b.WriteString(title + crumb + "\n")

	b.WriteString(m.renderChirpCard() + "\n")

	if m.loading {
		b.WriteString("  " + m.spinner.View() + " loading comments...\n")
		b.WriteString(m.renderFooter())
		return b.String()
	}

	if len(m.rows) == 0 {
		b.WriteString("  No comments yet — press p to start the thread.\n")
	}

	if m.composing && m.replyTo == "" {
		b.WriteString(m.renderComposer())
	}

	slots := max(m.rowSlots(), 1)
	end := min(m.start+slots, len(m.rows))
	for i := m.start; i < end; i++ {
		b.WriteString(m.renderRow(i))
		if m.composing && m.replyTo == m.rows[i].node.ID {
			b.WriteString(m.renderComposer())
		}
	}
	if end < len(m.rows) {
		b.WriteString(common.MetadataStyle.Render(
			fmt.Sprintf("  ... %d more below", len(m.rows)-end)) + "\n")
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderChirpCard() string {
	author := m.authors[m.chirp.AuthorID]
	header := common.AuthorStyle.Render("@"+author.Username) + "  " +
		common.TimestampStyle.Render(m.chirp.CreatedAt.Format("Monday, Jan 02, 2006 at 15:04"))
	body := common.ContentStyle.Width(max(m.width-12, 40)).Render(m.chirp.Text)
	meta := common.MetadataStyle.Render(fmt.Sprintf("↩ %d comments", len(m.flat)))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#5FD7FF")).
		Padding(0, 1).
		MarginLeft(1).
		Render(header + "\n" + body + "\n" + meta)
}

func (m Model) renderRow(i int) string {
	r := m.rows[i]
	c := r.node.Comment

	// Indentation saturates at the nesting cap so deep threads stay on
	// screen; the logical depth is unaffected.
	indent := strings.Repeat(" ", min(r.depth, m.maxDepth)*indentUnit)

	author := m.authors[c.AuthorID]
	head := common.AuthorStyle.Render("@" + author.Username)
	if c.AuthorID == m.currentUserID {
		head += common.OwnBadgeStyle.Render("(you)")
	}
	head += "  " + common.TimestampStyle.Render(c.CreatedAt.Format("Jan 02 15:04"))
	if c.ReplyToUserID != "" {
		if target, ok := m.authors[c.ReplyToUserID]; ok {
			head += "  " + common.ReplyToStyle.Render("↪ @"+target.Username)
		}
	}

	bodyWidth := max(m.width-len(indent)-14, 24)
	body := common.ContentStyle.Render(common.Truncate(c.Text, bodyWidth*2))

	var metaParts []string
	if r.node.ReplyCount > 0 {
		metaParts = append(metaParts, fmt.Sprintf("↩ %d", r.node.ReplyCount))
	}
	if m.collapsed[c.ID] && len(r.node.Replies) > 0 {
		metaParts = append(metaParts, common.CollapsedBadgeStyle.Render(
			fmt.Sprintf("▸ %d hidden", r.node.ReplyCount)))
	}
	card := head + "\n" + body
	if len(metaParts) > 0 {
		card += "\n" + common.MetadataStyle.Render(strings.Join(metaParts, "  "))
	}
	if i == m.cursor && m.confirmDelete {
		card += "\n" + common.ConfirmStyle.Render("Delete this comment? (y/n)")
	}

	style := common.UnselectedStyle
	if i == m.cursor {
		style = common.SelectedStyle
	}
	lines := strings.Split(style.Render(card), "\n")
	for j, line := range lines {
		lines[j] = indent + line
	}
	return strings.Join(lines, "\n") + "\n"
}

func (m Model) renderComposer() string {
	label := "New comment"
	if m.replyToUser != "" {
		if target, ok := m.authors[m.replyToUser]; ok {
			label = "Replying to @" + target.Username
		} else {
			label = "Replying"
		}
	}
	hint := "ctrl+d send • esc cancel"
	if m.submitting {
		hint = m.spinner.View() + " sending..."
	}

	block := common.ReplyToStyle.Render(label) + "\n" +
		m.input.View() + "\n" +
		common.MetadataStyle.Render(hint)
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#EED49F")).
		Padding(0, 1).
		MarginLeft(2).
		Render(block) + "\n"
}

func (m Model) renderFooter() string {
	var b strings.Builder
	if m.status != "" {
		b.WriteString(" " + common.NoticeStyle.Render(m.status) + "\n")
	}
	help := "↑/k ↓/j move • c reply • p comment • tab fold • d delete • r refresh • esc back"
	b.WriteString(common.StatusBarStyle.Render(help) + "\n")
	return b.String()
}
