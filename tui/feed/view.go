package feed

import (
	"fmt"
	"strings"

	"chirpterm/tui/common"
)

// View renders the chirp timeline.
func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Render("chirpterm")
	tagline := common.TaglineStyle.Render("<threads without the tab>")
	b.WriteString(title + tagline + "\n\n")

	if m.loading {
		b.WriteString("  " + m.spinner.View() + " loading chirps...\n")
		return b.String()
	}

	if m.err != nil {
		b.WriteString("  " + common.ErrorStyle.Render("Could not load the feed: "+m.err.Error()) + "\n")
		b.WriteString("  " + common.StatusBarStyle.Render("r retry • q quit") + "\n")
		return b.String()
	}

	if len(m.chirps) == 0 {
		b.WriteString("  No chirps yet.\n")
		b.WriteString("  " + common.StatusBarStyle.Render("r refresh • q quit") + "\n")
		return b.String()
	}

	bodyWidth := max(m.width-12, 40)
	for i, chirp := range m.chirps {
		author := m.authors[chirp.AuthorID]
		header := common.AuthorStyle.Render("@"+author.Username) + "  " +
			common.TimestampStyle.Render(chirp.CreatedAt.Format("Jan 02 15:04"))
		body := common.ContentStyle.Render(
			common.Truncate(common.FirstLine(chirp.Text), bodyWidth))

		card := header + "\n" + body
		if i == m.cursor {
			b.WriteString(common.SelectedStyle.Render(card) + "\n")
		} else {
			b.WriteString(common.UnselectedStyle.Render(card) + "\n")
		}
	}

	help := fmt.Sprintf("%d chirps • ↑/k ↓/j move • enter open thread • r refresh • q quit", len(m.chirps))
	b.WriteString(common.StatusBarStyle.Render(help) + "\n")

	return b.String()
}
