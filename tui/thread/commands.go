package thread

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"chirpterm/app"
	"chirpterm/domain"
)

func (m Model) loadThread() tea.Cmd {
	comments := m.comments
	users := m.users
	chirp := m.chirp
	currentUserID := m.currentUserID
	return func() tea.Msg {
		ctx := context.Background()
		flat, err := comments.CommentsForChirp(ctx, chirp.ID)
		if err != nil {
			return LoadErrorMsg{ChirpID: chirp.ID, Err: err}
		}

		ids := []string{chirp.AuthorID, currentUserID}
		for _, c := range flat {
			ids = append(ids, c.AuthorID, c.ReplyToUserID)
		}
		authors := resolveAuthors(ctx, users, ids)
		return LoadedMsg{ChirpID: chirp.ID, Comments: flat, Authors: authors}
	}
}

func (m Model) subscribe() tea.Cmd {
	comments := m.comments
	chirpID := m.chirp.ID
	return func() tea.Msg {
		sub, err := comments.SubscribeToComments(context.Background(), chirpID)
		return SubscribedMsg{ChirpID: chirpID, Sub: sub, Err: err}
	}
}

// waitForSnapshot blocks on the stream's next full snapshot. Re-armed
// after every delivery; stops when the channel closes.
func waitForSnapshot(chirpID string, sub app.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		comments, ok := <-sub.Updates()
		return SnapshotMsg{ChirpID: chirpID, Comments: comments, OK: ok}
	}
}

func (m Model) addComment(nc domain.NewComment, localID string) tea.Cmd {
	comments := m.comments
	chirpID := m.chirp.ID
	return func() tea.Msg {
		created, err := comments.AddComment(context.Background(), nc)
		return AddResultMsg{ChirpID: chirpID, LocalID: localID, Comment: created, Err: err}
	}
}

func (m Model) deleteComment(commentID string) tea.Cmd {
	comments := m.comments
	chirpID := m.chirp.ID
	actingUserID := m.currentUserID
	return func() tea.Msg {
		err := comments.DeleteComment(context.Background(), commentID, actingUserID)
		return DeleteResultMsg{ChirpID: chirpID, CommentID: commentID, Err: err}
	}
}

func (m Model) fetchAuthors(ids []string) tea.Cmd {
	users := m.users
	chirpID := m.chirp.ID
	return func() tea.Msg {
		authors := resolveAuthors(context.Background(), users, ids)
		return AuthorsLoadedMsg{ChirpID: chirpID, Authors: authors}
	}
}

// resolveAuthors looks up each id once, skipping blanks, duplicates,
// and users the store no longer knows.
func resolveAuthors(ctx context.Context, users app.UserService, ids []string) map[string]domain.User {
	authors := make(map[string]domain.User, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		u, ok, err := users.User(ctx, id)
		if err != nil || !ok {
			continue
		}
		authors[id] = u
	}
	return authors
}
