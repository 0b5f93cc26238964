package thread

import (
	"context"
	"errors"
	"time"

	"chirpterm/app"
	"chirpterm/domain"
)

type stubComments struct {
	comments []domain.Comment

	added     []domain.NewComment
	addResult domain.Comment
	addErr    error

	deleted   []string
	deleteErr error

	sub *stubSub
}

func (s *stubComments) CommentsForChirp(context.Context, string) ([]domain.Comment, error) {
	return s.comments, nil
}

func (s *stubComments) AddComment(_ context.Context, nc domain.NewComment) (domain.Comment, error) {
	s.added = append(s.added, nc)
	return s.addResult, s.addErr
}

func (s *stubComments) DeleteComment(_ context.Context, commentID, _ string) error {
	s.deleted = append(s.deleted, commentID)
	return s.deleteErr
}

func (s *stubComments) SubscribeToComments(context.Context, string) (app.Subscription, error) {
	if s.sub == nil {
		s.sub = newStubSub()
	}
	return s.sub, nil
}

type stubSub struct {
	ch     chan []domain.Comment
	closed bool
}

func newStubSub() *stubSub {
	return &stubSub{ch: make(chan []domain.Comment, 4)}
}

func (s *stubSub) Updates() <-chan []domain.Comment { return s.ch }
func (s *stubSub) Err() error                       { return nil }
func (s *stubSub) Close() error {
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
	return nil
}

type stubUsers struct {
	missing map[string]bool
}

func (s stubUsers) User(_ context.Context, id string) (domain.User, bool, error) {
	if s.missing[id] {
		return domain.User{}, false, nil
	}
	return domain.User{ID: id, Username: id}, true, nil
}

func (s stubUsers) CurrentUserID(context.Context) (string, error) {
	return "me", nil
}

var errStore = errors.New("store rejected the request")

func makeComment(id, parentID, authorID string, createdAt time.Time) domain.Comment {
	return domain.Comment{
		ID:              id,
		ChirpID:         "chirp-1",
		AuthorID:        authorID,
		ParentCommentID: parentID,
		Text:            "comment " + id,
		CreatedAt:       createdAt,
	}
}

func makeAuthors(ids ...string) map[string]domain.User {
	authors := make(map[string]domain.User, len(ids))
	for _, id := range ids {
		authors[id] = domain.User{ID: id, Username: id}
	}
	return authors
}

func testChirp() domain.Chirp {
	return domain.Chirp{
		ID:        "chirp-1",
		AuthorID:  "owner",
		Text:      "the chirp",
		CreatedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

// loadedThread builds a thread model with a chain 1 → 2 → 3 plus a
// second top-level comment, authored by distinct users.
func loadedThread(maxDepth int) (Model, *stubComments) {
	svc := &stubComments{}
	m := New(svc, stubUsers{}, testChirp(), "me", maxDepth)
	m.width = 100
	m.height = 40

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	comments := []domain.Comment{
		makeComment("1", "", "alice", base),
		makeComment("2", "1", "bob", base.Add(time.Minute)),
		makeComment("3", "2", "carol", base.Add(2*time.Minute)),
		makeComment("4", "", "me", base.Add(3*time.Minute)),
	}
	m, _ = m.Update(LoadedMsg{
		ChirpID:  "chirp-1",
		Comments: comments,
		Authors:  makeAuthors("owner", "me", "alice", "bob", "carol"),
	})
	return m, svc
}
