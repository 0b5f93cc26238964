package feed

import (
	"context"
	"time"

	"chirpterm/domain"
)

type stubChirps struct {
	chirps []domain.Chirp
	err    error
}

func (s stubChirps) Timeline(context.Context, int) ([]domain.Chirp, error) {
	return s.chirps, s.err
}

func (s stubChirps) Chirp(_ context.Context, id string) (domain.Chirp, error) {
	for _, c := range s.chirps {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Chirp{}, s.err
}

type stubUsers struct {
	users map[string]domain.User
}

func (s stubUsers) User(_ context.Context, id string) (domain.User, bool, error) {
	u, ok := s.users[id]
	return u, ok, nil
}

func (s stubUsers) CurrentUserID(context.Context) (string, error) {
	return "me", nil
}

func makeChirp(id, authorID string) domain.Chirp {
	return domain.Chirp{
		ID:        id,
		AuthorID:  authorID,
		Text:      "chirp " + id,
		CreatedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}
