package feed

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"chirpterm/domain"
)

func (m Model) fetchChirps() tea.Cmd {
	chirpSvc := m.chirpSvc
	userSvc := m.userSvc
	limit := m.limit
	return func() tea.Msg {
		ctx := context.Background()
		chirps, err := chirpSvc.Timeline(ctx, limit)
		if err != nil {
			return ChirpsErrorMsg{Err: err}
		}

		// Resolve authors up front; chirps whose author is gone are
		// dropped from rendering rather than shown half-broken.
		authors := make(map[string]domain.User, len(chirps))
		visible := make([]domain.Chirp, 0, len(chirps))
		for _, chirp := range chirps {
			if _, seen := authors[chirp.AuthorID]; !seen {
				u, ok, err := userSvc.User(ctx, chirp.AuthorID)
				if err != nil {
					return ChirpsErrorMsg{Err: err}
				}
				if !ok {
					continue
				}
				authors[chirp.AuthorID] = u
			}
			visible = append(visible, chirp)
		}
		return ChirpsLoadedMsg{Chirps: visible, Authors: authors}
	}
}
