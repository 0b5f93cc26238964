package app

import (
	"context"

	"chirpterm/domain"
)

// ChirpService fetches chirps from the backend.
type ChirpService interface {
	// Timeline returns the latest chirps, newest first.
	Timeline(ctx context.Context, limit int) ([]domain.Chirp, error)

	// Chirp returns a single chirp by ID.
	Chirp(ctx context.Context, id string) (domain.Chirp, error)
}
