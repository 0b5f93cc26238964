package chirpd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"chirpterm/domain"
)

// chirpService implements app.ChirpService against the chirpd API.
type chirpService struct {
	client *Client
}

// NewChirpService creates a ChirpService backed by chirpd.
func NewChirpService(client *Client) *chirpService {
	return &chirpService{client: client}
}

type chirpPayload struct {
	ID        string `json:"id"`
	AuthorID  string `json:"author_id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

func (p chirpPayload) toDomain() domain.Chirp {
	createdAt, _ := time.Parse(time.RFC3339, p.CreatedAt)
	return domain.Chirp{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Text:      p.Text,
		CreatedAt: createdAt,
	}
}

func (s *chirpService) Timeline(_ context.Context, limit int) ([]domain.Chirp, error) {
	path := fmt.Sprintf("/api/v1/chirps?limit=%d", limit)

	data, err := s.client.Get(path)
	if err != nil {
		return nil, fmt.Errorf("fetching timeline: %w", err)
	}

	var payloads []chirpPayload
	if err := json.Unmarshal(data, &payloads); err != nil {
		return nil, fmt.Errorf("parsing timeline: %w", err)
	}

	chirps := make([]domain.Chirp, 0, len(payloads))
	for _, p := range payloads {
		chirps = append(chirps, p.toDomain())
	}
	return chirps, nil
}

func (s *chirpService) Chirp(_ context.Context, id string) (domain.Chirp, error) {
	data, err := s.client.Get("/api/v1/chirps/" + url.PathEscape(id))
	if err != nil {
		return domain.Chirp{}, fmt.Errorf("fetching chirp %s: %w", id, err)
	}

	var payload chirpPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return domain.Chirp{}, fmt.Errorf("parsing chirp: %w", err)
	}
	return payload.toDomain(), nil
}
