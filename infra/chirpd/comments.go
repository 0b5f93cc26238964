package chirpd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"chirpterm/domain"
)

// commentService implements app.CommentService against the chirpd API.
type commentService struct {
	client *Client
}

// NewCommentService creates a CommentService backed by chirpd.
func NewCommentService(client *Client) *commentService {
	return &commentService{client: client}
}

// commentPayload is the chirpd wire shape for a comment.
type commentPayload struct {
	ID              string `json:"id"`
	ChirpID         string `json:"chirp_id"`
	AuthorID        string `json:"author_id"`
	ParentCommentID string `json:"parent_comment_id,omitempty"`
	ReplyToUserID   string `json:"reply_to_user_id,omitempty"`
	Text            string `json:"text"`
	FormattedText   string `json:"formatted_text,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
	ScheduledAt     string `json:"scheduled_at,omitempty"`
	CreatedAt       string `json:"created_at"`
}

func (p commentPayload) toDomain() domain.Comment {
	createdAt, _ := time.Parse(time.RFC3339, p.CreatedAt)
	var scheduledAt time.Time
	if p.ScheduledAt != "" {
		scheduledAt, _ = time.Parse(time.RFC3339, p.ScheduledAt)
	}
	return domain.Comment{
		ID:              p.ID,
		ChirpID:         p.ChirpID,
		AuthorID:        p.AuthorID,
		ParentCommentID: p.ParentCommentID,
		ReplyToUserID:   p.ReplyToUserID,
		Text:            p.Text,
		FormattedText:   p.FormattedText,
		ImageURL:        p.ImageURL,
		ScheduledAt:     scheduledAt,
		CreatedAt:       createdAt,
	}
}

func commentsToDomain(payloads []commentPayload) []domain.Comment {
	comments := make([]domain.Comment, 0, len(payloads))
	for _, p := range payloads {
		comments = append(comments, p.toDomain())
	}
	return comments
}

func (s *commentService) CommentsForChirp(_ context.Context, chirpID string) ([]domain.Comment, error) {
	path := fmt.Sprintf("/api/v1/chirps/%s/comments", url.PathEscape(chirpID))

	data, err := s.client.Get(path)
	if err != nil {
		return nil, fmt.Errorf("fetching comments: %w", err)
	}

	var payloads []commentPayload
	if err := json.Unmarshal(data, &payloads); err != nil {
		return nil, fmt.Errorf("parsing comments: %w", err)
	}

	return commentsToDomain(payloads), nil
}

func (s *commentService) AddComment(_ context.Context, nc domain.NewComment) (domain.Comment, error) {
	body := commentPayload{
		ChirpID:         nc.ChirpID,
		AuthorID:        nc.AuthorID,
		ParentCommentID: nc.ParentCommentID,
		ReplyToUserID:   nc.ReplyToUserID,
		Text:            nc.Text,
		FormattedText:   nc.FormattedText,
		ImageURL:        nc.ImageURL,
	}
	if !nc.ScheduledAt.IsZero() {
		body.ScheduledAt = nc.ScheduledAt.Format(time.RFC3339)
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("encoding comment: %w", err)
	}

	path := fmt.Sprintf("/api/v1/chirps/%s/comments", url.PathEscape(nc.ChirpID))
	data, err := s.client.Post(path, bytes.NewReader(encoded))
	if err != nil {
		return domain.Comment{}, fmt.Errorf("adding comment: %w", err)
	}

	var created commentPayload
	if err := json.Unmarshal(data, &created); err != nil {
		return domain.Comment{}, fmt.Errorf("parsing created comment: %w", err)
	}
	return created.toDomain(), nil
}

func (s *commentService) DeleteComment(_ context.Context, commentID, actingUserID string) error {
	// The server authenticates the actor from the bearer token; the
	// explicit acting user is cross-checked so a stale client identity
	// fails loudly instead of deleting as someone else.
	path := fmt.Sprintf("/api/v1/comments/%s?acting_user_id=%s",
		url.PathEscape(commentID), url.QueryEscape(actingUserID))
	if _, err := s.client.Delete(path); err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	return nil
}
