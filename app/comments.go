package app

import (
	"context"

	"chirpterm/domain"
)

// Subscription is a live feed of full comment snapshots for one chirp.
// Every update replaces the previous flat list; there are no diffs.
// Close is the caller's unsubscribe and must be called exactly once.
type Subscription interface {
	// Updates yields full flat comment lists. The channel is closed
	// when the stream ends, whether by Close or by a transport error.
	Updates() <-chan []domain.Comment

	// Err reports why the stream ended, nil after a clean Close.
	Err() error

	Close() error
}

// CommentService is the external comment store. It is the final
// authority on validation and delete authorization; the client only
// pre-filters affordances.
type CommentService interface {
	// CommentsForChirp bulk-fetches a chirp's comments in createdAt
	// ascending order.
	CommentsForChirp(ctx context.Context, chirpID string) ([]domain.Comment, error)

	// AddComment creates a comment (top-level or reply) and returns
	// the stored record with its assigned ID and timestamp.
	AddComment(ctx context.Context, nc domain.NewComment) (domain.Comment, error)

	// DeleteComment removes a comment on behalf of actingUserID. The
	// store rejects unauthorized actors.
	DeleteComment(ctx context.Context, commentID, actingUserID string) error

	// SubscribeToComments registers a push listener for the chirp.
	SubscribeToComments(ctx context.Context, chirpID string) (Subscription, error)
}
