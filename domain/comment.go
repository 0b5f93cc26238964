package domain

import "time"

// Comment is a flat reply record as the chirpd store hands it out.
// ParentCommentID is empty for top-level comments. ReplyToUserID is
// display metadata ("Replying to @x") and independent of tree shape.
type Comment struct {
	ID              string
	ChirpID         string
	AuthorID        string
	ParentCommentID string
	ReplyToUserID   string
	Text            string
	FormattedText   string // Sanitized rich content, optional
	ImageURL        string
	ScheduledAt     time.Time // Zero when not scheduled
	CreatedAt       time.Time
	ReplyCount      int // Transitive descendant count, set by BuildCommentTree
}

// NewComment carries the fields a client supplies when creating a
// comment. The store assigns ID and CreatedAt.
type NewComment struct {
	ChirpID         string
	AuthorID        string
	Text            string
	FormattedText   string
	ImageURL        string
	ScheduledAt     time.Time
	ParentCommentID string // Empty for a top-level comment
	ReplyToUserID   string
}

// CommentNode is a Comment with its direct replies attached. Nodes are
// derived fresh on every materialization and never persisted.
type CommentNode struct {
	Comment
	Replies []*CommentNode
}
