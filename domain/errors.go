package domain

import "errors"

var (
	// ErrEmptyComment indicates the user submitted a blank comment.
	ErrEmptyComment = errors.New("comment cannot be empty")

	// ErrNotSignedIn indicates no authenticated user is present.
	ErrNotSignedIn = errors.New("not signed in")

	// ErrUnauthorized indicates the store rejected the actor.
	ErrUnauthorized = errors.New("unauthorized")
)
