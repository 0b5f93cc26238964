package domain

import "time"

// Chirp is a top-level post that comments hang off.
type Chirp struct {
	ID        string
	AuthorID  string
	Text      string
	CreatedAt time.Time
}

// User is the author metadata needed to render a comment or chirp.
type User struct {
	ID          string
	Username    string
	DisplayName string
}
