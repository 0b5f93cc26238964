package domain

// CanDeleteComment reports whether the acting user may delete a
// comment: its own author, or the author of the owning chirp
// (moderator delete). The store enforces this again server-side; the
// client only uses it to gate the delete affordance.
func CanDeleteComment(actingUserID string, c Comment, chirpAuthorID string) bool {
	if actingUserID == "" {
		return false
	}
	return actingUserID == c.AuthorID || actingUserID == chirpAuthorID
}
