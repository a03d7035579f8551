package repository

import "context"

// VoteRepository answers vote membership questions.
type VoteRepository interface {
	// HasVoted reports whether the user has a positive vote on the publication.
	HasVoted(ctx context.Context, userID, publicationID int64) (bool, error)
}
