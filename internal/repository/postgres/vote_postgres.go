package postgres

import (
	"context"
	"database/sql"

	"agroapi/internal/repository"
)

// VotePostgres is a PostgreSQL implementation of repository.VoteRepository.
type VotePostgres struct {
	db *sql.DB
}

// NewVotePostgres creates a new VotePostgres repository.
func NewVotePostgres(db *sql.DB) *VotePostgres {
	return &VotePostgres{db: db}
}

var _ repository.VoteRepository = (*VotePostgres)(nil)

// HasVoted reports whether a positive vote row exists for the pair.
func (r *VotePostgres) HasVoted(ctx context.Context, userID, publicationID int64) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM votes
			WHERE user_id = $1 AND publication_id = $2 AND voted
		)
	`
	var voted bool
	if err := r.db.QueryRowContext(ctx, q, userID, publicationID).Scan(&voted); err != nil {
		return false, err
	}
	return voted, nil
}
