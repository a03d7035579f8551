package repository

import (
	"context"

	"agroapi/internal/model"
)

// PublicationRepository defines data access for publications using SQL queries only.
type PublicationRepository interface {
	// Create inserts a publication and returns it with the id assigned by the database.
	Create(ctx context.Context, p *model.Publication) (*model.Publication, error)

	// FindByID returns a publication by id or sql.ErrNoRows.
	FindByID(ctx context.Context, id int64) (*model.Publication, error)

	// Update overwrites the mutable columns of an existing publication.
	Update(ctx context.Context, p *model.Publication) (*model.Publication, error)

	// SetImagePath stores the object key of the publication's image.
	SetImagePath(ctx context.Context, id int64, path string) error

	// Top returns the n highest-scored publications.
	Top(ctx context.Context, n int) ([]model.Publication, error)

	// ListByAuthorEmail returns every publication written by the user with that email.
	ListByAuthorEmail(ctx context.Context, email string) ([]model.Publication, error)

	// ListPending returns publications still waiting for moderation.
	ListPending(ctx context.Context) ([]model.Publication, error)

	// ListSorted returns up to pq.Limit publications starting at pq.Offset,
	// ordered by the given criterion.
	ListSorted(ctx context.Context, c Criterion, pq PageQuery) ([]model.Publication, error)
}
