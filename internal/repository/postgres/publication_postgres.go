package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"agroapi/internal/model"
	"agroapi/internal/repository"
)

const publicationColumns = `p.id, p.title, p.content, p.plantation_id, p.author_id, p.score,
		p.visibility, p.state_id, p.publication_date, COALESCE(p.image_path, '')`

// sortedQueries holds one native query per listing criterion. Each takes
// LIMIT $1 OFFSET $2.
var sortedQueries = map[repository.Criterion]string{
	repository.ByScore: `SELECT ` + publicationColumns + `
		FROM publications p
		ORDER BY p.score DESC, p.id
		LIMIT $1 OFFSET $2`,
	repository.ByAuthor: `SELECT ` + publicationColumns + `
		FROM publications p
		ORDER BY p.author_id DESC, p.id
		LIMIT $1 OFFSET $2`,
	repository.ByDate: `SELECT ` + publicationColumns + `
		FROM publications p
		ORDER BY p.publication_date DESC, p.id DESC
		LIMIT $1 OFFSET $2`,
	repository.ByRandom: `SELECT ` + publicationColumns + `
		FROM publications p
		ORDER BY random()
		LIMIT $1 OFFSET $2`,
	repository.ByQuantity: `SELECT ` + publicationColumns + `
		FROM (
			SELECT DISTINCT ON (author_id) *
			FROM publications
			ORDER BY author_id, id
		) p
		JOIN (
			SELECT author_id, COUNT(*) AS total
			FROM publications
			GROUP BY author_id
		) c ON c.author_id = p.author_id
		ORDER BY c.total DESC, p.author_id
		LIMIT $1 OFFSET $2`,
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPublication(s rowScanner) (model.Publication, error) {
	var p model.Publication
	err := s.Scan(
		&p.ID,
		&p.Title,
		&p.Content,
		&p.PlantationID,
		&p.AuthorID,
		&p.Score,
		&p.Visibility,
		&p.StateID,
		&p.PublicationDate,
		&p.ImagePath,
	)
	return p, err
}

// PublicationPostgres is a PostgreSQL implementation of repository.PublicationRepository.
type PublicationPostgres struct {
	db *sql.DB
}

// NewPublicationPostgres creates a new PublicationPostgres repository.
func NewPublicationPostgres(db *sql.DB) *PublicationPostgres {
	return &PublicationPostgres{db: db}
}

var _ repository.PublicationRepository = (*PublicationPostgres)(nil)

// Create inserts a publication row and returns the stored record.
func (r *PublicationPostgres) Create(ctx context.Context, pub *model.Publication) (*model.Publication, error) {
	const q = `
		INSERT INTO publications AS p
			(title, content, plantation_id, author_id, score, visibility, state_id, publication_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + publicationColumns
	row := r.db.QueryRowContext(ctx, q,
		pub.Title,
		pub.Content,
		pub.PlantationID,
		pub.AuthorID,
		pub.Score,
		pub.Visibility,
		pub.StateID,
		pub.PublicationDate,
	)
	out, err := scanPublication(row)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single publication by its id.
func (r *PublicationPostgres) FindByID(ctx context.Context, id int64) (*model.Publication, error) {
	const q = `SELECT ` + publicationColumns + `
		FROM publications p
		WHERE p.id = $1`
	out, err := scanPublication(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update overwrites title, content, plantation and visibility.
func (r *PublicationPostgres) Update(ctx context.Context, pub *model.Publication) (*model.Publication, error) {
	const q = `
		UPDATE publications AS p
		SET title = $2, content = $3, plantation_id = $4, visibility = $5
		WHERE p.id = $1
		RETURNING ` + publicationColumns
	row := r.db.QueryRowContext(ctx, q,
		pub.ID,
		pub.Title,
		pub.Content,
		pub.PlantationID,
		pub.Visibility,
	)
	out, err := scanPublication(row)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SetImagePath stores the object key of the publication image.
// It returns sql.ErrNoRows when the publication does not exist.
func (r *PublicationPostgres) SetImagePath(ctx context.Context, id int64, path string) error {
	const q = `UPDATE publications SET image_path = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, path)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Top returns the n highest-scored publications.
func (r *PublicationPostgres) Top(ctx context.Context, n int) ([]model.Publication, error) {
	const q = `SELECT ` + publicationColumns + `
		FROM publications p
		ORDER BY p.score DESC, p.id
		LIMIT $1`
	return r.query(ctx, q, n)
}

// ListByAuthorEmail returns all publications of the author with the given email.
func (r *PublicationPostgres) ListByAuthorEmail(ctx context.Context, email string) ([]model.Publication, error) {
	const q = `SELECT ` + publicationColumns + `
		FROM publications p
		JOIN users u ON u.id = p.author_id
		WHERE u.email = $1
		ORDER BY p.publication_date DESC, p.id DESC`
	return r.query(ctx, q, email)
}

// ListPending returns publications whose moderation state is PENDING.
func (r *PublicationPostgres) ListPending(ctx context.Context) ([]model.Publication, error) {
	const q = `SELECT ` + publicationColumns + `
		FROM publications p
		JOIN state_requests s ON s.id = p.state_id
		WHERE s.state = 'PENDING'
		ORDER BY p.publication_date, p.id`
	return r.query(ctx, q)
}

// ListSorted returns up to pq.Limit publications from pq.Offset in criterion order.
func (r *PublicationPostgres) ListSorted(ctx context.Context, c repository.Criterion, pq repository.PageQuery) ([]model.Publication, error) {
	q, ok := sortedQueries[c]
	if !ok {
		return nil, fmt.Errorf("unsupported sort criterion %q", c)
	}
	return r.query(ctx, q, pq.Limit, pq.Offset)
}

func (r *PublicationPostgres) query(ctx context.Context, q string, args ...any) ([]model.Publication, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Publication, 0)
	for rows.Next() {
		p, err := scanPublication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
