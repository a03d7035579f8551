package postgres

import (
	"context"
	"database/sql"

	"agroapi/internal/model"
	"agroapi/internal/repository"
)

// AuditPostgres is a PostgreSQL implementation of repository.AuditRepository.
type AuditPostgres struct {
	db *sql.DB
}

// NewAuditPostgres creates a new AuditPostgres repository.
func NewAuditPostgres(db *sql.DB) *AuditPostgres {
	return &AuditPostgres{db: db}
}

var _ repository.AuditRepository = (*AuditPostgres)(nil)

// Create appends an audit entry.
func (r *AuditPostgres) Create(ctx context.Context, e *model.AuditLog) error {
	const q = `
		INSERT INTO audit_logs (username, action, method, endpoint, status, ip, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, q,
		e.Username,
		e.Action,
		e.Method,
		e.Endpoint,
		e.Status,
		e.IP,
		e.CreatedAt,
	)
	return err
}

// List returns audit entries using LIMIT/OFFSET pagination and a total count.
func (r *AuditPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.AuditLog], error) {
	const qCount = `SELECT COUNT(*) FROM audit_logs`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, username, action, method, endpoint, status, ip, created_at
		FROM audit_logs
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.AuditLog, 0)
	for rows.Next() {
		var e model.AuditLog
		if err := rows.Scan(
			&e.ID,
			&e.Username,
			&e.Action,
			&e.Method,
			&e.Endpoint,
			&e.Status,
			&e.IP,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.AuditLog]{
		Items: items,
		Total: total,
	}, nil
}
