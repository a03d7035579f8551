package repository

import (
	"context"

	"agroapi/internal/model"
)

// AuditRepository persists the request audit trail.
type AuditRepository interface {
	// Create appends an entry.
	Create(ctx context.Context, entry *model.AuditLog) error

	// List returns entries newest first together with the total count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.AuditLog], error)
}
