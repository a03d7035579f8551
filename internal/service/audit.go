package service

import (
	"context"
	"time"

	"agroapi/internal/model"
	"agroapi/internal/repository"
)

const (
	defaultAuditLimit = 10
	maxAuditLimit     = 100
)

// AuditListResult is the service-level DTO for paginated audit entries.
type AuditListResult struct {
	Items []model.AuditLog `json:"data"`
	Total int              `json:"total"`
}

// AuditService records and lists the request audit trail.
type AuditService interface {
	// Record stores one entry, stamping CreatedAt when unset.
	Record(ctx context.Context, entry model.AuditLog) error

	// List returns entries newest first using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*AuditListResult, error)
}

type auditService struct {
	repo repository.AuditRepository
	now  func() time.Time
}

// NewAuditService constructs a new AuditService.
func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo, now: time.Now}
}

func (s *auditService) Record(ctx context.Context, entry model.AuditLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}
	return s.repo.Create(ctx, &entry)
}

func (s *auditService) List(ctx context.Context, limit, offset int) (*AuditListResult, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &AuditListResult{Items: res.Items, Total: res.Total}, nil
}
