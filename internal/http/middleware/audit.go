package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"agroapi/internal/model"
)

const (
	auditAction    = "ACCESS"
	auditAnonymous = "ANONYMOUS"
	auditTimeout   = 2 * time.Second
)

// AuditRecorder stores audit entries.
type AuditRecorder interface {
	Record(ctx context.Context, entry model.AuditLog) error
}

// Audit records every request in the audit trail once the handler chain has
// run, so the authenticated user and the final status are known. A failed
// write is logged and never changes the response.
func Audit(rec AuditRecorder, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now().UTC()
		err := c.Next()

		status := statusOf(c, err)

		username := SubjectFromCtx(c)
		if username == "" {
			username = auditAnonymous
		}

		entry := model.AuditLog{
			Username:  username,
			Action:    auditAction,
			Method:    c.Method(),
			Endpoint:  c.Path(),
			Status:    status,
			IP:        c.IP(),
			CreatedAt: start,
		}

		ctx, cancel := context.WithTimeout(context.WithoutCancel(c.UserContext()), auditTimeout)
		defer cancel()
		if recErr := rec.Record(ctx, entry); recErr != nil {
			logger.Error("audit_record_failed",
				zap.String("request_id", RequestIDFromCtx(c)),
				zap.String("endpoint", entry.Endpoint),
				zap.Error(recErr),
			)
		}

		return err
	}
}
