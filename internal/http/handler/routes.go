package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"agroapi/internal/http/middleware"
	"agroapi/internal/model"
	"agroapi/internal/service"
)

// Services bundles what the HTTP layer depends on.
type Services struct {
	Publications service.PublicationService
	Users        service.UserService
	Audit        service.AuditService
	Tokens       middleware.TokenValidator
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/auth/register", Register(svc.Users))
	app.Post("/auth/login", Login(svc.Users))

	app.Get("/publication/publications/top", TopPublications(svc.Publications))
	app.Get("/logs", ListAuditLogs(svc.Audit))

	members := middleware.RequireRole(model.RoleUser, model.RoleAdmin, model.RoleProducer)
	v1 := app.Group("/v1", middleware.Authenticate(svc.Tokens))

	v1.Get("/user/userSession", members, UserSession(svc.Users))

	pub := v1.Group("/publication")
	pub.Post("/save", members, SavePublication(svc.Publications))
	pub.Put("/update", members, UpdatePublication(svc.Publications))
	pub.Get("/pending", middleware.RequireRole(model.RoleAdmin), PendingPublications(svc.Publications))
	pub.Get("/email/:email", members, PublicationsByEmail(svc.Publications))
	for segment, criterion := range listingRoutes {
		pub.Get("/"+segment+"/:pag", members, ListPublications(svc.Publications, criterion))
	}
	pub.Post("/:id/image", members, UploadPublicationImage(svc.Publications))
	pub.Get("/:id/image", members, PublicationImage(svc.Publications))
	pub.Get("/:id", members, GetPublication(svc.Publications))
}
