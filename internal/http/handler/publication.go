package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"agroapi/internal/http/middleware"
	"agroapi/internal/repository"
	"agroapi/internal/service"
)

// listingRoutes maps the listing path segments onto sort criteria.
var listingRoutes = map[string]repository.Criterion{
	"like":         repository.ByScore,
	"user":         repository.ByAuthor,
	"date":         repository.ByDate,
	"aleatory":     repository.ByRandom,
	"userQuantity": repository.ByQuantity,
}

func publicationID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// SavePublication stores a new publication authored by the caller.
//
// @Summary Create a publication
// @Tags publication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.PublicationInput true "publication"
// @Success 201 {object} model.Publication
// @Failure 400 {object} errorPayload
// @Router /v1/publication/save [post]
func SavePublication(svc service.PublicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.PublicationInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		pub, err := svc.Save(c.UserContext(), in, middleware.SubjectFromCtx(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(pub)
	}
}

// UpdatePublication overwrites an existing publication. Only its author or
// an admin may do so.
//
// @Summary Update a publication
// @Tags publication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.PublicationInput true "publication"
// @Success 200 {object} model.Publication
// @Failure 403 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /v1/publication/update [put]
func UpdatePublication(svc service.PublicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.PublicationInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		pub, err := svc.Update(c.UserContext(), in, middleware.SubjectFromCtx(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(pub)
	}
}

// GetPublication returns a publication and whether the caller voted on it.
//
// @Summary Get a publication
// @Tags publication
// @Produce json
// @Security BearerAuth
// @Param id path int true "publication id"
// @Success 200 {object} service.PublicationDetail
// @Failure 404 {object} errorPayload
// @Router /v1/publication/{id} [get]
func GetPublication(svc service.PublicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := publicationID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		pub, err := svc.Get(c.UserContext(), id, middleware.SubjectFromCtx(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(pub)
	}
}

// PublicationsByEmail lists every publication of one author.
//
// @Summary Publications by author
// @Tags publication
// @Produce json
// @Security BearerAuth
// @Param email path string true "author email"
// @Success 200 {array} model.Publication
// @Failure 404 {object} errorPayload
// @Router /v1/publication/email/{email} [get]
func PublicationsByEmail(svc service.PublicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pubs, err := svc.ByEmail(c.UserContext(), c.Params("email"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(pubs)
	}
}

// TopPublications returns the best scored publications.
//
// @Summary Top publications
// @Tags publication
// @Produce json
// @Success 200 {array} model.Publication
// @Failure 404 {object} errorPayload
// @Router /publication/publications/top [get]
func TopPublications(svc service.PublicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pubs, err := svc.Top(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(pubs)
	}
}

// PendingPublications lists publications awaiting moderation.
//
// @Summary Pending publications
// @Tags publication
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Publication
// @Router /v1/publication/pending [get]
func PendingPublications(svc service.PublicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pubs, err := svc.Pending(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(pubs)
	}
}

// ListPublications serves one page of publications ordered by criterion.
// The response carries at most 15 publications and an estimate of how many
// further pages exist.
//
// @Summary List publications by sort order
// @Description like: score, user: author, date: newest first, aleatory: random, userQuantity: most prolific authors
// @Tags publication
// @Produce json
// @Security BearerAuth
// @Param pag path int true "page number, starting at 1"
// @Success 200 {object} service.PublicationPage
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /v1/publication/like/{pag} [get]
// @Router /v1/publication/user/{pag} [get]
// @Router /v1/publication/date/{pag} [get]
// @Router /v1/publication/aleatory/{pag} [get]
// @Router /v1/publication/userQuantity/{pag} [get]
func ListPublications(svc service.PublicationService, criterion repository.Criterion) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := strconv.Atoi(c.Params("pag"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "invalid page")
		}

		res, err := svc.ListByCriterion(c.UserContext(), criterion, page)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// UploadPublicationImage attaches an image (multipart field "file") to a publication.
//
// @Summary Upload a publication image
// @Tags publication
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "publication id"
// @Param file formData file true "image"
// @Success 200 {object} model.Publication
// @Router /v1/publication/{id}/image [post]
func UploadPublicationImage(svc service.PublicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := publicationID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		pub, err := svc.UploadImage(c.UserContext(), id, middleware.SubjectFromCtx(c), f, fh.Filename, ct, fh.Size)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(pub)
	}
}

// PublicationImage returns a short-lived download URL for the publication image.
//
// @Summary Publication image URL
// @Tags publication
// @Produce json
// @Security BearerAuth
// @Param id path int true "publication id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errorPayload
// @Router /v1/publication/{id}/image [get]
func PublicationImage(svc service.PublicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := publicationID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		url, err := svc.ImageURL(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}
}
