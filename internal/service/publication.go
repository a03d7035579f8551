package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"agroapi/internal/model"
	"agroapi/internal/pagination"
	"agroapi/internal/repository"
	"agroapi/internal/storage"
)

const (
	topPublications = 6
	imageURLExpiry  = 15 * time.Minute
)

// PublicationInput carries the author-editable fields of a publication.
// ID is only read by Update.
type PublicationInput struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	PlantationID int64  `json:"plantation_id"`
	Visibility   bool   `json:"visibility"`
}

func (in PublicationInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidArgument)
	}
	if strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrInvalidArgument)
	}
	if in.PlantationID <= 0 {
		return fmt.Errorf("%w: plantation_id is required", ErrInvalidArgument)
	}
	return nil
}

// PublicationDetail is a publication seen by a specific user.
type PublicationDetail struct {
	model.Publication
	UserVote bool `json:"user_vote"`
}

// PublicationPage is one page of a sorted listing. Pagination is the
// estimated number of pages after this one.
type PublicationPage struct {
	Publications []model.Publication `json:"publications"`
	Pagination   int                 `json:"pagination"`
}

// PublicationService defines the publication use cases.
type PublicationService interface {
	// Save creates a pending, invisible, zero-score publication authored by the user with email.
	Save(ctx context.Context, in PublicationInput, email string) (*model.Publication, error)

	// Update overwrites the editable fields of an existing publication. Only its author or an admin may do so.
	Update(ctx context.Context, in PublicationInput, email string) (*model.Publication, error)

	// Get returns a publication and whether the user with email has voted on it.
	Get(ctx context.Context, id int64, email string) (*PublicationDetail, error)

	// Top returns the highest-scored publications.
	Top(ctx context.Context) ([]model.Publication, error)

	// ByEmail returns all publications of the author with email.
	ByEmail(ctx context.Context, email string) ([]model.Publication, error)

	// Pending returns publications waiting for moderation.
	Pending(ctx context.Context) ([]model.Publication, error)

	// ListByCriterion returns the 1-based page of publications in criterion order.
	ListByCriterion(ctx context.Context, c repository.Criterion, page int) (*PublicationPage, error)

	// UploadImage stores an image for the publication and records its key.
	UploadImage(ctx context.Context, id int64, email string, r io.Reader, originalFilename, contentType string, size int64) (*model.Publication, error)

	// ImageURL returns a short-lived download URL for the publication image.
	ImageURL(ctx context.Context, id int64) (string, error)
}

type publicationService struct {
	pubs  repository.PublicationRepository
	users repository.UserRepository
	votes repository.VoteRepository
	store storage.Storage
	now   func() time.Time
}

// NewPublicationService constructs a new PublicationService.
func NewPublicationService(
	pubs repository.PublicationRepository,
	users repository.UserRepository,
	votes repository.VoteRepository,
	store storage.Storage,
) PublicationService {
	return &publicationService{
		pubs:  pubs,
		users: users,
		votes: votes,
		store: store,
		now:   time.Now,
	}
}

func (s *publicationService) Save(ctx context.Context, in PublicationInput, email string) (*model.Publication, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	author, err := s.caller(ctx, email)
	if err != nil {
		return nil, err
	}

	pub := &model.Publication{
		Title:           in.Title,
		Content:         in.Content,
		PlantationID:    in.PlantationID,
		AuthorID:        author.ID,
		Score:           0,
		Visibility:      false,
		StateID:         model.StatePending,
		PublicationDate: s.now().UTC(),
	}
	stored, err := s.pubs.Create(ctx, pub)
	if err != nil {
		return nil, fmt.Errorf("save publication: %w", err)
	}
	return stored, nil
}

func (s *publicationService) Update(ctx context.Context, in PublicationInput, email string) (*model.Publication, error) {
	if in.ID <= 0 {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidArgument)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	user, err := s.caller(ctx, email)
	if err != nil {
		return nil, err
	}
	saved, err := s.editable(ctx, in.ID, user)
	if err != nil {
		return nil, err
	}

	saved.UpdateInfo(model.Publication{
		Title:        in.Title,
		Content:      in.Content,
		PlantationID: in.PlantationID,
		Visibility:   in.Visibility,
	})
	updated, err := s.pubs.Update(ctx, saved)
	if err != nil {
		return nil, notFound(err)
	}
	return updated, nil
}

func (s *publicationService) Get(ctx context.Context, id int64, email string) (*PublicationDetail, error) {
	user, err := s.caller(ctx, email)
	if err != nil {
		return nil, err
	}
	pub, err := s.pubs.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	voted, err := s.votes.HasVoted(ctx, user.ID, id)
	if err != nil {
		return nil, fmt.Errorf("lookup vote: %w", err)
	}
	return &PublicationDetail{Publication: *pub, UserVote: voted}, nil
}

func (s *publicationService) Top(ctx context.Context) ([]model.Publication, error) {
	pubs, err := s.pubs.Top(ctx, topPublications)
	if err != nil {
		return nil, err
	}
	if len(pubs) == 0 {
		return nil, ErrNotFound
	}
	if len(pubs) > topPublications {
		pubs = pubs[:topPublications]
	}
	return pubs, nil
}

func (s *publicationService) ByEmail(ctx context.Context, email string) ([]model.Publication, error) {
	pubs, err := s.pubs.ListByAuthorEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if len(pubs) == 0 {
		return nil, ErrNotFound
	}
	return pubs, nil
}

func (s *publicationService) Pending(ctx context.Context) ([]model.Publication, error) {
	return s.pubs.ListPending(ctx)
}

func (s *publicationService) ListByCriterion(ctx context.Context, c repository.Criterion, page int) (*PublicationPage, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: unknown sort criterion %q", ErrInvalidArgument, c)
	}
	offset, err := pagination.Offset(page)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	rows, err := s.pubs.ListSorted(ctx, c, repository.PageQuery{Limit: pagination.FetchCap, Offset: offset})
	if err != nil {
		return nil, fmt.Errorf("list publications by %s: %w", c, err)
	}

	window, err := pagination.Slice(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return &PublicationPage{Publications: window.Items, Pagination: window.More}, nil
}

func (s *publicationService) UploadImage(ctx context.Context, id int64, email string, r io.Reader, originalFilename, contentType string, size int64) (*model.Publication, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	user, err := s.caller(ctx, email)
	if err != nil {
		return nil, err
	}
	pub, err := s.editable(ctx, id, user)
	if err != nil {
		return nil, err
	}

	key := filepath.ToSlash(filepath.Join("publications", fmt.Sprint(id), uuid.NewString()+filepath.Ext(originalFilename)))
	obj, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	if err := s.pubs.SetImagePath(ctx, id, obj.Key); err != nil {
		if delErr := s.store.Delete(ctx, obj.Key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", notFound(err))
	}

	pub.ImagePath = obj.Key
	return pub, nil
}

func (s *publicationService) ImageURL(ctx context.Context, id int64) (string, error) {
	pub, err := s.pubs.FindByID(ctx, id)
	if err != nil {
		return "", notFound(err)
	}
	if pub.ImagePath == "" {
		return "", ErrNotFound
	}
	return s.store.PresignGet(ctx, pub.ImagePath, imageURLExpiry)
}

// caller resolves the authenticated user. A token for a deleted account is unauthorized.
func (s *publicationService) caller(ctx context.Context, email string) (*model.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrUnauthorized
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

// editable loads a publication the user is allowed to modify.
func (s *publicationService) editable(ctx context.Context, id int64, user *model.User) (*model.Publication, error) {
	pub, err := s.pubs.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if pub.AuthorID != user.ID && user.Role != model.RoleAdmin {
		return nil, ErrForbidden
	}
	return pub, nil
}
