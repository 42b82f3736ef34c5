// Package startups implements the submission workflow and the query side
// of the startup listing.
package startups

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/arkadem/startup-board/database/models"
	repo "github.com/arkadem/startup-board/database/repo/startups"
	"github.com/arkadem/startup-board/internal/uploads"
)

var (
	// ErrMissingRequiredField is returned when name or description is
	// empty after trimming.
	ErrMissingRequiredField = errors.New("name and description are required")

	// ErrNoFileProvided is returned when the request carried no logo
	// file part at all.
	ErrNoFileProvided = errors.New("no logo file provided")

	// ErrSearchFailed wraps storage read failures during search.
	ErrSearchFailed = errors.New("search failed")

	// ErrNotFound is returned for an unknown startup id.
	ErrNotFound = errors.New("startup not found")
)

// SubmitInput carries the submission form fields. Logo is nil when the
// request had no file part.
type SubmitInput struct {
	Name        string
	Description string
	Logo        *multipart.FileHeader
}

// Service orchestrates validation, file intake and record creation.
type Service struct {
	repo   *repo.Repository
	intake *uploads.Intake
}

func NewService(repo *repo.Repository, intake *uploads.Intake) *Service {
	return &Service{repo: repo, intake: intake}
}

// Submit validates the submission end to end and creates the startup
// record. Failures at any step leave no partial state: field validation
// happens before any file handling, intake failures create no record, and
// a record-creation failure removes the already stored file.
func (s *Service) Submit(ctx context.Context, in SubmitInput, user *models.User) (*models.Startup, error) {
	name := strings.TrimSpace(in.Name)
	description := strings.TrimSpace(in.Description)
	if name == "" || description == "" {
		return nil, ErrMissingRequiredField
	}

	if in.Logo == nil {
		return nil, ErrNoFileProvided
	}

	storedName, err := s.intake.Store(ctx, in.Logo, user.ID)
	if err != nil {
		return nil, err
	}

	startup := &models.Startup{
		Name:        name,
		Description: description,
		Logo:        &storedName,
		UserID:      user.ID,
	}

	if err := s.repo.Create(ctx, startup); err != nil {
		if derr := s.intake.Discard(ctx, storedName); derr != nil {
			log.Error().Err(derr).Str("filename", storedName).Msg("failed to discard orphaned logo file")
		}
		return nil, fmt.Errorf("create startup record: %w", err)
	}

	log.Info().Uint("startup_id", startup.ID).Uint("user_id", user.ID).Str("logo", storedName).Msg("startup submitted")
	return startup, nil
}

// List returns all startups.
func (s *Service) List(ctx context.Context) ([]*models.Startup, error) {
	return s.repo.ListAll(ctx)
}

// Search returns startups matching the query. Callers are responsible for
// rejecting empty queries before calling. Storage read failures surface as
// ErrSearchFailed.
func (s *Service) Search(ctx context.Context, query string) ([]*models.Startup, error) {
	results, err := s.repo.Search(ctx, query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("startup search failed")
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	return results, nil
}

// Get returns the startup with the given id or ErrNotFound.
func (s *Service) Get(ctx context.Context, id uint) (*models.Startup, error) {
	startup, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrStartupNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return startup, nil
}
