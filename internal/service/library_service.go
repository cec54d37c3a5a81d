package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/archivo/archivo/internal/config"
	"github.com/archivo/archivo/internal/idgen"
	"github.com/archivo/archivo/internal/logger"
	"github.com/archivo/archivo/internal/model"
	"github.com/archivo/archivo/internal/repository"
)

// LibraryService handles dimensional library business logic
type LibraryService struct {
	libraryRepo *repository.LibraryRepository
	ids         idgen.Generator
	events      EventPublisher
	cfg         *config.Config
	log         *logger.Logger
}

// NewLibraryService creates a new LibraryService
func NewLibraryService(
	libraryRepo *repository.LibraryRepository,
	ids idgen.Generator,
	events EventPublisher,
	cfg *config.Config,
	log *logger.Logger,
) *LibraryService {
	if events == nil {
		events = NopPublisher{}
	}
	return &LibraryService{
		libraryRepo: libraryRepo,
		ids:         ids,
		events:      events,
		cfg:         cfg,
		log:         log.WithComponent("library_service"),
	}
}

// Create validates the input, assigns an identifier and stores the library
func (s *LibraryService) Create(ctx context.Context, input model.LibraryInput) (*model.Library, error) {
	if err := required("nombre", input.Name); err != nil {
		return nil, err
	}
	if err := required("plano_existencia", input.Plane); err != nil {
		return nil, err
	}

	library := &model.Library{
		ID:           s.ids.NewID(),
		Name:         *input.Name,
		Plane:        *input.Plane,
		Description:  input.Description,
		Architecture: input.Architecture,
	}
	if err := s.libraryRepo.Create(ctx, library); err != nil {
		return nil, fmt.Errorf("failed to store library: %w", err)
	}

	s.log.AuditLog(model.EventLibraryCreated, model.ResourceLibrary, library.ID, map[string]interface{}{
		"plane": library.Plane,
	})
	publishEvent(ctx, s.events, s.cfg.Catalog.EventsChannel, model.CatalogEvent{
		Type:       model.EventLibraryCreated,
		ResourceID: library.ID,
		LibraryID:  library.ID,
	}, s.log)

	return library, nil
}

// List returns every library in insertion order
func (s *LibraryService) List(ctx context.Context) ([]model.Library, error) {
	libraries, err := s.libraryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list libraries: %w", err)
	}
	return libraries, nil
}

// GetByID returns a library or ErrLibraryNotFound
func (s *LibraryService) GetByID(ctx context.Context, id string) (*model.Library, error) {
	library, err := s.libraryRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrLibraryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get library: %w", err)
	}
	return library, nil
}

// Exists reports whether a library is cataloged
func (s *LibraryService) Exists(ctx context.Context, id string) (bool, error) {
	return s.libraryRepo.Exists(ctx, id)
}
