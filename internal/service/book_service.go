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

// DefaultAuthor is used when the configuration does not name one
const DefaultAuthor = "Desconocido"

// LibraryLookup answers whether a library exists.
// BookService depends on it to check origin and filter ids.
type LibraryLookup interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// BookService handles lost book business logic
type BookService struct {
	bookRepo  *repository.BookRepository
	libraries LibraryLookup
	ids       idgen.Generator
	events    EventPublisher
	cfg       *config.Config
	log       *logger.Logger
}

// NewBookService creates a new BookService
func NewBookService(
	bookRepo *repository.BookRepository,
	libraries LibraryLookup,
	ids idgen.Generator,
	events EventPublisher,
	cfg *config.Config,
	log *logger.Logger,
) *BookService {
	if events == nil {
		events = NopPublisher{}
	}
	return &BookService{
		bookRepo:  bookRepo,
		libraries: libraries,
		ids:       ids,
		events:    events,
		cfg:       cfg,
		log:       log.WithComponent("book_service"),
	}
}

// Create stores a book whose origin library exists.
// The origin check runs before an identifier is generated, so a rejected
// request leaves no trace.
func (s *BookService) Create(ctx context.Context, input model.BookInput) (*model.Book, error) {
	if err := required("titulo", input.Title); err != nil {
		return nil, err
	}
	if err := required("biblioteca_origen_id", input.OriginLibraryID); err != nil {
		return nil, err
	}

	originID := *input.OriginLibraryID

	exists, err := s.libraries.Exists(ctx, originID)
	if err != nil {
		return nil, fmt.Errorf("failed to check origin library: %w", err)
	}
	if !exists {
		return nil, ErrOriginLibraryNotFound
	}

	author := input.Author
	if !input.AuthorProvided() {
		a := s.defaultAuthor()
		author = &a
	}

	book := &model.Book{
		ID:               s.ids.NewID(),
		Title:            *input.Title,
		Author:           author,
		CoverDescription: input.CoverDescription,
		OriginLibraryID:  originID,
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to store book: %w", err)
	}

	s.log.AuditLog(model.EventBookCreated, model.ResourceBook, book.ID, map[string]interface{}{
		"library_id": book.OriginLibraryID,
	})
	publishEvent(ctx, s.events, s.cfg.Catalog.EventsChannel, model.CatalogEvent{
		Type:       model.EventBookCreated,
		ResourceID: book.ID,
		LibraryID:  book.OriginLibraryID,
	}, s.log)

	return book, nil
}

// List returns every book, or only those from libraryID when it is non-empty.
// A non-empty filter must name an existing library.
func (s *BookService) List(ctx context.Context, libraryID string) ([]model.Book, error) {
	if libraryID == "" {
		books, err := s.bookRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list books: %w", err)
		}
		return books, nil
	}

	exists, err := s.libraries.Exists(ctx, libraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to check filter library: %w", err)
	}
	if !exists {
		return nil, ErrFilterLibraryNotFound
	}

	books, err := s.bookRepo.ListByLibraryID(ctx, libraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// GetByID returns a book or ErrBookNotFound
func (s *BookService) GetByID(ctx context.Context, id string) (*model.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return book, nil
}

func (s *BookService) defaultAuthor() string {
	if s.cfg != nil && s.cfg.Catalog.DefaultAuthor != "" {
		return s.cfg.Catalog.DefaultAuthor
	}
	return DefaultAuthor
}
