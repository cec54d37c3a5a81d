package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/archivo/archivo/internal/config"
	"github.com/archivo/archivo/internal/idgen"
	"github.com/archivo/archivo/internal/logger"
	"github.com/archivo/archivo/internal/model"
	"github.com/archivo/archivo/internal/repository"
	"github.com/archivo/archivo/internal/service"
)

const testChannel = "archivo:test"

type publishedMessage struct {
	channel string
	event   model.CatalogEvent
}

type publisherSpy struct {
	mu       sync.Mutex
	messages []publishedMessage
	err      error
}

func (p *publisherSpy) Publish(_ context.Context, channel string, message interface{}) error {
	if p.err != nil {
		return p.err
	}

	var evt model.CatalogEvent
	if err := json.Unmarshal(message.([]byte), &evt); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, publishedMessage{channel: channel, event: evt})
	return nil
}

func (p *publisherSpy) published() []publishedMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedMessage(nil), p.messages...)
}

type failingLookup struct{}

func (failingLookup) Exists(context.Context, string) (bool, error) {
	return false, errors.New("lookup unavailable")
}

type fixture struct {
	libraryRepo *repository.LibraryRepository
	bookRepo    *repository.BookRepository
	libraries   *service.LibraryService
	books       *service.BookService
	events      *publisherSpy
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{Catalog: config.CatalogConfig{
		DefaultAuthor: service.DefaultAuthor,
		EventsChannel: testChannel,
	}}
	log := logger.Nop()
	events := &publisherSpy{}

	libraryRepo := repository.NewLibraryRepository()
	bookRepo := repository.NewBookRepository()
	libraries := service.NewLibraryService(libraryRepo, idgen.NewSequence(idgen.LibraryPrefix), events, cfg, log)
	books := service.NewBookService(bookRepo, libraries, idgen.NewSequence(idgen.BookPrefix), events, cfg, log)

	return &fixture{
		libraryRepo: libraryRepo,
		bookRepo:    bookRepo,
		libraries:   libraries,
		books:       books,
		events:      events,
	}
}

func (f *fixture) mustCreateLibrary(t *testing.T, name string) *model.Library {
	t.Helper()

	library, err := f.libraries.Create(context.Background(), model.LibraryInput{Name: strPtr(name), Plane: strPtr("Plano Astral")})
	require.NoError(t, err, "Should create library %q", name)
	return library
}

func (f *fixture) mustCreateBook(t *testing.T, title, libraryID string) *model.Book {
	t.Helper()

	book, err := f.books.Create(context.Background(), model.BookInput{Title: strPtr(title), OriginLibraryID: strPtr(libraryID)})
	require.NoError(t, err, "Should create book %q", title)
	return book
}

func strPtr(s string) *string { return &s }
