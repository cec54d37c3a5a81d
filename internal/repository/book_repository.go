package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/archivo/archivo/internal/model"
)

// BookRepository holds books in memory, in insertion order.
// It does not know about libraries; origin checks belong to the service layer.
type BookRepository struct {
	mu    sync.RWMutex
	byID  map[string]model.Book
	order []string
}

// NewBookRepository creates an empty BookRepository
func NewBookRepository() *BookRepository {
	return &BookRepository{
		byID: make(map[string]model.Book),
	}
}

// Create inserts a new book
func (r *BookRepository) Create(ctx context.Context, book *model.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[book.ID]; ok {
		return fmt.Errorf("failed to create book %q: %w", book.ID, ErrDuplicate)
	}
	r.byID[book.ID] = book.Clone()
	r.order = append(r.order, book.ID)
	return nil
}

// GetByID retrieves a book by ID
func (r *BookRepository) GetByID(ctx context.Context, id string) (*model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	book, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := book.Clone()
	return &clone, nil
}

// List returns every book in insertion order
func (r *BookRepository) List(ctx context.Context) ([]model.Book, error) {
	return r.filter(func(model.Book) bool { return true }), nil
}

// ListByLibraryID returns the books whose origin library is libraryID
func (r *BookRepository) ListByLibraryID(ctx context.Context, libraryID string) ([]model.Book, error) {
	return r.filter(func(b model.Book) bool { return b.OriginLibraryID == libraryID }), nil
}

// Count returns the number of stored books
func (r *BookRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

func (r *BookRepository) filter(keep func(model.Book) bool) []model.Book {
	r.mu.RLock()
	defer r.mu.RUnlock()

	books := make([]model.Book, 0)
	for _, id := range r.order {
		book := r.byID[id]
		if keep(book) {
			books = append(books, book.Clone())
		}
	}
	return books
}
