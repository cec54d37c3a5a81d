package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/archivo/archivo/internal/model"
)

// LibraryRepository holds libraries in memory, in insertion order
type LibraryRepository struct {
	mu    sync.RWMutex
	byID  map[string]model.Library
	order []string
}

// NewLibraryRepository creates an empty LibraryRepository
func NewLibraryRepository() *LibraryRepository {
	return &LibraryRepository{
		byID: make(map[string]model.Library),
	}
}

// Create inserts a new library
func (r *LibraryRepository) Create(ctx context.Context, library *model.Library) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[library.ID]; ok {
		return fmt.Errorf("failed to create library %q: %w", library.ID, ErrDuplicate)
	}
	r.byID[library.ID] = library.Clone()
	r.order = append(r.order, library.ID)
	return nil
}

// GetByID retrieves a library by ID
func (r *LibraryRepository) GetByID(ctx context.Context, id string) (*model.Library, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	library, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := library.Clone()
	return &clone, nil
}

// Exists reports whether a library with the given ID is stored
func (r *LibraryRepository) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byID[id]
	return ok, nil
}

// List returns every library in insertion order
func (r *LibraryRepository) List(ctx context.Context) ([]model.Library, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	libraries := make([]model.Library, 0, len(r.order))
	for _, id := range r.order {
		libraries = append(libraries, r.byID[id].Clone())
	}
	return libraries, nil
}

// Count returns the number of stored libraries
func (r *LibraryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
