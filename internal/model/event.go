package model

import "time"

// CatalogEvent is published after a catalog record is created
type CatalogEvent struct {
	Type       string    `json:"type"`
	ResourceID string    `json:"resourceId"`
	LibraryID  string    `json:"libraryId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Catalog event types, also used as audit actions
const (
	EventLibraryCreated = "library.created"
	EventBookCreated    = "book.created"
)

// Resource types for audit lines
const (
	ResourceLibrary = "library"
	ResourceBook    = "book"
)
