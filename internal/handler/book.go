package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/archivo/archivo/internal/model"
	"github.com/archivo/archivo/internal/service"
)

// CreateBook handles POST /libros/
func (h *Handler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req model.BookInput
	if err := readJSON(r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	book, err := h.bookSvc.Create(r.Context(), req)
	if err != nil {
		originID := ""
		if req.OriginLibraryID != nil {
			originID = *req.OriginLibraryID
		}
		switch {
		case writeValidationError(w, r, err):
		case errors.Is(err, service.ErrOriginLibraryNotFound):
			writeError(w, r, http.StatusNotFound, "not_found",
				fmt.Sprintf("La Biblioteca Dimensional de origen con ID '%s' no existe.", originID))
		default:
			h.log.Error().Err(err).Str("library_id", originID).Msg("failed to create book")
			writeError(w, r, http.StatusInternalServerError, "internal_error", "Failed to create book")
		}
		return
	}

	writeJSON(w, http.StatusCreated, book)
}

// ListBooks handles GET /libros/?biblioteca_id=
func (h *Handler) ListBooks(w http.ResponseWriter, r *http.Request) {
	libraryID := r.URL.Query().Get("biblioteca_id")

	books, err := h.bookSvc.List(r.Context(), libraryID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFilterLibraryNotFound):
			writeError(w, r, http.StatusNotFound, "not_found",
				fmt.Sprintf("La Biblioteca Dimensional con ID '%s' para filtrar no existe.", libraryID))
		default:
			h.log.Error().Err(err).Str("library_id", libraryID).Msg("failed to list books")
			writeError(w, r, http.StatusInternalServerError, "internal_error", "Failed to list books")
		}
		return
	}

	writeJSON(w, http.StatusOK, books)
}

// GetBook handles GET /libros/{id}
func (h *Handler) GetBook(w http.ResponseWriter, r *http.Request) {
	bookID := r.PathValue("id")

	book, err := h.bookSvc.GetByID(r.Context(), bookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			writeError(w, r, http.StatusNotFound, "not_found", "Libro no encontrado")
		default:
			h.log.Error().Err(err).Str("book_id", bookID).Msg("failed to get book")
			writeError(w, r, http.StatusInternalServerError, "internal_error", "Failed to get book")
		}
		return
	}

	writeJSON(w, http.StatusOK, book)
}
