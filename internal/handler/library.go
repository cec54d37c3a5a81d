package handler

import (
	"errors"
	"net/http"

	"github.com/archivo/archivo/internal/model"
	"github.com/archivo/archivo/internal/service"
)

// CreateLibrary handles POST /bibliotecas/
func (h *Handler) CreateLibrary(w http.ResponseWriter, r *http.Request) {
	var req model.LibraryInput
	if err := readJSON(r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	library, err := h.librarySvc.Create(r.Context(), req)
	if err != nil {
		if writeValidationError(w, r, err) {
			return
		}
		h.log.Error().Err(err).Msg("failed to create library")
		writeError(w, r, http.StatusInternalServerError, "internal_error", "Failed to create library")
		return
	}

	writeJSON(w, http.StatusCreated, library)
}

// ListLibraries handles GET /bibliotecas/
func (h *Handler) ListLibraries(w http.ResponseWriter, r *http.Request) {
	libraries, err := h.librarySvc.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list libraries")
		writeError(w, r, http.StatusInternalServerError, "internal_error", "Failed to list libraries")
		return
	}

	writeJSON(w, http.StatusOK, libraries)
}

// GetLibrary handles GET /bibliotecas/{id}
func (h *Handler) GetLibrary(w http.ResponseWriter, r *http.Request) {
	libraryID := r.PathValue("id")

	library, err := h.librarySvc.GetByID(r.Context(), libraryID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLibraryNotFound):
			writeError(w, r, http.StatusNotFound, "not_found", "Biblioteca no encontrada")
		default:
			h.log.Error().Err(err).Str("library_id", libraryID).Msg("failed to get library")
			writeError(w, r, http.StatusInternalServerError, "internal_error", "Failed to get library")
		}
		return
	}

	writeJSON(w, http.StatusOK, library)
}
