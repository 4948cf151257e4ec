package http

import (
	"net/http"
	"time"

	"github.com/adilbekov/notekeeper/internal/auth/guard"
	commonerrors "github.com/adilbekov/notekeeper/internal/common/errors"
	commonhttp "github.com/adilbekov/notekeeper/internal/common/http"
	"github.com/adilbekov/notekeeper/internal/common/logger"
	"github.com/adilbekov/notekeeper/internal/note/domain"
	"github.com/adilbekov/notekeeper/internal/note/service"
)

type addNoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type editNoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type updatePinnedRequest struct {
	IsPinned bool `json:"isPinned"`
}

type notePayload struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	IsPinned  bool      `json:"isPinned"`
	UserID    string    `json:"userId"`
	CreatedOn time.Time `json:"createdOn"`
}

type noteResponse struct {
	Error   bool        `json:"error"`
	Note    notePayload `json:"note"`
	Message string      `json:"message"`
}

type notesResponse struct {
	Error   bool          `json:"error"`
	Notes   []notePayload `json:"notes"`
	Message string        `json:"message"`
}

type ackResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type Handler struct {
	notes   *service.NoteService
	guard   *guard.Guard
	log     *logger.Logger
	timeout time.Duration
}

func NewHandler(notes *service.NoteService, g *guard.Guard, timeout time.Duration, log *logger.Logger) *Handler {
	return &Handler{notes: notes, guard: g, log: log, timeout: timeout}
}

// Register mounts the note routes; every one of them sits behind the guard.
func (h *Handler) Register(mux *http.ServeMux) {
	protect := h.guard.Middleware()
	withTimeout := commonhttp.WithTimeout(h.timeout)

	mux.Handle("POST /add-note", protect(withTimeout(h.addNote)))
	mux.Handle("PUT /edit-note/{noteId}", protect(withTimeout(h.editNote)))
	mux.Handle("GET /get-all-notes", protect(withTimeout(h.getAllNotes)))
	mux.Handle("DELETE /delete-note/{noteId}", protect(withTimeout(h.deleteNote)))
	mux.Handle("PUT /update-note-pinned/{noteId}", protect(withTimeout(h.updatePinned)))
	mux.Handle("GET /search-notes", protect(withTimeout(h.searchNotes)))
}

func (h *Handler) addNote(w http.ResponseWriter, r *http.Request) {
	identity, ok := guard.FromContext(r.Context())
	if !ok {
		commonhttp.WriteStatus(w, http.StatusUnauthorized)
		return
	}

	var req addNoteRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("add note failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	note, err := h.notes.Add(r.Context(), identity.UserID, service.AddInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, noteResponse{
		Error:   false,
		Note:    toNotePayload(note),
		Message: "Note added successfully",
	})
}

func (h *Handler) editNote(w http.ResponseWriter, r *http.Request) {
	identity, ok := guard.FromContext(r.Context())
	if !ok {
		commonhttp.WriteStatus(w, http.StatusUnauthorized)
		return
	}

	var req editNoteRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("edit note failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	note, err := h.notes.Edit(r.Context(), identity.UserID, domain.ID(r.PathValue("noteId")), service.EditInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, noteResponse{
		Error:   false,
		Note:    toNotePayload(note),
		Message: "Note updated successfully",
	})
}

func (h *Handler) getAllNotes(w http.ResponseWriter, r *http.Request) {
	identity, ok := guard.FromContext(r.Context())
	if !ok {
		commonhttp.WriteStatus(w, http.StatusUnauthorized)
		return
	}

	notes, err := h.notes.List(r.Context(), identity.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, notesResponse{
		Error:   false,
		Notes:   toNotePayloads(notes),
		Message: "All notes retrieved successfully",
	})
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	identity, ok := guard.FromContext(r.Context())
	if !ok {
		commonhttp.WriteStatus(w, http.StatusUnauthorized)
		return
	}

	if err := h.notes.Delete(r.Context(), identity.UserID, domain.ID(r.PathValue("noteId"))); err != nil {
		h.writeError(w, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, ackResponse{
		Error:   false,
		Message: "Note deleted successfully",
	})
}

func (h *Handler) updatePinned(w http.ResponseWriter, r *http.Request) {
	identity, ok := guard.FromContext(r.Context())
	if !ok {
		commonhttp.WriteStatus(w, http.StatusUnauthorized)
		return
	}

	// A missing isPinned field decodes to false, which is also what an
	// explicit false sends. The two are deliberately indistinguishable.
	var req updatePinnedRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("update pinned failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	note, err := h.notes.UpdatePinned(r.Context(), identity.UserID, domain.ID(r.PathValue("noteId")), req.IsPinned)
	if err != nil {
		h.writeError(w, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, noteResponse{
		Error:   false,
		Note:    toNotePayload(note),
		Message: "Note updated successfully",
	})
}

func (h *Handler) searchNotes(w http.ResponseWriter, r *http.Request) {
	identity, ok := guard.FromContext(r.Context())
	if !ok {
		commonhttp.WriteStatus(w, http.StatusUnauthorized)
		return
	}

	notes, err := h.notes.Search(r.Context(), identity.UserID, r.URL.Query().Get("query"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, notesResponse{
		Error:   false,
		Notes:   toNotePayloads(notes),
		Message: "Notes matching the search query retrieved successfully",
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if domainErr, ok := commonerrors.AsDomainError(err); ok {
		if domainErr.Category() == commonerrors.CategoryInternal {
			h.log.Errorf("note handler internal error: %v", err)
			commonhttp.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		commonhttp.WriteError(w, domainErr.HTTPStatus(), domainErr.Message())
		return
	}

	h.log.Errorf("note handler unhandled error: %v", err)
	commonhttp.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
}

func toNotePayload(note domain.Note) notePayload {
	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}
	return notePayload{
		ID:        string(note.ID),
		Title:     note.Title,
		Content:   note.Content,
		Tags:      tags,
		IsPinned:  note.IsPinned,
		UserID:    note.OwnerID,
		CreatedOn: note.CreatedAt,
	}
}

func toNotePayloads(notes []domain.Note) []notePayload {
	payloads := make([]notePayload, 0, len(notes))
	for _, note := range notes {
		payloads = append(payloads, toNotePayload(note))
	}
	return payloads
}
