package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/driftline/infinite-library/internal/browse"
	"github.com/driftline/infinite-library/internal/corpus"
	"github.com/driftline/infinite-library/internal/session"
	"github.com/go-chi/chi/v5"
)

type SessionHandler struct {
	sessions *session.Service
	corpus   *corpus.Corpus
}

func NewSessionHandler(svc *session.Service, c *corpus.Corpus) *SessionHandler {
	return &SessionHandler{sessions: svc, corpus: c}
}

// sessionResponse is the full render model for one surface: the state,
// what it makes visible, and the active document expanded for the reading
// pane. Count and total let a surface tell an empty result from an empty
// archive.
type sessionResponse struct {
	ID      string            `json:"id"`
	State   browse.State      `json:"state"`
	Visible []documentSummary `json:"visible"`
	Active  *documentDetail   `json:"active,omitempty"`
	Count   int               `json:"count"`
	Total   int               `json:"total"`
}

func (h *SessionHandler) respond(w http.ResponseWriter, status int, sess session.Session) {
	visible := browse.VisibleDocuments(h.corpus, sess.State)

	resp := sessionResponse{
		ID:      sess.ID,
		State:   sess.State,
		Visible: make([]documentSummary, 0, len(visible)),
		Count:   len(visible),
		Total:   len(h.corpus.Documents()),
	}
	for _, d := range visible {
		resp.Visible = append(resp.Visible, summarize(h.corpus, d))
	}

	if sess.State.ActiveDocumentID != "" {
		if d, ok := h.corpus.DocumentByID(sess.State.ActiveDocumentID); ok {
			det := detail(h.corpus, d)
			resp.Active = &det
		}
	}

	writeJSON(w, status, resp)
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusCreated, h.sessions.Create())
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	h.respond(w, http.StatusOK, sess)
}

func (h *SessionHandler) UpdateView(w http.ResponseWriter, r *http.Request) {
	var changes session.ViewChanges
	if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := h.sessions.ApplyView(chi.URLParam(r, "id"), changes)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update view")
		return
	}

	h.respond(w, http.StatusOK, sess)
}

type selectActiveRequest struct {
	DocumentID string `json:"document_id"`
}

// SelectActive sets the active document. Ids outside the visible set are
// not an error; the reconciled state in the response is the answer.
func (h *SessionHandler) SelectActive(w http.ResponseWriter, r *http.Request) {
	var req selectActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := h.sessions.Select(chi.URLParam(r, "id"), req.DocumentID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to select document")
		return
	}

	h.respond(w, http.StatusOK, sess)
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.sessions.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
