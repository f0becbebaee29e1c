// Package notes is a built-in Johan Chat package and the reference for the
// package convention: it carries a manifest, Setup/Remove hooks, a route
// table served under /packages/notes, service functions over gorm, and a
// schema fragment adding the Note model to the shared schema.
package notes

import (
	"context"
	"encoding/json"
	"net/http"

	"johan/johan/middlewares"
	"johan/johan/pkghost"
	"johan/johan/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const schemaFragment = `
model Note {
  id        String   @id @default(uuid())
  userId    Int
  title     String
  content   String?
  favourite Boolean  @default(false)
  createdAt DateTime @default(now())
  updatedAt DateTime @updatedAt
}
`

type Package struct {
	svc *Service
}

func New(db *gorm.DB) *Package {
	return &Package{svc: NewService(db)}
}

func (p *Package) Manifest() pkghost.Manifest {
	return pkghost.Manifest{
		Name:        "notes",
		Version:     "1.0.0",
		Description: "Personal notes attached to the user's account",
		Main:        "notes.go",
	}
}

func (p *Package) Setup(ctx context.Context) error {
	logging.AppLogger.Info("notes package setup", zap.String("package", "notes"))
	return nil
}

func (p *Package) Remove(ctx context.Context) error {
	logging.AppLogger.Info("notes package removed", zap.String("package", "notes"))
	return nil
}

func (p *Package) Schema() string {
	return schemaFragment
}

func (p *Package) Models() []any {
	return []any{&Note{}}
}

func (p *Package) Routes() []pkghost.Route {
	return []pkghost.Route{
		{Method: "GET", Description: "List the user's notes", Path: "/", Handler: p.listNotes},
		{Method: "POST", Description: "Create a note", Path: "/", Handler: p.createNote},
		{Method: "GET", Description: "Fetch one note", Path: "/{note_id}", Handler: p.getNote},
		{Method: "PUT", Description: "Update a note", Path: "/{note_id}", Handler: p.updateNote},
		{Method: "DELETE", Description: "Delete a note", Path: "/{note_id}", Handler: p.deleteNote},
	}
}

type noteRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Favourite bool   `json:"favourite"`
}

func (p *Package) listNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middlewares.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	all, err := p.svc.ListNotes(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

func (p *Package) createNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := middlewares.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	note, err := p.svc.CreateNote(r.Context(), userID, req.Title, req.Content, req.Favourite)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (p *Package) getNote(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := noteTarget(w, r)
	if !ok {
		return
	}
	note, err := p.svc.GetNote(r.Context(), userID, id)
	if err != nil {
		writeNoteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (p *Package) updateNote(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := noteTarget(w, r)
	if !ok {
		return
	}
	var req map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	updates := map[string]interface{}{}
	for _, k := range []string{"title", "content", "favourite"} {
		if v, ok := req[k]; ok {
			updates[k] = v
		}
	}
	note, err := p.svc.UpdateNote(r.Context(), userID, id, updates)
	if err != nil {
		writeNoteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (p *Package) deleteNote(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := noteTarget(w, r)
	if !ok {
		return
	}
	if err := p.svc.DeleteNote(r.Context(), userID, id); err != nil {
		writeNoteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func noteTarget(w http.ResponseWriter, r *http.Request) (userID int, id uuid.UUID, ok bool) {
	userID, authed := middlewares.UserID(r.Context())
	if !authed {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return 0, uuid.Nil, false
	}
	id, err := uuid.Parse(chi.URLParam(r, "note_id"))
	if err != nil {
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return 0, uuid.Nil, false
	}
	return userID, id, true
}

func writeNoteError(w http.ResponseWriter, err error) {
	if err == ErrNoteNotFound {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
