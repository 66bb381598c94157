package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ukydev/travel-agency/internal/cms"
	"github.com/ukydev/travel-agency/internal/db"
	"github.com/ukydev/travel-agency/internal/middleware"
	"github.com/ukydev/travel-agency/internal/models"
)

// maxImageBytes bounds CMS image uploads.
const maxImageBytes = 10 << 20

// CMSHandler serves the staff editing screen.
type CMSHandler struct {
	manager *cms.Manager
}

// NewCMSHandler creates a CMS handler
func NewCMSHandler(manager *cms.Manager) *CMSHandler {
	return &CMSHandler{manager: manager}
}

func (h *CMSHandler) workspace(w http.ResponseWriter, r *http.Request) (*cms.Workspace, bool) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return nil, false
	}
	return h.manager.Workspace(claims.UserID), true
}

func tabFrom(r *http.Request) models.Kind {
	return models.Kind(mux.Vars(r)["tab"])
}

// respond writes the action result followed by the screen state. Errors are
// already reflected in the workspace notification.
func (h *CMSHandler) respond(w http.ResponseWriter, r *http.Request, ws *cms.Workspace, result any, err error) {
	status := http.StatusOK
	var missing *cms.MissingFieldsError
	var validation *db.ValidationError
	switch {
	case err == nil:
	case errors.Is(err, cms.ErrUnknownTab):
		http.Error(w, "Unknown tab", http.StatusNotFound)
		return
	case errors.Is(err, cms.ErrBusy):
		status = http.StatusConflict
	case errors.Is(err, cms.ErrNoModal), errors.Is(err, cms.ErrNotConfirmed):
		status = http.StatusBadRequest
	case errors.Is(err, cms.ErrNoImageStore):
		status = http.StatusServiceUnavailable
	case errors.As(err, &missing), errors.As(err, &validation):
		status = http.StatusUnprocessableEntity
	case db.IsNotFound(err):
		status = http.StatusNotFound
	default:
		status = http.StatusBadGateway
	}

	resp := map[string]any{"state": ws.State(r.Context())}
	if result != nil {
		resp["result"] = result
	}
	if err != nil {
		resp["error"] = err.Error()
	}
	writeJSON(w, status, resp)
}

// State returns the whole CMS screen
func (h *CMSHandler) State(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if r.URL.Query().Get("refresh") == "true" {
		_ = ws.Refresh(r.Context())
	}
	writeJSON(w, http.StatusOK, ws.State(r.Context()))
}

// SelectTab switches the active tab
func (h *CMSHandler) SelectTab(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	h.respond(w, r, ws, nil, ws.SelectTab(tabFrom(r)))
}

// OpenModal opens the add or edit modal. The optional id query parameter
// selects the listed record to edit.
func (h *CMSHandler) OpenModal(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	modal, err := ws.Open(tabFrom(r), r.URL.Query().Get("id"))
	h.respond(w, r, ws, modal, err)
}

// EditDraft merges the JSON body onto the open draft
func (h *CMSHandler) EditDraft(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	modal, err := ws.EditDraft(tabFrom(r), body)
	if err != nil && !errors.Is(err, cms.ErrUnknownTab) && !errors.Is(err, cms.ErrNoModal) && !errors.Is(err, cms.ErrBusy) {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	h.respond(w, r, ws, modal, err)
}

// CloseModal discards the open draft
func (h *CMSHandler) CloseModal(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	h.respond(w, r, ws, nil, ws.Close(tabFrom(r)))
}

// UploadImage accepts a multipart "image" file for the open draft
func (h *CMSHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		http.Error(w, "Invalid upload", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	url, err := ws.UploadImage(r.Context(), tabFrom(r), header.Filename, header.Header.Get("Content-Type"), file)
	var result any
	if err == nil {
		result = map[string]string{"url": url}
	}
	h.respond(w, r, ws, result, err)
}

// Save persists the open draft
func (h *CMSHandler) Save(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	saved, err := ws.Save(r.Context(), tabFrom(r))
	h.respond(w, r, ws, saved, err)
}

// Delete removes a record. The confirm=true query parameter is required.
func (h *CMSHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	confirmed := r.URL.Query().Get("confirm") == "true"
	h.respond(w, r, ws, nil, ws.Delete(r.Context(), tabFrom(r), mux.Vars(r)["id"], confirmed))
}

type featureRequest struct {
	Feature string `json:"feature"`
}

// AddFeature appends a feature to the car draft
func (h *CMSHandler) AddFeature(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	var req featureRequest
	if !decodeBody(w, r, &req) {
		return
	}
	features, err := ws.AddFeature(req.Feature)
	h.respond(w, r, ws, features, err)
}

// RemoveFeature removes a feature from the car draft
func (h *CMSHandler) RemoveFeature(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	var req featureRequest
	if !decodeBody(w, r, &req) {
		return
	}
	features, err := ws.RemoveFeature(req.Feature)
	h.respond(w, r, ws, features, err)
}
