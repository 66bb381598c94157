package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/travel-agency/internal/db"
)

// Mode says whether the modal creates a new record or edits an existing one.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Modal is the open add/edit dialog and its draft.
type Modal[V any] struct {
	Mode  Mode   `json:"mode"`
	ID    string `json:"id,omitempty"`
	Draft V      `json:"draft"`
}

// Tab is the editable list for one collection. Its fields are guarded by the
// owning workspace's mutex.
type Tab[V any] struct {
	schema    Schema[V]
	items     []V
	modal     *Modal[V]
	saving    bool
	uploading bool
}

// TabState is a snapshot of a tab.
type TabState[V any] struct {
	Kind      string    `json:"kind"`
	Items     []V       `json:"items"`
	Modal     *Modal[V] `json:"modal"`
	Saving    bool      `json:"saving"`
	Uploading bool      `json:"uploading"`
}

// NewTab creates an empty tab for schema.
func NewTab[V any](schema Schema[V]) *Tab[V] {
	return &Tab[V]{schema: schema, items: []V{}}
}

func (t *Tab[V]) snapshot() TabState[V] {
	state := TabState[V]{
		Kind:      string(t.schema.Kind),
		Items:     append([]V{}, t.items...),
		Saving:    t.saving,
		Uploading: t.uploading,
	}
	if t.modal != nil {
		m := *t.modal
		state.Modal = &m
	}
	return state
}

func (t *Tab[V]) find(id string) (V, bool) {
	for _, item := range t.items {
		if t.schema.ID(item) == id {
			return item, true
		}
	}
	var zero V
	return zero, false
}

func (t *Tab[V]) noun() string {
	return strings.ToLower(t.schema.Label)
}

// openModal seeds the draft from defaults or from the listed row. No store
// call is made.
func openModal[V any](w *Workspace, t *Tab[V], id string) (Modal[V], error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t.saving || t.uploading {
		return Modal[V]{}, ErrBusy
	}
	w.active = t.schema.Kind

	modal := Modal[V]{Mode: ModeCreate, Draft: t.schema.Defaults()}
	if id != "" {
		item, ok := t.find(id)
		if !ok {
			return Modal[V]{}, db.ErrNotFound
		}
		modal = Modal[V]{Mode: ModeEdit, ID: id, Draft: item}
	}
	t.modal = &modal
	return modal, nil
}

// editDraft merges a JSON patch onto the draft. The draft id cannot change.
func editDraft[V any](w *Workspace, t *Tab[V], patch []byte) (Modal[V], error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t.modal == nil {
		return Modal[V]{}, ErrNoModal
	}
	if t.saving {
		return Modal[V]{}, ErrBusy
	}
	// Decode onto a deep copy so slices shared with the listed row are not
	// overwritten in place.
	current, err := json.Marshal(t.modal.Draft)
	if err != nil {
		return Modal[V]{}, err
	}
	var draft V
	if err := json.Unmarshal(current, &draft); err != nil {
		return Modal[V]{}, err
	}
	if err := json.Unmarshal(patch, &draft); err != nil {
		return Modal[V]{}, fmt.Errorf("invalid draft: %w", err)
	}
	t.schema.SetID(&draft, t.schema.ID(t.modal.Draft))
	t.modal.Draft = draft
	return *t.modal, nil
}

func closeModal[V any](w *Workspace, t *Tab[V]) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t.saving {
		return ErrBusy
	}
	t.modal = nil
	return nil
}

// uploadImage stores the file and writes its URL into the draft. On failure
// the draft keeps its previous image. Upload and save exclude each other.
func uploadImage[V any](ctx context.Context, w *Workspace, t *Tab[V], filename, contentType string, body io.Reader) (string, error) {
	w.mu.Lock()
	if t.modal == nil {
		w.mu.Unlock()
		return "", ErrNoModal
	}
	if t.uploading || t.saving {
		w.mu.Unlock()
		return "", ErrBusy
	}
	t.uploading = true
	w.mu.Unlock()

	var url string
	var err error
	if w.images == nil {
		err = ErrNoImageStore
	} else {
		url, err = w.images.UploadImage(ctx, t.schema.Kind, filename, contentType, body)
	}

	w.mu.Lock()
	t.uploading = false
	if err == nil && t.modal != nil {
		t.schema.SetImage(&t.modal.Draft, url)
	}
	w.mu.Unlock()

	if err != nil {
		log.WithError(err).WithField("kind", t.schema.Kind).Error("Image upload failed")
		w.notes.Notify(LevelError, "Failed to upload image")
		return "", err
	}
	w.notes.Notify(LevelSuccess, "Image uploaded for "+t.noun())
	return url, nil
}

// save validates the draft locally, then creates or updates it. On success
// the modal closes and both collections are refetched. On failure the modal
// stays open with the draft intact.
func save[V any](ctx context.Context, w *Workspace, t *Tab[V]) (V, error) {
	var zero V

	w.mu.Lock()
	if t.modal == nil {
		w.mu.Unlock()
		return zero, ErrNoModal
	}
	if t.saving || t.uploading {
		w.mu.Unlock()
		return zero, ErrBusy
	}
	modal := *t.modal
	if missing := t.schema.Missing(modal.Draft); len(missing) > 0 {
		w.mu.Unlock()
		w.notes.Notify(LevelError, fmt.Sprintf("Please fill in required fields (%s)", t.schema.Required))
		return zero, &MissingFieldsError{Kind: t.schema.Kind, Fields: missing}
	}
	t.saving = true
	w.mu.Unlock()

	var saved V
	var err error
	if modal.Mode == ModeEdit {
		saved, err = t.schema.Update(ctx, modal.ID, modal.Draft)
	} else {
		saved, err = t.schema.Create(ctx, modal.Draft)
	}

	w.mu.Lock()
	t.saving = false
	if err == nil {
		t.modal = nil
	}
	w.mu.Unlock()

	if err != nil {
		log.WithError(err).WithFields(log.Fields{"kind": t.schema.Kind, "mode": modal.Mode}).Error("Save failed")
		w.notes.Notify(LevelError, fmt.Sprintf("Failed to save %s: %s", t.noun(), err))
		return zero, err
	}

	verb := "created"
	if modal.Mode == ModeEdit {
		verb = "updated"
	}
	w.notes.Notify(LevelSuccess, fmt.Sprintf("%s %s successfully", t.schema.Label, verb))
	w.refetch(ctx)
	return saved, nil
}

// remove deletes a listed record once confirmed. The list is only changed by
// the refetch that follows a successful delete.
func remove[V any](ctx context.Context, w *Workspace, t *Tab[V], id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	w.mu.Lock()
	if t.saving {
		w.mu.Unlock()
		return ErrBusy
	}
	t.saving = true
	w.mu.Unlock()

	err := t.schema.Delete(ctx, id)

	w.mu.Lock()
	t.saving = false
	w.mu.Unlock()

	if err != nil {
		log.WithError(err).WithFields(log.Fields{"kind": t.schema.Kind, "id": id}).Error("Delete failed")
		w.notes.Notify(LevelError, fmt.Sprintf("Failed to delete %s: %s", t.noun(), err))
		return err
	}
	w.notes.Notify(LevelSuccess, t.schema.Label+" deleted successfully")
	w.refetch(ctx)
	return nil
}

func load[V any](ctx context.Context, t *Tab[V]) ([]V, error) {
	items, err := t.schema.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []V{}
	}
	return items, nil
}
