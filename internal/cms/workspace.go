// Package cms implements the staff editing screen: one tab per collection,
// an add/edit modal with a draft, image upload and transient notifications.
package cms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/travel-agency/internal/db"
	"github.com/ukydev/travel-agency/internal/models"
	"github.com/ukydev/travel-agency/internal/storage"
)

var (
	ErrBusy         = errors.New("another operation is in progress")
	ErrNoModal      = errors.New("no modal is open")
	ErrNotConfirmed = errors.New("delete requires confirmation")
	ErrUnknownTab   = errors.New("unknown tab")
	ErrNoImageStore = errors.New("image storage is not configured")
)

// MissingFieldsError is returned when a draft lacks required fields. The
// store is not called.
type MissingFieldsError struct {
	Kind   models.Kind
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s: missing required fields: %s", e.Kind, strings.Join(e.Fields, ", "))
}

// Workspace is one editor's CMS screen.
type Workspace struct {
	mu       sync.Mutex
	active   models.Kind
	loaded   bool
	packages *Tab[models.PackageView]
	cars     *Tab[models.CarView]

	notes  *Notifier
	images storage.ImageUploader
}

// State is a snapshot of the whole screen.
type State struct {
	Active       models.Kind                  `json:"active"`
	Packages     TabState[models.PackageView] `json:"packages"`
	Cars         TabState[models.CarView]     `json:"cars"`
	Notification *Notification                `json:"notification"`
}

// NewWorkspace creates a workspace over the two collections.
func NewWorkspace(packages db.PackageCollection, cars db.CarCollection, images storage.ImageUploader, notes *Notifier) *Workspace {
	if notes == nil {
		notes = NewNotifier(NotificationTTL, nil)
	}
	return &Workspace{
		active:   models.KindPackages,
		packages: NewTab(PackageSchema(packages)),
		cars:     NewTab(CarSchema(cars)),
		notes:    notes,
		images:   images,
	}
}

// Refresh reloads both collections. A failed load keeps the previous lists.
func (w *Workspace) Refresh(ctx context.Context) error {
	packages, err := load(ctx, w.packages)
	if err != nil {
		log.WithError(err).Error("Failed to load packages")
		w.notes.Notify(LevelError, "Failed to load data")
		return err
	}
	cars, err := load(ctx, w.cars)
	if err != nil {
		log.WithError(err).Error("Failed to load cars")
		w.notes.Notify(LevelError, "Failed to load data")
		return err
	}

	w.mu.Lock()
	w.packages.items = packages
	w.cars.items = cars
	w.loaded = true
	w.mu.Unlock()
	return nil
}

func (w *Workspace) refetch(ctx context.Context) {
	_ = w.Refresh(ctx)
}

// State returns the current screen, loading the lists on first use.
func (w *Workspace) State(ctx context.Context) State {
	w.mu.Lock()
	loaded := w.loaded
	w.mu.Unlock()
	if !loaded {
		w.refetch(ctx)
	}

	w.mu.Lock()
	state := State{
		Active:   w.active,
		Packages: w.packages.snapshot(),
		Cars:     w.cars.snapshot(),
	}
	w.mu.Unlock()
	if note, ok := w.notes.Current(); ok {
		state.Notification = &note
	}
	return state
}

// SelectTab switches the active tab.
func (w *Workspace) SelectTab(kind models.Kind) error {
	if !models.IsValidKind(kind) {
		return ErrUnknownTab
	}
	w.mu.Lock()
	w.active = kind
	w.mu.Unlock()
	return nil
}

// Open opens the modal on kind. An empty id opens a create draft with
// defaults; otherwise the listed record is copied into the draft.
func (w *Workspace) Open(kind models.Kind, id string) (any, error) {
	switch kind {
	case models.KindPackages:
		return openModal(w, w.packages, id)
	case models.KindCars:
		return openModal(w, w.cars, id)
	}
	return nil, ErrUnknownTab
}

// EditDraft merges a JSON patch onto the open draft.
func (w *Workspace) EditDraft(kind models.Kind, patch []byte) (any, error) {
	switch kind {
	case models.KindPackages:
		return editDraft(w, w.packages, patch)
	case models.KindCars:
		return editDraft(w, w.cars, patch)
	}
	return nil, ErrUnknownTab
}

// Close discards the open draft.
func (w *Workspace) Close(kind models.Kind) error {
	switch kind {
	case models.KindPackages:
		return closeModal(w, w.packages)
	case models.KindCars:
		return closeModal(w, w.cars)
	}
	return ErrUnknownTab
}

// UploadImage uploads a file for the open draft and returns its URL.
func (w *Workspace) UploadImage(ctx context.Context, kind models.Kind, filename, contentType string, body io.Reader) (string, error) {
	switch kind {
	case models.KindPackages:
		return uploadImage(ctx, w, w.packages, filename, contentType, body)
	case models.KindCars:
		return uploadImage(ctx, w, w.cars, filename, contentType, body)
	}
	return "", ErrUnknownTab
}

// Save persists the open draft.
func (w *Workspace) Save(ctx context.Context, kind models.Kind) (any, error) {
	switch kind {
	case models.KindPackages:
		return save(ctx, w, w.packages)
	case models.KindCars:
		return save(ctx, w, w.cars)
	}
	return nil, ErrUnknownTab
}

// Delete removes a record after confirmation.
func (w *Workspace) Delete(ctx context.Context, kind models.Kind, id string, confirmed bool) error {
	switch kind {
	case models.KindPackages:
		return remove(ctx, w, w.packages, id, confirmed)
	case models.KindCars:
		return remove(ctx, w, w.cars, id, confirmed)
	}
	return ErrUnknownTab
}

// AddFeature appends a trimmed feature to the car draft. Blank and duplicate
// values are ignored.
func (w *Workspace) AddFeature(feature string) ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	modal := w.cars.modal
	if modal == nil {
		return nil, ErrNoModal
	}
	if w.cars.saving {
		return nil, ErrBusy
	}
	feature = strings.TrimSpace(feature)
	features := append([]string{}, modal.Draft.Features...)
	if feature != "" && !contains(features, feature) {
		features = append(features, feature)
	}
	modal.Draft.Features = features
	return features, nil
}

// RemoveFeature drops every exact match of feature from the car draft.
func (w *Workspace) RemoveFeature(feature string) ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	modal := w.cars.modal
	if modal == nil {
		return nil, ErrNoModal
	}
	if w.cars.saving {
		return nil, ErrBusy
	}
	features := make([]string, 0, len(modal.Draft.Features))
	for _, f := range modal.Draft.Features {
		if f != feature {
			features = append(features, f)
		}
	}
	modal.Draft.Features = features
	return features, nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// Manager keeps one workspace per signed-in editor.
type Manager struct {
	mu         sync.Mutex
	workspaces map[string]*Workspace
	packages   db.PackageCollection
	cars       db.CarCollection
	images     storage.ImageUploader
	clock      func() time.Time
}

// NewManager creates a manager. A nil clock uses time.Now.
func NewManager(packages db.PackageCollection, cars db.CarCollection, images storage.ImageUploader, clock func() time.Time) *Manager {
	return &Manager{
		workspaces: make(map[string]*Workspace),
		packages:   packages,
		cars:       cars,
		images:     images,
		clock:      clock,
	}
}

// Workspace returns the editor's workspace, creating it on first use.
func (m *Manager) Workspace(userID string) *Workspace {
	m.mu.Lock()
	defer m.mu.Unlock()
	ws, ok := m.workspaces[userID]
	if !ok {
		ws = NewWorkspace(m.packages, m.cars, m.images, NewNotifier(NotificationTTL, m.clock))
		m.workspaces[userID] = ws
	}
	return ws
}

// Drop discards the editor's workspace, for example on sign-out.
func (m *Manager) Drop(userID string) {
	m.mu.Lock()
	delete(m.workspaces, userID)
	m.mu.Unlock()
}
