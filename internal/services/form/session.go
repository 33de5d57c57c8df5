package form

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/KirkDiggler/charform/internal/clients/registry"
	"github.com/KirkDiggler/charform/internal/domain/character"
	dnderr "github.com/KirkDiggler/charform/internal/errors"
	"github.com/KirkDiggler/charform/internal/uuid"
)

// Status is the user-facing outcome of a remote action
type Status struct {
	OK      bool
	Message string
}

// Session owns one character record while it is being edited.
// Edits are applied as pure transformations and at most one remote call runs at a time.
type Session struct {
	id       string
	registry registry.Client
	clock    func() time.Time
	inflight *semaphore.Weighted

	mu       sync.RWMutex
	record   character.Record
	category character.Category
	image    *character.Image
}

// Config holds the session dependencies
type Config struct {
	Registry      registry.Client  // Required
	UserID        string           // Optional, defaults to character.DefaultUserID
	Clock         func() time.Time // Optional, defaults to time.Now
	UUIDGenerator uuid.Generator   // Optional, defaults to random UUIDs
}

// New opens an editing session with a default record
func New(cfg *Config) (*Session, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("session config is required")
	}
	if cfg.Registry == nil {
		return nil, dnderr.InvalidArgument("registry client is required")
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.NewRandomGenerator()
	}

	s := &Session{
		id:       gen.New(),
		registry: cfg.Registry,
		clock:    clock,
		inflight: semaphore.NewWeighted(1),
		record:   character.NewRecord(cfg.UserID),
	}

	log.Printf("form: opened session %s for user %s", s.id, s.record.UserID)
	return s, nil
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Record returns the current record value
func (s *Session) Record() character.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record
}

// Category returns the current category selection
func (s *Session) Category() character.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.category
}

// Image returns the selected upload, or nil
func (s *Session) Image() *character.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.image
}

// ChangeField applies a user edit to an editable field
func (s *Session) ChangeField(field character.Field, value string) error {
	if !field.Editable() {
		return dnderr.InvalidArgumentf("field '%s' cannot be edited", field).
			WithMeta("field", string(field))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := character.SetField(s.record, field, value)
	if err != nil {
		return err
	}
	s.record = next
	return nil
}

// SelectImage stores the upload. Identifiers are not re-derived; the extension
// is picked up the next time the category changes.
func (s *Session) SelectImage(img *character.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.image = img
}

// SelectCategory records the enemy/ally choice and stamps fresh identifiers
// when the choice changes. Re-selecting the current category does nothing.
func (s *Session) SelectCategory(category character.Category) error {
	if category == character.CategoryUnset {
		return dnderr.InvalidArgument("category must be enemy or fixed")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if category == s.category {
		return nil
	}

	filename := ""
	if s.image != nil {
		filename = s.image.Filename
	}

	next, err := character.DeriveIdentifiers(s.record, category, s.clock(), filename)
	if err != nil {
		return err
	}

	s.record = next
	s.category = category
	log.Printf("form: session %s derived %s (%s)", s.id, next.CharacterID, next.ImageName)
	return nil
}

// Submit validates the record and registers it. The record is never changed.
func (s *Session) Submit(ctx context.Context) (Status, error) {
	if !s.inflight.TryAcquire(1) {
		err := dnderr.Busy("another request is in progress")
		return failure(err, ""), err
	}
	defer s.inflight.Release(1)

	rec, img := s.snapshot()

	if !rec.HasIdentifiers() {
		err := dnderr.Validation("choose whether the character is an enemy or an ally first")
		return failure(err, ""), err
	}
	if err := character.Validate(rec); err != nil {
		return failure(err, ""), err
	}

	ack, err := s.registry.Register(ctx, rec, img)
	if err != nil {
		log.Printf("form: session %s register failed: %v", s.id, err)
		return failure(err, "Registration failed."), err
	}

	log.Printf("form: session %s registered %s (request %s)", s.id, rec.CharacterID, ack.RequestID)
	return Status{OK: true, Message: "Character registered successfully."}, nil
}

// Assist asks the generation endpoint to fill the record and applies the result
func (s *Session) Assist(ctx context.Context) (Status, error) {
	if !s.inflight.TryAcquire(1) {
		err := dnderr.Busy("another request is in progress")
		return failure(err, ""), err
	}
	defer s.inflight.Release(1)

	rec, img := s.snapshot()

	if !rec.HasIdentifiers() {
		err := dnderr.Validation("choose whether the character is an enemy or an ally first")
		return failure(err, ""), err
	}

	generated, err := s.registry.AssistGenerate(ctx, rec, img)
	if err != nil {
		log.Printf("form: session %s assist failed: %v", s.id, err)
		return failure(err, "The AI could not draft the character."), err
	}

	// The category may have changed while the call was out; keep the current identity.
	s.mu.Lock()
	if s.record.CharacterID != rec.CharacterID || s.record.ImageName != rec.ImageName {
		log.Printf("form: session %s identifiers changed during assist, keeping %s", s.id, s.record.CharacterID)
	}
	s.record = character.Overlay(s.record, generated)
	s.mu.Unlock()

	return Status{OK: true, Message: "The AI drafted the character and filled in the form."}, nil
}

func (s *Session) snapshot() (character.Record, *character.Image) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record, s.image
}

func failure(err error, action string) Status {
	var msg string
	switch {
	case dnderr.IsBusy(err):
		msg = "Another request is still in progress."
	case dnderr.IsValidation(err):
		msg = "Please complete the form: " + err.Error()
	case dnderr.IsRejected(err):
		msg = fmt.Sprintf("%s Status: %d", action, dnderr.StatusCode(err))
	case dnderr.IsUnavailable(err):
		msg = "A network error occurred."
	case dnderr.IsDecode(err):
		msg = action + " The response could not be read."
	default:
		msg = action + " " + err.Error()
	}
	return Status{OK: false, Message: msg}
}
