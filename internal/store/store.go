// Package store is the entity store: named collections of records, each persisted as one
// JSON array in a single storage slot.
//
// Every mutation reads the whole collection, changes it in memory and writes the whole
// collection back. There is no locking or versioning across calls, so two overlapping
// mutations of the same collection can lose the first write.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"docspot/internal/storage"
)

// Collection slot names.
const (
	UsersKey          = "healthcare_users"
	AppointmentsKey   = "healthcare_appointments"
	MedicalRecordsKey = "healthcare_medical_records"
	PrescriptionsKey  = "healthcare_prescriptions"
	MessagesKey       = "healthcare_messages"
	HealthDataKey     = "healthcare_health_data"
)

var ErrNotFound = errors.New("record not found")

// Record is anything kept in a collection.
type Record interface {
	GetID() string
}

type Store struct {
	backend storage.Backend
	logger  *logrus.Logger
}

func New(backend storage.Backend, logger *logrus.Logger) *Store {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Store{backend: backend, logger: logger}
}

func (s *Store) Backend() storage.Backend { return s.backend }

func (s *Store) Logger() *logrus.Logger { return s.logger }

// NewID returns "<prefix>-<uuidv7>". UUIDv7 is time ordered, so ids still sort by creation.
func NewID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return prefix + "-" + strings.ToLower(id.String())
}

// Collection is a typed view over one slot.
type Collection[T Record] struct {
	store *Store
	key   string
}

func NewCollection[T Record](s *Store, key string) *Collection[T] {
	return &Collection[T]{store: s, key: key}
}

func (c *Collection[T]) Key() string { return c.key }

// List returns the records in the collection. A missing or undecodable slot reads as empty;
// only backend failures are returned.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	raw, ok, err := c.store.backend.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.key, err)
	}
	if !ok || len(raw) == 0 {
		return []T{}, nil
	}

	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		c.store.logger.WithField("collection", c.key).Errorf("Error reading from storage: %v", err)
		return []T{}, nil
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// SaveAll replaces the whole collection.
func (c *Collection[T]) SaveAll(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		c.store.logger.WithField("collection", c.key).Errorf("Error saving to storage: %v", err)
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.store.backend.Set(ctx, c.key, raw); err != nil {
		return fmt.Errorf("write %s: %w", c.key, err)
	}
	return nil
}

func (c *Collection[T]) Add(ctx context.Context, record T) error {
	records, err := c.List(ctx)
	if err != nil {
		return err
	}
	return c.SaveAll(ctx, append(records, record))
}

// Update replaces the first record sharing record's id. Nothing is written when no record matches.
func (c *Collection[T]) Update(ctx context.Context, record T) error {
	records, err := c.List(ctx)
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].GetID() == record.GetID() {
			records[i] = record
			return c.SaveAll(ctx, records)
		}
	}
	return nil
}

// Delete drops every record with the id. Nothing is written when no record matches.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	records, err := c.List(ctx)
	if err != nil {
		return err
	}
	kept := records[:0]
	for _, r := range records {
		if r.GetID() != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return nil
	}
	return c.SaveAll(ctx, kept)
}

func (c *Collection[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T
	records, err := c.List(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, r := range records {
		if r.GetID() == id {
			return r, true, nil
		}
	}
	return zero, false, nil
}

func (c *Collection[T]) Filter(ctx context.Context, keep func(T) bool) ([]T, error) {
	records, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out, nil
}
