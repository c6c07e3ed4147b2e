// Package keystore is the concrete instance of spec.md §6.3's
// persistence collaborator: opaque byte strings in and out of disk,
// keyed by a caller-chosen label. The core never imports this package
// and never touches the filesystem itself — keystore only ever moves
// already-serialized container/key bytes produced by wire, cpwaters,
// kpgpsw or cca; it never parses their contents. Mirrors the teacher's
// cmd/root.go getState()/sqlite.Open(dbPath, dbPass) shape, generalized
// from go-fdo's bespoke sqlite wrapper to a plain gorm model so both
// sqlite (default) and postgres (optional) are reachable through one
// record shape.
package keystore

import (
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openabe-go/abe-core/errs"
)

// record is the single table keystore uses: one opaque blob per
// label. No column here is ever interpreted by this package beyond
// the label used to look it up.
type record struct {
	Label string `gorm:"primaryKey"`
	Value []byte
}

func (record) TableName() string { return "abe_blobs" }

// Store is an opaque label -> blob persistence handle.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if absent) a sqlite-backed store at path, the
// default backend per spec.md §6.3.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, errs.Wrap(errs.BackendError, "keystore.Open", err)
	}
	return newStore(db)
}

// OpenPostgres opens a postgres-backed store at dsn, the optional
// alternate backend per spec.md §6.3.
func OpenPostgres(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, errs.Wrap(errs.BackendError, "keystore.OpenPostgres", err)
	}
	return newStore(db)
}

func newStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, errs.Wrap(errs.BackendError, "keystore.newStore", err)
	}
	return &Store{db: db}, nil
}

// Put stores value under label, overwriting any existing blob with
// that label.
func (s *Store) Put(label string, value []byte) error {
	rec := record{Label: label, Value: value}
	if err := s.db.Save(&rec).Error; err != nil {
		return errs.Wrap(errs.BackendError, "keystore.Put", err)
	}
	return nil
}

// Get returns the blob stored under label. Returns
// errs.InvalidParameter if no such label exists.
func (s *Store) Get(label string) ([]byte, error) {
	var rec record
	err := s.db.First(&rec, "label = ?", label).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.New(errs.InvalidParameter, "keystore.Get", "no blob stored under label "+label)
	}
	if err != nil {
		return nil, errs.Wrap(errs.BackendError, "keystore.Get", err)
	}
	return rec.Value, nil
}

// Delete removes the blob stored under label, if any. Deleting an
// absent label is not an error.
func (s *Store) Delete(label string) error {
	if err := s.db.Delete(&record{}, "label = ?", label).Error; err != nil {
		return errs.Wrap(errs.BackendError, "keystore.Delete", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errs.Wrap(errs.BackendError, "keystore.Close", err)
	}
	if err := sqlDB.Close(); err != nil {
		return errs.Wrap(errs.BackendError, "keystore.Close", err)
	}
	return nil
}
