package keystore_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/openabe-go/abe-core/errs"
	"github.com/openabe-go/abe-core/keystore"
)

func TestPutGetRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "abe.sqlite")
	store, err := keystore.Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	want := []byte{0x01, 0x02, 0x03, 0x04}
	if err := store.Put("mpk", want); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := store.Get("mpk")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatal("round-tripped blob mismatch")
	}
}

func TestPutOverwritesExistingLabel(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "abe.sqlite")
	store, err := keystore.Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if err := store.Put("msk", []byte("first")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put("msk", []byte("second")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := store.Get("msk")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, []byte("second")) {
		t.Fatalf("expected overwritten value, got %q", got)
	}
}

func TestGetMissingLabel(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "abe.sqlite")
	store, err := keystore.Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	_, err = store.Get("nonexistent")
	if !errs.Is(err, errs.InvalidParameter) {
		t.Fatalf("expected InvalidParameter, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "abe.sqlite")
	store, err := keystore.Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if err := store.Put("sk", []byte("secret")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Delete("sk"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err = store.Get("sk")
	if !errs.Is(err, errs.InvalidParameter) {
		t.Fatalf("expected InvalidParameter after delete, got %v", err)
	}
}
