package drbg

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/openabe-go/abe-core/errs"
)

// DeriveKey implements spec.md §4.3's KDF: HKDF-SHA-256 over the
// serialized KEM output, domain-separated by label, producing an
// AEAD-sized key. No salt is used — the GT element serialization
// already carries all the entropy of a fresh KEM output.
func DeriveKey(gtBytes []byte, label string, keyLen int) ([]byte, error) {
	r := hkdf.New(sha256.New, gtBytes, nil, []byte(label))
	key := make([]byte, keyLen)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, errs.Wrap(errs.BackendError, "drbg.DeriveKey", err)
	}
	return key, nil
}
