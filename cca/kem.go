// Package cca implements the Fujisaki-Okamoto-style CCA transform of
// spec.md §4.8: it binds a scheme-agnostic IND-CPA KEM to the AEAD
// collaborator and to the access structure via a re-encryption check,
// so a ciphertext that decapsulates cleanly but was never produced by
// an honest Encrypt call is rejected. cpwaters and kpgpsw each plug in
// through the KEM interface below, via the adapters in this package;
// Encrypt and Decrypt use only what that interface exposes.
package cca

import (
	"io"

	"github.com/openabe-go/abe-core/pairing"
	"github.com/openabe-go/abe-core/wire"
)

// KEM is the capability the CCA transform needs from an underlying
// IND-CPA scheme: encapsulate/decapsulate a session key under some
// fixed access structure, and report that structure's canonical bytes
// so the transform can bind the re-encryption nonce to it.
type KEM interface {
	// SchemeID is the outer wire discriminator the CCA container
	// should carry (distinct from the inner KEM's own discriminator).
	SchemeID() byte
	// AccessStructure returns the canonical bytes of the policy tree
	// or attribute set this adapter is configured to encrypt under or
	// decrypt against. Both sides of a CCA exchange must agree on this
	// value for the re-encryption check to ever succeed.
	AccessStructure() []byte
	Encap(rng io.Reader) (*wire.Container, pairing.GT, error)
	// Decap recovers the session key from a ciphertext's KEM fields.
	// Returns an error if this adapter was not configured with a
	// secret key.
	Decap(ct *wire.Container) (pairing.GT, error)
}
