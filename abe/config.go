// Package abe is the top-level library surface of spec.md §6.1: one
// entry point per operation (Setup, KeyGen, Encrypt, Decrypt, Encap,
// Decap), each driven by an explicit Config rather than by package-
// level state. It is pure composition over the layers built below it
// — pairing/cpwaters/kpgpsw for the math, cca/hybrid for the AEAD
// binding, wire for the encoding choice — and adds no cryptographic
// logic of its own.
package abe

import "github.com/openabe-go/abe-core/pairing"

// Scheme selects the KEM variant, spec.md §6.1.
type Scheme string

const (
	CPWaters Scheme = "CP_WATERS"
	KPGPSW   Scheme = "KP_GPSW"
)

// CCAMode turns the CCA transform on or off, spec.md §6.1 (default on).
type CCAMode string

const (
	CCAOn  CCAMode = "on"
	CCAOff CCAMode = "off"
)

// Config enumerates spec.md §6.1's configuration keys — curve,
// scheme, cca, encoding — and nothing else.
type Config struct {
	Curve    pairing.CurveID
	Scheme   Scheme
	CCA      CCAMode
	Encoding Encoding
}

// Encoding mirrors wire.Encoding without making every abe caller
// import the wire package just to pick a value.
type Encoding int

const (
	LegacyCompact Encoding = iota
	StandardFramed
)

// normalize fills in spec.md's defaults: BLS12-381, CP-Waters, CCA on,
// legacy compact encoding.
func (c Config) normalize() Config {
	out := c
	if out.Curve == "" {
		out.Curve = pairing.BLS12_381
	}
	if out.Scheme == "" {
		out.Scheme = CPWaters
	}
	if out.CCA == "" {
		out.CCA = CCAOn
	}
	return out
}
