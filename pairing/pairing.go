// Package pairing defines the arithmetic capability set every other
// abe-core package programs against: scalars (Zr), the two source
// groups of a Type-3 pairing (G1, G2), the target group (GT), the
// pairing itself, and hash-to-curve. Concrete curves/backends are
// registered by the pairing/gnarkbk and pairing/bn256bk packages and
// looked up through the curve catalog in this package — library
// packages never import a backend package; a program makes a backend
// available by blank-importing it.
//
// Every operation below is functional: it returns a new element
// rather than mutating a receiver, so passing the same element as
// both an operand and (conceptually) a destination is always safe.
// All randomness is drawn exclusively from the io.Reader passed in;
// no function in this package, or in any backend, may consult a
// system CSPRNG or hidden seed. That guarantee is the foundation of
// the CCA transform in package cca.
package pairing

import (
	"io"

	"github.com/openabe-go/abe-core/errs"
)

// Zr is an element of the scalar field modulo the group order r.
type Zr interface {
	Add(Zr) Zr
	Sub(Zr) Zr
	Mul(Zr) Zr
	Div(Zr) (Zr, error)
	Neg() Zr
	Inv() (Zr, error)
	IsZero() bool
	Equal(Zr) bool
	// Bytes returns the minimal big-endian encoding: leading zero
	// bytes are stripped. The zero scalar encodes as an empty slice.
	Bytes() []byte
}

// G1 is a point on the first source group.
type G1 interface {
	Add(G1) G1
	Neg() G1
	ScalarMul(Zr) G1
	Equal(G1) bool
	IsIdentity() bool
	IsOnCurve() bool
	Bytes() []byte
}

// G2 is a point on the second source group.
type G2 interface {
	Add(G2) G2
	Neg() G2
	ScalarMul(Zr) G2
	Equal(G2) bool
	IsIdentity() bool
	IsOnCurve() bool
	Bytes() []byte
}

// GT is an element of the pairing target group, written
// multiplicatively. A freshly constructed GT obtained via Backend.GTIdentity
// is the multiplicative identity, never a zero-initialized buffer.
type GT interface {
	Mul(GT) GT
	Div(GT) (GT, error)
	Exp(Zr) GT
	Inverse() GT
	IsIdentity() bool
	Equal(GT) bool
	Bytes() []byte
}

// PairTerm is one (G1, G2) operand pair for MultiPair.
type PairTerm struct {
	G1 G1
	G2 G2
}

// Backend is the capability set a curve implementation provides. It is
// stateless and safe for concurrent use by independent callers; it
// carries no DRBG or other per-call state of its own — every
// randomness-consuming method takes its io.Reader explicitly.
type Backend interface {
	Curve() Curve

	ZrZero() Zr
	ZrOne() Zr
	ZrFromUint64(v uint64) Zr
	// ZrFromBytesLEModR interprets b as a little-endian integer and
	// reduces it mod r.
	ZrFromBytesLEModR(b []byte) Zr
	ZrRandom(rng io.Reader) (Zr, error)
	// ZrFromBytesBE parses the minimal big-endian encoding produced by
	// Zr.Bytes, erroring on an out-of-range value.
	ZrFromBytesBE(b []byte) (Zr, error)

	G1Identity() G1
	G1Generator() G1
	G1Random(rng io.Reader) (G1, error)
	G1FromBytes(b []byte) (G1, error)

	G2Identity() G2
	G2Generator() G2
	G2Random(rng io.Reader) (G2, error)
	G2FromBytes(b []byte) (G2, error)

	GTIdentity() GT
	GTFromBytes(b []byte) (GT, error)

	Pair(g G1, h G2) GT
	MultiPair(pairs []PairTerm) GT

	// HashToG1 is deterministic and collision-resistant in the random
	// oracle model: SHA-256(domainSeparator || msg) folded into a
	// field element, then mapped to the curve.
	HashToG1(domainSeparator string, msg []byte) (G1, error)
}

// BackendKind distinguishes the reference implementation from a
// byte-compatible alternate, per spec.md §4.1.
type BackendKind string

const (
	// Reference is the primary backend (gnark-crypto).
	Reference BackendKind = "reference"
	// Alternate is a pluggable, byte-compatible-at-the-wire backend
	// (fentec-project/bn256).
	Alternate BackendKind = "alternate"
)

type registryKey struct {
	curve CurveID
	kind  BackendKind
}

var registry = make(map[registryKey]func() Backend)

// RegisterBackend is called from the init() of a backend package to
// make a (curve, kind) pair available through NewBackend. It follows
// the same self-registration shape the teacher uses for cipher
// suites: a package-level map populated by each backend's init().
func RegisterBackend(curve CurveID, kind BackendKind, ctor func() Backend) {
	registry[registryKey{curve, kind}] = ctor
}

// NewBackend resolves a (curve, kind) pair to a Backend instance.
func NewBackend(curve CurveID, kind BackendKind) (Backend, error) {
	ctor, ok := registry[registryKey{curve, kind}]
	if !ok {
		return nil, errs.New(errs.InvalidParameter, "pairing.NewBackend",
			"no backend registered for curve "+string(curve)+" kind "+string(kind))
	}
	return ctor(), nil
}
