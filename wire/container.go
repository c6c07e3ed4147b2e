package wire

import (
	"encoding/binary"

	"github.com/openabe-go/abe-core/errs"
)

// Scheme discriminators, spec.md §4.2.2. One byte prefixes every
// container so a CP-Waters ciphertext can never be mistaken for a
// KP-GPSW one, or for the outer CCA/hybrid record.
const (
	SchemeCPWaters    byte = 0x01
	SchemeKPGPSW      byte = 0x02
	SchemeCPWatersCCA byte = 0x03
	SchemeKPGPSWCCA   byte = 0x04
	SchemeHybrid      byte = 0x05
)

// Entry is one labeled slot in a Container. Value holds whatever bytes
// the label's contents require: for crypto elements, the already-
// tag-framed output of EncodeZr/EncodeG1/EncodeG2/EncodeGT; for
// "policy", the raw UTF-8 canonical policy string; for "_ED", the raw
// AEAD-sealed blob. The container format does not itself distinguish
// these — the scheme package that produced the container knows its
// own label schema.
type Entry struct {
	Label string
	Value []byte
}

// Container is the ciphertext/key container of spec.md §4.2.2:
// [scheme_id][count][entry]*. Equality between two containers is
// structural, per-label, per-byte — this is exactly what the CCA
// re-encryption check (cca package) compares.
type Container struct {
	SchemeID byte
	Entries  []Entry
}

// Get returns the raw value for label, and whether it was present.
func (c *Container) Get(label string) ([]byte, bool) {
	for _, e := range c.Entries {
		if e.Label == label {
			return e.Value, true
		}
	}
	return nil, false
}

// Set appends or replaces the entry for label.
func (c *Container) Set(label string, value []byte) {
	for i, e := range c.Entries {
		if e.Label == label {
			c.Entries[i].Value = value
			return
		}
	}
	c.Entries = append(c.Entries, Entry{Label: label, Value: value})
}

// Encode serializes the container to its wire bytes.
func (c *Container) Encode() ([]byte, error) {
	if len(c.Entries) > 255 {
		return nil, errs.New(errs.SerializationFailure, "wire.Container.Encode", "more than 255 entries")
	}
	out := []byte{c.SchemeID, byte(len(c.Entries))}
	lenBuf := make([]byte, binary.MaxVarintLen64)
	for _, e := range c.Entries {
		labelBytes := []byte(e.Label)
		if len(labelBytes) > 255 {
			return nil, errs.New(errs.SerializationFailure, "wire.Container.Encode", "label longer than 255 bytes")
		}
		out = append(out, byte(len(labelBytes)))
		out = append(out, labelBytes...)
		n := binary.PutUvarint(lenBuf, uint64(len(e.Value)))
		out = append(out, lenBuf[:n]...)
		out = append(out, e.Value...)
	}
	return out, nil
}

// DecodeContainer parses the wire bytes produced by Encode.
func DecodeContainer(buf []byte) (*Container, error) {
	if len(buf) < 2 {
		return nil, errs.New(errs.SerializationFailure, "wire.DecodeContainer", "truncated buffer: missing header")
	}
	c := &Container{SchemeID: buf[0]}
	count := int(buf[1])
	rest := buf[2:]
	for i := 0; i < count; i++ {
		if len(rest) < 1 {
			return nil, errs.New(errs.SerializationFailure, "wire.DecodeContainer", "truncated buffer: missing label length")
		}
		labelLen := int(rest[0])
		rest = rest[1:]
		if len(rest) < labelLen {
			return nil, errs.New(errs.SerializationFailure, "wire.DecodeContainer", "truncated buffer: label shorter than declared")
		}
		label := string(rest[:labelLen])
		rest = rest[labelLen:]

		valueLen, n := binary.Uvarint(rest)
		if n <= 0 {
			return nil, errs.New(errs.SerializationFailure, "wire.DecodeContainer", "truncated or invalid varint value length")
		}
		rest = rest[n:]
		if uint64(len(rest)) < valueLen {
			return nil, errs.New(errs.SerializationFailure, "wire.DecodeContainer", "truncated buffer: value shorter than declared")
		}
		value := rest[:valueLen]
		rest = rest[valueLen:]

		c.Entries = append(c.Entries, Entry{Label: label, Value: value})
	}
	if len(rest) != 0 {
		return nil, errs.New(errs.SerializationFailure, "wire.DecodeContainer", "trailing bytes after declared entries")
	}
	return c, nil
}

// Equal compares two containers structurally, per spec.md §4.2.2's
// round-trip and CCA-comparison invariants: same scheme, same set of
// labels, and byte-identical values for every label.
func (c *Container) Equal(o *Container) bool {
	if c.SchemeID != o.SchemeID || len(c.Entries) != len(o.Entries) {
		return false
	}
	for _, e := range c.Entries {
		v, ok := o.Get(e.Label)
		if !ok || len(v) != len(e.Value) {
			return false
		}
		for i := range v {
			if v[i] != e.Value[i] {
				return false
			}
		}
	}
	return true
}
