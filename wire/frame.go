// Package wire implements the bit-exact wire format spec.md §4.2
// prescribes: a per-element tag-length-value frame, and a
// label-keyed container built out of those frames. Every byte layout
// in this package is load-bearing — the CCA re-encryption check
// (cca package) depends on re-encrypting to byte-identical containers.
package wire

import (
	"encoding/binary"

	"github.com/openabe-go/abe-core/errs"
)

// Element tags, spec.md §4.2.1.
const (
	TagZr byte = 0x01
	TagG1 byte = 0x02
	TagG2 byte = 0x03
	TagGT byte = 0x04
)

// EncodeFrame writes [tag:u8][len:varint][body:bytes].
func EncodeFrame(tag byte, body []byte) []byte {
	lenBuf := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(lenBuf, uint64(len(body)))
	out := make([]byte, 0, 1+n+len(body))
	out = append(out, tag)
	out = append(out, lenBuf[:n]...)
	out = append(out, body...)
	return out
}

// DecodeFrame reads one frame off the front of buf and returns the
// tag, the body, and the remaining bytes.
func DecodeFrame(buf []byte) (tag byte, body []byte, rest []byte, err error) {
	if len(buf) < 1 {
		return 0, nil, nil, errs.New(errs.SerializationFailure, "wire.DecodeFrame", "truncated buffer: missing tag")
	}
	tag = buf[0]
	length, n := binary.Uvarint(buf[1:])
	if n <= 0 {
		return 0, nil, nil, errs.New(errs.SerializationFailure, "wire.DecodeFrame", "truncated or invalid varint length")
	}
	start := 1 + n
	end := start + int(length)
	if end > len(buf) || end < start {
		return 0, nil, nil, errs.New(errs.SerializationFailure, "wire.DecodeFrame", "truncated buffer: body shorter than declared length")
	}
	return tag, buf[start:end], buf[end:], nil
}
