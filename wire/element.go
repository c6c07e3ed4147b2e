package wire

import (
	"github.com/openabe-go/abe-core/errs"
	"github.com/openabe-go/abe-core/pairing"
)

// EncodeZr frames a scalar using its minimal big-endian encoding
// (leading zeros stripped), per spec.md §4.2.1.
func EncodeZr(z pairing.Zr) []byte { return EncodeFrame(TagZr, z.Bytes()) }

// EncodeG1, EncodeG2, EncodeGT frame a group element in the backend's
// native ("legacy compact") byte form.
func EncodeG1(g pairing.G1) []byte { return EncodeFrame(TagG1, g.Bytes()) }
func EncodeG2(g pairing.G2) []byte { return EncodeFrame(TagG2, g.Bytes()) }
func EncodeGT(g pairing.GT) []byte { return EncodeFrame(TagGT, g.Bytes()) }

// DecodeZr reads one frame off buf, verifies its tag, and reconstructs
// a scalar through the backend. Returns the remaining bytes.
func DecodeZr(b pairing.Backend, buf []byte) (pairing.Zr, []byte, error) {
	tag, body, rest, err := DecodeFrame(buf)
	if err != nil {
		return nil, nil, err
	}
	if tag != TagZr {
		return nil, nil, errs.New(errs.SerializationFailure, "wire.DecodeZr", "tag mismatch")
	}
	z, err := b.ZrFromBytesBE(body)
	if err != nil {
		return nil, nil, err
	}
	return z, rest, nil
}

func DecodeG1(b pairing.Backend, buf []byte) (pairing.G1, []byte, error) {
	tag, body, rest, err := DecodeFrame(buf)
	if err != nil {
		return nil, nil, err
	}
	if tag != TagG1 {
		return nil, nil, errs.New(errs.SerializationFailure, "wire.DecodeG1", "tag mismatch")
	}
	g, err := b.G1FromBytes(body)
	if err != nil {
		return nil, nil, err
	}
	return g, rest, nil
}

func DecodeG2(b pairing.Backend, buf []byte) (pairing.G2, []byte, error) {
	tag, body, rest, err := DecodeFrame(buf)
	if err != nil {
		return nil, nil, err
	}
	if tag != TagG2 {
		return nil, nil, errs.New(errs.SerializationFailure, "wire.DecodeG2", "tag mismatch")
	}
	g, err := b.G2FromBytes(body)
	if err != nil {
		return nil, nil, err
	}
	return g, rest, nil
}

func DecodeGT(b pairing.Backend, buf []byte) (pairing.GT, []byte, error) {
	tag, body, rest, err := DecodeFrame(buf)
	if err != nil {
		return nil, nil, err
	}
	if tag != TagGT {
		return nil, nil, errs.New(errs.SerializationFailure, "wire.DecodeGT", "tag mismatch")
	}
	g, err := b.GTFromBytes(body)
	if err != nil {
		return nil, nil, err
	}
	return g, rest, nil
}
