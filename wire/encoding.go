package wire

import "github.com/openabe-go/abe-core/pairing"

// Encoding selects which of spec.md §4.2.1's two G1/G2/GT body
// framings a container's elements carry. Zr bodies are never wrapped
// either way — the standard envelope only applies to curve points.
type Encoding int

const (
	LegacyCompact Encoding = iota
	StandardFramed
)

const (
	oabeMagic   = "OABE"
	oabeVersion = 2
)

type elemType byte

const (
	elemG1 elemType = 0x01
	elemG2 elemType = 0x02
	elemGT elemType = 0x03
)

// Format is one of the recognized §4.2.1 body formats.
type Format byte

const (
	FormatSEC1          Format = 0x01
	FormatZcashBLS12     Format = 0x02
	FormatEthereumBN254  Format = 0x03
	FormatIETFPairing    Format = 0x04
)

func defaultFormat(curve pairing.CurveID) Format {
	if curve == pairing.BN254 {
		return FormatEthereumBN254
	}
	return FormatZcashBLS12
}

func curveByte(curve pairing.CurveID) byte {
	switch curve {
	case pairing.BLS12_381:
		return 0x01
	case pairing.BN254:
		return 0x02
	default:
		return 0x00
	}
}

// wrapStandard prepends the 9-byte OABE header to a native element
// body. Flag bits (COMPRESSION, INFINITY, Y_SIGN, CYCLOTOMIC) are
// always zero: no backend in this module ever produces a compressed
// or cyclotomic-compressed body (see DESIGN.md).
func wrapStandard(et elemType, curve pairing.CurveID, body []byte) []byte {
	header := make([]byte, 9)
	copy(header[0:4], oabeMagic)
	header[4] = oabeVersion
	header[5] = byte(et)
	header[6] = curveByte(curve)
	header[7] = byte(defaultFormat(curve))
	header[8] = 0
	return append(header, body...)
}

// unwrapStandard strips the OABE header if present. Per spec.md
// §4.2.1, "absence of magic means legacy", so a legacy body is
// returned unchanged.
func unwrapStandard(body []byte) []byte {
	if len(body) >= 9 && string(body[0:4]) == oabeMagic {
		return body[9:]
	}
	return body
}

// ToStandardEncoding rewrites every G1/G2/GT-tagged entry of c to
// carry the standard framed envelope, leaving Zr and non-element
// entries (policy, attrs, _ED) untouched.
func ToStandardEncoding(c *Container, curve pairing.CurveID) *Container {
	out := &Container{SchemeID: c.SchemeID}
	for _, e := range c.Entries {
		tag, body, rest, err := DecodeFrame(e.Value)
		if err != nil || len(rest) != 0 {
			out.Set(e.Label, e.Value)
			continue
		}
		var et elemType
		switch tag {
		case TagG1:
			et = elemG1
		case TagG2:
			et = elemG2
		case TagGT:
			et = elemGT
		default:
			out.Set(e.Label, e.Value)
			continue
		}
		out.Set(e.Label, EncodeFrame(tag, wrapStandard(et, curve, body)))
	}
	return out
}

// FromStandardEncoding reverses ToStandardEncoding, stripping any
// OABE envelope it finds back down to the legacy compact body.
func FromStandardEncoding(c *Container) *Container {
	out := &Container{SchemeID: c.SchemeID}
	for _, e := range c.Entries {
		tag, body, rest, err := DecodeFrame(e.Value)
		if err != nil || len(rest) != 0 {
			out.Set(e.Label, e.Value)
			continue
		}
		out.Set(e.Label, EncodeFrame(tag, unwrapStandard(body)))
	}
	return out
}
