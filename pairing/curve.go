package pairing

import "github.com/openabe-go/abe-core/errs"

// CurveID names a supported curve. Lookup failure is an InvalidParameter,
// never a panic — see spec.md §4.10, "UnknownCurve".
type CurveID string

const (
	BLS12_381 CurveID = "BLS12_381"
	BN254     CurveID = "BN254"
)

// Curve is the resolved set of parameters the catalog hands back for
// a given CurveID: field size, encoding widths, and the security
// level, used by wire-format code to size buffers without reaching
// into a specific backend.
type Curve struct {
	ID CurveID

	// SecurityBits is the pairing's approximate security level.
	SecurityBits int

	// FieldBytes is the byte size of one base-field element.
	FieldBytes int

	// G1Bytes/G2Bytes/GTBytes are the uncompressed wire sizes:
	// G1 = 2*FieldBytes, G2 = 4*FieldBytes, GT = 12*FieldBytes, per
	// spec.md §4.2.1.
	G1Bytes int
	G2Bytes int
	GTBytes int

	// GTCompressedBytes is the cyclotomic-compressed GT size
	// (8*FieldBytes). Decompression is unimplemented — see DESIGN.md.
	GTCompressedBytes int

	// HashToCurveDomain is a per-curve domain-separation tag kept in
	// the catalog. HashToG1 always takes its domain from the caller
	// and does not read this field.
	HashToCurveDomain string
}

var catalog = map[CurveID]Curve{
	BLS12_381: {
		ID:                BLS12_381,
		SecurityBits:      128,
		FieldBytes:        48,
		G1Bytes:           96,
		G2Bytes:           192,
		GTBytes:           576,
		GTCompressedBytes: 384,
		HashToCurveDomain: "OPENABE-GO-BLS12381-G1-",
	},
	BN254: {
		ID:                BN254,
		SecurityBits:      100,
		FieldBytes:        32,
		G1Bytes:           64,
		G2Bytes:           128,
		GTBytes:           384,
		GTCompressedBytes: 256,
		HashToCurveDomain: "OPENABE-GO-BN254-G1-",
	},
}

// LookupCurve resolves a CurveID to its parameter record.
func LookupCurve(id CurveID) (Curve, error) {
	c, ok := catalog[id]
	if !ok {
		return Curve{}, errs.New(errs.InvalidParameter, "pairing.LookupCurve", "unknown curve id "+string(id))
	}
	return c, nil
}
