package abe

import (
	"io"

	"github.com/openabe-go/abe-core/cca"
	"github.com/openabe-go/abe-core/cpwaters"
	"github.com/openabe-go/abe-core/errs"
	"github.com/openabe-go/abe-core/hybrid"
	"github.com/openabe-go/abe-core/kpgpsw"
	"github.com/openabe-go/abe-core/pairing"
	"github.com/openabe-go/abe-core/policy"
	"github.com/openabe-go/abe-core/wire"
)

func resolveBackend(cfg Config) (pairing.Backend, error) {
	return pairing.NewBackend(cfg.Curve, pairing.Reference)
}

// Setup runs scheme-appropriate Setup under cfg. universe is used only
// by KP_GPSW (its small-universe construction needs the declared
// attribute universe up front); CP_WATERS ignores it.
func Setup(cfg Config, rng io.Reader, universe []string) (*MPK, *MSK, error) {
	cfg = cfg.normalize()
	b, err := resolveBackend(cfg)
	if err != nil {
		return nil, nil, err
	}

	switch cfg.Scheme {
	case CPWaters:
		mpk, msk, err := cpwaters.Setup(b, rng)
		if err != nil {
			return nil, nil, err
		}
		return &MPK{Config: cfg, CPWaters: mpk}, &MSK{Config: cfg, CPWaters: msk}, nil
	case KPGPSW:
		mpk, msk, err := kpgpsw.Setup(b, rng, universe)
		if err != nil {
			return nil, nil, err
		}
		return &MPK{Config: cfg, KPGPSW: mpk}, &MSK{Config: cfg, KPGPSW: msk}, nil
	default:
		return nil, nil, errs.New(errs.InvalidParameter, "abe.Setup", "unknown scheme: "+string(cfg.Scheme))
	}
}

// KeyGen runs scheme-appropriate KeyGen. CP_WATERS keys are bound to
// an attribute set (attrs); KP_GPSW keys are bound to a policy tree
// (tree, with leaf ids already assigned via policy.AssignLeafIDs).
// Pass nil for whichever parameter the configured scheme does not use.
func KeyGen(cfg Config, rng io.Reader, mpk *MPK, msk *MSK, attrs *policy.AttributeList, tree *policy.Node) (*SK, error) {
	cfg = cfg.normalize()
	b, err := resolveBackend(cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.Scheme {
	case CPWaters:
		if mpk.CPWaters == nil || msk.CPWaters == nil {
			return nil, errs.New(errs.InvalidKey, "abe.KeyGen", "mpk/msk not configured for CP_WATERS")
		}
		sk, err := cpwaters.KeyGen(b, rng, mpk.CPWaters, msk.CPWaters, attrs)
		if err != nil {
			return nil, err
		}
		return &SK{Config: cfg, CPWaters: sk}, nil
	case KPGPSW:
		if mpk.KPGPSW == nil || msk.KPGPSW == nil {
			return nil, errs.New(errs.InvalidKey, "abe.KeyGen", "mpk/msk not configured for KP_GPSW")
		}
		sk, err := kpgpsw.KeyGen(b, rng, mpk.KPGPSW, msk.KPGPSW, tree)
		if err != nil {
			return nil, err
		}
		return &SK{Config: cfg, KPGPSW: sk}, nil
	default:
		return nil, errs.New(errs.InvalidParameter, "abe.KeyGen", "unknown scheme: "+string(cfg.Scheme))
	}
}

// buildKEM resolves the cca.KEM adapter for the configured scheme. sk
// may be nil for an encrypt-only call.
func buildKEM(cfg Config, b pairing.Backend, mpk *MPK, sk *SK, tree *policy.Node, attrs *policy.AttributeList) (cca.KEM, error) {
	switch cfg.Scheme {
	case CPWaters:
		if mpk.CPWaters == nil {
			return nil, errs.New(errs.InvalidKey, "abe", "mpk not configured for CP_WATERS")
		}
		var skc *cpwaters.SK
		if sk != nil {
			skc = sk.CPWaters
		}
		return &cca.CPWatersKEM{B: b, MPK: mpk.CPWaters, Tree: tree, SK: skc}, nil
	case KPGPSW:
		if mpk.KPGPSW == nil {
			return nil, errs.New(errs.InvalidKey, "abe", "mpk not configured for KP_GPSW")
		}
		var skc *kpgpsw.SK
		if sk != nil {
			skc = sk.KPGPSW
		}
		return &cca.KPGPSWKEM{B: b, MPK: mpk.KPGPSW, Attrs: attrs, SK: skc}, nil
	default:
		return nil, errs.New(errs.InvalidParameter, "abe", "unknown scheme: "+string(cfg.Scheme))
	}
}

func applyOutputEncoding(cfg Config, ct *wire.Container) *wire.Container {
	if cfg.Encoding == StandardFramed {
		return wire.ToStandardEncoding(ct, cfg.Curve)
	}
	return ct
}

func applyInputEncoding(cfg Config, ct *wire.Container) *wire.Container {
	if cfg.Encoding == StandardFramed {
		return wire.FromStandardEncoding(ct)
	}
	return ct
}

// Encrypt seals plaintext under the access structure (tree for
// CP_WATERS, attrs for KP_GPSW), wrapped with the CCA transform unless
// cfg.CCA is CCAOff.
func Encrypt(cfg Config, rng io.Reader, mpk *MPK, tree *policy.Node, attrs *policy.AttributeList, plaintext []byte) (*wire.Container, error) {
	cfg = cfg.normalize()
	b, err := resolveBackend(cfg)
	if err != nil {
		return nil, err
	}
	kem, err := buildKEM(cfg, b, mpk, nil, tree, attrs)
	if err != nil {
		return nil, err
	}

	var ct *wire.Container
	if cfg.CCA == CCAOff {
		ct, err = hybrid.Encrypt(kem, plaintext, rng)
	} else {
		ct, err = cca.Encrypt(kem, plaintext, rng)
	}
	if err != nil {
		return nil, err
	}
	return applyOutputEncoding(cfg, ct), nil
}

// Decrypt reverses Encrypt. tree is required for CP_WATERS (the
// decryptor must already possess the same policy tree the ciphertext
// was encrypted under); attrs is ignored for KP_GPSW, whose attribute
// set is read from the ciphertext's own attrs entry.
func Decrypt(cfg Config, mpk *MPK, sk *SK, tree *policy.Node, attrs *policy.AttributeList, ct *wire.Container) ([]byte, error) {
	cfg = cfg.normalize()
	ct = applyInputEncoding(cfg, ct)
	b, err := resolveBackend(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Scheme == KPGPSW {
		raw, found := ct.Get("attrs")
		if !found {
			return nil, errs.New(errs.DecryptionFailed, "abe.Decrypt", "missing attrs entry")
		}
		attrs, err = policy.NewAttributeList(splitAttrs(string(raw))...)
		if err != nil {
			return nil, errs.Wrap(errs.DecryptionFailed, "abe.Decrypt", err)
		}
	}
	kem, err := buildKEM(cfg, b, mpk, sk, tree, attrs)
	if err != nil {
		return nil, err
	}

	if cfg.CCA == CCAOff {
		return hybrid.Decrypt(kem, ct)
	}
	return cca.Decrypt(kem, ct)
}

// Encap runs the raw IND-CPA KEM (no AEAD payload, no CCA binding):
// the lower-level entry point spec.md §6.1 exposes alongside Encrypt.
func Encap(cfg Config, rng io.Reader, mpk *MPK, tree *policy.Node, attrs *policy.AttributeList) (*wire.Container, pairing.GT, error) {
	cfg = cfg.normalize()
	b, err := resolveBackend(cfg)
	if err != nil {
		return nil, nil, err
	}
	kem, err := buildKEM(cfg, b, mpk, nil, tree, attrs)
	if err != nil {
		return nil, nil, err
	}
	ct, kgt, err := kem.Encap(rng)
	if err != nil {
		return nil, nil, err
	}
	return applyOutputEncoding(cfg, ct), kgt, nil
}

// Decap reverses Encap.
func Decap(cfg Config, mpk *MPK, sk *SK, tree *policy.Node, attrs *policy.AttributeList, ct *wire.Container) (pairing.GT, error) {
	cfg = cfg.normalize()
	ct = applyInputEncoding(cfg, ct)
	b, err := resolveBackend(cfg)
	if err != nil {
		return nil, err
	}
	kem, err := buildKEM(cfg, b, mpk, sk, tree, attrs)
	if err != nil {
		return nil, err
	}
	return kem.Decap(ct)
}
