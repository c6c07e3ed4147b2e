package cca

import (
	"io"
	"strings"

	"github.com/openabe-go/abe-core/errs"
	"github.com/openabe-go/abe-core/kpgpsw"
	"github.com/openabe-go/abe-core/pairing"
	"github.com/openabe-go/abe-core/policy"
	"github.com/openabe-go/abe-core/wire"
)

// KPGPSWKEM adapts kpgpsw to the KEM interface. SK may be nil for an
// adapter only ever used to Encrypt.
type KPGPSWKEM struct {
	B     pairing.Backend
	MPK   *kpgpsw.MPK
	Attrs *policy.AttributeList
	SK    *kpgpsw.SK
}

func (k *KPGPSWKEM) SchemeID() byte { return wire.SchemeKPGPSWCCA }

func (k *KPGPSWKEM) AccessStructure() []byte {
	return []byte(strings.Join(k.Attrs.Attributes(), "\n"))
}

func (k *KPGPSWKEM) Encap(rng io.Reader) (*wire.Container, pairing.GT, error) {
	return kpgpsw.Encap(k.B, rng, k.MPK, k.Attrs)
}

func (k *KPGPSWKEM) Decap(ct *wire.Container) (pairing.GT, error) {
	if k.SK == nil {
		return nil, errs.New(errs.InvalidKey, "cca.KPGPSWKEM.Decap", "adapter has no secret key")
	}
	return kpgpsw.Decap(k.B, k.SK, ct)
}
