package cca

import (
	"io"

	"github.com/openabe-go/abe-core/cpwaters"
	"github.com/openabe-go/abe-core/errs"
	"github.com/openabe-go/abe-core/pairing"
	"github.com/openabe-go/abe-core/policy"
	"github.com/openabe-go/abe-core/wire"
)

// CPWatersKEM adapts cpwaters to the KEM interface. SK may be nil for
// an adapter only ever used to Encrypt.
type CPWatersKEM struct {
	B    pairing.Backend
	MPK  *cpwaters.MPK
	Tree *policy.Node
	SK   *cpwaters.SK
}

func (k *CPWatersKEM) SchemeID() byte { return wire.SchemeCPWatersCCA }

func (k *CPWatersKEM) AccessStructure() []byte {
	return []byte(policy.Canonical(k.Tree))
}

func (k *CPWatersKEM) Encap(rng io.Reader) (*wire.Container, pairing.GT, error) {
	return cpwaters.Encap(k.B, rng, k.MPK, k.Tree)
}

func (k *CPWatersKEM) Decap(ct *wire.Container) (pairing.GT, error) {
	if k.SK == nil {
		return nil, errs.New(errs.InvalidKey, "cca.CPWatersKEM.Decap", "adapter has no secret key")
	}
	return cpwaters.Decap(k.B, k.MPK, k.SK, ct, k.Tree)
}
