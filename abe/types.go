package abe

import (
	"github.com/openabe-go/abe-core/cpwaters"
	"github.com/openabe-go/abe-core/kpgpsw"
)

// MPK is the facade's master public key: exactly one of CPWaters or
// KPGPSW is populated, per Config.Scheme.
type MPK struct {
	Config   Config
	CPWaters *cpwaters.MPK
	KPGPSW   *kpgpsw.MPK
}

// MSK is the facade's master secret key.
type MSK struct {
	Config   Config
	CPWaters *cpwaters.MSK
	KPGPSW   *kpgpsw.MSK
}

// SK is a facade user secret key.
type SK struct {
	Config   Config
	CPWaters *cpwaters.SK
	KPGPSW   *kpgpsw.SK
}
