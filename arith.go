package clverify

import (
	"github.com/privacybydesign/clverify/big"
	"github.com/privacybydesign/clverify/clkeys"
	"github.com/privacybydesign/clverify/internal/common"
)

// group performs the modular arithmetic of a single verification in the group of
// one public key. It allocates new values for every result and is not shared
// between verifications.
type group struct {
	pk *clkeys.PublicKey
	n  *big.Int
}

func newGroup(pk *clkeys.PublicKey) *group {
	return &group{pk: pk, n: pk.N}
}

// base computes the named generator to the power e.
func (g *group) base(name string, e *big.Int) (*big.Int, error) {
	ret := new(big.Int)
	if !g.pk.Exp(ret, name, e) {
		return nil, missing("generator %s", name)
	}
	return ret, nil
}

func (g *group) exp(x, e *big.Int) *big.Int {
	return new(big.Int).Exp(x, e, g.n)
}

func (g *group) mul(x, y *big.Int) *big.Int {
	r := new(big.Int).Mul(x, y)
	return r.Mod(r, g.n)
}

func (g *group) inverse(x *big.Int) (*big.Int, error) {
	r, err := common.ModInverse(x, g.n)
	if err != nil {
		return nil, prefix(ErrArithmetic, "%s", err.Error())
	}
	return r, nil
}

func (g *group) div(x, y *big.Int) (*big.Int, error) {
	r, err := common.ModDiv(x, y, g.n)
	if err != nil {
		return nil, prefix(ErrArithmetic, "%s", err.Error())
	}
	return r, nil
}

// unchallenged computes x^-c * raw: it removes the contribution of the challenge c
// from a commitment recomputed from responses.
func (g *group) unchallenged(x, c, raw *big.Int) (*big.Int, error) {
	inv, err := g.inverse(g.exp(x, c))
	if err != nil {
		return nil, err
	}
	return g.mul(inv, raw), nil
}
