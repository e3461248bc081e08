package clverify

import (
	"github.com/privacybydesign/clverify/big"
	"github.com/privacybydesign/clverify/clkeys"
)

func (ge *PrimaryPredicateGEProof) check() error {
	if err := ge.Predicate.check(); err != nil {
		return err
	}
	for i, v := range ge.U {
		if err := checkValue("u["+slotNames[i]+"]", v); err != nil {
			return err
		}
	}
	for i := range ge.R {
		if err := checkValue("r["+slotNames[i]+"]", ge.R[i]); err != nil {
			return err
		}
		if err := checkValue("t["+slotNames[i]+"]", ge.T[i]); err != nil {
			return err
		}
	}
	if err := checkValue("mj", ge.MJ); err != nil {
		return err
	}
	return checkValue("alpha", ge.Alpha)
}

// calcTge recomputes the six commitments of a GE proof from its responses:
//
//	T_i = Z^u_i * S^r_i                  for i = 0..3
//	T_4 = Z^mj * S^r_DELTA
//	Q   = S^alpha * Prod_{i=0..3} t_i^u_i
func calcTge(g *group, u Digits, r DeltaDigits, mj, alpha *big.Int, t DeltaDigits) ([]*big.Int, error) {
	commit := func(zexp, sexp *big.Int) (*big.Int, error) {
		zpow, err := g.base(clkeys.BaseZ, zexp)
		if err != nil {
			return nil, err
		}
		spow, err := g.base(clkeys.BaseS, sexp)
		if err != nil {
			return nil, err
		}
		return g.mul(zpow, spow), nil
	}

	result := make([]*big.Int, 0, 6)
	for i := range u {
		ti, err := commit(u[i], r[i])
		if err != nil {
			return nil, err
		}
		result = append(result, ti)
	}
	t4, err := commit(mj, r.Delta())
	if err != nil {
		return nil, err
	}
	result = append(result, t4)

	q, err := g.base(clkeys.BaseS, alpha)
	if err != nil {
		return nil, err
	}
	for i := range u {
		q = g.mul(q, g.exp(t[i], u[i]))
	}
	return append(result, q), nil
}

// verifyGEPredicate recomputes the commitments of a GE proof under challenge c,
// in the order T0, T1, T2, T3, T4, Q.
func verifyGEPredicate(g *group, ge *PrimaryPredicateGEProof, c *big.Int) ([]*big.Int, error) {
	raw, err := calcTge(g, ge.U, ge.R, ge.MJ, ge.Alpha, ge.T)
	if err != nil {
		return nil, err
	}

	result := make([]*big.Int, 0, len(raw))
	for i := range ge.U {
		ti, err := g.unchallenged(ge.T[i], c, raw[i])
		if err != nil {
			return nil, prefix(err, "t[%d]", i)
		}
		result = append(result, ti)
	}

	delta := ge.T.Delta()
	zthr, err := g.base(clkeys.BaseZ, big.NewInt(ge.Predicate.Value))
	if err != nil {
		return nil, err
	}
	t4, err := g.unchallenged(g.mul(zthr, delta), c, raw[4])
	if err != nil {
		return nil, prefix(err, "t[DELTA]")
	}
	q, err := g.unchallenged(delta, c, raw[5])
	if err != nil {
		return nil, prefix(err, "t[DELTA]")
	}
	return append(result, t4, q), nil
}
