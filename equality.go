package clverify

import (
	"sort"

	"github.com/privacybydesign/clverify/big"
	"github.com/privacybydesign/clverify/clkeys"
)

// check reports nil, negative and duplicate values of the proof.
func (eq *PrimaryEqualProof) check() error {
	seen := make(map[string]struct{}, len(eq.RevealedAttrNames))
	for _, name := range eq.RevealedAttrNames {
		if _, ok := seen[name]; ok {
			return invalid("attribute %s revealed twice", name)
		}
		seen[name] = struct{}{}
	}
	fields := []struct {
		name  string
		value *big.Int
	}{
		{"a_prime", eq.APrime}, {"e", eq.E}, {"v", eq.V}, {"m1", eq.M1}, {"m2", eq.M2},
	}
	for _, f := range fields {
		if err := checkValue(f.name, f.value); err != nil {
			return err
		}
	}
	attrs := make([]string, 0, len(eq.M))
	for attr := range eq.M {
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)
	for _, attr := range attrs {
		if err := checkValue("m["+attr+"]", eq.M[attr]); err != nil {
			return err
		}
	}
	return nil
}

func checkValue(name string, v *big.Int) error {
	if v == nil {
		return missing("%s", name)
	}
	if v.Sign() < 0 {
		return invalid("%s is negative", name)
	}
	return nil
}

// hiddenAttributes returns the names of attrs that are not in revealed, in the order of attrs.
func hiddenAttributes(attrs, revealed []string) []string {
	disclosed := make(map[string]struct{}, len(revealed))
	for _, name := range revealed {
		disclosed[name] = struct{}{}
	}
	var hidden []string
	for _, name := range attrs {
		if _, ok := disclosed[name]; !ok {
			hidden = append(hidden, name)
		}
	}
	return hidden
}

// calcTeq recomputes the equality commitment from the responses:
//
//	Prod_{k in hidden} R_k^m[k] * Rms^m1 * Rctxt^m2 * A'^e * S^v (mod n)
func calcTeq(g *group, aPrime, e, v *big.Int, m map[string]*big.Int, m1, m2 *big.Int, hidden []string) (*big.Int, error) {
	result := big.NewInt(1)
	for _, attr := range hidden {
		response, ok := m[attr]
		if !ok || response == nil {
			return nil, missing("m[%s]", attr)
		}
		pow, err := g.base(clkeys.AttributeBase(attr), response)
		if err != nil {
			return nil, err
		}
		result = g.mul(result, pow)
	}

	pow, err := g.base(clkeys.BaseRms, m1)
	if err != nil {
		return nil, err
	}
	result = g.mul(result, pow)
	if pow, err = g.base(clkeys.BaseRctxt, m2); err != nil {
		return nil, err
	}
	result = g.mul(result, pow)
	result = g.mul(result, g.exp(aPrime, e))
	if pow, err = g.base(clkeys.BaseS, v); err != nil {
		return nil, err
	}
	return g.mul(result, pow), nil
}

// verifyEquality recomputes the commitment of an equality proof under challenge c.
// attrs lists all attribute names of the schema; values holds the revealed attributes.
func verifyEquality(g *group, largeEStart uint, attrs []string, eq *PrimaryEqualProof, c *big.Int, values map[string]*big.Int) (*big.Int, error) {
	t1, err := calcTeq(g, eq.APrime, eq.E, eq.V, eq.M, eq.M1, eq.M2, hiddenAttributes(attrs, eq.RevealedAttrNames))
	if err != nil {
		return nil, err
	}

	// Product of the generators of the revealed attributes over their values,
	// iterated in sorted order.
	revealed := append([]string(nil), eq.RevealedAttrNames...)
	sort.Strings(revealed)
	rar := big.NewInt(1)
	for _, attr := range revealed {
		value, ok := values[attr]
		if !ok || value == nil {
			return nil, missing("value of revealed attribute %s", attr)
		}
		pow, err := g.base(clkeys.AttributeBase(attr), value)
		if err != nil {
			return nil, err
		}
		rar = g.mul(rar, pow)
	}
	rar = g.mul(rar, g.exp(eq.APrime, new(big.Int).Lsh(big.NewInt(1), largeEStart)))

	zr, err := g.div(g.pk.Z, rar)
	if err != nil {
		return nil, err
	}
	return g.unchallenged(zr, c, t1)
}
