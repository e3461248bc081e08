package clverify

import (
	"crypto/rand"
	"sort"
	"sync"
	"testing"

	"github.com/privacybydesign/clverify/big"
	"github.com/privacybydesign/clverify/clkeys"
	"github.com/privacybydesign/clverify/internal/common"
	"github.com/privacybydesign/clverify/keystore"
	"github.com/stretchr/testify/require"
)

// A minimal CL issuer and prover, producing presentations for the verifier under test.

var testAttributes = []string{"name", "age", "height", "sex"}

type testIssuer struct {
	pk  *clkeys.PublicKey
	phi *big.Int
}

type testCredential struct {
	issuer  *testIssuer
	values  map[string]*big.Int
	ms, ctx *big.Int
	v, e, a *big.Int
}

var (
	issuerOnce  sync.Once
	testIssuers [2]*testIssuer
)

func randomBits(t *testing.T, bits uint) *big.Int {
	r, err := common.RandomBigInt(bits)
	require.NoError(t, err)
	return r
}

func modExp(x, e, n *big.Int) *big.Int {
	return new(big.Int).Exp(x, e, n)
}

func modMul(n *big.Int, xs ...*big.Int) *big.Int {
	r := big.NewInt(1)
	for _, x := range xs {
		r.Mul(r, x)
		r.Mod(r, n)
	}
	return r
}

// issuers returns two issuers with 1024 bit moduli, generated once per test run.
func issuers(t *testing.T) [2]*testIssuer {
	issuerOnce.Do(func() {
		for i := range testIssuers {
			testIssuers[i] = newTestIssuer(t)
		}
	})
	require.NotNil(t, testIssuers[1])
	return testIssuers
}

func newTestIssuer(t *testing.T) *testIssuer {
	p, err := rand.Prime(rand.Reader, 512)
	require.NoError(t, err)
	q, err := rand.Prime(rand.Reader, 512)
	require.NoError(t, err)

	one := big.NewInt(1)
	n := new(big.Int).Mul(big.Convert(p), big.Convert(q))
	phi := new(big.Int).Mul(new(big.Int).Sub(big.Convert(p), one), new(big.Int).Sub(big.Convert(q), one))

	x, err := big.RandInt(rand.Reader, n)
	require.NoError(t, err)
	s := modExp(x, big.NewInt(2), n)
	gen := func() *big.Int { return modExp(s, randomBits(t, 1000), n) }

	r := map[string]*big.Int{}
	for _, attr := range testAttributes {
		r[attr] = gen()
	}
	pk, err := clkeys.NewPublicKey(n, s, gen(), gen(), gen(), r)
	require.NoError(t, err)
	return &testIssuer{pk: pk, phi: phi}
}

func (is *testIssuer) sign(t *testing.T, values map[string]*big.Int) *testCredential {
	n := is.pk.N
	cred := &testCredential{
		issuer: is,
		values: values,
		ms:     randomBits(t, 256),
		ctx:    randomBits(t, 256),
		v:      randomBits(t, 2000),
	}

	one := big.NewInt(1)
	for {
		// e = 2^596 + e' for a random odd e' of 120 bits
		e := new(big.Int).Lsh(randomBits(t, 119), 1)
		e.Add(e, one)
		e.Add(e, new(big.Int).Lsh(one, DefaultSystemParameters.LargeEStart))
		if e.ProbablyPrime(20) && new(big.Int).GCD(nil, nil, e, is.phi).Cmp(one) == 0 {
			cred.e = e
			break
		}
	}

	base := modMul(n,
		modExp(is.pk.S, cred.v, n),
		modExp(is.pk.Rms, cred.ms, n),
		modExp(is.pk.Rctxt, cred.ctx, n),
	)
	for _, attr := range testAttributes {
		base = modMul(n, base, modExp(is.pk.R[attr], values[attr], n))
	}
	inv, err := common.ModInverse(base, n)
	require.NoError(t, err)
	d := new(big.Int).ModInverse(cred.e, is.phi)
	cred.a = modExp(modMul(n, is.pk.Z, inv), d, n)
	return cred
}

func testValues() map[string]*big.Int {
	name, _ := big.FromDecimal("1139481716457488690172217916278103335")
	return map[string]*big.Int{
		"name":   name,
		"age":    big.NewInt(25),
		"height": big.NewInt(175),
		"sex":    big.NewInt(1),
	}
}

// fourSquares writes delta as a sum of four squares.
func fourSquares(t *testing.T, delta int64) [4]int64 {
	for a := int64(0); a*a <= delta; a++ {
		for b := int64(0); a*a+b*b <= delta; b++ {
			for c := int64(0); a*a+b*b+c*c <= delta; c++ {
				rest := delta - a*a - b*b - c*c
				d := int64(0)
				for d*d < rest {
					d++
				}
				if d*d == rest {
					return [4]int64{a, b, c, d}
				}
			}
		}
	}
	t.Fatalf("no four squares for %d", delta)
	return [4]int64{}
}

type geCommitment struct {
	pred   Predicate
	u      [4]*big.Int
	r, t   DeltaDigits
	ut     [4]*big.Int
	rt     DeltaDigits
	alphat *big.Int
}

type proverPart struct {
	key      clkeys.SchemaKey
	cred     *testCredential
	revealed []string
	hidden   []string
	preds    []Predicate

	et, vt, m1t, m2t *big.Int
	mt               map[string]*big.Int
	ges              []*geCommitment
}

// commit chooses the randomizers and returns the commitments of this part, and its
// contribution to the auxiliary commitment list.
func (pp *proverPart) commit(t *testing.T) (taus, clist []*big.Int) {
	pk := pp.cred.issuer.pk
	n := pk.N
	pp.hidden = hiddenAttributes(testAttributes, pp.revealed)
	pp.et, pp.vt = randomBits(t, 456), randomBits(t, 2500)
	pp.m1t, pp.m2t = randomBits(t, 600), randomBits(t, 600)
	pp.mt = map[string]*big.Int{}

	teq := modMul(n,
		modExp(pp.cred.a, pp.et, n),
		modExp(pk.S, pp.vt, n),
		modExp(pk.Rms, pp.m1t, n),
		modExp(pk.Rctxt, pp.m2t, n),
	)
	for _, attr := range pp.hidden {
		pp.mt[attr] = randomBits(t, 600)
		teq = modMul(n, teq, modExp(pk.R[attr], pp.mt[attr], n))
	}
	taus = []*big.Int{teq}
	clist = []*big.Int{pp.cred.a}

	for _, pred := range pp.preds {
		ge := &geCommitment{pred: pred}
		delta := pp.cred.values[pred.AttrName].Int64() - pred.Value
		digits := fourSquares(t, delta)
		for i := range ge.u {
			ge.u[i] = big.NewInt(digits[i])
		}
		for i := range ge.r {
			ge.r[i] = randomBits(t, 2100)
			ge.rt[i] = randomBits(t, 2700)
		}
		for i := range ge.u {
			ge.t[i] = modMul(n, modExp(pk.Z, ge.u[i], n), modExp(pk.S, ge.r[i], n))
		}
		ge.t[DeltaSlot] = modMul(n, modExp(pk.Z, big.NewInt(delta), n), modExp(pk.S, ge.r[DeltaSlot], n))
		clist = append(clist, ge.t[:]...)

		for i := range ge.ut {
			ge.ut[i] = randomBits(t, 600)
			taus = append(taus, modMul(n, modExp(pk.Z, ge.ut[i], n), modExp(pk.S, ge.rt[i], n)))
		}
		taus = append(taus, modMul(n, modExp(pk.Z, pp.mt[pred.AttrName], n), modExp(pk.S, ge.rt[DeltaSlot], n)))

		ge.alphat = new(big.Int).Add(randomBits(t, 2700), new(big.Int).Lsh(big.NewInt(1), 2800))
		q := modExp(pk.S, ge.alphat, n)
		for i := range ge.ut {
			q = modMul(n, q, modExp(ge.t[i], ge.ut[i], n))
		}
		taus = append(taus, q)
		pp.ges = append(pp.ges, ge)
	}
	return taus, clist
}

// response computes rt + c*secret.
func response(rt, c, secret *big.Int) *big.Int {
	return new(big.Int).Add(rt, new(big.Int).Mul(c, secret))
}

func (pp *proverPart) respond(c *big.Int) *Proof {
	cred := pp.cred
	eprime := new(big.Int).Sub(cred.e, new(big.Int).Lsh(big.NewInt(1), DefaultSystemParameters.LargeEStart))
	eq := &PrimaryEqualProof{
		RevealedAttrNames: append([]string(nil), pp.revealed...),
		APrime:            cred.a,
		E:                 response(pp.et, c, eprime),
		V:                 response(pp.vt, c, cred.v),
		M:                 map[string]*big.Int{},
		M1:                response(pp.m1t, c, cred.ms),
		M2:                response(pp.m2t, c, cred.ctx),
	}
	for _, attr := range pp.hidden {
		eq.M[attr] = response(pp.mt[attr], c, cred.values[attr])
	}

	primary := &PrimaryProof{EqProof: eq}
	for _, ge := range pp.ges {
		proof := &PrimaryPredicateGEProof{MJ: eq.M[ge.pred.AttrName], T: ge.t, Predicate: ge.pred}
		sum := new(big.Int)
		for i := range ge.u {
			proof.U[i] = response(ge.ut[i], c, ge.u[i])
			sum.Add(sum, new(big.Int).Mul(ge.u[i], ge.r[i]))
		}
		for i := range ge.r {
			proof.R[i] = response(ge.rt[i], c, ge.r[i])
		}
		proof.Alpha = response(ge.alphat, c, new(big.Int).Sub(ge.r[DeltaSlot], sum))
		primary.GEProofs = append(primary.GEProofs, proof)
	}
	return &Proof{PrimaryProof: primary}
}

// prove creates a presentation of the given parts under the nonce.
func prove(t *testing.T, nonce *big.Int, parts ...*proverPart) *FullProof {
	values := []*big.Int{nonce}
	var clist []*big.Int
	for _, pp := range parts {
		taus, cl := pp.commit(t)
		values = append(values, taus...)
		clist = append(clist, cl...)
	}
	c := common.HashAsInt(append(values, clist...))

	proof := &FullProof{CHash: c, CList: clist}
	for _, pp := range parts {
		proof.SchemaKeys = append(proof.SchemaKeys, pp.key)
		proof.Proofs = append(proof.Proofs, pp.respond(c))
	}
	return proof
}

// revealedValues returns the values of the revealed attributes of the parts.
func revealedValues(parts ...*proverPart) map[string]*big.Int {
	values := map[string]*big.Int{}
	for _, pp := range parts {
		for _, attr := range pp.revealed {
			values[attr] = pp.cred.values[attr]
		}
	}
	return values
}

func requestFor(parts ...*proverPart) *ProofInput {
	input := &ProofInput{}
	for _, pp := range parts {
		input.RevealedAttrs = append(input.RevealedAttrs, pp.revealed...)
		input.Predicates = append(input.Predicates, pp.preds...)
	}
	sort.Strings(input.RevealedAttrs)
	return input
}

type testPresentation struct {
	verifier *Verifier
	input    *ProofInput
	proof    *FullProof
	revealed map[string]*big.Int
	nonce    *big.Int
}

var (
	gvtKey    = clkeys.SchemaKey{Name: "GVT", Version: "1.0", IssuerID: "issuer1"}
	secondKey = clkeys.SchemaKey{Name: "XYZ", Version: "1.0", IssuerID: "issuer2"}
)

// newPresentation creates a valid presentation revealing name and proving age >= 18.
func newPresentation(t *testing.T) *testPresentation {
	is := issuers(t)[0]
	keys := keystore.NewMemory()
	require.NoError(t, keys.Add(gvtKey, is.pk, testAttributes))

	part := &proverPart{
		key:      gvtKey,
		cred:     is.sign(t, testValues()),
		revealed: []string{"name"},
		preds:    []Predicate{{AttrName: "age", Type: PredicateGE, Value: 18}},
	}
	nonce := randomBits(t, 80)
	return &testPresentation{
		verifier: NewVerifier(keys),
		input:    requestFor(part),
		proof:    prove(t, nonce, part),
		revealed: revealedValues(part),
		nonce:    nonce,
	}
}

func (tp *testPresentation) verify() (bool, error) {
	return tp.verifier.Verify(tp.input, tp.proof, tp.revealed, tp.nonce)
}
