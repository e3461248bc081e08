package clverify

import (
	"strconv"

	"github.com/privacybydesign/clverify/big"
	"github.com/privacybydesign/clverify/clkeys"
	"github.com/privacybydesign/clverify/internal/common"
	"github.com/sirupsen/logrus"
)

// KeyProvider resolves the issuer public key and the canonical attribute names of a schema.
type KeyProvider interface {
	PublicKey(key clkeys.SchemaKey) (*clkeys.PublicKey, error)
	AttributeNames(key clkeys.SchemaKey) ([]string, error)
}

// Verifier verifies presentation proofs against the keys of a KeyProvider.
// A Verifier holds no mutable state and may be used from multiple goroutines.
type Verifier struct {
	keys   KeyProvider
	params *SystemParameters
	logger *logrus.Logger
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithParameters overrides DefaultSystemParameters.
func WithParameters(params *SystemParameters) Option {
	return func(v *Verifier) { v.params = params }
}

// WithLogger overrides the package Logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(v *Verifier) { v.logger = logger }
}

func NewVerifier(keys KeyProvider, opts ...Option) *Verifier {
	v := &Verifier{keys: keys, params: DefaultSystemParameters, logger: Logger}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// GenerateNonce returns a fresh random nonce of NonceBits bits.
func (v *Verifier) GenerateNonce() (*big.Int, error) {
	return common.RandomBigInt(v.params.NonceBits)
}

// Verify checks the proof against the request in input, the revealed attribute values
// and the nonce that the verifier sent to the prover. A nil input places no
// requirements on the revealed attributes and predicates.
//
// It returns false with a nil error if the proof is well-formed but invalid, or if it
// does not satisfy input. An error means that the proof could not be verified at all;
// see the Err* variables.
//
// Verify checks only what the proof contains. Without a request a proof with no
// primary proofs, whose c_hash is the hash of the nonce and c_list, verifies true:
// it proves nothing. Pass a request, or check proof.Proofs, to require credentials.
func (v *Verifier) Verify(input *ProofInput, proof *FullProof, revealed map[string]*big.Int, nonce *big.Int) (bool, error) {
	if err := v.check(input, proof, revealed, nonce); err != nil {
		return false, err
	}

	log := v.logger.WithField("proofs", len(proof.Proofs))
	if input != nil {
		if ok, reason := input.satisfies(proof); !ok {
			log.Debug("proof does not satisfy request: ", reason)
			return false, nil
		}
	}

	values := []*big.Int{nonce}
	for i, key := range proof.SchemaKeys {
		if proof.Proofs[i].PrimaryProof == nil {
			continue
		}
		taus, err := v.verifyPrimaryProof(key, proof.CHash, proof.Proofs[i].PrimaryProof, revealed)
		if err != nil {
			return false, prefix(err, "proof %d (%s)", i, key)
		}
		values = append(values, taus...)
	}
	values = append(values, proof.CList...)

	if common.HashAsInt(values).Cmp(proof.CHash) != 0 {
		log.Debug("challenge mismatch")
		return false, nil
	}
	return true, nil
}

// check performs all structural checks on the arguments of Verify.
func (v *Verifier) check(input *ProofInput, proof *FullProof, revealed map[string]*big.Int, nonce *big.Int) error {
	if proof == nil {
		return missing("proof")
	}
	if err := checkValue("nonce", nonce); err != nil {
		return err
	}
	if err := checkValue("c_hash", proof.CHash); err != nil {
		return err
	}
	if len(proof.SchemaKeys) != len(proof.Proofs) {
		return prefix(ErrLengthMismatch, "%d schema keys, %d proofs", len(proof.SchemaKeys), len(proof.Proofs))
	}
	for i, c := range proof.CList {
		if err := checkValue("c_list["+strconv.Itoa(i)+"]", c); err != nil {
			return err
		}
	}
	for attr, value := range revealed {
		if err := checkValue("value of revealed attribute "+attr, value); err != nil {
			return err
		}
	}
	if input != nil {
		for _, pred := range input.Predicates {
			if err := pred.check(); err != nil {
				return prefix(err, "request")
			}
		}
	}

	for i, p := range proof.Proofs {
		if p == nil {
			return missing("proof %d", i)
		}
		if p.HasNonRevocationProof() {
			return prefix(ErrNonRevocationUnsupported, "proof %d", i)
		}
		if p.PrimaryProof == nil {
			continue
		}
		if p.PrimaryProof.EqProof == nil {
			return missing("proof %d: eq_proof", i)
		}
		if err := p.PrimaryProof.EqProof.check(); err != nil {
			return prefix(err, "proof %d: eq_proof", i)
		}
		for j, ge := range p.PrimaryProof.GEProofs {
			if ge == nil {
				return missing("proof %d: ge_proof[%d]", i, j)
			}
			if err := ge.check(); err != nil {
				return prefix(err, "proof %d: ge_proof[%d]", i, j)
			}
		}
	}
	return nil
}

// verifyPrimaryProof returns the recomputed equality commitment followed by the six
// commitments of every GE proof, in order.
func (v *Verifier) verifyPrimaryProof(key clkeys.SchemaKey, c *big.Int, proof *PrimaryProof, revealed map[string]*big.Int) ([]*big.Int, error) {
	pk, err := v.keys.PublicKey(key)
	if err != nil {
		return nil, err
	}
	attrs, err := v.keys.AttributeNames(key)
	if err != nil {
		return nil, err
	}
	if v.logger.IsLevelEnabled(logrus.TraceLevel) {
		if fp, err := pk.Fingerprint(); err == nil {
			v.logger.WithField("schema", key.String()).Trace("verifying against key ", fp)
		}
	}

	g := newGroup(pk)
	teq, err := verifyEquality(g, v.params.LargeEStart, attrs, proof.EqProof, c, revealed)
	if err != nil {
		return nil, prefix(err, "eq_proof")
	}
	taus := []*big.Int{teq}
	for i, ge := range proof.GEProofs {
		tge, err := verifyGEPredicate(g, ge, c)
		if err != nil {
			return nil, prefix(err, "ge_proof[%d]", i)
		}
		taus = append(taus, tge...)
	}
	return taus, nil
}
