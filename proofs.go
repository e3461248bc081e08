package clverify

import (
	"encoding/json"

	"github.com/go-errors/errors"
	"github.com/privacybydesign/clverify/big"
	"github.com/privacybydesign/clverify/cbor"
	"github.com/privacybydesign/clverify/clkeys"
)

// DeltaSlot is the index of the remainder ("DELTA") entry in a DeltaDigits.
const DeltaSlot = 4

// slotNames are the wire names of the digit slots.
var slotNames = [5]string{"0", "1", "2", "3", "DELTA"}

type (
	// Digits holds one value per digit of the four-square decomposition used by a
	// GE predicate proof. On the wire it is a map with keys "0" to "3".
	Digits [4]*big.Int

	// DeltaDigits holds Digits followed by the remainder term at DeltaSlot.
	// On the wire it is a map with keys "0" to "3" and "DELTA".
	DeltaDigits [5]*big.Int

	// PrimaryEqualProof proves that the revealed and hidden attributes belong to a
	// CL signature of the issuer.
	PrimaryEqualProof struct {
		RevealedAttrNames []string            `json:"revealed_attr_names"`
		APrime            *big.Int            `json:"a_prime"`
		E                 *big.Int            `json:"e"`
		V                 *big.Int            `json:"v"`
		M                 map[string]*big.Int `json:"m"`  // responses for the hidden attributes
		M1                *big.Int            `json:"m1"` // master secret response
		M2                *big.Int            `json:"m2"` // context response
	}

	// PrimaryPredicateGEProof proves that a hidden attribute is at least Predicate.Value.
	PrimaryPredicateGEProof struct {
		U         Digits      `json:"u"`
		R         DeltaDigits `json:"r"`
		MJ        *big.Int    `json:"mj"`
		Alpha     *big.Int    `json:"alpha"`
		T         DeltaDigits `json:"t"`
		Predicate Predicate   `json:"predicate"`
	}

	// PrimaryProof combines the equality proof of one credential with its predicate proofs.
	PrimaryProof struct {
		EqProof  *PrimaryEqualProof        `json:"eq_proof"`
		GEProofs []*PrimaryPredicateGEProof `json:"ge_proofs"`
	}

	// Proof is the sub-proof for a single credential.
	Proof struct {
		PrimaryProof  *PrimaryProof   `json:"primary_proof,omitempty"`
		NonRevocProof json.RawMessage `json:"non_revoc_proof,omitempty"`
	}

	// FullProof is a presentation: one sub-proof per schema key, and the challenge
	// the prover computed over all commitments.
	FullProof struct {
		CHash      *big.Int           `json:"c_hash"`
		SchemaKeys []clkeys.SchemaKey `json:"schema_keys"`
		Proofs     []*Proof           `json:"proofs"`
		CList      []*big.Int         `json:"c_list"`
	}
)

// Delta returns the remainder entry.
func (d *DeltaDigits) Delta() *big.Int {
	return d[DeltaSlot]
}

// HasNonRevocationProof reports whether the sub-proof carries a non-revocation component.
func (p *Proof) HasNonRevocationProof() bool {
	return len(p.NonRevocProof) > 0 && string(p.NonRevocProof) != "null"
}

func slotsToMap(values []*big.Int) map[string]*big.Int {
	m := make(map[string]*big.Int, len(values))
	for i, v := range values {
		if v != nil {
			m[slotNames[i]] = v
		}
	}
	return m
}

// slotsFromMap fills values from m. Absent slots are left nil so that verification
// can report them; keys that are not slot names are an error.
func slotsFromMap(m map[string]*big.Int, values []*big.Int) error {
	for i := range values {
		values[i] = nil
	}
	for key, v := range m {
		found := false
		for i := range values {
			if slotNames[i] == key {
				values[i] = v
				found = true
				break
			}
		}
		if !found {
			return errors.Errorf("unexpected slot %q", key)
		}
	}
	return nil
}

func (d Digits) MarshalJSON() ([]byte, error) {
	return json.Marshal(slotsToMap(d[:]))
}

func (d *Digits) UnmarshalJSON(b []byte) error {
	var m map[string]*big.Int
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	return slotsFromMap(m, d[:])
}

func (d Digits) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(slotsToMap(d[:]))
}

func (d *Digits) UnmarshalCBOR(b []byte) error {
	var m map[string]*big.Int
	if err := cbor.Unmarshal(b, &m); err != nil {
		return err
	}
	return slotsFromMap(m, d[:])
}

func (d DeltaDigits) MarshalJSON() ([]byte, error) {
	return json.Marshal(slotsToMap(d[:]))
}

func (d *DeltaDigits) UnmarshalJSON(b []byte) error {
	var m map[string]*big.Int
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	return slotsFromMap(m, d[:])
}

func (d DeltaDigits) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(slotsToMap(d[:]))
}

func (d *DeltaDigits) UnmarshalCBOR(b []byte) error {
	var m map[string]*big.Int
	if err := cbor.Unmarshal(b, &m); err != nil {
		return err
	}
	return slotsFromMap(m, d[:])
}

// EncodeCBOR encodes the proof in deterministic CBOR.
func (p *FullProof) EncodeCBOR() ([]byte, error) {
	return cbor.Marshal(p)
}

// DecodeFullProofCBOR decodes a proof encoded by EncodeCBOR. Unknown fields are rejected.
func DecodeFullProofCBOR(data []byte) (*FullProof, error) {
	p := &FullProof{}
	if err := cbor.UnmarshalStrict(data, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DecodeFullProofJSON decodes a proof from its JSON representation.
func DecodeFullProofJSON(data []byte) (*FullProof, error) {
	p := &FullProof{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, err
	}
	return p, nil
}
