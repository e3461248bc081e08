package clverify

// PredicateType is the kind of a predicate over a hidden attribute.
type PredicateType string

// PredicateGE requires the attribute to be greater than or equal to the predicate value.
const PredicateGE PredicateType = "ge"

// Predicate is a claim about an attribute that is proven without revealing it.
type Predicate struct {
	AttrName string        `json:"attr_name"`
	Type     PredicateType `json:"p_type"`
	Value    int64         `json:"value"`
}

// ProofInput is the part of a proof request the presentation must satisfy.
// Timestamp and PubSeqNo are only meaningful to non-revocation proofs.
type ProofInput struct {
	RevealedAttrs []string    `json:"revealed_attrs"`
	Predicates    []Predicate `json:"predicates"`
	Timestamp     string      `json:"ts,omitempty"`
	PubSeqNo      string      `json:"pubseq_no,omitempty"`
}

// check validates the predicate kind and value.
func (p Predicate) check() error {
	if p.Type != PredicateGE {
		return prefix(ErrUnsupportedPredicate, "predicate %q on %s", p.Type, p.AttrName)
	}
	if p.Value < 0 {
		return invalid("negative threshold for %s", p.AttrName)
	}
	return nil
}

// satisfies reports whether the sub-proofs reveal every requested attribute and prove
// every requested predicate. The reason for a mismatch is returned for logging.
// Missing values of revealed attributes are reported later, by verifyEquality.
func (input *ProofInput) satisfies(proof *FullProof) (bool, string) {
	disclosed := map[string]bool{}
	proven := map[Predicate]bool{}
	for _, p := range proof.Proofs {
		if p == nil || p.PrimaryProof == nil {
			continue
		}
		if eq := p.PrimaryProof.EqProof; eq != nil {
			for _, name := range eq.RevealedAttrNames {
				disclosed[name] = true
			}
		}
		for _, ge := range p.PrimaryProof.GEProofs {
			if ge != nil {
				proven[ge.Predicate] = true
			}
		}
	}

	for _, name := range input.RevealedAttrs {
		if !disclosed[name] {
			return false, "requested attribute " + name + " is not revealed"
		}
	}
	for _, pred := range input.Predicates {
		if !proven[pred] {
			return false, "requested predicate on " + pred.AttrName + " is not proven"
		}
	}
	return true, ""
}
