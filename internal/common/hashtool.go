package common

import (
	"crypto/sha256"

	"github.com/privacybydesign/clverify/big"
)

// HashAsInt computes the Fiat-Shamir challenge over values: the sha256 hash of the
// concatenated big-endian encodings of the values, in the given order, read as a
// non-negative big-endian integer.
//
// The input is not sorted or otherwise normalized; prover and verifier must pass
// the values in the same order.
func HashAsInt(values []*big.Int) *big.Int {
	h := sha256.New()
	for _, v := range values {
		h.Write(v.Bytes())
	}
	return new(big.Int).SetBytes(h.Sum(nil))
}
