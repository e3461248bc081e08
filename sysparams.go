// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clverify

// SystemParameters holds the scheme constants the verifier depends on.
type SystemParameters struct {
	// LargeEStart is the bit length reserved below the signature exponent:
	// the prime e of a signature is 2^LargeEStart + e' and the equality proof
	// proves knowledge of e'.
	LargeEStart uint
	// NonceBits is the size of nonces produced by GenerateNonce.
	NonceBits uint
}

// DefaultSystemParameters holds the parameters currently in use by issuers.
var DefaultSystemParameters = &SystemParameters{
	LargeEStart: 596,
	NonceBits:   80,
}
