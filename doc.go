// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package clverify verifies non-interactive zero-knowledge presentation proofs of
// CL-signature based anonymous credentials. A presentation discloses some
// attributes, hides others, and may prove that hidden numeric attributes are at
// least a public threshold ("ge" predicates).
//
// The Verifier recomputes every commitment of the primary proofs (equality and
// GE predicate sub-proofs) from the response values, hashes them together with
// the verifier's nonce and the proof's auxiliary commitments, and compares the
// result to the challenge claimed by the prover.
//
// Only the primary proof is verified. Non-revocation proofs are not supported:
// presentations carrying one are rejected with ErrNonRevocationUnsupported
// rather than being partially verified.
//
// Issuer public keys and the attribute names of each schema are obtained through a
// KeyProvider; see package keystore for implementations.
package clverify
