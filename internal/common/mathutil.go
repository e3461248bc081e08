// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package common

import (
	"crypto/rand"

	"github.com/go-errors/errors"
	"github.com/privacybydesign/clverify/big"
)

var bigONE = big.NewInt(1)

var ErrNoModInverse = errors.New("modular inverse does not exist")

// ModInverse returns the inverse of a modulo n. It fails with ErrNoModInverse when
// a and n share a nontrivial factor.
func ModInverse(a, n *big.Int) (*big.Int, error) {
	g := new(big.Int)
	x := new(big.Int)
	y := new(big.Int)
	g.GCD(x, y, new(big.Int).Mod(a, n), n)
	if g.Cmp(bigONE) != 0 {
		return nil, ErrNoModInverse
	}

	if x.Sign() < 0 {
		x.Add(x, n)
	}

	return x, nil
}

// ModDiv computes a * b^{-1} (mod n).
func ModDiv(a, b, n *big.Int) (*big.Int, error) {
	ib, err := ModInverse(b, n)
	if err != nil {
		return nil, err
	}
	r := new(big.Int).Mul(a, ib)
	return r.Mod(r, n), nil
}

// RandomBigInt returns a random big integer value in the range
// [0,(2^numBits)-1], inclusive.
func RandomBigInt(numBits uint) (*big.Int, error) {
	t := new(big.Int).Lsh(bigONE, numBits)
	return big.RandInt(rand.Reader, t)
}
