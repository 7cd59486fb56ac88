// Copyright 2025 Certen Protocol
//
// Package valset imports and holds a CometBFT validator set: the
// /validators RPC response normalized into an ordered, address-indexed,
// immutable in-memory model.
package valset

import (
	"math/big"

	cmted25519 "github.com/cometbft/cometbft/crypto/ed25519"

	"github.com/certen/lightcommit/pkg/primitives"
)

// Validator is one entry of a validator set.
type Validator struct {
	Address      primitives.Address
	PubKeyRaw    [32]byte
	VotingPower  *big.Int
	hasPubKey    bool
	pubKeyHandle cmted25519.PubKey
}

// PubKeyHandle returns the Ed25519 verifier handle for this validator and
// whether one was successfully constructed at import time. A validator
// can be present in the set with no handle — see CryptoIndex.
func (v Validator) PubKeyHandle() (cmted25519.PubKey, bool) {
	return v.pubKeyHandle, v.hasPubKey
}

// NewValidator builds a Validator programmatically (a set advanced between
// heights, or a test fixture), bypassing the /validators JSON shape. handle
// may be nil, matching "known validator, unverifiable signature".
func NewValidator(address primitives.Address, pubKeyRaw [32]byte, votingPower *big.Int, handle cmted25519.PubKey) Validator {
	v := Validator{Address: address, PubKeyRaw: pubKeyRaw, VotingPower: votingPower}
	if handle != nil {
		v.hasPubKey = true
		v.pubKeyHandle = handle
	}
	return v
}

// Set is a complete, immutable validator set at a given height.
type Set struct {
	Height           *big.Int
	TotalVotingPower *big.Int
	Validators       []Validator
	addressIndex     map[string]int // uppercase-hex address -> index into Validators
}

// ByAddress looks up a validator by uppercase-hex address.
func (s *Set) ByAddress(hexAddr string) (Validator, bool) {
	i, ok := s.addressIndex[hexAddr]
	if !ok {
		return Validator{}, false
	}
	return s.Validators[i], true
}

// Len returns the number of validators in the set.
func (s *Set) Len() int { return len(s.Validators) }

// NewSet builds a Set from already-validated validators, computing total
// voting power and the address index. Import is the entry point for
// untrusted JSON; NewSet is for programmatic construction (advancing a set
// between heights, test fixtures).
func NewSet(height *big.Int, validators []Validator) *Set {
	total := new(big.Int)
	idx := make(map[string]int, len(validators))
	for i, v := range validators {
		idx[v.Address.Hex()] = i
		total.Add(total, v.VotingPower)
	}
	return &Set{Height: height, TotalVotingPower: total, Validators: validators, addressIndex: idx}
}

// CryptoIndex maps an uppercase-hex validator address to its Ed25519
// verifier handle. An address absent from the index means "the validator
// exists in the set but its key could not be materialized at import
// time" — distinct from "no such validator".
type CryptoIndex map[string]cmted25519.PubKey

// Lookup returns the verifier handle for an address, if any.
func (c CryptoIndex) Lookup(hexAddr string) (cmted25519.PubKey, bool) {
	h, ok := c[hexAddr]
	return h, ok
}
