// Copyright 2025 Certen Protocol
//
// Package verify implements the commit-verification algorithm: given a
// validator set and a signed header/commit pair at the same height, it
// checks every Ed25519 signature against its canonical sign-bytes and
// decides whether signed voting power clears the 2/3+ quorum threshold.
package verify

import "math/big"

// UnknownValidator records a commit signature slot whose validator
// address is not present in the validator set. This is reported evidence,
// not a fatal error: a commit can legitimately reference a validator set
// from a different height during a rotation window.
type UnknownValidator struct {
	Index            int
	ValidatorAddress string
}

// InvalidSignature records a commit signature slot, for a validator that
// IS known, whose signature is empty, has no verifier key in the
// CryptoIndex, or failed Ed25519 verification against its canonical
// sign-bytes.
type InvalidSignature struct {
	Index            int
	ValidatorAddress string
}

// Outcome is the full, reported result of verifying one signed header
// against one validator set. Every field here is evidence: none of it is
// ever raised as an error.
type Outcome struct {
	OK                bool
	Quorum            bool
	SignedPower       *big.Int
	TotalPower        *big.Int
	HeaderTime        string
	AppHash           string
	BlockIDHash       string
	UnknownValidators []UnknownValidator
	InvalidSignatures []InvalidSignature
	CountedSignatures int
}
