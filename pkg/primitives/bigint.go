// Copyright 2025 Certen Protocol

package primitives

import (
	"math/big"

	verifyerrors "github.com/certen/lightcommit/pkg/errors"
)

// ParseBigInt parses a base-10 integer string (as CometBFT RPC emits for
// heights, voting power, counts, and totals).
func ParseBigInt(field, s string) (*big.Int, error) {
	if s == "" {
		return nil, verifyerrors.Field(verifyerrors.CodeMalformedField, field, "missing required field")
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, verifyerrors.Fieldf(verifyerrors.CodeMalformedField, field, "not a base-10 integer: %q", s)
	}
	return n, nil
}

// ParseNonNegativeInt parses a base-10 integer string and requires it be >= 0.
func ParseNonNegativeInt(field, s string) (*big.Int, error) {
	n, err := ParseBigInt(field, s)
	if err != nil {
		return nil, err
	}
	if n.Sign() < 0 {
		return nil, verifyerrors.Fieldf(verifyerrors.CodeMalformedField, field, "must be non-negative, got %s", n.String())
	}
	return n, nil
}

// ParseMinInt parses a base-10 integer string and requires it be >= min.
func ParseMinInt(field, s string, min int64) (*big.Int, error) {
	n, err := ParseBigInt(field, s)
	if err != nil {
		return nil, err
	}
	if n.Cmp(big.NewInt(min)) < 0 {
		return nil, verifyerrors.Fieldf(verifyerrors.CodeMalformedField, field, "must be >= %d, got %s", min, n.String())
	}
	return n, nil
}
