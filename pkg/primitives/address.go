// Copyright 2025 Certen Protocol
//
// Package primitives holds the small wire-adjacent value types shared by
// pkg/valset and pkg/signedheader: addresses, hashes, block IDs, and time.
package primitives

import (
	"encoding/hex"
	"strings"

	verifyerrors "github.com/certen/lightcommit/pkg/errors"
)

// Address is a 20-byte validator identifier, the first 20 bytes of
// SHA-256(raw_public_key_bytes).
type Address [20]byte

// ParseAddressHex decodes a 40-hex-character address, case-insensitively.
func ParseAddressHex(field, s string) (Address, error) {
	var a Address
	if len(s) != 40 {
		return a, verifyerrors.Fieldf(verifyerrors.CodeMalformedField, field,
			"address must be exactly 40 hex characters, got %d", len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return a, verifyerrors.Wrap(verifyerrors.CodeMalformedField, field, err)
	}
	copy(a[:], b)
	return a, nil
}

// Hex returns the canonical uppercase-hex form of the address.
func (a Address) Hex() string {
	return strings.ToUpper(hex.EncodeToString(a[:]))
}

func (a Address) String() string { return a.Hex() }
