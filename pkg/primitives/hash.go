// Copyright 2025 Certen Protocol

package primitives

import (
	"encoding/hex"

	verifyerrors "github.com/certen/lightcommit/pkg/errors"
)

// Hash32 is a fixed-length 32-byte hash field (block hash, part-set-header
// hash, the header's family of hash fields; the variable-length app hash is
// not a Hash32).
type Hash32 [32]byte

// ParseHash32Hex decodes a 64-hex-character, exactly-32-byte hash field.
func ParseHash32Hex(field, s string) (Hash32, error) {
	var h Hash32
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, verifyerrors.Wrap(verifyerrors.CodeMalformedField, field, err)
	}
	if len(b) != 32 {
		return h, verifyerrors.Fieldf(verifyerrors.CodeMalformedField, field,
			"must decode to exactly 32 bytes, got %d", len(b))
	}
	copy(h[:], b)
	return h, nil
}

func (h Hash32) Hex() string { return hex.EncodeToString(h[:]) }

func (h Hash32) Bytes() []byte { return h[:] }

// PartSetHeader is the total part count and Merkle root hash over a
// block's parts.
type PartSetHeader struct {
	Total uint32
	Hash  Hash32
}

// BlockID is the canonical identity of a block: its hash and part-set header.
type BlockID struct {
	Hash          Hash32
	PartSetHeader PartSetHeader
}
