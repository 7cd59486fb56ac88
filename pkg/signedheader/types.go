// Copyright 2025 Certen Protocol
//
// Package signedheader imports and holds a CometBFT signed header: the
// /commit RPC response normalized into a header + commit pair, with all
// binary fields decoded and all lengths validated up front so later
// verification can trust every shape it touches.
package signedheader

import (
	"math/big"

	"github.com/certen/lightcommit/pkg/primitives"
)

// BlockIDFlag classifies how a validator voted on the block in a commit.
type BlockIDFlag int32

const (
	BlockIDFlagAbsent BlockIDFlag = 1
	BlockIDFlagCommit BlockIDFlag = 2
	BlockIDFlagNil    BlockIDFlag = 3
)

// Version is the block/app protocol version pair.
type Version struct {
	Block *big.Int
	App   *big.Int
}

// Header is a block header's chain identity, height, time, hash family,
// app hash, proposer, and optional last-block reference.
type Header struct {
	ChainID         string
	Height          *big.Int
	Time            primitives.Time
	LastBlockID     *primitives.BlockID // nil if absent
	LastCommitHash  primitives.Hash32
	DataHash        primitives.Hash32
	ValidatorsHash  primitives.Hash32
	NextValidatorsHash primitives.Hash32
	ConsensusHash   primitives.Hash32
	AppHash         []byte
	LastResultsHash primitives.Hash32
	EvidenceHash    primitives.Hash32
	ProposerAddress primitives.Address
	Version         Version
}

// CommitSig is one signature slot in a commit, preserving its position.
type CommitSig struct {
	BlockIDFlag      BlockIDFlag
	ValidatorAddress primitives.Address
	Timestamp        *primitives.Time // nil if absent
	Signature        []byte           // 0 or 64 bytes
}

// Commit is the set of votes collected at a height certifying a block.
type Commit struct {
	Height     *big.Int
	Round      *big.Int
	BlockID    primitives.BlockID
	Signatures []CommitSig
}

// SignedHeader pairs a header with the commit that certifies it.
type SignedHeader struct {
	Header Header
	Commit Commit
}
