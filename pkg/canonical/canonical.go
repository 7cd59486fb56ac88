// Copyright 2025 Certen Protocol
//
// Package canonical builds the canonical sign-bytes for one commit
// signature, the exact byte string that a validator's Ed25519 key must
// have signed. This is the hard, narrow piece of engineering the rest of
// the module depends on: get these bytes wrong in any field, ordering, or
// omission rule and every signature looks forged even though the chain
// itself is healthy.
package canonical

import (
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"

	"github.com/certen/lightcommit/pkg/config"
	verifyerrors "github.com/certen/lightcommit/pkg/errors"
	"github.com/certen/lightcommit/pkg/primitives"
	"github.com/certen/lightcommit/pkg/signedheader"
)

// Vote field numbers, per cometbft/proto/tendermint/types/canonical.proto.
const (
	fieldVoteType      = 1
	fieldVoteHeight    = 2
	fieldVoteRound     = 3
	fieldVoteBlockID   = 4
	fieldVoteTimestamp = 5
	fieldVoteChainID   = 6

	fieldBlockIDHash    = 1
	fieldBlockIDParts   = 2
	fieldPartsTotal     = 1
	fieldPartsHash      = 2

	fieldTimestampSeconds = 1
	fieldTimestampNanos   = 2
)

// SignBytes returns the canonical sign-bytes for one signature slot of a
// commit, in the mode selected by cfg. Errors are not wire-level (see
// pkg/signedheader for that): a height or round too large to fit the
// fixed-width wire encoding, or an unknown mode, is a precondition
// violation; a timestamp whose seconds do not fit an int64 is reported as
// a malformed field.
func SignBytes(cfg config.SignBytesMode, header signedheader.Header, commit signedheader.Commit, sig signedheader.CommitSig) ([]byte, error) {
	if !commit.Height.IsInt64() {
		return nil, verifyerrors.Newf(verifyerrors.CodePrecondition, "commit height %s does not fit a 64-bit signed integer", commit.Height.String())
	}
	if !commit.Round.IsInt64() {
		return nil, verifyerrors.Newf(verifyerrors.CodePrecondition, "commit round %s does not fit a 64-bit signed integer", commit.Round.String())
	}

	cv := canonicalVote{
		voteType: cmtproto.PrecommitType,
		height:   commit.Height.Int64(),
		round:    commit.Round.Int64(),
		blockID:  commit.BlockID,
		chainID:  header.ChainID,
	}
	if sig.Timestamp != nil {
		seconds, nanos, err := toUnixParts(*sig.Timestamp)
		if err != nil {
			return nil, err
		}
		cv.hasTimestamp = true
		cv.timestampSeconds = seconds
		cv.timestampNanos = nanos
	}

	body := marshalCanonicalVote(cv)

	switch cfg {
	case config.ModeFixedPrefix0x71:
		out := make([]byte, 0, len(body)+1)
		out = append(out, 0x71)
		out = append(out, body...)
		return out, nil
	case config.ModeCometLengthPrefix, "":
		return prependUvarintLength(body), nil
	default:
		return nil, verifyerrors.Newf(verifyerrors.CodePrecondition, "unknown sign-bytes mode %q", cfg)
	}
}

type canonicalVote struct {
	voteType         cmtproto.SignedMsgType
	height           int64
	round            int64
	blockID          primitives.BlockID
	chainID          string
	hasTimestamp     bool
	timestampSeconds int64
	timestampNanos   int32
}

func marshalCanonicalVote(cv canonicalVote) []byte {
	w := &protoWriter{}
	w.VarintField(fieldVoteType, uint64(cv.voteType))
	w.SFixed64Field(fieldVoteHeight, cv.height)
	w.SFixed64FieldOmitZero(fieldVoteRound, cv.round)
	w.EmbeddedField(fieldVoteBlockID, marshalBlockID(cv.blockID), true)
	if cv.hasTimestamp {
		w.EmbeddedField(fieldVoteTimestamp, marshalTimestamp(cv.timestampSeconds, cv.timestampNanos), true)
	}
	w.StringField(fieldVoteChainID, cv.chainID)
	return w.Bytes()
}

func marshalBlockID(id primitives.BlockID) []byte {
	w := &protoWriter{}
	w.BytesField(fieldBlockIDHash, id.Hash.Bytes())
	w.EmbeddedField(fieldBlockIDParts, marshalPartSetHeader(id.PartSetHeader), true)
	return w.Bytes()
}

func marshalPartSetHeader(h primitives.PartSetHeader) []byte {
	w := &protoWriter{}
	w.VarintField(fieldPartsTotal, uint64(h.Total))
	w.BytesField(fieldPartsHash, h.Hash.Bytes())
	return w.Bytes()
}

func marshalTimestamp(seconds int64, nanos int32) []byte {
	w := &protoWriter{}
	w.VarintField(fieldTimestampSeconds, uint64(seconds))
	w.VarintField(fieldTimestampNanos, uint64(nanos))
	return w.Bytes()
}

func toUnixParts(t primitives.Time) (int64, int32, error) {
	std, err := t.ToStd()
	if err != nil {
		return 0, 0, err
	}
	return std.Unix(), int32(std.Nanosecond()), nil
}

func prependUvarintLength(body []byte) []byte {
	w := &protoWriter{}
	w.varint(uint64(len(body)))
	return append(w.Bytes(), body...)
}
