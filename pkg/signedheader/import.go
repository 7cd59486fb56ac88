// Copyright 2025 Certen Protocol

package signedheader

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"math/big"
	"strconv"

	verifyerrors "github.com/certen/lightcommit/pkg/errors"
	"github.com/certen/lightcommit/pkg/primitives"
)

type wireCommitResponse struct {
	SignedHeader wireSignedHeader `json:"signed_header"`
}

type wireSignedHeader struct {
	Header wireHeader `json:"header"`
	Commit wireCommit `json:"commit"`
}

type wireVersion struct {
	Block primitives.FlexInt `json:"block"`
	App   primitives.FlexInt `json:"app"`
}

type wirePartSetHeader struct {
	Total primitives.FlexInt `json:"total"`
	Hash  string             `json:"hash"`
}

type wireBlockID struct {
	Hash  string            `json:"hash"`
	Parts wirePartSetHeader `json:"parts"`
}

type wireHeader struct {
	Version            wireVersion  `json:"version"`
	ChainID             string       `json:"chain_id"`
	Height               string       `json:"height"`
	Time                 string       `json:"time"`
	LastBlockID          *wireBlockID `json:"last_block_id"`
	LastCommitHash       string       `json:"last_commit_hash"`
	DataHash             string       `json:"data_hash"`
	ValidatorsHash       string       `json:"validators_hash"`
	NextValidatorsHash   string       `json:"next_validators_hash"`
	ConsensusHash        string       `json:"consensus_hash"`
	AppHash              string       `json:"app_hash"`
	LastResultsHash      string       `json:"last_results_hash"`
	EvidenceHash         string       `json:"evidence_hash"`
	ProposerAddress      string       `json:"proposer_address"`
}

type wireCommit struct {
	Height     string          `json:"height"`
	Round      primitives.FlexInt `json:"round"`
	BlockID    wireBlockID     `json:"block_id"`
	Signatures []wireCommitSig `json:"signatures"`
}

type wireCommitSig struct {
	BlockIDFlag      int32  `json:"block_id_flag"`
	ValidatorAddress string `json:"validator_address"`
	Timestamp        string `json:"timestamp"`
	Signature        string `json:"signature"`
}

// Import parses and validates a /commit JSON response body into a
// normalized SignedHeader. Every error returned is fatal malformed-input.
func Import(data []byte) (*SignedHeader, error) {
	var doc wireCommitResponse
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, verifyerrors.Wrap(verifyerrors.CodeMalformedField, "", err)
	}

	header, height, err := importHeader(doc.SignedHeader.Header)
	if err != nil {
		return nil, err
	}

	commit, err := importCommit(doc.SignedHeader.Commit)
	if err != nil {
		return nil, err
	}

	if height.Cmp(commit.Height) != 0 {
		return nil, verifyerrors.Newf(verifyerrors.CodeHeightMismatch,
			"header.height (%s) != commit.height (%s)", height.String(), commit.Height.String())
	}

	return &SignedHeader{Header: header, Commit: *commit}, nil
}

func importHeader(w wireHeader) (Header, *big.Int, error) {
	height, err := primitives.ParseBigInt("header.height", w.Height)
	if err != nil {
		return Header{}, nil, err
	}

	ts, err := primitives.ParseRFC3339("header.time", w.Time)
	if err != nil {
		return Header{}, nil, err
	}

	var lastBlockID *primitives.BlockID
	if w.LastBlockID != nil {
		bid, err := importBlockID("header.last_block_id", *w.LastBlockID)
		if err != nil {
			return Header{}, nil, err
		}
		lastBlockID = &bid
	}

	hashFields := map[string]string{
		"header.last_commit_hash":     w.LastCommitHash,
		"header.data_hash":            w.DataHash,
		"header.validators_hash":      w.ValidatorsHash,
		"header.next_validators_hash": w.NextValidatorsHash,
		"header.consensus_hash":       w.ConsensusHash,
		"header.last_results_hash":    w.LastResultsHash,
		"header.evidence_hash":        w.EvidenceHash,
	}
	parsed := make(map[string]primitives.Hash32, len(hashFields))
	for field, value := range hashFields {
		h, err := primitives.ParseHash32Hex(field, value)
		if err != nil {
			return Header{}, nil, err
		}
		parsed[field] = h
	}

	appHash, err := hex.DecodeString(w.AppHash)
	if err != nil {
		return Header{}, nil, verifyerrors.Wrap(verifyerrors.CodeMalformedField, "header.app_hash", err)
	}

	proposer, err := primitives.ParseAddressHex("header.proposer_address", w.ProposerAddress)
	if err != nil {
		return Header{}, nil, err
	}

	header := Header{
		ChainID:            w.ChainID,
		Height:             height,
		Time:               ts,
		LastBlockID:        lastBlockID,
		LastCommitHash:     parsed["header.last_commit_hash"],
		DataHash:           parsed["header.data_hash"],
		ValidatorsHash:     parsed["header.validators_hash"],
		NextValidatorsHash: parsed["header.next_validators_hash"],
		ConsensusHash:      parsed["header.consensus_hash"],
		AppHash:            appHash,
		LastResultsHash:    parsed["header.last_results_hash"],
		EvidenceHash:       parsed["header.evidence_hash"],
		ProposerAddress:    proposer,
		Version: Version{
			Block: w.Version.Block.IntOr(0),
			App:   w.Version.App.IntOr(0),
		},
	}

	return header, height, nil
}

func importBlockID(field string, w wireBlockID) (primitives.BlockID, error) {
	hash, err := primitives.ParseHash32Hex(field+".hash", w.Hash)
	if err != nil {
		return primitives.BlockID{}, err
	}
	partsHash, err := primitives.ParseHash32Hex(field+".parts.hash", w.Parts.Hash)
	if err != nil {
		return primitives.BlockID{}, err
	}
	total := w.Parts.Total.IntOr(0)
	if total.Sign() < 0 {
		return primitives.BlockID{}, verifyerrors.Fieldf(verifyerrors.CodeMalformedField, field+".parts.total",
			"must be non-negative, got %s", total.String())
	}
	return primitives.BlockID{
		Hash: hash,
		PartSetHeader: primitives.PartSetHeader{
			Total: uint32(total.Uint64()),
			Hash:  partsHash,
		},
	}, nil
}

func importCommit(w wireCommit) (*Commit, error) {
	height, err := primitives.ParseBigInt("commit.height", w.Height)
	if err != nil {
		return nil, err
	}

	round := w.Round.IntOr(0)
	if round.Sign() < 0 {
		return nil, verifyerrors.Fieldf(verifyerrors.CodeMalformedField, "commit.round", "must be non-negative, got %s", round.String())
	}

	blockID, err := importBlockID("commit.block_id", w.BlockID)
	if err != nil {
		return nil, err
	}

	if len(w.Signatures) == 0 {
		return nil, verifyerrors.Field(verifyerrors.CodeMalformedField, "commit.signatures", "must not be empty")
	}

	sigs := make([]CommitSig, 0, len(w.Signatures))
	for i, ws := range w.Signatures {
		sig, err := importCommitSig(i, ws)
		if err != nil {
			return nil, err
		}
		sigs = append(sigs, sig)
	}

	return &Commit{
		Height:     height,
		Round:      round,
		BlockID:    blockID,
		Signatures: sigs,
	}, nil
}

func importCommitSig(index int, w wireCommitSig) (CommitSig, error) {
	addr, err := primitives.ParseAddressHex(fieldAt("signatures", index, "validator_address"), w.ValidatorAddress)
	if err != nil {
		return CommitSig{}, err
	}

	var ts *primitives.Time
	if w.Timestamp != "" {
		t, err := primitives.ParseRFC3339(fieldAt("signatures", index, "timestamp"), w.Timestamp)
		if err != nil {
			return CommitSig{}, err
		}
		ts = &t
	}

	var sig []byte
	if w.Signature != "" {
		sig, err = base64.StdEncoding.DecodeString(w.Signature)
		if err != nil {
			return CommitSig{}, verifyerrors.Wrap(verifyerrors.CodeMalformedField, fieldAt("signatures", index, "signature"), err)
		}
		if len(sig) != 0 && len(sig) != 64 {
			return CommitSig{}, verifyerrors.Fieldf(verifyerrors.CodeMalformedField, fieldAt("signatures", index, "signature"),
				"must be 0 or 64 bytes, got %d", len(sig))
		}
	}

	return CommitSig{
		BlockIDFlag:      BlockIDFlag(w.BlockIDFlag),
		ValidatorAddress: addr,
		Timestamp:        ts,
		Signature:        sig,
	}, nil
}

func fieldAt(list string, index int, field string) string {
	return list + "[" + strconv.Itoa(index) + "]." + field
}
