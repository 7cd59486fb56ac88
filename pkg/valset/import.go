// Copyright 2025 Certen Protocol

package valset

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"math/big"

	cmted25519 "github.com/cometbft/cometbft/crypto/ed25519"

	verifyerrors "github.com/certen/lightcommit/pkg/errors"
	"github.com/certen/lightcommit/pkg/primitives"
)

const pubKeyTypeEd25519 = "tendermint/PubKeyEd25519"

// wire shapes for the /validators RPC response body.
type wireValidatorsResponse struct {
	BlockHeight string          `json:"block_height"`
	Validators  []wireValidator `json:"validators"`
	Count       string          `json:"count"`
	Total       string          `json:"total"`
}

type wireValidator struct {
	Address          string      `json:"address"`
	PubKey           wirePubKey  `json:"pub_key"`
	VotingPower      string      `json:"voting_power"`
	ProposerPriority string      `json:"proposer_priority"`
}

type wirePubKey struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Result is the output of Import: the normalized set plus its crypto index.
type Result struct {
	Height    *big.Int
	Set       *Set
	CryptoIdx CryptoIndex
}

// Import parses and validates a /validators JSON response body into a
// normalized, address-indexed Set and its accompanying CryptoIndex. Every
// error returned is fatal malformed-input — see pkg/errors.
func Import(data []byte) (*Result, error) {
	var doc wireValidatorsResponse
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, verifyerrors.Wrap(verifyerrors.CodeMalformedField, "", err)
	}

	height, err := primitives.ParseBigInt("block_height", doc.BlockHeight)
	if err != nil {
		return nil, err
	}

	count, err := primitives.ParseMinInt("count", doc.Count, 2)
	if err != nil {
		return nil, err
	}
	total, err := primitives.ParseMinInt("total", doc.Total, 2)
	if err != nil {
		return nil, err
	}
	if count.Cmp(total) != 0 {
		return nil, verifyerrors.Newf(verifyerrors.CodePagination,
			"validator set must not paginate: count=%s total=%s", count.String(), total.String())
	}

	if len(doc.Validators) == 0 {
		return nil, verifyerrors.Field(verifyerrors.CodeMalformedField, "validators", "validator set must not be empty")
	}

	validators := make([]Validator, 0, len(doc.Validators))
	index := make(map[string]int, len(doc.Validators))
	cryptoIdx := make(CryptoIndex, len(doc.Validators))
	totalPower := new(big.Int)

	for i, entry := range doc.Validators {
		v, err := importOne(entry)
		if err != nil {
			return nil, err
		}

		hexAddr := v.Address.Hex()
		if _, dup := index[hexAddr]; dup {
			return nil, verifyerrors.Fieldf(verifyerrors.CodeDuplicateAddress, "validators", "duplicate validator address %s", hexAddr)
		}

		index[hexAddr] = i
		validators = append(validators, v)
		totalPower.Add(totalPower, v.VotingPower)

		if handle, ok := v.PubKeyHandle(); ok {
			cryptoIdx[hexAddr] = handle
		}
	}

	if big.NewInt(int64(len(validators))).Cmp(total) != 0 {
		return nil, verifyerrors.Newf(verifyerrors.CodeCountMismatch,
			"parsed %d validators but total declared %s", len(validators), total.String())
	}

	set := &Set{
		Height:           height,
		TotalVotingPower: totalPower,
		Validators:       validators,
		addressIndex:     index,
	}

	return &Result{Height: height, Set: set, CryptoIdx: cryptoIdx}, nil
}

func importOne(entry wireValidator) (Validator, error) {
	addr, err := primitives.ParseAddressHex("address", entry.Address)
	if err != nil {
		return Validator{}, err
	}

	if entry.PubKey.Type != pubKeyTypeEd25519 {
		return Validator{}, verifyerrors.Fieldf(verifyerrors.CodeUnsupportedKeyType, "pub_key.type",
			"unsupported key type %q, only %s is accepted", entry.PubKey.Type, pubKeyTypeEd25519)
	}

	raw, err := base64.StdEncoding.DecodeString(entry.PubKey.Value)
	if err != nil {
		return Validator{}, verifyerrors.Wrap(verifyerrors.CodeMalformedField, "pub_key.value", err)
	}
	if len(raw) != 32 {
		return Validator{}, verifyerrors.Fieldf(verifyerrors.CodeMalformedField, "pub_key.value",
			"must decode to exactly 32 bytes, got %d", len(raw))
	}

	power, err := primitives.ParseMinInt("voting_power", entry.VotingPower, 1)
	if err != nil {
		return Validator{}, err
	}

	// The address binding is address == SHA-256(raw_key)[0..20]. CometBFT's
	// own PubKey.Address() already computes exactly that (via tmhash), so
	// the comparison is done against the library's own derivation rather
	// than a second, hand-rolled hash.
	handle, handleOK := newEd25519Handle(raw)
	var derivedHex string
	if handleOK {
		derivedHex = handle.Address().String()
	} else {
		sum := sha256.Sum256(raw)
		var derived primitives.Address
		copy(derived[:], sum[:20])
		derivedHex = derived.Hex()
	}
	if derivedHex != addr.Hex() {
		return Validator{}, verifyerrors.Fieldf(verifyerrors.CodeAddressMismatch, "address",
			"address %s does not match its public key (derived %s)", addr.Hex(), derivedHex)
	}

	v := Validator{
		Address:     addr,
		VotingPower: power,
	}
	copy(v.PubKeyRaw[:], raw)

	if handleOK {
		v.hasPubKey = true
		v.pubKeyHandle = handle
	}

	return v, nil
}

// newEd25519Handle constructs a CometBFT Ed25519 verifier handle from raw
// key bytes. Its only failure mode (wrong length) is already excluded by
// the base64-decode-length check above; the explicit check is kept so a
// key that the crypto library itself refuses to accept never corrupts the
// validator set, per the "known validator, unverifiable signature" design.
func newEd25519Handle(raw []byte) (cmted25519.PubKey, bool) {
	if len(raw) != cmted25519.PubKeySize {
		return nil, false
	}
	handle := make(cmted25519.PubKey, cmted25519.PubKeySize)
	copy(handle, raw)
	return handle, true
}
