package verify

import (
	"crypto/ed25519"
	"crypto/sha256"
	"math/big"

	cmted25519 "github.com/cometbft/cometbft/crypto/ed25519"

	"github.com/certen/lightcommit/pkg/canonical"
	"github.com/certen/lightcommit/pkg/config"
	"github.com/certen/lightcommit/pkg/primitives"
	"github.com/certen/lightcommit/pkg/signedheader"
	"github.com/certen/lightcommit/pkg/valset"
)

// fixtureKey is one deterministically-generated validator's key material.
type fixtureKey struct {
	priv    ed25519.PrivateKey
	pub     ed25519.PublicKey
	address primitives.Address
}

func deterministicKey(i byte) fixtureKey {
	seed := make([]byte, ed25519.SeedSize)
	for j := range seed {
		seed[j] = i + 1
	}
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)

	sum := sha256.Sum256(pub)
	var addr primitives.Address
	copy(addr[:], sum[:20])

	return fixtureKey{priv: priv, pub: pub, address: addr}
}

func hash32(fill byte) primitives.Hash32 {
	var h primitives.Hash32
	for i := range h {
		h[i] = fill
	}
	return h
}

// buildFixture constructs a SignedHeader, ValidatorSet, and CryptoIndex for
// n validators of equal power 1, each signing a Commit vote for a fixed
// block ID; mutate may change the header and commit before signing.
func buildFixture(n int, mode config.SignBytesMode, mutate func(keys []fixtureKey, header *signedheader.Header, commit *signedheader.Commit)) (*signedheader.SignedHeader, *valset.Set, valset.CryptoIndex) {
	keys := make([]fixtureKey, n)
	validators := make([]valset.Validator, n)
	crypto := make(valset.CryptoIndex, n)

	for i := 0; i < n; i++ {
		k := deterministicKey(byte(i))
		keys[i] = k

		var rawKey [32]byte
		copy(rawKey[:], k.pub)

		handle := make(cmted25519.PubKey, cmted25519.PubKeySize)
		copy(handle, k.pub)

		validators[i] = valset.NewValidator(k.address, rawKey, big.NewInt(1), handle)
		crypto[k.address.Hex()] = handle
	}

	set := valset.NewSet(big.NewInt(100), validators)

	ts, err := primitives.ParseRFC3339("time", "2023-01-15T12:30:46Z")
	if err != nil {
		panic(err)
	}

	header := signedheader.Header{
		ChainID:         "test-chain",
		Height:          big.NewInt(100),
		Time:            ts,
		LastCommitHash:  hash32(0x01),
		DataHash:        hash32(0x02),
		ValidatorsHash:  hash32(0x03),
		NextValidatorsHash: hash32(0x04),
		ConsensusHash:   hash32(0x05),
		AppHash:         []byte{0xde, 0xad, 0xbe, 0xef},
		LastResultsHash: hash32(0x06),
		EvidenceHash:    hash32(0x07),
		ProposerAddress: keys[0].address,
	}

	blockID := primitives.BlockID{
		Hash: hash32(0xAA),
		PartSetHeader: primitives.PartSetHeader{
			Total: 1,
			Hash:  hash32(0xBB),
		},
	}

	commit := signedheader.Commit{
		Height:  big.NewInt(100),
		Round:   big.NewInt(0),
		BlockID: blockID,
	}

	if mutate != nil {
		mutate(keys, &header, &commit)
	}

	sigs := make([]signedheader.CommitSig, n)
	for i := 0; i < n; i++ {
		sig := signedheader.CommitSig{
			BlockIDFlag:      signedheader.BlockIDFlagCommit,
			ValidatorAddress: keys[i].address,
			Timestamp:        &ts,
		}
		signBytes, err := canonical.SignBytes(mode, header, commit, sig)
		if err != nil {
			panic(err)
		}
		sig.Signature = ed25519.Sign(keys[i].priv, signBytes)
		sigs[i] = sig
	}
	commit.Signatures = sigs

	sh := &signedheader.SignedHeader{Header: header, Commit: commit}
	return sh, set, crypto
}
