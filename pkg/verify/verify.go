// Copyright 2025 Certen Protocol

package verify

import (
	"math/big"
	"sort"
	"sync"

	cmted25519 "github.com/cometbft/cometbft/crypto/ed25519"

	"github.com/certen/lightcommit/pkg/canonical"
	"github.com/certen/lightcommit/pkg/config"
	verifyerrors "github.com/certen/lightcommit/pkg/errors"
	"github.com/certen/lightcommit/pkg/signedheader"
	"github.com/certen/lightcommit/pkg/valset"
)

// Verifier checks a SignedHeader against a ValidatorSet and CryptoIndex.
// It holds no mutable state and is safe for concurrent use.
type Verifier struct {
	cfg     *config.Config
	metrics *Metrics
}

// New constructs a Verifier. cfg may be nil, in which case config.Default()
// applies. metrics may be nil to disable Prometheus instrumentation.
func New(cfg *config.Config, metrics *Metrics) *Verifier {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Verifier{cfg: cfg, metrics: metrics}
}

// Verify checks sh against set/crypto and returns the reported outcome.
// Every error returned here is a precondition violation — malformed
// input, not evidence about the commit — per the fatal/reported split.
func (v *Verifier) Verify(sh *signedheader.SignedHeader, set *valset.Set, crypto valset.CryptoIndex) (*Outcome, error) {
	if err := checkPreconditions(sh, set); err != nil {
		return nil, err
	}

	var results []sigResult
	var err error
	if v.cfg.Parallel {
		results, err = v.verifyParallel(sh, set, crypto)
	} else {
		results, err = v.verifySequential(sh, set, crypto)
	}
	if err != nil {
		return nil, err
	}

	outcome := aggregate(results, set.TotalVotingPower)
	outcome.HeaderTime = sh.Header.Time.Seconds.String()
	outcome.AppHash = hexOf(sh.Header.AppHash)
	outcome.BlockIDHash = sh.Commit.BlockID.Hash.Hex()

	if v.metrics != nil {
		v.metrics.Observe(outcome)
	}

	return outcome, nil
}

func checkPreconditions(sh *signedheader.SignedHeader, set *valset.Set) error {
	if sh == nil {
		return verifyerrors.New(verifyerrors.CodePrecondition, "signed header must not be nil")
	}
	if sh.Header.Height.Cmp(sh.Commit.Height) != 0 {
		return verifyerrors.Newf(verifyerrors.CodePrecondition, "header.height (%s) != commit.height (%s)",
			sh.Header.Height.String(), sh.Commit.Height.String())
	}
	if set == nil || set.Len() < 1 {
		return verifyerrors.New(verifyerrors.CodePrecondition, "validator set must have at least one validator")
	}
	if set.TotalVotingPower == nil || set.TotalVotingPower.Sign() <= 0 {
		return verifyerrors.New(verifyerrors.CodePrecondition, "total voting power must be positive")
	}
	seen := make(map[string]struct{}, set.Len())
	for _, val := range set.Validators {
		hexAddr := val.Address.Hex()
		if _, dup := seen[hexAddr]; dup {
			return verifyerrors.Fieldf(verifyerrors.CodePrecondition, "validators", "duplicate address %s in validator set", hexAddr)
		}
		seen[hexAddr] = struct{}{}
	}
	bid := sh.Commit.BlockID
	if len(bid.Hash.Bytes()) == 0 {
		return verifyerrors.Field(verifyerrors.CodePrecondition, "commit.block_id.hash", "must be non-empty")
	}
	if len(bid.PartSetHeader.Hash.Bytes()) == 0 {
		return verifyerrors.Field(verifyerrors.CodePrecondition, "commit.block_id.part_set_header.hash", "must be non-empty")
	}
	return nil
}

// sigResult is the classification of one commit signature slot, keyed by
// its original index so concurrent verification can merge deterministically.
type sigResult struct {
	index   int
	class   sigClass
	addrHex string
	power   *big.Int
}

type sigClass int

const (
	classSkipped sigClass = iota
	classUnknown
	classInvalid
	classVerified
)

func (v *Verifier) verifySequential(sh *signedheader.SignedHeader, set *valset.Set, crypto valset.CryptoIndex) ([]sigResult, error) {
	results := make([]sigResult, len(sh.Commit.Signatures))
	for i, sig := range sh.Commit.Signatures {
		r, err := v.classify(i, sig, sh, set, crypto)
		if err != nil {
			return nil, err
		}
		results[i] = r
	}
	return results, nil
}

func (v *Verifier) verifyParallel(sh *signedheader.SignedHeader, set *valset.Set, crypto valset.CryptoIndex) ([]sigResult, error) {
	n := len(sh.Commit.Signatures)
	results := make([]sigResult, n)
	errs := make([]error, n)

	workers := v.cfg.MaxWorkers
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				r, err := v.classify(i, sh.Commit.Signatures[i], sh, set, crypto)
				results[i] = r
				errs[i] = err
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (v *Verifier) classify(index int, sig signedheader.CommitSig, sh *signedheader.SignedHeader, set *valset.Set, crypto valset.CryptoIndex) (sigResult, error) {
	if sig.BlockIDFlag != signedheader.BlockIDFlagCommit {
		return sigResult{index: index, class: classSkipped}, nil
	}

	addrHex := sig.ValidatorAddress.Hex()
	if _, ok := set.ByAddress(addrHex); !ok {
		return sigResult{index: index, class: classUnknown, addrHex: addrHex}, nil
	}

	if len(sig.Signature) == 0 {
		return sigResult{index: index, class: classInvalid, addrHex: addrHex}, nil
	}

	handle, ok := crypto.Lookup(addrHex)
	if !ok {
		return sigResult{index: index, class: classInvalid, addrHex: addrHex}, nil
	}

	signBytes, err := canonical.SignBytes(v.cfg.SignBytesMode, sh.Header, sh.Commit, sig)
	if err != nil {
		return sigResult{}, err
	}

	if !safeVerify(handle, signBytes, sig.Signature) {
		return sigResult{index: index, class: classInvalid, addrHex: addrHex}, nil
	}

	val, _ := set.ByAddress(addrHex)
	return sigResult{index: index, class: classVerified, addrHex: addrHex, power: val.VotingPower}, nil
}

// safeVerify isolates a single signature's verification from a panicking
// crypto implementation: one bad key or signature must never abort the
// classification of the others.
func safeVerify(handle cmted25519.PubKey, msg, sig []byte) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return handle.VerifySignature(msg, sig)
}

func aggregate(results []sigResult, totalPower *big.Int) *Outcome {
	sort.Slice(results, func(i, j int) bool { return results[i].index < results[j].index })

	signedPower := new(big.Int)
	counted := 0
	var unknown []UnknownValidator
	var invalid []InvalidSignature

	for _, r := range results {
		switch r.class {
		case classSkipped:
			continue
		case classUnknown:
			unknown = append(unknown, UnknownValidator{Index: r.index, ValidatorAddress: r.addrHex})
		case classInvalid:
			counted++
			invalid = append(invalid, InvalidSignature{Index: r.index, ValidatorAddress: r.addrHex})
		case classVerified:
			counted++
			signedPower.Add(signedPower, r.power)
		}
	}

	quorum := new(big.Int).Mul(signedPower, big.NewInt(3)).Cmp(new(big.Int).Mul(totalPower, big.NewInt(2))) > 0

	return &Outcome{
		OK:                quorum,
		Quorum:            quorum,
		SignedPower:       signedPower,
		TotalPower:        totalPower,
		UnknownValidators: unknown,
		InvalidSignatures: invalid,
		CountedSignatures: counted,
	}
}

func hexOf(b []byte) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexDigits[c>>4]
		out[i*2+1] = hexDigits[c&0x0f]
	}
	return string(out)
}
