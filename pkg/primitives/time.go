// Copyright 2025 Certen Protocol

package primitives

import (
	"math/big"
	"regexp"
	"time"

	verifyerrors "github.com/certen/lightcommit/pkg/errors"
)

// Time is a consensus timestamp: a signed, unbounded-integer second count
// plus a nanosecond remainder in [0, 1_000_000_000).
type Time struct {
	Seconds *big.Int
	Nanos   int32
}

var rfc3339Pattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2})(\.(\d+))?Z$`)

// ParseRFC3339 parses an RFC 3339 timestamp in UTC ("Z"), with an optional
// fractional-seconds component of up to 9 digits. The whole-second epoch
// comes from the date/time portion; nanoseconds come from the fractional
// digits, zero-right-padded to 9 digits and then truncated to 9. Absent a
// fractional component, nanos is 0.
func ParseRFC3339(field, s string) (Time, error) {
	m := rfc3339Pattern.FindStringSubmatch(s)
	if m == nil {
		return Time{}, verifyerrors.Fieldf(verifyerrors.CodeMalformedField, field,
			"not a valid RFC3339 UTC timestamp: %q", s)
	}

	whole, err := time.Parse("2006-01-02T15:04:05Z", m[1]+"Z")
	if err != nil {
		return Time{}, verifyerrors.Wrap(verifyerrors.CodeMalformedField, field, err)
	}

	nanos := int32(0)
	if frac := m[3]; frac != "" {
		padded := frac
		for len(padded) < 9 {
			padded += "0"
		}
		padded = padded[:9]
		n := new(big.Int)
		if _, ok := n.SetString(padded, 10); !ok {
			return Time{}, verifyerrors.Fieldf(verifyerrors.CodeMalformedField, field,
				"invalid fractional seconds: %q", frac)
		}
		nanos = int32(n.Int64())
	}

	return Time{Seconds: big.NewInt(whole.Unix()), Nanos: nanos}, nil
}

// ToStd converts to time.Time (UTC), reporting an error if Seconds exceeds
// what an int64 Unix timestamp can represent.
func (t Time) ToStd() (time.Time, error) {
	if !t.Seconds.IsInt64() {
		return time.Time{}, verifyerrors.New(verifyerrors.CodeMalformedField,
			"timestamp seconds exceed representable range")
	}
	return time.Unix(t.Seconds.Int64(), int64(t.Nanos)).UTC(), nil
}
