// Copyright 2025 Certen Protocol

package primitives

import (
	"encoding/json"
	"math/big"
)

// FlexInt decodes a JSON integer that CometBFT RPC may render either as a
// quoted decimal string (its convention for int64/uint64 proto fields) or
// as a bare JSON number (its convention for int32/uint32 fields, e.g.
// commit.round and a part-set header's total). Either way it normalizes
// to a *big.Int so downstream arithmetic is uniform.
type FlexInt struct {
	set bool
	val *big.Int
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		n, ok := new(big.Int).SetString(asString, 10)
		if !ok {
			return &json.UnmarshalTypeError{Value: asString, Type: nil}
		}
		f.val = n
		f.set = true
		return nil
	}

	var asNumber json.Number
	if err := json.Unmarshal(data, &asNumber); err != nil {
		return err
	}
	n, ok := new(big.Int).SetString(asNumber.String(), 10)
	if !ok {
		return &json.UnmarshalTypeError{Value: asNumber.String(), Type: nil}
	}
	f.val = n
	f.set = true
	return nil
}

// Present reports whether the field was set in the source JSON.
func (f FlexInt) Present() bool { return f.set }

// Int returns the parsed value, or nil if absent.
func (f FlexInt) Int() *big.Int { return f.val }

// IntOr returns the parsed value, or def if absent.
func (f FlexInt) IntOr(def int64) *big.Int {
	if f.val == nil {
		return big.NewInt(def)
	}
	return f.val
}
