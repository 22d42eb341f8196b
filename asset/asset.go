// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package asset - typed quantities of fungible value
//
// An Asset is a documentative amount of a single asset type; a Store
// is a quantity of actual asset that cannot be copied, only moved.
//
// Arithmetic is only defined between amounts of the same asset type
// and is overflow checked; a mismatch or an overflow is an invariant
// violation and halts the offending code path, it is never returned
// as an error.
package asset

import (
	"fmt"

	"github.com/bitmark-inc/tankd/fault"
)

// AssetId - opaque identifier of a fungible asset type
type AssetId uint64

// Amount - a signed quantity of some asset
type Amount int64

// Asset - an amount of a single asset type
type Asset struct {
	Amount  Amount  `json:"amount,string"`
	AssetId AssetId `json:"assetId"`
}

// Add - sum of two amounts of the same asset type
func (a Asset) Add(b Asset) Asset {
	a.sameType(b)
	return Asset{
		Amount:  checkedAdd(a.Amount, b.Amount),
		AssetId: a.AssetId,
	}
}

// Sub - difference of two amounts of the same asset type
func (a Asset) Sub(b Asset) Asset {
	a.sameType(b)
	return Asset{
		Amount:  checkedAdd(a.Amount, negated(b.Amount)),
		AssetId: a.AssetId,
	}
}

// Neg - the negated amount
func (a Asset) Neg() Asset {
	return Asset{
		Amount:  negated(a.Amount),
		AssetId: a.AssetId,
	}
}

// Equal - true if asset type and amount are both the same
func (a Asset) Equal(b Asset) bool {
	return a.AssetId == b.AssetId && a.Amount == b.Amount
}

// LessThan - amount ordering, only defined for equal asset types
func (a Asset) LessThan(b Asset) bool {
	a.sameType(b)
	return a.Amount < b.Amount
}

// IsZero - true if the amount is zero
func (a Asset) IsZero() bool {
	return 0 == a.Amount
}

// String - display form, e.g. "25[asset:3]"
func (a Asset) String() string {
	return fmt.Sprintf("%d[asset:%d]", a.Amount, a.AssetId)
}

// ensure both operands hold the same asset type
func (a Asset) sameType(b Asset) {
	if a.AssetId != b.AssetId {
		fault.Panicf("asset: type mismatch: %d and %d", a.AssetId, b.AssetId)
	}
}

// overflow checked addition
func checkedAdd(x Amount, y Amount) Amount {
	sum := x + y
	if (y > 0 && sum < x) || (y < 0 && sum > x) {
		fault.Panicf("asset: amount overflow: %d + %d", x, y)
	}
	return sum
}

// overflow checked negation
func negated(x Amount) Amount {
	if -x == x && 0 != x {
		fault.Panicf("asset: amount overflow: -(%d)", x)
	}
	return -x
}
