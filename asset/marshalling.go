// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"encoding/json"

	"github.com/bitmark-inc/tankd/fault"
	"github.com/bitmark-inc/tankd/util"
)

// binary layout of an asset:
//
//   Varint64(assetId) ++ Varint64(amount)
//
// the amount is the two's complement bit pattern of the signed value
// so negative amounts occupy the full nine bytes

// Pack - binary form of an asset
func (a Asset) Pack() []byte {
	message := util.ToVarint64(uint64(a.AssetId))
	return append(message, util.ToVarint64(uint64(a.Amount))...)
}

// UnpackAsset - decode an asset from the start of a buffer
//
// also returns the number of bytes consumed
func UnpackAsset(buffer []byte) (Asset, int, error) {
	assetId, idLength := util.FromVarint64(buffer)
	if 0 == idLength {
		return Asset{}, 0, fault.ErrNotAssetPack
	}
	amount, amountLength := util.FromVarint64(buffer[idLength:])
	if 0 == amountLength {
		return Asset{}, 0, fault.ErrNotAssetPack
	}
	a := Asset{
		Amount:  Amount(amount),
		AssetId: AssetId(assetId),
	}
	return a, idLength + amountLength, nil
}

// Pack - binary form of a store; marks the store observed
//
// serialization is the single sanctioned path by which a store
// holding asset may afterwards be released without a conservation
// violation: the value is now accounted for externally
func (store *Store) Pack() []byte {
	store.observed = true
	return store.stored.Pack()
}

// UnpackStore - reconstitute a store from its binary form
//
// the resulting store is already marked observed, mirroring the pack
// side: the durable copy remains the accountable one
func UnpackStore(buffer []byte) (*Store, int, error) {
	a, n, err := UnpackAsset(buffer)
	if nil != err {
		return nil, 0, err
	}
	return &Store{stored: a, observed: true}, n, nil
}

// MarshalJSON - the self-describing tree form; marks the store observed
func (store *Store) MarshalJSON() ([]byte, error) {
	store.observed = true
	return json.Marshal(store.stored)
}

// UnmarshalJSON - decode a store from its tree form
func (store *Store) UnmarshalJSON(data []byte) error {
	var a Asset
	err := json.Unmarshal(data, &a)
	if nil != err {
		return err
	}
	store.stored = a
	store.observed = true
	return nil
}
