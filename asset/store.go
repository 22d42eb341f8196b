// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"github.com/bitmark-inc/tankd/fault"
)

// Store - an error-checked holder of a quantity of one asset type
//
// A Store represents a real store of value, as opposed to the
// documentative amount provided by Asset. Asset within a Store cannot
// be created or destroyed, only moved between stores. The exceptions
// are serialization, which marks a store observed so that it may be
// released afterwards, and the Unchecked entry points, which are
// reserved for sanctioned value-creation boundaries such as genesis.
//
// A Store must not be copied; always hold it by pointer. When a store
// goes out of use Release must be called; releasing a store that
// still holds unobserved asset is an invariant violation.
type Store struct {
	stored   Asset
	observed bool
}

// NewStore - create an empty store for a specific asset type
func NewStore(assetId AssetId) *Store {
	return &Store{
		stored: Asset{Amount: 0, AssetId: assetId},
	}
}

// UncheckedCreate - create a store holding value from nowhere
//
// bypasses conservation checking: only for value-creation points
// owned by the ledger itself
func UncheckedCreate(a Asset) *Store {
	return &Store{
		stored: a,
	}
}

// UncheckedRelease - discard any held value without complaint
//
// bypasses conservation checking: only for value-destruction points
// owned by the ledger itself
func (store *Store) UncheckedRelease() {
	store.stored.Amount = 0
	store.observed = false
}

// Release - declare the store out of use
//
// an invariant violation if the store still holds asset that was
// never observed by serialization
func (store *Store) Release() {
	if 0 != store.stored.Amount && !store.observed {
		fault.Panicf("asset: store released with %s still inside", store.stored)
	}
	store.stored.Amount = 0
	store.observed = false
}

// StoredAsset - the held asset as a documentative amount
func (store *Store) StoredAsset() Asset {
	return store.stored
}

// Amount - the held amount
func (store *Store) Amount() Amount {
	return store.stored.Amount
}

// AssetType - the held asset type
func (store *Store) AssetType() AssetId {
	return store.stored.AssetId
}

// IsEmpty - true if no asset is held
func (store *Store) IsEmpty() bool {
	return 0 == store.stored.Amount
}

// Equal - delegate comparison to the held asset
func (store *Store) Equal(other *Store) bool {
	return store.stored.Equal(other.stored)
}

// LessThan - delegate ordering to the held asset; requires equal types
func (store *Store) LessThan(other *Store) bool {
	return store.stored.LessThan(other.stored)
}

// Mover - a single use handle moving a fixed amount between stores
//
// obtained from Store.Move and must be consumed immediately by To; it
// is an invariant violation to use a Mover twice
type Mover struct {
	source *Store
	amount Amount
}

// Move - begin a two-phase transfer of amount out of this store
//
// amount must be in the range 0..store.Amount(); anything else is an
// invariant violation since it would manufacture or strand value
func (store *Store) Move(amount Amount) *Mover {
	if amount < 0 || amount > store.stored.Amount {
		fault.Panicf("asset: move of %d from store holding %s", amount, store.stored)
	}
	return &Mover{
		source: store,
		amount: amount,
	}
}

// Drain - move the entire held amount to a destination store
func (store *Store) Drain(destination *Store) {
	store.Move(store.stored.Amount).To(destination)
}

// To - complete a transfer into the destination store
//
// the source is decremented and the destination incremented as one
// indivisible relocation; a destination already holding a different
// asset type is an invariant violation, an empty destination adopts
// the type of the incoming asset
func (mover *Mover) To(destination *Store) {
	source := mover.source
	if nil == source {
		fault.Panicf("asset: mover used twice")
	}
	mover.source = nil

	if 0 != destination.stored.Amount && destination.stored.AssetId != source.stored.AssetId {
		fault.Panicf(
			"asset: move of %s into store holding %s",
			source.stored, destination.stored,
		)
	}
	if 0 == destination.stored.Amount {
		destination.stored.AssetId = source.stored.AssetId
	}

	source.stored.Amount -= mover.amount
	destination.stored.Amount = checkedAdd(destination.stored.Amount, mover.amount)

	// both stores have been modified since last observation
	source.observed = false
	destination.observed = false
}
