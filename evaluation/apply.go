// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package evaluation

import (
	"github.com/bitmark-inc/tankd/asset"
	"github.com/bitmark-inc/tankd/fault"
	"github.com/bitmark-inc/tankd/storage"
	"github.com/bitmark-inc/tankd/tankrecord"
)

// Apply - perform a record's state change
//
// funds is the caller's conservation store backing the operation:
// the source of a deposit or an initial create funding, and the
// destination of a delete refund; pass nil when the record moves no
// value. Every transfer goes through Store moves so the total amount
// in play is preserved on all paths.
func Apply(record tankrecord.Record, funds *asset.Store) error {
	switch record := record.(type) {
	case *tankrecord.TankCreate:
		return applyCreate(record, funds)

	case *tankrecord.TankUpdate:
		return applyUpdate(record)

	case *tankrecord.TankDelete:
		return applyDelete(record, funds)

	case *tankrecord.TankDeposit:
		return applyDeposit(record, funds)

	default:
		return fault.ErrInvalidRecord
	}
}

func applyCreate(record *tankrecord.TankCreate, funds *asset.Store) error {
	funded := nil != funds && !funds.IsEmpty()
	if funded && funds.AssetType() != record.Schematic.AssetType {
		return fault.ErrWrongAssetType
	}

	// no value has moved yet, so a failed write is an ordinary rejection
	err := storage.PutTank(record.Id, record.Schematic)
	if nil != err {
		return err
	}

	balance := asset.NewStore(record.Schematic.AssetType)
	if funded {
		funds.Drain(balance)
	}
	panicIfStorageError("put balance", storage.PutBalance(record.Id, balance))
	balance.Release()
	return nil
}

func applyUpdate(record *tankrecord.TankUpdate) error {
	old := storage.GetTank(record.Id)
	if nil == old {
		return fault.ErrTankDoesNotExist
	}

	// requirement state is chain-side bookkeeping: carry it over from
	// the old schematic, then drop the taps whose definition changed
	updated := record.Schematic
	for _, entry := range old.RequirementStates() {
		updated.SetRequirementState(entry.Key, entry.State)
	}
	for _, tap := range record.ResetTaps {
		updated.ClearTapState(tap)
	}

	return storage.PutTank(record.Id, updated)
}

func applyDelete(record *tankrecord.TankDelete, funds *asset.Store) error {
	balance := storage.GetBalance(record.Id)
	if nil != balance && !balance.IsEmpty() {
		if nil == funds {
			return fault.ErrTankIsNotEmpty
		}
		if !funds.IsEmpty() && funds.AssetType() != balance.AssetType() {
			return fault.ErrWrongAssetType
		}
	}

	// drop the durable record first: a reloading node must never see a
	// balance that was also refunded
	err := storage.DeleteBalance(record.Id)
	if nil != err {
		return err
	}

	if nil != balance {
		if !balance.IsEmpty() {
			balance.Drain(funds)
		}
		balance.Release()
	}
	panicIfStorageError("delete tank", storage.DeleteTank(record.Id))
	return nil
}

func applyDeposit(record *tankrecord.TankDeposit, funds *asset.Store) error {
	destination, _, err := resolveDeposit(record)
	if nil != err {
		return err
	}

	if nil == funds || funds.AssetType() != record.Amount.AssetId {
		return fault.ErrWrongAssetType
	}
	if funds.Amount() < record.Amount.Amount {
		return fault.ErrInsufficientValue
	}

	balance := storage.GetBalance(destination)
	if nil == balance {
		balance = asset.NewStore(record.Amount.AssetId)
	}
	funds.Move(record.Amount.Amount).To(balance)

	panicIfStorageError("put balance", storage.PutBalance(destination, balance))
	balance.Release()
	return nil
}

// a storage failure after value has moved cannot be handled as an
// ordinary error: the durable state and the conservation stores now
// disagree and continuing would strand or duplicate value
func panicIfStorageError(operation string, err error) {
	if nil != err {
		fault.Panicf("evaluation: %s: %s", operation, err)
	}
}
