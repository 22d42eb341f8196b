// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package evaluation - two-phase processing of tank records
//
// Evaluate validates a record against current ledger state without
// modifying anything; Apply performs the state change and moves value
// through conservation stores. The surrounding ledger is expected to
// call Evaluate first and only Apply records that passed; Apply
// re-checks just the conditions whose violation would otherwise break
// conservation.
//
// Authority over a record (signatures, restriction predicates) is
// outside this package and assumed already settled.
package evaluation

import (
	"github.com/bitmark-inc/tankd/asset"
	"github.com/bitmark-inc/tankd/fault"
	"github.com/bitmark-inc/tankd/routing"
	"github.com/bitmark-inc/tankd/storage"
	"github.com/bitmark-inc/tankd/tank"
	"github.com/bitmark-inc/tankd/tankrecord"
)

// Evaluate - validate a record against current ledger state
//
// returns nil if the record could be applied; expected failures come
// back as fault sentinels or routing errors, never as panics
func Evaluate(record tankrecord.Record) error {
	switch record := record.(type) {
	case *tankrecord.TankCreate:
		if nil == record.Schematic {
			return fault.ErrMissingSchematic
		}
		if storage.HasTank(record.Id) {
			return fault.ErrTankAlreadyExists
		}
		return validateSchematic(record.Schematic)

	case *tankrecord.TankUpdate:
		if nil == record.Schematic {
			return fault.ErrMissingSchematic
		}
		if !storage.HasTank(record.Id) {
			return fault.ErrTankDoesNotExist
		}
		return validateSchematic(record.Schematic)

	case *tankrecord.TankDelete:
		if !storage.HasTank(record.Id) {
			return fault.ErrTankDoesNotExist
		}
		return nil

	case *tankrecord.TankDeposit:
		if record.Amount.Amount <= 0 {
			return fault.ErrInvalidAmount
		}
		_, _, err := resolveDeposit(record)
		return err

	default:
		return fault.ErrInvalidRecord
	}
}

// check every attachment's output chain terminates and is asset
// compatible with what the attachment accepts
//
// run in the context of the schematic being registered so relative
// sinks resolve against the new tank itself; cross-tank references go
// through the ledger index
func validateSchematic(schematic *tank.Schematic) error {
	lookup := routing.Lookup{
		CurrentTank: schematic,
		GetTank:     storage.GetTank,
	}

	for _, index := range schematic.AttachmentIndexes() {
		attachment := schematic.Attachments[index]
		if _, ok := attachment.OutputSink(); !ok {
			continue
		}

		var requiredAsset *asset.AssetId
		if assetType, ok := attachment.ReceivesAsset(); ok {
			requiredAsset = &assetType
		}

		start := tank.AttachmentSink{
			Attachment: tank.AttachmentId{Index: index},
		}
		_, err := lookup.SinkChain(start, routing.DefaultMaximumChainLength, requiredAsset)
		if nil != err {
			return err
		}
	}
	return nil
}

// resolve a deposit's destination chain to the tank that finally
// holds the value
func resolveDeposit(record *tankrecord.TankDeposit) (tank.TankId, *routing.SinkChain, error) {
	schematic := storage.GetTank(record.Id)
	if nil == schematic {
		return 0, nil, fault.ErrTankDoesNotExist
	}

	lookup := routing.Lookup{
		CurrentTank: schematic,
		GetTank:     storage.GetTank,
	}
	requiredAsset := record.Amount.AssetId
	chain, err := lookup.SinkChain(record.Destination, routing.DefaultMaximumChainLength, &requiredAsset)
	if nil != err {
		return 0, nil, err
	}

	switch terminal := chain.Terminal().(type) {
	case tank.SameTank:
		if nil != chain.FinalSinkTank {
			return *chain.FinalSinkTank, chain, nil
		}
		return record.Id, chain, nil

	case tank.TankSink:
		return terminal.Tank, chain, nil

	default:
		// accounts are paid by the surrounding ledger, not here
		return 0, nil, fault.ErrInvalidDepositDestination
	}
}
