// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tankrecord

import (
	"github.com/bitmark-inc/tankd/fault"
	"github.com/bitmark-inc/tankd/tank"
	"github.com/bitmark-inc/tankd/util"
)

// pack TankCreate
//
// Pack Varint64(tag) followed by fields in order as struct above
func (create *TankCreate) Pack() (Packed, error) {
	if nil == create.Schematic {
		return nil, fault.ErrMissingSchematic
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(TankCreateTag))
	message = appendUint64(message, uint64(create.Id))
	message = appendUint64(message, uint64(create.DepositAccount))
	return appendSchematic(message, create.Schematic)
}

// pack TankUpdate
//
// Pack Varint64(tag) followed by fields in order as struct above
func (update *TankUpdate) Pack() (Packed, error) {
	if nil == update.Schematic {
		return nil, fault.ErrMissingSchematic
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(TankUpdateTag))
	message = appendUint64(message, uint64(update.Id))
	message, err := appendSchematic(message, update.Schematic)
	if nil != err {
		return nil, err
	}
	message = appendUint64(message, uint64(len(update.ResetTaps)))
	for _, tap := range update.ResetTaps {
		message = appendUint64(message, uint64(tap))
	}
	return message, nil
}

// pack TankDelete
//
// Pack Varint64(tag) followed by fields in order as struct above
func (remove *TankDelete) Pack() (Packed, error) {
	message := util.ToVarint64(uint64(TankDeleteTag))
	return appendUint64(message, uint64(remove.Id)), nil
}

// pack TankDeposit
//
// Pack Varint64(tag) followed by fields in order as struct above
func (deposit *TankDeposit) Pack() (Packed, error) {
	if deposit.Amount.Amount <= 0 {
		return nil, fault.ErrInvalidAmount
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(TankDepositTag))
	message = appendUint64(message, uint64(deposit.Id))
	message = append(message, deposit.Amount.Pack()...)

	packedSink, err := tank.PackSink(deposit.Destination)
	if nil != err {
		return nil, err
	}
	return append(message, packedSink...), nil
}

// append a Varint64 value
func appendUint64(buffer Packed, value uint64) Packed {
	return append(buffer, util.ToVarint64(value)...)
}

// append a packed schematic
func appendSchematic(buffer Packed, schematic *tank.Schematic) (Packed, error) {
	packed, err := schematic.Pack()
	if nil != err {
		return nil, err
	}
	return append(buffer, packed...), nil
}
