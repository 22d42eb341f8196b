// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tankrecord

import (
	"github.com/bitmark-inc/tankd/asset"
	"github.com/bitmark-inc/tankd/fault"
	"github.com/bitmark-inc/tankd/tank"
	"github.com/bitmark-inc/tankd/util"
)

// Unpack - turn a byte slice into a record
//
// must cast result to correct type
//
// e.g.
//   deposit, ok := result.(*tankrecord.TankDeposit)
// or:
//   switch record := result.(type) {
//   case *tankrecord.TankCreate:
func (record Packed) Unpack() (r Record, size int, e error) {

	defer func() {
		if rec := recover(); nil != rec {
			r = nil
			size = 0
			e = fault.ErrNotTankRecordPack
		}
	}()

	recordType, n := util.FromVarint64(record)
	if 0 == n {
		return nil, 0, fault.ErrNotTankRecordPack
	}

	switch TagType(recordType) {

	case TankCreateTag:
		tankId, length := util.FromVarint64(record[n:])
		if 0 == length {
			return nil, 0, fault.ErrNotTankRecordPack
		}
		n += length
		account, length := util.FromVarint64(record[n:])
		if 0 == length {
			return nil, 0, fault.ErrNotTankRecordPack
		}
		n += length
		schematic, length, err := tank.UnpackSchematic(record[n:])
		if nil != err {
			return nil, 0, err
		}
		n += length
		create := &TankCreate{
			Id:             tank.TankId(tankId),
			DepositAccount: tank.AccountId(account),
			Schematic:      schematic,
		}
		return create, n, nil

	case TankUpdateTag:
		tankId, length := util.FromVarint64(record[n:])
		if 0 == length {
			return nil, 0, fault.ErrNotTankRecordPack
		}
		n += length
		schematic, length, err := tank.UnpackSchematic(record[n:])
		if nil != err {
			return nil, 0, err
		}
		n += length
		tapCount, length := util.FromVarint64(record[n:])
		if 0 == length {
			return nil, 0, fault.ErrNotTankRecordPack
		}
		n += length
		update := &TankUpdate{
			Id:        tank.TankId(tankId),
			Schematic: schematic,
		}
		for i := uint64(0); i < tapCount; i += 1 {
			tap, length := util.FromVarint64(record[n:])
			if 0 == length {
				return nil, 0, fault.ErrNotTankRecordPack
			}
			n += length
			update.ResetTaps = append(update.ResetTaps, tank.TapId(tap))
		}
		return update, n, nil

	case TankDeleteTag:
		tankId, length := util.FromVarint64(record[n:])
		if 0 == length {
			return nil, 0, fault.ErrNotTankRecordPack
		}
		n += length
		return &TankDelete{Id: tank.TankId(tankId)}, n, nil

	case TankDepositTag:
		tankId, length := util.FromVarint64(record[n:])
		if 0 == length {
			return nil, 0, fault.ErrNotTankRecordPack
		}
		n += length
		amount, length, err := asset.UnpackAsset(record[n:])
		if nil != err {
			return nil, 0, err
		}
		n += length
		destination, length, err := tank.UnpackSink(record[n:])
		if nil != err {
			return nil, 0, err
		}
		n += length
		deposit := &TankDeposit{
			Id:          tank.TankId(tankId),
			Amount:      amount,
			Destination: destination,
		}
		return deposit, n, nil

	default:
		return nil, 0, fault.ErrNotTankRecordPack
	}
}
