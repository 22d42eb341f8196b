// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tank

import (
	"github.com/bitmark-inc/tankd/asset"
	"github.com/bitmark-inc/tankd/fault"
	"github.com/bitmark-inc/tankd/util"
)

// UnpackSink - decode a sink from the start of a buffer
//
// also returns the number of bytes consumed
func UnpackSink(buffer []byte) (Sink, int, error) {
	scheme, n := util.FromVarint64(buffer)
	if 0 == n {
		return nil, 0, fault.ErrNotTankPack
	}

	switch SinkScheme(scheme) {
	case SameTankScheme:
		return SameTank{}, n, nil

	case AccountSinkScheme:
		account, length := util.FromVarint64(buffer[n:])
		if 0 == length {
			return nil, 0, fault.ErrNotTankPack
		}
		return AccountSink{Account: AccountId(account)}, n + length, nil

	case TankSinkScheme:
		tankId, length := util.FromVarint64(buffer[n:])
		if 0 == length {
			return nil, 0, fault.ErrNotTankPack
		}
		return TankSink{Tank: TankId(tankId)}, n + length, nil

	case AttachmentSinkScheme:
		id, length, err := unpackAttachmentId(buffer[n:])
		if nil != err {
			return nil, 0, err
		}
		return AttachmentSink{Attachment: id}, n + length, nil

	default:
		return nil, 0, fault.ErrInvalidSinkScheme
	}
}

// UnpackAttachment - decode an attachment from the start of a buffer
//
// also returns the number of bytes consumed
func UnpackAttachment(buffer []byte) (Attachment, int, error) {
	kind, n := util.FromVarint64(buffer)
	if 0 == n {
		return nil, 0, fault.ErrNotTankPack
	}

	switch AttachmentKind(kind) {
	case FlowMeterKind:
		assetType, length := util.FromVarint64(buffer[n:])
		if 0 == length {
			return nil, 0, fault.ErrNotTankPack
		}
		n += length
		destination, length, err := UnpackSink(buffer[n:])
		if nil != err {
			return nil, 0, err
		}
		return FlowMeter{
			AssetType:   asset.AssetId(assetType),
			Destination: destination,
		}, n + length, nil

	case TapOpenerKind:
		tap, length := util.FromVarint64(buffer[n:])
		if 0 == length {
			return nil, 0, fault.ErrNotTankPack
		}
		n += length
		assetType, length := util.FromVarint64(buffer[n:])
		if 0 == length {
			return nil, 0, fault.ErrNotTankPack
		}
		return TapOpener{
			TapToOpen: TapId(tap),
			AssetType: asset.AssetId(assetType),
		}, n + length, nil

	case SourceRestrictorKind:
		destination, length, err := UnpackSink(buffer[n:])
		if nil != err {
			return nil, 0, err
		}
		return SourceRestrictor{Destination: destination}, n + length, nil

	default:
		return nil, 0, fault.ErrInvalidAttachmentKind
	}
}

// UnpackSchematic - decode a schematic from the start of a buffer
//
// also returns the number of bytes consumed
func UnpackSchematic(buffer []byte) (schematic *Schematic, size int, e error) {

	defer func() {
		if r := recover(); nil != r {
			schematic = nil
			size = 0
			e = fault.ErrNotTankPack
		}
	}()

	assetType, n := util.FromVarint64(buffer)
	if 0 == n {
		return nil, 0, fault.ErrNotTankPack
	}
	schematic = NewSchematic(asset.AssetId(assetType))

	attachmentCount, length := util.FromVarint64(buffer[n:])
	if 0 == length {
		return nil, 0, fault.ErrNotTankPack
	}
	n += length
	for i := uint64(0); i < attachmentCount; i += 1 {
		index, length := util.FromVarint64(buffer[n:])
		if 0 == length {
			return nil, 0, fault.ErrNotTankPack
		}
		n += length
		attachment, length, err := UnpackAttachment(buffer[n:])
		if nil != err {
			return nil, 0, err
		}
		n += length
		schematic.Attachments[index] = attachment
	}

	stateCount, length := util.FromVarint64(buffer[n:])
	if 0 == length {
		return nil, 0, fault.ErrNotTankPack
	}
	n += length
	for i := uint64(0); i < stateCount; i += 1 {
		tap, length := util.FromVarint64(buffer[n:])
		if 0 == length {
			return nil, 0, fault.ErrNotTankPack
		}
		n += length
		sub, length := util.FromVarint64(buffer[n:])
		if 0 == length {
			return nil, 0, fault.ErrNotTankPack
		}
		n += length
		stateLength, length := util.FromVarint64(buffer[n:])
		if 0 == length {
			return nil, 0, fault.ErrNotTankPack
		}
		n += length
		state := make(RequirementState, stateLength)
		copy(state, buffer[n:n+int(stateLength)])
		n += int(stateLength)
		schematic.SetRequirementState(
			StateKey{Tap: TapId(tap), Sub: sub},
			state,
		)
	}
	return schematic, n, nil
}

// decode an attachment address
func unpackAttachmentId(buffer []byte) (AttachmentId, int, error) {
	if 0 == len(buffer) {
		return AttachmentId{}, 0, fault.ErrNotTankPack
	}

	id := AttachmentId{}
	n := 1
	switch buffer[0] {
	case 0x00:
		// relative to the current tank

	case 0x01:
		tankId, length := util.FromVarint64(buffer[n:])
		if 0 == length {
			return AttachmentId{}, 0, fault.ErrNotTankPack
		}
		n += length
		t := TankId(tankId)
		id.Tank = &t

	default:
		return AttachmentId{}, 0, fault.ErrNotTankPack
	}

	index, length := util.FromVarint64(buffer[n:])
	if 0 == length {
		return AttachmentId{}, 0, fault.ErrNotTankPack
	}
	id.Index = index
	return id, n + length, nil
}
