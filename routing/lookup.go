// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package routing - sink chain resolution
//
// Answers "what does this sink ultimately pay, in what asset, through
// what chain" for the tank currently being evaluated. All queries are
// pure: for fixed ledger state and fixed inputs every node computes
// the identical chain or the identical failure, which consensus
// depends on.
package routing

import (
	"github.com/bitmark-inc/tankd/asset"
	"github.com/bitmark-inc/tankd/fault"
	"github.com/bitmark-inc/tankd/tank"
)

// GetTankFunc - caller supplied capability to fetch another tank's
// schematic; nil result means the tank does not exist
//
// the returned schematic is borrowed ledger state: it is only valid
// for the duration of the resolution call and must not be modified
type GetTankFunc func(tank.TankId) *tank.Schematic

// Lookup - resolution context for one tank
//
// CurrentTank is the schematic of the tank in scope; GetTank may be
// nil, in which case any cross-tank reference fails with
// fault.ErrLookupFunctionRequired
type Lookup struct {
	CurrentTank *tank.Schematic
	GetTank     GetTankFunc
}

// LookupTank - resolve an optional tank id to a schematic
//
// nil id means the current tank
func (l *Lookup) LookupTank(id *tank.TankId) (*tank.Schematic, error) {
	if nil == id {
		return l.CurrentTank, nil
	}
	if nil == l.GetTank {
		return nil, fault.ErrLookupFunctionRequired
	}
	schematic := l.GetTank(*id)
	if nil == schematic {
		return nil, NonexistentTankError(*id)
	}
	return schematic, nil
}

// LookupAttachment - resolve an attachment address
func (l *Lookup) LookupAttachment(id tank.AttachmentId) (tank.Attachment, error) {
	schematic, err := l.LookupTank(id.Tank)
	if nil != err {
		return nil, err
	}
	attachment, ok := schematic.Attachment(id.Index)
	if !ok {
		return nil, NonexistentAttachmentError(id)
	}
	return attachment, nil
}

// AttachmentAsset - the asset type an attachment accepts
func (l *Lookup) AttachmentAsset(id tank.AttachmentId) (asset.AssetId, error) {
	attachment, err := l.LookupAttachment(id)
	if nil != err {
		return 0, err
	}
	assetType, ok := attachment.ReceivesAsset()
	if !ok {
		return 0, NoAssetError(id)
	}
	return assetType, nil
}

// AttachmentSink - where an attachment forwards received value
func (l *Lookup) AttachmentSink(id tank.AttachmentId) (tank.Sink, error) {
	attachment, err := l.LookupAttachment(id)
	if nil != err {
		return nil, err
	}
	sink, ok := attachment.OutputSink()
	if !ok {
		return nil, BadSinkError{
			Reason: ReceivesNoAsset,
			Sink:   tank.AttachmentSink{Attachment: id},
		}
	}
	return sink, nil
}

// SinkAsset - the asset type a sink accepts
//
// a nil result with nil error means the sink accepts any asset type
// (only accounts do)
func (l *Lookup) SinkAsset(sink tank.Sink) (*asset.AssetId, error) {
	switch sink := sink.(type) {
	case tank.SameTank:
		assetType := l.CurrentTank.AssetType
		return &assetType, nil

	case tank.AccountSink:
		return nil, nil

	case tank.TankSink:
		tankId := sink.Tank
		schematic, err := l.LookupTank(&tankId)
		if nil != err {
			return nil, err
		}
		assetType := schematic.AssetType
		return &assetType, nil

	case tank.AttachmentSink:
		assetType, err := l.AttachmentAsset(sink.Attachment)
		if nil != err {
			return nil, err
		}
		return &assetType, nil

	default:
		return nil, fault.ErrInvalidSinkScheme
	}
}
