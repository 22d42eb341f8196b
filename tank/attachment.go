// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tank

import (
	"github.com/bitmark-inc/tankd/asset"
)

// AttachmentKind - type code for attachment kinds
//
// this is encoded as a Varint64 at the start of a packed attachment;
// new kinds are added at a protocol version boundary by appending new
// codes, existing codes are never reused
type AttachmentKind uint64

// enumerate the closed set of attachment kinds
const (
	// null marks beginning of list - not used as a kind
	NullAttachmentKind = AttachmentKind(iota)

	// valid kinds
	FlowMeterKind        = AttachmentKind(iota) // meter value passing through
	TapOpenerKind        = AttachmentKind(iota) // open a tap on receipt of value
	SourceRestrictorKind = AttachmentKind(iota) // restrict deposit paths

	// this item must be last
	InvalidAttachmentKind = AttachmentKind(iota)
)

// Attachment - a configured behavior on a tank
//
// polymorphic over the closed kind set above; this core only consumes
// the two queries below, the kind specific behavior itself belongs to
// the evaluation layer
type Attachment interface {
	// Kind - the attachment type code
	Kind() AttachmentKind

	// ReceivesAsset - the asset type this attachment is willing to
	// accept; false if it declares none
	ReceivesAsset() (asset.AssetId, bool)

	// OutputSink - where received value is forwarded; false if the
	// attachment does not forward at all
	OutputSink() (Sink, bool)
}

// FlowMeter - meters value of one asset type and forwards it
type FlowMeter struct {
	AssetType   asset.AssetId `json:"assetType"`
	Destination Sink          `json:"destination"`
}

// TapOpener - opens a tap when it receives its unlock asset
//
// the received value stops here; releasing it is tap behavior and
// outside this core
type TapOpener struct {
	TapToOpen TapId         `json:"tapToOpen"`
	AssetType asset.AssetId `json:"assetType"`
}

// SourceRestrictor - constrains deposit paths without touching value
//
// accepts any asset, declares none, forwards everything
type SourceRestrictor struct {
	Destination Sink `json:"destination"`
}

func (FlowMeter) Kind() AttachmentKind        { return FlowMeterKind }
func (TapOpener) Kind() AttachmentKind        { return TapOpenerKind }
func (SourceRestrictor) Kind() AttachmentKind { return SourceRestrictorKind }

func (a FlowMeter) ReceivesAsset() (asset.AssetId, bool) {
	return a.AssetType, true
}

func (a FlowMeter) OutputSink() (Sink, bool) {
	return a.Destination, true
}

func (a TapOpener) ReceivesAsset() (asset.AssetId, bool) {
	return a.AssetType, true
}

func (a TapOpener) OutputSink() (Sink, bool) {
	return nil, false
}

func (a SourceRestrictor) ReceivesAsset() (asset.AssetId, bool) {
	return 0, false
}

func (a SourceRestrictor) OutputSink() (Sink, bool) {
	return a.Destination, true
}

// AttachmentName - the name of an attachment kind as a string
func AttachmentName(attachment interface{}) (string, bool) {
	switch attachment.(type) {
	case *FlowMeter, FlowMeter:
		return "FlowMeter", true

	case *TapOpener, TapOpener:
		return "TapOpener", true

	case *SourceRestrictor, SourceRestrictor:
		return "SourceRestrictor", true

	default:
		return "*unknown*", false
	}
}
