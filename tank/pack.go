// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tank

import (
	"github.com/bitmark-inc/tankd/fault"
	"github.com/bitmark-inc/tankd/util"
)

// Packed - packed records are just a byte slice
type Packed []byte

// binary layouts
//
//   attachment id = presence(byte: 0x00/0x01) ++ [Varint64(tank)] ++ Varint64(index)
//   sink          = Varint64(scheme) ++ variant fields
//   attachment    = Varint64(kind) ++ kind fields
//   schematic     = Varint64(assetType)
//                   ++ Varint64(count) ++ { Varint64(index) ++ attachment }
//                   ++ Varint64(count) ++ { Varint64(tap) ++ Varint64(sub)
//                                           ++ Varint64(length) ++ state bytes }
//
// attachments are packed in increasing index order and states in
// (tap, sub) order so the packed form is canonical: equal schematics
// always produce identical bytes, which consensus requires

// PackSink - binary form of a sink
func PackSink(sink Sink) (Packed, error) {
	if nil == sink {
		return nil, fault.ErrInvalidSinkScheme
	}

	message := util.ToVarint64(uint64(sink.Scheme()))
	switch sink := sink.(type) {
	case SameTank:
		return message, nil

	case AccountSink:
		return appendUint64(message, uint64(sink.Account)), nil

	case TankSink:
		return appendUint64(message, uint64(sink.Tank)), nil

	case AttachmentSink:
		return appendAttachmentId(message, sink.Attachment), nil

	default:
		return nil, fault.ErrInvalidSinkScheme
	}
}

// PackAttachment - binary form of an attachment
func PackAttachment(attachment Attachment) (Packed, error) {
	if nil == attachment {
		return nil, fault.ErrInvalidAttachmentKind
	}

	message := util.ToVarint64(uint64(attachment.Kind()))
	switch attachment := attachment.(type) {
	case FlowMeter:
		message = appendUint64(message, uint64(attachment.AssetType))
		return appendSink(message, attachment.Destination)

	case TapOpener:
		message = appendUint64(message, uint64(attachment.TapToOpen))
		return appendUint64(message, uint64(attachment.AssetType)), nil

	case SourceRestrictor:
		return appendSink(message, attachment.Destination)

	default:
		return nil, fault.ErrInvalidAttachmentKind
	}
}

// Pack - binary form of a schematic
func (schematic *Schematic) Pack() (Packed, error) {
	message := util.ToVarint64(uint64(schematic.AssetType))

	indexes := schematic.AttachmentIndexes()
	message = appendUint64(message, uint64(len(indexes)))
	for _, index := range indexes {
		message = appendUint64(message, index)
		packed, err := PackAttachment(schematic.Attachments[index])
		if nil != err {
			return nil, err
		}
		message = append(message, packed...)
	}

	message = appendUint64(message, uint64(len(schematic.states)))
	for _, entry := range schematic.states {
		message = appendUint64(message, uint64(entry.Key.Tap))
		message = appendUint64(message, entry.Key.Sub)
		message = appendUint64(message, uint64(len(entry.State)))
		message = append(message, entry.State...)
	}
	return message, nil
}

// append a Varint64 value
func appendUint64(buffer Packed, value uint64) Packed {
	return append(buffer, util.ToVarint64(value)...)
}

// append an attachment address
func appendAttachmentId(buffer Packed, id AttachmentId) Packed {
	if nil == id.Tank {
		buffer = append(buffer, 0x00)
	} else {
		buffer = append(buffer, 0x01)
		buffer = appendUint64(buffer, uint64(*id.Tank))
	}
	return appendUint64(buffer, id.Index)
}

// append a packed sink
func appendSink(buffer Packed, sink Sink) (Packed, error) {
	packed, err := PackSink(sink)
	if nil != err {
		return nil, err
	}
	return append(buffer, packed...), nil
}
