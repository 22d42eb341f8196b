// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tank

import (
	"encoding/hex"
	"encoding/json"

	"github.com/bitmark-inc/tankd/asset"
	"github.com/bitmark-inc/tankd/fault"
)

// self-describing tree forms
//
// sinks and attachments are closed unions so their JSON carries an
// explicit scheme/kind discriminator, e.g.
//
//   {"scheme":"attachment","attachment":{"tank":9,"index":0}}
//   {"kind":"FlowMeter","assetType":3,"destination":{"scheme":"sameTank"}}

// MarshalText - convert requirement state to its hex JSON form
func (state RequirementState) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(state))
	b := make([]byte, size)
	hex.Encode(b, state)
	return b, nil
}

// UnmarshalText - convert requirement state from its hex JSON form
func (state *RequirementState) UnmarshalText(s []byte) error {
	size := hex.DecodedLen(len(s))
	*state = make([]byte, size)
	_, err := hex.Decode(*state, s)
	return err
}

// sink envelope
type sinkJSON struct {
	Scheme     string        `json:"scheme"`
	Account    *AccountId    `json:"account,omitempty"`
	Tank       *TankId       `json:"tank,omitempty"`
	Attachment *AttachmentId `json:"attachment,omitempty"`
}

// attachment envelope
type attachmentJSON struct {
	Kind        string         `json:"kind"`
	AssetType   *asset.AssetId `json:"assetType,omitempty"`
	TapToOpen   *TapId         `json:"tapToOpen,omitempty"`
	Destination *sinkJSON      `json:"destination,omitempty"`
}

// schematic envelope
type schematicJSON struct {
	AssetType         asset.AssetId              `json:"assetType"`
	Attachments       map[uint64]*attachmentJSON `json:"attachments"`
	RequirementStates []StateEntry               `json:"requirementStates,omitempty"`
}

// MarshalSink - convert a sink to its tree form
func MarshalSink(sink Sink) (json.RawMessage, error) {
	envelope, err := sinkToJSON(sink)
	if nil != err {
		return nil, err
	}
	return json.Marshal(envelope)
}

// UnmarshalSink - convert a sink from its tree form
func UnmarshalSink(data json.RawMessage) (Sink, error) {
	envelope := &sinkJSON{}
	err := json.Unmarshal(data, envelope)
	if nil != err {
		return nil, err
	}
	return sinkFromJSON(envelope)
}

// MarshalJSON - convert a schematic to its tree form
func (schematic *Schematic) MarshalJSON() ([]byte, error) {
	envelope := schematicJSON{
		AssetType:         schematic.AssetType,
		Attachments:       map[uint64]*attachmentJSON{},
		RequirementStates: schematic.states,
	}
	for index, attachment := range schematic.Attachments {
		a, err := attachmentToJSON(attachment)
		if nil != err {
			return nil, err
		}
		envelope.Attachments[index] = a
	}
	return json.Marshal(envelope)
}

// UnmarshalJSON - convert a schematic from its tree form
func (schematic *Schematic) UnmarshalJSON(data []byte) error {
	envelope := schematicJSON{}
	err := json.Unmarshal(data, &envelope)
	if nil != err {
		return err
	}

	schematic.AssetType = envelope.AssetType
	schematic.Attachments = map[uint64]Attachment{}
	schematic.states = nil
	for index, a := range envelope.Attachments {
		attachment, err := attachmentFromJSON(a)
		if nil != err {
			return err
		}
		schematic.Attachments[index] = attachment
	}
	for _, entry := range envelope.RequirementStates {
		schematic.SetRequirementState(entry.Key, entry.State)
	}
	return nil
}

// internal conversions

func sinkToJSON(sink Sink) (*sinkJSON, error) {
	switch sink := sink.(type) {
	case SameTank:
		return &sinkJSON{Scheme: "sameTank"}, nil

	case AccountSink:
		account := sink.Account
		return &sinkJSON{Scheme: "account", Account: &account}, nil

	case TankSink:
		tankId := sink.Tank
		return &sinkJSON{Scheme: "tank", Tank: &tankId}, nil

	case AttachmentSink:
		id := sink.Attachment
		return &sinkJSON{Scheme: "attachment", Attachment: &id}, nil

	default:
		return nil, fault.ErrInvalidSinkScheme
	}
}

func sinkFromJSON(envelope *sinkJSON) (Sink, error) {
	switch envelope.Scheme {
	case "sameTank":
		return SameTank{}, nil

	case "account":
		if nil == envelope.Account {
			return nil, fault.ErrInvalidSinkScheme
		}
		return AccountSink{Account: *envelope.Account}, nil

	case "tank":
		if nil == envelope.Tank {
			return nil, fault.ErrInvalidSinkScheme
		}
		return TankSink{Tank: *envelope.Tank}, nil

	case "attachment":
		if nil == envelope.Attachment {
			return nil, fault.ErrInvalidSinkScheme
		}
		return AttachmentSink{Attachment: *envelope.Attachment}, nil

	default:
		return nil, fault.ErrInvalidSinkScheme
	}
}

func attachmentToJSON(attachment Attachment) (*attachmentJSON, error) {
	name, ok := AttachmentName(attachment)
	if !ok {
		return nil, fault.ErrInvalidAttachmentKind
	}

	envelope := &attachmentJSON{Kind: name}
	switch attachment := attachment.(type) {
	case FlowMeter:
		assetType := attachment.AssetType
		envelope.AssetType = &assetType
		destination, err := sinkToJSON(attachment.Destination)
		if nil != err {
			return nil, err
		}
		envelope.Destination = destination

	case TapOpener:
		assetType := attachment.AssetType
		tap := attachment.TapToOpen
		envelope.AssetType = &assetType
		envelope.TapToOpen = &tap

	case SourceRestrictor:
		destination, err := sinkToJSON(attachment.Destination)
		if nil != err {
			return nil, err
		}
		envelope.Destination = destination

	default:
		return nil, fault.ErrInvalidAttachmentKind
	}
	return envelope, nil
}

func attachmentFromJSON(envelope *attachmentJSON) (Attachment, error) {
	switch envelope.Kind {
	case "FlowMeter":
		if nil == envelope.AssetType || nil == envelope.Destination {
			return nil, fault.ErrInvalidAttachmentKind
		}
		destination, err := sinkFromJSON(envelope.Destination)
		if nil != err {
			return nil, err
		}
		return FlowMeter{
			AssetType:   *envelope.AssetType,
			Destination: destination,
		}, nil

	case "TapOpener":
		if nil == envelope.AssetType || nil == envelope.TapToOpen {
			return nil, fault.ErrInvalidAttachmentKind
		}
		return TapOpener{
			TapToOpen: *envelope.TapToOpen,
			AssetType: *envelope.AssetType,
		}, nil

	case "SourceRestrictor":
		if nil == envelope.Destination {
			return nil, fault.ErrInvalidAttachmentKind
		}
		destination, err := sinkFromJSON(envelope.Destination)
		if nil != err {
			return nil, err
		}
		return SourceRestrictor{Destination: destination}, nil

	default:
		return nil, fault.ErrInvalidAttachmentKind
	}
}
