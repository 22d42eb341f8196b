// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package tankrecord - the tank operation records
//
// the wire form of the operations that create, reconfigure, remove
// and fund tanks; authority over these operations (signatures,
// restriction predicates) is checked by the surrounding ledger before
// a record reaches the evaluation layer
package tankrecord

import (
	"encoding/hex"
	"encoding/json"

	"github.com/bitmark-inc/tankd/asset"
	"github.com/bitmark-inc/tankd/tank"
	"github.com/bitmark-inc/tankd/util"
)

// TagType - type code for tank records
type TagType uint64

// enumerate the possible record types
// this is encoded a Varint64 at start of "Packed"
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	// valid record types
	TankCreateTag  = TagType(iota) // register a new tank
	TankUpdateTag  = TagType(iota) // replace a tank's schematic
	TankDeleteTag  = TagType(iota) // remove a tank
	TankDepositTag = TagType(iota) // route value into a tank

	// this item must be last
	InvalidTag = TagType(iota)
)

// Packed - packed records are just a byte slice
type Packed []byte

// Record - generic tank record interface
type Record interface {
	Pack() (Packed, error)
}

// TankCreate - register a new tank with its schematic
//
// DepositAccount is carried for the surrounding ledger, which pays any
// deletion refund out to it; this core only records it
type TankCreate struct {
	Id             tank.TankId     `json:"id"`
	DepositAccount tank.AccountId  `json:"depositAccount"`
	Schematic      *tank.Schematic `json:"schematic"`
}

// TankUpdate - replace a tank's schematic
//
// taps whose requirements changed are listed so their accumulated
// requirement state can be dropped
type TankUpdate struct {
	Id        tank.TankId     `json:"id"`
	Schematic *tank.Schematic `json:"schematic"`
	ResetTaps []tank.TapId    `json:"resetTaps,omitempty"`
}

// TankDelete - remove an empty or refundable tank
type TankDelete struct {
	Id tank.TankId `json:"id"`
}

// TankDeposit - route value into a tank
//
// the destination sink is resolved relative to the addressed tank and
// must terminate at a tank
type TankDeposit struct {
	Id          tank.TankId `json:"id"`
	Amount      asset.Asset `json:"amount"`
	Destination tank.Sink   `json:"destination"`
}

// Type - returns the record type code
func (record Packed) Type() TagType {
	recordType, n := util.FromVarint64(record)
	if 0 == n {
		return NullTag
	}
	return TagType(recordType)
}

// RecordName - returns the name of a tank record as a string
func RecordName(record interface{}) (string, bool) {
	switch record.(type) {
	case *TankCreate, TankCreate:
		return "TankCreate", true

	case *TankUpdate, TankUpdate:
		return "TankUpdate", true

	case *TankDelete, TankDelete:
		return "TankDelete", true

	case *TankDeposit, TankDeposit:
		return "TankDeposit", true

	default:
		return "*unknown*", false
	}
}

// MarshalText - convert a packed to its hex JSON form
func (record Packed) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(record))
	b := make([]byte, size)
	hex.Encode(b, record)
	return b, nil
}

// UnmarshalText - convert a packed from its hex JSON form
func (record *Packed) UnmarshalText(s []byte) error {
	size := hex.DecodedLen(len(s))
	*record = make([]byte, size)
	_, err := hex.Decode(*record, s)
	return err
}

// deposit JSON carries the sink envelope form

type tankDepositJSON struct {
	Id          tank.TankId     `json:"id"`
	Amount      asset.Asset     `json:"amount"`
	Destination json.RawMessage `json:"destination"`
}

// MarshalJSON - convert a deposit to its tree form
func (deposit TankDeposit) MarshalJSON() ([]byte, error) {
	destination, err := tank.MarshalSink(deposit.Destination)
	if nil != err {
		return nil, err
	}
	return json.Marshal(tankDepositJSON{
		Id:          deposit.Id,
		Amount:      deposit.Amount,
		Destination: destination,
	})
}

// UnmarshalJSON - convert a deposit from its tree form
func (deposit *TankDeposit) UnmarshalJSON(data []byte) error {
	envelope := tankDepositJSON{}
	err := json.Unmarshal(data, &envelope)
	if nil != err {
		return err
	}
	destination, err := tank.UnmarshalSink(envelope.Destination)
	if nil != err {
		return err
	}
	deposit.Id = envelope.Id
	deposit.Amount = envelope.Amount
	deposit.Destination = destination
	return nil
}
