// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tank

import (
	"fmt"
)

// SinkScheme - type code for sink variants
//
// this is encoded as a Varint64 at the start of a packed sink
type SinkScheme uint64

// enumerate the closed set of sink variants
const (
	// null marks beginning of list - not used as a scheme
	NullSinkScheme = SinkScheme(iota)

	// valid schemes
	SameTankScheme       = SinkScheme(iota) // the tank currently in scope
	AccountSinkScheme    = SinkScheme(iota) // pay an account
	TankSinkScheme       = SinkScheme(iota) // pay another tank
	AttachmentSinkScheme = SinkScheme(iota) // forward through an attachment

	// this item must be last
	InvalidSinkScheme = SinkScheme(iota)
)

// Sink - a destination reference for routed value
//
// a closed tagged union: the only implementations are SameTank,
// AccountSink, TankSink and AttachmentSink; dispatch is by type
// switch over that fixed set
type Sink interface {
	// Scheme - the variant type code
	Scheme() SinkScheme

	// IsTerminal - true if value stops here, false if the sink may
	// redirect further; only attachment sinks redirect
	IsTerminal() bool

	// String - display form for diagnostics
	String() string
}

// SameTank - the tank currently in scope
type SameTank struct{}

// AccountSink - a ledger account; accepts any asset
type AccountSink struct {
	Account AccountId `json:"account"`
}

// TankSink - another tank; accepts that tank's asset type
type TankSink struct {
	Tank TankId `json:"tank"`
}

// AttachmentSink - an attachment which may forward value onwards
type AttachmentSink struct {
	Attachment AttachmentId `json:"attachment"`
}

func (SameTank) Scheme() SinkScheme       { return SameTankScheme }
func (AccountSink) Scheme() SinkScheme    { return AccountSinkScheme }
func (TankSink) Scheme() SinkScheme       { return TankSinkScheme }
func (AttachmentSink) Scheme() SinkScheme { return AttachmentSinkScheme }

func (SameTank) IsTerminal() bool       { return true }
func (AccountSink) IsTerminal() bool    { return true }
func (TankSink) IsTerminal() bool       { return true }
func (AttachmentSink) IsTerminal() bool { return false }

func (SameTank) String() string {
	return "same tank"
}

func (s AccountSink) String() string {
	return fmt.Sprintf("account %d", s.Account)
}

func (s TankSink) String() string {
	return fmt.Sprintf("tank %d", s.Tank)
}

func (s AttachmentSink) String() string {
	return s.Attachment.String()
}

// SinkEqual - compare two sinks for identity
func SinkEqual(a Sink, b Sink) bool {
	if a.Scheme() != b.Scheme() {
		return false
	}
	switch sink := a.(type) {
	case SameTank:
		return true
	case AccountSink:
		return sink.Account == b.(AccountSink).Account
	case TankSink:
		return sink.Tank == b.(TankSink).Tank
	case AttachmentSink:
		return sink.Attachment.Equal(b.(AttachmentSink).Attachment)
	default:
		return false
	}
}
