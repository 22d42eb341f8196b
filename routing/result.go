// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package routing

import (
	"fmt"

	"github.com/bitmark-inc/tankd/tank"
)

// resolution failures are ordinary values, never panics: every query
// in this package returns either its payload or one of a fixed set of
// errors, and intermediate layers hand a sub-query's error on
// unchanged so the outermost caller always sees the original failure
// and the offending id
//
// the fixed set is:
//   fault.ErrLookupFunctionRequired     - no cross-tank lookup supplied
//   fault.ErrExceededMaximumChainLength - chain walk hit its bound
//   NonexistentTankError                - referenced tank not in state
//   NonexistentAttachmentError          - referenced attachment not in state
//   NoAssetError                        - attachment declares no asset
//   BadSinkError                        - sink incompatible with the asset

// NonexistentTankError - a referenced tank does not exist in ledger state
type NonexistentTankError tank.TankId

// NonexistentAttachmentError - a referenced attachment does not exist
type NonexistentAttachmentError tank.AttachmentId

// NoAssetError - an attachment was asked for its accepted asset type
// but declares none
type NoAssetError tank.AttachmentId

// BadSinkReason - why a sink is incompatible
type BadSinkReason int

// possible reasons
const (
	ReceivesNoAsset = BadSinkReason(iota)
	ReceivesWrongAsset
)

// BadSinkError - a sink along a chain cannot take the asset being routed
type BadSinkError struct {
	Reason BadSinkReason
	Sink   tank.Sink
}

func (e NonexistentTankError) Error() string {
	return fmt.Sprintf("tank %d does not exist", tank.TankId(e))
}

func (e NonexistentAttachmentError) Error() string {
	return fmt.Sprintf("%s does not exist", tank.AttachmentId(e))
}

func (e NoAssetError) Error() string {
	return fmt.Sprintf("%s receives no asset", tank.AttachmentId(e))
}

func (r BadSinkReason) String() string {
	switch r {
	case ReceivesNoAsset:
		return "receives no asset"
	case ReceivesWrongAsset:
		return "receives wrong asset"
	default:
		return fmt.Sprintf("bad sink reason %d", int(r))
	}
}

func (e BadSinkError) Error() string {
	return fmt.Sprintf("bad sink: %s: %s", e.Sink, e.Reason)
}

// IsNonexistent - true for either of the missing-object errors
func IsNonexistent(e error) bool {
	switch e.(type) {
	case NonexistentTankError, NonexistentAttachmentError:
		return true
	default:
		return false
	}
}

// IsBadSink - true if the error is a sink incompatibility
func IsBadSink(e error) bool {
	_, ok := e.(BadSinkError)
	return ok
}
