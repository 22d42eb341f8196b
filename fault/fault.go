// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// error instances
//
// Provides a single instance of errors to allow easy comparison
package fault

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised         = ProcessError("already initialised")
	ErrExceededMaximumChainLength = InvalidError("exceeded maximum sink chain length")
	ErrInsufficientValue          = InvalidError("insufficient value in store")
	ErrInvalidAmount              = InvalidError("amount is invalid")
	ErrInvalidAttachmentKind      = InvalidError("attachment kind is invalid")
	ErrInvalidDepositDestination  = InvalidError("deposit destination is not a tank")
	ErrInvalidLoggerChannel       = ProcessError("invalid logger channel")
	ErrInvalidRecord              = InvalidError("record type is invalid")
	ErrInvalidSinkScheme          = InvalidError("sink scheme is invalid")
	ErrLookupFunctionRequired     = ProcessError("tank lookup function is required")
	ErrMissingSchematic           = InvalidError("tank schematic is required")
	ErrNotAssetPack               = ProcessError("not an asset pack")
	ErrNotInitialised             = ProcessError("not initialised")
	ErrNotTankPack                = ProcessError("not a tank pack")
	ErrNotTankRecordPack          = ProcessError("not a tank record pack")
	ErrTankAlreadyExists          = ExistsError("tank already exists")
	ErrTankDoesNotExist           = NotFoundError("tank does not exist")
	ErrTankIsNotEmpty             = InvalidError("tank still holds asset")
	ErrWrongAssetType             = InvalidError("asset type does not match tank")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
