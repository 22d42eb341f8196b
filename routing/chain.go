// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package routing

import (
	"github.com/bitmark-inc/tankd/asset"
	"github.com/bitmark-inc/tankd/fault"
	"github.com/bitmark-inc/tankd/tank"
)

// DefaultMaximumChainLength - chain bound for callers without a
// protocol supplied limit
//
// the length bound is the sole defense against redirection cycles, no
// visited set is kept, so it must stay small relative to any
// attachment graph the ledger otherwise allows
const DefaultMaximumChainLength = 30

// SinkChain - the ordered sequence of sinks from a start sink to its
// terminal destination
//
// FinalSinkTank is the tank context the last sink resolves against: a
// nil value means the current tank; it is updated every time the walk
// crosses into an explicitly addressed tank
type SinkChain struct {
	Sinks         []tank.Sink
	FinalSinkTank *tank.TankId
}

// Terminal - the final sink of the chain
func (chain *SinkChain) Terminal() tank.Sink {
	return chain.Sinks[len(chain.Sinks)-1]
}

// SinkChain - walk a sink through attachment redirections to a
// terminal destination
//
// requiredAsset, when non-nil, is checked against every sink on the
// chain and any incompatibility aborts the walk at that hop; the walk
// itself fails with fault.ErrExceededMaximumChainLength as soon as
// the chain grows past maximumLength sinks
func (l *Lookup) SinkChain(start tank.Sink, maximumLength int, requiredAsset *asset.AssetId) (*SinkChain, error) {
	if nil == start {
		return nil, fault.ErrInvalidSinkScheme
	}

	err := l.checkSinkAsset(start, requiredAsset)
	if nil != err {
		return nil, err
	}

	chain := &SinkChain{
		Sinks: []tank.Sink{start},
	}

	for !chain.Terminal().IsTerminal() {
		if len(chain.Sinks) > maximumLength {
			return nil, fault.ErrExceededMaximumChainLength
		}

		// only attachment sinks are non-terminal; a relative address
		// resolves against the tank the chain has walked into, an
		// absolute one moves the chain context to its tank
		id := chain.Terminal().(tank.AttachmentSink).Attachment
		if nil != id.Tank {
			chain.FinalSinkTank = id.Tank
		} else {
			id.Tank = chain.FinalSinkTank
		}

		next, err := l.AttachmentSink(id)
		if nil != err {
			return nil, err
		}
		err = l.checkSinkAsset(next, requiredAsset)
		if nil != err {
			return nil, err
		}
		chain.Sinks = append(chain.Sinks, next)
	}

	return chain, nil
}

// verify one sink can take the required asset
//
// a missing lookup function is tolerated here: the sink may still be
// usable and the walk itself will fail if it actually needs the
// lookup; accounts accept anything
func (l *Lookup) checkSinkAsset(sink tank.Sink, requiredAsset *asset.AssetId) error {
	if nil == requiredAsset {
		return nil
	}

	sinkAsset, err := l.SinkAsset(sink)
	if nil != err {
		if fault.ErrLookupFunctionRequired == err {
			return nil
		}
		if _, ok := err.(NoAssetError); ok {
			return BadSinkError{
				Reason: ReceivesNoAsset,
				Sink:   sink,
			}
		}
		return err
	}
	if nil == sinkAsset || *sinkAsset == *requiredAsset {
		return nil
	}
	return BadSinkError{
		Reason: ReceivesWrongAsset,
		Sink:   sink,
	}
}
