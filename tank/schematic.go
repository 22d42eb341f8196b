// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tank

import (
	"sort"

	"github.com/bitmark-inc/tankd/asset"
)

// RequirementState - opaque per-tap auxiliary state
//
// the content is defined by the tap requirement being tracked and is
// not interpreted by this core
type RequirementState []byte

// StateEntry - one requirement state with its key
type StateEntry struct {
	Key   StateKey         `json:"key"`
	State RequirementState `json:"state"`
}

// Schematic - the protocol definition of a tank
//
// holds the asset type the tank stores, the attachments indexed by
// their attachment number, and the per-tap requirement states; the
// states are kept ordered by (tap, sub) so one tap's entries are a
// single contiguous range
type Schematic struct {
	AssetType   asset.AssetId         `json:"assetType"`
	Attachments map[uint64]Attachment `json:"attachments"`

	states []StateEntry
}

// NewSchematic - an empty schematic for one asset type
func NewSchematic(assetType asset.AssetId) *Schematic {
	return &Schematic{
		AssetType:   assetType,
		Attachments: map[uint64]Attachment{},
	}
}

// Attachment - fetch an attachment by its index
func (schematic *Schematic) Attachment(index uint64) (Attachment, bool) {
	attachment, ok := schematic.Attachments[index]
	return attachment, ok
}

// AttachmentIndexes - all attachment indexes in increasing order
func (schematic *Schematic) AttachmentIndexes() []uint64 {
	indexes := make([]uint64, 0, len(schematic.Attachments))
	for index := range schematic.Attachments {
		indexes = append(indexes, index)
	}
	sort.Slice(indexes, func(i int, j int) bool {
		return indexes[i] < indexes[j]
	})
	return indexes
}

// SetRequirementState - store one piece of tap requirement state
//
// replaces any existing state under the same key
func (schematic *Schematic) SetRequirementState(key StateKey, state RequirementState) {
	i := schematic.searchState(key)
	if i < len(schematic.states) && 0 == schematic.states[i].Key.Compare(key) {
		schematic.states[i].State = state
		return
	}
	schematic.states = append(schematic.states, StateEntry{})
	copy(schematic.states[i+1:], schematic.states[i:])
	schematic.states[i] = StateEntry{Key: key, State: state}
}

// RequirementState - fetch one piece of tap requirement state
func (schematic *Schematic) RequirementState(key StateKey) (RequirementState, bool) {
	i := schematic.searchState(key)
	if i < len(schematic.states) && 0 == schematic.states[i].Key.Compare(key) {
		return schematic.states[i].State, true
	}
	return nil, false
}

// RequirementStates - all entries in (tap, sub) order
//
// the returned slice is shared with the schematic and must not be
// modified
func (schematic *Schematic) RequirementStates() []StateEntry {
	return schematic.states
}

// ClearTapState - drop all requirement state of one tap
//
// since entries are ordered by (tap, sub) one tap's entries form a
// contiguous range: locate the first entry of the tap and remove
// until the tap index changes; other taps are untouched and clearing
// an absent tap is a no-op
func (schematic *Schematic) ClearTapState(tap TapId) {
	first := schematic.searchState(StateKey{Tap: tap, Sub: 0})
	last := first
	for last < len(schematic.states) && schematic.states[last].Key.Tap == tap {
		last += 1
	}
	schematic.states = append(schematic.states[:first], schematic.states[last:]...)
}

// index of the first entry not below key
func (schematic *Schematic) searchState(key StateKey) int {
	return sort.Search(len(schematic.states), func(i int) bool {
		return schematic.states[i].Key.Compare(key) >= 0
	})
}
