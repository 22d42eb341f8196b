// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tank

import (
	"fmt"
)

// TankId - ledger identifier of a tank
type TankId uint64

// AccountId - ledger identifier of an account
type AccountId uint64

// TapId - index of a tap on its tank
type TapId uint64

// AttachmentId - address of an attachment on some tank
//
// a nil Tank means the tank currently being evaluated and must be
// resolved relative to context
type AttachmentId struct {
	Tank  *TankId `json:"tank,omitempty"`
	Index uint64  `json:"index"`
}

// Equal - compare two attachment addresses
func (id AttachmentId) Equal(other AttachmentId) bool {
	if id.Index != other.Index {
		return false
	}
	if nil == id.Tank || nil == other.Tank {
		return id.Tank == other.Tank
	}
	return *id.Tank == *other.Tank
}

// String - display form, e.g. "tank 7 attachment 2" or "attachment 2"
func (id AttachmentId) String() string {
	if nil == id.Tank {
		return fmt.Sprintf("attachment %d", id.Index)
	}
	return fmt.Sprintf("tank %d attachment %d", *id.Tank, id.Index)
}

// StateKey - key of one piece of tap requirement state
//
// all sub-states of one tap share the tap component so they order
// contiguously for bulk clearing
type StateKey struct {
	Tap TapId  `json:"tap"`
	Sub uint64 `json:"sub"`
}

// Compare - lexicographic (tap, sub) ordering
//
// returns -1, 0 or +1
func (key StateKey) Compare(other StateKey) int {
	switch {
	case key.Tap < other.Tap:
		return -1
	case key.Tap > other.Tap:
		return 1
	case key.Sub < other.Sub:
		return -1
	case key.Sub > other.Sub:
		return 1
	default:
		return 0
	}
}
