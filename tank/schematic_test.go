// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tank_test

import (
	"testing"

	"github.com/bitmark-inc/tankd/tank"
)

// build a schematic holding the keys (0,0) (0,1) (1,0) (2,0)
func fourStateSchematic() *tank.Schematic {
	schematic := tank.NewSchematic(5)

	// inserted out of order to exercise the ordered representation
	schematic.SetRequirementState(tank.StateKey{Tap: 2, Sub: 0}, tank.RequirementState{0x22})
	schematic.SetRequirementState(tank.StateKey{Tap: 0, Sub: 1}, tank.RequirementState{0x01})
	schematic.SetRequirementState(tank.StateKey{Tap: 1, Sub: 0}, tank.RequirementState{0x10})
	schematic.SetRequirementState(tank.StateKey{Tap: 0, Sub: 0}, tank.RequirementState{0x00})
	return schematic
}

func checkKeys(t *testing.T, schematic *tank.Schematic, expected []tank.StateKey) {
	t.Helper()
	entries := schematic.RequirementStates()
	if len(entries) != len(expected) {
		t.Fatalf("have %d state entries  expected: %d", len(entries), len(expected))
	}
	for i, entry := range entries {
		if 0 != entry.Key.Compare(expected[i]) {
			t.Errorf("%d: key: %v  expected: %v", i, entry.Key, expected[i])
		}
	}
}

func TestRequirementStateOrdering(t *testing.T) {

	schematic := fourStateSchematic()
	checkKeys(t, schematic, []tank.StateKey{
		{Tap: 0, Sub: 0},
		{Tap: 0, Sub: 1},
		{Tap: 1, Sub: 0},
		{Tap: 2, Sub: 0},
	})

	state, ok := schematic.RequirementState(tank.StateKey{Tap: 1, Sub: 0})
	if !ok || 1 != len(state) || 0x10 != state[0] {
		t.Errorf("state lookup -> %x, %v  expected: 10, true", state, ok)
	}

	if _, ok = schematic.RequirementState(tank.StateKey{Tap: 1, Sub: 1}); ok {
		t.Errorf("state lookup found a missing key")
	}

	// overwrite keeps a single entry per key
	schematic.SetRequirementState(tank.StateKey{Tap: 1, Sub: 0}, tank.RequirementState{0xff})
	state, _ = schematic.RequirementState(tank.StateKey{Tap: 1, Sub: 0})
	if 1 != len(state) || 0xff != state[0] {
		t.Errorf("state after overwrite -> %x  expected: ff", state)
	}
	if 4 != len(schematic.RequirementStates()) {
		t.Errorf("overwrite duplicated an entry")
	}
}

func TestClearTapState(t *testing.T) {

	schematic := fourStateSchematic()

	// drop both of tap 0's entries, leave taps 1 and 2 untouched
	schematic.ClearTapState(0)
	checkKeys(t, schematic, []tank.StateKey{
		{Tap: 1, Sub: 0},
		{Tap: 2, Sub: 0},
	})

	// clearing again is a no-op
	schematic.ClearTapState(0)
	checkKeys(t, schematic, []tank.StateKey{
		{Tap: 1, Sub: 0},
		{Tap: 2, Sub: 0},
	})

	// middle tap: removal stays contiguous
	schematic.ClearTapState(1)
	checkKeys(t, schematic, []tank.StateKey{
		{Tap: 2, Sub: 0},
	})

	schematic.ClearTapState(2)
	checkKeys(t, schematic, []tank.StateKey{})
}

func TestAttachmentAccess(t *testing.T) {

	schematic := tank.NewSchematic(5)
	schematic.Attachments[4] = tank.TapOpener{TapToOpen: 1, AssetType: 5}
	schematic.Attachments[2] = tank.SourceRestrictor{Destination: tank.SameTank{}}

	if indexes := schematic.AttachmentIndexes(); 2 != len(indexes) || 2 != indexes[0] || 4 != indexes[1] {
		t.Errorf("attachment indexes -> %v  expected: [2 4]", indexes)
	}

	attachment, ok := schematic.Attachment(4)
	if !ok {
		t.Fatalf("attachment 4 missing")
	}
	if name, _ := tank.AttachmentName(attachment); "TapOpener" != name {
		t.Errorf("attachment 4 -> %s  expected: TapOpener", name)
	}

	if _, ok = schematic.Attachment(3); ok {
		t.Errorf("attachment 3 should not exist")
	}
}
