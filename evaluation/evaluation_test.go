// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package evaluation_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/tankd/asset"
	"github.com/bitmark-inc/tankd/evaluation"
	"github.com/bitmark-inc/tankd/fault"
	"github.com/bitmark-inc/tankd/fixtures"
	"github.com/bitmark-inc/tankd/routing"
	"github.com/bitmark-inc/tankd/storage"
	"github.com/bitmark-inc/tankd/tank"
	"github.com/bitmark-inc/tankd/tankrecord"
)

const databaseDirectory = "testing/tankd-evaluation.leveldb"

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()

	err := storage.Initialise(databaseDirectory)
	if nil != err {
		fixtures.TeardownTestLogger()
		os.Exit(1)
	}

	rc := m.Run()

	storage.Finalise()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

// a schematic whose single attachment meters the tank's own asset out
// to an account
func payoutSchematic(assetType asset.AssetId) *tank.Schematic {
	schematic := tank.NewSchematic(assetType)
	schematic.Attachments[0] = tank.FlowMeter{
		AssetType:   assetType,
		Destination: tank.AccountSink{Account: 21},
	}
	return schematic
}

func createTank(t *testing.T, id tank.TankId, schematic *tank.Schematic) {
	t.Helper()
	record := &tankrecord.TankCreate{
		Id:             id,
		DepositAccount: 21,
		Schematic:      schematic,
	}
	if err := evaluation.Evaluate(record); nil != err {
		t.Fatalf("evaluate create: %s", err)
	}
	if err := evaluation.Apply(record, nil); nil != err {
		t.Fatalf("apply create: %s", err)
	}
}

func TestCreate(t *testing.T) {

	const id = tank.TankId(101)
	createTank(t, id, payoutSchematic(5))
	defer storage.DeleteTank(id)
	defer storage.DeleteBalance(id)

	if !storage.HasTank(id) {
		t.Fatalf("tank %d not stored", id)
	}

	// a new tank starts empty
	balance := storage.GetBalance(id)
	if nil == balance {
		t.Fatalf("tank %d has no balance record", id)
	}
	if !balance.IsEmpty() || 5 != balance.AssetType() {
		t.Fatalf("balance -> %s  expected: 0[asset:5]", balance.StoredAsset())
	}
	balance.Release()

	// the id is now taken
	err := evaluation.Evaluate(&tankrecord.TankCreate{
		Id:        id,
		Schematic: payoutSchematic(5),
	})
	if fault.ErrTankAlreadyExists != err {
		t.Fatalf("duplicate create -> %v  expected: %v", err, fault.ErrTankAlreadyExists)
	}
}

func TestCreateFunded(t *testing.T) {

	const id = tank.TankId(102)
	record := &tankrecord.TankCreate{
		Id:        id,
		Schematic: payoutSchematic(5),
	}
	if err := evaluation.Evaluate(record); nil != err {
		t.Fatalf("evaluate error: %s", err)
	}

	funds := asset.UncheckedCreate(asset.Asset{Amount: 250, AssetId: 5})
	if err := evaluation.Apply(record, funds); nil != err {
		t.Fatalf("apply error: %s", err)
	}
	defer storage.DeleteTank(id)
	defer storage.DeleteBalance(id)

	// the funding moved in full
	if !funds.IsEmpty() {
		t.Fatalf("funds after create -> %s  expected: empty", funds.StoredAsset())
	}
	funds.Release()

	balance := storage.GetBalance(id)
	if nil == balance || 250 != balance.Amount() {
		t.Fatalf("balance after funded create -> %v  expected: 250", balance)
	}
	balance.Release()

	// a funding in the wrong asset is rejected before any state change
	wrong := asset.UncheckedCreate(asset.Asset{Amount: 10, AssetId: 9})
	err := evaluation.Apply(&tankrecord.TankCreate{
		Id:        103,
		Schematic: payoutSchematic(5),
	}, wrong)
	if fault.ErrWrongAssetType != err {
		t.Fatalf("wrong asset create -> %v  expected: %v", err, fault.ErrWrongAssetType)
	}
	if storage.HasTank(103) {
		t.Fatalf("rejected create left a tank behind")
	}
	wrong.UncheckedRelease()
}

func TestCreateBadSchematic(t *testing.T) {

	// attachment 0 redirects to an attachment that does not exist
	schematic := tank.NewSchematic(5)
	schematic.Attachments[0] = tank.FlowMeter{
		AssetType: 5,
		Destination: tank.AttachmentSink{
			Attachment: tank.AttachmentId{Index: 7},
		},
	}

	err := evaluation.Evaluate(&tankrecord.TankCreate{Id: 104, Schematic: schematic})
	if !routing.IsNonexistent(err) {
		t.Fatalf("dangling schematic -> %v  expected: nonexistent attachment", err)
	}

	// two attachments redirecting into each other
	cyclic := tank.NewSchematic(5)
	cyclic.Attachments[0] = tank.FlowMeter{
		AssetType:   5,
		Destination: tank.AttachmentSink{Attachment: tank.AttachmentId{Index: 1}},
	}
	cyclic.Attachments[1] = tank.FlowMeter{
		AssetType:   5,
		Destination: tank.AttachmentSink{Attachment: tank.AttachmentId{Index: 0}},
	}

	err = evaluation.Evaluate(&tankrecord.TankCreate{Id: 104, Schematic: cyclic})
	if fault.ErrExceededMaximumChainLength != err {
		t.Fatalf("cyclic schematic -> %v  expected: %v", err, fault.ErrExceededMaximumChainLength)
	}
}

func TestDeposit(t *testing.T) {

	const id = tank.TankId(105)
	createTank(t, id, payoutSchematic(5))
	defer storage.DeleteTank(id)
	defer storage.DeleteBalance(id)

	funds := asset.UncheckedCreate(asset.Asset{Amount: 1000, AssetId: 5})
	record := &tankrecord.TankDeposit{
		Id:          id,
		Amount:      asset.Asset{Amount: 300, AssetId: 5},
		Destination: tank.SameTank{},
	}

	if err := evaluation.Evaluate(record); nil != err {
		t.Fatalf("evaluate error: %s", err)
	}
	if err := evaluation.Apply(record, funds); nil != err {
		t.Fatalf("apply error: %s", err)
	}

	// value is conserved: what left the funds is what the tank holds
	if 700 != funds.Amount() {
		t.Fatalf("funds after deposit -> %d  expected: 700", funds.Amount())
	}
	balance := storage.GetBalance(id)
	if nil == balance || 300 != balance.Amount() {
		t.Fatalf("balance after deposit -> %v  expected: 300", balance)
	}
	balance.Release()

	// overdrawing the funds store fails without state change
	big := &tankrecord.TankDeposit{
		Id:          id,
		Amount:      asset.Asset{Amount: 5000, AssetId: 5},
		Destination: tank.SameTank{},
	}
	if err := evaluation.Apply(big, funds); fault.ErrInsufficientValue != err {
		t.Fatalf("overdrawn deposit -> %v  expected: %v", err, fault.ErrInsufficientValue)
	}
	if 700 != funds.Amount() {
		t.Fatalf("funds after rejected deposit -> %d  expected: 700", funds.Amount())
	}
	funds.UncheckedRelease()
}

func TestDepositWrongAsset(t *testing.T) {

	const id = tank.TankId(106)
	createTank(t, id, payoutSchematic(5))
	defer storage.DeleteTank(id)
	defer storage.DeleteBalance(id)

	err := evaluation.Evaluate(&tankrecord.TankDeposit{
		Id:          id,
		Amount:      asset.Asset{Amount: 10, AssetId: 6},
		Destination: tank.SameTank{},
	})
	if !routing.IsBadSink(err) {
		t.Fatalf("wrong asset deposit -> %v  expected: bad sink", err)
	}
}

func TestDepositDestinations(t *testing.T) {

	const id = tank.TankId(107)

	// attachment 0 meters deposits back into the tank itself
	schematic := tank.NewSchematic(5)
	schematic.Attachments[0] = tank.FlowMeter{AssetType: 5, Destination: tank.SameTank{}}
	createTank(t, id, schematic)
	defer storage.DeleteTank(id)
	defer storage.DeleteBalance(id)

	funds := asset.UncheckedCreate(asset.Asset{Amount: 100, AssetId: 5})
	record := &tankrecord.TankDeposit{
		Id:     id,
		Amount: asset.Asset{Amount: 100, AssetId: 5},
		Destination: tank.AttachmentSink{
			Attachment: tank.AttachmentId{Index: 0},
		},
	}
	if err := evaluation.Evaluate(record); nil != err {
		t.Fatalf("evaluate error: %s", err)
	}
	if err := evaluation.Apply(record, funds); nil != err {
		t.Fatalf("apply error: %s", err)
	}
	funds.Release()

	balance := storage.GetBalance(id)
	if nil == balance || 100 != balance.Amount() {
		t.Fatalf("balance after routed deposit -> %v  expected: 100", balance)
	}
	balance.Release()

	// account destinations are paid by the outer ledger, not a deposit
	err := evaluation.Evaluate(&tankrecord.TankDeposit{
		Id:          id,
		Amount:      asset.Asset{Amount: 10, AssetId: 5},
		Destination: tank.AccountSink{Account: 21},
	})
	if fault.ErrInvalidDepositDestination != err {
		t.Fatalf("account deposit -> %v  expected: %v", err, fault.ErrInvalidDepositDestination)
	}

	// a deposit to a missing tank
	err = evaluation.Evaluate(&tankrecord.TankDeposit{
		Id:          999,
		Amount:      asset.Asset{Amount: 10, AssetId: 5},
		Destination: tank.SameTank{},
	})
	if fault.ErrTankDoesNotExist != err {
		t.Fatalf("deposit to missing tank -> %v  expected: %v", err, fault.ErrTankDoesNotExist)
	}
}

func TestUpdate(t *testing.T) {

	const id = tank.TankId(108)

	old := payoutSchematic(5)
	old.SetRequirementState(tank.StateKey{Tap: 0, Sub: 0}, tank.RequirementState{0x01})
	old.SetRequirementState(tank.StateKey{Tap: 1, Sub: 0}, tank.RequirementState{0x02})
	createTank(t, id, old)
	defer storage.DeleteTank(id)
	defer storage.DeleteBalance(id)

	record := &tankrecord.TankUpdate{
		Id:        id,
		Schematic: payoutSchematic(5),
		ResetTaps: []tank.TapId{0},
	}
	if err := evaluation.Evaluate(record); nil != err {
		t.Fatalf("evaluate error: %s", err)
	}
	if err := evaluation.Apply(record, nil); nil != err {
		t.Fatalf("apply error: %s", err)
	}

	// tap 1's accumulated state survives the update, tap 0's is dropped
	updated := storage.GetTank(id)
	if nil == updated {
		t.Fatalf("tank %d missing after update", id)
	}
	states := updated.RequirementStates()
	if 1 != len(states) || 1 != states[0].Key.Tap {
		t.Fatalf("states after update -> %v  expected: tap 1 only", states)
	}

	// updating a missing tank
	err := evaluation.Evaluate(&tankrecord.TankUpdate{
		Id:        999,
		Schematic: payoutSchematic(5),
	})
	if fault.ErrTankDoesNotExist != err {
		t.Fatalf("update missing tank -> %v  expected: %v", err, fault.ErrTankDoesNotExist)
	}
}

func TestDelete(t *testing.T) {

	const id = tank.TankId(109)
	createTank(t, id, payoutSchematic(5))

	// fill the tank
	funds := asset.UncheckedCreate(asset.Asset{Amount: 300, AssetId: 5})
	err := evaluation.Apply(&tankrecord.TankDeposit{
		Id:          id,
		Amount:      asset.Asset{Amount: 300, AssetId: 5},
		Destination: tank.SameTank{},
	}, funds)
	if nil != err {
		t.Fatalf("deposit error: %s", err)
	}
	funds.Release()

	record := &tankrecord.TankDelete{Id: id}
	if err = evaluation.Evaluate(record); nil != err {
		t.Fatalf("evaluate error: %s", err)
	}

	// a non-empty tank cannot simply vanish
	if err = evaluation.Apply(record, nil); fault.ErrTankIsNotEmpty != err {
		t.Fatalf("unrefunded delete -> %v  expected: %v", err, fault.ErrTankIsNotEmpty)
	}
	if !storage.HasTank(id) {
		t.Fatalf("rejected delete removed the tank")
	}

	// with a refund store the reserve is preserved through deletion
	refund := asset.NewStore(5)
	if err = evaluation.Apply(record, refund); nil != err {
		t.Fatalf("apply error: %s", err)
	}
	if 300 != refund.Amount() {
		t.Fatalf("refund -> %d  expected: 300", refund.Amount())
	}
	refund.UncheckedRelease()

	if storage.HasTank(id) || nil != storage.GetBalance(id) {
		t.Fatalf("tank %d still present after delete", id)
	}

	// deleting a missing tank
	if err = evaluation.Evaluate(record); fault.ErrTankDoesNotExist != err {
		t.Fatalf("delete missing tank -> %v  expected: %v", err, fault.ErrTankDoesNotExist)
	}
}

func TestApplyStorageUnavailable(t *testing.T) {

	const id = tank.TankId(110)
	createTank(t, id, payoutSchematic(5))
	defer func() {
		storage.DeleteBalance(id)
		storage.DeleteTank(id)
	}()

	// take the database away: every apply must now reject before any
	// value leaves the caller's store
	storage.Finalise()
	defer func() {
		if err := storage.Initialise(databaseDirectory); nil != err {
			t.Errorf("reopen storage: %s", err)
		}
	}()

	funds := asset.UncheckedCreate(asset.Asset{Amount: 500, AssetId: 5})

	err := evaluation.Apply(&tankrecord.TankCreate{
		Id:        111,
		Schematic: payoutSchematic(5),
	}, funds)
	if fault.ErrNotInitialised != err {
		t.Fatalf("create -> %v  expected: %v", err, fault.ErrNotInitialised)
	}
	if 500 != funds.Amount() {
		t.Fatalf("funds after rejected create -> %d  expected: 500", funds.Amount())
	}

	err = evaluation.Apply(&tankrecord.TankDeposit{
		Id:          id,
		Amount:      asset.Asset{Amount: 300, AssetId: 5},
		Destination: tank.SameTank{},
	}, funds)
	if fault.ErrTankDoesNotExist != err {
		t.Fatalf("deposit -> %v  expected: %v", err, fault.ErrTankDoesNotExist)
	}
	if 500 != funds.Amount() {
		t.Fatalf("funds after rejected deposit -> %d  expected: 500", funds.Amount())
	}

	err = evaluation.Apply(&tankrecord.TankDelete{Id: id}, funds)
	if fault.ErrNotInitialised != err {
		t.Fatalf("delete -> %v  expected: %v", err, fault.ErrNotInitialised)
	}
	if 500 != funds.Amount() {
		t.Fatalf("funds after rejected delete -> %d  expected: 500", funds.Amount())
	}

	funds.UncheckedRelease()
}

func TestInvalidRecord(t *testing.T) {

	if err := evaluation.Evaluate(nil); fault.ErrInvalidRecord != err {
		t.Fatalf("evaluate nil -> %v  expected: %v", err, fault.ErrInvalidRecord)
	}
	if err := evaluation.Apply(nil, nil); fault.ErrInvalidRecord != err {
		t.Fatalf("apply nil -> %v  expected: %v", err, fault.ErrInvalidRecord)
	}
}
