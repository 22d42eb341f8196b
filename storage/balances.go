// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/tankd/asset"
	"github.com/bitmark-inc/tankd/fault"
	"github.com/bitmark-inc/tankd/tank"
)

// PutBalance - write a tank's reserve to durable state
//
// packing marks the store observed: the durable copy is now the
// accountable one and the in-memory store may be released
func PutBalance(tankId tank.TankId, store *asset.Store) error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.db {
		return fault.ErrNotInitialised
	}

	packed := store.Pack()
	err := globalData.db.Put(tankKey(balancePrefix, uint64(tankId)), packed, nil)
	if nil != err {
		return err
	}
	globalData.log.Debugf("put balance %d: %s", tankId, store.StoredAsset())
	return nil
}

// GetBalance - reconstitute a tank's reserve from durable state
//
// returns nil if no balance record exists
func GetBalance(tankId tank.TankId) *asset.Store {
	globalData.RLock()
	defer globalData.RUnlock()

	if nil == globalData.db {
		return nil
	}

	packed, err := globalData.db.Get(tankKey(balancePrefix, uint64(tankId)), nil)
	if leveldb.ErrNotFound == err {
		return nil
	}
	if nil != err {
		globalData.log.Errorf("get balance %d: %s", tankId, err)
		return nil
	}

	store, _, err := asset.UnpackStore(packed)
	if nil != err {
		globalData.log.Errorf("unpack balance %d: %s", tankId, err)
		return nil
	}
	return store
}

// DeleteBalance - remove a tank's reserve record
func DeleteBalance(tankId tank.TankId) error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.db {
		return fault.ErrNotInitialised
	}

	err := globalData.db.Delete(tankKey(balancePrefix, uint64(tankId)), nil)
	if nil != err {
		return err
	}
	globalData.log.Debugf("delete balance %d", tankId)
	return nil
}
