// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"strconv"

	cache "github.com/patrickmn/go-cache"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/tankd/fault"
	"github.com/bitmark-inc/tankd/tank"
)

// PutTank - store a tank schematic
func PutTank(tankId tank.TankId, schematic *tank.Schematic) error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.db {
		return fault.ErrNotInitialised
	}

	packed, err := schematic.Pack()
	if nil != err {
		return err
	}

	err = globalData.db.Put(tankKey(tankPrefix, uint64(tankId)), packed, nil)
	if nil != err {
		return err
	}
	globalData.schematics.Set(cacheKey(tankId), schematic, cache.DefaultExpiration)
	globalData.log.Debugf("put tank %d: %d bytes", tankId, len(packed))
	return nil
}

// GetTank - fetch a tank schematic
//
// returns nil if the tank does not exist; the result is shared with
// the cache and must be treated as read-only borrowed state
//
// this signature matches the routing lookup capability so the
// database can be handed to a resolver directly:
//
//	lookup := routing.Lookup{CurrentTank: s, GetTank: storage.GetTank}
func GetTank(tankId tank.TankId) *tank.Schematic {
	globalData.RLock()
	defer globalData.RUnlock()

	if nil == globalData.db {
		return nil
	}

	if cached, ok := globalData.schematics.Get(cacheKey(tankId)); ok {
		return cached.(*tank.Schematic)
	}

	packed, err := globalData.db.Get(tankKey(tankPrefix, uint64(tankId)), nil)
	if leveldb.ErrNotFound == err {
		return nil
	}
	if nil != err {
		globalData.log.Errorf("get tank %d: %s", tankId, err)
		return nil
	}

	schematic, _, err := tank.UnpackSchematic(packed)
	if nil != err {
		globalData.log.Errorf("unpack tank %d: %s", tankId, err)
		return nil
	}
	globalData.schematics.Set(cacheKey(tankId), schematic, cache.DefaultExpiration)
	return schematic
}

// HasTank - check a tank exists without unpacking it
func HasTank(tankId tank.TankId) bool {
	globalData.RLock()
	defer globalData.RUnlock()

	if nil == globalData.db {
		return false
	}
	if _, ok := globalData.schematics.Get(cacheKey(tankId)); ok {
		return true
	}
	has, err := globalData.db.Has(tankKey(tankPrefix, uint64(tankId)), nil)
	return nil == err && has
}

// DeleteTank - remove a tank schematic
func DeleteTank(tankId tank.TankId) error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.db {
		return fault.ErrNotInitialised
	}

	err := globalData.db.Delete(tankKey(tankPrefix, uint64(tankId)), nil)
	if nil != err {
		return err
	}
	globalData.schematics.Delete(cacheKey(tankId))
	globalData.log.Debugf("delete tank %d", tankId)
	return nil
}

// cache key for a tank id
func cacheKey(tankId tank.TankId) string {
	return strconv.FormatUint(uint64(tankId), 10)
}
