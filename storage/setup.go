// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tankd/fault"
)

// key prefixes
const (
	tankPrefix    = byte('T')
	balancePrefix = byte('B')
)

// schematic cache lifetimes
const (
	defaultTimeout    = 1 * time.Minute
	defaultExpiration = 2 * time.Minute
)

// holds the database handle
var globalData struct {
	sync.RWMutex
	log        *logger.L
	db         *leveldb.DB
	schematics *cache.Cache
}

// Initialise - open up the database connection
//
// this must be called before any tank is accessed
func Initialise(database string) error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil != globalData.db {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("storage")
	globalData.log.Info("starting…")

	db, err := leveldb.OpenFile(database, nil)
	if nil != err {
		return err
	}

	globalData.db = db
	globalData.schematics = cache.New(defaultTimeout, defaultExpiration)
	return nil
}

// Finalise - close the database connection
func Finalise() {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.db {
		return
	}

	globalData.log.Info("shutting down…")
	globalData.db.Close()
	globalData.db = nil
	globalData.schematics = nil
	globalData.log.Flush()
	globalData.log = nil
}

// build a prefixed key for a tank id
func tankKey(prefix byte, tankId uint64) []byte {
	key := make([]byte, 9)
	key[0] = prefix
	key[1] = byte(tankId >> 56)
	key[2] = byte(tankId >> 48)
	key[3] = byte(tankId >> 40)
	key[4] = byte(tankId >> 32)
	key[5] = byte(tankId >> 24)
	key[6] = byte(tankId >> 16)
	key[7] = byte(tankId >> 8)
	key[8] = byte(tankId)
	return key
}
