// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk tank store
//
// maintain a LevelDB database of packed tank data in key->value form
//
// Notes:
// 1. each entry kind has a single byte prefix (to spread the keys in LevelDB)
// 2. ++      = concatenation of byte data
// 3. tank id = big endian uint64 (8 bytes)
//
// Tanks:
//
//   T ++ tank id               - tank schematic
//                                data: packed schematic
//   B ++ tank id               - tank reserve balance
//                                data: packed asset store
//
// unpacked schematics are held in a short lived memory cache in front
// of the database; the cached copy is shared, so callers treat a
// fetched schematic as read-only borrowed state
package storage
