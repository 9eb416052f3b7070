// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package state provides the in-memory world state and sub-state shared by
// all frames of a call tree. Both are journaled: every mutation records an
// undo operation so that a failed frame can be reverted to a snapshot.
package state

import (
	"bytes"
	"fmt"

	"github.com/Fantom-foundation/Floria/go/tosca"
	"golang.org/x/exp/maps"
)

// Account is the state of a single address. Absent storage keys are zero.
type Account struct {
	Nonce   uint64
	Balance tosca.Value
	Storage Storage
	Code    tosca.Code
}

func (a *Account) Equal(other *Account) bool {
	return a.Balance == other.Balance &&
		a.Nonce == other.Nonce &&
		bytes.Equal(a.Code, other.Code) &&
		a.Storage.Equal(other.Storage)
}

func (a *Account) Clone() *Account {
	return &Account{
		Nonce:   a.Nonce,
		Balance: a.Balance,
		Storage: a.Storage.Clone(),
		Code:    bytes.Clone(a.Code),
	}
}

// Diff lists human readable differences between two accounts, each entry
// prefixed by the given string.
func (a *Account) Diff(prefix string, other *Account) []string {
	var res []string
	if a.Balance != other.Balance {
		res = append(res, fmt.Sprintf("different balance: %v != %v", a.Balance, other.Balance))
	}
	if a.Nonce != other.Nonce {
		res = append(res, fmt.Sprintf("different nonce: %v != %v", a.Nonce, other.Nonce))
	}
	if !bytes.Equal(a.Code, other.Code) {
		res = append(res, fmt.Sprintf("different code: 0x%x != 0x%x", a.Code, other.Code))
	}
	res = append(res, a.Storage.Diff("Storage/", other.Storage)...)
	for i, diff := range res {
		res[i] = prefix + diff
	}
	return res
}

// Storage maps keys to non-zero words. Zero values may be present but are
// treated as absent.
type Storage map[tosca.Key]tosca.Word

func (s Storage) Equal(other Storage) bool {
	return equalMapsIgnoringZero(s, other, func(a, b tosca.Word) bool {
		return a == b
	})
}

func (s Storage) Clone() Storage {
	if s == nil {
		return nil
	}
	return maps.Clone(s)
}

func (s Storage) Diff(prefix string, other Storage) []string {
	var diffs []string
	check := func(key tosca.Key) {
		if a, b := s[key], other[key]; a != b {
			diffs = append(diffs, fmt.Sprintf("%sdifferent value for key %v: %v != %v", prefix, key, a, b))
		}
	}
	for key := range s {
		check(key)
	}
	for key := range other {
		if _, overlap := s[key]; !overlap {
			check(key)
		}
	}
	return diffs
}

func equalMapsIgnoringZero[K comparable, V any](a, b map[K]V, equal func(V, V) bool) bool {
	for k, v := range a {
		if !equal(v, b[k]) {
			return false
		}
	}
	for k, v := range b {
		if !equal(v, a[k]) {
			return false
		}
	}
	return true
}
