// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package state

import (
	"bytes"

	"github.com/Fantom-foundation/Floria/go/tosca"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// SubState collects the per-transaction side effects of an execution that
// are not part of the world state: emitted logs and the sets of accessed
// accounts and storage slots. Like the world state it is journaled.
type SubState struct {
	journal
	logs     []tosca.Log
	accounts map[tosca.Address]struct{}
	slots    map[slot]struct{}
}

type slot struct {
	address tosca.Address
	key     tosca.Key
}

func NewSubState() *SubState {
	return &SubState{
		accounts: map[tosca.Address]struct{}{},
		slots:    map[slot]struct{}{},
	}
}

func (s *SubState) AddLog(log tosca.Log) {
	size := len(s.logs)
	s.logs = append(s.logs, log)
	s.record(func() { s.logs = s.logs[:size] })
}

func (s *SubState) Logs() []tosca.Log {
	return slices.Clone(s.logs)
}

// AccessAccount adds the address to the accessed set and reports whether
// it was already present.
func (s *SubState) AccessAccount(address tosca.Address) (warm bool) {
	if _, found := s.accounts[address]; found {
		return true
	}
	s.accounts[address] = struct{}{}
	s.record(func() { delete(s.accounts, address) })
	return false
}

// AccessSlot adds the slot to the accessed set and reports whether it was
// already present.
func (s *SubState) AccessSlot(address tosca.Address, key tosca.Key) (warm bool) {
	entry := slot{address, key}
	if _, found := s.slots[entry]; found {
		return true
	}
	s.slots[entry] = struct{}{}
	s.record(func() { delete(s.slots, entry) })
	return false
}

func (s *SubState) IsAccountAccessed(address tosca.Address) bool {
	_, found := s.accounts[address]
	return found
}

func (s *SubState) IsSlotAccessed(address tosca.Address, key tosca.Key) bool {
	_, found := s.slots[slot{address, key}]
	return found
}

// AccessedAccounts lists the accessed addresses in ascending order.
func (s *SubState) AccessedAccounts() []tosca.Address {
	return sortedAddresses(maps.Keys(s.accounts))
}

// AccessedSlots lists the accessed keys of the given address in ascending
// order.
func (s *SubState) AccessedSlots(address tosca.Address) []tosca.Key {
	var keys []tosca.Key
	for entry := range s.slots {
		if entry.address == address {
			keys = append(keys, entry.key)
		}
	}
	slices.SortFunc(keys, func(a, b tosca.Key) int {
		return bytes.Compare(a[:], b[:])
	})
	return keys
}
