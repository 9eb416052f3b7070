// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package stepvm

import (
	"github.com/Fantom-foundation/Floria/go/tosca"
	"github.com/holiman/uint256"
)

// maxMemorySize bounds the memory of a single frame.
const maxMemorySize = 1 << 24

type memory struct {
	store []byte
	cost  tosca.Gas
}

func sizeInWords(size uint64) uint64 {
	return (size + 31) / 32
}

func memoryCost(size uint64) tosca.Gas {
	words := sizeInWords(size)
	return tosca.Gas(words*words/512 + 3*words)
}

// expand grows the memory to cover the given range, charging the expansion
// costs to the given state. Empty ranges never expand the memory.
func (m *memory) expand(offset, size uint64, s *State) error {
	if size == 0 {
		return nil
	}
	needed := offset + size
	if needed < offset || needed > maxMemorySize {
		return errMemoryLimitExceeded
	}
	if uint64(len(m.store)) >= needed {
		return nil
	}
	needed = sizeInWords(needed) * 32
	cost := memoryCost(needed)
	if err := s.useGas(cost - m.cost); err != nil {
		return err
	}
	m.cost = cost
	m.store = append(m.store, make([]byte, needed-uint64(len(m.store)))...)
	return nil
}

func (m *memory) length() uint64 {
	return uint64(len(m.store))
}

// slice returns a view of the given range after expanding the memory.
func (m *memory) slice(offset, size *uint256.Int, s *State) ([]byte, error) {
	if size.IsZero() {
		return nil, nil
	}
	if !offset.IsUint64() || !size.IsUint64() {
		return nil, errMemoryLimitExceeded
	}
	start, length := offset.Uint64(), size.Uint64()
	if err := m.expand(start, length, s); err != nil {
		return nil, err
	}
	return m.store[start : start+length], nil
}

func (m *memory) setWord(offset *uint256.Int, value *uint256.Int, s *State) error {
	target, err := m.slice(offset, uint256.NewInt(32), s)
	if err != nil {
		return err
	}
	value.WriteToSlice(target)
	return nil
}

func (m *memory) setByte(offset *uint256.Int, value byte, s *State) error {
	target, err := m.slice(offset, uint256.NewInt(1), s)
	if err != nil {
		return err
	}
	target[0] = value
	return nil
}

// copyPadded writes data into the given memory range, filling the rest of
// the range with zeros.
func (m *memory) copyPadded(offset, size *uint256.Int, data []byte, s *State) error {
	target, err := m.slice(offset, size, s)
	if err != nil {
		return err
	}
	n := copy(target, data)
	clear(target[n:])
	return nil
}
