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

	"github.com/Fantom-foundation/Floria/go/precompiled"
	"github.com/Fantom-foundation/Floria/go/tosca"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// WorldState maps addresses to accounts and tracks the addresses touched
// during execution. It is not safe for concurrent use; a single instance is
// shared by pointer among all frames of a call tree.
type WorldState struct {
	journal
	accounts map[tosca.Address]*Account
	original map[tosca.Address]Storage
	touched  map[tosca.Address]struct{}
}

// NewWorldState creates a world state holding copies of the given accounts.
// The storage of these accounts is the reference for the original values
// used when classifying storage updates.
func NewWorldState(accounts map[tosca.Address]*Account) *WorldState {
	res := &WorldState{
		accounts: make(map[tosca.Address]*Account, len(accounts)),
		original: make(map[tosca.Address]Storage, len(accounts)),
		touched:  map[tosca.Address]struct{}{},
	}
	for address, account := range accounts {
		res.accounts[address] = account.Clone()
		res.original[address] = account.Storage.Clone()
	}
	return res
}

// UpsertAccount creates the account at the given address or overwrites it
// wholesale. The given storage also becomes the committed storage of the
// account used when classifying later storage updates.
func (s *WorldState) UpsertAccount(
	address tosca.Address,
	nonce uint64,
	balance tosca.Value,
	storage Storage,
	code tosca.Code,
) {
	previous, found := s.accounts[address]
	previousOriginal, hadOriginal := s.original[address]
	s.accounts[address] = &Account{
		Nonce:   nonce,
		Balance: balance,
		Storage: storage.Clone(),
		Code:    bytes.Clone(code),
	}
	s.original[address] = storage.Clone()
	s.record(func() {
		if found {
			s.accounts[address] = previous
		} else {
			delete(s.accounts, address)
		}
		if hadOriginal {
			s.original[address] = previousOriginal
		} else {
			delete(s.original, address)
		}
	})
}

// GetAccount returns the account stored at the given address. The result
// is owned by the world state and must not be modified.
func (s *WorldState) GetAccount(address tosca.Address) (*Account, bool) {
	account, found := s.accounts[address]
	return account, found
}

func (s *WorldState) AccountExists(address tosca.Address) bool {
	_, found := s.accounts[address]
	return found
}

// Accounts lists all addresses with an account in ascending order.
func (s *WorldState) Accounts() []tosca.Address {
	return sortedAddresses(maps.Keys(s.accounts))
}

func (s *WorldState) GetBalance(address tosca.Address) tosca.Value {
	if account, found := s.accounts[address]; found {
		return account.Balance
	}
	return tosca.Value{}
}

func (s *WorldState) SetBalance(address tosca.Address, value tosca.Value) {
	account := s.getOrCreate(address)
	previous := account.Balance
	account.Balance = value
	s.record(func() { account.Balance = previous })
}

func (s *WorldState) GetNonce(address tosca.Address) uint64 {
	if account, found := s.accounts[address]; found {
		return account.Nonce
	}
	return 0
}

func (s *WorldState) SetNonce(address tosca.Address, nonce uint64) {
	account := s.getOrCreate(address)
	previous := account.Nonce
	account.Nonce = nonce
	s.record(func() { account.Nonce = previous })
}

func (s *WorldState) GetCode(address tosca.Address) tosca.Code {
	if account, found := s.accounts[address]; found {
		return account.Code
	}
	return nil
}

// GetCodeHash returns the Keccak-256 hash of the account's code, or the
// zero hash if there is no such account.
func (s *WorldState) GetCodeHash(address tosca.Address) tosca.Hash {
	account, found := s.accounts[address]
	if !found {
		return tosca.Hash{}
	}
	if len(account.Code) == 0 {
		return precompiled.EmptyCodeHash
	}
	return precompiled.Keccak256(account.Code)
}

func (s *WorldState) SetCode(address tosca.Address, code tosca.Code) {
	account := s.getOrCreate(address)
	previous := account.Code
	account.Code = bytes.Clone(code)
	s.record(func() { account.Code = previous })
}

func (s *WorldState) GetStorage(address tosca.Address, key tosca.Key) tosca.Word {
	if account, found := s.accounts[address]; found {
		return account.Storage[key]
	}
	return tosca.Word{}
}

// GetCommittedStorage returns the value a storage slot had when the world
// state was created or its account was last upserted.
func (s *WorldState) GetCommittedStorage(address tosca.Address, key tosca.Key) tosca.Word {
	return s.original[address][key]
}

// SetStorage updates a storage slot and classifies the update relative to
// the committed and current value of the slot.
func (s *WorldState) SetStorage(address tosca.Address, key tosca.Key, value tosca.Word) tosca.StorageStatus {
	account := s.getOrCreate(address)
	if account.Storage == nil {
		account.Storage = Storage{}
	}
	current, present := account.Storage[key]
	if value == (tosca.Word{}) {
		delete(account.Storage, key)
	} else {
		account.Storage[key] = value
	}
	storage := account.Storage
	s.record(func() {
		if present {
			storage[key] = current
		} else {
			delete(storage, key)
		}
	})
	return tosca.GetStorageStatus(s.GetCommittedStorage(address, key), current, value)
}

// Touch marks the given address as touched. Touches are not journaled.
func (s *WorldState) Touch(address tosca.Address) {
	s.touched[address] = struct{}{}
}

func (s *WorldState) IsTouched(address tosca.Address) bool {
	_, found := s.touched[address]
	return found
}

// Touched lists all touched addresses in ascending order.
func (s *WorldState) Touched() []tosca.Address {
	return sortedAddresses(maps.Keys(s.touched))
}

// Equal compares the accounts of two world states, ignoring touched
// addresses and journals.
func (s *WorldState) Equal(other *WorldState) bool {
	return len(s.Diff(other)) == 0
}

// Diff lists the differences between the accounts of two world states.
// Missing accounts are compared as empty accounts.
func (s *WorldState) Diff(other *WorldState) []string {
	var res []string
	check := func(address tosca.Address) {
		a, b := s.accounts[address], other.accounts[address]
		if a == nil {
			a = &Account{}
		}
		if b == nil {
			b = &Account{}
		}
		res = append(res, a.Diff(address.String()+"/", b)...)
	}
	for address := range s.accounts {
		check(address)
	}
	for address := range other.accounts {
		if _, overlap := s.accounts[address]; !overlap {
			check(address)
		}
	}
	return res
}

func (s *WorldState) getOrCreate(address tosca.Address) *Account {
	if account, found := s.accounts[address]; found {
		return account
	}
	account := &Account{}
	s.accounts[address] = account
	s.record(func() { delete(s.accounts, address) })
	return account
}

func sortedAddresses(addresses []tosca.Address) []tosca.Address {
	slices.SortFunc(addresses, func(a, b tosca.Address) int {
		return bytes.Compare(a[:], b[:])
	})
	return addresses
}
