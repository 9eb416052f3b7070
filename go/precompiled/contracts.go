// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package precompiled implements the native contracts reachable from EVM
// bytecode at fixed low addresses. All functions are stateless and safe for
// concurrent use. Failures caused by the input are reported as an empty
// result, never as a panic or an error.
package precompiled

import (
	"github.com/Fantom-foundation/Floria/go/tosca"
)

// Contract is the byte-in/byte-out entry point of a precompiled contract.
type Contract func(input []byte) []byte

var contracts = map[tosca.Address]Contract{
	NewAddress(0x01): runEcRecover,
	NewAddress(0x02): runSha256,
	NewAddress(0x03): runRipemd160,
	NewAddress(0x04): runIdentity,
	NewAddress(0x05): runModExp,
	NewAddress(0x09): Blake2FCompress,
}

// NewAddress creates the address with the given low-order byte and zeros in
// every other position.
func NewAddress(in byte) tosca.Address {
	var res tosca.Address
	res[len(res)-1] = in
	return res
}

// Lookup obtains the precompiled contract located at the given address.
func Lookup(address tosca.Address) (Contract, bool) {
	contract, found := contracts[address]
	return contract, found
}

// IsPrecompiled returns true if a native contract is located at the given address.
func IsPrecompiled(address tosca.Address) bool {
	_, found := contracts[address]
	return found
}

// Run executes the precompiled contract at the given address. The second
// result is false if there is no such contract.
func Run(address tosca.Address, input []byte) ([]byte, bool) {
	contract, found := Lookup(address)
	if !found {
		return nil, false
	}
	return contract(input), true
}

func runSha256(input []byte) []byte {
	hash := Sha256(input)
	return hash[:]
}

func runRipemd160(input []byte) []byte {
	hash := Ripemd160(input)
	return hash[:]
}

func runIdentity(input []byte) []byte {
	return append([]byte{}, input...)
}
