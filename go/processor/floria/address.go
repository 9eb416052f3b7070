// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package floria

import (
	"github.com/Fantom-foundation/Floria/go/precompiled"
	"github.com/Fantom-foundation/Floria/go/tosca"
	"github.com/ethereum/go-ethereum/rlp"
)

// CreateAddress derives the address of a contract created by CREATE as the
// last 20 bytes of keccak256(rlp([sender, nonce])).
func CreateAddress(sender tosca.Address, nonce uint64) tosca.Address {
	data, err := rlp.EncodeToBytes([]any{sender, nonce})
	if err != nil {
		// neither byte arrays nor integers can fail to encode
		panic(err)
	}
	hash := precompiled.Keccak256(data)
	return tosca.Address(hash[12:])
}

// Create2Address derives the address of a contract created by CREATE2 as
// the last 20 bytes of keccak256(0xff ++ sender ++ salt ++ keccak256(initCode)).
func Create2Address(sender tosca.Address, salt tosca.Hash, initCode tosca.Code) tosca.Address {
	codeHash := precompiled.Keccak256(initCode)
	data := make([]byte, 0, 1+len(sender)+len(salt)+len(codeHash))
	data = append(data, 0xff)
	data = append(data, sender[:]...)
	data = append(data, salt[:]...)
	data = append(data, codeHash[:]...)
	hash := precompiled.Keccak256(data)
	return tosca.Address(hash[12:])
}
