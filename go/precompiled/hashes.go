// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package precompiled

import (
	"crypto/sha256"
	"sync"

	"github.com/Fantom-foundation/Floria/go/tosca"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

var keccakHasherPool = sync.Pool{New: func() any { return sha3.NewLegacyKeccak256() }}

type keccakHasher interface {
	Reset()
	Write(in []byte) (int, error)
	Read(out []byte) (int, error)
}

// Keccak256 computes the legacy (pre-NIST) Keccak-256 hash of the given data
// as used throughout the EVM.
func Keccak256(data []byte) tosca.Hash {
	hasher := keccakHasherPool.Get().(keccakHasher)
	hasher.Reset()
	hasher.Write(data)
	var res tosca.Hash
	hasher.Read(res[:])
	keccakHasherPool.Put(hasher)
	return res
}

// EmptyCodeHash is the Keccak-256 hash of the empty byte sequence.
var EmptyCodeHash = Keccak256(nil)

// Sha256 computes the SHA-256 hash of the given data.
func Sha256(data []byte) tosca.Hash {
	return sha256.Sum256(data)
}

// Ripemd160 computes the RIPEMD-160 digest of the given data. The 20-byte
// digest is placed in the low-order bytes of a 32-byte word.
func Ripemd160(data []byte) tosca.Word {
	hasher := ripemd160.New()
	hasher.Write(data)
	var res tosca.Word
	copy(res[12:], hasher.Sum(nil))
	return res
}
