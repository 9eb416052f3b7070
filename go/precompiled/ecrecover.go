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
	"math/big"

	"github.com/Fantom-foundation/Floria/go/tosca"
	"github.com/ethereum/go-ethereum/crypto"
)

// EcRecover recovers the signer of the given hash from a secp256k1 signature.
// The recovery id uses the legacy encoding, i.e. it has to be 27 or 28. On
// success the signer's address is returned left-padded to 32 bytes. Any
// invalid input, including an unrecoverable key, yields an empty result.
func EcRecover(hash tosca.Hash, recoveryId, r, s tosca.Word) []byte {
	for _, b := range recoveryId[:31] {
		if b != 0 {
			return []byte{}
		}
	}
	v := recoveryId[31]
	if v != 27 && v != 28 {
		return []byte{}
	}
	v -= 27

	rInt := new(big.Int).SetBytes(r[:])
	sInt := new(big.Int).SetBytes(s[:])
	if !crypto.ValidateSignatureValues(v, rInt, sInt, false) {
		return []byte{}
	}

	sig := make([]byte, 65)
	copy(sig[0:32], r[:])
	copy(sig[32:64], s[:])
	sig[64] = v

	pub, err := crypto.Ecrecover(hash[:], sig)
	if err != nil || len(pub) != 65 {
		return []byte{}
	}

	// the first byte of the public key is the uncompressed-point marker
	digest := Keccak256(pub[1:])
	res := make([]byte, 32)
	copy(res[12:], digest[12:])
	return res
}

// runEcRecover decodes a 128-byte input [hash, v, r, s]; shorter inputs are
// right-padded with zeros.
func runEcRecover(input []byte) []byte {
	data := getData(input, 0, 128)
	var hash tosca.Hash
	var v, r, s tosca.Word
	copy(hash[:], data[0:32])
	copy(v[:], data[32:64])
	copy(r[:], data[64:96])
	copy(s[:], data[96:128])
	return EcRecover(hash, v, r, s)
}
