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
)

// maxModExpLength bounds the byte length of each operand accepted from an
// EIP-198 encoded input. Larger claims make the input malformed.
const maxModExpLength = 1 << 20

// ModExp computes base^exponent mod modulus for arbitrary-length big-endian
// unsigned operands. The result is always exactly len(modulus) bytes long:
// shorter results are left-padded with zeros, longer ones truncated to their
// low-order bytes. A zero modulus yields zero; 0^0 yields 1 for every
// non-zero modulus, including a modulus of one.
func ModExp(base, exponent, modulus []byte) []byte {
	res := make([]byte, len(modulus))
	mod := new(big.Int).SetBytes(modulus)
	if mod.Sign() == 0 {
		return res
	}

	b := new(big.Int).SetBytes(base)
	e := new(big.Int).SetBytes(exponent)

	var value *big.Int
	if b.Sign() == 0 && e.Sign() == 0 {
		value = big.NewInt(1)
	} else {
		value = new(big.Int).Exp(b, e, mod)
	}

	out := value.Bytes()
	if len(out) > len(res) {
		out = out[len(out)-len(res):]
	}
	copy(res[len(res)-len(out):], out)
	return res
}

// runModExp decodes an EIP-198 input of the form
//
//	<len(B)> <len(E)> <len(M)> <B> <E> <M>
//
// where the three lengths are 32-byte big-endian words and missing trailing
// bytes are treated as zeros.
func runModExp(input []byte) []byte {
	header := getData(input, 0, 96)
	baseLen, ok1 := toLength(header[0:32])
	expLen, ok2 := toLength(header[32:64])
	modLen, ok3 := toLength(header[64:96])
	if !ok1 || !ok2 || !ok3 {
		return []byte{}
	}
	if modLen == 0 {
		return []byte{}
	}

	data := input
	if len(data) > 96 {
		data = data[96:]
	} else {
		data = nil
	}
	base := getData(data, 0, baseLen)
	exp := getData(data, baseLen, expLen)
	mod := getData(data, baseLen+expLen, modLen)
	return ModExp(base, exp, mod)
}

func toLength(word []byte) (uint64, bool) {
	value := new(big.Int).SetBytes(word)
	if !value.IsUint64() || value.Uint64() > maxModExpLength {
		return 0, false
	}
	return value.Uint64(), true
}

// getData returns a copy of data[start:start+size], zero-padded on the right
// where the range exceeds the input.
func getData(data []byte, start, size uint64) []byte {
	res := make([]byte, size)
	length := uint64(len(data))
	if start >= length {
		return res
	}
	end := start + size
	if end > length {
		end = length
	}
	copy(res, data[start:end])
	return res
}
