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
	"encoding/binary"
	"math/bits"
)

// Blake2FInputLength is the exact size of an EIP-152 compression input:
// rounds(4) | h(64) | m(128) | t(16) | f(1).
const Blake2FInputLength = 213

var blake2bIV = [8]uint64{
	0x6a09e667f3bcc908, 0xbb67ae8584caa73b,
	0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
	0x510e527fade682d1, 0x9b05688c2b3e6c1f,
	0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
}

// blake2bSigma is the message schedule; round i uses row i mod 10.
var blake2bSigma = [10][16]byte{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{14, 10, 4, 8, 9, 15, 13, 6, 1, 12, 0, 2, 11, 7, 5, 3},
	{11, 8, 12, 0, 5, 2, 15, 13, 10, 14, 3, 6, 7, 1, 9, 4},
	{7, 9, 3, 1, 13, 12, 11, 14, 2, 6, 5, 10, 4, 0, 15, 8},
	{9, 0, 5, 7, 2, 4, 10, 15, 14, 1, 11, 12, 6, 8, 3, 13},
	{2, 12, 6, 10, 0, 11, 8, 3, 4, 13, 7, 5, 15, 14, 1, 9},
	{12, 5, 1, 15, 14, 13, 4, 10, 0, 7, 6, 3, 9, 2, 8, 11},
	{13, 11, 7, 14, 12, 1, 3, 9, 5, 0, 15, 4, 8, 6, 2, 10},
	{6, 15, 14, 9, 11, 3, 0, 8, 12, 2, 13, 7, 1, 4, 10, 5},
	{10, 2, 8, 4, 7, 6, 1, 5, 15, 11, 9, 14, 3, 12, 13, 0},
}

// Blake2FCompress runs the BLAKE2b compression function F on an EIP-152
// encoded input and returns the updated 64-byte chain value. Inputs of the
// wrong length or with a final-block flag other than 0 or 1 yield an empty
// result.
func Blake2FCompress(input []byte) []byte {
	if len(input) != Blake2FInputLength {
		return []byte{}
	}
	flag := input[212]
	if flag != 0 && flag != 1 {
		return []byte{}
	}

	rounds := binary.BigEndian.Uint32(input[0:4])

	var h [8]uint64
	for i := range h {
		h[i] = binary.LittleEndian.Uint64(input[4+i*8:])
	}
	var m [16]uint64
	for i := range m {
		m[i] = binary.LittleEndian.Uint64(input[68+i*8:])
	}
	t := [2]uint64{
		binary.LittleEndian.Uint64(input[196:204]),
		binary.LittleEndian.Uint64(input[204:212]),
	}

	compress(&h, &m, t, flag == 1, rounds)

	res := make([]byte, 64)
	for i := range h {
		binary.LittleEndian.PutUint64(res[i*8:], h[i])
	}
	return res
}

func compress(h *[8]uint64, m *[16]uint64, t [2]uint64, final bool, rounds uint32) {
	var v [16]uint64
	copy(v[:8], h[:])
	copy(v[8:], blake2bIV[:])
	v[12] ^= t[0]
	v[13] ^= t[1]
	if final {
		v[14] = ^v[14]
	}

	for i := uint32(0); i < rounds; i++ {
		s := &blake2bSigma[i%10]

		mix1(&v, 0, 4, 8, 12, m[s[0]])
		mix2(&v, 0, 4, 8, 12, m[s[1]])
		mix1(&v, 1, 5, 9, 13, m[s[2]])
		mix2(&v, 1, 5, 9, 13, m[s[3]])
		mix1(&v, 2, 6, 10, 14, m[s[4]])
		mix2(&v, 2, 6, 10, 14, m[s[5]])
		mix1(&v, 3, 7, 11, 15, m[s[6]])
		mix2(&v, 3, 7, 11, 15, m[s[7]])

		mix1(&v, 0, 5, 10, 15, m[s[8]])
		mix2(&v, 0, 5, 10, 15, m[s[9]])
		mix1(&v, 1, 6, 11, 12, m[s[10]])
		mix2(&v, 1, 6, 11, 12, m[s[11]])
		mix1(&v, 2, 7, 8, 13, m[s[12]])
		mix2(&v, 2, 7, 8, 13, m[s[13]])
		mix1(&v, 3, 4, 9, 14, m[s[14]])
		mix2(&v, 3, 4, 9, 14, m[s[15]])
	}

	for i := 0; i < 8; i++ {
		h[i] ^= v[i] ^ v[i+8]
	}
}

// mix1 is the first half of the BLAKE2b G function.
func mix1(v *[16]uint64, a, b, c, d int, x uint64) {
	v[a] += v[b] + x
	v[d] = bits.RotateLeft64(v[d]^v[a], -32)
	v[c] += v[d]
	v[b] = bits.RotateLeft64(v[b]^v[c], -24)
}

// mix2 is the second half of the BLAKE2b G function.
func mix2(v *[16]uint64, a, b, c, d int, y uint64) {
	v[a] += v[b] + y
	v[d] = bits.RotateLeft64(v[d]^v[a], -16)
	v[c] += v[d]
	v[b] = bits.RotateLeft64(v[b]^v[c], -63)
}
