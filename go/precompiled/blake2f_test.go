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
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"testing"

	"golang.org/x/crypto/blake2b"
)

// blake2FInput encodes a compression request for hashing "abc" as a
// single final block of an unkeyed 64-byte BLAKE2b digest.
func blake2FInput(rounds uint32, final byte) []byte {
	input := make([]byte, Blake2FInputLength)
	binary.BigEndian.PutUint32(input[0:4], rounds)
	h := blake2bIV
	h[0] ^= 0x01010040
	for i, v := range h {
		binary.LittleEndian.PutUint64(input[4+i*8:], v)
	}
	copy(input[68:], "abc")
	binary.LittleEndian.PutUint64(input[196:], 3)
	input[212] = final
	return input
}

func TestBlake2F_KnownVectors(t *testing.T) {
	tests := map[string]struct {
		rounds uint32
		final  byte
		want   string
	}{
		"zero rounds": {
			0, 1,
			"08c9bcf367e6096a3ba7ca8485ae67bb2bf894fe72f36e3cf1361d5f3af54fa5" +
				"d282e6ad7f520e511f6c3e2b8c68059b9442be0454267ce079217e1319cde05b",
		},
		"twelve rounds": {
			12, 1,
			"ba80a53f981c4d0d6a2797b69f12f6e94c212f14685ac4b74b12bb6fdbffa2d1" +
				"7d87c5392aab792dc252d5de4533cc9518d38aa8dbf1925ab92386edd4009923",
		},
		"not final": {
			12, 0,
			"75ab69d3190a562c51aef8d88f1c2775876944407270c42c9844252c26d28752" +
				"98743e7f6d5ea2f2d3e8d226039cd31b4e426ac4f2d3d666a610c2116fde4735",
		},
		"single round": {
			1, 1,
			"b63a380cb2897d521994a85234ee2c181b5f844d2c624c002677e9703449d2fb" +
				"a551b3a8333bcdf5f2f7e08993d53923de3d64fcc68c034e717b9293fed7a421",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := hex.EncodeToString(Blake2FCompress(blake2FInput(test.rounds, test.final)))
			if want := test.want; want != got {
				t.Errorf("unexpected output, wanted %v, got %v", want, got)
			}
		})
	}
}

func TestBlake2F_TwelveRoundsMatchesBlake2b(t *testing.T) {
	want := blake2b.Sum512([]byte("abc"))
	if got := Blake2FCompress(blake2FInput(12, 1)); !bytes.Equal(want[:], got) {
		t.Errorf("unexpected output, wanted %x, got %x", want, got)
	}
}

func TestBlake2F_MalformedInputsYieldEmptyOutput(t *testing.T) {
	wrongFlag := blake2FInput(12, 1)
	wrongFlag[212] = 2

	tests := map[string][]byte{
		"empty":      {},
		"too short":  blake2FInput(12, 1)[:212],
		"too long":   append(blake2FInput(12, 1), 0),
		"wrong flag": wrongFlag,
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Blake2FCompress(input); len(got) != 0 {
				t.Errorf("expected empty output, got %x", got)
			}
		})
	}
}
