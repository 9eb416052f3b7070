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
	"encoding/hex"
	"testing"
)

func TestHashes_MatchKnownDigests(t *testing.T) {
	tests := map[string]struct {
		hash  func([]byte) []byte
		input string
		want  string
	}{
		"keccak256-empty": {
			func(d []byte) []byte { h := Keccak256(d); return h[:] },
			"",
			"c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		},
		"keccak256-abc": {
			func(d []byte) []byte { h := Keccak256(d); return h[:] },
			"abc",
			"4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45",
		},
		"sha256-empty": {
			func(d []byte) []byte { h := Sha256(d); return h[:] },
			"",
			"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		"sha256-abc": {
			func(d []byte) []byte { h := Sha256(d); return h[:] },
			"abc",
			"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
		"ripemd160-empty": {
			func(d []byte) []byte { h := Ripemd160(d); return h[:] },
			"",
			"0000000000000000000000009c1185a5c5e9fc54612808977ee8f548b2258d31",
		},
		"ripemd160-abc": {
			func(d []byte) []byte { h := Ripemd160(d); return h[:] },
			"abc",
			"0000000000000000000000008eb208f7e05d987a9b044a8e98c6b087f15a0bfc",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := hex.EncodeToString(test.hash([]byte(test.input)))
			if want := test.want; want != got {
				t.Errorf("unexpected digest, wanted %v, got %v", want, got)
			}
		})
	}
}

func TestKeccak256_EmptyCodeHashIsHashOfNoData(t *testing.T) {
	if want, got := Keccak256([]byte{}), EmptyCodeHash; want != got {
		t.Errorf("unexpected empty code hash, wanted %v, got %v", want, got)
	}
}

func TestKeccak256_PooledHashersDoNotLeakState(t *testing.T) {
	first := Keccak256([]byte("some data"))
	Keccak256([]byte("other data"))
	if want, got := first, Keccak256([]byte("some data")); want != got {
		t.Errorf("hash is not deterministic, wanted %v, got %v", want, got)
	}
}
