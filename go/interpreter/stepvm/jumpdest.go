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
	"github.com/Fantom-foundation/Floria/go/precompiled"
	"github.com/Fantom-foundation/Floria/go/tosca"
	lru "github.com/hashicorp/golang-lru/v2"
)

// jumpDests is a bitmap marking the JUMPDEST instructions of a code,
// excluding bytes that are immediate data of PUSH instructions.
type jumpDests []uint64

func analyzeJumpDests(code tosca.Code) jumpDests {
	res := make(jumpDests, len(code)/64+1)
	for pc := 0; pc < len(code); pc++ {
		op := OpCode(code[pc])
		if op == JUMPDEST {
			res[pc/64] |= 1 << (pc % 64)
		} else if op.isPush() {
			pc += int(op-PUSH1) + 1
		}
	}
	return res
}

func (j jumpDests) isValid(pc uint64) bool {
	if pc/64 >= uint64(len(j)) {
		return false
	}
	return j[pc/64]&(1<<(pc%64)) != 0
}

// jumpDestCache retains the analysis results of recently executed codes,
// keyed by code hash. It is safe for concurrent use.
type jumpDestCache struct {
	cache *lru.Cache[tosca.Hash, jumpDests]
}

func newJumpDestCache(size int) (*jumpDestCache, error) {
	cache, err := lru.New[tosca.Hash, jumpDests](size)
	if err != nil {
		return nil, err
	}
	return &jumpDestCache{cache: cache}, nil
}

func (c *jumpDestCache) get(code tosca.Code) jumpDests {
	hash := precompiled.Keccak256(code)
	if res, found := c.cache.Get(hash); found {
		return res
	}
	res := analyzeJumpDests(code)
	c.cache.Add(hash, res)
	return res
}
