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
	"fmt"
	"strings"

	"github.com/Fantom-foundation/Floria/go/tosca"
	"github.com/holiman/uint256"
)

const maxStackSize = 1024

type stack struct {
	data         [maxStackSize]uint256.Int
	stackPointer int
}

func (s *stack) push(d *uint256.Int) {
	s.data[s.stackPointer] = *d
	s.stackPointer++
}

func (s *stack) pushUndefined() *uint256.Int {
	s.stackPointer++
	return &s.data[s.stackPointer-1]
}

func (s *stack) pop() *uint256.Int {
	s.stackPointer--
	return &s.data[s.stackPointer]
}

func (s *stack) peek() *uint256.Int {
	return &s.data[s.len()-1]
}

func (s *stack) peekN(n int) *uint256.Int {
	return &s.data[s.len()-n-1]
}

func (s *stack) len() int {
	return s.stackPointer
}

func (s *stack) swap(n int) {
	s.data[s.len()-n-1], s.data[s.len()-1] = s.data[s.len()-1], s.data[s.len()-n-1]
}

func (s *stack) dup(n int) {
	s.data[s.stackPointer] = s.data[s.stackPointer-n-1]
	s.stackPointer++
}

// words lists the stack content from bottom to top.
func (s *stack) words() []tosca.Word {
	res := make([]tosca.Word, s.len())
	for i := range res {
		res[i] = s.data[i].Bytes32()
	}
	return res
}

func (s *stack) String() string {
	b := strings.Builder{}
	for i := 0; i < s.len(); i++ {
		b.WriteString(fmt.Sprintf("    [%4d] %x\n", s.len()-i-1, s.peekN(i).Bytes32()))
	}
	return b.String()
}

// stackBounds returns the number of elements consumed and produced by an
// instruction.
func stackBounds(op OpCode) (pops, pushes int) {
	switch {
	case op.isPush():
		return 0, 1
	case DUP1 <= op && op <= DUP16:
		n := int(op-DUP1) + 1
		return n, n + 1
	case SWAP1 <= op && op <= SWAP16:
		n := int(op-SWAP1) + 2
		return n, n
	case LOG0 <= op && op <= LOG4:
		return int(op-LOG0) + 2, 0
	}

	switch op {
	case ADD, SUB, MUL, DIV, SDIV, MOD, SMOD, EXP, SIGNEXTEND,
		SHA3, LT, GT, SLT, SGT, EQ, AND, XOR, OR, BYTE, SHL, SHR, SAR:
		return 2, 1
	case ADDMOD, MULMOD:
		return 3, 1
	case ISZERO, NOT, BALANCE, CALLDATALOAD, EXTCODESIZE, BLOCKHASH,
		MLOAD, SLOAD, EXTCODEHASH:
		return 1, 1
	case PUSH0, MSIZE, ADDRESS, ORIGIN, CALLER, CALLVALUE, CALLDATASIZE,
		CODESIZE, GASPRICE, COINBASE, TIMESTAMP, NUMBER, PREVRANDAO,
		GASLIMIT, PC, GAS, RETURNDATASIZE, SELFBALANCE, CHAINID:
		return 0, 1
	case POP, JUMP:
		return 1, 0
	case MSTORE, MSTORE8, SSTORE, JUMPI, RETURN, REVERT:
		return 2, 0
	case CALLDATACOPY, CODECOPY, RETURNDATACOPY:
		return 3, 0
	case EXTCODECOPY:
		return 4, 0
	case CREATE:
		return 3, 1
	case CREATE2:
		return 4, 1
	case CALL, CALLCODE:
		return 7, 1
	case STATICCALL, DELEGATECALL:
		return 6, 1
	}
	return 0, 0
}

func checkStack(s *stack, op OpCode) error {
	pops, pushes := stackBounds(op)
	if s.len() < pops {
		return errStackUnderflow
	}
	if s.len()-pops+pushes > maxStackSize {
		return errStackOverflow
	}
	return nil
}
