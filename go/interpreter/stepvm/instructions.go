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
	"math"

	"github.com/Fantom-foundation/Floria/go/precompiled"
	"github.com/Fantom-foundation/Floria/go/processor/floria"
	"github.com/Fantom-foundation/Floria/go/tosca"
	"github.com/holiman/uint256"
)

const (
	warmAccessCost      = 100
	coldAccountCost     = 2600
	coldSlotCost        = 2100
	callValueCost       = 9000
	callStipend         = 2300
	newAccountCost      = 25000
	copyWordCost        = 3
	hashWordCost        = 6
	logDataByteCost     = 8
	expByteCost         = 50
	storageAddCost      = 20000
	storageModifyCost   = 2900
	storageNoChangeCost = 100
)

// execute runs the instruction at the current program counter. A nil step
// indicates that the execution of the frame may continue.
func execute(s *State, op OpCode) (floria.Step, error) {
	if err := checkStack(s.stack, op); err != nil {
		return nil, err
	}
	if err := s.useGas(tosca.Gas(staticGas(op))); err != nil {
		return nil, err
	}
	pc := s.pc
	s.pc++

	switch {
	case op == PUSH0:
		s.stack.pushUndefined().Clear()
		return nil, nil
	case op.isPush():
		n := int(op-PUSH1) + 1
		data := make([]byte, n)
		if pc+1 < len(s.frame.Code) {
			copy(data, s.frame.Code[pc+1:])
		}
		s.stack.pushUndefined().SetBytes(data)
		s.pc += n
		return nil, nil
	case DUP1 <= op && op <= DUP16:
		s.stack.dup(int(op - DUP1))
		return nil, nil
	case SWAP1 <= op && op <= SWAP16:
		s.stack.swap(int(op-SWAP1) + 1)
		return nil, nil
	case LOG0 <= op && op <= LOG4:
		return nil, opLog(s, int(op-LOG0))
	}

	switch op {
	case STOP:
		return floria.Returns{GasLeft: s.gas, World: s.frame.World}, nil

	// arithmetic
	case ADD:
		a, b := s.stack.pop(), s.stack.peek()
		b.Add(a, b)
	case MUL:
		a, b := s.stack.pop(), s.stack.peek()
		b.Mul(a, b)
	case SUB:
		a, b := s.stack.pop(), s.stack.peek()
		b.Sub(a, b)
	case DIV:
		a, b := s.stack.pop(), s.stack.peek()
		b.Div(a, b)
	case SDIV:
		a, b := s.stack.pop(), s.stack.peek()
		b.SDiv(a, b)
	case MOD:
		a, b := s.stack.pop(), s.stack.peek()
		b.Mod(a, b)
	case SMOD:
		a, b := s.stack.pop(), s.stack.peek()
		b.SMod(a, b)
	case ADDMOD:
		a, b, m := s.stack.pop(), s.stack.pop(), s.stack.peek()
		m.AddMod(a, b, m)
	case MULMOD:
		a, b, m := s.stack.pop(), s.stack.pop(), s.stack.peek()
		m.MulMod(a, b, m)
	case EXP:
		base, exponent := s.stack.pop(), s.stack.peek()
		if err := s.useGas(tosca.Gas(expByteCost * exponent.ByteLen())); err != nil {
			return nil, err
		}
		exponent.Exp(base, exponent)
	case SIGNEXTEND:
		back, num := s.stack.pop(), s.stack.peek()
		num.ExtendSign(num, back)

	// comparison and bitwise logic
	case LT:
		a, b := s.stack.pop(), s.stack.peek()
		setBool(b, a.Lt(b))
	case GT:
		a, b := s.stack.pop(), s.stack.peek()
		setBool(b, a.Gt(b))
	case SLT:
		a, b := s.stack.pop(), s.stack.peek()
		setBool(b, a.Slt(b))
	case SGT:
		a, b := s.stack.pop(), s.stack.peek()
		setBool(b, a.Sgt(b))
	case EQ:
		a, b := s.stack.pop(), s.stack.peek()
		setBool(b, a.Eq(b))
	case ISZERO:
		a := s.stack.peek()
		setBool(a, a.IsZero())
	case AND:
		a, b := s.stack.pop(), s.stack.peek()
		b.And(a, b)
	case OR:
		a, b := s.stack.pop(), s.stack.peek()
		b.Or(a, b)
	case XOR:
		a, b := s.stack.pop(), s.stack.peek()
		b.Xor(a, b)
	case NOT:
		a := s.stack.peek()
		a.Not(a)
	case BYTE:
		n, value := s.stack.pop(), s.stack.peek()
		value.Byte(n)
	case SHL:
		shift, value := s.stack.pop(), s.stack.peek()
		if shift.LtUint64(256) {
			value.Lsh(value, uint(shift.Uint64()))
		} else {
			value.Clear()
		}
	case SHR:
		shift, value := s.stack.pop(), s.stack.peek()
		if shift.LtUint64(256) {
			value.Rsh(value, uint(shift.Uint64()))
		} else {
			value.Clear()
		}
	case SAR:
		shift, value := s.stack.pop(), s.stack.peek()
		if shift.GtUint64(255) {
			if value.Sign() >= 0 {
				value.Clear()
			} else {
				value.SetAllOne()
			}
		} else {
			value.SRsh(value, uint(shift.Uint64()))
		}

	case SHA3:
		offset, size := s.stack.pop(), s.stack.peek()
		data, err := s.memory.slice(offset, size, s)
		if err != nil {
			return nil, err
		}
		if err := s.useGas(tosca.Gas(hashWordCost * sizeInWords(uint64(len(data))))); err != nil {
			return nil, err
		}
		hash := precompiled.Keccak256(data)
		size.SetBytes32(hash[:])

	// environment
	case ADDRESS:
		pushAddress(s, s.frame.Context.Recipient)
	case BALANCE:
		top := s.stack.peek()
		address := tosca.Address(top.Bytes20())
		if err := accessAccount(s, address); err != nil {
			return nil, err
		}
		balance := s.frame.World.GetBalance(address)
		top.SetBytes32(balance[:])
	case ORIGIN:
		pushAddress(s, s.frame.Context.Origin)
	case CALLER:
		pushAddress(s, s.frame.Context.Sender)
	case CALLVALUE:
		pushWord(s, tosca.Word(s.frame.Context.Value))
	case CALLDATALOAD:
		top := s.stack.peek()
		top.SetBytes32(getData(s.frame.Context.Input, top, 32))
	case CALLDATASIZE:
		s.stack.pushUndefined().SetUint64(uint64(len(s.frame.Context.Input)))
	case CALLDATACOPY:
		return nil, opCopy(s, s.frame.Context.Input)
	case CODESIZE:
		s.stack.pushUndefined().SetUint64(uint64(len(s.frame.Code)))
	case CODECOPY:
		return nil, opCopy(s, s.frame.Code)
	case GASPRICE:
		pushWord(s, tosca.Word(s.frame.Context.GasPrice))
	case EXTCODESIZE:
		top := s.stack.peek()
		address := tosca.Address(top.Bytes20())
		if err := accessAccount(s, address); err != nil {
			return nil, err
		}
		top.SetUint64(uint64(len(s.frame.World.GetCode(address))))
	case EXTCODECOPY:
		address := tosca.Address(s.stack.pop().Bytes20())
		if err := accessAccount(s, address); err != nil {
			return nil, err
		}
		return nil, opCopy(s, s.frame.World.GetCode(address))
	case RETURNDATASIZE:
		s.stack.pushUndefined().SetUint64(uint64(len(s.returnData)))
	case RETURNDATACOPY:
		offset, size := s.stack.peekN(1), s.stack.peekN(2)
		end, overflow := new(uint256.Int).AddOverflow(offset, size)
		if overflow || !end.IsUint64() || end.Uint64() > uint64(len(s.returnData)) {
			return nil, errReturnDataOutOfBounds
		}
		return nil, opCopy(s, s.returnData)
	case EXTCODEHASH:
		top := s.stack.peek()
		address := tosca.Address(top.Bytes20())
		if err := accessAccount(s, address); err != nil {
			return nil, err
		}
		if !s.frame.World.AccountExists(address) {
			top.Clear()
		} else {
			hash := s.frame.World.GetCodeHash(address)
			top.SetBytes32(hash[:])
		}

	// block information
	case BLOCKHASH:
		// block hashes are not part of the block parameters
		s.stack.peek().Clear()
	case COINBASE:
		pushAddress(s, s.frame.Context.Block.Coinbase)
	case TIMESTAMP:
		s.stack.pushUndefined().SetUint64(uint64(s.frame.Context.Block.Timestamp))
	case NUMBER:
		s.stack.pushUndefined().SetUint64(uint64(s.frame.Context.Block.BlockNumber))
	case PREVRANDAO:
		pushWord(s, tosca.Word(s.frame.Context.Block.PrevRandao))
	case GASLIMIT:
		s.stack.pushUndefined().SetUint64(uint64(s.frame.Context.Block.GasLimit))
	case CHAINID:
		pushWord(s, s.frame.Context.Block.ChainID)
	case SELFBALANCE:
		pushWord(s, tosca.Word(s.frame.World.GetBalance(s.frame.Context.Recipient)))

	// stack, memory, storage, and flow
	case POP:
		s.stack.pop()
	case MLOAD:
		top := s.stack.peek()
		data, err := s.memory.slice(top, uint256.NewInt(32), s)
		if err != nil {
			return nil, err
		}
		top.SetBytes32(data)
	case MSTORE:
		offset, value := s.stack.pop(), s.stack.pop()
		return nil, s.memory.setWord(offset, value, s)
	case MSTORE8:
		offset, value := s.stack.pop(), s.stack.pop()
		return nil, s.memory.setByte(offset, byte(value.Uint64()), s)
	case SLOAD:
		top := s.stack.peek()
		key := tosca.Key(top.Bytes32())
		if err := accessSlot(s, key); err != nil {
			return nil, err
		}
		value := s.frame.World.GetStorage(s.frame.Context.Recipient, key)
		top.SetBytes32(value[:])
	case SSTORE:
		return nil, opSstore(s)
	case JUMP:
		return nil, jumpTo(s, s.stack.pop())
	case JUMPI:
		dest, cond := s.stack.pop(), s.stack.pop()
		if !cond.IsZero() {
			return nil, jumpTo(s, dest)
		}
	case PC:
		s.stack.pushUndefined().SetUint64(uint64(pc))
	case MSIZE:
		s.stack.pushUndefined().SetUint64(s.memory.length())
	case GAS:
		s.stack.pushUndefined().SetUint64(uint64(s.gas))
	case JUMPDEST:

	// system operations
	case CREATE, CREATE2:
		return opCreate(s, op)
	case CALL, CALLCODE, DELEGATECALL, STATICCALL:
		return opCall(s, op)
	case RETURN, REVERT:
		offset, size := s.stack.pop(), s.stack.pop()
		data, err := s.memory.slice(offset, size, s)
		if err != nil {
			return nil, err
		}
		data = append(tosca.Data(nil), data...)
		if op == REVERT {
			return floria.Reverts{Data: data, GasLeft: s.gas}, nil
		}
		return floria.Returns{Data: data, GasLeft: s.gas, World: s.frame.World}, nil
	default:
		return nil, errInvalidOpCode
	}
	return nil, nil
}

func setBool(target *uint256.Int, value bool) {
	if value {
		target.SetOne()
	} else {
		target.Clear()
	}
}

func pushAddress(s *State, address tosca.Address) {
	s.stack.pushUndefined().SetBytes20(address[:])
}

func pushWord(s *State, word tosca.Word) {
	s.stack.pushUndefined().SetBytes32(word[:])
}

// getData returns size bytes of data starting at the given offset, padded
// with zeros where the range exceeds the data.
func getData(data []byte, offset *uint256.Int, size uint64) []byte {
	start := uint64(math.MaxUint64)
	if offset.IsUint64() {
		start = offset.Uint64()
	}
	res := make([]byte, size)
	if start < uint64(len(data)) {
		copy(res, data[start:])
	}
	return res
}

// opCopy implements the *COPY instructions, copying from the given source
// to memory with the operands memOffset, dataOffset, length.
func opCopy(s *State, source []byte) error {
	memOffset, dataOffset, length := s.stack.pop(), s.stack.pop(), s.stack.pop()
	if length.GtUint64(maxMemorySize) {
		return errMemoryLimitExceeded
	}
	if err := s.useGas(tosca.Gas(copyWordCost * sizeInWords(length.Uint64()))); err != nil {
		return err
	}
	var data []byte
	if dataOffset.IsUint64() && dataOffset.Uint64() < uint64(len(source)) {
		data = source[dataOffset.Uint64():]
	}
	return s.memory.copyPadded(memOffset, length, data, s)
}

func accessAccount(s *State, address tosca.Address) error {
	if s.frame.SubState.AccessAccount(address) {
		return s.useGas(warmAccessCost)
	}
	return s.useGas(coldAccountCost)
}

func accessSlot(s *State, key tosca.Key) error {
	if s.frame.SubState.AccessSlot(s.frame.Context.Recipient, key) {
		return s.useGas(warmAccessCost)
	}
	return s.useGas(coldSlotCost)
}

func jumpTo(s *State, dest *uint256.Int) error {
	if !dest.IsUint64() || !s.jumpDests.isValid(dest.Uint64()) {
		return errInvalidJump
	}
	s.pc = int(dest.Uint64())
	return nil
}

func opSstore(s *State) error {
	if s.frame.Context.Static {
		return errWriteProtection
	}
	key, value := tosca.Key(s.stack.pop().Bytes32()), tosca.Word(s.stack.pop().Bytes32())
	if !s.frame.SubState.AccessSlot(s.frame.Context.Recipient, key) {
		if err := s.useGas(coldSlotCost); err != nil {
			return err
		}
	}
	// failing frames are rolled back by their caller, so the cost may be
	// charged after the update
	status := s.frame.World.SetStorage(s.frame.Context.Recipient, key, value)
	switch status {
	case tosca.StorageAdded:
		return s.useGas(storageAddCost)
	case tosca.StorageAssigned:
		return s.useGas(storageNoChangeCost)
	case tosca.StorageDeleted, tosca.StorageModified:
		return s.useGas(storageModifyCost)
	default:
		return s.useGas(storageNoChangeCost)
	}
}

func opLog(s *State, numTopics int) error {
	if s.frame.Context.Static {
		return errWriteProtection
	}
	offset, size := s.stack.pop(), s.stack.pop()
	topics := make([]tosca.Hash, numTopics)
	for i := range topics {
		topics[i] = s.stack.pop().Bytes32()
	}
	data, err := s.memory.slice(offset, size, s)
	if err != nil {
		return err
	}
	if err := s.useGas(tosca.Gas(logDataByteCost * uint64(len(data)))); err != nil {
		return err
	}
	s.frame.SubState.AddLog(tosca.Log{
		Address: s.frame.Context.Recipient,
		Topics:  topics,
		Data:    append(tosca.Data(nil), data...),
	})
	return nil
}

// childGas returns the gas that may be passed to a nested frame: all but
// one 64th of the remaining gas, capped by the requested amount.
func childGas(available tosca.Gas, requested *uint256.Int) tosca.Gas {
	limit := available - available/64
	if !requested.IsUint64() || requested.Uint64() > uint64(limit) {
		return limit
	}
	return tosca.Gas(requested.Uint64())
}

func opCreate(s *State, op OpCode) (floria.Step, error) {
	if s.frame.Context.Static {
		return nil, errWriteProtection
	}
	value, offset, size := s.stack.pop(), s.stack.pop(), s.stack.pop()
	var salt tosca.Hash
	if op == CREATE2 {
		salt = s.stack.pop().Bytes32()
	}
	initCode, err := s.memory.slice(offset, size, s)
	if err != nil {
		return nil, err
	}
	if op == CREATE2 {
		if err := s.useGas(tosca.Gas(hashWordCost * sizeInWords(uint64(len(initCode))))); err != nil {
			return nil, err
		}
	}

	gas := childGas(s.gas, uint256.NewInt(math.MaxUint64))
	s.gas -= gas
	s.suspend(nil, nil)

	kind := tosca.Create
	if op == CREATE2 {
		kind = tosca.Create2
	}
	return floria.CreateRequest{
		State:    s,
		Kind:     kind,
		Sender:   s.frame.Context.Recipient,
		Value:    tosca.ValueFromUint256(value),
		InitCode: append(tosca.Code(nil), initCode...),
		Salt:     salt,
		Gas:      gas,
	}, nil
}

func opCall(s *State, op OpCode) (floria.Step, error) {
	requestedGas := s.stack.pop()
	address := tosca.Address(s.stack.pop().Bytes20())
	value := uint256.NewInt(0)
	if op == CALL || op == CALLCODE {
		value = s.stack.pop()
	}
	inOffset, inSize := s.stack.pop(), s.stack.pop()
	retOffset, retSize := s.stack.pop(), s.stack.pop()

	if op == CALL && s.frame.Context.Static && !value.IsZero() {
		return nil, errWriteProtection
	}

	input, err := s.memory.slice(inOffset, inSize, s)
	if err != nil {
		return nil, err
	}
	if _, err := s.memory.slice(retOffset, retSize, s); err != nil {
		return nil, err
	}
	if err := accessAccount(s, address); err != nil {
		return nil, err
	}
	if !value.IsZero() {
		if err := s.useGas(callValueCost); err != nil {
			return nil, err
		}
		if op == CALL && !s.frame.World.AccountExists(address) {
			if err := s.useGas(newAccountCost); err != nil {
				return nil, err
			}
		}
	}

	gas := childGas(s.gas, requestedGas)
	s.gas -= gas
	if !value.IsZero() {
		gas += callStipend
	}
	s.suspend(retOffset, retSize)

	context := s.frame.Context
	request := floria.CallRequest{
		State:       s,
		Sender:      context.Recipient,
		Recipient:   address,
		CodeAddress: address,
		Value:       tosca.ValueFromUint256(value),
		Input:       append(tosca.Data(nil), input...),
		Gas:         gas,
	}
	switch op {
	case CALL:
		request.Kind = tosca.Call
	case STATICCALL:
		request.Kind = tosca.StaticCall
	case CALLCODE:
		request.Kind = tosca.CallCode
		request.Recipient = context.Recipient
	case DELEGATECALL:
		request.Kind = tosca.DelegateCall
		request.Sender = context.Sender
		request.Recipient = context.Recipient
		request.Value = context.Value
	}
	return request, nil
}
