// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package tosca defines the vocabulary shared by all Floria components: the
// fixed-width value types of the EVM, call kinds, block parameters, and the
// constant error type used for sentinel errors throughout the module.
package tosca

// ConstError is a error type that can be used to define immutable
// error constants. Two ConstErrors with the same message are equal,
// making them suitable for comparison with errors.Is.
type ConstError string

func (e ConstError) Error() string {
	return string(e)
}
