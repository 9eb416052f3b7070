// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package floria

import (
	"github.com/Fantom-foundation/Floria/go/precompiled"
	"github.com/Fantom-foundation/Floria/go/tosca"
)

// handlePrecompiled runs the precompiled contract at the given address, if
// there is one. Precompiled contracts never fail; malformed inputs produce
// empty outputs.
func handlePrecompiled(address tosca.Address, input tosca.Data) (tosca.Data, bool) {
	output, found := precompiled.Run(address, input)
	if !found {
		return nil, false
	}
	return tosca.Data(output), true
}
