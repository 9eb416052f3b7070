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
	"github.com/Fantom-foundation/Floria/go/tosca"
)

// Config summarizes the policies of a Processor.
type Config struct {
	// AutoCreateSender makes the processor create a missing sender account
	// holding DefaultSenderBalance before running a transaction. If disabled,
	// missing senders are treated as empty accounts.
	AutoCreateSender bool
	// DefaultSenderBalance is the balance of auto-created sender accounts.
	DefaultSenderBalance tosca.Value
}

// DefaultSenderBalance is the balance used for auto-created senders by
// diagnostic tools.
var DefaultSenderBalance = tosca.NewValue(1_000_000_000_000_000_000)
