// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"github.com/adrtoken/adrstake/adr"
)

type mintInfo struct {
	Initialized bool
	Decimals    uint8
	Authority   adr.Address
	Supply      uint64
}

type account struct {
	Balance uint64
}
