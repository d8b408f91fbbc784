// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ix

import (
	"github.com/adrtoken/adrstake/adr"
)

// Argument payloads, one per instruction kind. Operations without arguments
// use the empty struct of their kind so the wire layout stays explicit.

type InitializeCollectionArgs struct {
	Name   string
	Symbol string
	URI    string
}

type SetPaymentTokenArgs struct {
	Mint adr.Address
}

type ConfigureStakingArgs struct {
	Enabled bool
	RateBps uint64
}

type UpdateMaxStakeAmountArgs struct {
	MaxAmount uint64
}

type UpdateAdminArgs struct {
	NewAdmin adr.Address
}

type SetEmergencyPauseArgs struct {
	Paused bool
	Reason string
}

type InitializeRewardReserveArgs struct{}

type DepositRewardReserveArgs struct {
	Amount uint64
}

type StakeArgs struct {
	Amount uint64
	Period uint32
}

type UnstakeArgs struct{}

type MintWithPaymentArgs struct {
	Name   string
	Symbol string
	URI    string
	Amount uint64
}
