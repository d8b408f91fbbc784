// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/adrtoken/adrstake/adr"
)

// Config is the single administrative record of the engine. It is created
// once at collection initialization and mutated only by the admin.
type Config struct {
	Initialized     bool
	PaymentToken    adr.Address
	Admin           adr.Address
	StakingEnabled  bool
	RewardRateBps   uint64
	MaxStakeAmount  uint64
	EmergencyPaused bool
	RewardReserve   adr.Address
}

// Position is one staker's time-locked deposit. At most one exists per
// (staker, payment token) pair; it is never deleted, a claimed position stays
// as an audit record.
type Position struct {
	Owner      adr.Address
	Amount     uint64
	StartTime  uint64
	UnlockTime uint64
	Period     Period
	Claimed    bool
}

// CollectionMeta describes the NFT collection the engine's payment flow
// serves. The minting itself lives outside the engine; only the metadata
// record and the mint counter are kept here.
type CollectionMeta struct {
	Name      string
	Symbol    string
	URI       string
	Authority adr.Address
}

// StakeSummary is the read-only per-staker view.
type StakeSummary struct {
	IsStaking       bool   `json:"isStaking"`
	Amount          uint64 `json:"amount"`
	StartTime       uint64 `json:"startTime"`
	UnlockTime      uint64 `json:"unlockTime"`
	Period          uint32 `json:"period"`
	Claimed         bool   `json:"claimed"`
	CanUnstake      bool   `json:"canUnstake"`
	EstimatedReward uint64 `json:"estimatedReward"`
	TimeRemaining   uint64 `json:"timeRemaining"`
}

// ConfigSummary is the read-only configuration view.
type ConfigSummary struct {
	PaymentToken    adr.Address `json:"paymentToken"`
	Admin           adr.Address `json:"admin"`
	StakingEnabled  bool        `json:"stakingEnabled"`
	RewardRateBps   uint64      `json:"rewardRateBps"`
	MaxStakeAmount  uint64      `json:"maxStakeAmount"`
	EmergencyPaused bool        `json:"emergencyPaused"`
	RewardReserve   adr.Address `json:"rewardReserve"`
	ReserveBalance  uint64      `json:"reserveBalance"`
}

// CollectionInfo is the read-only collection view.
type CollectionInfo struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	URI    string `json:"uri"`
	Minted uint64 `json:"minted"`
}

type nftCounter struct {
	Count uint64
}
