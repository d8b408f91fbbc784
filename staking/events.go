// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/adrtoken/adrstake/adr"
)

// Event is a structured record emitted by a mutating operation. Events feed
// external monitoring; they are not required for correctness.
type Event interface {
	// Kind returns the stable event name.
	Kind() string
	// Actor returns the identity that triggered the event.
	Actor() adr.Address
	// Time returns the event timestamp.
	Time() uint64
}

// StakingEvent records a successful stake.
type StakingEvent struct {
	Staker     adr.Address `json:"staker"`
	Amount     uint64      `json:"amount"`
	Period     uint32      `json:"period"`
	StartTime  uint64      `json:"startTime"`
	UnlockTime uint64      `json:"unlockTime"`
	Position   adr.Bytes32 `json:"position"`
}

func (e *StakingEvent) Kind() string       { return "StakingEvent" }
func (e *StakingEvent) Actor() adr.Address { return e.Staker }
func (e *StakingEvent) Time() uint64       { return e.StartTime }

// UnstakingEvent records a successful unstake with its reward payout.
type UnstakingEvent struct {
	Staker    adr.Address `json:"staker"`
	Amount    uint64      `json:"amount"`
	Reward    uint64      `json:"reward"`
	Total     uint64      `json:"total"`
	Timestamp uint64      `json:"timestamp"`
	Position  adr.Bytes32 `json:"position"`
}

func (e *UnstakingEvent) Kind() string       { return "UnstakingEvent" }
func (e *UnstakingEvent) Actor() adr.Address { return e.Staker }
func (e *UnstakingEvent) Time() uint64       { return e.Timestamp }

// ConfigUpdateEvent records one mutated configuration field.
type ConfigUpdateEvent struct {
	Admin     adr.Address `json:"admin"`
	Field     string      `json:"field"`
	OldValue  string      `json:"oldValue"`
	NewValue  string      `json:"newValue"`
	Timestamp uint64      `json:"timestamp"`
}

func (e *ConfigUpdateEvent) Kind() string       { return "ConfigUpdateEvent" }
func (e *ConfigUpdateEvent) Actor() adr.Address { return e.Admin }
func (e *ConfigUpdateEvent) Time() uint64       { return e.Timestamp }

// EmergencyPauseEvent records a pause flag flip.
type EmergencyPauseEvent struct {
	Admin     adr.Address `json:"admin"`
	Paused    bool        `json:"paused"`
	Reason    string      `json:"reason"`
	Timestamp uint64      `json:"timestamp"`
}

func (e *EmergencyPauseEvent) Kind() string       { return "EmergencyPauseEvent" }
func (e *EmergencyPauseEvent) Actor() adr.Address { return e.Admin }
func (e *EmergencyPauseEvent) Time() uint64       { return e.Timestamp }

// TokenBurnEvent records payment tokens burned for an NFT mint.
type TokenBurnEvent struct {
	Payer     adr.Address `json:"payer"`
	TokenMint adr.Address `json:"tokenMint"`
	Amount    uint64      `json:"amount"`
	Timestamp uint64      `json:"timestamp"`
}

func (e *TokenBurnEvent) Kind() string       { return "TokenBurnEvent" }
func (e *TokenBurnEvent) Actor() adr.Address { return e.Payer }
func (e *TokenBurnEvent) Time() uint64       { return e.Timestamp }
