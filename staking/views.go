// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/adrtoken/adrstake/adr"
	"github.com/adrtoken/adrstake/token"
)

//
// Read-only views - no state change
//

// StakeSummary computes the per-staker staking view at the given time. A
// staker with no position gets the zero summary, not an error.
func (e *Engine) StakeSummary(staker adr.Address, now uint64) (*StakeSummary, error) {
	cfg, err := e.requireConfig()
	if err != nil {
		return nil, err
	}

	pos, ok, err := e.GetPosition(staker)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &StakeSummary{}, nil
	}

	reward, err := CalcReward(pos.Amount, cfg.RewardRateBps, pos.Period)
	if err != nil {
		return nil, err
	}

	var remaining uint64
	if now < pos.UnlockTime {
		remaining = pos.UnlockTime - now
	}

	return &StakeSummary{
		IsStaking:       pos.Amount > 0 && !pos.Claimed,
		Amount:          pos.Amount,
		StartTime:       pos.StartTime,
		UnlockTime:      pos.UnlockTime,
		Period:          uint32(pos.Period),
		Claimed:         pos.Claimed,
		CanUnstake:      now >= pos.UnlockTime && !pos.Claimed,
		EstimatedReward: reward,
		TimeRemaining:   remaining,
	}, nil
}

// ConfigSummary returns the configuration view, including the live reserve
// balance.
func (e *Engine) ConfigSummary() (*ConfigSummary, error) {
	cfg, err := e.requireConfig()
	if err != nil {
		return nil, err
	}

	var reserveBalance uint64
	if !cfg.RewardReserve.IsZero() {
		reserveBalance, err = token.New(cfg.PaymentToken, e.state).Balance(cfg.RewardReserve)
		if err != nil {
			return nil, err
		}
	}

	return &ConfigSummary{
		PaymentToken:    cfg.PaymentToken,
		Admin:           cfg.Admin,
		StakingEnabled:  cfg.StakingEnabled,
		RewardRateBps:   cfg.RewardRateBps,
		MaxStakeAmount:  cfg.MaxStakeAmount,
		EmergencyPaused: cfg.EmergencyPaused,
		RewardReserve:   cfg.RewardReserve,
		ReserveBalance:  reserveBalance,
	}, nil
}

// CollectionInfo returns the collection metadata and the mint count.
func (e *Engine) CollectionInfo() (*CollectionInfo, error) {
	if _, err := e.requireConfig(); err != nil {
		return nil, err
	}
	var meta CollectionMeta
	if err := e.state.GetStructuredStorage(EngineAddress, collectionKey, &meta); err != nil {
		return nil, err
	}
	count, err := e.counter()
	if err != nil {
		return nil, err
	}
	return &CollectionInfo{
		Name:   meta.Name,
		Symbol: meta.Symbol,
		URI:    meta.URI,
		Minted: count,
	}, nil
}
