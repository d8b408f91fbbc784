// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/adrtoken/adrstake/adr"
)

// CalcReward computes the reward for a position:
//
//	floor(floor(amount * rateBps / 10000) * multiplier / 100)
//
// All arithmetic is checked; a wrap is rejected as ErrMathOverflow, never
// truncated.
func CalcReward(amount, rateBps uint64, period Period) (uint64, error) {
	base, overflow := math.SafeMul(amount, rateBps)
	if overflow {
		return 0, ErrMathOverflow
	}
	base /= adr.RateDenominator

	reward, overflow := math.SafeMul(base, period.Multiplier())
	if overflow {
		return 0, ErrMathOverflow
	}
	return reward / adr.MultiplierDenominator, nil
}

// UnlockTime computes the unlock timestamp for a stake created at startTime.
func UnlockTime(startTime uint64, period Period) (uint64, error) {
	unlock, overflow := math.SafeAdd(startTime, period.Duration())
	if overflow {
		return 0, ErrMathOverflow
	}
	return unlock, nil
}
