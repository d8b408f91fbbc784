// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package adr

// Constants of the ADRStake protocol.
const (
	// RateDenominator is the basis-point denominator for reward rates.
	// A rate of 10000 means 100%.
	RateDenominator = uint64(10000)

	// MaxRewardRateBps is the highest accepted reward rate.
	MaxRewardRateBps = uint64(10000)

	// MultiplierDenominator is the percentage denominator of period
	// multipliers: 105 means a 5% bonus.
	MultiplierDenominator = uint64(100)

	// TokenDecimals is the payment token's decimal count.
	TokenDecimals = 9

	// InitialMaxStakeAmount is the per-position stake ceiling seeded at
	// deployment: 1 million tokens in base units.
	InitialMaxStakeAmount = uint64(1_000_000) * 1e9
)
