// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalcReward(t *testing.T) {
	tests := []struct {
		name    string
		amount  uint64
		rateBps uint64
		period  Period
		reward  uint64
	}{
		{"10% for 7 days", 1000, 1000, Period7Days, 105},
		{"10% for 180 days", 1000, 1000, Period180Days, 150},
		{"5% of 1 unit rounds down to zero", 1, 500, Period7Days, 0},
		{"100% rate", 1000, 10000, Period7Days, 1050},
		{"zero rate", 1000, 0, Period7Days, 0},
		{"floor applied after rate", 999, 1000, Period7Days, 103},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reward, err := CalcReward(tt.amount, tt.rateBps, tt.period)
			assert.NoError(t, err)
			assert.Equal(t, tt.reward, reward)
		})
	}
}

func TestCalcRewardOverflow(t *testing.T) {
	_, err := CalcReward(math.MaxUint64, 2, Period7Days)
	assert.Equal(t, ErrMathOverflow, err)
}

func TestUnlockTime(t *testing.T) {
	unlock, err := UnlockTime(1_700_000_000, Period7Days)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1_700_000_000+7*86400), unlock)

	_, err = UnlockTime(math.MaxUint64-1, Period7Days)
	assert.Equal(t, ErrMathOverflow, err)
}

func TestPeriods(t *testing.T) {
	tests := []struct {
		period     Period
		duration   uint64
		multiplier uint64
	}{
		{Period7Days, 7 * 86400, 105},
		{Period14Days, 14 * 86400, 110},
		{Period30Days, 30 * 86400, 120},
		{Period90Days, 90 * 86400, 140},
		{Period180Days, 180 * 86400, 150},
	}

	for _, tt := range tests {
		t.Run(tt.period.String(), func(t *testing.T) {
			assert.True(t, tt.period.Valid())
			assert.Equal(t, tt.duration, tt.period.Duration())
			assert.Equal(t, tt.multiplier, tt.period.Multiplier())
		})
	}

	assert.False(t, Period(0).Valid())
	assert.False(t, Period(8).Valid())
	assert.Equal(t, uint64(0), Period(8).Multiplier())

	_, err := ParsePeriod(15)
	assert.Equal(t, ErrInvalidInput, err)
	p, err := ParsePeriod(30)
	assert.NoError(t, err)
	assert.Equal(t, Period30Days, p)
}
