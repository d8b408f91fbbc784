// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import "fmt"

// Period is a fixed lock duration, identified by its day count. Each period
// carries a reward multiplier in percent. The set is closed; adding a period
// is a code change, not data.
type Period uint32

const (
	Period7Days   Period = 7
	Period14Days  Period = 14
	Period30Days  Period = 30
	Period90Days  Period = 90
	Period180Days Period = 180
)

const secondsPerDay = 86400

// Valid reports whether p is a member of the period set.
func (p Period) Valid() bool {
	switch p {
	case Period7Days, Period14Days, Period30Days, Period90Days, Period180Days:
		return true
	}
	return false
}

// Duration returns the lock duration in seconds.
func (p Period) Duration() uint64 {
	return uint64(p) * secondsPerDay
}

// Multiplier returns the reward multiplier in percent. 105 means the base
// reward plus a 5% bonus.
func (p Period) Multiplier() uint64 {
	switch p {
	case Period7Days:
		return 105
	case Period14Days:
		return 110
	case Period30Days:
		return 120
	case Period90Days:
		return 140
	case Period180Days:
		return 150
	}
	return 0
}

func (p Period) String() string {
	if !p.Valid() {
		return fmt.Sprintf("invalid(%d)", uint32(p))
	}
	return fmt.Sprintf("%dd", uint32(p))
}

// Periods lists all valid periods in ascending duration order.
func Periods() []Period {
	return []Period{Period7Days, Period14Days, Period30Days, Period90Days, Period180Days}
}

// ParsePeriod converts a day count into a Period, rejecting values outside
// the set.
func ParsePeriod(days uint32) (Period, error) {
	p := Period(days)
	if !p.Valid() {
		return 0, ErrInvalidInput
	}
	return p, nil
}
