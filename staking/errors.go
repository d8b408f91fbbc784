// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import "fmt"

// Error is a domain error with a stable numeric code. Callers branch on the
// identity of the error value, never on the message text.
type Error struct {
	Code uint32
	Name string
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

func newError(code uint32, name, msg string) *Error {
	return &Error{Code: code, Name: name, msg: msg}
}

var (
	ErrUnauthorized              = newError(6000, "Unauthorized", "staking: caller is not authorized to perform this action")
	ErrInvalidPaymentToken       = newError(6001, "InvalidPaymentToken", "staking: invalid payment token")
	ErrInvalidPaymentAmount      = newError(6002, "InvalidPaymentAmount", "staking: invalid payment amount")
	ErrPaymentTokenNotConfigured = newError(6003, "PaymentTokenNotConfigured", "staking: payment token not configured")
	ErrStakingNotEnabled         = newError(6004, "StakingNotEnabled", "staking: staking is not enabled")
	ErrInvalidStakeAmount        = newError(6005, "InvalidStakeAmount", "staking: invalid stake amount")
	ErrInsufficientFunds         = newError(6006, "InsufficientFunds", "staking: insufficient funds")
	ErrStakingPeriodNotCompleted = newError(6007, "StakingPeriodNotCompleted", "staking: staking period not completed")
	ErrRewardsAlreadyClaimed     = newError(6008, "RewardsAlreadyClaimed", "staking: rewards already claimed")
	ErrSystemPaused              = newError(6010, "SystemPaused", "staking: system is paused for emergency")
	ErrInvalidInput              = newError(6011, "InvalidInput", "staking: invalid input value")
	ErrMathOverflow              = newError(6012, "MathOverflow", "staking: math overflow")
	ErrStakeAmountTooLarge       = newError(6013, "StakeAmountTooLarge", "staking: stake amount exceeds the allowed maximum")
	ErrStakeAlreadyClaimed       = newError(6014, "StakeAlreadyClaimed", "staking: stake already claimed")
	ErrInsufficientRewardReserve = newError(6015, "InsufficientRewardReserve", "staking: insufficient reward reserve")
	ErrInvalidRewardReserve      = newError(6016, "InvalidRewardReserve", "staking: invalid reward reserve account")
	ErrInvalidAdmin              = newError(6017, "InvalidAdmin", "staking: invalid admin identity")
	ErrStakeExists               = newError(6018, "StakeExists", "staking: stake position already exists")
	ErrConfigExists              = newError(6019, "ConfigExists", "staking: configuration already initialized")
	ErrConfigNotFound            = newError(6020, "ConfigNotFound", "staking: configuration not initialized")
)

// ErrorCode extracts the stable code of a domain error, or 0 when err is not
// one.
func ErrorCode(err error) uint32 {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return 0
}

// String implements fmt.Stringer for log fields.
func (e *Error) String() string {
	return fmt.Sprintf("%s(%d)", e.Name, e.Code)
}
