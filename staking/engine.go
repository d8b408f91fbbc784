// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking implements the token-custody and time-locked-reward engine:
// a keyed ledger of stake positions, the administrative config record, the
// reward reserve and the instruction set that mutates them.
//
// Engine methods validate every precondition before touching state. A failed
// operation returns a domain *Error and must leave no partial effects; the
// runtime additionally wraps each instruction in a state checkpoint and
// reverts it on error.
package staking

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/adrtoken/adrstake/adr"
	"github.com/adrtoken/adrstake/log"
	"github.com/adrtoken/adrstake/state"
	"github.com/adrtoken/adrstake/token"
)

// EngineAddress is the record space all engine state lives under.
var EngineAddress = adr.BytesToAddress([]byte("staking-engine"))

var (
	logger = log.WithContext("pkg", "staking")

	configKey     = adr.Blake2b([]byte("config-record"))
	collectionKey = adr.Blake2b([]byte("collection-meta"))
)

func SetLogger(l log.Logger) {
	logger = l
}

// Engine exposes the staking instruction set over a world state.
type Engine struct {
	state *state.State
}

// New creates an engine bound to the given state.
func New(state *state.State) *Engine {
	return &Engine{state}
}

//
// Storage access
//

// Config reads the configuration record.
func (e *Engine) Config() (*Config, error) {
	var cfg Config
	if err := e.state.GetStructuredStorage(EngineAddress, configKey, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (e *Engine) setConfig(cfg *Config) error {
	return e.state.SetStructuredStorage(EngineAddress, configKey, cfg)
}

// requireConfig reads the config and fails when it was never initialized.
func (e *Engine) requireConfig() (*Config, error) {
	cfg, err := e.Config()
	if err != nil {
		return nil, err
	}
	if !cfg.Initialized {
		return nil, ErrConfigNotFound
	}
	return cfg, nil
}

// GetPosition reads a staker's position. The second return is false when no
// position was ever created.
func (e *Engine) GetPosition(staker adr.Address) (*Position, bool, error) {
	cfg, err := e.requireConfig()
	if err != nil {
		return nil, false, err
	}
	key := adr.DeriveStakeKey(staker, cfg.PaymentToken)
	ok, err := e.state.HasStorage(EngineAddress, key)
	if err != nil || !ok {
		return nil, false, err
	}
	var pos Position
	if err := e.state.GetStructuredStorage(EngineAddress, key, &pos); err != nil {
		return nil, false, err
	}
	return &pos, true, nil
}

func (e *Engine) setPosition(key adr.Bytes32, pos *Position) error {
	return e.state.SetStructuredStorage(EngineAddress, key, pos)
}

func (e *Engine) token(cfg *Config) *token.Token {
	return token.New(cfg.PaymentToken, e.state)
}

func (e *Engine) counter() (uint64, error) {
	var c nftCounter
	if err := e.state.GetStructuredStorage(EngineAddress, adr.DeriveCounterKey(), &c); err != nil {
		return 0, err
	}
	return c.Count, nil
}

func (e *Engine) setCounter(count uint64) error {
	return e.state.SetStructuredStorage(EngineAddress, adr.DeriveCounterKey(), &nftCounter{Count: count})
}

func requireAdmin(cfg *Config, caller adr.Address) error {
	if cfg.Admin != caller {
		return ErrUnauthorized
	}
	return nil
}

//
// ConfigStore operations
//

// InitializeCollection creates the configuration record and the collection
// metadata, establishing the caller as admin. Staking starts disabled and
// unpaused with no payment token configured.
func (e *Engine) InitializeCollection(caller adr.Address, name, symbol, uri string, now uint64) ([]Event, error) {
	if name == "" || symbol == "" || uri == "" {
		return nil, ErrInvalidInput
	}
	cfg, err := e.Config()
	if err != nil {
		return nil, err
	}
	if cfg.Initialized {
		return nil, ErrConfigExists
	}

	if err := e.setConfig(&Config{
		Initialized:    true,
		Admin:          caller,
		MaxStakeAmount: adr.InitialMaxStakeAmount,
	}); err != nil {
		return nil, err
	}
	if err := e.state.SetStructuredStorage(EngineAddress, collectionKey, &CollectionMeta{
		Name:      name,
		Symbol:    symbol,
		URI:       uri,
		Authority: caller,
	}); err != nil {
		return nil, err
	}
	if err := e.setCounter(0); err != nil {
		return nil, err
	}

	logger.Info("collection initialized", "admin", caller, "name", name)
	return []Event{&ConfigUpdateEvent{
		Admin:     caller,
		Field:     "admin",
		OldValue:  adr.Address{}.String(),
		NewValue:  caller.String(),
		Timestamp: now,
	}}, nil
}

// SetPaymentToken points the engine at the fungible token accepted for
// staking and payments. The mint must already exist in the token ledger.
func (e *Engine) SetPaymentToken(caller adr.Address, mint adr.Address, now uint64) ([]Event, error) {
	cfg, err := e.requireConfig()
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(cfg, caller); err != nil {
		return nil, err
	}
	if cfg.EmergencyPaused {
		return nil, ErrSystemPaused
	}
	if mint.IsZero() {
		return nil, ErrInvalidPaymentToken
	}
	exists, err := token.New(mint, e.state).Exists()
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrInvalidPaymentToken
	}

	old := cfg.PaymentToken
	cfg.PaymentToken = mint
	if err := e.setConfig(cfg); err != nil {
		return nil, err
	}

	logger.Info("payment token set", "mint", mint)
	return []Event{&ConfigUpdateEvent{
		Admin:     caller,
		Field:     "payment_token",
		OldValue:  old.String(),
		NewValue:  mint.String(),
		Timestamp: now,
	}}, nil
}

// ConfigureStaking flips the staking enable flag and sets the base reward
// rate. The rate is basis points in [1, 10000]; a payment token must be
// configured first.
func (e *Engine) ConfigureStaking(caller adr.Address, enabled bool, rateBps uint64, now uint64) ([]Event, error) {
	cfg, err := e.requireConfig()
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(cfg, caller); err != nil {
		return nil, err
	}
	if cfg.EmergencyPaused {
		return nil, ErrSystemPaused
	}
	if rateBps == 0 || rateBps > adr.MaxRewardRateBps {
		return nil, ErrInvalidInput
	}
	if cfg.PaymentToken.IsZero() {
		return nil, ErrPaymentTokenNotConfigured
	}

	oldEnabled, oldRate := cfg.StakingEnabled, cfg.RewardRateBps
	cfg.StakingEnabled = enabled
	cfg.RewardRateBps = rateBps
	if err := e.setConfig(cfg); err != nil {
		return nil, err
	}

	logger.Info("staking configured", "enabled", enabled, "rateBps", rateBps)
	return []Event{
		&ConfigUpdateEvent{
			Admin:     caller,
			Field:     "staking_enabled",
			OldValue:  fmt.Sprintf("%t", oldEnabled),
			NewValue:  fmt.Sprintf("%t", enabled),
			Timestamp: now,
		},
		&ConfigUpdateEvent{
			Admin:     caller,
			Field:     "staking_reward_rate",
			OldValue:  fmt.Sprintf("%d", oldRate),
			NewValue:  fmt.Sprintf("%d", rateBps),
			Timestamp: now,
		},
	}, nil
}

// UpdateMaxStakeAmount changes the per-position stake ceiling. Zero is
// rejected.
func (e *Engine) UpdateMaxStakeAmount(caller adr.Address, newMax uint64, now uint64) ([]Event, error) {
	cfg, err := e.requireConfig()
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(cfg, caller); err != nil {
		return nil, err
	}
	if cfg.EmergencyPaused {
		return nil, ErrSystemPaused
	}
	if newMax == 0 {
		return nil, ErrInvalidStakeAmount
	}

	old := cfg.MaxStakeAmount
	cfg.MaxStakeAmount = newMax
	if err := e.setConfig(cfg); err != nil {
		return nil, err
	}

	return []Event{&ConfigUpdateEvent{
		Admin:     caller,
		Field:     "max_stake_amount",
		OldValue:  fmt.Sprintf("%d", old),
		NewValue:  fmt.Sprintf("%d", newMax),
		Timestamp: now,
	}}, nil
}

// UpdateAdmin hands the admin role to a new identity. The zero identity is
// rejected; handing the role to yourself is a no-op but allowed.
func (e *Engine) UpdateAdmin(caller adr.Address, newAdmin adr.Address, now uint64) ([]Event, error) {
	cfg, err := e.requireConfig()
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(cfg, caller); err != nil {
		return nil, err
	}
	if cfg.EmergencyPaused {
		return nil, ErrSystemPaused
	}
	if newAdmin.IsZero() {
		return nil, ErrInvalidAdmin
	}

	old := cfg.Admin
	cfg.Admin = newAdmin
	if err := e.setConfig(cfg); err != nil {
		return nil, err
	}

	logger.Info("admin updated", "old", old, "new", newAdmin)
	return []Event{&ConfigUpdateEvent{
		Admin:     caller,
		Field:     "admin",
		OldValue:  old.String(),
		NewValue:  newAdmin.String(),
		Timestamp: now,
	}}, nil
}

// SetEmergencyPause flips the emergency pause flag. Unlike every other admin
// operation it stays callable while paused, otherwise the system could never
// be unpaused.
func (e *Engine) SetEmergencyPause(caller adr.Address, paused bool, reason string, now uint64) ([]Event, error) {
	cfg, err := e.requireConfig()
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(cfg, caller); err != nil {
		return nil, err
	}

	cfg.EmergencyPaused = paused
	if err := e.setConfig(cfg); err != nil {
		return nil, err
	}

	logger.Warn("emergency pause updated", "paused", paused, "reason", reason)
	return []Event{&EmergencyPauseEvent{
		Admin:     caller,
		Paused:    paused,
		Reason:    reason,
		Timestamp: now,
	}}, nil
}

//
// Reserve management
//

// InitializeRewardReserve binds the config to the derived reward reserve
// custody account of the current payment token. Re-running it resolves to the
// same account, so it never duplicates funds.
func (e *Engine) InitializeRewardReserve(caller adr.Address, now uint64) ([]Event, error) {
	cfg, err := e.requireConfig()
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(cfg, caller); err != nil {
		return nil, err
	}
	if cfg.EmergencyPaused {
		return nil, ErrSystemPaused
	}
	if cfg.PaymentToken.IsZero() {
		return nil, ErrPaymentTokenNotConfigured
	}

	reserve := adr.DeriveRewardReserve(cfg.PaymentToken)
	old := cfg.RewardReserve
	cfg.RewardReserve = reserve
	if err := e.setConfig(cfg); err != nil {
		return nil, err
	}

	logger.Info("reward reserve initialized", "reserve", reserve)
	return []Event{&ConfigUpdateEvent{
		Admin:     caller,
		Field:     "reward_reserve",
		OldValue:  old.String(),
		NewValue:  reserve.String(),
		Timestamp: now,
	}}, nil
}

// DepositRewardReserve moves amount from the admin's token account into the
// reward reserve.
func (e *Engine) DepositRewardReserve(caller adr.Address, amount uint64, now uint64) ([]Event, error) {
	cfg, err := e.requireConfig()
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(cfg, caller); err != nil {
		return nil, err
	}
	if cfg.EmergencyPaused {
		return nil, ErrSystemPaused
	}
	if amount == 0 {
		return nil, ErrInvalidPaymentAmount
	}
	if cfg.RewardReserve.IsZero() {
		return nil, ErrInvalidRewardReserve
	}

	ok, err := e.token(cfg).Transfer(caller, cfg.RewardReserve, amount)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInsufficientFunds
	}

	logger.Info("reward reserve deposit", "amount", amount)
	return []Event{&ConfigUpdateEvent{
		Admin:     caller,
		Field:     "reward_reserve_deposit",
		OldValue:  "",
		NewValue:  fmt.Sprintf("%d", amount),
		Timestamp: now,
	}}, nil
}

//
// Stake / Unstake
//

// Stake locks amount of the payment token for the chosen period. The
// position identity is derived from (staker, payment token); a second stake
// on the same identity fails, it never overwrites.
func (e *Engine) Stake(staker adr.Address, amount uint64, period Period, now uint64) ([]Event, error) {
	cfg, err := e.requireConfig()
	if err != nil {
		return nil, err
	}
	if cfg.EmergencyPaused {
		return nil, ErrSystemPaused
	}
	if !cfg.StakingEnabled {
		return nil, ErrStakingNotEnabled
	}
	if amount == 0 {
		return nil, ErrInvalidStakeAmount
	}
	if !period.Valid() {
		return nil, ErrInvalidInput
	}
	if amount > cfg.MaxStakeAmount {
		return nil, ErrStakeAmountTooLarge
	}

	tok := e.token(cfg)
	balance, err := tok.Balance(staker)
	if err != nil {
		return nil, err
	}
	if balance < amount {
		return nil, ErrInsufficientFunds
	}

	key := adr.DeriveStakeKey(staker, cfg.PaymentToken)
	exists, err := e.state.HasStorage(EngineAddress, key)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrStakeExists
	}

	unlock, err := UnlockTime(now, period)
	if err != nil {
		return nil, err
	}

	custody := adr.DeriveCustodyAccount(cfg.PaymentToken)
	if ok, err := tok.Transfer(staker, custody, amount); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInsufficientFunds
	}

	if err := e.setPosition(key, &Position{
		Owner:      staker,
		Amount:     amount,
		StartTime:  now,
		UnlockTime: unlock,
		Period:     period,
	}); err != nil {
		return nil, err
	}

	logger.Info("staked", "staker", staker, "amount", amount, "period", period)
	return []Event{&StakingEvent{
		Staker:     staker,
		Amount:     amount,
		Period:     uint32(period),
		StartTime:  now,
		UnlockTime: unlock,
		Position:   key,
	}}, nil
}

// Unstake releases a matured position: principal returns from custody, the
// reward is paid out of the reserve and the position is terminally marked
// claimed.
func (e *Engine) Unstake(staker adr.Address, now uint64) ([]Event, error) {
	cfg, err := e.requireConfig()
	if err != nil {
		return nil, err
	}
	if cfg.EmergencyPaused {
		return nil, ErrSystemPaused
	}

	key := adr.DeriveStakeKey(staker, cfg.PaymentToken)
	exists, err := e.state.HasStorage(EngineAddress, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUnauthorized
	}
	var pos Position
	if err := e.state.GetStructuredStorage(EngineAddress, key, &pos); err != nil {
		return nil, err
	}
	if pos.Owner != staker {
		return nil, ErrUnauthorized
	}
	if pos.Claimed {
		return nil, ErrRewardsAlreadyClaimed
	}
	if now < pos.UnlockTime {
		return nil, ErrStakingPeriodNotCompleted
	}

	reward, err := CalcReward(pos.Amount, cfg.RewardRateBps, pos.Period)
	if err != nil {
		return nil, err
	}

	tok := e.token(cfg)
	if reward > 0 {
		if cfg.RewardReserve.IsZero() {
			return nil, ErrInvalidRewardReserve
		}
		reserveBalance, err := tok.Balance(cfg.RewardReserve)
		if err != nil {
			return nil, err
		}
		if reserveBalance < reward {
			return nil, ErrInsufficientRewardReserve
		}
	}

	custody := adr.DeriveCustodyAccount(cfg.PaymentToken)
	if ok, err := tok.Transfer(custody, staker, pos.Amount); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInsufficientFunds
	}
	if reward > 0 {
		if ok, err := tok.Transfer(cfg.RewardReserve, staker, reward); err != nil {
			return nil, err
		} else if !ok {
			return nil, ErrInsufficientRewardReserve
		}
	}

	pos.Claimed = true
	if err := e.setPosition(key, &pos); err != nil {
		return nil, err
	}

	total, overflow := math.SafeAdd(pos.Amount, reward)
	if overflow {
		return nil, ErrMathOverflow
	}

	logger.Info("unstaked", "staker", staker, "amount", pos.Amount, "reward", reward)
	return []Event{&UnstakingEvent{
		Staker:    staker,
		Amount:    pos.Amount,
		Reward:    reward,
		Total:     total,
		Timestamp: now,
		Position:  key,
	}}, nil
}

//
// NFT payment surface
//

// MintWithPayment burns amount of the payment token from the payer and
// advances the collection mint counter. Metadata creation and the NFT mint
// itself live with the external collaborator; only the payment burn and the
// counter are the engine's concern.
func (e *Engine) MintWithPayment(payer adr.Address, name, symbol, uri string, amount uint64, now uint64) ([]Event, error) {
	cfg, err := e.requireConfig()
	if err != nil {
		return nil, err
	}
	if cfg.EmergencyPaused {
		return nil, ErrSystemPaused
	}
	if name == "" || symbol == "" || uri == "" {
		return nil, ErrInvalidInput
	}
	if amount == 0 {
		return nil, ErrInvalidPaymentAmount
	}
	if cfg.PaymentToken.IsZero() {
		return nil, ErrPaymentTokenNotConfigured
	}

	tok := e.token(cfg)
	ok, err := tok.Burn(payer, amount)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInsufficientFunds
	}

	count, err := e.counter()
	if err != nil {
		return nil, err
	}
	newCount, overflow := math.SafeAdd(count, 1)
	if overflow {
		return nil, ErrMathOverflow
	}
	if err := e.setCounter(newCount); err != nil {
		return nil, err
	}

	logger.Info("payment burned for mint", "payer", payer, "amount", amount, "minted", newCount)
	return []Event{&TokenBurnEvent{
		Payer:     payer,
		TokenMint: cfg.PaymentToken,
		Amount:    amount,
		Timestamp: now,
	}}, nil
}
