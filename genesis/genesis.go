// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis bootstraps a fresh deployment from a JSON description:
// the payment token, its initial allocations and the staking configuration.
package genesis

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/adrtoken/adrstake/adr"
	"github.com/adrtoken/adrstake/log"
	"github.com/adrtoken/adrstake/staking"
	"github.com/adrtoken/adrstake/state"
	"github.com/adrtoken/adrstake/token"
)

var logger = log.WithContext("pkg", "genesis")

// Config describes a deployment.
type Config struct {
	Mint        adr.Address    `json:"mint"`
	Admin       adr.Address    `json:"admin"`
	Collection  Collection     `json:"collection"`
	Allocations []Allocation   `json:"allocations"`
	Staking     *StakingConfig `json:"staking,omitempty"`
}

// Collection is the NFT collection metadata created at bootstrap.
type Collection struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	URI    string `json:"uri"`
}

// Allocation is an initial token balance.
type Allocation struct {
	Address adr.Address `json:"address"`
	Amount  uint64      `json:"amount"`
}

// StakingConfig optionally enables staking at bootstrap.
type StakingConfig struct {
	Enabled        bool   `json:"enabled"`
	RateBps        uint64 `json:"rateBps"`
	MaxStakeAmount uint64 `json:"maxStakeAmount,omitempty"`
	ReserveDeposit uint64 `json:"reserveDeposit,omitempty"`
}

// Load reads a genesis config from a JSON file, in strict mode.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "genesis: open config")
	}
	defer f.Close()

	decoder := json.NewDecoder(f)
	decoder.DisallowUnknownFields()
	var cfg Config
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "genesis: decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the config for structural mistakes.
func (c *Config) Validate() error {
	if c.Mint.IsZero() {
		return errors.New("genesis: mint address is required")
	}
	if c.Admin.IsZero() {
		return errors.New("genesis: admin address is required")
	}
	if c.Collection.Name == "" || c.Collection.Symbol == "" || c.Collection.URI == "" {
		return errors.New("genesis: collection name, symbol and uri are required")
	}
	for _, alloc := range c.Allocations {
		if alloc.Address.IsZero() {
			return errors.New("genesis: allocation to the zero address")
		}
	}
	if s := c.Staking; s != nil {
		if s.RateBps == 0 || s.RateBps > adr.MaxRewardRateBps {
			return errors.Errorf("genesis: reward rate %d out of range [1,%d]", s.RateBps, adr.MaxRewardRateBps)
		}
	}
	return nil
}

// Build applies the config to an empty state and commits it. It fails if the
// deployment already exists.
func Build(st *state.State, cfg *Config, now uint64) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	tok := token.New(cfg.Mint, st)
	if err := tok.Initialize(cfg.Admin, adr.TokenDecimals); err != nil {
		return errors.Wrap(err, "genesis: initialize mint")
	}
	for _, alloc := range cfg.Allocations {
		if err := tok.Mint(cfg.Admin, alloc.Address, alloc.Amount); err != nil {
			return errors.Wrap(err, "genesis: allocate")
		}
	}

	engine := staking.New(st)
	if _, err := engine.InitializeCollection(cfg.Admin, cfg.Collection.Name, cfg.Collection.Symbol, cfg.Collection.URI, now); err != nil {
		return errors.Wrap(err, "genesis: initialize collection")
	}
	if _, err := engine.SetPaymentToken(cfg.Admin, cfg.Mint, now); err != nil {
		return errors.Wrap(err, "genesis: set payment token")
	}

	if s := cfg.Staking; s != nil {
		if _, err := engine.ConfigureStaking(cfg.Admin, s.Enabled, s.RateBps, now); err != nil {
			return errors.Wrap(err, "genesis: configure staking")
		}
		if s.MaxStakeAmount > 0 {
			if _, err := engine.UpdateMaxStakeAmount(cfg.Admin, s.MaxStakeAmount, now); err != nil {
				return errors.Wrap(err, "genesis: set max stake amount")
			}
		}
		if _, err := engine.InitializeRewardReserve(cfg.Admin, now); err != nil {
			return errors.Wrap(err, "genesis: initialize reward reserve")
		}
		if s.ReserveDeposit > 0 {
			if _, err := engine.DepositRewardReserve(cfg.Admin, s.ReserveDeposit, now); err != nil {
				return errors.Wrap(err, "genesis: fund reward reserve")
			}
		}
	}

	if err := st.Commit(); err != nil {
		return errors.Wrap(err, "genesis: commit")
	}
	logger.Info("genesis built", "mint", cfg.Mint, "admin", cfg.Admin, "allocations", len(cfg.Allocations))
	return nil
}
