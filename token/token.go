// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements the fungible payment-token ledger. Balances are
// plain holder accounts; custody accounts are holders owned by the escrow
// authority and only the engine moves value out of them.
package token

import (
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/adrtoken/adrstake/adr"
	"github.com/adrtoken/adrstake/state"
)

var (
	mintInfoKey = adr.Blake2b([]byte("mint-info"))

	// ErrBalanceOverflow is returned when a credit would wrap a balance or
	// the total supply.
	ErrBalanceOverflow = errors.New("token: balance overflow")
)

func accountKey(holder adr.Address) adr.Bytes32 {
	return adr.Blake2b([]byte("token-account"), holder.Bytes())
}

// Token binds ledger operations to one mint.
type Token struct {
	mint  adr.Address
	state *state.State
}

// New creates a token instance for the given mint.
func New(mint adr.Address, state *state.State) *Token {
	return &Token{mint, state}
}

// Address returns the mint address.
func (t *Token) Address() adr.Address {
	return t.mint
}

func (t *Token) getInfo() (*mintInfo, error) {
	var info mintInfo
	if err := t.state.GetStructuredStorage(t.mint, mintInfoKey, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (t *Token) setInfo(info *mintInfo) error {
	return t.state.SetStructuredStorage(t.mint, mintInfoKey, info)
}

// Exists returns whether the mint has been initialized.
func (t *Token) Exists() (bool, error) {
	info, err := t.getInfo()
	if err != nil {
		return false, err
	}
	return info.Initialized, nil
}

// Initialize creates the mint record. It fails if the mint already exists.
func (t *Token) Initialize(authority adr.Address, decimals uint8) error {
	info, err := t.getInfo()
	if err != nil {
		return err
	}
	if info.Initialized {
		return errors.New("token: mint already initialized")
	}
	return t.setInfo(&mintInfo{
		Initialized: true,
		Decimals:    decimals,
		Authority:   authority,
	})
}

// Decimals returns the mint's decimal count.
func (t *Token) Decimals() (uint8, error) {
	info, err := t.getInfo()
	if err != nil {
		return 0, err
	}
	return info.Decimals, nil
}

// TotalSupply returns the minted supply net of burns.
func (t *Token) TotalSupply() (uint64, error) {
	info, err := t.getInfo()
	if err != nil {
		return 0, err
	}
	return info.Supply, nil
}

// Balance returns the holder's balance.
func (t *Token) Balance(holder adr.Address) (uint64, error) {
	var acc account
	if err := t.state.GetStructuredStorage(t.mint, accountKey(holder), &acc); err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

func (t *Token) setBalance(holder adr.Address, balance uint64) error {
	return t.state.SetStructuredStorage(t.mint, accountKey(holder), &account{Balance: balance})
}

// AddBalance credits the holder.
func (t *Token) AddBalance(holder adr.Address, amount uint64) error {
	bal, err := t.Balance(holder)
	if err != nil {
		return err
	}
	newBal, overflow := math.SafeAdd(bal, amount)
	if overflow {
		return ErrBalanceOverflow
	}
	return t.setBalance(holder, newBal)
}

// SubBalance debits the holder. It returns false when the balance is short,
// leaving the account untouched.
func (t *Token) SubBalance(holder adr.Address, amount uint64) (bool, error) {
	bal, err := t.Balance(holder)
	if err != nil {
		return false, err
	}
	if bal < amount {
		return false, nil
	}
	return true, t.setBalance(holder, bal-amount)
}

// Transfer moves amount between holders. It returns false when the sender's
// balance is short; no partial move happens.
func (t *Token) Transfer(from, to adr.Address, amount uint64) (bool, error) {
	ok, err := t.SubBalance(from, amount)
	if err != nil || !ok {
		return ok, err
	}
	return true, t.AddBalance(to, amount)
}

// Mint credits new supply to the holder. Only the mint authority may call it.
func (t *Token) Mint(authority, to adr.Address, amount uint64) error {
	info, err := t.getInfo()
	if err != nil {
		return err
	}
	if !info.Initialized {
		return errors.New("token: mint not initialized")
	}
	if info.Authority != authority {
		return errors.New("token: not mint authority")
	}
	newSupply, overflow := math.SafeAdd(info.Supply, amount)
	if overflow {
		return ErrBalanceOverflow
	}
	if err := t.AddBalance(to, amount); err != nil {
		return err
	}
	info.Supply = newSupply
	return t.setInfo(info)
}

// Burn destroys amount from the holder's balance. It returns false when the
// balance is short.
func (t *Token) Burn(from adr.Address, amount uint64) (bool, error) {
	ok, err := t.SubBalance(from, amount)
	if err != nil || !ok {
		return ok, err
	}
	info, err := t.getInfo()
	if err != nil {
		return false, err
	}
	info.Supply -= amount
	return true, t.setInfo(info)
}
