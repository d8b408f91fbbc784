// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adrtoken/adrstake/adr"
	"github.com/adrtoken/adrstake/kv"
	"github.com/adrtoken/adrstake/state"
)

var (
	mint      = adr.BytesToAddress([]byte("mint"))
	authority = adr.BytesToAddress([]byte("authority"))
	alice     = adr.BytesToAddress([]byte("alice"))
	bob       = adr.BytesToAddress([]byte("bob"))
)

func newTestToken(t *testing.T) *Token {
	db, err := kv.NewMem()
	assert.NoError(t, err)
	tok := New(mint, state.New(db))
	assert.NoError(t, tok.Initialize(authority, adr.TokenDecimals))
	return tok
}

func TestInitialize(t *testing.T) {
	db, err := kv.NewMem()
	assert.NoError(t, err)
	tok := New(mint, state.New(db))

	exists, err := tok.Exists()
	assert.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, tok.Initialize(authority, 9))

	exists, err = tok.Exists()
	assert.NoError(t, err)
	assert.True(t, exists)

	dec, err := tok.Decimals()
	assert.NoError(t, err)
	assert.Equal(t, uint8(9), dec)

	assert.Error(t, tok.Initialize(authority, 9))
}

func TestMint(t *testing.T) {
	tok := newTestToken(t)

	assert.Error(t, tok.Mint(alice, alice, 100), "non-authority mint should fail")
	assert.NoError(t, tok.Mint(authority, alice, 100))

	bal, err := tok.Balance(alice)
	assert.NoError(t, err)
	assert.Equal(t, uint64(100), bal)

	supply, err := tok.TotalSupply()
	assert.NoError(t, err)
	assert.Equal(t, uint64(100), supply)
}

func TestTransfer(t *testing.T) {
	tok := newTestToken(t)
	assert.NoError(t, tok.Mint(authority, alice, 100))

	ok, err := tok.Transfer(alice, bob, 60)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = tok.Transfer(alice, bob, 41)
	assert.NoError(t, err)
	assert.False(t, ok, "transferring more than balance should fail")

	aliceBal, _ := tok.Balance(alice)
	bobBal, _ := tok.Balance(bob)
	assert.Equal(t, uint64(40), aliceBal)
	assert.Equal(t, uint64(60), bobBal)
}

func TestBurn(t *testing.T) {
	tok := newTestToken(t)
	assert.NoError(t, tok.Mint(authority, alice, 100))

	ok, err := tok.Burn(alice, 30)
	assert.NoError(t, err)
	assert.True(t, ok)

	supply, err := tok.TotalSupply()
	assert.NoError(t, err)
	assert.Equal(t, uint64(70), supply)

	ok, err = tok.Burn(alice, 71)
	assert.NoError(t, err)
	assert.False(t, ok, "burning more than balance should fail")
}

func TestAddBalanceOverflow(t *testing.T) {
	tok := newTestToken(t)
	assert.NoError(t, tok.Mint(authority, alice, math.MaxUint64))

	err := tok.AddBalance(alice, 1)
	assert.ErrorIs(t, err, ErrBalanceOverflow)
}
