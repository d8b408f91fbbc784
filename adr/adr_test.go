// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package adr

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	require.NoError(t, err)
	assert.Equal(t, "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", addr.String())

	_, err = ParseAddress("7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.NoError(t, err)

	_, err = ParseAddress("0x7567d83b")
	assert.Error(t, err)

	_, err = ParseAddress("zz67d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.Error(t, err)
}

func TestAddressIsZero(t *testing.T) {
	assert.True(t, Address{}.IsZero())
	assert.False(t, BytesToAddress([]byte{1}).IsZero())
}

func TestPubkeyToAddress(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	addr := PubkeyToAddress(&key.PublicKey)
	assert.False(t, addr.IsZero())
	assert.Equal(t, addr, PubkeyToAddress(&key.PublicKey))
}

func TestBlake2b(t *testing.T) {
	data := []byte("hello adrstake")
	assert.Equal(t, Blake2b(data), Blake2b(data))
	assert.NotEqual(t, Blake2b(data), Blake2b([]byte("hello")))

	// multi-slice form must match single-slice form
	assert.Equal(t, Blake2b([]byte("hello"), []byte("adrstake")), Blake2b([]byte("helloadrstake")))
}

func TestDeriveStakeKey(t *testing.T) {
	staker := BytesToAddress([]byte("staker"))
	mint := BytesToAddress([]byte("mint"))

	key := DeriveStakeKey(staker, mint)
	assert.False(t, key.IsZero())

	// deterministic
	assert.Equal(t, key, DeriveStakeKey(staker, mint))

	// distinct per input pair
	assert.NotEqual(t, key, DeriveStakeKey(mint, staker))
	assert.NotEqual(t, key, DeriveStakeKey(staker, BytesToAddress([]byte("other"))))
}

func TestDeriveCustodyAccounts(t *testing.T) {
	mint := BytesToAddress([]byte("mint"))

	escrow := DeriveEscrowAuthority()
	custody := DeriveCustodyAccount(mint)
	reserve := DeriveRewardReserve(mint)

	assert.False(t, escrow.IsZero())
	assert.NotEqual(t, custody, reserve)
	assert.NotEqual(t, custody, escrow)

	// deterministic across calls
	assert.Equal(t, custody, DeriveCustodyAccount(mint))
	assert.Equal(t, reserve, DeriveRewardReserve(mint))
}
