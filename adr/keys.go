// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package adr

// Seed tags for deterministic key/identity derivation. Each derived identity
// is content addressed: the same inputs always resolve to the same key, which
// is what gives record creation its insert-if-absent semantics.
var (
	stakeRecordSeed    = []byte("stake_account")
	stakeAuthoritySeed = []byte("stake_authority")
	custodySeed        = []byte("stake_custody")
	rewardReserveSeed  = []byte("reward_reserve")
	counterSeed        = []byte("nft_counter")
)

// DeriveStakeKey derives the record key of the stake position belonging to
// (staker, mint). At most one record can ever live under it.
func DeriveStakeKey(staker Address, mint Address) Bytes32 {
	return Blake2b(stakeRecordSeed, staker.Bytes(), mint.Bytes())
}

// DeriveEscrowAuthority derives the address of the escrow authority, the
// derived signer owning all staked and reserve custody accounts. No private
// key exists for it.
func DeriveEscrowAuthority() Address {
	h := Blake2b(stakeAuthoritySeed)
	return BytesToAddress(h[12:])
}

// DeriveCustodyAccount derives the address of the custody token account
// holding staked principal of the given mint, owned by the escrow authority.
func DeriveCustodyAccount(mint Address) Address {
	h := Blake2b(custodySeed, mint.Bytes(), DeriveEscrowAuthority().Bytes())
	return BytesToAddress(h[12:])
}

// DeriveRewardReserve derives the address of the reward reserve custody
// account for the given mint, owned by the escrow authority.
func DeriveRewardReserve(mint Address) Address {
	h := Blake2b(rewardReserveSeed, mint.Bytes(), DeriveEscrowAuthority().Bytes())
	return BytesToAddress(h[12:])
}

// DeriveCounterKey derives the storage key of the global collection counter.
func DeriveCounterKey() Bytes32 {
	return Blake2b(counterSeed)
}
