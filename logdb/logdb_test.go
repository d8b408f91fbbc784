// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrtoken/adrstake/adr"
	"github.com/adrtoken/adrstake/logdb"
	"github.com/adrtoken/adrstake/staking"
)

var (
	alice = adr.BytesToAddress([]byte("alice"))
	bob   = adr.BytesToAddress([]byte("bob"))
)

func newTestDB(t *testing.T) *logdb.LogDB {
	db, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seed(t *testing.T, db *logdb.LogDB) {
	ixHash := adr.Blake2b([]byte("ix-1"))
	require.NoError(t, db.Write(ixHash, []staking.Event{
		&staking.StakingEvent{Staker: alice, Amount: 1000, Period: 7, StartTime: 100, UnlockTime: 100 + 7*86400},
		&staking.ConfigUpdateEvent{Admin: bob, Field: "staking_enabled", OldValue: "false", NewValue: "true", Timestamp: 90},
	}))
	require.NoError(t, db.Write(adr.Blake2b([]byte("ix-2")), []staking.Event{
		&staking.UnstakingEvent{Staker: alice, Amount: 1000, Reward: 105, Total: 1105, Timestamp: 200},
	}))
}

func TestWriteAndFilterAll(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)

	entries, err := db.Filter(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// insertion order is preserved
	assert.Equal(t, "StakingEvent", entries[0].Kind)
	assert.Equal(t, "ConfigUpdateEvent", entries[1].Kind)
	assert.Equal(t, "UnstakingEvent", entries[2].Kind)
	assert.Equal(t, alice, entries[0].Actor)
}

func TestFilterByKind(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)

	entries, err := db.Filter(context.Background(), &logdb.FilterOptions{Kind: "UnstakingEvent"})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	var ev staking.UnstakingEvent
	require.NoError(t, json.Unmarshal(entries[0].Payload, &ev))
	assert.Equal(t, uint64(1105), ev.Total)
}

func TestFilterByActor(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)

	entries, err := db.Filter(context.Background(), &logdb.FilterOptions{Actor: &bob})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ConfigUpdateEvent", entries[0].Kind)
}

func TestFilterByTimeRange(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)

	entries, err := db.Filter(context.Background(), &logdb.FilterOptions{From: 95, To: 150})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "StakingEvent", entries[0].Kind)
}

func TestFilterOrderAndLimit(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)

	entries, err := db.Filter(context.Background(), &logdb.FilterOptions{Order: logdb.DESC, Limit: 2})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "UnstakingEvent", entries[0].Kind)

	entries, err = db.Filter(context.Background(), &logdb.FilterOptions{Offset: 2})
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
