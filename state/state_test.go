// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrtoken/adrstake/adr"
	"github.com/adrtoken/adrstake/kv"
)

func newTestState(t *testing.T) (*State, *kv.LevelDB) {
	db, err := kv.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), db
}

func TestStructuredStorage(t *testing.T) {
	st, _ := newTestState(t)

	addr := adr.BytesToAddress([]byte("engine"))
	key := adr.Blake2b([]byte("counter"))

	// empty slot leaves the value at zero
	var count uint64
	require.NoError(t, st.GetStructuredStorage(addr, key, &count))
	assert.Zero(t, count)

	require.NoError(t, st.SetStructuredStorage(addr, key, uint64(42)))
	require.NoError(t, st.GetStructuredStorage(addr, key, &count))
	assert.Equal(t, uint64(42), count)

	has, err := st.HasStorage(addr, key)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestCheckpointRevert(t *testing.T) {
	st, _ := newTestState(t)

	addr := adr.BytesToAddress([]byte("engine"))
	key := adr.Blake2b([]byte("flag"))

	require.NoError(t, st.SetStructuredStorage(addr, key, true))

	cp := st.NewCheckpoint()
	require.NoError(t, st.SetStructuredStorage(addr, key, false))

	var flag bool
	require.NoError(t, st.GetStructuredStorage(addr, key, &flag))
	assert.False(t, flag)

	st.RevertTo(cp)
	require.NoError(t, st.GetStructuredStorage(addr, key, &flag))
	assert.True(t, flag)
}

func TestNestedCheckpoints(t *testing.T) {
	st, _ := newTestState(t)

	addr := adr.BytesToAddress([]byte("engine"))
	key := adr.Blake2b([]byte("v"))

	require.NoError(t, st.SetStructuredStorage(addr, key, uint64(1)))
	cp1 := st.NewCheckpoint()
	require.NoError(t, st.SetStructuredStorage(addr, key, uint64(2)))
	cp2 := st.NewCheckpoint()
	require.NoError(t, st.SetStructuredStorage(addr, key, uint64(3)))

	var v uint64
	st.RevertTo(cp2)
	require.NoError(t, st.GetStructuredStorage(addr, key, &v))
	assert.Equal(t, uint64(2), v)

	st.RevertTo(cp1)
	require.NoError(t, st.GetStructuredStorage(addr, key, &v))
	assert.Equal(t, uint64(1), v)
}

func TestCommitPersists(t *testing.T) {
	db, err := kv.NewMem()
	require.NoError(t, err)
	defer db.Close()

	addr := adr.BytesToAddress([]byte("engine"))
	key := adr.Blake2b([]byte("persisted"))

	st := New(db)
	require.NoError(t, st.SetStructuredStorage(addr, key, uint64(7)))
	require.NoError(t, st.Commit())

	// a fresh state over the same store sees the committed value
	st2 := New(db)
	var v uint64
	require.NoError(t, st2.GetStructuredStorage(addr, key, &v))
	assert.Equal(t, uint64(7), v)
}

func TestRevertedWritesNotCommitted(t *testing.T) {
	db, err := kv.NewMem()
	require.NoError(t, err)
	defer db.Close()

	addr := adr.BytesToAddress([]byte("engine"))
	key := adr.Blake2b([]byte("rolled-back"))

	st := New(db)
	cp := st.NewCheckpoint()
	require.NoError(t, st.SetStructuredStorage(addr, key, uint64(9)))
	st.RevertTo(cp)
	require.NoError(t, st.Commit())

	st2 := New(db)
	var v uint64
	require.NoError(t, st2.GetStructuredStorage(addr, key, &v))
	assert.Zero(t, v)
}

func TestClearSlot(t *testing.T) {
	st, _ := newTestState(t)

	addr := adr.BytesToAddress([]byte("engine"))
	key := adr.Blake2b([]byte("gone"))

	require.NoError(t, st.SetStructuredStorage(addr, key, uint64(1)))
	st.SetRawStorage(addr, key, nil)

	has, err := st.HasStorage(addr, key)
	require.NoError(t, err)
	assert.False(t, has)
}
