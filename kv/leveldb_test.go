// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelDBGetPut(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Get([]byte("missing"))
	assert.True(t, db.IsNotFound(err))

	require.NoError(t, db.Put([]byte("k"), []byte("v")))

	has, err := db.Has([]byte("k"))
	require.NoError(t, err)
	assert.True(t, has)

	v, err := db.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)

	require.NoError(t, db.Delete([]byte("k")))
	_, err = db.Get([]byte("k"))
	assert.True(t, db.IsNotFound(err))
}

func TestLevelDBBatch(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	batch := db.NewBatch()
	require.NoError(t, batch.Put([]byte("a"), []byte("1")))
	require.NoError(t, batch.Put([]byte("b"), []byte("2")))
	assert.Equal(t, 2, batch.Len())

	// nothing visible until Write
	_, err = db.Get([]byte("a"))
	assert.True(t, db.IsNotFound(err))

	require.NoError(t, batch.Write())

	v, err := db.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), v)
}

func TestLevelDBIterator(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Put([]byte("p1"), []byte("x")))
	require.NoError(t, db.Put([]byte("p2"), []byte("y")))
	require.NoError(t, db.Put([]byte("q1"), []byte("z")))

	it := db.NewIterator(Range{From: []byte("p"), To: []byte("q")})
	defer it.Release()

	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	require.NoError(t, it.Error())
	assert.Equal(t, []string{"p1", "p2"}, keys)
}
