// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages the ledger world state: per-account structured
// storage with checkpoint/revert semantics. Every record the engine keeps
// (config, stake positions, token accounts, counters) lives here.
package state

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/adrtoken/adrstake/adr"
	"github.com/adrtoken/adrstake/kv"
	"github.com/adrtoken/adrstake/stackedmap"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// storageKey identifies one storage slot of an account.
type storageKey struct {
	addr adr.Address
	key  adr.Bytes32
}

// State manages the world state.
// All reads fall through to the backing store; all writes are journaled in
// memory until Commit, and can be dropped with RevertTo.
type State struct {
	store kv.GetPutter
	sm    *stackedmap.StackedMap // keeps revisions of storage slots
}

// New creates a state object backed by the given store.
func New(store kv.GetPutter) *State {
	state := State{store: store}
	state.sm = stackedmap.New(func(key any) (any, bool, error) {
		return state.storeGetter(key)
	})

	// the bottom level holds uncommitted writes
	state.sm.Push()
	return &state
}

// storeGetter implements stackedmap.MapGetter.
func (s *State) storeGetter(key any) (value any, exist bool, err error) {
	k, ok := key.(storageKey)
	if !ok {
		panic(fmt.Errorf("unexpected key type %+v", key))
	}
	data, err := s.store.Get(persistKey(k))
	if err != nil {
		if s.store.IsNotFound(err) {
			return rlp.RawValue(nil), true, nil
		}
		return nil, false, err
	}
	return rlp.RawValue(data), true, nil
}

func persistKey(k storageKey) []byte {
	b := make([]byte, 0, 1+adr.AddressLength+32)
	b = append(b, 's')
	b = append(b, k.addr.Bytes()...)
	b = append(b, k.key.Bytes()...)
	return b
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo reverts to the checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// GetRawStorage returns the storage value in rlp raw for the given address and key.
func (s *State) GetRawStorage(addr adr.Address, key adr.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data.(rlp.RawValue), nil
}

// SetRawStorage sets the storage value in rlp raw. Pass nil to clear the slot.
func (s *State) SetRawStorage(addr adr.Address, key adr.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// HasStorage returns whether the slot holds a value.
func (s *State) HasStorage(addr adr.Address, key adr.Bytes32) (bool, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return false, err
	}
	return len(raw) > 0, nil
}

// DecodeStorage gets and decodes the storage value.
// The dec callback receives nil raw when the slot is empty.
func (s *State) DecodeStorage(addr adr.Address, key adr.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// EncodeStorage sets the storage value encoded by the given enc method.
func (s *State) EncodeStorage(addr adr.Address, key adr.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// GetStructuredStorage gets and rlp-decodes the storage value into val.
// val is left at its zero value when the slot is empty.
func (s *State) GetStructuredStorage(addr adr.Address, key adr.Bytes32, val any) error {
	return s.DecodeStorage(addr, key, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, val)
	})
}

// SetStructuredStorage rlp-encodes val and stores it.
func (s *State) SetStructuredStorage(addr adr.Address, key adr.Bytes32, val any) error {
	return s.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(val)
	})
}

// Commit flushes all journaled writes into the backing store in one batch
// and resets the journal. Checkpoints taken before Commit are invalidated.
func (s *State) Commit() error {
	batch := s.store.NewBatch()

	var jerr error
	s.sm.Journal(func(k, v any) bool {
		key := k.(storageKey)
		raw := v.(rlp.RawValue)
		if len(raw) == 0 {
			jerr = batch.Delete(persistKey(key))
		} else {
			jerr = batch.Put(persistKey(key), raw)
		}
		return jerr == nil
	})
	if jerr != nil {
		return &Error{jerr}
	}
	if err := batch.Write(); err != nil {
		return &Error{err}
	}

	s.sm.PopTo(0)
	s.sm.Push()
	return nil
}
