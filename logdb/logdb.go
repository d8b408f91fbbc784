// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package logdb stores engine events in sqlite for off-chain querying. The
// store is an audit trail; the engine never reads it back.
package logdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/adrtoken/adrstake/adr"
	"github.com/adrtoken/adrstake/staking"
)

const schema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	ts INTEGER NOT NULL,
	kind TEXT NOT NULL,
	actor BLOB NOT NULL,
	instruction BLOB NOT NULL,
	payload TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS event_i1 ON event(kind);
CREATE INDEX IF NOT EXISTS event_i2 ON event(actor);
CREATE INDEX IF NOT EXISTS event_i3 ON event(ts);`

// LogDB is the sqlite-backed event store.
type LogDB struct {
	db   *sql.DB
	path string
}

// New opens or creates the event store at the given path.
func New(path string) (*LogDB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "logdb: open")
	}
	// a single writer keeps inserts and the in-memory mode correct
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "logdb: init schema")
	}
	return &LogDB{db: db, path: path}, nil
}

// NewMem creates an in-memory event store, for tests.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close closes the store.
func (l *LogDB) Close() error {
	return l.db.Close()
}

// Path returns the database file path.
func (l *LogDB) Path() string {
	return l.path
}

// Write appends the events of one committed instruction.
func (l *LogDB) Write(instruction adr.Bytes32, events []staking.Event) error {
	tx, err := l.db.Begin()
	if err != nil {
		return errors.Wrap(err, "logdb: begin")
	}
	for _, ev := range events {
		payload, err := json.Marshal(ev)
		if err != nil {
			tx.Rollback()
			return errors.Wrap(err, "logdb: marshal event")
		}
		actor := ev.Actor()
		if _, err := tx.Exec(
			"INSERT INTO event(ts, kind, actor, instruction, payload) VALUES(?,?,?,?,?)",
			ev.Time(), ev.Kind(), actor.Bytes(), instruction.Bytes(), string(payload),
		); err != nil {
			tx.Rollback()
			return errors.Wrap(err, "logdb: insert event")
		}
	}
	return tx.Commit()
}

// Entry is one stored event row.
type Entry struct {
	Seq         int64           `json:"seq"`
	Timestamp   uint64          `json:"timestamp"`
	Kind        string          `json:"kind"`
	Actor       adr.Address     `json:"actor"`
	Instruction adr.Bytes32     `json:"instruction"`
	Payload     json.RawMessage `json:"payload"`
}

// Order of filtered results by sequence number.
type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// FilterOptions narrows a query. Zero fields mean no constraint; a zero
// Limit defaults to 100.
type FilterOptions struct {
	Kind   string
	Actor  *adr.Address
	From   uint64
	To     uint64
	Offset uint64
	Limit  uint64
	Order  Order
}

// Filter queries stored events.
func (l *LogDB) Filter(ctx context.Context, opts *FilterOptions) ([]*Entry, error) {
	if opts == nil {
		opts = &FilterOptions{}
	}

	query := "SELECT seq, ts, kind, actor, instruction, payload FROM event WHERE 1=1"
	var args []any
	if opts.Kind != "" {
		query += " AND kind = ?"
		args = append(args, opts.Kind)
	}
	if opts.Actor != nil {
		query += " AND actor = ?"
		args = append(args, opts.Actor.Bytes())
	}
	if opts.From > 0 {
		query += " AND ts >= ?"
		args = append(args, opts.From)
	}
	if opts.To > 0 {
		query += " AND ts <= ?"
		args = append(args, opts.To)
	}
	if opts.Order == DESC {
		query += " ORDER BY seq DESC"
	} else {
		query += " ORDER BY seq ASC"
	}
	limit := opts.Limit
	if limit == 0 {
		limit = 100
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, opts.Offset)

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "logdb: query")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var (
			entry       Entry
			actor       []byte
			instruction []byte
			payload     string
		)
		if err := rows.Scan(&entry.Seq, &entry.Timestamp, &entry.Kind, &actor, &instruction, &payload); err != nil {
			return nil, errors.Wrap(err, "logdb: scan")
		}
		entry.Actor = adr.BytesToAddress(actor)
		entry.Instruction = adr.BytesToBytes32(instruction)
		entry.Payload = json.RawMessage(payload)
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
