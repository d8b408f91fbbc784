// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package events exposes the stored engine events over HTTP.
package events

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/adrtoken/adrstake/adr"
	"github.com/adrtoken/adrstake/api/utils"
	"github.com/adrtoken/adrstake/logdb"
)

const maxLimit = 1000

type Events struct {
	db *logdb.LogDB
}

func New(db *logdb.LogDB) *Events {
	return &Events{db}
}

func parseUint(q string) (uint64, error) {
	if q == "" {
		return 0, nil
	}
	return strconv.ParseUint(q, 10, 64)
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	query := req.URL.Query()
	opts := logdb.FilterOptions{Kind: query.Get("kind")}

	if s := query.Get("actor"); s != "" {
		actor, err := adr.ParseAddress(s)
		if err != nil {
			return utils.BadRequest(errors.WithMessage(err, "actor"))
		}
		opts.Actor = &actor
	}

	var err error
	if opts.From, err = parseUint(query.Get("from")); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "from"))
	}
	if opts.To, err = parseUint(query.Get("to")); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "to"))
	}
	if opts.Offset, err = parseUint(query.Get("offset")); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "offset"))
	}
	if opts.Limit, err = parseUint(query.Get("limit")); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "limit"))
	}
	if opts.Limit > maxLimit {
		return utils.BadRequest(errors.Errorf("limit exceeds %d", maxLimit))
	}
	if query.Get("order") == "desc" {
		opts.Order = logdb.DESC
	}

	entries, err := e.db.Filter(req.Context(), &opts)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []*logdb.Entry{}
	}
	return utils.WriteJSON(w, entries)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
