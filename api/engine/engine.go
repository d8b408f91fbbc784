// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package engine exposes the read-only staking views over HTTP.
package engine

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/adrtoken/adrstake/adr"
	"github.com/adrtoken/adrstake/api/utils"
	"github.com/adrtoken/adrstake/runtime"
	"github.com/adrtoken/adrstake/staking"
)

type Engine struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Engine {
	return &Engine{rt}
}

func (e *Engine) handleGetConfig(w http.ResponseWriter, _ *http.Request) error {
	summary, err := e.rt.Engine().ConfigSummary()
	if err != nil {
		if err == staking.ErrConfigNotFound {
			return utils.NotFound(err)
		}
		return err
	}
	return utils.WriteJSON(w, summary)
}

func (e *Engine) handleGetPosition(w http.ResponseWriter, req *http.Request) error {
	addr, err := adr.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	summary, err := e.rt.Engine().StakeSummary(addr, e.rt.Now())
	if err != nil {
		if err == staking.ErrConfigNotFound {
			return utils.NotFound(err)
		}
		return err
	}
	return utils.WriteJSON(w, summary)
}

func (e *Engine) handleGetCollection(w http.ResponseWriter, _ *http.Request) error {
	info, err := e.rt.Engine().CollectionInfo()
	if err != nil {
		if err == staking.ErrConfigNotFound {
			return utils.NotFound(err)
		}
		return err
	}
	return utils.WriteJSON(w, info)
}

func (e *Engine) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/config").
		Methods(http.MethodGet).
		HandlerFunc(utils.WrapHandlerFunc(e.handleGetConfig))
	sub.Path("/positions/{address}").
		Methods(http.MethodGet).
		HandlerFunc(utils.WrapHandlerFunc(e.handleGetPosition))
	sub.Path("/collection").
		Methods(http.MethodGet).
		HandlerFunc(utils.WrapHandlerFunc(e.handleGetCollection))
}
