// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package instructions accepts signed instructions over HTTP and hands them
// to the runtime. Receipts of recent instructions stay available for lookup.
package instructions

import (
	"net/http"
	"sync"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gorilla/mux"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/adrtoken/adrstake/adr"
	"github.com/adrtoken/adrstake/api/utils"
	"github.com/adrtoken/adrstake/ix"
	"github.com/adrtoken/adrstake/runtime"
)

const receiptCacheSize = 1024

type Instructions struct {
	rt       *runtime.Runtime
	receipts *lru.Cache

	// the runtime applies instructions serially
	mu sync.Mutex
}

func New(rt *runtime.Runtime) *Instructions {
	cache, _ := lru.New(receiptCacheSize)
	return &Instructions{rt: rt, receipts: cache}
}

// submitBody is the POST payload: the rlp-encoded signed instruction in hex.
type submitBody struct {
	Raw string `json:"raw"`
}

func (i *Instructions) handleSubmit(w http.ResponseWriter, req *http.Request) error {
	var body submitBody
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	raw, err := hexutil.Decode(body.Raw)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "raw"))
	}
	var instruction ix.Instruction
	if err := rlp.DecodeBytes(raw, &instruction); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "raw"))
	}

	i.mu.Lock()
	receipt, err := i.rt.Execute(&instruction)
	i.mu.Unlock()
	if err != nil {
		return utils.BadRequest(err)
	}

	i.receipts.Add(receipt.Instruction, receipt)
	return utils.WriteJSON(w, receipt)
}

func (i *Instructions) handleGetReceipt(w http.ResponseWriter, req *http.Request) error {
	id, err := adr.ParseBytes32(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	cached, ok := i.receipts.Get(id)
	if !ok {
		return utils.NotFound(errors.New("receipt not found"))
	}
	return utils.WriteJSON(w, cached.(*runtime.Receipt))
}

func (i *Instructions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		HandlerFunc(utils.WrapHandlerFunc(i.handleSubmit))
	sub.Path("/{id}").
		Methods(http.MethodGet).
		HandlerFunc(utils.WrapHandlerFunc(i.handleGetReceipt))
}
