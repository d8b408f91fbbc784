// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime executes signed instructions against the staking engine.
// Every instruction runs as one indivisible unit: a state checkpoint is taken
// before dispatch and reverted on any failure, so a rejected instruction
// leaves no partial effects.
package runtime

import (
	"github.com/pkg/errors"

	"github.com/adrtoken/adrstake/adr"
	"github.com/adrtoken/adrstake/ix"
	"github.com/adrtoken/adrstake/log"
	"github.com/adrtoken/adrstake/metrics"
	"github.com/adrtoken/adrstake/staking"
	"github.com/adrtoken/adrstake/state"
)

var (
	logger = log.WithContext("pkg", "runtime")

	metricInstructionCount = metrics.CounterVec("instruction_count", []string{"kind"})
	metricInstructionError = metrics.CounterVec("instruction_error_count", []string{"kind", "code"})
)

// Receipt is the outcome of one executed instruction.
type Receipt struct {
	Instruction adr.Bytes32     `json:"instruction"`
	Kind        string          `json:"kind"`
	Origin      adr.Address     `json:"origin"`
	Timestamp   uint64          `json:"timestamp"`
	Reverted    bool            `json:"reverted"`
	ErrorCode   uint32          `json:"errorCode,omitempty"`
	ErrorName   string          `json:"errorName,omitempty"`
	Events      []staking.Event `json:"-"`
}

// EventWriter receives the events of committed instructions. Implemented by
// the event store; a nil writer drops events.
type EventWriter interface {
	Write(instruction adr.Bytes32, events []staking.Event) error
}

// Runtime applies instructions serially over a world state.
type Runtime struct {
	state  *state.State
	engine *staking.Engine
	events EventWriter
	now    func() uint64
}

// New creates a runtime. now supplies the ledger clock; events may be nil.
func New(st *state.State, events EventWriter, now func() uint64) *Runtime {
	return &Runtime{
		state:  st,
		engine: staking.New(st),
		events: events,
		now:    now,
	}
}

// Engine exposes the underlying engine for read-only views.
func (rt *Runtime) Engine() *staking.Engine {
	return rt.engine
}

// Now returns the current ledger time.
func (rt *Runtime) Now() uint64 {
	return rt.now()
}

// Execute runs one instruction. A domain rejection produces a reverted
// receipt and a nil error; an infrastructure failure (storage, codec) returns
// the error itself and leaves the state reverted.
func (rt *Runtime) Execute(instruction *ix.Instruction) (*Receipt, error) {
	origin, err := instruction.Origin()
	if err != nil {
		return nil, errors.Wrap(err, "recover instruction origin")
	}

	now := rt.now()
	receipt := &Receipt{
		Instruction: instruction.Hash(),
		Kind:        instruction.Kind().String(),
		Origin:      origin,
		Timestamp:   now,
	}
	metricInstructionCount.AddWithLabel(1, map[string]string{"kind": receipt.Kind})

	checkpoint := rt.state.NewCheckpoint()
	events, err := rt.dispatch(instruction, origin, now)
	if err != nil {
		rt.state.RevertTo(checkpoint)
		domainErr, ok := err.(*staking.Error)
		if !ok {
			return nil, err
		}
		receipt.Reverted = true
		receipt.ErrorCode = domainErr.Code
		receipt.ErrorName = domainErr.Name
		metricInstructionError.AddWithLabel(1, map[string]string{
			"kind": receipt.Kind,
			"code": domainErr.Name,
		})
		logger.Debug("instruction reverted", "kind", receipt.Kind, "origin", origin, "err", domainErr)
		return receipt, nil
	}

	if err := rt.state.Commit(); err != nil {
		rt.state.RevertTo(checkpoint)
		return nil, errors.Wrap(err, "commit state")
	}
	receipt.Events = events

	if rt.events != nil && len(events) > 0 {
		if err := rt.events.Write(receipt.Instruction, events); err != nil {
			// the state is already committed; losing an audit record must
			// not fail the instruction
			logger.Error("write events", "err", err)
		}
	}
	return receipt, nil
}

func (rt *Runtime) dispatch(instruction *ix.Instruction, origin adr.Address, now uint64) ([]staking.Event, error) {
	switch instruction.Kind() {
	case ix.KindInitializeCollection:
		var args ix.InitializeCollectionArgs
		if err := instruction.DecodeArgs(&args); err != nil {
			return nil, staking.ErrInvalidInput
		}
		return rt.engine.InitializeCollection(origin, args.Name, args.Symbol, args.URI, now)

	case ix.KindSetPaymentToken:
		var args ix.SetPaymentTokenArgs
		if err := instruction.DecodeArgs(&args); err != nil {
			return nil, staking.ErrInvalidInput
		}
		return rt.engine.SetPaymentToken(origin, args.Mint, now)

	case ix.KindConfigureStaking:
		var args ix.ConfigureStakingArgs
		if err := instruction.DecodeArgs(&args); err != nil {
			return nil, staking.ErrInvalidInput
		}
		return rt.engine.ConfigureStaking(origin, args.Enabled, args.RateBps, now)

	case ix.KindUpdateMaxStakeAmount:
		var args ix.UpdateMaxStakeAmountArgs
		if err := instruction.DecodeArgs(&args); err != nil {
			return nil, staking.ErrInvalidInput
		}
		return rt.engine.UpdateMaxStakeAmount(origin, args.MaxAmount, now)

	case ix.KindUpdateAdmin:
		var args ix.UpdateAdminArgs
		if err := instruction.DecodeArgs(&args); err != nil {
			return nil, staking.ErrInvalidInput
		}
		return rt.engine.UpdateAdmin(origin, args.NewAdmin, now)

	case ix.KindSetEmergencyPause:
		var args ix.SetEmergencyPauseArgs
		if err := instruction.DecodeArgs(&args); err != nil {
			return nil, staking.ErrInvalidInput
		}
		return rt.engine.SetEmergencyPause(origin, args.Paused, args.Reason, now)

	case ix.KindInitializeRewardReserve:
		var args ix.InitializeRewardReserveArgs
		if err := instruction.DecodeArgs(&args); err != nil {
			return nil, staking.ErrInvalidInput
		}
		return rt.engine.InitializeRewardReserve(origin, now)

	case ix.KindDepositRewardReserve:
		var args ix.DepositRewardReserveArgs
		if err := instruction.DecodeArgs(&args); err != nil {
			return nil, staking.ErrInvalidInput
		}
		return rt.engine.DepositRewardReserve(origin, args.Amount, now)

	case ix.KindStake:
		var args ix.StakeArgs
		if err := instruction.DecodeArgs(&args); err != nil {
			return nil, staking.ErrInvalidInput
		}
		period, err := staking.ParsePeriod(args.Period)
		if err != nil {
			return nil, err
		}
		return rt.engine.Stake(origin, args.Amount, period, now)

	case ix.KindUnstake:
		var args ix.UnstakeArgs
		if err := instruction.DecodeArgs(&args); err != nil {
			return nil, staking.ErrInvalidInput
		}
		return rt.engine.Unstake(origin, now)

	case ix.KindMintWithPayment:
		var args ix.MintWithPaymentArgs
		if err := instruction.DecodeArgs(&args); err != nil {
			return nil, staking.ErrInvalidInput
		}
		return rt.engine.MintWithPayment(origin, args.Name, args.Symbol, args.URI, args.Amount, now)
	}
	return nil, staking.ErrInvalidInput
}
