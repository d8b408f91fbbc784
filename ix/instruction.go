// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ix defines the signed instruction envelope submitted to the
// runtime. An instruction is immutable once built; signing produces a new
// instruction.
package ix

import (
	"io"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/adrtoken/adrstake/adr"
)

// Kind identifies the operation an instruction invokes.
type Kind uint8

const (
	KindInitializeCollection Kind = iota + 1
	KindSetPaymentToken
	KindConfigureStaking
	KindUpdateMaxStakeAmount
	KindUpdateAdmin
	KindSetEmergencyPause
	KindInitializeRewardReserve
	KindDepositRewardReserve
	KindStake
	KindUnstake
	KindMintWithPayment
)

func (k Kind) String() string {
	switch k {
	case KindInitializeCollection:
		return "initializeCollection"
	case KindSetPaymentToken:
		return "setPaymentToken"
	case KindConfigureStaking:
		return "configureStaking"
	case KindUpdateMaxStakeAmount:
		return "updateMaxStakeAmount"
	case KindUpdateAdmin:
		return "updateAdmin"
	case KindSetEmergencyPause:
		return "setEmergencyPause"
	case KindInitializeRewardReserve:
		return "initializeRewardReserve"
	case KindDepositRewardReserve:
		return "depositRewardReserve"
	case KindStake:
		return "stakeTokens"
	case KindUnstake:
		return "unstakeTokens"
	case KindMintWithPayment:
		return "mintNftWithPayment"
	}
	return "unknown"
}

// Valid reports whether k names a dispatchable operation.
func (k Kind) Valid() bool {
	return k >= KindInitializeCollection && k <= KindMintWithPayment
}

// Instruction is an immutable signed operation envelope.
type Instruction struct {
	body body

	cache struct {
		signingHash atomic.Pointer[adr.Bytes32]
		hash        atomic.Pointer[adr.Bytes32]
		origin      atomic.Pointer[adr.Address]
	}
}

// body describes the wire layout of an instruction.
type body struct {
	Kind      uint8
	Nonce     uint64
	Args      rlp.RawValue
	Signature []byte
}

// New creates an unsigned instruction, encoding args into the envelope.
func New(kind Kind, nonce uint64, args any) (*Instruction, error) {
	if !kind.Valid() {
		return nil, errors.New("ix: invalid instruction kind")
	}
	raw, err := rlp.EncodeToBytes(args)
	if err != nil {
		return nil, errors.Wrap(err, "ix: encode args")
	}
	return &Instruction{body: body{
		Kind:  uint8(kind),
		Nonce: nonce,
		Args:  raw,
	}}, nil
}

// Kind returns the operation kind.
func (ix *Instruction) Kind() Kind {
	return Kind(ix.body.Kind)
}

// Nonce returns the caller-chosen nonce.
func (ix *Instruction) Nonce() uint64 {
	return ix.body.Nonce
}

// DecodeArgs decodes the operation arguments into dst.
func (ix *Instruction) DecodeArgs(dst any) error {
	return rlp.DecodeBytes(ix.body.Args, dst)
}

// Signature returns a copy of the signature.
func (ix *Instruction) Signature() []byte {
	return append([]byte(nil), ix.body.Signature...)
}

// SigningHash returns the hash to be signed, excluding the signature.
func (ix *Instruction) SigningHash() adr.Bytes32 {
	if cached := ix.cache.signingHash.Load(); cached != nil {
		return *cached
	}
	h := adr.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, []any{
			ix.body.Kind,
			ix.body.Nonce,
			ix.body.Args,
		})
	})
	ix.cache.signingHash.Store(&h)
	return h
}

// Hash returns the instruction id, covering the signature.
func (ix *Instruction) Hash() adr.Bytes32 {
	if cached := ix.cache.hash.Load(); cached != nil {
		return *cached
	}
	h := adr.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, ix)
	})
	ix.cache.hash.Store(&h)
	return h
}

// WithSignature creates a new instruction with the signature set.
func (ix *Instruction) WithSignature(sig []byte) *Instruction {
	newIx := Instruction{body: ix.body}
	newIx.body.Signature = append([]byte(nil), sig...)
	return &newIx
}

// Origin recovers the signer identity.
func (ix *Instruction) Origin() (adr.Address, error) {
	if cached := ix.cache.origin.Load(); cached != nil {
		return *cached, nil
	}
	hash := ix.SigningHash()
	pub, err := crypto.SigToPub(hash.Bytes(), ix.body.Signature)
	if err != nil {
		return adr.Address{}, errors.Wrap(err, "ix: recover origin")
	}
	origin := adr.PubkeyToAddress(pub)
	ix.cache.origin.Store(&origin)
	return origin, nil
}

// EncodeRLP implements rlp.Encoder.
func (ix *Instruction) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &ix.body)
}

// DecodeRLP implements rlp.Decoder.
func (ix *Instruction) DecodeRLP(s *rlp.Stream) error {
	var body body
	if err := s.Decode(&body); err != nil {
		return err
	}
	*ix = Instruction{body: body}
	return nil
}
