// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ix

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// Sign signs an instruction with the given private key, returning the signed
// copy.
func Sign(instruction *Instruction, pk *ecdsa.PrivateKey) (*Instruction, error) {
	hash := instruction.SigningHash()
	sig, err := crypto.Sign(hash.Bytes(), pk)
	if err != nil {
		return nil, errors.Wrap(err, "ix: sign instruction")
	}
	return instruction.WithSignature(sig), nil
}

// MustSign signs an instruction and panics on failure. Test helper.
func MustSign(instruction *Instruction, pk *ecdsa.PrivateKey) *Instruction {
	signed, err := Sign(instruction, pk)
	if err != nil {
		panic(err)
	}
	return signed
}
