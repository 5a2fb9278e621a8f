// Package sighelper produces and checks the operator authorization
// signatures that the UnicitySwapBroker contract expects on swapNative
// and revertNative calls. The digest layout mirrors the contract side:
// Keccak-256 over the tightly packed fields, broker address first,
// caller last, in the same order the test helper passes them.
package sighelper

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// SwapAuth holds the fields covered by a swapNative signature.
type SwapAuth struct {
	Broker       common.Address
	DealID       [32]byte
	Payback      bool
	Recipient    common.Address
	FeeRecipient common.Address
	Amount       *big.Int
	Fees         *big.Int
	Caller       common.Address
}

// RevertAuth holds the fields covered by a revertNative signature.
type RevertAuth struct {
	Broker       common.Address
	DealID       [32]byte
	Payback      bool
	FeeRecipient common.Address
	Fees         *big.Int
	Caller       common.Address
}

// Digest returns the Keccak-256 hash of the packed swapNative fields.
func (a SwapAuth) Digest() [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(a.Broker.Bytes())
	h.Write(a.DealID[:])
	h.Write(boolByte(a.Payback))
	h.Write(a.Recipient.Bytes())
	h.Write(a.FeeRecipient.Bytes())
	h.Write(u256(a.Amount))
	h.Write(u256(a.Fees))
	h.Write(a.Caller.Bytes())

	var d [32]byte
	copy(d[:], h.Sum(nil))
	return d
}

// Digest returns the Keccak-256 hash of the packed revertNative fields.
func (a RevertAuth) Digest() [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(a.Broker.Bytes())
	h.Write(a.DealID[:])
	h.Write(boolByte(a.Payback))
	h.Write(a.FeeRecipient.Bytes())
	h.Write(u256(a.Fees))
	h.Write(a.Caller.Bytes())

	var d [32]byte
	copy(d[:], h.Sum(nil))
	return d
}

// u256 packs a big.Int as a 32-byte big-endian word (Solidity uint256).
// A nil value packs as zero.
func u256(x *big.Int) []byte {
	if x == nil {
		return make([]byte, 32)
	}
	return common.LeftPadBytes(x.Bytes(), 32)
}

func boolByte(b bool) []byte {
	if b {
		return []byte{1}
	}
	return []byte{0}
}
