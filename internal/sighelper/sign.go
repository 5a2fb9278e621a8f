package sighelper

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// SignSwapNative signs a swapNative authorization with the given hex
// private key. Returns a 65-byte signature (R || S || V, V in 27/28),
// the format the contract recovers with ECDSA.recover.
func SignSwapNative(hexKey string, a SwapAuth) ([]byte, error) {
	return signDigest(hexKey, a.Digest())
}

// SignRevertNative signs a revertNative authorization.
func SignRevertNative(hexKey string, a RevertAuth) ([]byte, error) {
	return signDigest(hexKey, a.Digest())
}

// RecoverSwapNative returns the address that signed a swapNative
// authorization.
func RecoverSwapNative(a SwapAuth, sig []byte) (common.Address, error) {
	return recoverSigner(a.Digest(), sig)
}

// RecoverRevertNative returns the address that signed a revertNative
// authorization.
func RecoverRevertNative(a RevertAuth, sig []byte) (common.Address, error) {
	return recoverSigner(a.Digest(), sig)
}

// ParseDealID parses a 32-byte deal identifier from hex (0x prefix
// optional).
func ParseDealID(s string) ([32]byte, error) {
	var id [32]byte
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"))
	if err != nil {
		return id, fmt.Errorf("invalid deal id hex: %w", err)
	}
	if len(raw) != 32 {
		return id, fmt.Errorf("deal id must be 32 bytes, got %d", len(raw))
	}
	copy(id[:], raw)
	return id, nil
}

func signDigest(hexKey string, digest [32]byte) ([]byte, error) {
	privKey, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}

	sig, err := crypto.Sign(ethSignedHash(digest), privKey)
	if err != nil {
		return nil, fmt.Errorf("signing digest: %w", err)
	}

	// Adjust V from 0/1 to 27/28 for Ethereum compatibility.
	sig[64] += 27

	return sig, nil
}

func recoverSigner(digest [32]byte, sig []byte) (common.Address, error) {
	if len(sig) != 65 {
		return common.Address{}, fmt.Errorf("invalid signature length: expected 65 bytes, got %d", len(sig))
	}

	// Adjust V from 27/28 back to 0/1 for ecrecover.
	recoverSig := make([]byte, 65)
	copy(recoverSig, sig)
	recoverSig[64] -= 27

	pubKey, err := crypto.SigToPub(ethSignedHash(digest), recoverSig)
	if err != nil {
		return common.Address{}, fmt.Errorf("recovering signer: %w", err)
	}

	return crypto.PubkeyToAddress(*pubKey), nil
}

// ethSignedHash applies the EIP-191 personal_sign prefix to a 32-byte
// digest, matching Solidity's toEthSignedMessageHash(bytes32).
func ethSignedHash(digest [32]byte) []byte {
	prefix := []byte("\x19Ethereum Signed Message:\n32")
	return crypto.Keccak256(append(prefix, digest[:]...))
}
