// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package keyconv

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/complex-gh/keyconv/xrpl"
)

// XRPLProvider supplies the XRP Ledger primitives the converter relies on.
type XRPLProvider interface {
	// KeypairFromSeed derives the account keypair for a family seed.
	KeypairFromSeed(seed string) (priv [32]byte, pub [33]byte, err error)
	// ClassicAddress encodes a compressed public key as an "r..." address.
	ClassicAddress(pubKey []byte) (string, error)
	// IsValidClassicAddress validates an address and its checksum.
	IsValidClassicAddress(address string) bool
}

// CurveProvider computes SEC1 compressed secp256k1 public keys.
type CurveProvider interface {
	PublicKey(scalar [32]byte) ([33]byte, error)
}

// LedgerProvider is the default XRPLProvider, backed by the xrpl package.
type LedgerProvider struct{}

func (LedgerProvider) KeypairFromSeed(seed string) ([32]byte, [33]byte, error) {
	entropy, err := xrpl.DecodeSeed(seed)
	if err != nil {
		return [32]byte{}, [33]byte{}, err
	}
	return xrpl.DeriveKeypair(entropy)
}

func (LedgerProvider) ClassicAddress(pubKey []byte) (string, error) {
	return xrpl.ClassicAddress(pubKey)
}

func (LedgerProvider) IsValidClassicAddress(address string) bool {
	return xrpl.IsValidClassicAddress(address)
}

// Secp256k1 is the default CurveProvider, backed by btcec.
type Secp256k1 struct{}

func (Secp256k1) PublicKey(scalar [32]byte) ([33]byte, error) {
	var out [33]byte
	if err := checkScalar(scalar[:]); err != nil {
		return out, fmt.Errorf("%w: %v", ErrCurveDerivation, err)
	}
	_, pub := btcec.PrivKeyFromBytes(scalar[:])
	copy(out[:], pub.SerializeCompressed())
	return out, nil
}
