// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package keyconv

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
)

// SourceFormat is the detected encoding of a user-supplied secret.
type SourceFormat string

// Recognised secret formats.
const (
	// FormatXRPLSeed is an XRPL secp256k1 family seed ("s...").
	FormatXRPLSeed SourceFormat = "xrpl-seed"
	// FormatWIFCompressed is a Bitcoin compressed WIF ("L..." or "K...").
	FormatWIFCompressed SourceFormat = "wif-compressed"
	// FormatWIFUncompressed is a WIF without the compression flag.
	FormatWIFUncompressed SourceFormat = "wif-uncompressed"
	// FormatWIFOther is a compressed WIF with a non-Bitcoin version byte,
	// such as a FLO key ("R...").
	FormatWIFOther SourceFormat = "wif-other"
	// FormatHexRaw is 64 hexadecimal characters.
	FormatHexRaw SourceFormat = "hex-raw"
	// FormatHexPrefixed is 64 hexadecimal characters prefixed with 0x.
	FormatHexPrefixed SourceFormat = "hex-prefixed"
	// FormatBase58Long is an 88-character Base58 secret (Solana-style keypair).
	FormatBase58Long SourceFormat = "base58-long"
)

func (f SourceFormat) String() string {
	return string(f)
}

// Description returns a human-readable label for the format.
func (f SourceFormat) Description() string {
	switch f {
	case FormatXRPLSeed:
		return "XRPL seed"
	case FormatWIFCompressed:
		return "Bitcoin WIF (compressed)"
	case FormatWIFUncompressed:
		return "WIF (uncompressed)"
	case FormatWIFOther:
		return "FLO/Other WIF"
	case FormatHexRaw:
		return "hex private key"
	case FormatHexPrefixed:
		return "0x-prefixed hex private key"
	case FormatBase58Long:
		return "Base58 secret key"
	}
	return string(f)
}

// ScalarLen is the size of a secp256k1 private scalar.
const ScalarLen = 32

// PrivateKeyMaterial is a recovered secp256k1 private scalar together with
// the format it was read from. The zero value is not valid; values are
// produced by RecoverScalar and never change afterwards.
type PrivateKeyMaterial struct {
	scalar     [ScalarLen]byte
	format     SourceFormat
	input      string
	wifVersion byte
}

func newMaterial(scalar []byte, format SourceFormat, input string, wifVersion byte) (PrivateKeyMaterial, error) {
	if err := checkScalar(scalar); err != nil {
		return PrivateKeyMaterial{}, err
	}
	m := PrivateKeyMaterial{format: format, input: input, wifVersion: wifVersion}
	copy(m.scalar[:], scalar)
	return m, nil
}

// checkScalar enforces 0 < k < n for a 32-byte big-endian scalar.
func checkScalar(b []byte) error {
	if len(b) != ScalarLen {
		return fmt.Errorf("%w: scalar must be %d bytes, got %d", ErrInvalidKeyMaterial, ScalarLen, len(b))
	}
	var k btcec.ModNScalar
	if overflow := k.SetByteSlice(b); overflow {
		return fmt.Errorf("%w: scalar is not below the curve order", ErrInvalidKeyMaterial)
	}
	if k.IsZero() {
		return fmt.Errorf("%w: scalar is zero", ErrInvalidKeyMaterial)
	}
	return nil
}

// Scalar returns a copy of the 32-byte private scalar.
func (m PrivateKeyMaterial) Scalar() [ScalarLen]byte {
	return m.scalar
}

// SourceFormat returns the format the scalar was recovered from.
func (m PrivateKeyMaterial) SourceFormat() SourceFormat {
	return m.format
}

// OriginalInput returns the secret as it was given to RecoverScalar.
func (m PrivateKeyMaterial) OriginalInput() string {
	return m.input
}

// WIFVersion returns the WIF version byte, or 0 for non-WIF sources.
func (m PrivateKeyMaterial) WIFVersion() byte {
	return m.wifVersion
}

// String never prints the scalar.
func (m PrivateKeyMaterial) String() string {
	return fmt.Sprintf("PrivateKeyMaterial(%s, redacted)", m.format)
}
