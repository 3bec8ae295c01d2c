// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package keyconv

import (
	"errors"
	"fmt"
	"strings"

	"github.com/complex-gh/keyconv/xrpl"
	"github.com/mr-tron/base58"
)

// RecoverScalar extracts the 32-byte secp256k1 scalar from input using the
// default converter. See Converter.RecoverScalar.
func RecoverScalar(input string, format SourceFormat) (PrivateKeyMaterial, error) {
	return defaultConverter.RecoverScalar(input, format)
}

// RecoverScalar extracts the canonical 32-byte secp256k1 scalar from input,
// which must be in the given format. Version bytes, checksums and the WIF
// compression flag are stripped. The scalar is checked to lie in [1, n-1].
func (c *Converter) RecoverScalar(input string, format SourceFormat) (PrivateKeyMaterial, error) {
	switch format {
	case FormatXRPLSeed:
		return c.recoverSeed(input)
	case FormatWIFCompressed, FormatWIFUncompressed, FormatWIFOther:
		return recoverWIF(input, format)
	case FormatHexRaw, FormatHexPrefixed:
		return recoverHex(input, format)
	case FormatBase58Long:
		return recoverBase58(input)
	}
	return PrivateKeyMaterial{}, fmt.Errorf("%w: %q", ErrUnrecognizedFormat, string(format))
}

func (c *Converter) recoverSeed(input string) (PrivateKeyMaterial, error) {
	priv, _, err := c.xrpl.KeypairFromSeed(input)
	switch {
	case errors.Is(err, xrpl.ErrChecksum):
		return PrivateKeyMaterial{}, fmt.Errorf("%w: family seed", ErrInvalidChecksum)
	case errors.Is(err, xrpl.ErrInvalidEncoding):
		return PrivateKeyMaterial{}, fmt.Errorf("%w: family seed: %v", ErrMalformedBase58, err)
	case err != nil:
		return PrivateKeyMaterial{}, fmt.Errorf("%w: %v", ErrInvalidKeyMaterial, err)
	}
	return newMaterial(priv[:], FormatXRPLSeed, input, 0)
}

// recoverWIF follows the Bitcoin WIF rule: drop the version byte, then drop
// a trailing 0x01 only when exactly 33 bytes remain.
func recoverWIF(input string, format SourceFormat) (PrivateKeyMaterial, error) {
	decoded, err := Base58CheckDecode(input)
	if err != nil {
		return PrivateKeyMaterial{}, err
	}

	version, key := decoded[0], decoded[1:]
	if len(key) == compressedKeyLen && key[ScalarLen] == compressionFlag {
		key = key[:ScalarLen]
	}
	if len(key) != ScalarLen {
		return PrivateKeyMaterial{}, fmt.Errorf("%w: WIF payload is %d bytes", ErrInvalidKeyMaterial, len(key))
	}
	return newMaterial(key, format, input, version)
}

func recoverHex(input string, format SourceFormat) (PrivateKeyMaterial, error) {
	digits := strings.TrimPrefix(input, "0x")
	if len(digits) != rawHexLen {
		return PrivateKeyMaterial{}, fmt.Errorf("%w: expected %d hex digits, got %d", ErrInvalidKeyMaterial, rawHexLen, len(digits))
	}
	key, err := HexToBytes(digits)
	if err != nil {
		return PrivateKeyMaterial{}, err
	}
	return newMaterial(key, format, input, 0)
}

// recoverBase58 takes the first 32 bytes of a plain Base58 payload. For a
// Solana-style 64-byte keypair that is the secret half.
func recoverBase58(input string) (PrivateKeyMaterial, error) {
	b, err := base58.Decode(input)
	if err != nil {
		return PrivateKeyMaterial{}, fmt.Errorf("%w: %v", ErrMalformedBase58, err)
	}
	if len(b) < ScalarLen {
		return PrivateKeyMaterial{}, fmt.Errorf("%w: base58 payload is %d bytes", ErrInvalidKeyMaterial, len(b))
	}
	return newMaterial(b[:ScalarLen], FormatBase58Long, input, 0)
}
