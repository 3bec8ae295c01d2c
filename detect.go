// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package keyconv

import (
	"errors"
	"fmt"
	"strings"
)

const (
	minSeedLen       = 25
	prefixedHexLen   = 66
	rawHexLen        = 64
	base58SecretLen  = 88
	compressionFlag  = 0x01
	pubKeyHashLen    = 20
	compressedKeyLen = ScalarLen + 1
	checksumLen      = 4
)

// DetectFormat classifies a secret by prefix, length and alphabet. The
// rules are checked in order and the first match wins:
//
//  1. "r..." is an XRPL address and is rejected with ErrAddressNotKey
//  2. "s..." of at least 25 characters is an XRPL family seed
//  3. "L..." or "K..." is a compressed Bitcoin WIF
//  4. "0x" followed by 64 characters is prefixed hex
//  5. exactly 64 hex characters is raw hex
//  6. exactly 88 Base58 characters is a long Base58 secret
//  7. anything else must Base58Check-decode as a WIF
//
// DetectFormat only classifies; checksums of rules 2–6 are verified by
// RecoverScalar.
func DetectFormat(input string) (SourceFormat, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%w: empty input", ErrUnrecognizedFormat)
	}

	switch {
	case strings.HasPrefix(input, "r"):
		return "", ErrAddressNotKey
	case strings.HasPrefix(input, "s") && len(input) >= minSeedLen:
		return FormatXRPLSeed, nil
	case strings.HasPrefix(input, "L") || strings.HasPrefix(input, "K"):
		return FormatWIFCompressed, nil
	case strings.HasPrefix(input, "0x") && len(input) == prefixedHexLen:
		return FormatHexPrefixed, nil
	case len(input) == rawHexLen && isHex(input):
		return FormatHexRaw, nil
	case len(input) == base58SecretLen && isBase58(input):
		return FormatBase58Long, nil
	}

	return detectWIF(input)
}

// detectWIF is the last rule: a generic Base58Check decode.
func detectWIF(input string) (SourceFormat, error) {
	decoded, err := Base58CheckDecode(input)
	if err != nil {
		// a WIF-sized string with a bad checksum is a mistyped key
		if errors.Is(err, ErrInvalidChecksum) && isWIFSized(input) {
			return "", fmt.Errorf("%w: %w", ErrUnrecognizedFormat, err)
		}
		return "", fmt.Errorf("%w: %v", ErrUnrecognizedFormat, err)
	}

	payload := decoded[1:]
	switch {
	case len(payload) == ScalarLen:
		return FormatWIFUncompressed, nil
	case len(payload) == compressedKeyLen && payload[ScalarLen] == compressionFlag:
		return FormatWIFOther, nil
	case len(payload) == pubKeyHashLen:
		return "", fmt.Errorf("%w: base58check payload is a public key hash (version 0x%02x)", ErrAddressNotKey, decoded[0])
	}
	return "", fmt.Errorf("%w: base58check payload of %d bytes", ErrUnrecognizedFormat, len(payload))
}

// isWIFSized reports whether s decodes to the size of an uncompressed or
// compressed WIF, checksum included.
func isWIFSized(s string) bool {
	n := base58Len(s) - 1 - checksumLen
	return n == ScalarLen || n == compressedKeyLen
}
