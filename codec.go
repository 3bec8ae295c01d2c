// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package keyconv

import (
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// base58Alphabet is the Bitcoin Base58 alphabet (no 0, O, I or l).
const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var hexPattern = regexp.MustCompile(`^(0x)?[0-9a-fA-F]+$`)

// Checksum returns the first four bytes of SHA-256(SHA-256(b)).
func Checksum(b []byte) (sum [4]byte) {
	copy(sum[:], chainhash.DoubleHashB(b))
	return sum
}

// Base58CheckEncode prepends version to payload, appends a 4-byte
// double-SHA-256 checksum and Base58-encodes the result.
func Base58CheckEncode(version byte, payload []byte) string {
	return base58.CheckEncode(payload, version)
}

// Base58CheckDecode decodes s and verifies its checksum. The returned slice
// holds the version byte followed by the payload; the checksum is removed.
func Base58CheckDecode(s string) ([]byte, error) {
	payload, version, err := base58.CheckDecode(s)
	switch {
	case errors.Is(err, base58.ErrChecksum):
		return nil, ErrInvalidChecksum
	case err != nil && !isBase58(s):
		return nil, fmt.Errorf("%w: %v", ErrMalformedBase58, err)
	case err != nil:
		return nil, fmt.Errorf("%w: base58check string is too short", ErrInvalidKeyMaterial)
	}

	out := make([]byte, 0, len(payload)+1)
	out = append(out, version)
	return append(out, payload...), nil
}

// HexToBytes decodes an even-length hex string with an optional 0x prefix.
func HexToBytes(s string) ([]byte, error) {
	if !hexPattern.MatchString(s) {
		return nil, fmt.Errorf("%w: unexpected characters", ErrMalformedHex)
	}
	s = strings.TrimPrefix(s, "0x")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: odd number of digits", ErrMalformedHex)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHex, err)
	}
	return b, nil
}

// BytesToHex encodes b as lowercase hex without a prefix.
func BytesToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// base58Len returns the decoded size of s, or 0 when s is not Base58.
func base58Len(s string) int {
	return len(base58.Decode(s))
}

func isBase58(s string) bool {
	for _, c := range s {
		if !strings.ContainsRune(base58Alphabet, c) {
			return false
		}
	}
	return s != ""
}

func isHex(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return s != ""
}
