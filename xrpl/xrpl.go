// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package xrpl implements the XRP Ledger primitives needed to turn a family
// seed into a secp256k1 keypair and a public key into a classic address.
//
// Only the secp256k1 key type is supported. Ed25519 seeds (the "sEd..."
// form) are recognised and rejected with ErrUnsupportedAlgorithm.
package xrpl

import (
	"bytes"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck
)

// Alphabet is the Base58 alphabet used by the XRP Ledger.
const Alphabet = "rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz"

const (
	// SeedEntropyLen is the size of the entropy carried by a family seed.
	SeedEntropyLen = 16

	// AccountIDLen is the size of an account ID (a hash160 of the public key).
	AccountIDLen = 20

	accountIDVersion byte = 0x00
	seedVersion      byte = 0x21
	checksumLen           = 4
)

var (
	alphabet          = base58.NewAlphabet(Alphabet)
	ed25519SeedPrefix = []byte{0x01, 0xe1, 0x4b}
)

var (
	// ErrInvalidEncoding is returned when a string is not valid XRPL Base58.
	ErrInvalidEncoding = errors.New("xrpl: invalid base58 encoding")
	// ErrChecksum is returned when the trailing 4-byte checksum does not match.
	ErrChecksum = errors.New("xrpl: checksum mismatch")
	// ErrInvalidSeed is returned for payloads that are not family seeds.
	ErrInvalidSeed = errors.New("xrpl: invalid family seed")
	// ErrUnsupportedAlgorithm is returned for ed25519 seeds.
	ErrUnsupportedAlgorithm = errors.New("xrpl: ed25519 seeds are not supported")
	// ErrInvalidAddress is returned for strings that are not classic addresses.
	ErrInvalidAddress = errors.New("xrpl: invalid classic address")
	// ErrInvalidPublicKey is returned when a public key is not 33 compressed bytes.
	ErrInvalidPublicKey = errors.New("xrpl: public key must be 33 compressed bytes")
)

func encodeCheck(version, payload []byte) string {
	b := make([]byte, 0, len(version)+len(payload)+checksumLen)
	b = append(b, version...)
	b = append(b, payload...)
	sum := chainhash.DoubleHashB(b)
	b = append(b, sum[:checksumLen]...)
	return base58.EncodeAlphabet(b, alphabet)
}

// decodeCheck returns the version and payload bytes with the checksum removed.
func decodeCheck(s string) ([]byte, error) {
	b, err := base58.DecodeAlphabet(s, alphabet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	if len(b) <= checksumLen {
		return nil, ErrInvalidEncoding
	}
	body, sum := b[:len(b)-checksumLen], b[len(b)-checksumLen:]
	want := chainhash.DoubleHashB(body)
	if !bytes.Equal(sum, want[:checksumLen]) {
		return nil, ErrChecksum
	}
	return body, nil
}

// EncodeSeed encodes 16 bytes of entropy as a secp256k1 family seed ("s...").
func EncodeSeed(entropy []byte) (string, error) {
	if len(entropy) != SeedEntropyLen {
		return "", fmt.Errorf("%w: entropy must be %d bytes, got %d", ErrInvalidSeed, SeedEntropyLen, len(entropy))
	}
	return encodeCheck([]byte{seedVersion}, entropy), nil
}

// DecodeSeed decodes a family seed and returns its 16 bytes of entropy.
func DecodeSeed(seed string) ([]byte, error) {
	body, err := decodeCheck(seed)
	if err != nil {
		return nil, err
	}

	if len(body) == len(ed25519SeedPrefix)+SeedEntropyLen && bytes.HasPrefix(body, ed25519SeedPrefix) {
		return nil, ErrUnsupportedAlgorithm
	}
	if len(body) != 1+SeedEntropyLen || body[0] != seedVersion {
		return nil, ErrInvalidSeed
	}

	entropy := make([]byte, SeedEntropyLen)
	copy(entropy, body[1:])
	return entropy, nil
}

// deriveScalar returns the first SHA-512Half(data || [discrim] || seq) that is
// a valid secp256k1 private scalar.
func deriveScalar(data []byte, discrim *uint32) (btcec.ModNScalar, error) {
	buf := make([]byte, 0, len(data)+8)
	buf = append(buf, data...)
	if discrim != nil {
		buf = binary.BigEndian.AppendUint32(buf, *discrim)
	}
	prefixLen := len(buf)

	for seq := uint32(0); seq < math.MaxUint32; seq++ {
		buf = binary.BigEndian.AppendUint32(buf[:prefixLen], seq)
		h := sha512.Sum512(buf)

		var k btcec.ModNScalar
		if overflow := k.SetByteSlice(h[:32]); overflow || k.IsZero() {
			continue
		}
		return k, nil
	}
	return btcec.ModNScalar{}, errors.New("xrpl: no valid scalar found")
}

// DeriveKeypair derives the account keypair (account index 0) for the given
// seed entropy using the XRPL secp256k1 family-seed algorithm.
//
// The root key is the first valid SHA-512Half(entropy || seq). The account
// key is root + SHA-512Half(rootPub || 0 || subseq) mod n.
func DeriveKeypair(entropy []byte) (priv [32]byte, pub [33]byte, err error) {
	if len(entropy) != SeedEntropyLen {
		return priv, pub, fmt.Errorf("%w: entropy must be %d bytes, got %d", ErrInvalidSeed, SeedEntropyLen, len(entropy))
	}

	root, err := deriveScalar(entropy, nil)
	if err != nil {
		return priv, pub, err
	}
	rootBytes := root.Bytes()
	_, rootPub := btcec.PrivKeyFromBytes(rootBytes[:])

	var accountIndex uint32
	intermediate, err := deriveScalar(rootPub.SerializeCompressed(), &accountIndex)
	if err != nil {
		return priv, pub, err
	}

	account := root
	account.Add(&intermediate)
	if account.IsZero() {
		return priv, pub, errors.New("xrpl: derived account key is zero")
	}

	priv = account.Bytes()
	_, accountPub := btcec.PrivKeyFromBytes(priv[:])
	copy(pub[:], accountPub.SerializeCompressed())
	return priv, pub, nil
}

// AccountID returns RIPEMD-160(SHA-256(pubKey)).
func AccountID(pubKey []byte) []byte {
	sha := sha256.Sum256(pubKey)
	r := ripemd160.New()
	r.Write(sha[:])
	return r.Sum(nil)
}

// ClassicAddress encodes a compressed secp256k1 public key as an "r..." address.
func ClassicAddress(pubKey []byte) (string, error) {
	if len(pubKey) != 33 || (pubKey[0] != 0x02 && pubKey[0] != 0x03) {
		return "", ErrInvalidPublicKey
	}
	return encodeCheck([]byte{accountIDVersion}, AccountID(pubKey)), nil
}

// DecodeClassicAddress validates a classic address and returns its account ID.
func DecodeClassicAddress(address string) ([]byte, error) {
	if !strings.HasPrefix(address, "r") {
		return nil, ErrInvalidAddress
	}
	body, err := decodeCheck(address)
	if err != nil {
		return nil, err
	}
	if len(body) != 1+AccountIDLen || body[0] != accountIDVersion {
		return nil, ErrInvalidAddress
	}
	return body[1:], nil
}

// IsValidClassicAddress reports whether address is a well-formed classic
// address with a valid checksum.
func IsValidClassicAddress(address string) bool {
	_, err := DecodeClassicAddress(address)
	return err == nil
}

// PrivateKeyHex renders a private scalar the way XRPL tooling does: a 0x00
// pad byte followed by the scalar, uppercase hex.
func PrivateKeyHex(priv [32]byte) string {
	return "00" + strings.ToUpper(hex.EncodeToString(priv[:]))
}

// PublicKeyHex renders a public key as uppercase hex.
func PublicKeyHex(pub []byte) string {
	return strings.ToUpper(hex.EncodeToString(pub))
}
