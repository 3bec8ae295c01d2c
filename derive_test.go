// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package keyconv

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/complex-gh/keyconv/xrpl"
	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

const (
	keyOneXRPLAddress = "rBgGZ9tc4him9KBzD8fKFiQz3fSZpaSwMH"
	keyOneFLOAddress  = "FGWP1xKhDP5RmV525TmUoEwX9mTZwp3sJn"
	keyOneFLOWIF      = "R7WnCJjdY4LQqMAD9MLZmNRPZpkL5DCVY1YFD3US2zr1uTVbv7Sr"
)

// brokenLedger fails to encode classic addresses.
type brokenLedger struct {
	LedgerProvider
}

func (brokenLedger) ClassicAddress([]byte) (string, error) {
	return "", errors.New("address codec unavailable")
}

// brokenCurve fails every public key computation.
type brokenCurve struct{}

func (brokenCurve) PublicKey([32]byte) ([33]byte, error) {
	return [33]byte{}, errors.New("curve unavailable")
}

func keyOne(t *testing.T) PrivateKeyMaterial {
	t.Helper()
	m, err := RecoverScalar(keyOneHex, FormatHexRaw)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// TestPublicKeyHash_KeyOne checks the public key and hash160 of key 1
func TestPublicKeyHash_KeyOne(t *testing.T) {
	is := is.New(t)

	pkh, err := NewConverter().PublicKeyHash(keyOne(t))
	is.NoErr(err)
	is.Equal(BytesToHex(pkh.CompressedPubKey[:]), keyOnePubKey)
	is.Equal(BytesToHex(pkh.Hash160[:]), keyOneHash160)
}

// TestDeriveAddresses_KeyOne derives every chain for key 1
func TestDeriveAddresses_KeyOne(t *testing.T) {
	is := is.New(t)

	result, err := DeriveAddresses(keyOne(t))
	is.NoErr(err)
	is.Equal(result.Source, FormatHexRaw)
	is.Equal(len(result.Warnings), 0)
	is.Equal(len(result.Addresses), 3)

	xrp := result.Addresses[0]
	is.Equal(xrp.Chain, ChainXRPL)
	is.Equal(xrp.Address, keyOneXRPLAddress)
	is.Equal(xrp.EncodedPrivateKey, "00"+strings.ToUpper(keyOneHex))
	is.Equal(xrp.PublicKey, strings.ToUpper(keyOnePubKey))

	btc := result.Addresses[1]
	is.Equal(btc.Chain, ChainBitcoin)
	is.Equal(btc.Address, keyOneBTCAddress)
	is.Equal(btc.EncodedPrivateKey, keyOneWIF)
	is.Equal(btc.PublicKey, keyOnePubKey)

	flo := result.Addresses[2]
	is.Equal(flo.Chain, ChainFLO)
	is.Equal(flo.Address, keyOneFLOAddress)
	is.Equal(flo.EncodedPrivateKey, keyOneFLOWIF)
}

// TestDeriveAddresses_SharedHash160 verifies that all three addresses
// commit to the same hash160
func TestDeriveAddresses_SharedHash160(t *testing.T) {
	is := is.New(t)

	result, err := DeriveAddresses(keyOne(t))
	is.NoErr(err)

	btc, ok := result.Address(ChainBitcoin)
	is.True(ok)
	decoded, err := Base58CheckDecode(btc.Address)
	is.NoErr(err)
	is.Equal(decoded[0], BitcoinAddressVersion)
	is.Equal(BytesToHex(decoded[1:]), keyOneHash160)

	flo, ok := result.Address(ChainFLO)
	is.True(ok)
	is.True(strings.HasPrefix(flo.Address, "F"))
	is.True(strings.HasPrefix(flo.EncodedPrivateKey, "R"))
	decoded, err = Base58CheckDecode(flo.Address)
	is.NoErr(err)
	is.Equal(decoded[0], FLOAddressVersion)
	is.Equal(BytesToHex(decoded[1:]), keyOneHash160)

	decoded, err = Base58CheckDecode(flo.EncodedPrivateKey)
	is.NoErr(err)
	is.Equal(decoded[0], FLOWIFVersion)

	// the classic address is the Bitcoin address spelled in the ripple alphabet
	xrp, ok := result.Address(ChainXRPL)
	is.True(ok)
	translated := strings.Map(func(r rune) rune {
		return rune(xrpl.Alphabet[strings.IndexRune(base58Alphabet, r)])
	}, btc.Address)
	is.Equal(xrp.Address, translated)
}

// TestDeriveAddresses_ChainSelection keeps request order and drops repeats
func TestDeriveAddresses_ChainSelection(t *testing.T) {
	is := is.New(t)

	result, err := DeriveAddresses(keyOne(t), ChainFLO, ChainBitcoin, ChainFLO)
	is.NoErr(err)
	is.Equal(len(result.Addresses), 2)
	is.Equal(result.Addresses[0].Chain, ChainFLO)
	is.Equal(result.Addresses[1].Chain, ChainBitcoin)

	_, err = DeriveAddresses(keyOne(t), Chain("doge"))
	is.True(errors.Is(err, ErrUnknownChain))
}

// TestDeriveAddresses_PartialFailure omits a failing chain and warns
func TestDeriveAddresses_PartialFailure(t *testing.T) {
	is := is.New(t)

	var logs bytes.Buffer
	c := NewConverter(
		WithXRPLProvider(brokenLedger{}),
		WithLogger(zerolog.New(&logs)),
	)

	result, err := c.DeriveAddresses(keyOne(t))
	is.NoErr(err)
	is.Equal(len(result.Addresses), 2)
	is.Equal(result.Addresses[0].Chain, ChainBitcoin)
	is.Equal(result.Addresses[1].Chain, ChainFLO)
	is.Equal(len(result.Warnings), 1)
	is.True(strings.HasPrefix(result.Warnings[0], ChainXRPL.DisplayName()))

	is.True(strings.Contains(logs.String(), `"level":"warn"`))
	is.True(strings.Contains(logs.String(), `"chain":"xrpl"`))

	// nothing left to return
	_, err = c.DeriveAddresses(keyOne(t), ChainXRPL)
	is.True(err != nil)
}

// TestDeriveAddresses_CurveFailure fails every chain when no public key
// can be computed
func TestDeriveAddresses_CurveFailure(t *testing.T) {
	is := is.New(t)

	c := NewConverter(WithCurveProvider(brokenCurve{}))
	_, err := c.DeriveAddresses(keyOne(t))
	is.True(errors.Is(err, ErrCurveDerivation))
}

// TestDeriveAddresses_SeedKeepsSeed exports the seed itself as the XRPL
// private key when the source was a seed
func TestDeriveAddresses_SeedKeepsSeed(t *testing.T) {
	is := is.New(t)

	m, err := RecoverScalar(genesisSeed, FormatXRPLSeed)
	is.NoErr(err)

	result, err := DeriveAddresses(m, ChainXRPL)
	is.NoErr(err)
	is.Equal(result.Addresses[0].Address, genesisAddress)
	is.Equal(result.Addresses[0].EncodedPrivateKey, genesisSeed)
}
