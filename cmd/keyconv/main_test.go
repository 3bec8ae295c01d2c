// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/complex-gh/keyconv"
	"github.com/matryer/is"
)

const testSeed = "snoPBrXtMeMyMHUVTgbuqAfg1SUTb"

func TestNormalizeSecret(t *testing.T) {
	is := is.New(t)

	// full-width letters and a non-breaking space, as pasted from some documents
	is.Equal(normalizeSecret("\u00a0ｓｎｏＰＢｒＸｔＭｅＭｙＭＨＵＶＴｇｂｕｑＡｆｇ１ＳＵＴｂ \n"), testSeed)
	is.Equal(normalizeSecret(testSeed), testSeed)
}

func TestFirstLine(t *testing.T) {
	is := is.New(t)

	s, err := firstLine(strings.NewReader("\n\n  " + testSeed + "  \nignored\n"))
	is.NoErr(err)
	is.Equal(s, testSeed)

	_, err = firstLine(strings.NewReader("\n \n"))
	is.True(err != nil)
}

func TestPrintResult_Text(t *testing.T) {
	is := is.New(t)

	result, err := keyconv.Convert(testSeed)
	is.NoErr(err)

	var buf bytes.Buffer
	is.NoErr(printResult(&buf, result, false))

	out := buf.String()
	is.True(strings.HasPrefix(out, "[detected format]\n\nXRPL seed\n\n"))
	is.True(strings.Contains(out, "[ripple (xrp)]\n\nrHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh (address)\n"))
	is.True(strings.Contains(out, testSeed+" (family seed)\n"))
	is.True(strings.Contains(out, "[bitcoin (btc)]\n\n1"))
	is.True(strings.Contains(out, "[flo]\n\nF"))
	is.True(strings.Contains(out, "(private key WIF)"))
}

func TestPrintResult_JSON(t *testing.T) {
	is := is.New(t)

	result, err := keyconv.Convert(testSeed, keyconv.ChainXRPL)
	is.NoErr(err)

	var buf bytes.Buffer
	is.NoErr(printResult(&buf, result, true))

	var decoded struct {
		Source    string `json:"source"`
		Addresses []struct {
			Chain      string `json:"chain"`
			Address    string `json:"address"`
			PrivateKey string `json:"private_key"`
		} `json:"addresses"`
		Warnings []string `json:"warnings"`
	}
	is.NoErr(json.Unmarshal(buf.Bytes(), &decoded))
	is.Equal(decoded.Source, "xrpl-seed")
	is.Equal(len(decoded.Addresses), 1)
	is.Equal(decoded.Addresses[0].Chain, "xrpl")
	is.Equal(decoded.Addresses[0].Address, "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh")
	is.Equal(decoded.Addresses[0].PrivateKey, testSeed)
	is.True(!strings.Contains(buf.String(), "warnings")) // empty warnings are omitted
}

func TestPrivateKeyLabel(t *testing.T) {
	is := is.New(t)

	xrp := keyconv.ChainAddress{Chain: keyconv.ChainXRPL}
	btc := keyconv.ChainAddress{Chain: keyconv.ChainBitcoin}
	is.Equal(privateKeyLabel(xrp, keyconv.FormatXRPLSeed), "family seed")
	is.Equal(privateKeyLabel(xrp, keyconv.FormatHexRaw), "private key hex")
	is.Equal(privateKeyLabel(btc, keyconv.FormatXRPLSeed), "private key WIF")
}

func TestFormatError_KeepsCause(t *testing.T) {
	is := is.New(t)

	_, err := keyconv.Convert("rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh")
	is.True(err != nil)

	ferr := formatError(err)
	is.True(errors.Is(ferr, keyconv.ErrAddressNotKey))
	is.Equal(ferr.Error(), keyconv.Guidance(err))
}

func TestPrintWarnings(t *testing.T) {
	is := is.New(t)

	var buf bytes.Buffer
	printWarnings(&buf, nil)
	is.Equal(buf.Len(), 0)

	printWarnings(&buf, []string{"Ripple (XRP): unavailable"})
	is.True(strings.Contains(buf.String(), "Ripple (XRP): unavailable"))
}
