// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package keyconv

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

// Chain identifies a target chain for address derivation.
type Chain string

// Supported chains.
const (
	ChainXRPL    Chain = "xrpl"
	ChainBitcoin Chain = "btc"
	ChainFLO     Chain = "flo"
)

// Version bytes for the Base58Check encodings of the Bitcoin-family chains.
const (
	BitcoinAddressVersion byte = 0x00
	BitcoinWIFVersion     byte = 0x80
	FLOAddressVersion     byte = 0x23
	FLOWIFVersion         byte = 0xa3
)

// FLOMainNetParams holds the FLO mainnet Base58 prefixes in btcd form so
// btcutil can encode FLO addresses and WIFs. Only the fields btcutil reads
// for P2PKH addresses and WIF encoding are populated.
var FLOMainNetParams = chaincfg.Params{
	Name:             "flo-mainnet",
	PubKeyHashAddrID: FLOAddressVersion,
	ScriptHashAddrID: 0x5e,
	PrivateKeyID:     FLOWIFVersion,
}

// AllChains returns every supported chain in display order.
func AllChains() []Chain {
	return []Chain{ChainXRPL, ChainBitcoin, ChainFLO}
}

func (c Chain) String() string {
	return string(c)
}

// DisplayName returns the human-readable chain name.
func (c Chain) DisplayName() string {
	switch c {
	case ChainXRPL:
		return "Ripple (XRP)"
	case ChainBitcoin:
		return "Bitcoin (BTC)"
	case ChainFLO:
		return "FLO"
	}
	return string(c)
}

// params returns the btcd network parameters for a Bitcoin-family chain.
func (c Chain) params() (*chaincfg.Params, bool) {
	switch c {
	case ChainBitcoin:
		return &chaincfg.MainNetParams, true
	case ChainFLO:
		return &FLOMainNetParams, true
	}
	return nil, false
}

// ParseChain parses a chain name. Common aliases are accepted.
func ParseChain(s string) (Chain, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "xrpl", "xrp", "ripple":
		return ChainXRPL, nil
	case "btc", "bitcoin":
		return ChainBitcoin, nil
	case "flo", "florincoin":
		return ChainFLO, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChain, s)
}

// ParseChains parses a comma-separated list of chain names. An empty
// string yields every chain.
func ParseChains(s string) ([]Chain, error) {
	if strings.TrimSpace(s) == "" {
		return AllChains(), nil
	}

	parts := strings.Split(s, ",")
	chains := make([]Chain, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		c, err := ParseChain(part)
		if err != nil {
			return nil, err
		}
		chains = append(chains, c)
	}

	if len(chains) == 0 {
		return AllChains(), nil
	}
	return normalizeChains(chains)
}

// normalizeChains validates chains, drops repeats and keeps request order.
// An empty request means every chain.
func normalizeChains(chains []Chain) ([]Chain, error) {
	if len(chains) == 0 {
		return AllChains(), nil
	}

	seen := make(map[Chain]bool, len(chains))
	out := make([]Chain, 0, len(chains))
	for _, c := range chains {
		switch c {
		case ChainXRPL, ChainBitcoin, ChainFLO:
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownChain, string(c))
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out, nil
}
