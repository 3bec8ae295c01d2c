// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package keyconv

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/complex-gh/keyconv/xrpl"
)

// PublicKeyHash is the compressed public key of a scalar and its hash160.
type PublicKeyHash struct {
	CompressedPubKey [33]byte
	Hash160          [20]byte
}

// ChainAddress is one chain's address and encoded private key.
type ChainAddress struct {
	Chain             Chain  `json:"chain"`
	Address           string `json:"address"`
	EncodedPrivateKey string `json:"private_key"`
	PublicKey         string `json:"public_key"`
}

// DerivationResult is the outcome of a conversion. Addresses follow the
// order in which chains were requested. Warnings describe chains that were
// requested but could not be derived.
type DerivationResult struct {
	Source    SourceFormat   `json:"source"`
	Addresses []ChainAddress `json:"addresses"`
	Warnings  []string       `json:"warnings,omitempty"`
}

// Address returns the entry for chain, if it was derived.
func (r DerivationResult) Address(chain Chain) (ChainAddress, bool) {
	for _, a := range r.Addresses {
		if a.Chain == chain {
			return a, true
		}
	}
	return ChainAddress{}, false
}

// PublicKeyHash computes the compressed public key and hash160 for m.
func (c *Converter) PublicKeyHash(m PrivateKeyMaterial) (PublicKeyHash, error) {
	pub, err := c.curve.PublicKey(m.scalar)
	if err != nil {
		if !errors.Is(err, ErrCurveDerivation) {
			err = fmt.Errorf("%w: %v", ErrCurveDerivation, err)
		}
		return PublicKeyHash{}, err
	}

	pkh := PublicKeyHash{CompressedPubKey: pub}
	copy(pkh.Hash160[:], btcutil.Hash160(pub[:]))
	return pkh, nil
}

// DeriveAddresses derives addresses for m using the default converter.
func DeriveAddresses(m PrivateKeyMaterial, chains ...Chain) (DerivationResult, error) {
	return defaultConverter.DeriveAddresses(m, chains...)
}

// DeriveAddresses derives one ChainAddress per requested chain. With no
// chains every supported chain is derived.
//
// A chain that fails is left out of the result and noted in Warnings; the
// remaining chains are still derived. An error is returned only when the
// request is invalid or no chain could be derived at all.
func (c *Converter) DeriveAddresses(m PrivateKeyMaterial, chains ...Chain) (DerivationResult, error) {
	chains, err := normalizeChains(chains)
	if err != nil {
		return DerivationResult{}, err
	}

	result := DerivationResult{Source: m.format}

	pkh, err := c.PublicKeyHash(m)
	if err != nil {
		return result, err
	}

	var failures []error
	for _, chain := range chains {
		addr, err := c.deriveChain(chain, m, pkh)
		if err != nil {
			c.log.Warn().Str("chain", chain.String()).Err(err).Msg("could not derive address, omitting chain")
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", chain.DisplayName(), err))
			failures = append(failures, fmt.Errorf("%s: %w", chain, err))
			continue
		}
		result.Addresses = append(result.Addresses, addr)
	}

	if len(result.Addresses) == 0 {
		return result, fmt.Errorf("no chain could be derived: %w", errors.Join(failures...))
	}
	return result, nil
}

func (c *Converter) deriveChain(chain Chain, m PrivateKeyMaterial, pkh PublicKeyHash) (ChainAddress, error) {
	if chain == ChainXRPL {
		return c.deriveXRPL(m, pkh)
	}
	return deriveP2PKH(chain, m, pkh)
}

// deriveXRPL encodes the classic address. A seed source keeps the seed as
// its exportable secret; any other source exports the XRPL private-key hex.
func (c *Converter) deriveXRPL(m PrivateKeyMaterial, pkh PublicKeyHash) (ChainAddress, error) {
	address, err := c.xrpl.ClassicAddress(pkh.CompressedPubKey[:])
	if err != nil {
		return ChainAddress{}, fmt.Errorf("could not encode classic address: %w", err)
	}

	secret := xrpl.PrivateKeyHex(m.scalar)
	if m.format == FormatXRPLSeed {
		secret = m.input
	}

	return ChainAddress{
		Chain:             ChainXRPL,
		Address:           address,
		EncodedPrivateKey: secret,
		PublicKey:         xrpl.PublicKeyHex(pkh.CompressedPubKey[:]),
	}, nil
}

// deriveP2PKH builds a Base58Check P2PKH address and a compressed WIF with
// the chain's version bytes.
func deriveP2PKH(chain Chain, m PrivateKeyMaterial, pkh PublicKeyHash) (ChainAddress, error) {
	params, ok := chain.params()
	if !ok {
		return ChainAddress{}, fmt.Errorf("%w: %q", ErrUnknownChain, string(chain))
	}

	addr, err := btcutil.NewAddressPubKeyHash(pkh.Hash160[:], params)
	if err != nil {
		return ChainAddress{}, fmt.Errorf("failed to create P2PKH address: %w", err)
	}

	priv, _ := btcec.PrivKeyFromBytes(m.scalar[:])
	wif, err := btcutil.NewWIF(priv, params, true)
	if err != nil {
		return ChainAddress{}, fmt.Errorf("failed to encode WIF: %w", err)
	}

	return ChainAddress{
		Chain:             chain,
		Address:           addr.EncodeAddress(),
		EncodedPrivateKey: wif.String(),
		PublicKey:         BytesToHex(pkh.CompressedPubKey[:]),
	}, nil
}
