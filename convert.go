// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package keyconv interprets secp256k1 private keys in the encodings used by
// the XRP Ledger, Bitcoin and FLO, and derives the matching address and
// exportable private key for each of those chains.
//
// A secret is first classified (DetectFormat), then decoded to its 32-byte
// scalar (RecoverScalar), then re-encoded for every requested chain
// (DeriveAddresses). Convert runs all three steps.
package keyconv

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/complex-gh/keyconv/xrpl"
	"github.com/rs/zerolog"
)

// Converter runs conversions with a fixed set of collaborators. It holds no
// mutable state and is safe for concurrent use.
type Converter struct {
	xrpl  XRPLProvider
	curve CurveProvider
	log   zerolog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithXRPLProvider replaces the XRP Ledger primitives.
func WithXRPLProvider(p XRPLProvider) Option {
	return func(c *Converter) {
		c.xrpl = p
	}
}

// WithCurveProvider replaces the secp256k1 public key computation.
func WithCurveProvider(p CurveProvider) Option {
	return func(c *Converter) {
		c.curve = p
	}
}

// WithLogger sets the logger used for debug traces and partial-failure
// warnings. Secrets are never logged.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Converter) {
		c.log = l
	}
}

// NewConverter returns a Converter using the built-in providers unless
// overridden. Without WithLogger it logs nothing.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		xrpl:  LedgerProvider{},
		curve: Secp256k1{},
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultConverter = NewConverter()

// Convert detects the format of input, recovers its scalar and derives
// addresses for chains using the default converter.
func Convert(input string, chains ...Chain) (DerivationResult, error) {
	return defaultConverter.Convert(input, chains...)
}

// Convert detects the format of input, recovers its scalar and derives
// addresses for chains (all chains when none are given). Failures are
// returned as *DerivationError.
func (c *Converter) Convert(input string, chains ...Chain) (DerivationResult, error) {
	input = strings.TrimSpace(input)

	format, err := DetectFormat(input)
	if err != nil {
		c.log.Debug().Err(err).Msg("format detection failed")
		return DerivationResult{}, &DerivationError{Stage: StageDetect, Cause: err}
	}
	c.log.Debug().Str("format", format.String()).Msg("detected key format")

	m, err := c.RecoverScalar(input, format)
	if err != nil {
		c.log.Debug().Str("format", format.String()).Err(err).Msg("scalar recovery failed")
		return DerivationResult{}, &DerivationError{Stage: StageRecover, Format: format, Cause: err}
	}

	result, err := c.DeriveAddresses(m, chains...)
	if err != nil {
		return result, &DerivationError{Stage: StageDerive, Format: format, Cause: err}
	}

	c.log.Debug().
		Str("format", format.String()).
		Int("addresses", len(result.Addresses)).
		Int("warnings", len(result.Warnings)).
		Msg("derived addresses")
	return result, nil
}

// Generate creates a new XRPL family seed from 16 bytes read from r and
// converts it using the default converter.
func Generate(r io.Reader, chains ...Chain) (DerivationResult, error) {
	return defaultConverter.Generate(r, chains...)
}

// Generate creates a new XRPL family seed from 16 bytes read from r and
// converts it. Pass crypto/rand.Reader for real keys.
func (c *Converter) Generate(r io.Reader, chains ...Chain) (DerivationResult, error) {
	entropy := make([]byte, xrpl.SeedEntropyLen)
	if _, err := io.ReadFull(r, entropy); err != nil {
		return DerivationResult{}, fmt.Errorf("failed to read entropy: %w", err)
	}

	seed, err := xrpl.EncodeSeed(entropy)
	if err != nil {
		return DerivationResult{}, fmt.Errorf("failed to encode seed: %w", err)
	}
	return c.Convert(seed, chains...)
}

// ValidateClassicAddress checks that addr is an XRPL classic address with a
// valid checksum, using the default converter.
func ValidateClassicAddress(addr string) error {
	return defaultConverter.ValidateClassicAddress(addr)
}

// ValidateClassicAddress checks that addr is an XRPL classic address with a
// valid checksum.
func (c *Converter) ValidateClassicAddress(addr string) error {
	addr = strings.TrimSpace(addr)
	if c.xrpl.IsValidClassicAddress(addr) {
		return nil
	}

	// the provider only answers yes or no; decode again for a precise cause
	_, err := xrpl.DecodeClassicAddress(addr)
	switch {
	case errors.Is(err, xrpl.ErrChecksum):
		return fmt.Errorf("%w: classic address", ErrInvalidChecksum)
	case errors.Is(err, xrpl.ErrInvalidEncoding):
		return fmt.Errorf("%w: classic address", ErrMalformedBase58)
	}
	return fmt.Errorf("%w: not an XRPL classic address", ErrUnrecognizedFormat)
}
