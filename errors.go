// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package keyconv

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedFormat is returned when an input matches no known secret format.
	ErrUnrecognizedFormat = errors.New("unrecognized key format")
	// ErrInvalidChecksum is returned when a Base58Check checksum does not match.
	ErrInvalidChecksum = errors.New("invalid checksum")
	// ErrMalformedHex is returned for input that is not even-length hexadecimal.
	ErrMalformedHex = errors.New("malformed hex")
	// ErrMalformedBase58 is returned for input that is not valid Base58.
	ErrMalformedBase58 = errors.New("malformed base58")
	// ErrInvalidKeyMaterial is returned when decoded bytes are not a usable scalar.
	ErrInvalidKeyMaterial = errors.New("invalid key material")
	// ErrAddressNotKey is returned when the input is a public address.
	ErrAddressNotKey = errors.New("input is an address, not a private key")
	// ErrCurveDerivation is returned when the curve provider fails.
	ErrCurveDerivation = errors.New("curve derivation failed")
	// ErrUnknownChain is returned for chain names that are not supported.
	ErrUnknownChain = errors.New("unknown chain")
)

// Stage names the step of a conversion that failed.
type Stage string

// Conversion stages, in execution order.
const (
	StageDetect  Stage = "detect"
	StageRecover Stage = "recover"
	StageDerive  Stage = "derive"
)

// DerivationError wraps a failure with the stage it came from. Format is
// empty when detection itself failed.
type DerivationError struct {
	Stage  Stage
	Format SourceFormat
	Cause  error
}

func (e *DerivationError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("%s %s: %v", e.Stage, e.Format, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Cause)
}

func (e *DerivationError) Unwrap() error {
	return e.Cause
}

// Guidance returns a short, user-facing explanation of err that tells the
// user what to do next.
func Guidance(err error) string {
	if err == nil {
		return ""
	}

	var format SourceFormat
	var stage Stage
	var derr *DerivationError
	if errors.As(err, &derr) {
		format = derr.Format
		stage = derr.Stage
	}

	switch {
	case errors.Is(err, ErrAddressNotKey):
		return "This looks like a public address. Enter a private key or seed instead."
	case errors.Is(err, ErrUnknownChain):
		return "Unknown chain requested. Supported chains: xrpl, btc, flo."
	case errors.Is(err, ErrInvalidChecksum):
		switch {
		case format == FormatXRPLSeed:
			return "Invalid XRPL seed checksum. Check the seed for typos."
		case isWIFFormat(format), stage == StageDetect:
			// detection only keeps a checksum cause for WIF-sized input
			return "Invalid WIF checksum. Check the key for typos."
		}
		return "Invalid checksum. Check the key for typos."
	case errors.Is(err, ErrUnrecognizedFormat):
		return "Unsupported key format. Supported formats: XRPL seed (s...), WIF (L.../K.../5.../FLO R...), 64-character hex, 0x-prefixed hex, 88-character Base58 secret."
	case errors.Is(err, ErrMalformedHex):
		return "Invalid hex private key. Use 64 hexadecimal characters, optionally prefixed with 0x."
	case errors.Is(err, ErrMalformedBase58):
		return "The key contains characters outside the Base58 alphabet (0, O, I and l are not allowed)."
	case errors.Is(err, ErrInvalidKeyMaterial):
		return fmt.Sprintf("The key is truncated or does not hold a valid secp256k1 private key (%s). Check that it was copied in full.", orUnknown(format))
	case errors.Is(err, ErrCurveDerivation):
		return "The elliptic-curve library could not derive a public key. This is not a problem with your input."
	}
	return err.Error()
}

func isWIFFormat(f SourceFormat) bool {
	return f == FormatWIFCompressed || f == FormatWIFUncompressed || f == FormatWIFOther
}

func orUnknown(f SourceFormat) string {
	if f == "" {
		return "unknown format"
	}
	return f.String()
}
