// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package config

import (
	"errors"
	"os"
	"testing"

	"github.com/complex-gh/keyconv"
	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

// unsetEnv removes the KEYCONV_* variables for the duration of the test.
func unsetEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"KEYCONV_CHAINS", "KEYCONV_OUTPUT", "KEYCONV_LOG_LEVEL"} {
		t.Setenv(k, "")
		if err := os.Unsetenv(k); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	is := is.New(t)
	unsetEnv(t)

	c, err := Load()
	is.NoErr(err)
	is.Equal(c.Output, OutputText)

	lvl, err := c.Level()
	is.NoErr(err)
	is.Equal(lvl, zerolog.WarnLevel)

	chains, err := c.ChainList()
	is.NoErr(err)
	is.Equal(chains, keyconv.AllChains())
}

func TestLoad_FromEnvironment(t *testing.T) {
	is := is.New(t)
	unsetEnv(t)

	t.Setenv("KEYCONV_CHAINS", "btc,ripple")
	t.Setenv("KEYCONV_OUTPUT", "JSON")
	t.Setenv("KEYCONV_LOG_LEVEL", "debug")

	c, err := Load()
	is.NoErr(err)
	is.Equal(c.Output, OutputJSON)

	lvl, err := c.Level()
	is.NoErr(err)
	is.Equal(lvl, zerolog.DebugLevel)

	chains, err := c.ChainList()
	is.NoErr(err)
	is.Equal(chains, []keyconv.Chain{keyconv.ChainBitcoin, keyconv.ChainXRPL})
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string][2]string{
		"output":    {"KEYCONV_OUTPUT", "yaml"},
		"log level": {"KEYCONV_LOG_LEVEL", "loud"},
		"chains":    {"KEYCONV_CHAINS", "xrpl,doge"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			unsetEnv(t)
			t.Setenv(env[0], env[1])
			_, err := Load()
			is.True(err != nil)
		})
	}

	is := is.New(t)
	unsetEnv(t)
	t.Setenv("KEYCONV_CHAINS", "doge")
	_, err := Load()
	is.True(errors.Is(err, keyconv.ErrUnknownChain))
}
