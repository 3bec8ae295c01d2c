// derive_flo prints the FLO address and WIF for any supported secret, for testing.
//
// Usage:
//
//	go run ./scripts/derive_flo snoPBrXtMeMyMHUVTgbuqAfg1SUTb
//
// Or with stdin:
//
//	echo "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn" | go run ./scripts/derive_flo
//
// Note: FLO addresses use version 0x23 ("F...") and FLO WIFs use 0xA3
// ("R..."). The same key imported into a FLO wallet and an XRPL wallet
// controls both accounts.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/complex-gh/keyconv"
)

func main() {
	var secret string

	if len(os.Args) > 1 {
		secret = os.Args[1]
	} else {
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			secret = strings.TrimSpace(scanner.Text())
		}
	}

	if secret == "" {
		fmt.Fprintln(os.Stderr, "Usage: derive_flo <secret>")
		fmt.Fprintln(os.Stderr, "   or: echo <secret> | derive_flo")
		os.Exit(1)
	}

	result, err := keyconv.Convert(secret, keyconv.ChainFLO)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", keyconv.Guidance(err))
		os.Exit(1)
	}

	flo, _ := result.Address(keyconv.ChainFLO)
	fmt.Println(flo.Address)
	fmt.Println(flo.EncodedPrivateKey)
}
