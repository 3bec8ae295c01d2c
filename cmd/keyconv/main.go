// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package main provides the keyconv CLI tool for converting a private key
// between the XRP Ledger, Bitcoin and FLO.
package main

import (
	"bufio"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/complex-gh/keyconv"
	"github.com/complex-gh/keyconv/internal/config"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-tty"
	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/text/unicode/norm"
)

const (
	maxWidth = 72
)

var (
	baseStyle  = lipgloss.NewStyle().Margin(0, 0, 1, 2) //nolint:mnd
	red        = lipgloss.Color(completeColor("#FF4444", "196", "9"))
	yellow     = lipgloss.Color(completeColor("#E5C07B", "179", "3"))
	errorStyle = baseStyle.
			Foreground(red).
			Background(lipgloss.AdaptiveColor{Light: completeColor("#FFEBEB", "255", "7"), Dark: completeColor("#2B1A1A", "235", "8")}).
			Padding(1, 2) //nolint:mnd
	warnStyle = baseStyle.
			Foreground(yellow).
			Padding(0, 2) //nolint:mnd

	chainsFlag string
	jsonOutput bool
	verbose    bool

	cfg       config.Config
	logger    = zerolog.Nop()
	converter = keyconv.NewConverter()

	rootCmd = &cobra.Command{
		Use:   "keyconv [secret]",
		Short: "Convert a private key between XRPL, Bitcoin and FLO",
		Long: `Convert a private key between the XRP Ledger, Bitcoin and FLO.

The secret may be an XRPL family seed (s...), a WIF (L..., K..., 5... or a
FLO R... key), 64 hex characters with or without a 0x prefix, or an
88-character Base58 secret. The same secp256k1 key is shown as an address
and an importable private key for every selected chain.

When no secret is given it is read from stdin if stdin is a pipe, and
otherwise prompted for without echo.

SECURITY TIP: Prefer the prompt or a pipe over passing the secret as an
argument, so it is not saved in your shell history. If you must pass it,
add a space before the command:
    keyconv snoPBrXtMeMyMHUVTgbuqAfg1SUTb
    ^ (note the leading space)
Most shells (bash, zsh) are configured to ignore commands that start
with a space. Check your HISTCONTROL or HIST_IGNORE_SPACE settings.`,
		Example: `  keyconv
  keyconv --chains btc,flo
  keyconv --json < secret.txt
  pass show xrpl/main | keyconv -
  keyconv detect
  keyconv generate --chains xrpl
  keyconv validate rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE: func(_ *cobra.Command, args []string) error {
			chains, err := selectedChains()
			if err != nil {
				return formatError(err)
			}

			secret, err := readSecret(args)
			if err != nil {
				return err
			}

			result, err := converter.Convert(secret, chains...)
			if err != nil {
				return formatError(err)
			}

			printWarnings(os.Stderr, result.Warnings)
			return printResult(os.Stdout, result, outputJSON())
		},
	}

	detectCmd = &cobra.Command{
		Use:   "detect [secret]",
		Short: "Show which format a secret is in",
		Long: `Show which format a secret is in without converting it.

Only the format is printed. The secret itself is never echoed.`,
		Example: `  keyconv detect
  echo 0x0000000000000000000000000000000000000000000000000000000000000001 | keyconv detect`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			secret, err := readSecret(args)
			if err != nil {
				return err
			}

			format, err := keyconv.DetectFormat(secret)
			if err != nil {
				return formatError(err)
			}

			if outputJSON() {
				return writeJSON(os.Stdout, map[string]string{
					"format":      format.String(),
					"description": format.Description(),
				})
			}
			fmt.Printf("%s (%s)\n", format.Description(), format)
			return nil
		},
	}

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate a new XRPL family seed and its addresses",
		Long: `Generate a new XRPL family seed from 16 bytes of system randomness
and show the addresses and private keys it controls on every selected chain.`,
		Example: `  keyconv generate
  keyconv generate --chains xrpl --json`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			chains, err := selectedChains()
			if err != nil {
				return formatError(err)
			}

			result, err := converter.Generate(rand.Reader, chains...)
			if err != nil {
				return formatError(err)
			}

			printWarnings(os.Stderr, result.Warnings)
			return printResult(os.Stdout, result, outputJSON())
		},
	}

	validateCmd = &cobra.Command{
		Use:          "validate <address>",
		Short:        "Check an XRPL classic address",
		Long:         `Check that an XRPL classic address (r...) is well formed and its checksum matches.`,
		Example:      `  keyconv validate rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			address := normalizeSecret(args[0])
			if err := converter.ValidateClassicAddress(address); err != nil {
				return formatError(err)
			}
			fmt.Printf("%s is a valid XRPL classic address\n", address)
			return nil
		},
	}

	manCmd = &cobra.Command{
		Use:          "man",
		Args:         cobra.NoArgs,
		Short:        "generate man pages",
		Hidden:       true,
		SilenceUsage: true,
		RunE: func(*cobra.Command, []string) error {
			manPage, err := mcobra.NewManPage(1, rootCmd)
			if err != nil {
				//nolint: wrapcheck
				return err
			}
			manPage = manPage.WithSection("Copyright", "(C) 2025-2026 complex.\n"+
				"See LICENSE for licensing information.")
			fmt.Println(manPage.Build(roff.NewDocument()))
			return nil
		},
	}

	// completionCmd generates shell completion scripts for bash, zsh, fish, and powershell.
	completionCmd = &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion script for keyconv.

To load completions:

Bash:
  $ source <(keyconv completion bash)

Zsh:
  $ keyconv completion zsh > "${fpath[1]}/_keyconv"

Fish:
  $ keyconv completion fish | source

PowerShell:
  PS> keyconv completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		SilenceUsage:          true,
		RunE: func(_ *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unknown shell: %s", args[0])
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&chainsFlag, "chains", "c", "", "Chains to derive (comma-separated: xrpl,btc,flo; default $KEYCONV_CHAINS or all)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of text (default $KEYCONV_OUTPUT)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log conversion steps to stderr")
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(manCmd)
	rootCmd.AddCommand(completionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads the environment defaults and builds the logger and converter.
func setup(*cobra.Command, []string) error {
	c, err := config.Load()
	if err != nil {
		return err //nolint:wrapcheck
	}
	cfg = c

	lvl, err := cfg.Level()
	if err != nil {
		return err //nolint:wrapcheck
	}
	if verbose {
		lvl = zerolog.DebugLevel
	}

	logger = newLogger(os.Stderr, lvl)
	converter = keyconv.NewConverter(keyconv.WithLogger(logger))
	return nil
}

func newLogger(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// selectedChains prefers --chains over KEYCONV_CHAINS.
func selectedChains() ([]keyconv.Chain, error) {
	if chainsFlag != "" {
		//nolint:wrapcheck
		return keyconv.ParseChains(chainsFlag)
	}
	//nolint:wrapcheck
	return cfg.ChainList()
}

func outputJSON() bool {
	return jsonOutput || cfg.Output == config.OutputJSON
}

// readSecret takes the secret from the first argument, from stdin when the
// argument is "-" or stdin is a pipe, or from a no-echo prompt.
func readSecret(args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		return normalizeSecret(args[0]), nil
	}

	if len(args) > 0 || stdinIsPipe() {
		s, err := firstLine(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("could not read secret: %w", err)
		}
		return normalizeSecret(s), nil
	}

	b, err := readPassword("Enter private key or seed: ")
	if err != nil {
		return "", err
	}
	defer clear(b)
	_, _ = fmt.Fprintln(os.Stderr)
	return normalizeSecret(string(b)), nil
}

func stdinIsPipe() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) == 0
}

// firstLine returns the first non-empty line of r.
func firstLine(r io.Reader) (string, error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return line, nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", err //nolint:wrapcheck
	}
	return "", errors.New("no secret on stdin")
}

// normalizeSecret folds pasted compatibility characters, such as
// full-width letters or non-breaking spaces, to their plain forms.
func normalizeSecret(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}

func readPassword(msg string) ([]byte, error) {
	_, _ = fmt.Fprint(os.Stderr, msg)
	t, err := tty.Open()
	if err != nil {
		return nil, fmt.Errorf("could not open tty: %w", err)
	}
	defer t.Close()                                     //nolint: errcheck
	pass, err := term.ReadPassword(int(t.Input().Fd())) //nolint: gosec
	if err != nil {
		return nil, fmt.Errorf("could not read secret: %w", err)
	}
	return pass, nil
}

// printResult writes the derived addresses as text blocks or JSON.
func printResult(w io.Writer, r keyconv.DerivationResult, asJSON bool) error {
	if asJSON {
		return writeJSON(w, r)
	}

	var b strings.Builder
	b.WriteString("[detected format]\n\n")
	fmt.Fprintf(&b, "%s\n\n", r.Source.Description())

	for _, a := range r.Addresses {
		fmt.Fprintf(&b, "[%s]\n\n", strings.ToLower(a.Chain.DisplayName()))
		fmt.Fprintf(&b, "%s (address)\n", a.Address)
		fmt.Fprintf(&b, "%s (%s)\n", a.EncodedPrivateKey, privateKeyLabel(a, r.Source))
		fmt.Fprintf(&b, "%s (public key)\n\n", a.PublicKey)
	}

	_, err := io.WriteString(w, b.String())
	return err //nolint:wrapcheck
}

func privateKeyLabel(a keyconv.ChainAddress, source keyconv.SourceFormat) string {
	switch {
	case a.Chain == keyconv.ChainXRPL && source == keyconv.FormatXRPLSeed:
		return "family seed"
	case a.Chain == keyconv.ChainXRPL:
		return "private key hex"
	}
	return "private key WIF"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	//nolint:wrapcheck
	return enc.Encode(v)
}

// printWarnings shows chains that could not be derived.
func printWarnings(w io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		for _, warning := range warnings {
			_, _ = fmt.Fprintf(w, "warning: %s\n", warning)
		}
		return
	}

	var b strings.Builder
	for _, warning := range warnings {
		renderBlock(&b, warnStyle, getWidth(maxWidth), "! "+warning)
	}
	_, _ = io.WriteString(w, b.String())
}

// formatError shows the guidance for err in a styled block when stdout is a
// terminal, and returns the guidance as a plain error for the exit path.
func formatError(err error) error {
	logger.Debug().Err(err).Msg("conversion failed")
	msg := keyconv.Guidance(err)

	if isatty.IsTerminal(os.Stdout.Fd()) {
		b := strings.Builder{}
		w := getWidth(maxWidth)

		b.WriteRune('\n')
		renderBlock(&b, errorStyle, w, msg)
		b.WriteRune('\n')

		fmt.Print(b.String())
	}
	return &guidedError{msg: msg, err: err}
}

// guidedError carries a user-facing message while keeping the cause
// reachable through errors.Is.
type guidedError struct {
	msg string
	err error
}

func (e *guidedError) Error() string { return e.msg }
func (e *guidedError) Unwrap() error { return e.err }

func getWidth(maxw int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd())) //nolint: gosec
	if err != nil || w > maxw {
		return maxWidth
	}
	return w
}

func renderBlock(w io.Writer, s lipgloss.Style, width int, str string) {
	_, _ = io.WriteString(w, s.Width(width).Render(str))
	_, _ = io.WriteString(w, "\n")
}

func completeColor(truecolor, ansi256, ansi string) string {
	//nolint: exhaustive
	switch lipgloss.ColorProfile() {
	case termenv.TrueColor:
		return truecolor
	case termenv.ANSI256:
		return ansi256
	}
	return ansi
}
