// Command peglr runs the bundled example grammars against an input
// file or stdin, printing the evaluated result (calc) or the parsed
// node (grammar), or reporting the furthest syntax error.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bredis-lang/peglr"
	"github.com/bredis-lang/peglr/examples/calculator"
	"github.com/bredis-lang/peglr/examples/grammarnotation"
)

var traceEnabled bool

// calcOperators and gramTokens are the tokens each grammar's top level
// expects next; reportSuggestion compares the rune found at the
// furthest error position against them.
var (
	calcOperators = []string{"+", "-", "*", "/", "(", ")"}
	gramTokens    = []string{".", "identifier"}
)

func main() {
	root := &cobra.Command{
		Use:   "peglr",
		Short: "Run the bundled example grammars against input text",
	}
	root.PersistentFlags().BoolVar(&traceEnabled, "trace", false, "log rule enter/exit events")

	root.AddCommand(calcCommand(), gramCommand())

	if err := root.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func calcCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "calc [file]",
		Short: "Evaluate an arithmetic expression",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readSource(args)
			if err != nil {
				return err
			}
			v, err := calculator.Eval(text, peglr.WithTracer(newTracer()))
			if err != nil {
				pterm.Error.Println(err)
				reportSuggestion(text, err, calcOperators)
				return err
			}
			pterm.Success.Printfln("%s = %v", text, v)
			return nil
		},
	}
}

func gramCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "grammar [file]",
		Short: "Parse a dotted field-reference expression",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readSource(args)
			if err != nil {
				return err
			}
			n, err := grammarnotation.Parse(text, peglr.WithTracer(newTracer()))
			if err != nil {
				pterm.Error.Println(err)
				reportSuggestion(text, err, gramTokens)
				return err
			}
			pterm.Success.Printfln("%s", n)
			return nil
		},
	}
}

func readSource(args []string) (string, error) {
	if len(args) == 1 {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(b), nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(b), nil
}

// reportSuggestion prints a "did you mean" hint built from the rune at
// the furthest error position and a fixed set of tokens the failing
// grammar could have expected there, skipped entirely if err carries no
// structured SyntaxError or the cursor landed at end of input.
func reportSuggestion(text string, err error, candidates []string) {
	var syn *peglr.SyntaxError
	if !errors.As(err, &syn) {
		return
	}
	runes := []rune(text)
	if syn.At.Cursor < 0 || syn.At.Cursor >= len(runes) {
		return
	}
	got := string(runes[syn.At.Cursor])
	if suggestion := peglr.SuggestLabel(got, candidates); suggestion != "" {
		pterm.Info.Printfln("did you mean %q?", suggestion)
	}
}

func newTracer() peglr.Tracer {
	if !traceEnabled {
		return peglr.NopTracer{}
	}
	log := logrus.New()
	log.SetLevel(logrus.TraceLevel)
	return peglr.NewLogrusTracer(log)
}
