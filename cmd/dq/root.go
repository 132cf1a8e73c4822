/*
File    : dq/cmd/dq/root.go
Author  : dq contributors

The CLI surface, grounded on github.com/spf13/cobra — a natural fit
for a multi-flag Go CLI; cobra.Command plus pflag give the
-r/-c/-s/-n/-e short-flag surface for free.
*/
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dq-lang/dq/builtins"
	"github.com/dq-lang/dq/diag"
	"github.com/dq-lang/dq/env"
	"github.com/dq-lang/dq/eval"
	"github.com/dq-lang/dq/format"
	"github.com/dq-lang/dq/parser"
	"github.com/dq-lang/dq/repl"
	"github.com/dq-lang/dq/stream"
	"github.com/dq-lang/dq/value"
)

var redColor = color.New(color.FgRed)

type flags struct {
	raw         bool
	compact     bool
	slurp       bool
	nullInput   bool
	exitStatus  bool
	fromFormat  string
	toFormat    string
	fromFile    string
	args        map[string]string
	argjson     map[string]string
	interactive bool
}

// NewRootCmd builds the dq root command: `dq [flags] <query> [file]`.
// Only the first file operand is read; with none, input comes from stdin.
func NewRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "dq [flags] <query> [file]",
		Short: "dq — a streaming, jq-like data-query engine",
		Long: `dq reads YAML, JSON/NDJSON, XML, TOML, CSV or TSV, evaluates a
jq-like query against each record, and writes zero or more results in
any supported format.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(f, cmd, args)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.Flags().BoolVarP(&f.raw, "raw-output", "r", false, "print top-level strings unquoted")
	cmd.Flags().BoolVarP(&f.compact, "compact-output", "c", false, "omit output indentation")
	cmd.Flags().BoolVarP(&f.slurp, "slurp", "s", false, "collect all records into one array before running the query")
	cmd.Flags().BoolVarP(&f.nullInput, "null-input", "n", false, "run the query once against null instead of reading records")
	cmd.Flags().BoolVarP(&f.exitStatus, "exit-status", "e", false, "exit 1 if the last output is false or null, 2 if there is no output")
	cmd.Flags().StringVar(&f.fromFormat, "from", "json", "input format: yaml|json|jsonl|xml|toml|csv|tsv")
	cmd.Flags().StringVar(&f.toFormat, "to", "", "output format (defaults to --from)")
	cmd.Flags().StringVarP(&f.fromFile, "from-file", "f", "", "read the query from a file instead of argv")
	cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false, "start the interactive query console")
	cmd.Flags().StringToStringVar(&f.args, "arg", nil, "bind $name to a string value")
	cmd.Flags().StringToStringVar(&f.argjson, "argjson", nil, "bind $name to a JSON value")

	return cmd
}

func runQuery(f *flags, cmd *cobra.Command, args []string) error {
	queryText, inputArgs, err := resolveQuery(f, args)
	if err != nil {
		return err
	}

	root := env.New(nil)
	builtins.Register(root)
	builtins.BindEnvVars(root)
	if err := bindCLIVars(root, f); err != nil {
		return err
	}

	if f.interactive {
		return runInteractive(root)
	}

	ast, perr := parser.Parse(queryText)
	if perr != nil {
		return fmt.Errorf("%s", perr)
	}

	in, err := openInput(inputArgs)
	if err != nil {
		return err
	}
	defer in.Close()

	fromFmt, err := format.Parse(f.fromFormat)
	if err != nil {
		return err
	}
	toFmtName := f.toFormat
	if toFmtName == "" {
		toFmtName = f.fromFormat
	}
	toFmt, err := format.Parse(toFmtName)
	if err != nil {
		return err
	}

	dec, err := format.NewDecoder(fromFmt, bufio.NewReader(in))
	if err != nil {
		return err
	}
	enc, err := format.NewEncoder(toFmt, cmd.OutOrStdout(), format.EncodeOptions{Compact: f.compact, Raw: f.raw})
	if err != nil {
		return err
	}

	mode := stream.PerRecord
	switch {
	case f.nullInput:
		mode = stream.NullInput
	case f.slurp:
		mode = stream.Slurp
	}

	lastWasEmpty := true
	lastFalsy := true

	disp := stream.NewDispatcher(dec, mode)
	runErr := disp.Run(root, func(input value.Value) error {
		return runOnce(root, ast, input, func(v value.Value) error {
			lastWasEmpty = false
			lastFalsy = !v.Truthy()
			return enc.Encode(v)
		})
	})

	if runErr != nil {
		if f.exitStatus {
			printRuntimeError(runErr)
			os.Exit(2)
		}
		return runErr
	}

	if f.exitStatus {
		switch {
		case lastWasEmpty:
			os.Exit(2)
		case lastFalsy:
			os.Exit(1)
		}
	}
	return nil
}

func runOnce(root *env.Env, ast parser.Node, input value.Value, emit func(value.Value) error) error {
	interp := eval.Interpreter{}
	err := interp.Eval(ast, input, root, emit)
	if err == nil {
		return nil
	}
	// A *diag.Diagnostic is a query-evaluation error (type error, user
	// error, ...): print it and keep processing the rest of the stream,
	// matching jq's per-record error handling. Anything else (an output
	// write failure) is fatal and stops the run.
	if _, ok := err.(*diag.Diagnostic); ok {
		printRuntimeError(err)
		return nil
	}
	return err
}

func printRuntimeError(err error) {
	redColor.Fprintf(os.Stderr, "dq: error: %s\n", err)
}

func openInput(files []string) (io.ReadCloser, error) {
	if len(files) == 0 {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(files[0])
}

// resolveQuery splits positional args into the query text and the
// remaining file operands, honoring --from-file when set.
func resolveQuery(f *flags, args []string) (query string, files []string, err error) {
	if f.fromFile != "" {
		b, rerr := os.ReadFile(f.fromFile)
		if rerr != nil {
			return "", nil, rerr
		}
		return string(b), args, nil
	}
	if len(args) == 0 {
		return ".", nil, nil
	}
	return args[0], args[1:], nil
}

func bindCLIVars(root *env.Env, f *flags) error {
	for name, v := range f.args {
		root.BindVar(name, value.String(v))
	}
	for name, raw := range f.argjson {
		v, err := parseJSONArg(raw)
		if err != nil {
			return fmt.Errorf("--argjson %s: %w", name, err)
		}
		root.BindVar(name, v)
	}
	return nil
}

// parseJSONArg decodes one --argjson value via the same order-preserving
// JSON decoder format/ uses for record input.
func parseJSONArg(raw string) (value.Value, error) {
	dec := format.NewJSONDecoder(strings.NewReader(raw))
	return dec.Decode()
}

func runInteractive(root *env.Env) error {
	r := repl.New(root)
	r.Start(os.Stdin, os.Stdout)
	return nil
}
