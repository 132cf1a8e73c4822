/*
File    : dq/repl/repl.go
Author  : dq contributors

Package repl implements an interactive query console: readline for
line editing and history, fatih/color for banner/error coloring, a
panic-recovering per-line executor. Each line is evaluated on its own
against null input, printing every result, since dq has no persistent
program state between queries — only the variable bindings the root
Env already carries ($ENV, --arg/--argjson).
*/
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/dq-lang/dq/env"
	"github.com/dq-lang/dq/eval"
	"github.com/dq-lang/dq/format"
	"github.com/dq-lang/dq/parser"
	"github.com/dq-lang/dq/value"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

const (
	banner = `     _
  __| |__ _
 / _` + "`" + ` / _` + "`" + ` |
 \__,_\__, |
       |___/  query console`
	line   = "----------------------------------------------------------------"
	prompt = "dq> "
)

// Repl is an interactive query console bound to a root Env (so $ENV and
// any --arg/--argjson bindings from the CLI invocation are visible to
// every line typed).
type Repl struct {
	root *env.Env
}

// New creates a Repl bound to root.
//
// Parameters:
//   - root: the environment every typed line evaluates against; it
//     carries $ENV and any --arg/--argjson bindings from the invoking
//     command, and is shared, unmodified, across every line of the
//     session.
//
// Returns:
//   - *Repl: ready to run via Start.
func New(root *env.Env) *Repl { return &Repl{root: root} }

func (r *Repl) printBanner(w io.Writer) {
	blueColor.Fprintf(w, "%s\n", line)
	greenColor.Fprintf(w, "%s\n", banner)
	blueColor.Fprintf(w, "%s\n", line)
	cyanColor.Fprintf(w, "%s\n", "Type a query and press enter; it runs against null input.")
	cyanColor.Fprintf(w, "%s\n", "Type '.exit' to quit.")
	blueColor.Fprintf(w, "%s\n", line)
}

// Start runs the read-eval-print loop: print the banner, then read one
// line at a time and evaluate each against null input until the user
// exits.
//
// Parameters:
//   - in: unused directly (readline owns stdin internally); kept so
//     Start's signature doesn't depend on readline's global terminal
//     assumption and can be swapped out for tests.
//   - out: destination for the banner, prompts, results, and errors.
//
// The loop ends when the user types ".exit" or EOF (Ctrl+D) is read
// from the terminal; either way a farewell line is written to out
// before returning.
func (r *Repl) Start(in io.Reader, out io.Writer) {
	r.printBanner(out)

	rl, err := readline.New(prompt)
	if err != nil {
		redColor.Fprintf(out, "dq: readline: %s\n", err)
		return
	}
	defer rl.Close()

	for {
		lineText, err := rl.Readline()
		if err != nil {
			out.Write([]byte("Good Bye!\n"))
			return
		}
		lineText = strings.TrimSpace(lineText)
		if lineText == "" {
			continue
		}
		if lineText == ".exit" {
			out.Write([]byte("Good Bye!\n"))
			return
		}
		rl.SaveHistory(lineText)
		r.executeWithRecovery(out, lineText)
	}
}

// executeWithRecovery parses and evaluates one line against null
// input, recovering from any evaluator panic so a single bad query
// can't end the session.
//
// Error handling:
//   - Panics: caught and printed as a runtime error, session continues.
//   - Parse errors: printed in red, session continues.
//   - Evaluation errors: printed in red, session continues.
//   - Success: each produced value is JSON-encoded to out.
func (r *Repl) executeWithRecovery(out io.Writer, line string) {
	defer func() {
		if rec := recover(); rec != nil {
			redColor.Fprintf(out, "[runtime error] %v\n", rec)
		}
	}()

	ast, err := parser.Parse(line)
	if err != nil {
		redColor.Fprintf(out, "%s\n", err)
		return
	}

	enc := format.NewJSONEncoder(out, format.EncodeOptions{})
	interp := eval.Interpreter{}
	evalErr := interp.Eval(ast, value.Null, r.root, func(v value.Value) error {
		return enc.Encode(v)
	})
	if evalErr != nil {
		redColor.Fprintf(out, "dq: error: %s\n", evalErr)
	}
}
