/*
File    : dq/diag/diag.go
Author  : dq contributors

Grounded on the earlier error conventions (parser.SyntaxError's
position-tagged message, and the earlier interpreter evaluator's single
Go `error` return per statement), generalized into the query language's
typed diagnostic surface: a message plus a Kind, optionally tagged with
a source Position, with Break modeled as a distinct Go type so
`try/catch` can type-switch it out instead of swallowing it.
*/
package diag

import "fmt"

// Kind classifies a runtime Diagnostic. SyntaxError is included for
// completeness with the surface even though lexer/parser errors
// are reported as *parser.SyntaxError, never wrapped as a Diagnostic,
// since they are fatal before any query runs.
type Kind int

const (
	SyntaxError Kind = iota
	TypeError
	KeyError
	IndexError
	RegexError
	DivideByZero
	AssertionError
	UserError
)

func (k Kind) String() string {
	switch k {
	case SyntaxError:
		return "SyntaxError"
	case TypeError:
		return "TypeError"
	case KeyError:
		return "KeyError"
	case IndexError:
		return "IndexError"
	case RegexError:
		return "RegexError"
	case DivideByZero:
		return "DivideByZero"
	case AssertionError:
		return "AssertionError"
	case UserError:
		return "UserError"
	default:
		return "Error"
	}
}

// Position optionally tags a Diagnostic with the source location of the
// AST node that raised it.
type Position struct {
	Line int
	Col  int
}

// Diagnostic is a catchable query-evaluation error: `try/catch`
// receives its Message as the value piped into the catch branch, per
// jq's own error-as-string convention.
type Diagnostic struct {
	Kind     Kind
	Message  string
	Position *Position
}

func (d *Diagnostic) Error() string {
	if d.Position != nil {
		return fmt.Sprintf("[%d:%d] %s: %s", d.Position.Line, d.Position.Col, d.Kind, d.Message)
	}
	return d.Message
}

// New builds a position-less Diagnostic, the common case for builtins
// and binary operators which don't track their own node.
//
// Parameters:
//   - kind: the Kind a `try/catch` or top-level error printer can
//     branch on.
//   - format, args: fmt.Sprintf-style message; evaluated eagerly, so
//     callers should only reach for New when the Diagnostic is about to
//     be returned, not speculatively.
//
// Returns:
//   - *Diagnostic: ready to return as an error; attach a Position with
//     At if the call site tracks source location.
func New(kind Kind, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// At returns a copy of an existing Diagnostic tagged with a source
// position, which Error then prints as a "[line:col] Kind:" prefix. No
// evaluator or builtin call site attaches a position at present.
func (d *Diagnostic) At(line, col int) *Diagnostic {
	return &Diagnostic{Kind: d.Kind, Message: d.Message, Position: &Position{Line: line, Col: col}}
}

// TypeErr, KeyErr, IndexErr, RegexErr, DivZero, AssertErr, and UserErr
// are convenience constructors used throughout eval/ and builtins/.
func TypeErr(format string, args ...interface{}) *Diagnostic {
	return New(TypeError, format, args...)
}

func KeyErr(format string, args ...interface{}) *Diagnostic {
	return New(KeyError, format, args...)
}

func IndexErr(format string, args ...interface{}) *Diagnostic {
	return New(IndexError, format, args...)
}

func RegexErr(format string, args ...interface{}) *Diagnostic {
	return New(RegexError, format, args...)
}

func DivZero(format string, args ...interface{}) *Diagnostic {
	return New(DivideByZero, format, args...)
}

func AssertErr(format string, args ...interface{}) *Diagnostic {
	return New(AssertionError, format, args...)
}

func UserErr(format string, args ...interface{}) *Diagnostic {
	return New(UserError, format, args...)
}

// Break is the internal, non-catchable signal `label $name | ... break
// $name ...` uses to unwind to its enclosing label. It is never wrapped
// in a Diagnostic; try/catch must type-assert for it explicitly and
// re-propagate it rather than treat it as a catchable error.
type Break struct {
	Label string
}

func (b *Break) Error() string {
	return fmt.Sprintf("break to unknown label $%s", b.Label)
}

// IsBreak reports whether err is a *Break, and if so for which label.
func IsBreak(err error) (*Break, bool) {
	b, ok := err.(*Break)
	return b, ok
}
