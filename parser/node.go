/*
File    : dq/parser/node.go
Author  : dq contributors

One Go struct per AST construct, each carrying its own source Position
for error reporting. The query language has no separate statement
form: every construct is an expression in a single expression tree.
*/

// Package parser implements the query language's lexer-driven recursive
// descent parser with Pratt operator precedence, producing the
// expression tree consumed by the eval package.
package parser

import "github.com/dq-lang/dq/value"

// Position marks a node's source location for SyntaxError and runtime
// error messages.
type Position struct {
	Line int
	Col  int
}

// Node is implemented by every AST construct.
type Node interface {
	Pos() Position
}

type base struct{ P Position }

func (b base) Pos() Position { return b.P }

// IdentityNode is `.`.
type IdentityNode struct{ base }

// RecurseNode is `..`.
type RecurseNode struct{ base }

// LiteralNode is a Null/Bool/Number literal.
type LiteralNode struct {
	base
	Value value.Value
}

// StringPart is one piece of a (possibly interpolated) string literal.
type StringPart struct {
	Literal string
	Expr    Node // non-nil for an interpolated \( ... ) segment
}

// StringNode is a double-quoted string, with zero or more interpolated
// sub-expressions.
type StringNode struct {
	base
	Parts []StringPart
}

// FieldNode is `.name` or `.name?`, applied to Target (Identity if the
// field access was the start of the pipeline).
type FieldNode struct {
	base
	Target   Node
	Name     string
	Optional bool
}

// IndexNode is `.[E]` or `.[E]?`.
type IndexNode struct {
	base
	Target   Node
	Index    Node
	Optional bool
}

// SliceNode is `.[a:b]`; Start and/or End may be nil for an omitted
// bound.
type SliceNode struct {
	base
	Target   Node
	Start    Node
	End      Node
	Optional bool
}

// IterateNode is `.[]`.
type IterateNode struct {
	base
	Target   Node
	Optional bool
}

// ArrayNode is `[E]`; Body is nil for the empty array literal `[]`.
type ArrayNode struct {
	base
	Body Node
}

// ObjectEntry is one `key: value` pair of an object construction.
// KeyExpr is set for a parenthesized computed key `(E): F`; KeyName is
// set for a literal/identifier/string key. For the `{k}` and `{$v}`
// shorthands the parser fills Value with `.k` or `$v` respectively, so
// Value is never nil.
type ObjectEntry struct {
	KeyExpr Node
	KeyName string
	Value   Node
}

// ObjectNode is `{entry, entry, ...}`.
type ObjectNode struct {
	base
	Entries []ObjectEntry
}

// BinaryNode covers every binary operator: arithmetic, comparison,
// logical, pipe `|`, comma `,`, and alternative `//`. Op holds the
// operator's token literal ("+", "|", "and", ...).
type BinaryNode struct {
	base
	Op    string
	Left  Node
	Right Node
}

// UnaryMinusNode is prefix `-E`.
type UnaryMinusNode struct {
	base
	Operand Node
}

// FuncCallNode is a named function call/builtin invocation, including
// zero-argument calls like `length` and `empty`.
type FuncCallNode struct {
	base
	Name string
	Args []Node
}

// VarNode is a `$name` reference.
type VarNode struct {
	base
	Name string
}

// FormatNode is `@name` or `@name "literal \(x)"`.
type FormatNode struct {
	base
	Name string
	Str  *StringNode // nil for a bare @name filter
}

// PatternKind distinguishes the three destructuring shapes `as` accepts.
type PatternKind int

const (
	PatternVar PatternKind = iota
	PatternArray
	PatternObject
)

// ObjectPatternEntry is one entry of an object destructuring pattern.
type ObjectPatternEntry struct {
	KeyExpr Node // non-nil for a computed key `(E): pattern`
	KeyName string
	Value   Pattern
}

// Pattern is a destructuring pattern for `as`: a bare variable, an array
// pattern, or an object pattern.
type Pattern struct {
	Kind    PatternKind
	Var     string
	Array   []Pattern
	Object  []ObjectPatternEntry
}

// BindingNode is `E as PATTERN ?// PATTERN ... | BODY`; Patterns holds
// one or more alternative patterns tried in order (jq's `?//`).
type BindingNode struct {
	base
	Source   Node
	Patterns []Pattern
	Body     Node
}

// ElifClause is one `elif COND then THEN` arm.
type ElifClause struct {
	Cond Node
	Then Node
}

// IfNode is `if COND then THEN (elif ... )* (else ELSE)? end`.
type IfNode struct {
	base
	Cond  Node
	Then  Node
	Elifs []ElifClause
	Else  Node // nil if no else clause; identity semantics then apply
}

// ReduceNode is `reduce SOURCE as PATTERN (INIT; STEP)`.
type ReduceNode struct {
	base
	Source  Node
	Pattern Pattern
	Init    Node
	Step    Node
}

// ForeachNode is `foreach SOURCE as PATTERN (INIT; STEP; EXTRACT)`;
// Extract is nil when the optional third clause is omitted.
type ForeachNode struct {
	base
	Source  Node
	Pattern Pattern
	Init    Node
	Step    Node
	Extract Node
}

// TryNode is `try BODY (catch CATCH)?`; Catch is nil when absent.
type TryNode struct {
	base
	Body  Node
	Catch Node
}

// LabelNode is `label $name | BODY`.
type LabelNode struct {
	base
	Name string
	Body Node
}

// BreakNode is `break $name`.
type BreakNode struct {
	base
	Name string
}

// FuncDefNode is `def name(params): BODY; REST` — Rest is the expression
// the definition is visible in (everything following the terminating
// `;`), matching its "def may appear anywhere an expression
// may" rule.
type FuncDefNode struct {
	base
	Name   string
	Params []string
	Body   Node
	Rest   Node
}

// AssignNode is one of `=`, `|=`, `+=`, `-=`, `*=`, `/=`, `%=`, `//=`.
// Target must be path-producing, checked at eval time against the set
// of valid path-LHS shapes.
type AssignNode struct {
	base
	Op     string
	Target Node
	Value  Node
}
