package tsql

import (
	"fmt"
	"strings"

	"github.com/mitranim/sqlp"
)

/*
Enables placeholder validation of every statement lowered by the builders in
this package. When true, a statement whose placeholder count differs from its
arg count causes a panic, since that can only result from a bug in lowering.
Can be disabled by apps that render very large statements in hot paths.
*/
var CheckParams = true

/*
Lowered statement: SQL text and the ordered args for its placeholders. The
output of every builder, and the input of `Db`.
*/
type Stmt struct {
	Text string
	Args []Value
}

/*
Counts the parameters referenced by the text. Positional "?" placeholders are
counted individually; ordinal placeholders such as "$1" are counted by their
highest ordinal, since the same ordinal may be referenced more than once.
Placeholders inside quoted strings, quoted identifiers and comments are
ignored. Mixing both styles counts both.
*/
func (self Stmt) Params() int {
	var count paramCount
	count.text(self.Text)
	return count.positional + count.ordinal
}

// Returns an `ErrParamMismatch` if the placeholder count doesn't match the
// arg count.
func (self Stmt) Validate() error {
	params := self.Params()
	if params == len(self.Args) {
		return nil
	}
	return ErrParamMismatch.WithWhile(`validating statement`).WithCause(fmt.Errorf(
		`text %q has %v placeholders, found %v args`, self.Text, params, len(self.Args),
	))
}

func (self Stmt) check() Stmt {
	if CheckParams {
		try(self.Validate())
	}
	return self
}

// Implement `fmt.Stringer` for debug purposes.
func (self Stmt) String() string {
	return fmt.Sprintf(`%v %v`, self.Text, self.Args)
}

type paramCount struct {
	positional int
	ordinal    int
}

func (self *paramCount) text(src string) {
	tokenizer := sqlp.Tokenizer{Source: src}
	var buf []byte

	for {
		node := tokenizer.Next()
		if node == nil {
			break
		}

		switch node := node.(type) {
		case sqlp.NodeOrdinalParam:
			if int(node) > self.ordinal {
				self.ordinal = int(node)
			}

		case sqlp.NodeNamedParam:

		case sqlp.NodeText:
			self.positional += strings.Count(string(node), `?`)

		default:
			buf = buf[:0]
			node.Append(&buf)
			self.nested(string(buf))
		}
	}
}

// Groups such as parens are descended into. Quotes and comments are skipped.
func (self *paramCount) nested(src string) {
	if len(src) < 2 {
		return
	}
	switch src[0] {
	case '(', '[', '{':
		self.text(src[1 : len(src)-1])
	}
}
