package tsql

const (
	condTrue condKind = iota
	condFalse
	condEquals
	condIsNull
	condIsNotNull
	condAll
	condAny
)

type condKind byte

/*
Boolean predicate over the columns of table `T`. An immutable tree: every
constructor and combinator returns a new value and never modifies its inputs.
The zero value is `TRUE`.

Values of column equality conditions are encoded when the condition is built,
not when it's rendered.
*/
type Cond[T Table] struct {
	kind condKind
	col  DynCol[T]
	val  Value
	subs []Cond[T]
}

// Condition that always holds. Renders as `TRUE`.
func True[T Table]() Cond[T] { return Cond[T]{kind: condTrue} }

// Condition that never holds. Renders as `FALSE`.
func False[T Table]() Cond[T] { return Cond[T]{kind: condFalse} }

// Builds `"col" IS NULL`. Only columns with pointer storage are accepted.
func IsNull[T Table, S, A any](col Column[T, *S, A]) Cond[T] {
	return Cond[T]{kind: condIsNull, col: col}
}

// Builds `"col" IS NOT NULL`. Only columns with pointer storage are accepted.
func IsNotNull[T Table, S, A any](col Column[T, *S, A]) Cond[T] {
	return Cond[T]{kind: condIsNotNull, col: col}
}

/*
Conjunction of the given conditions, rendered with "AND" in the given order.
An empty conjunction renders as `TRUE`.
*/
func All[T Table](vals ...Cond[T]) Cond[T] {
	return Cond[T]{kind: condAll, subs: copyConds(vals)}
}

/*
Disjunction of the given conditions, rendered with "OR" in the given order.
An empty disjunction renders as `FALSE`.
*/
func Any[T Table](vals ...Cond[T]) Cond[T] {
	return Cond[T]{kind: condAny, subs: copyConds(vals)}
}

// Shortcut for `All(self, other)`.
func (self Cond[T]) And(other Cond[T]) Cond[T] { return All(self, other) }

// Shortcut for `Any(self, other)`.
func (self Cond[T]) Or(other Cond[T]) Cond[T] { return Any(self, other) }

/*
Renders the condition into the builder. Equality conditions append exactly one
arg and one placeholder each, in left-to-right order of the tree.
*/
func (self Cond[T]) Append(bui *Bui) {
	switch self.kind {
	case condTrue:
		bui.Str(`TRUE`)

	case condFalse:
		bui.Str(`FALSE`)

	case condEquals:
		bui.Ident(self.col.Name())
		bui.Str(`=`)
		bui.Arg(self.val)

	case condIsNull:
		bui.Ident(self.col.Name())
		bui.Str(`IS NULL`)

	case condIsNotNull:
		bui.Ident(self.col.Name())
		bui.Str(`IS NOT NULL`)

	case condAll:
		self.appendJoined(bui, `AND`, `TRUE`)

	case condAny:
		self.appendJoined(bui, `OR`, `FALSE`)

	default:
		panic(ErrInternal.WithWhile(`rendering condition`).WithCause(errUnknownCond))
	}
}

func (self Cond[T]) appendJoined(bui *Bui, sep, empty string) {
	if len(self.subs) == 0 {
		bui.Str(empty)
		return
	}

	for ind, sub := range self.subs {
		if ind > 0 {
			bui.Str(sep)
		}
		if sub.isCompound() {
			bui.Str(`(`)
			sub.Append(bui)
			bui.Str(`)`)
		} else {
			sub.Append(bui)
		}
	}
}

// Single-element and empty compounds render without operators and don't need
// parens.
func (self Cond[T]) isCompound() bool {
	return (self.kind == condAll || self.kind == condAny) && len(self.subs) > 1
}

/*
Renders the condition into standalone text and args, using the given
placeholder context.
*/
func (self Cond[T]) Reify(params Params) Stmt {
	bui := MakeBui(params, 64, 4)
	self.Append(&bui)
	return bui.Reify()
}

func copyConds[T Table](src []Cond[T]) []Cond[T] {
	if len(src) == 0 {
		return nil
	}
	return append([]Cond[T](nil), src...)
}
