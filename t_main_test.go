package tsql

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	r "reflect"
	"runtime"
	"strings"
	"testing"
)

type Person struct {
	Id    int64   `db:"id"`
	Name  string  `db:"name"`
	Score float64 `db:"score"`
	Age   *int64  `db:"age"`
}

func (Person) TableName() string { return `person` }

type Pet struct {
	Id    int64      `db:"id"`
	Owner int64      `db:"owner"`
	Addr  netip.Addr `db:"addr"`
}

func (Pet) TableName() string { return `pet` }

var (
	PersonId    = Col[Person](`id`, Int64)
	PersonName  = Col[Person](`name`, String).Unique()
	PersonScore = Col[Person](`score`, Float64)
	PersonAge   = Col[Person](`age`, Nullable(Int64))

	PetId    = Col[Pet](`id`, Int64)
	PetOwner = Col[Pet](`owner`, Int64).References(PersonId, ActionDefault, ActionCascade)
	PetAddr  = ColAs[Pet](`addr`, String, Stringify(netip.ParseAddr))
)

func (Person) Columns() []DynCol[Person] {
	return []DynCol[Person]{PersonId, PersonName, PersonScore, PersonAge}
}

func (Pet) Columns() []DynCol[Pet] { return []DynCol[Pet]{PetId, PetOwner, PetAddr} }

/*
Records every dispatched statement. Queries answer with `rows`, each row
supplied through the same positional supplier as the real backends.
*/
type fakeDb struct {
	params func() Params
	stmts  []Stmt
	rows   [][]Value
	err    error
}

func positionalDb() *fakeDb { return &fakeDb{params: func() Params { return Positional{} }} }

func ordinalDb() *fakeDb { return &fakeDb{params: func() Params { return new(Ordinal) }} }

func (self *fakeDb) Params() Params { return self.params() }

func (self *fakeDb) Exec(_ context.Context, stmt Stmt) error {
	self.stmts = append(self.stmts, stmt)
	return self.err
}

func (self *fakeDb) Query(_ context.Context, stmt Stmt, fun func(Supplier) error) error {
	self.stmts = append(self.stmts, stmt)
	if self.err != nil {
		return self.err
	}
	for _, row := range self.rows {
		err := fun(supplierOf(row...))
		if err != nil {
			return err
		}
	}
	return nil
}

func (self *fakeDb) last() Stmt {
	if len(self.stmts) == 0 {
		return Stmt{}
	}
	return self.stmts[len(self.stmts)-1]
}

func supplierOf(vals ...Value) Supplier {
	var ind int
	return func(typ Type) Value {
		val := vals[ind].Coerce(typ)
		ind++
		return val
	}
}

// Short for "statement".
func stmt(text string, args ...Value) Stmt { return Stmt{text, args} }

func eq(t testing.TB, exp, act any) {
	t.Helper()
	if !r.DeepEqual(exp, act) {
		t.Fatalf(`
expected (detailed):
	%#[1]v
actual (detailed):
	%#[2]v
expected (simple):
	%[1]v
actual (simple):
	%[2]v
`, exp, act)
	}
}

// Compares statements, ignoring the difference between nil and empty args.
func eqStmt(t testing.TB, exp, act Stmt) {
	t.Helper()
	if len(exp.Args) == 0 && len(act.Args) == 0 {
		exp.Args, act.Args = nil, nil
	}
	eq(t, exp, act)
}

func noErr(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf(`unexpected error: %+v`, err)
	}
}

func errIs(t testing.TB, exp, act error) {
	t.Helper()
	if act == nil {
		t.Fatalf(`expected error %v, found nil`, exp)
	}
	if !errors.Is(act, exp) {
		t.Fatalf(`expected error %v, found %v`, exp, act)
	}
}

func panics(t testing.TB, msg string, fun func()) {
	t.Helper()
	val := catchAny(fun)

	if val == nil {
		t.Fatalf(`expected %v to panic, found no panic`, funcName(fun))
	}

	str := fmt.Sprint(val)
	if !strings.Contains(str, msg) {
		t.Fatalf(
			`expected %v to panic with a message containing %q, found %q`,
			funcName(fun), msg, str,
		)
	}
}

func funcName(val any) string {
	return runtime.FuncForPC(r.ValueOf(val).Pointer()).Name()
}

func catchAny(fun func()) (val any) {
	defer recAny(&val)
	fun()
	return
}

func recAny(ptr *any) { *ptr = recover() }

func ptr[A any](val A) *A { return &val }
