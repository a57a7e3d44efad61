package tsql

import "testing"

func Test_Stmt_Params(t *testing.T) {
	test := func(exp int, text string) {
		t.Helper()
		eq(t, exp, Stmt{Text: text}.Params())
	}

	test(0, ``)
	test(0, `SELECT "id" FROM "person" WHERE TRUE`)
	test(1, `"id" = ?`)
	test(2, `"id" = ? AND "name" = ?`)
	test(2, `INSERT INTO "t"("a", "b") VALUES (?, ?)`)
	test(4, `INSERT INTO "t"("a", "b") VALUES (?, ?), (?, ?)`)
	test(1, `"id" = $1`)
	test(3, `"id" = $1 AND ("name" = $2 OR "name" = $3)`)
	test(2, `"id" = $2 OR "id" = $1 OR "id" = $2`)
	test(0, `'?' = '$1'`)
	test(1, `"?" = ?`)
	test(0, `-- ?`)
	test(0, `/* $1 ? */`)
}

func Test_Stmt_Validate(t *testing.T) {
	noErr(t, stmt(`"id" = ?`, Integer(1)).Validate())
	noErr(t, stmt(`"id" = $1 AND "name" = $2`, Integer(1), Text(`one`)).Validate())

	errIs(t, ErrParamMismatch, stmt(`"id" = ?`).Validate())
	errIs(t, ErrParamMismatch, stmt(`"id" = $1`, Integer(1), Integer(2)).Validate())
}

func Test_Stmt_check(t *testing.T) {
	panics(t, `ParamMismatch`, func() {
		stmt(`"id" = ? AND "name" = ?`, Integer(1)).check()
	})

	prev := CheckParams
	CheckParams = false
	defer func() { CheckParams = prev }()

	eqStmt(t, stmt(`?`), stmt(`?`).check())
}

func Test_Ordinal(t *testing.T) {
	var params Ordinal
	var text []byte
	text = params.AppendNext(text)
	text = append(text, ' ')
	text = params.AppendNext(text)
	text = append(text, ' ')
	text = params.AppendNext(text)

	eq(t, `$1 $2 $3`, string(text))
	eq(t, 3, params.Count())
}

func Test_Positional(t *testing.T) {
	var params Positional
	eq(t, `??`, string(params.AppendNext(params.AppendNext(nil))))
}

func Test_Bui(t *testing.T) {
	bui := MakeBui(Positional{}, 0, 0)
	bui.Str(`SELECT`)
	bui.Idents(`one`, `two`)
	bui.Str(`FROM`)
	bui.Ident(`three`)
	bui.Str(`WHERE`)
	bui.Str(`(`)
	bui.Ident(`one`)
	bui.Str(`=`)
	bui.Arg(Integer(1))
	bui.Str(`)`)

	eqStmt(t, stmt(`SELECT "one", "two" FROM "three" WHERE ("one" = ?)`, Integer(1)), bui.Reify())
}

func Test_Bui_Arg_without_params(t *testing.T) {
	panics(t, `missing placeholder context`, func() {
		var bui Bui
		bui.Arg(Integer(1))
	})
}
