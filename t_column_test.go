package tsql

import (
	"errors"
	"net/netip"
	"strconv"
	"testing"
)

func Test_TableName(t *testing.T) {
	eq(t, `person`, TableName[Person]())
	eq(t, `pet`, TableName[Pet]())
	eq(t, `person`, PersonId.TableName())
}

func Test_Column_metadata(t *testing.T) {
	eq(t, `id`, PersonId.Name())
	eq(t, TypeInteger, PersonId.Type())
	eq(t, false, PersonId.IsUnique())
	eq(t, ``, PersonId.ForeignKeyClause())

	eq(t, true, PersonName.IsUnique())
	eq(t, TypeNullable(TypeInteger), PersonAge.Type())
	eq(t, TypeText, PetAddr.Type())

	fk, ok := PetOwner.ForeignKey()
	eq(t, true, ok)
	eq(t, ForeignKey{Table: `person`, Column: `id`, OnUpdate: ActionDefault, OnDelete: ActionCascade}, fk)
	eq(t, `REFERENCES "person"("id") ON UPDATE NO ACTION ON DELETE CASCADE`, PetOwner.ForeignKeyClause())

	_, ok = PetId.ForeignKey()
	eq(t, false, ok)
}

func Test_Column_immutable(t *testing.T) {
	base := Col[Person](`name`, String)
	unique := base.Unique()

	eq(t, false, base.IsUnique())
	eq(t, true, unique.IsUnique())

	ref := base.References(PersonName, ActionRestrict, ActionSetNull)
	eq(t, ``, base.ForeignKeyClause())
	eq(t, `REFERENCES "person"("name") ON UPDATE RESTRICT ON DELETE SET NULL`, ref.ForeignKeyClause())
}

func Test_Column_ToDb_FromDb(t *testing.T) {
	eq(t, Integer(23), PersonId.ToDb(23))
	eq(t, int64(23), try1(PersonId.FromDb(Integer(23))))

	eq(t, Null(), PersonAge.ToDb(nil))
	eq(t, Integer(40), PersonAge.ToDb(ptr[int64](40)))
	eq(t, (*int64)(nil), try1(PersonAge.FromDb(Null())))
	eq(t, ptr[int64](40), try1(PersonAge.FromDb(Integer(40))))

	addr := netip.MustParseAddr(`127.0.0.1`)
	eq(t, Text(`127.0.0.1`), PetAddr.ToDb(addr))
	eq(t, addr, try1(PetAddr.FromDb(Text(`127.0.0.1`))))
}

func Test_Column_FromDb_errors(t *testing.T) {
	t.Run(`type mismatch`, func(t *testing.T) {
		_, err := PersonId.FromDb(Text(`23`))
		errIs(t, ErrTypeMismatch, err)
		eq(t, `[tsql] TypeMismatch while decoding column "id": expected integer, found tsql.Text("23")`, err.Error())
	})

	t.Run(`conversion failure`, func(t *testing.T) {
		_, err := PetAddr.FromDb(Text(`not an address`))
		errIs(t, ErrConversionFailure, err)
		eq(t, true, errors.Unwrap(err) != nil)
	})

	t.Run(`conversion failure keeps cause`, func(t *testing.T) {
		col := ColAs[Person](`num`, String, Conv[string, int]{
			To:   strconv.Itoa,
			From: strconv.Atoi,
		})

		_, err := col.FromDb(Text(`one`))
		errIs(t, ErrConversionFailure, err)

		var numErr *strconv.NumError
		eq(t, true, errors.As(err, &numErr))
	})
}

func Test_ColAs_invalid(t *testing.T) {
	panics(t, `requires a storage codec`, func() {
		ColAs[Person](`num`, String, Conv[string, int]{To: strconv.Itoa})
	})
	panics(t, `requires a storage codec`, func() {
		ColAs[Person](`num`, nil, Identity[string]())
	})
}

func Test_Stringify(t *testing.T) {
	conv := Stringify(netip.ParseAddr)
	addr := netip.MustParseAddr(`::1`)

	eq(t, `::1`, conv.To(addr))
	eq(t, addr, try1(conv.From(`::1`)))

	_, err := conv.From(`?`)
	eq(t, true, err != nil)
}

func Test_Action(t *testing.T) {
	eq(t, `NO ACTION`, ActionDefault.String())
	eq(t, `NO ACTION`, ActionNoAction.String())
	eq(t, `CASCADE`, ActionCascade.String())
	eq(t, `RESTRICT`, ActionRestrict.String())
	eq(t, `SET NULL`, ActionSetNull.String())
	eq(t, `SET DEFAULT`, ActionSetDefault.String())
}

func Test_ParseAction(t *testing.T) {
	test := func(exp Action, src string) {
		t.Helper()
		act, err := ParseAction(src)
		noErr(t, err)
		eq(t, exp, act)
	}

	test(ActionDefault, ``)
	test(ActionCascade, `cascade`)
	test(ActionRestrict, `restrict`)
	test(ActionSetNull, `set null`)
	test(ActionSetDefault, `set default`)
	test(ActionNoAction, `no action`)
	test(ActionSetNull, `SET NULL`)

	_, err := ParseAction(`drop`)
	errIs(t, ErrInvalidInput, err)

	var action Action
	noErr(t, action.UnmarshalText([]byte(`cascade`)))
	eq(t, ActionCascade, action)
}

func Test_Column_Equals(t *testing.T) {
	cond := PersonId.Equals(23)
	eqStmt(t, stmt(`"id" = ?`, Integer(23)), cond.Reify(Positional{}))
	eqStmt(t, stmt(`"id" = $1`, Integer(23)), cond.Reify(new(Ordinal)))
}

func Test_Column_Assign(t *testing.T) {
	set := PersonName.Assign(`x`)
	eq(t, `name`, set.Col.Name())
	eq(t, Text(`x`), set.Val)
}

func Test_Column_any(t *testing.T) {
	val, err := PersonId.encodeAny(int64(3))
	noErr(t, err)
	eq(t, Integer(3), val)

	_, err = PersonId.encodeAny(`3`)
	errIs(t, ErrInvalidInput, err)

	out, err := PersonAge.decodeAny(Null())
	noErr(t, err)
	eq(t, (*int64)(nil), out)
}
