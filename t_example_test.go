package tsql_test

import (
	"context"
	"fmt"

	"github.com/bluepython508/tsql"
)

type Person struct {
	Id   int64  `db:"id"`
	Name string `db:"name"`
	Age  *int64 `db:"age"`
}

func (Person) TableName() string { return `person` }

var (
	PersonId   = tsql.Col[Person](`id`, tsql.Int64)
	PersonName = tsql.Col[Person](`name`, tsql.String).Unique()
	PersonAge  = tsql.Col[Person](`age`, tsql.Nullable(tsql.Int64))
)

func (Person) Columns() []tsql.DynCol[Person] {
	return []tsql.DynCol[Person]{PersonId, PersonName, PersonAge}
}

// Prints every statement instead of running it.
type printDb struct{ params func() tsql.Params }

func (self printDb) Params() tsql.Params { return self.params() }

func (self printDb) Exec(_ context.Context, stmt tsql.Stmt) error {
	fmt.Println(stmt.Text)
	fmt.Println(stmt.Args)
	return nil
}

func (self printDb) Query(ctx context.Context, stmt tsql.Stmt, _ func(tsql.Supplier) error) error {
	return self.Exec(ctx, stmt)
}

var (
	ordinal    = printDb{func() tsql.Params { return new(tsql.Ordinal) }}
	positional = printDb{func() tsql.Params { return tsql.Positional{} }}
)

func ExampleSelect() {
	stmt := tsql.Cols2(PersonId, PersonName).
		Select(ordinal).
		Where(PersonId.Equals(23).Or(tsql.IsNull(PersonAge))).
		OrderBy(PersonName, tsql.DirAsc).
		Limit(10).
		Build()

	fmt.Println(stmt.Text)
	fmt.Println(stmt.Args)
	// Output:
	// SELECT "id", "name" FROM "person" WHERE "id" = $1 OR "age" IS NULL ORDER BY "name" ASC LIMIT 10
	// [23]
}

func ExampleInsertInto() {
	_ = tsql.Cols2(PersonId, PersonName).
		InsertInto(positional).
		Values(tsql.Row2[int64, string]{1, `one`}, tsql.Row2[int64, string]{2, `two`}).
		Exec(context.Background())
	// Output:
	// INSERT INTO "person"("id", "name") VALUES (?, ?), (?, ?)
	// [1 one 2 two]
}

func ExampleUpdate() {
	_ = tsql.Update[Person](ordinal).
		Set(PersonName.Assign(`renamed`), PersonAge.Assign(nil)).
		Where(PersonId.Equals(1)).
		Exec(context.Background())
	// Output:
	// UPDATE "person" SET "name" = $1, "age" = $2 WHERE "id" = $3
	// [renamed NULL 1]
}

func ExampleDeleteWhere() {
	_ = tsql.DeleteWhere(ordinal, tsql.All(PersonId.Equals(1), tsql.IsNotNull(PersonAge))).
		Exec(context.Background())
	// Output:
	// DELETE FROM "person" WHERE "id" = $1 AND "age" IS NOT NULL
	// [1]
}

func ExampleCreateTable() {
	_ = tsql.CreateTable[Person](ordinal).
		IfNotExists().
		Exec(context.Background())
	// Output:
	// CREATE TABLE IF NOT EXISTS "person"("id" INT8 NOT NULL, "name" TEXT NOT NULL UNIQUE, "age" INT8)
	// []
}

func ExampleStructRecord() {
	record := tsql.MustStructRecord[Person, Person](PersonId, PersonName, PersonAge)
	fmt.Println(tsql.ColumnNames[Person, Person](record))
	fmt.Printf("%#v\n", record.ToValues(Person{Id: 1, Name: `one`}))
	// Output:
	// [id name age]
	// []tsql.Value{tsql.Integer(1), tsql.Text("one"), tsql.Null()}
}
