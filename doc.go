/*
Typed SQL: a statically typed builder for SQL statements over application
types. Tables are Go types, columns are typed values, and every statement is
lowered to SQL text with placeholders plus an ordered list of arguments.

Key Features

• Columns carry both the storage type and the application type. Conversions
between the two are declared once, next to the column.

• Conditions, assignments, projections and foreign keys are checked by the
compiler: a column of one table can't be used in a statement about another, and
a value of the wrong type can't be compared or assigned.

• Supports "?" and "$N" placeholders. The number of placeholders always
matches the number of arguments.

• Builders are immutable: every method returns a modified copy.

• Results decode into `Row2`, `Row3`, single values, or application structs via
`Record` and `StructRecord`.

• Backends for SQLite and PostgreSQL live in the sibling packages "sqlite" and
"postgres". Any other backend only needs to implement `Db`.

Examples

See `Select`, `InsertInto`, `Update`, `DeleteWhere` and `CreateTable` for
examples.
*/
package tsql
