package tsql

/*
Per-statement placeholder context. Each call appends the next placeholder to
the given text and advances the context. One context must be threaded through
every parameter site of one statement, which keeps numbering contiguous and in
the same order as the statement's args. Obtained from `Db.Params`.
*/
type Params interface {
	AppendNext([]byte) []byte
}

/*
Numbered placeholders "$1", "$2", ..., "$N", used by Postgres. Stateful, must
be used by pointer. A fresh zero value starts at "$1".
*/
type Ordinal struct{ count int }

// Implement `Params`.
func (self *Ordinal) AppendNext(text []byte) []byte {
	self.count++
	text = append(text, '$')
	return appendInt(text, self.count)
}

// Number of placeholders generated so far.
func (self *Ordinal) Count() int { return self.count }

// Positional placeholders: "?" repeated, used by SQLite and MySQL. Stateless.
type Positional struct{}

// Implement `Params`.
func (Positional) AppendNext(text []byte) []byte { return append(text, '?') }

/*
Prealloc tool. Makes a `Bui` with the specified placeholder context and
capacity of the text and args buffers.
*/
func MakeBui(params Params, textCap, argsCap int) Bui {
	return Bui{
		Text:   make([]byte, 0, textCap),
		Args:   make([]Value, 0, argsCap),
		Params: params,
	}
}

/*
Short for "builder". Accumulates the text and args of one statement. Every
placeholder is generated through `.Params`, so args and placeholders can't get
out of sync as long as args are appended via `(*Bui).Arg`. Used internally by
conditions and query builders.
*/
type Bui struct {
	Text   []byte
	Args   []Value
	Params Params
}

// Returns the accumulated statement.
func (self Bui) Reify() Stmt {
	return Stmt{Text: self.String(), Args: self.Args}
}

// Returns inner text as a string, performing a free cast.
func (self Bui) String() string {
	return bytesToMutableString(self.Text)
}

// Adds a space if the preceding text doesn't already end with a delimiter.
func (self *Bui) Space() {
	if !hasDelimSuffix(self.String()) {
		self.Text = append(self.Text, ' ')
	}
}

// Appends the provided string, delimiting it from the previous text with a
// space if necessary.
func (self *Bui) Str(val string) {
	self.Text = appendMaybeSpaced(self.Text, val)
}

// Appends the provided string as-is, without any delimiting.
func (self *Bui) Raw(val string) {
	self.Text = append(self.Text, val...)
}

// Appends a double-quoted identifier, delimited from the previous text with a
// space if necessary.
func (self *Bui) Ident(name string) {
	self.Space()
	self.Text = appendIdent(self.Text, name)
}

/*
Appends an argument to `.Args` and the next placeholder from `.Params` to
`.Text`. Panics if `.Params` is missing.
*/
func (self *Bui) Arg(val Value) {
	if self.Params == nil {
		panic(ErrInternal.WithWhile(`appending argument`).WithCause(errMissingParams))
	}
	self.Args = append(self.Args, val)
	self.Space()
	self.Text = self.Params.AppendNext(self.Text)
}

/*
Appends the names of the given columns, comma-separated:

	"id", "name"
*/
func (self *Bui) Idents(names ...string) {
	for ind, name := range names {
		if ind > 0 {
			self.Raw(`,`)
		}
		self.Ident(name)
	}
}
