package tsql

import "fmt"

const (
	DirAsc  Dir = 0
	DirDesc Dir = 1
)

// Short for "direction". Enum for ordering direction: "ASC" or "DESC". The
// zero value is ascending.
type Dir byte

// Appends the SQL keyword, delimited from the preceding text with a space if
// necessary.
func (self Dir) Append(text []byte) []byte {
	return appendMaybeSpaced(text, self.String())
}

// Implement `fmt.Stringer`. Renders the SQL keyword.
func (self Dir) String() string {
	switch self {
	case DirDesc:
		return `DESC`
	default:
		return `ASC`
	}
}

// Parses from a string, which must be "asc" or "desc", in lowercase or
// uppercase. An empty string is ascending.
func (self *Dir) Parse(src string) error {
	switch src {
	case ``, `asc`, `ASC`:
		*self = DirAsc
		return nil
	case `desc`, `DESC`:
		*self = DirDesc
		return nil
	default:
		return ErrInvalidInput.WithWhile(`parsing order direction`).WithCause(
			fmt.Errorf(`unrecognized direction %q`, src),
		)
	}
}

// Implement `encoding.TextMarshaler`.
func (self Dir) MarshalText() ([]byte, error) {
	return stringToBytesUnsafe(self.String()), nil
}

// Implement `encoding.TextUnmarshaler`.
func (self *Dir) UnmarshalText(src []byte) error {
	return self.Parse(bytesToMutableString(src))
}

// Implement `fmt.GoStringer` for debug purposes. Returns valid Go code
// representing this value.
func (self Dir) GoString() string {
	switch self {
	case DirDesc:
		return `tsql.DirDesc`
	default:
		return `tsql.DirAsc`
	}
}
