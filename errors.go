package tsql

import (
	"errors"
	"fmt"
)

/*
Error codes. You probably shouldn't use this directly; instead, use the `Err`
variables with `errors.Is`.
*/
type ErrCode string

const (
	ErrCodeUnknown           ErrCode = ""
	ErrCodeTypeMismatch      ErrCode = "TypeMismatch"
	ErrCodeConversionFailure ErrCode = "ConversionFailure"
	ErrCodeBackend           ErrCode = "Backend"
	ErrCodeConfiguration     ErrCode = "Configuration"
	ErrCodeInvalidInput      ErrCode = "InvalidInput"
	ErrCodeParamMismatch     ErrCode = "ParamMismatch"
	ErrCodeInternal          ErrCode = "Internal"
)

/*
Use blank error variables to detect error types:

	if errors.Is(err, tsql.ErrTypeMismatch) {
		// Handle specific error.
	}

Note that errors returned by this package can't be compared via `==` because
they may include additional details about the circumstances. When compared by
`errors.Is`, they compare `.Cause` and fall back on `.Code`.
*/
var (
	ErrTypeMismatch      Err = Err{Code: ErrCodeTypeMismatch, Cause: errors.New(`type mismatch`)}
	ErrConversionFailure Err = Err{Code: ErrCodeConversionFailure, Cause: errors.New(`conversion failure`)}
	ErrBackend           Err = Err{Code: ErrCodeBackend, Cause: errors.New(`backend error`)}
	ErrConfiguration     Err = Err{Code: ErrCodeConfiguration, Cause: errors.New(`invalid configuration`)}
	ErrInvalidInput      Err = Err{Code: ErrCodeInvalidInput, Cause: errors.New(`invalid input`)}
	ErrParamMismatch     Err = Err{Code: ErrCodeParamMismatch, Cause: errors.New(`placeholder count mismatch`)}
	ErrInternal          Err = Err{Code: ErrCodeInternal, Cause: errors.New(`internal error`)}
)

// Type of errors returned by this package.
type Err struct {
	Code  ErrCode
	While string
	Cause error
}

// Implement `error`.
func (self Err) Error() string {
	if self == (Err{}) {
		return ``
	}
	msg := `[tsql]`
	if self.Code != ErrCodeUnknown {
		msg += fmt.Sprintf(` %s`, self.Code)
	}
	if self.While != `` {
		msg += fmt.Sprintf(` while %v`, self.While)
	}
	if self.Cause != nil {
		msg += `: ` + self.Cause.Error()
	}
	return msg
}

// Implement a hidden interface in "errors".
func (self Err) Is(other error) bool {
	if self.Cause != nil && errors.Is(self.Cause, other) {
		return true
	}
	err, ok := other.(Err)
	return ok && err.Code == self.Code
}

// Implement a hidden interface in "errors".
func (self Err) Unwrap() error {
	return self.Cause
}

// Returns a copy with the given context description.
func (self Err) WithWhile(while string) Err {
	self.While = while
	return self
}

// Returns a copy with the given cause. Note that `errors.Is` then compares
// the code only.
func (self Err) WithCause(cause error) Err {
	self.Cause = cause
	return self
}

func errTypeMismatch(while string, exp Type, act Value) Err {
	return Err{
		Code:  ErrCodeTypeMismatch,
		While: while,
		Cause: fmt.Errorf(`expected %v, found %v`, exp.kindName(), act.GoString()),
	}
}

/*
Wraps an error returned by a backend. Errors that already belong to this
package, such as decoding failures raised by row callbacks, are returned as-is.
*/
func backendErr(while string, err error) error {
	if err == nil {
		return nil
	}
	var own Err
	if errors.As(err, &own) {
		return err
	}
	return Err{Code: ErrCodeBackend, While: while, Cause: err}
}

var errMissingParams = errors.New(`missing placeholder context`)

var errUnknownCond = errors.New(`unknown condition kind`)
