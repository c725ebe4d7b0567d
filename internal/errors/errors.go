package errors

import (
	stderrors "errors"
	"fmt"
)

type ErrorCode string

const (
	CodeLoad     ErrorCode = "LOAD_ERROR"
	CodeParse    ErrorCode = "PARSE_ERROR"
	CodeDivision ErrorCode = "DIVISION_ERROR"
	CodeStore    ErrorCode = "STORE_ERROR"
	CodeConfig   ErrorCode = "CONFIG_ERROR"
	CodeExport   ErrorCode = "EXPORT_ERROR"
)

// AppError is the single error type surfaced by the pipeline. Fatal and
// skippable failures are told apart by Code, see Fatal.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Cause   error     `json:"-"`
}

func (e *AppError) Error() string {
	msg := e.Message
	if e.Details != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Details)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// WithDetails returns a copy of e carrying details.
func (e *AppError) WithDetails(format string, args ...any) *AppError {
	cp := *e
	cp.Details = fmt.Sprintf(format, args...)
	return &cp
}

func Load(message string) *AppError {
	return New(CodeLoad, message)
}

func LoadWrap(err error, message string) *AppError {
	return Wrap(err, CodeLoad, message)
}

func Parse(message string) *AppError {
	return New(CodeParse, message)
}

func ParseWrap(err error, message string) *AppError {
	return Wrap(err, CodeParse, message)
}

func Division(message string) *AppError {
	return New(CodeDivision, message)
}

func StoreWrap(err error, message string) *AppError {
	return Wrap(err, CodeStore, message)
}

func Config(message string) *AppError {
	return New(CodeConfig, message)
}

func ConfigWrap(err error, message string) *AppError {
	return Wrap(err, CodeConfig, message)
}

func ExportWrap(err error, message string) *AppError {
	return Wrap(err, CodeExport, message)
}

// CodeOf returns the code of the outermost AppError in err's chain, or "" if
// there is none.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// Fatal reports whether err must abort the run. Parse and division errors are
// per-row and only cause the row to be skipped.
func Fatal(err error) bool {
	if err == nil {
		return false
	}
	switch CodeOf(err) {
	case CodeParse, CodeDivision:
		return false
	default:
		return true
	}
}
