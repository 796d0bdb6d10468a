package texpak

import "errors"

// ErrorCode classifies codec API failures.
type ErrorCode uint32

const (
	// Success means no error.
	Success ErrorCode = 0

	// ErrBadParam reports an invalid argument to an API call.
	ErrBadParam ErrorCode = 1

	// ErrBadConfig reports an invalid or inconsistent encoder configuration.
	ErrBadConfig ErrorCode = 2

	// ErrBadDims reports image dimensions the codec cannot encode
	// (zero sized, or not a multiple of the block size).
	ErrBadDims ErrorCode = 3

	// ErrBadFormat reports an unknown or unsupported block format.
	ErrBadFormat ErrorCode = 4

	// ErrBadContainer reports a malformed or truncated container file.
	ErrBadContainer ErrorCode = 5

	// ErrCancelled reports that an operation was abandoned because its
	// context was cancelled before completion.
	ErrCancelled ErrorCode = 6

	// ErrIO reports a filesystem failure while reading or writing a
	// container file.
	ErrIO ErrorCode = 7
)

// ErrorString returns a stable symbolic name for a code.
//
// For unknown codes, it returns "".
func ErrorString(code ErrorCode) string {
	switch code {
	case Success:
		return "TEXPAK_SUCCESS"
	case ErrBadParam:
		return "TEXPAK_ERR_BAD_PARAM"
	case ErrBadConfig:
		return "TEXPAK_ERR_BAD_CONFIG"
	case ErrBadDims:
		return "TEXPAK_ERR_BAD_DIMS"
	case ErrBadFormat:
		return "TEXPAK_ERR_BAD_FORMAT"
	case ErrBadContainer:
		return "TEXPAK_ERR_BAD_CONTAINER"
	case ErrCancelled:
		return "TEXPAK_ERR_CANCELLED"
	case ErrIO:
		return "TEXPAK_ERR_IO"
	default:
		return ""
	}
}

// Error is a typed error that carries a codec error code.
type Error struct {
	Code ErrorCode
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg != "" {
		return e.Msg
	}
	if s := ErrorString(e.Code); s != "" {
		return "texpak: " + s
	}
	return "texpak: error"
}

// ErrorCodeOf returns the error code carried by err, or Success for nil.
//
// For non-*Error errors it returns ErrBadParam as a conservative fallback.
func ErrorCodeOf(err error) ErrorCode {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrBadParam
}

func newError(code ErrorCode, msg string) error {
	return &Error{Code: code, Msg: msg}
}
