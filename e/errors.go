package e

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Error kinds. Every error returned by this module that is terminal for an
// operation carries one of these, check with errors.Is.
var (
	// ErrConfiguration caller mistake, e.g. missing parent directory or an
	// unrecognized task type
	ErrConfiguration = errors.New("configuration error")
	// ErrNotFound catalogue entry, process, task or schedule does not exist
	ErrNotFound = errors.New("not found")
	// ErrConflict workflow is online or the task already exists
	ErrConflict = errors.New("conflict")
	// ErrRemote the scheduler reported a failure in its result envelope
	ErrRemote = errors.New("remote error")
	// ErrTransport timeout, connection failure or undecodable body
	ErrTransport = errors.New("transport error")
	// ErrDecode the response body could not be decoded. It is also an
	// ErrTransport
	ErrDecode = fmt.Errorf("%w: undecodable response", ErrTransport)
)

// ExtendedError is our custom error
type ExtendedError struct {
	InnerError error
	// Code the full error code (package/file code + id)
	Code string
	// Message the user facing message
	Message string
	// Kind one of the Err* kinds, nil if unclassified
	Kind     error
	original error
}

// Error returns the string of the inner error
func (e *ExtendedError) Error() string {
	return fmt.Sprintf("%+v", e.InnerError)
}

// Unwrap exposes the kind and the originating error to errors.Is/errors.As
func (e *ExtendedError) Unwrap() []error {
	list := make([]error, 0, 2)
	if e.Kind != nil {
		list = append(list, e.Kind)
	}
	if e.original != nil {
		list = append(list, e.original)
	}

	return list
}

// RemoteError is the failure reported by the scheduler's result envelope. The
// message is the scheduler's own message, unchanged
type RemoteError struct {
	Code    int
	Message string
}

// Error returns the scheduler's message verbatim
func (r *RemoteError) Error() string {
	return r.Message
}

// Is makes a RemoteError match ErrRemote
func (r *RemoteError) Is(tgt error) bool {
	return tgt == ErrRemote
}

// N creates a new error based on the code and message. The message is also
// used as the user message
func N(code, msg string) error {
	return newExtended(nil, nil, code, msg, msg)
}

// NK creates a new error of the specified kind
func NK(kind error, code, msg string) error {
	return newExtended(nil, kind, code, msg, msg)
}

// W wraps the error with the code. If the error is already an ExtendedError
// the code/debug messages are prepended to its inner error and its kind and
// user message are kept
func W(err error, code string, debugMessages ...string) error {
	return Wrap(err, code, debugMessages...)
}

// WK wraps the error as the specified kind, overwriting the user message
func WK(err error, kind error, code, msg string) error {
	ee := Wrap(err, code, msg)
	ee.Kind = kind
	ee.Message = msg

	return ee
}

// NewStr creates a new error string based on the code and messages
func NewStr(code string, msgList ...string) (s string) {
	if len(msgList) == 0 {
		return code
	}
	return fmt.Sprintf("%s: %s", code, strings.Join(msgList, "|"))
}

// AsExtendedError helper function that returns the error as an ExtendedError
// if it is one. Otherwise it returns nil
func AsExtendedError(err error) (ee *ExtendedError) {
	if errors.As(err, &ee) {
		return ee
	}
	return nil
}

// UserMessage returns the message to show to a user for the error, without any
// debug/stack information. A scheduler message is passed through as is
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var re *RemoteError
	if errors.As(err, &re) {
		return re.Message
	}

	if ee := AsExtendedError(err); ee != nil && ee.Message != "" {
		return ee.Message
	}

	return MsgUnknownInternalServerError
}

// Wrap checks if the passed error has been wrapped before by this func
// and either wraps the original error as an ExtendedError or adds the
// debug message to the already existing ExtendedError's InnerError.
// This function always returns an extended error, but W's signature is
// error
func Wrap(err error, code string, debugMessages ...string) (ee *ExtendedError) {
	msg := NewStr(code, debugMessages...)

	// If the error is already an extended error, then just update the
	// inner error
	if ee = AsExtendedError(err); ee != nil {
		ee.InnerError = fmt.Errorf("[%s]%+v", msg, ee.InnerError)
		return ee
	}

	return newExtended(err, nil, code, MsgUnknownInternalServerError, debugMessages...)
}

func newExtended(err, kind error, code, userMsg string,
	debugMessages ...string) (ee *ExtendedError) {

	msg := NewStr(code, debugMessages...)
	ee = &ExtendedError{
		Code:     code,
		Kind:     kind,
		Message:  userMsg,
		original: err,
	}

	if err == nil {
		ee.InnerError = pkgerrors.New(msg)
	} else {
		ee.InnerError = fmt.Errorf("[%s]%+v", msg, pkgerrors.Wrap(err, ""))
	}

	return ee
}
