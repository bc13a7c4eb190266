package wallpaper

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"syscall"
)

// Kind categorizes a failed wallpaper request.
type Kind int

// Failure kinds, in the order the bridge checks for them.
const (
	KindInvalidArgument Kind = iota
	KindFileNotFound
	KindDecodeFailed
	KindSetFailed
	KindUnknown
)

// Code returns the wire code reported to the caller.
func (k Kind) Code() string {
	switch k {
	case KindInvalidArgument:
		return "INVALID_ARGUMENT"
	case KindFileNotFound:
		return "FILE_NOT_FOUND"
	case KindDecodeFailed:
		return "DECODE_FAILED"
	case KindSetFailed:
		return "SET_FAILED"
	default:
		return "UNKNOWN_ERROR"
	}
}

func (k Kind) String() string {
	return k.Code()
}

// ErrIO marks a failure raised by the host while persisting or applying a wallpaper.
// OS implementations wrap storage and command failures with it.
var ErrIO = errors.New("wallpaper i/o failure")

// Error is the structured failure returned by Setter.SetWallpaper.
type Error struct {
	Kind    Kind
	Message string
	// Detail carries the underlying error's type and text. Empty for validation failures.
	Detail string
	Err    error
}

func (e *Error) Error() string {
	return e.Kind.Code() + ": " + e.Message
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns the wire code of the error kind.
func (e *Error) Code() string {
	return e.Kind.Code()
}

// KindOf returns the kind of a bridge error. Errors that did not come from the bridge are KindUnknown.
func KindOf(err error) Kind {
	var werr *Error
	if errors.As(err, &werr) {
		return werr.Kind
	}
	return KindUnknown
}

func fileNotFound(path string, err error) *Error {
	return &Error{Kind: KindFileNotFound, Message: fmt.Sprintf("Image file not found at %s", path), Err: err}
}

func decodeFailed(path string, err error) *Error {
	return &Error{Kind: KindDecodeFailed, Message: fmt.Sprintf("Failed to decode image from %s", path), Err: err}
}

// applyFailed translates a failure from the host call into SetFailed or UnknownError.
func applyFailed(err error) *Error {
	if isIOError(err) {
		return &Error{
			Kind:    KindSetFailed,
			Message: fmt.Sprintf("Failed to set wallpaper: %v", err),
			Detail:  describe(err),
			Err:     err,
		}
	}
	return unexpected(err)
}

func unexpected(err error) *Error {
	return &Error{
		Kind:    KindUnknown,
		Message: fmt.Sprintf("An unexpected error occurred: %v", err),
		Detail:  describe(err),
		Err:     err,
	}
}

// panicError converts a recovered panic value into an error.
func panicError(r interface{}) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", r)
}

func isIOError(err error) bool {
	if errors.Is(err, ErrIO) {
		return true
	}
	var pathErr *fs.PathError
	var sysErr *os.SyscallError
	var linkErr *os.LinkError
	var exitErr *exec.ExitError
	var errno syscall.Errno
	return errors.As(err, &pathErr) ||
		errors.As(err, &sysErr) ||
		errors.As(err, &linkErr) ||
		errors.As(err, &exitErr) ||
		errors.As(err, &errno)
}

// describe renders an error as "<type>: <message>".
func describe(err error) string {
	return fmt.Sprintf("%T: %v", err, err)
}
