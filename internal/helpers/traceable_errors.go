package helpers

import (
	"errors"
	"strings"

	"github.com/ztrue/tracerr"
)

// Error carries one or more errors, each with the stack trace captured where
// it was created. The zero value (NilError) means "no error".
type Error struct {
	errs []tracerr.Error
}

var NilError = Error{nil}

func IsNil(err error) bool {
	if traceableErr, ok := err.(Error); ok {
		return traceableErr.First() == nil
	}
	if traceableErr, ok := err.(*Error); ok {
		return traceableErr == nil || traceableErr.First() == nil
	}
	return err == nil
}

func (e Error) IsNil() bool {
	return IsNil(e)
}

func (e Error) HasError() bool {
	return !IsNil(e)
}

func (e Error) Error() string {
	lines := make([]string, 0, len(e.errs))
	for _, err := range e.errs {
		lines = append(lines, err.Error())
	}
	return strings.Join(lines, "; ")
}

// String includes the source snippets of every stack frame. Use it when
// printing fatal errors from a command.
func (e Error) String() string {
	result := ""
	for _, err := range e.errs {
		result += "-------------------------------------------------------------------------------\n"
		result += tracerr.SprintSourceColor(err, 3) + "\n"
	}
	return result
}

func (e Error) First() tracerr.Error {
	if e.errs == nil {
		return nil
	}
	return e.errs[0]
}

// Unwrap lets errors.Is and errors.As see through to the wrapped sentinels.
func (e Error) Unwrap() []error {
	result := make([]error, 0, len(e.errs))
	for _, err := range e.errs {
		result = append(result, tracerr.Unwrap(err))
	}
	return result
}

func (e Error) Is(target error) bool {
	for _, err := range e.errs {
		if errors.Is(tracerr.Unwrap(err), target) {
			return true
		}
	}
	return false
}

func (err Error) NumErrors() int {
	if IsNil(err) {
		return 0
	}

	num := 0
	for _, e := range err.errs {
		if e != nil {
			num++
		}
	}
	return num
}

func Wrap(err error) Error {
	if err == nil {
		return NilError
	}
	if traceableErr, ok := err.(Error); ok {
		return traceableErr
	}
	return Error{[]tracerr.Error{tracerr.Wrap(err)}}
}

func WrapReturn[T any](x T, err error) (T, Error) {
	return x, Wrap(err)
}

func Errorf(format string, args ...interface{}) Error {
	return Error{[]tracerr.Error{tracerr.Errorf(format, args...)}}
}

func Join(others ...Error) Error {
	others = FilterSlice(others, func(err Error) bool {
		return !IsNil(err)
	})
	if len(others) == 0 {
		return NilError
	}
	if len(others) == 1 {
		return others[0]
	}

	result := Error{}
	for _, o := range others {
		result.errs = append(result.errs, o.errs...)
	}
	return result
}
