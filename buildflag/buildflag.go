// Package buildflag compiles the server/client build flag into Go source.
//
// The flag is a single boolean constant, Name, selecting server behavior
// when true and client behavior when false.
package buildflag

import (
	"errors"
	"fmt"
	"go/format"
	"go/token"
)

// Name of the generated constant.
const Name = "SERVER"

// UsageError reports a malformed command line: a wrong number of arguments,
// or the flag parse error in Err.
type UsageError struct {
	NArg int
	Err  error
}

func (e *UsageError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("invalid number of arguments: got %d, expected 1 (server: bool)", e.NArg)
}

func (e *UsageError) Unwrap() error { return e.Err }

func (e *UsageError) ExitCode() int { return 1 }

// InvalidValueError reports an argument other than the literals true and false.
type InvalidValueError struct {
	Value string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q: only true or false are accepted", e.Value)
}

func (e *InvalidValueError) ExitCode() int { return 2 }

// Parse validates the arguments and returns the flag value they denote.
// Exactly one argument is accepted, and it must be spelled true or false.
func Parse(args []string) (bool, error) {
	if len(args) != 1 {
		return false, &UsageError{NArg: len(args)}
	}
	switch args[0] {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, &InvalidValueError{Value: args[0]}
}

// Generate returns the formatted source of a file in package pkg defining
// the flag constant.
func Generate(pkg string, server bool) ([]byte, error) {
	if !token.IsIdentifier(pkg) {
		return nil, fmt.Errorf("invalid package name %q", pkg)
	}
	src := fmt.Sprintf(`// Code generated by flaggen; DO NOT EDIT.

package %s

// %s selects server behavior when true and client behavior when false.
const %s = %t
`, pkg, Name, Name, server)
	out, err := format.Source([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return out, nil
}

// ExitCode maps an error to a process exit status: 0 for nil, the status
// carried by the error if any, and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return 1
}
