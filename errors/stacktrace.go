package errors

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// stackTracer from pkg/errors
type stackTracer interface {
	error
	StackTrace() errors.StackTrace
}

// stackTrace returns the first stack trace found while unwrapping given
// error, or nil.
func stackTrace(err error) errors.StackTrace {
	for {
		if st, ok := err.(stackTracer); ok {
			return trimInternal(st.StackTrace())
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}

// trimInternal removes the frames of this package and the runtime from the
// top and the bottom of the stack.
func trimInternal(st errors.StackTrace) errors.StackTrace {
	for len(st) > 0 && matchesFile(st[0], "errors/errors.go", "/runtime/", "/_test/") {
		st = st[1:]
	}
	for l := len(st) - 1; l > 0 && matchesFile(st[l], "/runtime/"); l-- {
		st = st[:l]
	}
	return st
}

func matchesFile(f errors.Frame, substrs ...string) bool {
	file, _ := fileLine(f)
	for _, sub := range substrs {
		if strings.Contains(file, sub) {
			return true
		}
	}
	return false
}

func fileLine(f errors.Frame) (string, int) {
	pc := uintptr(f) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown", 0
	}
	return fn.FileLine(pc)
}

func writeSimpleFrame(s io.Writer, f errors.Frame) {
	file, line := fileLine(f)
	chunks := strings.SplitN(file, "github.com/", 2)
	if len(chunks) == 2 {
		file = chunks[1]
	}
	fmt.Fprintf(s, " [%s:%d]", file, line)
}

// Format works like pkg/errors, with additions.
// %s is just the error message
// %+v is the full stack trace
// %v appends a compressed [filename:line] where the error
//    was created
func (e *wrappedError) Format(s fmt.State, verb rune) {
	st := stackTrace(e)
	if verb == 'v' && s.Flag('+') && len(st) > 0 {
		fmt.Fprintf(s, "%+v\n", st)
	}
	io.WriteString(s, e.Error())
	if verb == 'v' && !s.Flag('+') && len(st) > 0 {
		writeSimpleFrame(s, st[0])
	}
}
