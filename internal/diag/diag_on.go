//go:build debug

package diag

import (
	"fmt"
	"runtime"
)

// Info is the debug-build representation: the source locations the spec
// calls out (creation, last-dirty, last-borrow, last-observer) plus the
// static type name of the stored value. Mirrors the original Rust source's
// ValueDebugInfo, gated the same way behind its "debug-info" cargo feature.
type Info struct {
	Created  string
	Dirtied  string
	Borrowed string
	Observer string
	Type     string
}

func (i Info) isZero() bool {
	return i == Info{}
}

func (i Info) String() string {
	s := ""
	if i.Type != "" {
		s += fmt.Sprintf("of type %s\n", i.Type)
	}
	if i.Created != "" {
		s += fmt.Sprintf("created at %s\n", i.Created)
	}
	if i.Dirtied != "" {
		s += fmt.Sprintf("dirtied at %s\n", i.Dirtied)
	}
	if i.Borrowed != "" {
		s += fmt.Sprintf("borrowed at %s\n", i.Borrowed)
	}
	if i.Observer != "" {
		s += fmt.Sprintf("observed at %s\n", i.Observer)
	}
	return s
}

// Capture walks `skip` frames up the call stack and records the caller's
// file:line. skip=0 means "my immediate caller".
func Capture(skip int) Info {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Info{}
	}
	return Info{Created: fmt.Sprintf("%s:%d", file, line)}
}

func (i Info) WithCreated(from Info) Info   { i.Created = from.Created; return i }
func (i Info) WithDirtied(from Info) Info   { i.Dirtied = from.Created; return i }
func (i Info) WithBorrowed(from Info) Info  { i.Borrowed = from.Created; return i }
func (i Info) WithObserver(from Info) Info  { i.Observer = from.Created; return i }
func (i Info) WithType(name string) Info    { i.Type = name; return i }
