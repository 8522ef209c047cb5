//go:build !debug

package diag

// Info is the zero-cost shim used by default builds. Every recorder below
// compiles to nothing; Info itself carries no fields so it adds no size to
// the node record that embeds it.
type Info struct{}

func (Info) isZero() bool { return true }

func (Info) String() string { return "" }

// Capture would record the caller's location under -tags debug; here it is a
// no-op so call sites don't need a build-tag switch of their own.
func Capture(skip int) Info { return Info{} }

func (i Info) WithCreated(Info) Info   { return i }
func (i Info) WithDirtied(Info) Info   { return i }
func (i Info) WithBorrowed(Info) Info  { return i }
func (i Info) WithObserver(Info) Info  { return i }
func (i Info) WithType(name string) Info { return i }
