// Package weave is a fine-grained reactive runtime: signals, memos,
// memo-chains and effects wired together by a push-mark / pull-update
// propagation engine over a three-valued staleness lattice
// (Clean < Check < Dirty).
//
// A default runtime is created lazily per goroutine the first time a
// reactive primitive is used on it; NewRuntime gives an explicit,
// independently-disposable one. Handles (Signal, Memo, MemoChain, Effect)
// are opaque and always resolve against whatever runtime is current for
// the calling goroutine — they are not safe to share across goroutines.
package weave
