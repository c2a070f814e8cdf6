package lsp

import (
	"runtime/debug"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("pain.lsp")

// isolate runs fn and turns a panic into fallback. Nothing escapes: the
// panic value and stack go to the error log under op.
func isolate[T any](op string, fallback T, fn func() T) (result T) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("%s panicked: %v\n%s", op, r, debug.Stack())
			result = fallback
		}
	}()
	return fn()
}

// isolateDo is isolate for work without a result; it reports whether fn
// completed.
func isolateDo(op string, fn func()) bool {
	return isolate(op, false, func() bool {
		fn()
		return true
	})
}
