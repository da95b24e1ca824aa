//go:build debug

package assert

import "fmt"

// Enabled reports whether contract checks are active in this build.
const Enabled = true

// That panics with the formatted message when cond is false.
func That(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("contract violation: "+format, args...))
	}
}
