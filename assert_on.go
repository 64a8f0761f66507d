//go:build vectordebug

package vector

import "fmt"

const debugChecks = true

// assertf panics when cond is false. Only compiled with -tags vectordebug.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("vector: "+format, args...))
	}
}
