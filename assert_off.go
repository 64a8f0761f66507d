//go:build !vectordebug

package vector

const debugChecks = false

func assertf(bool, string, ...any) {}
