package projection

import "fmt"

// Warning is a human-readable diagnostic produced for a recoverable
// data problem. Warnings are collected and returned alongside the
// projection result, never thrown; the caller decides whether to
// proceed, log or abort a batch.
type Warning string

func (w Warning) String() string {
	return string(w)
}

func Warnf(format string, args ...interface{}) Warning {
	return Warning(fmt.Sprintf(format, args...))
}
