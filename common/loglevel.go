package common

import "strings"

// LogLevel controls how chatty the library logger is.
type LogLevel int

const (
	// DisabledLevel turns logging off entirely. This is the library default
	// so embedding applications stay quiet unless they opt in.
	DisabledLevel LogLevel = iota

	// DebugLevel includes per-request detail such as resolved providers and
	// normalized request fields.
	DebugLevel

	// InfoLevel covers lifecycle events: provider registration, server start.
	InfoLevel

	// WarnLevel covers recoverable oddities, e.g. duplicate provider ids.
	WarnLevel

	// ErrorLevel covers failures worth investigating.
	ErrorLevel
)

// ParseLogLevel maps a config string to a LogLevel. Unknown values and the
// empty string resolve to DisabledLevel.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return DisabledLevel
	}
}
