package logger

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Output encodings.
const (
	ConsoleFormat = "console"
	JSONFormat    = "json"
)

// New returns a logger writing to stdout at the given level and format.
// Unknown levels fall back to debug, unknown formats to console.
func New(level, format string) *Logger {
	return newZapLogger(level, format, nil)
}
