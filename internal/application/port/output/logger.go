package output

// LoggerPort is the structured key-value logger used across the
// application layer. Args are alternating key/value pairs.
type LoggerPort interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	With(args ...any) LoggerPort

	Close() error
}
