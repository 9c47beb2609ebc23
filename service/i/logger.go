package i

// Logger is the component logger used across services and adapters.
type Logger interface {
	Debug(string)
	Info(string)
	Warning(string)
	Error(string)
}
