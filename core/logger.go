package core

// Logger is any leveled logger. args may hold errors, maps of extra data or a Person.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Person identifies the caller of a request. Only the opaque client session is known.
type Person struct {
	Session string
}
