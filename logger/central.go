package logger

import (
	"io"
)

// only allowing one central log for the entire application. there's no need
// to allow more than one log
var central *Logger

// maximum number of entries in the central logger
const maxCentral = 256

func init() {
	central = NewLogger(maxCentral)
}

// Log adds an entry to the central logger
func Log(perm Permission, tag string, detail any) {
	central.Log(perm, tag, detail)
}

// Logf adds a formatted entry to the central logger
func Logf(perm Permission, tag string, format string, args ...any) {
	central.Logf(perm, tag, format, args...)
}

// Clear all entries from central logger
func Clear() {
	central.Clear()
}

// Write contents of central logger to io.Writer
func Write(output io.Writer) {
	central.Write(output)
}

// Tail writes the last N entries of the central logger to io.Writer
func Tail(output io.Writer, number int) {
	central.Tail(output, number)
}

// SetEcho duplicates future entries of the central logger to io.Writer
func SetEcho(output io.Writer) {
	central.SetEcho(output)
}
