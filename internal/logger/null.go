package logger

// nullWriter discards all messages
type nullWriter struct{}

func (nullWriter) Write(b []byte) (n int, err error) {
	return len(b), nil
}
