package logger

import (
	"io"
	"log"
	"strings"
)

const (
	DebugLevel = iota
	InfoLevel
	WarningLevel
	ErrorLevel
	logLevelsCount // actually not a real log level, but simplifies some code
)

var (
	levelNames    = [logLevelsCount]string{"DEBUG", "INFO", "WARNING", "ERROR"}
	levelPrefixes = [logLevelsCount]string{"[DBG] ", "[INF] ", "[WRN] ", "[ERR] "}
)

type Logger struct {
	loggers [logLevelsCount]*log.Logger
}

func logLevelString(level int) string {
	if level < 0 || level >= logLevelsCount {
		return "?????"
	}
	return levelNames[level]
}

func logLevelPrefix(level int) string {
	if level < 0 || level >= logLevelsCount {
		return "[???] "
	}
	return levelPrefixes[level]
}

// ParseLevel converts level name to a log level.
// Unknown names fall back to defaultLevel.
func ParseLevel(name string, defaultLevel int) int {
	name = strings.ToUpper(strings.TrimSpace(name))
	switch name {
	case "DBG":
		return DebugLevel
	case "INF":
		return InfoLevel
	case "WARN", "WRN":
		return WarningLevel
	case "ERR":
		return ErrorLevel
	}
	for i, n := range levelNames {
		if n == name {
			return i
		}
	}
	return defaultLevel
}

// New creates levelled loggers. Levels below level are discarded.
// A writer created with NewControllerWriter is a special case: it gets the
// message severity and is attached to each enabled level separately.
func New(level int, writers ...io.Writer) *Logger {
	var controllerWriter *controllerLogger
	w := []io.Writer{}
	for _, onewriter := range writers {
		switch typewr := onewriter.(type) {
		case *controllerLogger:
			controllerWriter = typewr
		case nil:
		default:
			w = append(w, typewr)
		}
	}

	makeWriters := func(wrs ...io.Writer) io.Writer {
		switch len(wrs) {
		case 0:
			return nullWriter{}
		case 1:
			return wrs[0]
		default:
			return io.MultiWriter(wrs...)
		}
	}

	lgr := Logger{}
	for i := 0; i < logLevelsCount; i++ {
		switch {
		case i < level:
			lgr.loggers[i] = log.New(nullWriter{}, "", log.Ldate|log.Ltime)
		case controllerWriter != nil:
			lgr.loggers[i] = log.New(makeWriters(append(w, controllerWriter.withLevel(i))...),
				logLevelPrefix(i), log.Ldate|log.Ltime)
		default:
			lgr.loggers[i] = log.New(makeWriters(w...), logLevelPrefix(i), log.Ldate|log.Ltime)
		}
	}
	return &lgr
}

func (lgr *Logger) Debug() *log.Logger {
	return lgr.loggers[DebugLevel]
}

func (lgr *Logger) Info() *log.Logger {
	return lgr.loggers[InfoLevel]
}

func (lgr *Logger) Warning() *log.Logger {
	return lgr.loggers[WarningLevel]
}

func (lgr *Logger) Error() *log.Logger {
	return lgr.loggers[ErrorLevel]
}
