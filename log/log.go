// Package log provides the viewer's loggers. By default they write to stderr;
// Initialize(true) sends them to a file in the temp dir instead.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

var (
	InfoLog    = log.New(os.Stderr, "INFO:", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLog = log.New(os.Stderr, "WARNING:", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog   = log.New(os.Stderr, "ERROR:", log.Ldate|log.Ltime|log.Lshortfile)
)

var (
	logFile     *os.File
	logFileName = filepath.Join(os.TempDir(), "scrollmap.log")
)

// Initialize sets up the loggers. With toFile set, output goes to a log file
// which Close reports on exit.
func Initialize(toFile bool) {
	if !toFile {
		setOutput(os.Stderr)
		return
	}
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		ErrorLog.Printf("could not open log file: %s", err)
		return
	}
	logFile = f
	setOutput(f)
}

// Discard silences every logger. Used by tests.
func Discard() {
	setOutput(io.Discard)
}

func setOutput(w io.Writer) {
	InfoLog.SetOutput(w)
	WarningLog.SetOutput(w)
	ErrorLog.SetOutput(w)
}

func Close() {
	if logFile == nil {
		return
	}
	_ = logFile.Close()
	logFile = nil
	setOutput(os.Stderr)
	fmt.Println("wrote logs to " + logFileName)
}
