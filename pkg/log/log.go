// Package log provides colored console output for the CLI. Library packages
// return errors; only commands log.
package log

import (
	"os"

	"github.com/fatih/color"
)

var red = color.New(color.FgRed).FprintfFunc()
var blue = color.New(color.FgBlue).FprintfFunc()
var faint = color.New(color.Faint).FprintfFunc()

// Verbose enables VerboseMsg output. Set once at startup from the CLI flag.
var Verbose = false

// ErrorMsg prints an error message to stderr in red color.
func ErrorMsg(format string, a ...interface{}) {
	red(os.Stderr, "[!] Error: "+format, a...)
}

// InfoMsg prints an informational message to stderr in blue color.
func InfoMsg(format string, a ...interface{}) {
	blue(os.Stderr, "[+] "+format, a...)
}

// VerboseMsg prints a faint debug message to stderr when Verbose is set.
func VerboseMsg(format string, a ...interface{}) {
	if !Verbose {
		return
	}
	faint(os.Stderr, "[*] "+format, a...)
}
