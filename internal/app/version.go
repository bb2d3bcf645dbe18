package app

import (
	"fmt"
	"io"
)

// Version is the application version, overridable at build time with
// -ldflags "-X github.com/agbru/heapwatch/internal/app.Version=...".
var Version = "dev"

// HasVersionFlag reports whether the arguments request the version banner.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-version" || arg == "--version" {
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "heapwatch %s\n", Version)
}
