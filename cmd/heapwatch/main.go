package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/agbru/heapwatch/internal/app"
	apperrors "github.com/agbru/heapwatch/internal/errors"
	"github.com/agbru/heapwatch/internal/plugin"
)

// hasDescribeFlag reports whether the host loader is asking for the plugin
// registration metadata.
func hasDescribeFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-describe" || arg == "--describe" {
			return true
		}
	}
	return false
}

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return
	}

	if hasDescribeFlag(os.Args[1:]) {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(plugin.Default(app.Version)); err != nil {
			os.Exit(apperrors.ExitErrorGeneric)
		}
		return
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.ExitErrorConfig)
	}

	exitCode := application.Run(context.Background(), os.Stdout)
	os.Exit(exitCode)
}
