package main

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestRunReturnsSetupErrors(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	tests := map[string][]string{
		"unknown frontend": {"-frontend", "teletype"},
		"bad log level":    {"-log-level", "loud"},
		"bad tick rate":    {"-logic-hz", "0"},
		"unknown flag":     {"-colour", "red"},
	}
	for name, args := range tests {
		logFile := filepath.Join(t.TempDir(), "snake.log")
		if err := run(append(args, "-log-file", logFile)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
