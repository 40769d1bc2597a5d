package main

import (
	"path/filepath"
	"testing"

	"mpc-drive-core/utils"
)

func newTestLogger(t *testing.T) *utils.Logger {
	t.Helper()
	log, err := utils.NewFileLogger(filepath.Join(t.TempDir(), "test.log"), utils.ERROR, false)
	if err != nil {
		t.Fatalf("open test logger: %v", err)
	}
	t.Cleanup(func() { _ = log.Close() })
	return log
}
