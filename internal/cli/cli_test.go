package cli

import (
	"bytes"
	"testing"
	"time"
)

var testNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

// resetGlobals restores flag-backed globals after a test touches them.
func resetGlobals(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		machineMode = false
		configFlag = ""
		endpointFlag = ""
		versionShort = false
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
}

// execute runs the root command with args and captures its output.
func execute(t *testing.T, args ...string) (string, int) {
	t.Helper()
	resetGlobals(t)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	code := run(args)
	return buf.String(), code
}
