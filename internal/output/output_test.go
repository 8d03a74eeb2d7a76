package output

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

// captureOutput captures stdout during test execution
func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestSuccess(t *testing.T) {
	out := captureOutput(func() {
		Success("Generated AppConfig")
	})

	if !strings.Contains(out, "🔐") {
		t.Error("Success output should contain the lock emoji")
	}
	if !strings.Contains(out, "Generated AppConfig") {
		t.Error("Success output should contain the message")
	}
}

func TestError(t *testing.T) {
	out := captureOutput(func() {
		Error("something failed")
	})

	if !strings.Contains(out, "❌") {
		t.Error("Error output should contain X emoji")
	}
	if !strings.Contains(out, "something failed") {
		t.Error("Error output should contain the message")
	}
}

func TestVerboseDisabledByDefault(t *testing.T) {
	SetVerbose(false)
	out := captureOutput(func() {
		Verbose("debug detail")
	})

	if strings.Contains(out, "debug detail") {
		t.Error("Verbose output should be suppressed when verbose mode is off")
	}
}

func TestVerboseEnabled(t *testing.T) {
	SetVerbose(true)
	defer SetVerbose(false)

	out := captureOutput(func() {
		Verbose("debug detail")
	})

	if !strings.Contains(out, "debug detail") {
		t.Error("Verbose output should appear when verbose mode is on")
	}
}
