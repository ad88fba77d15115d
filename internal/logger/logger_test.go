package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func capture(t *testing.T, verboseOn bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseOn)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}
}

func TestLevels_WhenVerbose(t *testing.T) {
	tests := []struct {
		name   string
		log    func(string, ...any)
		prefix string
	}{
		{"debug", Debug, "[DEBUG] "},
		{"info", Info, "[INFO] "},
		{"warn", Warn, "[WARN] "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, true)

			tt.log("populated %d records", 7)

			want := tt.prefix + "populated 7 records\n"
			if buf.String() != want {
				t.Errorf("got %q, want %q", buf.String(), want)
			}
		})
	}
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("hidden")
	Section("hidden")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestSection(t *testing.T) {
	buf := capture(t, true)

	Section("Search")

	if buf.String() != "\n=== Search ===\n" {
		t.Errorf("unexpected section output %q", buf.String())
	}
}

func TestTimer(t *testing.T) {
	buf := capture(t, true)

	done := Timer("populate %s", "topics")
	done()

	out := buf.String()
	if !strings.HasPrefix(out, "[DEBUG] populate topics took ") {
		t.Errorf("unexpected timer output %q", out)
	}
}
