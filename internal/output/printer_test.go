package output

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"withpost/internal/phase"
)

func TestPrinter_PhaseStart(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewPrinterWithWriter(buf)

	p.PhaseStart(phase.Main, "echo hi")

	assert.Contains(t, buf.String(), "main:")
	assert.Contains(t, buf.String(), "echo hi")
}

func TestPrinter_PhaseResult(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   []string
	}{
		{
			name:   "success",
			result: Result{Phase: phase.Main, Duration: 1500 * time.Millisecond},
			want:   []string{"main succeeded", "1.5s"},
		},
		{
			name:   "failure",
			result: Result{Phase: phase.Post, ExitCode: 3},
			want:   []string{"post failed", "exit code 3"},
		},
		{
			name:   "signaled",
			result: Result{Phase: phase.Main, Signaled: true, Signal: "killed"},
			want:   []string{"main terminated by killed", "exit code 0"},
		},
		{
			name:   "signaled without name",
			result: Result{Phase: phase.Main, Signaled: true},
			want:   []string{"terminated by signal"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			NewPrinterWithWriter(buf).PhaseResult(tt.result)
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestPrinter_DryRun(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewPrinterWithWriter(buf)

	p.DryRun(phase.Main, "make test", true, "/tmp/state")

	out := buf.String()
	assert.Contains(t, out, "Phase:   main")
	assert.Contains(t, out, "Command: make test")
	assert.Contains(t, out, "POST=true -> /tmp/state")
}

func TestPrinter_DryRun_Post(t *testing.T) {
	buf := &bytes.Buffer{}

	NewPrinterWithWriter(buf).DryRun(phase.Post, "", false, "")

	assert.Contains(t, buf.String(), "Command: (empty)")
	assert.Contains(t, buf.String(), "Marker:  none")
}

func TestDisplayCommand(t *testing.T) {
	assert.Equal(t, "(empty)", displayCommand("  "))
	assert.Equal(t, "echo a …", displayCommand("echo a\necho b"))

	long := strings.Repeat("x", 100)
	got := displayCommand(long)
	assert.Len(t, got, maxCommandLength)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestDisplayCommand_MultiByte(t *testing.T) {
	tests := []struct {
		name    string
		command string
	}{
		{name: "two-byte runes", command: strings.Repeat("é", 60) + strings.Repeat("x", 40)},
		{name: "only two-byte runes", command: strings.Repeat("é", 100)},
		{name: "three-byte runes", command: "echo " + strings.Repeat("日本", 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := displayCommand(tt.command)

			assert.True(t, utf8.ValidString(got), "invalid UTF-8: %q", got)
			assert.Equal(t, maxCommandLength, utf8.RuneCountInString(got))
			assert.True(t, strings.HasSuffix(got, "..."))
		})
	}
}

func TestDisplayCommand_ShortMultiByteUnchanged(t *testing.T) {
	cmd := "echo " + strings.Repeat("é", 40)

	assert.Equal(t, cmd, displayCommand(cmd))
}

func TestPrinter_NoColorWhenWriterIsNotTerminal(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewPrinterWithWriter(buf)

	p.PhaseStart(phase.Main, "echo hi")
	p.PhaseResult(Result{Phase: phase.Main})
	p.PhaseResult(Result{Phase: phase.Post, ExitCode: 1})
	p.PhaseResult(Result{Phase: phase.Main, Signaled: true, Signal: "killed"})
	p.DryRun(phase.Main, "echo hi", true, "/tmp/state")

	assert.NotContains(t, buf.String(), "\x1b[")
}
