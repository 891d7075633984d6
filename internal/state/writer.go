// Package state reads and appends records in the host's step state file.
//
// The host exports the path of a per-step state file (GITHUB_STATE on GitHub
// Actions). Each line holds one KEY=value record. Records written during the
// main phase are exposed back to the post phase, and the host itself consults
// the file to decide whether a post phase should be scheduled at all.
//
// Key types:
//   - [Writer] appends records and never truncates the file
//   - [Reader] parses the file into [Record] values for inspection
package state

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// PostKey is the record key that enables the post phase.
const PostKey = "POST"

// ErrNoStateFile is returned when no state file path has been configured.
var ErrNoStateFile = errors.New("state file path is not set")

// Writer appends records to a state file.
type Writer struct {
	path string
}

// NewWriter creates a new Writer for the state file at path.
// The path is not checked until the first append.
func NewWriter(path string) *Writer {
	return &Writer{
		path: path,
	}
}

// Path returns the state file path the writer appends to.
func (w *Writer) Path() string {
	return w.path
}

// Append adds one KEY=value record followed by [EOL] to the end of the file,
// creating it if needed. Existing content is never rewritten.
//
// The record is written with a single write call on a file opened with
// O_APPEND, so concurrent appends do not interleave within a line.
func (w *Writer) Append(key, value string) error {
	if w.path == "" {
		return ErrNoStateFile
	}
	if err := validateRecord(key, value); err != nil {
		return err
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open state file: %w", err)
	}

	line := key + "=" + value + EOL
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return fmt.Errorf("failed to append state record: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close state file: %w", err)
	}
	return nil
}

// MarkPost records the lifecycle marker POST=true.
func (w *Writer) MarkPost() error {
	return w.Append(PostKey, "true")
}

func validateRecord(key, value string) error {
	if key == "" {
		return errors.New("state record key is empty")
	}
	if strings.ContainsAny(key, "=\r\n") {
		return fmt.Errorf("invalid state record key: %q", key)
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("state record value for %s spans multiple lines", key)
	}
	return nil
}
