package state

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
)

// heredocMarker separates a key from its delimiter in multi-line records
// (KEY<<DELIM, value lines, DELIM).
const heredocMarker = "<<"

// Record is a single key/value entry from a state file.
type Record struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// Reader parses a state file.
//
// The runner itself never reads the file back; Reader exists for the state
// subcommand and for tests.
type Reader struct {
	path string
}

// NewReader creates a new Reader for the state file at path.
func NewReader(path string) *Reader {
	return &Reader{
		path: path,
	}
}

// Records returns every record in file order.
//
// Blank lines are skipped and CRLF terminators are accepted. A missing file
// yields no records. Lines that are neither KEY=value nor the start of a
// KEY<<DELIM block are reported as errors.
func (r *Reader) Records() ([]Record, error) {
	if r.path == "" {
		return nil, ErrNoStateFile
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	return Parse(data)
}

// Parse parses state file content into records.
func Parse(data []byte) ([]Record, error) {
	var records []Record

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		eq := strings.Index(line, "=")
		hd := strings.Index(line, heredocMarker)
		if hd > 0 && (eq < 0 || hd < eq) {
			key := line[:hd]
			delim := line[hd+len(heredocMarker):]
			if delim == "" {
				return nil, fmt.Errorf("line %d: empty heredoc delimiter for %s", lineNo, key)
			}

			var body []string
			closed := false
			for scanner.Scan() {
				lineNo++
				text := strings.TrimSuffix(scanner.Text(), "\r")
				if text == delim {
					closed = true
					break
				}
				body = append(body, text)
			}
			if !closed {
				return nil, fmt.Errorf("line %d: unterminated value for %s", lineNo, key)
			}
			records = append(records, Record{Key: key, Value: strings.Join(body, "\n")})
			continue
		}

		if eq <= 0 {
			return nil, fmt.Errorf("line %d: malformed state record: %q", lineNo, line)
		}
		records = append(records, Record{Key: line[:eq], Value: line[eq+1:]})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan state file: %w", err)
	}
	return records, nil
}

// Lookup returns the last value recorded for key.
func (r *Reader) Lookup(key string) (string, bool, error) {
	records, err := r.Records()
	if err != nil {
		return "", false, err
	}

	value, found := "", false
	for _, rec := range records {
		if rec.Key == key {
			value, found = rec.Value, true
		}
	}
	return value, found, nil
}

// PostEnabled reports whether the lifecycle marker has been recorded.
func (r *Reader) PostEnabled() (bool, error) {
	value, found, err := r.Lookup(PostKey)
	if err != nil {
		return false, err
	}
	return found && value == "true", nil
}
