//go:build windows

package state

// EOL is the line terminator appended after every record.
const EOL = "\r\n"
