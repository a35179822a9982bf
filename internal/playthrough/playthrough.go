// Package playthrough loads recorded command sequences for game tests.
//
// A playthrough file is UTF-8 text with one command per line; lines may end
// in "\n", "\r\n" or a bare "\r". Commands are replayed in file order, so the
// loader never reorders or deduplicates.
package playthrough

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"
)

// BlankLines selects what Load does with lines that are empty after trimming.
type BlankLines int

const (
	// SkipBlank drops blank lines from the sequence.
	SkipBlank BlankLines = iota
	// KeepBlank keeps blank lines as empty commands.
	KeepBlank
)

func (b BlankLines) String() string {
	switch b {
	case SkipBlank:
		return "skip"
	case KeepBlank:
		return "keep"
	default:
		return fmt.Sprintf("BlankLines(%d)", int(b))
	}
}

// ParseBlankLines maps a config or flag value onto a BlankLines mode.
func ParseBlankLines(s string) (BlankLines, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "skip":
		return SkipBlank, nil
	case "keep":
		return KeepBlank, nil
	default:
		return 0, fmt.Errorf("unknown blank line mode %q (want skip or keep)", s)
	}
}

var (
	// ErrNotFound indicates the playthrough file does not exist.
	ErrNotFound = errors.New("playthrough not found")
	// ErrInvalidUTF8 indicates the playthrough file is not UTF-8 text.
	ErrInvalidUTF8 = errors.New("playthrough is not valid UTF-8")
)

// DecodeError reports the first line of a playthrough that is not UTF-8.
type DecodeError struct {
	Path string
	Line int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, ErrInvalidUTF8)
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrInvalidUTF8
}

// Load reads the playthrough at path and returns its commands in file order,
// each trimmed of surrounding whitespace.
func Load(path string, mode BlankLines) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("read playthrough: %w", err)
	}
	return parse(path, string(data), mode)
}

func parse(path, data string, mode BlankLines) ([]string, error) {
	commands := []string{}
	if data == "" {
		return commands, nil
	}
	data = strings.ReplaceAll(data, "\r\n", "\n")
	data = strings.ReplaceAll(data, "\r", "\n")
	lines := strings.Split(strings.TrimSuffix(data, "\n"), "\n")
	for i, line := range lines {
		if !utf8.ValidString(line) {
			return nil, &DecodeError{Path: path, Line: i + 1}
		}
		line = strings.TrimSpace(line)
		if line == "" && mode == SkipBlank {
			continue
		}
		commands = append(commands, line)
	}
	return commands, nil
}

// Combine joins commands into the single argument handed to a target script.
func Combine(commands []string) string {
	return strings.Join(commands, "\n")
}
