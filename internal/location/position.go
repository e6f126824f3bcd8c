package location

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrInvalidLocation is returned by Parse for malformed input.
var ErrInvalidLocation = errors.New("invalid location")

// Point represents a line and column position.
// Both Line and Column are 0-indexed.
type Point struct {
	Line   uint32
	Column uint32
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	}
	return 0
}

// Location is a point in a named file.
type Location struct {
	Path  string
	Point Point
}

// New returns a location for a 0-indexed line and column.
func New(path string, line, column uint32) Location {
	return Location{Path: filepath.Clean(path), Point: Point{Line: line, Column: column}}
}

// String formats the location as path:line:column, 1-indexed.
func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Path, uint64(l.Point.Line)+1, uint64(l.Point.Column)+1)
}

// SameFile reports whether l and other refer to the same file.
func (l Location) SameFile(other Location) bool {
	return filepath.Clean(l.Path) == filepath.Clean(other.Path)
}

// Parse parses "path:line" or "path:line:column" with 1-indexed numbers,
// the form printed by String and by most compilers.
func Parse(s string) (Location, error) {
	s = strings.TrimSpace(s)

	head, last, ok := cutLastNumber(s)
	if !ok {
		return Location{}, fmt.Errorf("%w: %q: missing line number", ErrInvalidLocation, s)
	}

	line, column := last, uint64(1)
	if path, n, ok := cutLastNumber(head); ok {
		head, line, column = path, n, last
	}

	if head == "" {
		return Location{}, fmt.Errorf("%w: %q: missing path", ErrInvalidLocation, s)
	}
	if line == 0 || column == 0 {
		return Location{}, fmt.Errorf("%w: %q: lines and columns start at 1", ErrInvalidLocation, s)
	}
	return New(head, uint32(line-1), uint32(column-1)), nil
}

// cutLastNumber splits "rest:N" into rest and N.
func cutLastNumber(s string) (string, uint64, bool) {
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return s, 0, false
	}
	n, err := strconv.ParseUint(s[i+1:], 10, 32)
	if err != nil {
		return s, 0, false
	}
	return s[:i], n, true
}
