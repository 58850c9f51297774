package fsx

import (
	"fmt"
	"io/fs"

	"github.com/sagikazarmark/flowx/pkg/iox"
)

// ReadFileRange reads lines from a file in [fs.FS] in the specified range (or until EOF).
func ReadFileRange(fsys fs.FS, name string, from, to int) (string, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return iox.ReadLinesRange(file, from, to)
}

// ReadFileAround reads the numbered lines of a file in [fs.FS] within radius lines of line.
func ReadFileAround(fsys fs.FS, name string, line, radius int) ([]iox.Line, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return iox.ReadLines(file, max(1, line-radius), line+radius)
}
