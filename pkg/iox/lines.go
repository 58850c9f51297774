package iox

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
)

// Line is a numbered line of text. Numbers start at 1.
type Line struct {
	Number int
	Text   string
}

// ReadLines reads the lines of a [io.Reader] in the specified range (or until EOF).
// Line endings are removed.
func ReadLines(r io.Reader, from, to int) ([]Line, error) {
	if from <= 0 || to < from {
		return nil, fmt.Errorf("invalid line range: from=%d to=%d", from, to)
	}

	var lines []Line

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for number := 1; number <= to && scanner.Scan(); number++ {
		if number < from {
			continue
		}

		lines = append(lines, Line{
			Number: number,
			Text:   strings.TrimRight(scanner.Text(), "\r"),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading: %w", err)
	}

	return lines, nil
}

// ReadLinesRange reads lines from a [io.Reader] in the specified range (or until EOF)
// and joins them with newlines.
func ReadLinesRange(r io.Reader, from, to int) (string, error) {
	lines, err := ReadLines(r, from, to)
	if err != nil {
		return "", err
	}

	return strings.Join(lo.Map(lines, func(line Line, _ int) string { return line.Text }), "\n"), nil
}
