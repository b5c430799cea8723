package service

import (
	"fmt"
	"regexp"
	"strings"
)

var separatorPattern = regexp.MustCompile(`^[\s\|:\-]+$`)

// parseTableRows splits a markdown table into trimmed cell rows. The first
// line is the header, the second the separator; both are skipped. Every data
// row must have at least minCols cells.
func parseTableRows(markdown string, minCols int) ([][]string, error) {
	lines := strings.Split(strings.TrimSpace(markdown), "\n")
	if len(lines) < 3 {
		return nil, fmt.Errorf("%w: markdown table needs a header, a separator and at least one data row", ErrValidation)
	}
	if !separatorPattern.MatchString(strings.TrimSpace(lines[1])) {
		return nil, fmt.Errorf("%w: second line is not a markdown table separator", ErrValidation)
	}

	var rows [][]string
	for i := 2; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		line = strings.Trim(line, "|")
		fields := strings.Split(line, "|")
		if len(fields) < minCols {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrValidation, i-1, len(fields), minCols)
		}
		for j := range fields {
			fields[j] = strings.TrimSpace(fields[j])
		}
		rows = append(rows, fields)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no data rows in markdown table", ErrValidation)
	}
	return rows, nil
}

// ParseOrderNumbers accepts order numbers separated by newlines, commas or
// spaces, newlines taking precedence.
func ParseOrderNumbers(input string) []string {
	input = strings.TrimSpace(input)

	var sep string
	switch {
	case strings.Contains(input, "\n"):
		sep = "\n"
	case strings.Contains(input, ","):
		sep = ","
	default:
		return strings.Fields(input)
	}

	var numbers []string
	for _, part := range strings.Split(input, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			numbers = append(numbers, part)
		}
	}
	return numbers
}
