package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTableRows(t *testing.T) {
	t.Parallel()

	markdown := `| email | name | points | note |
|-------|------|--------|------|
| a@x.com | Ann | 100 | bonus |
| b@x.com | Bob | 200 | bonus |`

	rows, err := parseTableRows(markdown, 4)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a@x.com", "Ann", "100", "bonus"}, rows[0])
	assert.Equal(t, "b@x.com", rows[1][0])
}

func TestParseTableRows_SkipsBlankLines(t *testing.T) {
	t.Parallel()

	markdown := "| a | b | c | d |\n| --- | --- | --- | --- |\n\n| 1 | 2 | 3 | 4 |\n\n"
	rows, err := parseTableRows(markdown, 4)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestParseTableRows_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markdown string
	}{
		{name: "empty", markdown: ""},
		{name: "header only", markdown: "| a | b | c | d |"},
		{name: "no separator", markdown: "| a | b | c | d |\n| 1 | 2 | 3 | 4 |\n| 5 | 6 | 7 | 8 |"},
		{name: "too few columns", markdown: "| a | b | c | d |\n| --- | --- | --- | --- |\n| 1 | 2 |"},
		{name: "no data rows", markdown: "| a | b | c | d |\n| --- | --- | --- | --- |\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := parseTableRows(tt.markdown, 4)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestParseOrderNumbers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "newlines", input: "RD1\nRD2\nRD3", want: []string{"RD1", "RD2", "RD3"}},
		{name: "commas", input: "RD1, RD2,RD3", want: []string{"RD1", "RD2", "RD3"}},
		{name: "spaces", input: "RD1 RD2  RD3", want: []string{"RD1", "RD2", "RD3"}},
		{name: "newlines win over commas", input: "RD1,RD2\nRD3", want: []string{"RD1,RD2", "RD3"}},
		{name: "blank entries dropped", input: "RD1\n\n  \nRD2", want: []string{"RD1", "RD2"}},
		{name: "single", input: "  RD1  ", want: []string{"RD1"}},
		{name: "empty", input: "   ", want: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseOrderNumbers(tt.input))
		})
	}
}
