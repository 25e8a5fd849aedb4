package pipeline

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func ExampleParse() {
	p, err := Parse("sort -r < in.txt | uniq > out.txt")
	if err != nil {
		panic(err)
	}

	for _, stage := range p.Stages {
		fmt.Println(stage)
	}

	// Output: "sort -r" <file(in.txt) >inherited
	// "uniq" <inherited >file(out.txt)
}

func TestTokenize(t *testing.T) {
	cases := map[string]struct {
		line     string
		expected []Segment
		err      error
	}{
		"simple": {
			line:     "ls",
			expected: []Segment{{Text: "ls"}},
		},
		"args": {
			line:     "  ls -l   -a  ",
			expected: []Segment{{Text: "ls -l   -a"}},
		},
		"output": {
			line:     "ls -l > out.txt",
			expected: []Segment{{Text: "ls -l", Out: "out.txt"}},
		},
		"output-no-space": {
			line:     "ls -l>out.txt",
			expected: []Segment{{Text: "ls -l", Out: "out.txt"}},
		},
		"input": {
			line:     "sort <  in.txt",
			expected: []Segment{{Text: "sort", In: "in.txt"}},
		},
		"input-and-output": {
			line:     "sort < in.txt > out.txt",
			expected: []Segment{{Text: "sort", In: "in.txt", Out: "out.txt"}},
		},
		"redirect-adjacent": {
			line:     "sort <in.txt>out.txt",
			expected: []Segment{{Text: "sort", In: "in.txt", Out: "out.txt"}},
		},
		"redirect-before-args": {
			line:     "sort > out.txt -r",
			expected: []Segment{{Text: "sort   -r", Out: "out.txt"}},
		},
		"pipe": {
			line: "ls -l | wc -l",
			expected: []Segment{
				{Text: "ls -l"},
				{Text: "wc -l"},
			},
		},
		"pipe-with-redirects": {
			line: "sort < in.txt|uniq > out.txt",
			expected: []Segment{
				{Text: "sort", In: "in.txt"},
				{Text: "uniq", Out: "out.txt"},
			},
		},
		"empty-second-stage": {
			line: "ls |",
			expected: []Segment{
				{Text: "ls"},
				{Text: ""},
			},
		},
		"blank":            {line: " \t ", err: ErrEmptyCommand},
		"empty":            {line: "", err: ErrEmptyCommand},
		"three-stages":     {line: "a | b | c", err: ErrTooManyStages},
		"input-second":     {line: "ls | sort < in.txt", err: ErrMisplacedInput},
		"duplicate-output": {line: "ls > a > b", err: ErrDuplicateRedirect},
		"duplicate-input":  {line: "sort < a < b", err: ErrDuplicateRedirect},
		"missing-output":   {line: "ls >", err: ErrMissingTarget},
		"missing-input":    {line: "sort < > out", err: ErrMissingTarget},
		"missing-at-pipe":  {line: "ls > | wc", err: ErrMissingTarget},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			actual, err := Tokenize(tc.line)

			if tc.err != nil {
				assert.True(t, errors.Is(err, tc.err), "expected %v got %v", tc.err, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestBuild(t *testing.T) {
	t.Run("defaults to inherited", func(t *testing.T) {
		p, err := Build([]Segment{{Text: "ls"}})

		assert.NoError(t, err)
		assert.Len(t, p.Stages, 1)
		assert.Equal(t, "ls", p.Stages[0].Text)
		assert.Equal(t, Inherited{}, p.Stages[0].Input)
		assert.Equal(t, Inherited{}, p.Stages[0].Output)
		assert.Nil(t, p.Stages[0].Peer)
	})

	t.Run("redirects become files", func(t *testing.T) {
		p, err := Build([]Segment{{Text: " sort ", In: " in ", Out: "out "}})

		assert.NoError(t, err)
		assert.Equal(t, "sort", p.Stages[0].Text)
		assert.Equal(t, &File{Path: "in"}, p.Stages[0].Input)
		assert.Equal(t, &File{Path: "out"}, p.Stages[0].Output)
	})

	t.Run("empty text", func(t *testing.T) {
		_, err := Build([]Segment{{Text: "ls"}, {Text: "  ", Out: "out"}})

		assert.Equal(t, ErrEmptyCommand, err)
	})

	t.Run("no segments", func(t *testing.T) {
		_, err := Build(nil)

		assert.Equal(t, ErrEmptyCommand, err)
	})

	t.Run("too many", func(t *testing.T) {
		_, err := Build([]Segment{{Text: "a"}, {Text: "b"}, {Text: "c"}})

		assert.Equal(t, ErrTooManyStages, err)
	})
}

func TestParse_emptyStage(t *testing.T) {
	for _, line := range []string{"ls |", "| wc", " | ", "> out.txt"} {
		t.Run(line, func(t *testing.T) {
			_, err := Parse(line)

			assert.True(t, errors.Is(err, ErrEmptyCommand), "got %v", err)
		})
	}
}
