package pipeline

import (
	"strings"

	"github.com/pkg/errors"
)

// Operators recognized on a command line. Anything else is part of a word.
const (
	opPipe        = '|'
	opRedirectIn  = '<'
	opRedirectOut = '>'

	blanks = " \t\r\n\v\f"
)

// Segment is the text of one stage with its redirection targets extracted.
type Segment struct {
	Text string
	In   string
	Out  string
}

// Parse turns a line into a Pipeline whose endpoints are unresolved.
func Parse(line string) (*Pipeline, error) {
	segments, err := Tokenize(line)
	if err != nil {
		return nil, err
	}
	return Build(segments)
}

// Tokenize splits a line into stage segments on the pipe operator and pulls
// the '<' and '>' targets out of each one.
//
// The target of a redirection is the word following the operator, so
// "sort < in.txt -r" and "sort -r <in.txt" are the same. Only the first
// stage may redirect its input. Lines with more than MaxStages stages are
// rejected rather than truncated.
func Tokenize(line string) ([]Segment, error) {
	if strings.TrimSpace(line) == "" {
		return nil, ErrEmptyCommand
	}

	parts := strings.Split(line, string(opPipe))
	if len(parts) > MaxStages {
		return nil, ErrTooManyStages
	}

	out := make([]Segment, 0, len(parts))
	for i, part := range parts {
		seg, err := tokenizeSegment(part)
		if err != nil {
			return nil, err
		}
		if i > 0 && seg.In != "" {
			return nil, ErrMisplacedInput
		}
		out = append(out, seg)
	}
	return out, nil
}

func tokenizeSegment(text string) (Segment, error) {
	var (
		seg  Segment
		rest strings.Builder
	)

	for i := 0; i < len(text); {
		c := text[i]
		if c != opRedirectIn && c != opRedirectOut {
			rest.WriteByte(c)
			i++
			continue
		}

		target, n := leadingWord(text[i+1:])
		if target == "" {
			return Segment{}, errors.Wrapf(ErrMissingTarget, "%c", c)
		}

		dst := &seg.Out
		if c == opRedirectIn {
			dst = &seg.In
		}
		if *dst != "" {
			return Segment{}, errors.Wrapf(ErrDuplicateRedirect, "%c", c)
		}
		*dst = target

		// Keep the words on either side of the redirection apart.
		rest.WriteByte(' ')
		i += 1 + n
	}

	seg.Text = strings.TrimSpace(rest.String())
	return seg, nil
}

// leadingWord returns the first word of s and the number of bytes up to the
// end of that word. Words end at blanks and redirection operators.
func leadingWord(s string) (string, int) {
	start := 0
	for start < len(s) && strings.IndexByte(blanks, s[start]) >= 0 {
		start++
	}

	end := start
	for end < len(s) {
		if c := s[end]; strings.IndexByte(blanks, c) >= 0 || c == opRedirectIn || c == opRedirectOut {
			break
		}
		end++
	}
	return s[start:end], end
}

// Build converts segments into stages. Redirection targets become File
// endpoints, everything else is Inherited until resolved.
func Build(segments []Segment) (*Pipeline, error) {
	if len(segments) == 0 {
		return nil, ErrEmptyCommand
	}
	if len(segments) > MaxStages {
		return nil, ErrTooManyStages
	}

	p := &Pipeline{}
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			return nil, ErrEmptyCommand
		}

		stage := &Stage{
			Text:   text,
			Input:  Inherited{},
			Output: Inherited{},
		}
		if in := strings.TrimSpace(seg.In); in != "" {
			stage.Input = &File{Path: in}
		}
		if out := strings.TrimSpace(seg.Out); out != "" {
			stage.Output = &File{Path: out}
		}
		p.Stages = append(p.Stages, stage)
	}
	return p, nil
}
