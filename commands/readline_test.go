package commands

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/josephlewis42/pipesh/core/vos"
	"github.com/stretchr/testify/assert"
)

func TestPlainReader(t *testing.T) {
	in := strings.NewReader("first\r\n\nlast")
	out := &bytes.Buffer{}
	r := NewPlainReader(in, out)
	r.SetPrompt("> ")

	var lines []string
	for {
		line, err := r.Readline()
		if err == io.EOF {
			break
		}
		assert.NoError(t, err)
		lines = append(lines, line)
	}

	assert.Equal(t, []string{"first", "", "last"}, lines)
	assert.Equal(t, "> > > > ", out.String())
}

func TestPlainReader_leavesRestOfInput(t *testing.T) {
	in := strings.NewReader("cat\nfor the child\n")
	r := NewPlainReader(in, io.Discard)

	line, err := r.Readline()

	assert.NoError(t, err)
	assert.Equal(t, "cat", line)
	rest, _ := io.ReadAll(in)
	assert.Equal(t, "for the child\n", string(rest))
}

func TestNewLineReader_notATerminal(t *testing.T) {
	r, err := NewLineReader(vos.NewStdio(strings.NewReader("x\n"), nil, nil))

	assert.NoError(t, err)
	assert.IsType(t, &PlainReader{}, r)
	assert.NoError(t, r.Close())
}
