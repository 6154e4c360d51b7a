package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var w bytes.Buffer
	got, err := GetSimpleText(bufio.NewReader(strings.NewReader("  hello \n")), "Prompt", &w)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	assert.Equal(t, "Prompt\n> ", w.String())
}

func TestGetSimpleText_PartialLineAtEOF(t *testing.T) {
	got, err := GetSimpleText(bufio.NewReader(strings.NewReader("tail")), "P", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "tail", got)

	_, err = GetSimpleText(bufio.NewReader(strings.NewReader("")), "P", &bytes.Buffer{})
	require.Error(t, err)
}

func TestGetMultiline(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("line one\r\nline two\n\nnot read\n"))
	got, err := GetMultiline(r, "Write", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", got)
}

func TestGetMultiline_EOFWithoutBlankLine(t *testing.T) {
	got, err := GetMultiline(bufio.NewReader(strings.NewReader("only line")), "Write", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "only line", got)
}

func TestGetToken_UsesReadPassword(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	readPassword = func(fd int) ([]byte, error) { return []byte("  tok.en.sig \n"), nil }
	var w bytes.Buffer
	got, err := GetToken(&w)
	require.NoError(t, err)
	assert.Equal(t, "tok.en.sig", got)
	assert.Contains(t, w.String(), "Paste access token: ")

	readPassword = func(fd int) ([]byte, error) { return nil, errors.New("not a terminal") }
	_, err = GetToken(&w)
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	lvl, err := parseLevel("")
	require.NoError(t, err)
	assert.Nil(t, lvl)

	lvl, err = parseLevel(" 4 ")
	require.NoError(t, err)
	assert.Equal(t, 4, *lvl)

	for _, bad := range []string{"0", "6", "x"} {
		_, err := parseLevel(bad)
		assert.ErrorIs(t, err, errBadLevel, bad)
	}
}
