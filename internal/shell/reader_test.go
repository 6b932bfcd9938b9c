package shell

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScannerReader(t *testing.T) {
	var out bytes.Buffer
	reader := NewScannerReader(strings.NewReader("first\r\nsecond\n"), &out)

	line, err := reader.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	line, err = reader.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "second", line)

	_, err = reader.ReadLine("> ")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "> > > ", out.String())
	assert.NoError(t, reader.Close())
}

func TestScannerReader_LongLine(t *testing.T) {
	long := strings.Repeat("parse request body ", 10000)
	reader := NewScannerReader(strings.NewReader(long+"\nexit\n"), io.Discard)

	line, err := reader.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, long, line)

	line, err = reader.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "exit", line)
}
